package resource

import (
	"fmt"
	"time"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// Columnas del esquema remoto existente.
const (
	TableCustomers = "clientes"
	TableTasks     = "tareas"
	TableSales     = "ventas"
	TableNotes     = "notas"
	TableFiles     = "archivos"

	ColOwnerID    = "id_usuario"
	ColCustomerID = "id_cliente"

	ColCustomerName         = "nombre"
	ColCustomerEmail        = "correo"
	ColCustomerPhone        = "telefono"
	ColCustomerCompany      = "empresa"
	ColCustomerAddress      = "direccion"
	ColCustomerStatus       = "estado"
	ColCustomerOrigin       = "origen"
	ColCustomerRegisteredAt = "fecha_registro"

	ColTaskID          = "id_tarea"
	ColTaskTitle       = "titulo"
	ColTaskDescription = "descripcion"
	ColTaskCompleted   = "completada"
	ColTaskDueDate     = "fecha_limite"
	ColTaskCreatedAt   = "fecha_creacion"

	ColSaleID           = "id_venta"
	ColSaleProduct      = "producto_servicio"
	ColSaleAmount       = "monto"
	ColSaleStatus       = "estado"
	ColSaleDate         = "fecha_venta"
	ColSaleRegisteredAt = "fecha_registro"

	ColNoteID          = "id_nota"
	ColNoteType        = "tipo"
	ColNoteTitle       = "titulo"
	ColNoteDescription = "descripcion"
	ColNoteNextContact = "proximo_contacto"
	ColNoteCreatedAt   = "fecha_creacion"

	ColFileID         = "id_archivo"
	ColFileName       = "nombre_archivo"
	ColFileURL        = "url"
	ColFileType       = "tipo"
	ColFileUploadedAt = "fecha_subida"
)

// Esquemas disponibles.
var (
	Customers = CustomerSchema{}
	Tasks     = TaskSchema{}
	Sales     = SaleSchema{}
	Notes     = NoteSchema{}
	Files     = FileSchema{}
)

// Tables devuelve la especificación de todas las tablas (para configurar los adaptadores remotos).
func Tables() []repository.TableSpec {
	return []repository.TableSpec{
		Customers.Spec(), Tasks.Spec(), Sales.Spec(), Notes.Spec(), Files.Spec(),
	}
}

// ── Customer ──────────────────────────────────────────────────────────────────

// CustomerSchema esquema de clientes.
type CustomerSchema struct{}

var _ Schema[entity.Customer] = CustomerSchema{}

func (CustomerSchema) Spec() repository.TableSpec {
	return repository.TableSpec{Name: TableCustomers, IDField: ColCustomerID, CreatedField: ColCustomerRegisteredAt}
}
func (CustomerSchema) OwnerField() string { return ColOwnerID }
func (CustomerSchema) OrderField() string { return ColCustomerRegisteredAt }
func (CustomerSchema) ID(c entity.Customer) string { return c.ID }
func (CustomerSchema) Owner(c entity.Customer) string { return c.OwnerID }
func (CustomerSchema) CreatedAt(c entity.Customer) time.Time { return c.RegisteredAt }

func (CustomerSchema) Decode(row repository.Row) (entity.Customer, error) {
	d := newRowDecoder(row)
	c := entity.Customer{
		ID:           d.str(ColCustomerID),
		OwnerID:      d.str(ColOwnerID),
		Name:         d.str(ColCustomerName),
		Email:        d.optStr(ColCustomerEmail),
		Phone:        d.optStr(ColCustomerPhone),
		Company:      d.optStr(ColCustomerCompany),
		Address:      d.optStr(ColCustomerAddress),
		Status:       entity.CustomerStatus(d.str(ColCustomerStatus)),
		Origin:       d.optStr(ColCustomerOrigin),
		RegisteredAt: d.time(ColCustomerRegisteredAt),
	}
	if c.Status != "" && !c.Status.Valid() {
		d.fail(ColCustomerStatus, fmt.Sprintf("valor %q fuera de la enumeración", c.Status))
	}
	if err := d.err(); err != nil {
		return entity.Customer{}, err
	}
	return c, nil
}

// ── Task ──────────────────────────────────────────────────────────────────────

// TaskSchema esquema de tareas.
type TaskSchema struct{}

var _ Schema[entity.Task] = TaskSchema{}

func (TaskSchema) Spec() repository.TableSpec {
	return repository.TableSpec{Name: TableTasks, IDField: ColTaskID, CreatedField: ColTaskCreatedAt}
}
func (TaskSchema) OwnerField() string { return ColOwnerID }
func (TaskSchema) OrderField() string { return ColTaskCreatedAt }
func (TaskSchema) ID(t entity.Task) string { return t.ID }
func (TaskSchema) Owner(t entity.Task) string { return t.OwnerID }
func (TaskSchema) CreatedAt(t entity.Task) time.Time { return t.CreatedAt }

func (TaskSchema) Decode(row repository.Row) (entity.Task, error) {
	d := newRowDecoder(row)
	t := entity.Task{
		ID:          d.str(ColTaskID),
		OwnerID:     d.str(ColOwnerID),
		CustomerID:  d.optStr(ColCustomerID),
		Title:       d.str(ColTaskTitle),
		Description: d.optStr(ColTaskDescription),
		Completed:   d.boolean(ColTaskCompleted),
		DueDate:     d.optTime(ColTaskDueDate),
		CreatedAt:   d.time(ColTaskCreatedAt),
	}
	if err := d.err(); err != nil {
		return entity.Task{}, err
	}
	return t, nil
}

// ── Sale ──────────────────────────────────────────────────────────────────────

// SaleSchema esquema de ventas. El monto se lee con entity.ParseAmount y nunca invalida el registro.
type SaleSchema struct{}

var _ Schema[entity.Sale] = SaleSchema{}

func (SaleSchema) Spec() repository.TableSpec {
	return repository.TableSpec{Name: TableSales, IDField: ColSaleID, CreatedField: ColSaleRegisteredAt}
}
func (SaleSchema) OwnerField() string { return ColOwnerID }
func (SaleSchema) OrderField() string { return ColSaleRegisteredAt }
func (SaleSchema) ID(s entity.Sale) string { return s.ID }
func (SaleSchema) Owner(s entity.Sale) string { return s.OwnerID }
func (SaleSchema) CreatedAt(s entity.Sale) time.Time { return s.RegisteredAt }

func (SaleSchema) Decode(row repository.Row) (entity.Sale, error) {
	d := newRowDecoder(row)
	s := entity.Sale{
		ID:           d.str(ColSaleID),
		OwnerID:      d.str(ColOwnerID),
		CustomerID:   d.optStr(ColCustomerID),
		Product:      d.str(ColSaleProduct),
		Amount:       entity.ParseAmount(row[ColSaleAmount]),
		Status:       entity.SaleStatus(d.str(ColSaleStatus)),
		SaleDate:     d.time(ColSaleDate),
		RegisteredAt: d.time(ColSaleRegisteredAt),
	}
	if s.Status != "" && !s.Status.Valid() {
		d.fail(ColSaleStatus, fmt.Sprintf("valor %q fuera de la enumeración", s.Status))
	}
	if err := d.err(); err != nil {
		return entity.Sale{}, err
	}
	return s, nil
}

// ── Note ──────────────────────────────────────────────────────────────────────

// NoteSchema esquema de notas; el acceso se acota por cliente.
type NoteSchema struct{}

var _ Schema[entity.Note] = NoteSchema{}

func (NoteSchema) Spec() repository.TableSpec {
	return repository.TableSpec{Name: TableNotes, IDField: ColNoteID, CreatedField: ColNoteCreatedAt}
}
func (NoteSchema) OwnerField() string { return ColCustomerID }
func (NoteSchema) OrderField() string { return ColNoteCreatedAt }
func (NoteSchema) ID(n entity.Note) string { return n.ID }
func (NoteSchema) Owner(n entity.Note) string { return n.CustomerID }
func (NoteSchema) CreatedAt(n entity.Note) time.Time { return n.CreatedAt }

func (NoteSchema) Decode(row repository.Row) (entity.Note, error) {
	d := newRowDecoder(row)
	n := entity.Note{
		ID:          d.str(ColNoteID),
		CustomerID:  d.str(ColCustomerID),
		Type:        entity.NoteType(d.str(ColNoteType)),
		Title:       d.str(ColNoteTitle),
		Description: d.optStr(ColNoteDescription),
		NextContact: d.optTime(ColNoteNextContact),
		CreatedAt:   d.time(ColNoteCreatedAt),
	}
	if n.Type != "" && !n.Type.Valid() {
		d.fail(ColNoteType, fmt.Sprintf("valor %q fuera de la enumeración", n.Type))
	}
	if err := d.err(); err != nil {
		return entity.Note{}, err
	}
	return n, nil
}

// ── File ──────────────────────────────────────────────────────────────────────

// FileSchema esquema de archivos adjuntos; el acceso se acota por cliente.
type FileSchema struct{}

var _ Schema[entity.File] = FileSchema{}

func (FileSchema) Spec() repository.TableSpec {
	return repository.TableSpec{Name: TableFiles, IDField: ColFileID, CreatedField: ColFileUploadedAt}
}
func (FileSchema) OwnerField() string { return ColCustomerID }
func (FileSchema) OrderField() string { return ColFileUploadedAt }
func (FileSchema) ID(f entity.File) string { return f.ID }
func (FileSchema) Owner(f entity.File) string { return f.CustomerID }
func (FileSchema) CreatedAt(f entity.File) time.Time { return f.UploadedAt }

func (FileSchema) Decode(row repository.Row) (entity.File, error) {
	d := newRowDecoder(row)
	f := entity.File{
		ID:         d.str(ColFileID),
		CustomerID: d.str(ColCustomerID),
		Filename:   d.str(ColFileName),
		URL:        d.str(ColFileURL),
		Type:       d.optStr(ColFileType),
		UploadedAt: d.time(ColFileUploadedAt),
	}
	if err := d.err(); err != nil {
		return entity.File{}, err
	}
	return f, nil
}
