package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

// CustomerUseCase casos de uso de clientes sobre el espejo del usuario.
type CustomerUseCase struct {
	store *resource.Store[entity.Customer]
	notes *resource.Children[entity.Note]
	files *resource.Children[entity.File]
	log   *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	store *resource.Store[entity.Customer],
	notes *resource.Children[entity.Note],
	files *resource.Children[entity.File],
	log *logger.Logger,
) *CustomerUseCase {
	return &CustomerUseCase{store: store, notes: notes, files: files, log: log.Component("usecase.customers")}
}

// Refresh recarga el espejo desde el remoto.
func (uc *CustomerUseCase) Refresh(ctx context.Context) error {
	return uc.store.LoadLatest(ctx, "")
}

// Owns implementa CustomerChecker.
func (uc *CustomerUseCase) Owns(ctx context.Context, customerID string) error {
	return uc.store.Owns(ctx, customerID)
}

// List devuelve los clientes del espejo que cumplen el filtro.
func (uc *CustomerUseCase) List(filter dto.CustomerFilter) (dto.CollectionResponse[dto.CustomerResponse], error) {
	status := entity.CustomerStatus(strings.TrimSpace(filter.Status))
	if status != "" && !status.Valid() {
		return dto.CollectionResponse[dto.CustomerResponse]{}, invalid("estado de cliente %q", filter.Status)
	}
	q := fold(filter.Query)
	keep := func(c entity.Customer) bool {
		if status != "" && c.Status != status {
			return false
		}
		if q == "" {
			return true
		}
		return strings.Contains(fold(c.Name), q) ||
			strings.Contains(fold(c.Email), q) ||
			strings.Contains(fold(c.Company), q)
	}
	return collection(uc.store, keep, toCustomerResponse), nil
}

// Create registra un cliente. Sin estado se crea como prospecto.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	status := entity.CustomerStatus(in.Status)
	if status == "" {
		status = entity.CustomerProspect
	}
	if !status.Valid() {
		return nil, invalid("estado de cliente %q", in.Status)
	}
	fields := repository.Row{
		resource.ColCustomerName:   strings.TrimSpace(in.Name),
		resource.ColCustomerStatus: string(status),
	}
	setIfNotEmpty(fields, resource.ColCustomerEmail, in.Email)
	setIfNotEmpty(fields, resource.ColCustomerPhone, in.Phone)
	setIfNotEmpty(fields, resource.ColCustomerCompany, in.Company)
	setIfNotEmpty(fields, resource.ColCustomerAddress, in.Address)
	setIfNotEmpty(fields, resource.ColCustomerOrigin, in.Origin)

	c, err := uc.store.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return ptr(toCustomerResponse(c)), nil
}

// Update aplica solo los campos enviados.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	patch := repository.Row{}
	if in.Name != nil {
		if err := required("name", *in.Name); err != nil {
			return nil, err
		}
		patch[resource.ColCustomerName] = strings.TrimSpace(*in.Name)
	}
	if in.Status != nil {
		if !entity.CustomerStatus(*in.Status).Valid() {
			return nil, invalid("estado de cliente %q", *in.Status)
		}
		patch[resource.ColCustomerStatus] = *in.Status
	}
	setIfNotNil(patch, resource.ColCustomerEmail, in.Email)
	setIfNotNil(patch, resource.ColCustomerPhone, in.Phone)
	setIfNotNil(patch, resource.ColCustomerCompany, in.Company)
	setIfNotNil(patch, resource.ColCustomerAddress, in.Address)
	setIfNotNil(patch, resource.ColCustomerOrigin, in.Origin)

	c, err := uc.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return ptr(toCustomerResponse(c)), nil
}

// Delete elimina el cliente junto con sus notas y archivos. Si algún dependiente no se
// puede eliminar, el cliente se conserva. Tareas y ventas quedan con la referencia huérfana.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.store.Owns(ctx, id); err != nil {
		return err
	}
	if err := uc.notes.DeleteAll(ctx, id); err != nil {
		return fmt.Errorf("eliminar notas del cliente: %w", err)
	}
	if err := uc.files.DeleteAll(ctx, id); err != nil {
		return fmt.Errorf("eliminar archivos del cliente: %w", err)
	}
	if err := uc.store.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("cliente", id).Msg("cliente eliminado con sus dependientes")
	return nil
}

func toCustomerResponse(c entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Company:      c.Company,
		Address:      c.Address,
		Status:       string(c.Status),
		Origin:       c.Origin,
		RegisteredAt: c.RegisteredAt,
	}
}

func setIfNotEmpty(row repository.Row, field, value string) {
	if v := strings.TrimSpace(value); v != "" {
		row[field] = v
	}
}

func setIfNotNil[V any](row repository.Row, field string, value *V) {
	if value != nil {
		row[field] = *value
	}
}

func ptr[V any](v V) *V { return &v }
