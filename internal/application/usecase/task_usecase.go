package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// Filtros de estado de tareas.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// TaskUseCase casos de uso de tareas.
type TaskUseCase struct {
	store     *resource.Store[entity.Task]
	customers CustomerChecker
}

// NewTaskUseCase construye el caso de uso. customers valida la referencia opcional a un cliente.
func NewTaskUseCase(store *resource.Store[entity.Task], customers CustomerChecker) *TaskUseCase {
	return &TaskUseCase{store: store, customers: customers}
}

// Refresh recarga el espejo.
func (uc *TaskUseCase) Refresh(ctx context.Context) error {
	return uc.store.LoadLatest(ctx, "")
}

// List devuelve las tareas; status filtra por pendientes o completadas.
func (uc *TaskUseCase) List(filter dto.TaskFilter) (dto.CollectionResponse[dto.TaskResponse], error) {
	var keep func(entity.Task) bool
	switch strings.TrimSpace(filter.Status) {
	case "":
	case TaskStatusPending:
		keep = func(t entity.Task) bool { return !t.Completed }
	case TaskStatusCompleted:
		keep = func(t entity.Task) bool { return t.Completed }
	default:
		return dto.CollectionResponse[dto.TaskResponse]{}, invalid("estado de tarea %q", filter.Status)
	}
	return collection(uc.store, keep, NewTaskResponse), nil
}

// Create registra una tarea pendiente.
func (uc *TaskUseCase) Create(ctx context.Context, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := required("title", in.Title); err != nil {
		return nil, err
	}
	fields := repository.Row{
		resource.ColTaskTitle:     strings.TrimSpace(in.Title),
		resource.ColTaskCompleted: false,
	}
	setIfNotEmpty(fields, resource.ColTaskDescription, in.Description)
	if in.CustomerID != "" {
		if err := uc.customers.Owns(ctx, in.CustomerID); err != nil {
			return nil, err
		}
		fields[resource.ColCustomerID] = in.CustomerID
	}
	setIfNotNil(fields, resource.ColTaskDueDate, in.DueDate)

	t, err := uc.store.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return ptr(NewTaskResponse(t)), nil
}

// Update aplica solo los campos enviados.
func (uc *TaskUseCase) Update(ctx context.Context, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	patch := repository.Row{}
	if in.Title != nil {
		if err := required("title", *in.Title); err != nil {
			return nil, err
		}
		patch[resource.ColTaskTitle] = strings.TrimSpace(*in.Title)
	}
	if in.CustomerID != nil {
		if *in.CustomerID == "" {
			patch[resource.ColCustomerID] = nil
		} else {
			if err := uc.customers.Owns(ctx, *in.CustomerID); err != nil {
				return nil, err
			}
			patch[resource.ColCustomerID] = *in.CustomerID
		}
	}
	setIfNotNil(patch, resource.ColTaskDescription, in.Description)
	setIfNotNil(patch, resource.ColTaskCompleted, in.Completed)
	setIfNotNil(patch, resource.ColTaskDueDate, in.DueDate)

	t, err := uc.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return ptr(NewTaskResponse(t)), nil
}

// Complete marca la tarea como completada.
func (uc *TaskUseCase) Complete(ctx context.Context, id string) (*dto.TaskResponse, error) {
	done := true
	return uc.Update(ctx, id, dto.UpdateTaskRequest{Completed: &done})
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, id)
}

// NewTaskResponse convierte una tarea a su salida.
func NewTaskResponse(t entity.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CustomerID:  t.CustomerID,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
	}
}
