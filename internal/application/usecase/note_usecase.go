package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// NoteUseCase notas de seguimiento de un cliente. Toda operación verifica primero
// que el cliente pertenezca al usuario.
type NoteUseCase struct {
	customers CustomerChecker
	notes     *resource.Children[entity.Note]
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(customers CustomerChecker, notes *resource.Children[entity.Note]) *NoteUseCase {
	return &NoteUseCase{customers: customers, notes: notes}
}

// List notas del cliente, de la más reciente a la más antigua.
func (uc *NoteUseCase) List(ctx context.Context, customerID string) ([]dto.NoteResponse, error) {
	if err := uc.customers.Owns(ctx, customerID); err != nil {
		return nil, err
	}
	list, err := uc.notes.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// Create registra una nota. Sin tipo se asume "nota".
func (uc *NoteUseCase) Create(ctx context.Context, customerID string, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := required("title", in.Title); err != nil {
		return nil, err
	}
	kind := entity.NoteType(in.Type)
	if kind == "" {
		kind = entity.NotePlain
	}
	if !kind.Valid() {
		return nil, invalid("tipo de nota %q", in.Type)
	}
	if err := uc.customers.Owns(ctx, customerID); err != nil {
		return nil, err
	}
	fields := repository.Row{
		resource.ColNoteType:  string(kind),
		resource.ColNoteTitle: strings.TrimSpace(in.Title),
	}
	setIfNotEmpty(fields, resource.ColNoteDescription, in.Description)
	setIfNotNil(fields, resource.ColNoteNextContact, in.NextContact)

	n, err := uc.notes.Create(ctx, customerID, fields)
	if err != nil {
		return nil, err
	}
	return ptr(toNoteResponse(n)), nil
}

// Delete elimina una nota del cliente.
func (uc *NoteUseCase) Delete(ctx context.Context, customerID, id string) error {
	if err := uc.customers.Owns(ctx, customerID); err != nil {
		return err
	}
	return uc.notes.Delete(ctx, customerID, id)
}

func toNoteResponse(n entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:          n.ID,
		CustomerID:  n.CustomerID,
		Type:        string(n.Type),
		Title:       n.Title,
		Description: n.Description,
		NextContact: n.NextContact,
		CreatedAt:   n.CreatedAt,
	}
}
