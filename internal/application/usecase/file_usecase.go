package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// FileUseCase metadatos de archivos adjuntos a un cliente. El contenido vive en el
// almacenamiento externo; aquí solo se registra nombre, URL y tipo.
type FileUseCase struct {
	customers CustomerChecker
	files     *resource.Children[entity.File]
}

// NewFileUseCase construye el caso de uso.
func NewFileUseCase(customers CustomerChecker, files *resource.Children[entity.File]) *FileUseCase {
	return &FileUseCase{customers: customers, files: files}
}

// List archivos del cliente, del más reciente al más antiguo.
func (uc *FileUseCase) List(ctx context.Context, customerID string) ([]dto.FileResponse, error) {
	if err := uc.customers.Owns(ctx, customerID); err != nil {
		return nil, err
	}
	list, err := uc.files.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FileResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFileResponse(f))
	}
	return out, nil
}

// Create registra un archivo ya subido.
func (uc *FileUseCase) Create(ctx context.Context, customerID string, in dto.CreateFileRequest) (*dto.FileResponse, error) {
	if err := required("filename", in.Filename); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimSpace(in.URL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, invalid("url inválida")
	}
	if err := uc.customers.Owns(ctx, customerID); err != nil {
		return nil, err
	}
	fields := repository.Row{
		resource.ColFileName: strings.TrimSpace(in.Filename),
		resource.ColFileURL:  u.String(),
	}
	setIfNotEmpty(fields, resource.ColFileType, in.Type)

	f, err := uc.files.Create(ctx, customerID, fields)
	if err != nil {
		return nil, err
	}
	return ptr(toFileResponse(f)), nil
}

// Delete elimina el registro de un archivo del cliente.
func (uc *FileUseCase) Delete(ctx context.Context, customerID, id string) error {
	if err := uc.customers.Owns(ctx, customerID); err != nil {
		return err
	}
	return uc.files.Delete(ctx, customerID, id)
}

func toFileResponse(f entity.File) dto.FileResponse {
	return dto.FileResponse{
		ID:         f.ID,
		CustomerID: f.CustomerID,
		Filename:   f.Filename,
		URL:        f.URL,
		Type:       f.Type,
		UploadedAt: f.UploadedAt,
	}
}
