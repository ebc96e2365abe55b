package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// SaleUseCase casos de uso de ventas.
type SaleUseCase struct {
	store     *resource.Store[entity.Sale]
	customers CustomerChecker
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(store *resource.Store[entity.Sale], customers CustomerChecker) *SaleUseCase {
	return &SaleUseCase{store: store, customers: customers, now: time.Now}
}

// Refresh recarga el espejo.
func (uc *SaleUseCase) Refresh(ctx context.Context) error {
	return uc.store.LoadLatest(ctx, "")
}

// List devuelve las ventas filtradas por estado y/o cliente.
func (uc *SaleUseCase) List(filter dto.SaleFilter) (dto.CollectionResponse[dto.SaleResponse], error) {
	status := entity.SaleStatus(strings.TrimSpace(filter.Status))
	if status != "" && !status.Valid() {
		return dto.CollectionResponse[dto.SaleResponse]{}, invalid("estado de venta %q", filter.Status)
	}
	keep := func(s entity.Sale) bool {
		if status != "" && s.Status != status {
			return false
		}
		return filter.CustomerID == "" || s.CustomerID == filter.CustomerID
	}
	return collection(uc.store, keep, toSaleResponse), nil
}

// Create registra una venta. Sin estado se asume completada; sin fecha, la actual.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := required("product", in.Product); err != nil {
		return nil, err
	}
	if in.Amount.IsNegative() {
		return nil, invalid("el monto no puede ser negativo")
	}
	status := entity.SaleStatus(in.Status)
	if status == "" {
		status = entity.SaleCompleted
	}
	if !status.Valid() {
		return nil, invalid("estado de venta %q", in.Status)
	}
	date := uc.now()
	if in.SaleDate != nil {
		date = *in.SaleDate
	}
	fields := repository.Row{
		resource.ColSaleProduct: strings.TrimSpace(in.Product),
		resource.ColSaleAmount:  in.Amount,
		resource.ColSaleStatus:  string(status),
		resource.ColSaleDate:    date,
	}
	if in.CustomerID != "" {
		if err := uc.customers.Owns(ctx, in.CustomerID); err != nil {
			return nil, err
		}
		fields[resource.ColCustomerID] = in.CustomerID
	}

	s, err := uc.store.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return ptr(toSaleResponse(s)), nil
}

// Update aplica solo los campos enviados.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	patch := repository.Row{}
	if in.Product != nil {
		if err := required("product", *in.Product); err != nil {
			return nil, err
		}
		patch[resource.ColSaleProduct] = strings.TrimSpace(*in.Product)
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, invalid("el monto no puede ser negativo")
		}
		patch[resource.ColSaleAmount] = *in.Amount
	}
	if in.Status != nil {
		if !entity.SaleStatus(*in.Status).Valid() {
			return nil, invalid("estado de venta %q", *in.Status)
		}
		patch[resource.ColSaleStatus] = *in.Status
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
	setIfNotNil(patch, resource.ColSaleDate, in.SaleDate)

	s, err := uc.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return ptr(toSaleResponse(s)), nil
}

// Delete elimina una venta.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, id)
}

func toSaleResponse(s entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		Product:      s.Product,
		Amount:       s.Amount,
		Status:       string(s.Status),
		SaleDate:     s.SaleDate,
		RegisteredAt: s.RegisteredAt,
	}
}
