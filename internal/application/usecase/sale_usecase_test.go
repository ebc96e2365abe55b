package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/domain"
)

func TestSaleUseCase_CreateDefaultsAndValidation(t *testing.T) {
	f := newFixture(t, newMemory(), userA)
	ctx := context.Background()

	_, err := f.sales.Create(ctx, dto.CreateSaleRequest{Product: "", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.sales.Create(ctx, dto.CreateSaleRequest{Product: "Asesoría", Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.sales.Create(ctx, dto.CreateSaleRequest{Product: "Asesoría", Status: "regalada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	before := time.Now()
	s, err := f.sales.Create(ctx, dto.CreateSaleRequest{Product: "Asesoría", Amount: decimal.RequireFromString("1250000.50")})
	require.NoError(t, err)
	assert.Equal(t, "completado", s.Status)
	assert.True(t, decimal.RequireFromString("1250000.50").Equal(s.Amount))
	assert.False(t, s.SaleDate.Before(before.Add(-time.Second)), "sin fecha se usa la actual")
}

func TestSaleUseCase_UpdateAndFilter(t *testing.T) {
	f := newFixture(t, newMemory(), userA)
	ctx := context.Background()
	c, err := f.customers.Create(ctx, dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)
	date := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	a, err := f.sales.Create(ctx, dto.CreateSaleRequest{Product: "Plan anual", Amount: decimal.NewFromInt(100), CustomerID: c.ID, SaleDate: &date})
	require.NoError(t, err)
	_, err = f.sales.Create(ctx, dto.CreateSaleRequest{Product: "Soporte", Amount: decimal.NewFromInt(40), Status: "pendiente"})
	require.NoError(t, err)

	amount := decimal.NewFromInt(120)
	updated, err := f.sales.Update(ctx, a.ID, dto.UpdateSaleRequest{Amount: &amount, Status: str("cancelado")})
	require.NoError(t, err)
	assert.True(t, amount.Equal(updated.Amount))
	assert.Equal(t, "cancelado", updated.Status)
	assert.True(t, date.Equal(updated.SaleDate))

	cancelled, err := f.sales.List(dto.SaleFilter{Status: "cancelado"})
	require.NoError(t, err)
	require.Len(t, cancelled.Items, 1)

	byCustomer, err := f.sales.List(dto.SaleFilter{CustomerID: c.ID})
	require.NoError(t, err)
	require.Len(t, byCustomer.Items, 1)
	assert.Equal(t, a.ID, byCustomer.Items[0].ID)

	_, err = f.sales.List(dto.SaleFilter{Status: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
