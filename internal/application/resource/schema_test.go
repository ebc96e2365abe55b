package resource_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

func TestCustomerSchema_Decode(t *testing.T) {
	id := uuid.New()
	row := repository.Row{
		resource.ColCustomerID:           id,
		resource.ColOwnerID:              testOwner,
		resource.ColCustomerName:         "Comercial Andina",
		resource.ColCustomerEmail:        nil,
		resource.ColCustomerStatus:       "activo",
		resource.ColCustomerRegisteredAt: "2026-05-03T10:15:00Z",
	}

	c, err := resource.Customers.Decode(row)

	require.NoError(t, err)
	assert.Equal(t, id.String(), c.ID)
	assert.Equal(t, entity.CustomerActive, c.Status)
	assert.Empty(t, c.Email)
	assert.Equal(t, time.Date(2026, 5, 3, 10, 15, 0, 0, time.UTC), c.RegisteredAt.UTC())
}

func TestCustomerSchema_RejectsMalformedRows(t *testing.T) {
	valid := func() repository.Row {
		return repository.Row{
			resource.ColCustomerID:           "c1",
			resource.ColOwnerID:              testOwner,
			resource.ColCustomerName:         "Ana",
			resource.ColCustomerStatus:       "prospecto",
			resource.ColCustomerRegisteredAt: time.Now(),
		}
	}
	tests := []struct {
		name   string
		mutate func(repository.Row)
	}{
		{"sin id", func(r repository.Row) { delete(r, resource.ColCustomerID) }},
		{"nombre vacío", func(r repository.Row) { r[resource.ColCustomerName] = "  " }},
		{"estado fuera de la enumeración", func(r repository.Row) { r[resource.ColCustomerStatus] = "vip" }},
		{"nombre no textual", func(r repository.Row) { r[resource.ColCustomerName] = 42 }},
		{"fecha ilegible", func(r repository.Row) { r[resource.ColCustomerRegisteredAt] = "ayer" }},
		{"fecha vacía", func(r repository.Row) { r[resource.ColCustomerRegisteredAt] = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := valid()
			tt.mutate(row)
			_, err := resource.Customers.Decode(row)
			assert.Error(t, err)
		})
	}
}

func TestSaleSchema_AmountNeverFailsDecode(t *testing.T) {
	row := repository.Row{
		resource.ColSaleID:           "v1",
		resource.ColOwnerID:          testOwner,
		resource.ColSaleProduct:      "Consultoría",
		resource.ColSaleStatus:       "completado",
		resource.ColSaleDate:         "2026-05-10",
		resource.ColSaleRegisteredAt: time.Now(),
	}
	for _, tc := range []struct {
		raw  any
		want decimal.Decimal
	}{
		{nil, decimal.Zero},
		{"no-numérico", decimal.Zero},
		{"150.50", decimal.RequireFromString("150.50")},
		{json.Number("20"), decimal.NewFromInt(20)},
		{99.5, decimal.NewFromFloat(99.5)},
	} {
		row[resource.ColSaleAmount] = tc.raw
		s, err := resource.Sales.Decode(row)
		require.NoError(t, err, "monto %v", tc.raw)
		assert.True(t, tc.want.Equal(s.Amount), "monto %v: se esperaba %s, llegó %s", tc.raw, tc.want, s.Amount)
	}
}

func TestTaskSchema_OptionalFields(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	row := taskRow("t1", testOwner, time.Now())
	row[resource.ColTaskDueDate] = due
	row[resource.ColTaskCompleted] = true

	task, err := resource.Tasks.Decode(row)
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
	assert.True(t, task.Completed)
	assert.Empty(t, task.CustomerID)

	delete(row, resource.ColTaskDueDate)
	task, err = resource.Tasks.Decode(row)
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
}

func TestNoteSchema_ScopedByCustomer(t *testing.T) {
	assert.Equal(t, resource.ColCustomerID, resource.Notes.OwnerField())
	assert.Equal(t, resource.ColCustomerID, resource.Files.OwnerField())

	_, err := resource.Notes.Decode(repository.Row{
		resource.ColNoteID:        "n1",
		resource.ColCustomerID:    "c1",
		resource.ColNoteType:      "fax",
		resource.ColNoteTitle:     "Seguimiento",
		resource.ColNoteCreatedAt: time.Now(),
	})
	assert.Error(t, err)
}
