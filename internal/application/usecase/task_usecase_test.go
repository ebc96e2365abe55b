package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/domain"
)

func TestTaskUseCase_Lifecycle(t *testing.T) {
	f := newFixture(t, newMemory(), userA)
	ctx := context.Background()
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.tasks.Create(ctx, dto.CreateTaskRequest{Title: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	first, err := f.tasks.Create(ctx, dto.CreateTaskRequest{Title: "Llamar a Ana", DueDate: &due})
	require.NoError(t, err)
	assert.False(t, first.Completed)
	require.NotNil(t, first.DueDate)
	assert.True(t, due.Equal(*first.DueDate))

	second, err := f.tasks.Create(ctx, dto.CreateTaskRequest{Title: "Enviar cotización"})
	require.NoError(t, err)

	done, err := f.tasks.Complete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	pending, err := f.tasks.List(dto.TaskFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, second.ID, pending.Items[0].ID)

	completed, err := f.tasks.List(dto.TaskFilter{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, completed.Items, 1)
	assert.Equal(t, first.ID, completed.Items[0].ID)

	_, err = f.tasks.List(dto.TaskFilter{Status: "someday"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.tasks.Delete(ctx, second.ID))
	assert.ErrorIs(t, f.tasks.Delete(ctx, second.ID), domain.ErrNotFound)
}

func TestTaskUseCase_CustomerReferenceMustBeOwned(t *testing.T) {
	remote := newMemory()
	owner := newFixture(t, remote, userA)
	other := newFixture(t, remote, userB)
	ctx := context.Background()
	c, err := owner.customers.Create(ctx, dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)

	_, err = other.tasks.Create(ctx, dto.CreateTaskRequest{Title: "Espiar", CustomerID: c.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = owner.tasks.Create(ctx, dto.CreateTaskRequest{Title: "X", CustomerID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	task, err := owner.tasks.Create(ctx, dto.CreateTaskRequest{Title: "Visitar", CustomerID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, c.ID, task.CustomerID)

	cleared, err := owner.tasks.Update(ctx, task.ID, dto.UpdateTaskRequest{CustomerID: str("")})
	require.NoError(t, err)
	assert.Empty(t, cleared.CustomerID)
}
