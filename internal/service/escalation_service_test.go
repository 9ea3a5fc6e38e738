package service

import (
	"context"
	"testing"
	"time"

	"solace/internal/models"
	"solace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscalationService_ListEscalations_FilterValidation(t *testing.T) {
	t.Parallel()

	svc := NewEscalationService(noopEscalationRepo())
	ctx := context.Background()

	t.Run("invalid status", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ListEscalations(ctx, repository.EscalationFilter{Status: "archived"})
		assertValidationError(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ListEscalations(ctx, repository.EscalationFilter{Level: "urgent"})
		assertValidationError(t, err)
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()
		var gotFilter repository.EscalationFilter
		repo := noopEscalationRepo()
		repo.listFn = func(_ context.Context, f repository.EscalationFilter) ([]*models.Escalation, error) {
			gotFilter = f
			return nil, nil
		}
		svc2 := NewEscalationService(repo)
		_, err := svc2.ListEscalations(ctx, repository.EscalationFilter{Limit: -5, Offset: -1})
		require.NoError(t, err)
		assert.Equal(t, 50, gotFilter.Limit)
		assert.Zero(t, gotFilter.Offset)
	})
}

func TestEscalationService_UpdateStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("invalid status rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewEscalationService(noopEscalationRepo())
		_, err := svc.UpdateStatus(ctx, UpdateEscalationInput{EscalationID: 1, Status: "archived"})
		assertValidationError(t, err)
	})

	t.Run("unknown escalation", func(t *testing.T) {
		t.Parallel()
		repo := noopEscalationRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Escalation, error) {
			return nil, assert.AnError
		}
		svc := NewEscalationService(repo)
		_, err := svc.UpdateStatus(ctx, UpdateEscalationInput{EscalationID: 99, Status: models.EscalationResolved})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("terminal escalation cannot transition", func(t *testing.T) {
		t.Parallel()
		repo := noopEscalationRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Escalation, error) {
			return &models.Escalation{ID: id, Status: models.EscalationResolved}, nil
		}
		svc := NewEscalationService(repo)
		_, err := svc.UpdateStatus(ctx, UpdateEscalationInput{EscalationID: 1, Status: models.EscalationInProgress})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("resolving stamps ResolvedAt", func(t *testing.T) {
		t.Parallel()
		var updated *models.Escalation
		repo := noopEscalationRepo()
		repo.updateFn = func(_ context.Context, e *models.Escalation) error {
			updated = e
			return nil
		}
		svc := NewEscalationService(repo).WithClock(func() time.Time { return now })
		esc, err := svc.UpdateStatus(ctx, UpdateEscalationInput{EscalationID: 1, Status: models.EscalationResolved})
		require.NoError(t, err)
		assert.Equal(t, models.EscalationResolved, esc.Status)
		require.NotNil(t, esc.ResolvedAt)
		assert.Equal(t, now, *esc.ResolvedAt)
		require.NotNil(t, updated)
	})

	t.Run("dismissing leaves ResolvedAt empty", func(t *testing.T) {
		t.Parallel()
		svc := NewEscalationService(noopEscalationRepo())
		esc, err := svc.UpdateStatus(ctx, UpdateEscalationInput{EscalationID: 1, Status: models.EscalationDismissed})
		require.NoError(t, err)
		assert.Equal(t, models.EscalationDismissed, esc.Status)
		assert.Nil(t, esc.ResolvedAt)
	})
}
