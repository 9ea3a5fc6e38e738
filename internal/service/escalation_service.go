package service

import (
	"context"
	"time"

	"solace/internal/cache"
	"solace/internal/models"
	"solace/internal/repository"
)

type EscalationService struct {
	escalationRepo repository.EscalationRepository

	now func() time.Time
}

type UpdateEscalationInput struct {
	EscalationID uint
	Status       models.EscalationStatus
}

func NewEscalationService(escalationRepo repository.EscalationRepository) *EscalationService {
	return &EscalationService{
		escalationRepo: escalationRepo,
		now:            time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *EscalationService) WithClock(now func() time.Time) *EscalationService {
	s.now = now
	return s
}

func (s *EscalationService) ListEscalations(ctx context.Context, filter repository.EscalationFilter) ([]*models.Escalation, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, models.NewValidationError("Invalid status filter")
	}
	if filter.Level != "" && filter.Level.Rank() < 0 {
		return nil, models.NewValidationError("Invalid level filter")
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.escalationRepo.List(ctx, filter)
}

func (s *EscalationService) GetEscalation(ctx context.Context, id uint) (*models.Escalation, error) {
	esc, err := s.escalationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewNotFoundError("Escalation", id)
	}
	return esc, nil
}

// UpdateStatus moves an escalation through its handling lifecycle. Resolved
// and dismissed are terminal; an invalid transition is rejected. Resolving
// stamps ResolvedAt so response-time analytics can measure it.
func (s *EscalationService) UpdateStatus(ctx context.Context, in UpdateEscalationInput) (*models.Escalation, error) {
	if !in.Status.Valid() {
		return nil, models.NewValidationError("Invalid status")
	}

	esc, err := s.escalationRepo.GetByID(ctx, in.EscalationID)
	if err != nil {
		return nil, models.NewNotFoundError("Escalation", in.EscalationID)
	}

	if !esc.CanTransition(in.Status) {
		return nil, models.NewConflictError("Cannot transition escalation from " + string(esc.Status) + " to " + string(in.Status))
	}

	esc.Status = in.Status
	if in.Status == models.EscalationResolved {
		resolvedAt := s.now()
		esc.ResolvedAt = &resolvedAt
	}

	if err := s.escalationRepo.Update(ctx, esc); err != nil {
		return nil, err
	}

	cache.InvalidateAnalytics(ctx)
	return esc, nil
}
