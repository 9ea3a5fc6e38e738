package repository

import (
	"context"

	"solace/internal/models"

	"gorm.io/gorm"
)

// EscalationFilter narrows escalation listings. Zero values mean no filter.
type EscalationFilter struct {
	Status models.EscalationStatus
	Level  models.EscalationLevel
	Limit  int
	Offset int
}

// EscalationRepository defines the interface for escalation records.
// Escalations are append-and-transition only; there is no delete.
// GetEscalations doubles as the analytics aggregator's source.
type EscalationRepository interface {
	Create(ctx context.Context, escalation *models.Escalation) error
	GetByID(ctx context.Context, id uint) (*models.Escalation, error)
	GetEscalations(ctx context.Context) ([]models.Escalation, error)
	List(ctx context.Context, filter EscalationFilter) ([]*models.Escalation, error)
	Update(ctx context.Context, escalation *models.Escalation) error
}

type escalationRepository struct {
	db *gorm.DB
}

// NewEscalationRepository creates a new EscalationRepository
func NewEscalationRepository(db *gorm.DB) EscalationRepository {
	return &escalationRepository{db: db}
}

func (r *escalationRepository) Create(ctx context.Context, escalation *models.Escalation) error {
	return r.db.WithContext(ctx).Create(escalation).Error
}

func (r *escalationRepository) GetByID(ctx context.Context, id uint) (*models.Escalation, error) {
	var escalation models.Escalation
	if err := r.db.WithContext(ctx).Preload("Post").First(&escalation, id).Error; err != nil {
		return nil, err
	}
	return &escalation, nil
}

func (r *escalationRepository) GetEscalations(ctx context.Context) ([]models.Escalation, error) {
	var escalations []models.Escalation
	err := r.db.WithContext(ctx).Order("detected_at DESC").Find(&escalations).Error
	return escalations, err
}

func (r *escalationRepository) List(ctx context.Context, filter EscalationFilter) ([]*models.Escalation, error) {
	query := r.db.WithContext(ctx).Preload("Post")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var escalations []*models.Escalation
	err := query.
		Offset(filter.Offset).
		Order("detected_at DESC").
		Find(&escalations).Error
	return escalations, err
}

func (r *escalationRepository) Update(ctx context.Context, escalation *models.Escalation) error {
	return r.db.WithContext(ctx).Save(escalation).Error
}
