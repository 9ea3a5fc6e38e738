package repository

import (
	"context"

	"solace/internal/models"

	"gorm.io/gorm"
)

// ReplyRepository defines the interface for reply operations. GetReplies
// doubles as the escalation engine's reply source.
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	GetReplies(ctx context.Context, postID uint) ([]models.Reply, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) GetReplies(ctx context.Context, postID uint) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&replies).Error
	return replies, err
}
