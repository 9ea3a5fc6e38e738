// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"solace/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. GetPosts
// and GetPostsByAuthor double as the escalation engine's post source.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int, category models.Category) ([]*models.Post, error)
	GetPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyReplyCount(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Replies").
		Preload("Replies.Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, category models.Category) ([]*models.Post, error) {
	var posts []*models.Post
	query := r.applyReplyCount(r.db.WithContext(ctx)).
		Preload("Author")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// GetPosts returns every post newest first with replies preloaded, as the
// peak-usage and analytics aggregations require.
func (r *postRepository) GetPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Replies").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// applyReplyCount adds a subquery to fetch the reply count in a single query.
func (r *postRepository) applyReplyCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, (SELECT COUNT(*) FROM replies WHERE replies.post_id = posts.id) as replies_count")
}
