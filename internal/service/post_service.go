// Package service contains the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"solace/internal/cache"
	"solace/internal/escalation"
	"solace/internal/middleware"
	"solace/internal/models"
	"solace/internal/observability"
	"solace/internal/repository"

	"github.com/google/uuid"
)

type PostService struct {
	postRepo       repository.PostRepository
	replyRepo      repository.ReplyRepository
	escalationRepo repository.EscalationRepository
	matcher        *escalation.Matcher

	// now is injected so DetectedAt timestamps are deterministic in tests.
	now func() time.Time
}

type CreatePostInput struct {
	AuthorID uint
	Category models.Category
	Title    string
	Content  string
}

type ListPostsInput struct {
	Limit    int
	Offset   int
	Category models.Category
}

type CreateReplyInput struct {
	AuthorID uint
	PostID   uint
	Content  string
}

func NewPostService(
	postRepo repository.PostRepository,
	replyRepo repository.ReplyRepository,
	escalationRepo repository.EscalationRepository,
	matcher *escalation.Matcher,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		replyRepo:      replyRepo,
		escalationRepo: escalationRepo,
		matcher:        matcher,
		now:            time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *PostService) WithClock(now func() time.Time) *PostService {
	s.now = now
	return s
}

// CreatePost validates and stores a new support post, runs the rule matcher
// over it and opens an escalation record when the matcher flags it. A
// failure to persist the escalation record does not fail the post: the post
// keeps its detected level and the failure is logged and counted.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 300
	const maxContentLen = 10000

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}
	if !in.Category.Valid() {
		return nil, models.NewValidationError("Invalid category")
	}

	level, reason := s.matcher.Check(in.Title+" "+in.Content, in.Category)

	post := &models.Post{
		AuthorID:         in.AuthorID,
		Category:         in.Category,
		Title:            in.Title,
		Content:          in.Content,
		Status:           models.PostOpen,
		EscalationLevel:  level,
		EscalationReason: reason,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if level != models.LevelNone {
		esc := &models.Escalation{
			Reference:  uuid.NewString(),
			PostID:     post.ID,
			Level:      level,
			Status:     models.EscalationPending,
			Reason:     reason,
			DetectedAt: s.now(),
		}
		if err := s.escalationRepo.Create(ctx, esc); err != nil {
			// The post is already stored with its level; losing the queue
			// record must not lose the post.
			middleware.Logger.ErrorContext(ctx, "failed to record escalation",
				slog.Uint64("post_id", uint64(post.ID)),
				slog.String("level", string(level)),
				slog.String("error", err.Error()),
			)
			observability.EngineFailures.WithLabelValues("escalation_record").Inc()
		} else {
			observability.EscalationsDetected.WithLabelValues(string(level)).Inc()
			cache.InvalidateAnalytics(ctx)
		}
	}

	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	if in.Category != "" && !in.Category.Valid() {
		return nil, models.NewValidationError("Invalid category")
	}
	return s.postRepo.List(ctx, limit, offset, in.Category)
}

// CreateReply stores a reply and marks the post answered if it was still
// open.
func (s *PostService) CreateReply(ctx context.Context, in CreateReplyInput) (*models.Reply, error) {
	const maxReplyLen = 5000

	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxReplyLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	reply := &models.Reply{
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
		Content:  in.Content,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	if post.Status == models.PostOpen {
		post.Status = models.PostAnswered
		if err := s.postRepo.Update(ctx, post); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to mark post answered",
				slog.Uint64("post_id", uint64(post.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	cache.Invalidate(ctx, cache.PostKey(in.PostID))
	return reply, nil
}

func (s *PostService) GetReplies(ctx context.Context, postID uint) ([]models.Reply, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.replyRepo.GetReplies(ctx, postID)
}
