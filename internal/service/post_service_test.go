package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"solace/internal/escalation"
	"solace/internal/models"
	"solace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn           func(context.Context, *models.Post) error
	getByIDFn          func(context.Context, uint) (*models.Post, error)
	listFn             func(context.Context, int, int, models.Category) ([]*models.Post, error)
	getPostsFn         func(context.Context) ([]models.Post, error)
	getPostsByAuthorFn func(context.Context, uint) ([]models.Post, error)
	updateFn           func(context.Context, *models.Post) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, category models.Category) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, category)
}
func (s *postRepoStub) GetPosts(ctx context.Context) ([]models.Post, error) {
	return s.getPostsFn(ctx)
}
func (s *postRepoStub) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.getPostsByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Status: models.PostOpen}, nil
		},
		listFn: func(_ context.Context, _, _ int, _ models.Category) ([]*models.Post, error) {
			return nil, nil
		},
		getPostsFn:         func(_ context.Context) ([]models.Post, error) { return nil, nil },
		getPostsByAuthorFn: func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		updateFn:           func(_ context.Context, _ *models.Post) error { return nil },
	}
}

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	createFn     func(context.Context, *models.Reply) error
	getRepliesFn func(context.Context, uint) ([]models.Reply, error)
}

func (s *replyRepoStub) Create(ctx context.Context, reply *models.Reply) error {
	return s.createFn(ctx, reply)
}
func (s *replyRepoStub) GetReplies(ctx context.Context, postID uint) ([]models.Reply, error) {
	return s.getRepliesFn(ctx, postID)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		createFn:     func(_ context.Context, _ *models.Reply) error { return nil },
		getRepliesFn: func(_ context.Context, _ uint) ([]models.Reply, error) { return nil, nil },
	}
}

// escalationRepoStub is a stub for repository.EscalationRepository.
type escalationRepoStub struct {
	createFn         func(context.Context, *models.Escalation) error
	getByIDFn        func(context.Context, uint) (*models.Escalation, error)
	getEscalationsFn func(context.Context) ([]models.Escalation, error)
	listFn           func(context.Context, repository.EscalationFilter) ([]*models.Escalation, error)
	updateFn         func(context.Context, *models.Escalation) error
}

func (s *escalationRepoStub) Create(ctx context.Context, e *models.Escalation) error {
	return s.createFn(ctx, e)
}
func (s *escalationRepoStub) GetByID(ctx context.Context, id uint) (*models.Escalation, error) {
	return s.getByIDFn(ctx, id)
}
func (s *escalationRepoStub) GetEscalations(ctx context.Context) ([]models.Escalation, error) {
	return s.getEscalationsFn(ctx)
}
func (s *escalationRepoStub) List(ctx context.Context, f repository.EscalationFilter) ([]*models.Escalation, error) {
	return s.listFn(ctx, f)
}
func (s *escalationRepoStub) Update(ctx context.Context, e *models.Escalation) error {
	return s.updateFn(ctx, e)
}

func noopEscalationRepo() *escalationRepoStub {
	return &escalationRepoStub{
		createFn: func(_ context.Context, e *models.Escalation) error {
			e.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Escalation, error) {
			return &models.Escalation{ID: id, Status: models.EscalationPending}, nil
		},
		getEscalationsFn: func(_ context.Context) ([]models.Escalation, error) { return nil, nil },
		listFn: func(_ context.Context, _ repository.EscalationFilter) ([]*models.Escalation, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Escalation) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func newPostService(postRepo *postRepoStub, replyRepo *replyRepoStub, escRepo *escalationRepoStub) *PostService {
	return NewPostService(postRepo, replyRepo, escRepo, escalation.NewMatcher(escalation.DefaultRules()))
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := newPostService(noopPostRepo(), noopReplyRepo(), noopEscalationRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"empty title", CreatePostInput{AuthorID: 1, Category: models.CategoryGeneral, Content: "hello"}},
		{"blank title", CreatePostInput{AuthorID: 1, Category: models.CategoryGeneral, Title: "   ", Content: "hello"}},
		{"title too long", CreatePostInput{AuthorID: 1, Category: models.CategoryGeneral, Title: strings.Repeat("x", 301), Content: "hello"}},
		{"empty content", CreatePostInput{AuthorID: 1, Category: models.CategoryGeneral, Title: "hi"}},
		{"content too long", CreatePostInput{AuthorID: 1, Category: models.CategoryGeneral, Title: "hi", Content: strings.Repeat("x", 10001)}},
		{"invalid category", CreatePostInput{AuthorID: 1, Category: "gossip", Title: "hi", Content: "hello"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreatePost(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost_CleanContent(t *testing.T) {
	t.Parallel()

	var createdEscalation *models.Escalation
	escRepo := noopEscalationRepo()
	escRepo.createFn = func(_ context.Context, e *models.Escalation) error {
		createdEscalation = e
		return nil
	}

	svc := newPostService(noopPostRepo(), noopReplyRepo(), escRepo)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 1,
		Category: models.CategoryGeneral,
		Title:    "weekend plans",
		Content:  "anyone up for a hike on saturday?",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelNone, post.EscalationLevel)
	assert.Empty(t, post.EscalationReason)
	assert.Nil(t, createdEscalation, "clean posts must not open escalation records")
}

func TestPostService_CreatePost_FlaggedContentOpensEscalation(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	var createdEscalation *models.Escalation
	escRepo := noopEscalationRepo()
	escRepo.createFn = func(_ context.Context, e *models.Escalation) error {
		createdEscalation = e
		return nil
	}

	svc := newPostService(noopPostRepo(), noopReplyRepo(), escRepo).WithClock(func() time.Time { return now })
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 1,
		Category: models.CategoryGeneral,
		Title:    "I can't keep going",
		Content:  "I have been thinking about suicide",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelCritical, post.EscalationLevel)
	assert.Contains(t, post.EscalationReason, "suicide")

	require.NotNil(t, createdEscalation)
	assert.Equal(t, post.ID, createdEscalation.PostID)
	assert.Equal(t, models.LevelCritical, createdEscalation.Level)
	assert.Equal(t, models.EscalationPending, createdEscalation.Status)
	assert.Equal(t, now, createdEscalation.DetectedAt)
	assert.NotEmpty(t, createdEscalation.Reference)
}

func TestPostService_CreatePost_EscalationRecordFailureDoesNotFailPost(t *testing.T) {
	t.Parallel()

	escRepo := noopEscalationRepo()
	escRepo.createFn = func(_ context.Context, _ *models.Escalation) error {
		return errors.New("escalations table unavailable")
	}

	svc := newPostService(noopPostRepo(), noopReplyRepo(), escRepo)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 1,
		Category: models.CategoryGeneral,
		Title:    "please",
		Content:  "I want to end it all",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelCritical, post.EscalationLevel,
		"the post keeps its detected level even when the queue record fails")
}

func TestPostService_CreatePost_RepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("insert failed")
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, _ *models.Post) error { return repoErr }

	svc := newPostService(postRepo, noopReplyRepo(), noopEscalationRepo())
	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 1,
		Category: models.CategoryGeneral,
		Title:    "hi",
		Content:  "hello there",
	})
	assert.ErrorIs(t, err, repoErr)
}

func TestPostService_ListPosts_Defaults(t *testing.T) {
	t.Parallel()

	var gotLimit, gotOffset int
	postRepo := noopPostRepo()
	postRepo.listFn = func(_ context.Context, limit, offset int, _ models.Category) ([]*models.Post, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	svc := newPostService(postRepo, noopReplyRepo(), noopEscalationRepo())
	_, err := svc.ListPosts(context.Background(), ListPostsInput{Limit: -3, Offset: -1})
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Zero(t, gotOffset)
}

func TestPostService_ListPosts_InvalidCategory(t *testing.T) {
	t.Parallel()

	svc := newPostService(noopPostRepo(), noopReplyRepo(), noopEscalationRepo())
	_, err := svc.ListPosts(context.Background(), ListPostsInput{Category: "gossip"})
	assertValidationError(t, err)
}

func TestPostService_CreateReply(t *testing.T) {
	t.Parallel()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		svc := newPostService(noopPostRepo(), noopReplyRepo(), noopEscalationRepo())
		_, err := svc.CreateReply(context.Background(), CreateReplyInput{AuthorID: 1, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("unknown post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, errors.New("record not found")
		}
		svc := newPostService(postRepo, noopReplyRepo(), noopEscalationRepo())
		_, err := svc.CreateReply(context.Background(), CreateReplyInput{AuthorID: 1, PostID: 99, Content: "hi"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("first reply marks post answered", func(t *testing.T) {
		t.Parallel()
		var updated *models.Post
		postRepo := noopPostRepo()
		postRepo.updateFn = func(_ context.Context, p *models.Post) error {
			updated = p
			return nil
		}
		svc := newPostService(postRepo, noopReplyRepo(), noopEscalationRepo())
		reply, err := svc.CreateReply(context.Background(), CreateReplyInput{AuthorID: 2, PostID: 1, Content: "you are not alone"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), reply.PostID)
		require.NotNil(t, updated)
		assert.Equal(t, models.PostAnswered, updated.Status)
	})
}
