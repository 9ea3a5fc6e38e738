package repository

import (
	"context"
	"testing"
	"time"

	"solace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyRepository_CreateAndGetReplies(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	replyRepo := NewReplyRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "asker")
	helper := createTestUser(t, db, "helper")

	post := &models.Post{
		AuthorID: author.ID,
		Category: models.CategoryGeneral,
		Title:    "anyone around",
		Content:  "just want to talk",
		Status:   models.PostOpen,
	}
	require.NoError(t, postRepo.Create(ctx, post))

	second := &models.Reply{PostID: post.ID, AuthorID: helper.ID, Content: "still here", CreatedAt: time.Now()}
	first := &models.Reply{PostID: post.ID, AuthorID: helper.ID, Content: "here for you", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, replyRepo.Create(ctx, second))
	require.NoError(t, replyRepo.Create(ctx, first))

	replies, err := replyRepo.GetReplies(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)

	// Oldest first so threads read top to bottom.
	assert.Equal(t, "here for you", replies[0].Content)
	assert.Equal(t, "still here", replies[1].Content)
	assert.Equal(t, "helper", replies[0].Author.Username)
}

func TestReplyRepository_GetReplies_Empty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	replyRepo := NewReplyRepository(db)

	replies, err := replyRepo.GetReplies(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, replies)
}

func TestReplyRepository_ScopedToPost(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	replyRepo := NewReplyRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "scoped")
	a := &models.Post{AuthorID: author.ID, Category: models.CategoryGeneral, Title: "a", Content: "c", Status: models.PostOpen}
	b := &models.Post{AuthorID: author.ID, Category: models.CategoryGeneral, Title: "b", Content: "c", Status: models.PostOpen}
	require.NoError(t, postRepo.Create(ctx, a))
	require.NoError(t, postRepo.Create(ctx, b))

	require.NoError(t, replyRepo.Create(ctx, &models.Reply{PostID: a.ID, AuthorID: author.ID, Content: "for a"}))

	replies, err := replyRepo.GetReplies(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)
}
