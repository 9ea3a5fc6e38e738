package escalation

import (
	"context"

	"solace/internal/models"
	"solace/internal/sentiment"
)

// PostSource supplies posts for aggregation. GetPosts must return replies
// preloaded so peak-usage aggregation sees every timestamp, and both methods
// must return posts newest first.
type PostSource interface {
	GetPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
}

// ReplySource supplies the replies of a single post, oldest first.
type ReplySource interface {
	GetReplies(ctx context.Context, postID uint) ([]models.Reply, error)
}

// EscalationSource supplies the full escalation collection.
type EscalationSource interface {
	GetEscalations(ctx context.Context) ([]models.Escalation, error)
}

// Classifier is the sentiment capability the engine consumes. It is
// deterministic for identical inputs.
type Classifier interface {
	Detect(title, content string) sentiment.Result
}
