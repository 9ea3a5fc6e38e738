package escalation

import (
	"context"
	"fmt"
	"math"

	"solace/internal/models"
	"solace/internal/sentiment"
)

// sentimentSampleSize bounds the number of posts whose sentiment is sampled
// when estimating user needs, keeping per-user cost constant.
const sentimentSampleSize = 10

// Need is one per-category support-need estimate for a user.
type Need struct {
	Category           models.Category `json:"category"`
	Likelihood         float64         `json:"likelihood"`
	Urgency            string          `json:"urgency"`
	SuggestedResources []string        `json:"suggested_resources"`
}

// UserNeeds aggregates a user's post history into support-need estimates and
// an overall risk tier.
type UserNeeds struct {
	UserID    uint   `json:"user_id"`
	Needs     []Need `json:"needs"`
	RiskLevel string `json:"risk_level"`
}

// NeutralUserNeeds is the safe zero-result for a user: no needs, low risk.
func NeutralUserNeeds(userID uint) *UserNeeds {
	return &UserNeeds{UserID: userID, Needs: []Need{}, RiskLevel: "low"}
}

// PredictUserNeeds tallies the user's posts per category and samples
// sentiment over the most recent posts to estimate per-category need and an
// overall risk tier. A user with no posts is low risk with no needs.
func (p *Predictor) PredictUserNeeds(ctx context.Context, userID uint) (*UserNeeds, error) {
	posts, err := p.posts.GetPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for user %d: %w", userID, err)
	}
	if len(posts) == 0 {
		return NeutralUserNeeds(userID), nil
	}

	counts := make(map[models.Category]int, len(models.Categories))
	for _, post := range posts {
		counts[post.Category]++
	}

	// Posts arrive newest first, so the sample window is the most recent
	// posts.
	sample := posts
	if len(sample) > sentimentSampleSize {
		sample = sample[:sentimentSampleSize]
	}
	var crisisSamples, negativeSamples int
	for _, post := range sample {
		switch p.classifier.Detect(post.Title, post.Content).Sentiment {
		case sentiment.Crisis:
			crisisSamples++
		case sentiment.Negative:
			negativeSamples++
		}
	}

	needs := make([]Need, 0, len(counts))
	for _, category := range models.Categories {
		count := counts[category]
		if count == 0 {
			continue
		}
		urgency := "low"
		switch {
		case category == models.CategoryCrisis || crisisSamples > 0:
			urgency = "high"
		case negativeSamples > 2:
			urgency = "medium"
		}
		needs = append(needs, Need{
			Category:           category,
			Likelihood:         math.Min(float64(count)/5, 1.0),
			Urgency:            urgency,
			SuggestedResources: ResourcesFor(category),
		})
	}

	risk := "low"
	switch {
	case crisisSamples > 0 || counts[models.CategoryCrisis] > 0:
		risk = "high"
	case negativeSamples > 3 || counts[models.CategoryMentalHealth] > 3:
		risk = "medium"
	}

	return &UserNeeds{UserID: userID, Needs: needs, RiskLevel: risk}, nil
}
