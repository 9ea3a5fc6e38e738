package escalation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"solace/internal/models"
	"solace/internal/sentiment"
)

// Factor caps. Each heuristic contributes at most its cap to the raw
// likelihood before clamping.
const (
	sentimentCap = 0.3
	categoryCap  = 0.2
	responseCap  = 0.2
	stalenessCap = 0.15
	densityCap   = 0.15
)

// Likelihood thresholds shared by level derivation, recommended actions and
// intervention suggestions.
const (
	tierCritical = 0.8
	tierHigh     = 0.6
	tierMedium   = 0.4
	tierLow      = 0.2
)

// crisisKeywords is the fixed list used for keyword-density scoring.
// Occurrences are counted over the lowercased title plus content.
var crisisKeywords = []string{
	"kill myself",
	"suicide",
	"end my life",
	"want to die",
	"self-harm",
	"self harm",
	"hurt myself",
	"overdose",
	"no reason to live",
	"end it all",
	"better off dead",
}

// Prediction is the escalation forecast for a single post. Factors carry one
// human-readable entry per triggered heuristic for moderator audit.
type Prediction struct {
	PostID            uint                   `json:"post_id"`
	Likelihood        float64                `json:"likelihood"`
	PredictedLevel    models.EscalationLevel `json:"predicted_level"`
	Confidence        float64                `json:"confidence"`
	Factors           []string               `json:"factors"`
	RecommendedAction string                 `json:"recommended_action"`
}

// NeutralPrediction is the safe zero-result served when classification
// fails: no risk signal, no factors, default action.
func NeutralPrediction(postID uint) *Prediction {
	return &Prediction{
		PostID:            postID,
		Likelihood:        0,
		PredictedLevel:    models.LevelNone,
		Confidence:        0,
		Factors:           []string{},
		RecommendedAction: "Monitor post",
	}
}

// Predictor combines sentiment, category, reply absence, staleness and
// keyword density into escalation forecasts, and aggregates post history
// into user-needs and peak-usage forecasts.
type Predictor struct {
	posts      PostSource
	replies    ReplySource
	classifier Classifier

	// now is injected so staleness windows are deterministic in tests.
	now func() time.Time
}

// NewPredictor returns a Predictor over the given sources.
func NewPredictor(posts PostSource, replies ReplySource, classifier Classifier) *Predictor {
	return &Predictor{
		posts:      posts,
		replies:    replies,
		classifier: classifier,
		now:        time.Now,
	}
}

// WithClock overrides the predictor's clock. Test hook.
func (p *Predictor) WithClock(now func() time.Time) *Predictor {
	p.now = now
	return p
}

// PredictLikelihood forecasts how likely the post is to require escalation.
//
// Five capped factors are summed and clamped to [0, 1]. Crisis sentiment and
// two or more crisis-keyword occurrences force the predicted level to
// critical; a crisis-category post raises it to high unless already forced.
// When nothing forces a level it is derived from the final likelihood.
func (p *Predictor) PredictLikelihood(ctx context.Context, post *models.Post) (*Prediction, error) {
	replies, err := p.replies.GetReplies(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch replies for post %d: %w", post.ID, err)
	}

	var likelihood float64
	var factors []string
	forced := models.LevelNone

	// Factor 1: sentiment.
	res := p.classifier.Detect(post.Title, post.Content)
	switch {
	case res.Sentiment == sentiment.Crisis:
		likelihood += sentimentCap
		factors = append(factors, "crisis sentiment detected")
		forced = models.LevelCritical
	case res.Sentiment == sentiment.Negative && res.Score < -0.5:
		likelihood += 0.2
		factors = append(factors, "strongly negative sentiment")
	case res.Sentiment == sentiment.Negative:
		likelihood += 0.1
		factors = append(factors, "negative sentiment")
	}

	// Factor 2: category.
	switch post.Category {
	case models.CategoryCrisis:
		likelihood += categoryCap
		factors = append(factors, "posted in crisis category")
		if forced == models.LevelNone {
			forced = models.LevelHigh
		}
	case models.CategoryMentalHealth:
		likelihood += 0.1
		factors = append(factors, "posted in mental-health category")
	}

	// Factor 3: response absence.
	switch len(replies) {
	case 0:
		likelihood += responseCap
		factors = append(factors, "no replies yet")
	case 1:
		likelihood += 0.1
		factors = append(factors, "only one reply so far")
	}

	// Factor 4: staleness, only meaningful while the post is unanswered.
	if len(replies) == 0 {
		age := p.now().Sub(post.CreatedAt)
		switch {
		case age > 24*time.Hour:
			likelihood += stalenessCap
			factors = append(factors, "unanswered for more than 24 hours")
		case age > 12*time.Hour:
			likelihood += 0.1
			factors = append(factors, "unanswered for more than 12 hours")
		}
	}

	// Factor 5: crisis-keyword density.
	text := strings.ToLower(post.Title + " " + post.Content)
	var count int
	for _, kw := range crisisKeywords {
		count += strings.Count(text, kw)
	}
	if count > 0 {
		likelihood += math.Min(float64(count)*0.05, densityCap)
		factors = append(factors, fmt.Sprintf("%d crisis keyword occurrence(s)", count))
	}
	if count >= 2 {
		forced = models.LevelCritical
	}

	likelihood = clamp01(likelihood)

	level := forced
	if level == models.LevelNone {
		level = levelForLikelihood(likelihood)
	}

	confidence := math.Min((float64(len(factors))*0.15+likelihood)/2, 1.0)
	if factors == nil {
		factors = []string{}
	}

	return &Prediction{
		PostID:            post.ID,
		Likelihood:        likelihood,
		PredictedLevel:    level,
		Confidence:        confidence,
		Factors:           factors,
		RecommendedAction: actionForLikelihood(likelihood),
	}, nil
}

// InterventionSuggestions returns ordered, human-readable early-intervention
// steps derived purely from the likelihood tier of PredictLikelihood.
func (p *Predictor) InterventionSuggestions(ctx context.Context, post *models.Post) ([]string, error) {
	pred, err := p.PredictLikelihood(ctx, post)
	if err != nil {
		return nil, err
	}

	switch {
	case pred.Likelihood >= tierCritical:
		return []string{
			"Notify the crisis response team immediately",
			"Pin crisis hotline resources to the post",
			"Keep the author engaged until a counselor takes over",
		}, nil
	case pred.Likelihood >= tierHigh:
		return []string{
			"Assign a counselor to respond within the hour",
			"Share relevant support resources with the author",
		}, nil
	case pred.Likelihood >= tierMedium:
		return []string{
			"Add the post to the priority review queue",
			"Encourage trained peers to respond",
		}, nil
	case pred.Likelihood >= tierLow:
		return []string{
			"Ensure the post receives a response within the 24-hour target",
		}, nil
	default:
		return []string{"No intervention needed; continue routine monitoring"}, nil
	}
}

func levelForLikelihood(likelihood float64) models.EscalationLevel {
	switch {
	case likelihood >= tierCritical:
		return models.LevelCritical
	case likelihood >= tierHigh:
		return models.LevelHigh
	case likelihood >= tierMedium:
		return models.LevelMedium
	case likelihood >= tierLow:
		return models.LevelLow
	default:
		return models.LevelNone
	}
}

func actionForLikelihood(likelihood float64) string {
	switch {
	case likelihood >= tierCritical:
		return "Escalate to the crisis team immediately"
	case likelihood >= tierHigh:
		return "Assign a counselor within the hour"
	case likelihood >= tierMedium:
		return "Prioritize for review and monitor closely"
	case likelihood >= tierLow:
		return "Ensure a timely response within the 24-hour target"
	default:
		return "Monitor post"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
