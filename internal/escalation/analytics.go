package escalation

import (
	"context"
	"fmt"
	"math"

	"solace/internal/models"
)

// Trends groups escalation counts by detection date and by originating post
// category.
type Trends struct {
	Daily      map[string]int          `json:"daily"`
	ByCategory map[models.Category]int `json:"by_category"`
}

// Analytics is the escalation summary computed for moderator reporting.
// AverageResponseTime is in hours; rates are percentages. All ratio and
// duration outputs are rounded to one decimal place.
type Analytics struct {
	TotalEscalations    int                              `json:"total_escalations"`
	ByLevel             map[models.EscalationLevel]int   `json:"by_level"`
	ByStatus            map[models.EscalationStatus]int  `json:"by_status"`
	AverageResponseTime float64                          `json:"average_response_time"`
	ResolutionRate      float64                          `json:"resolution_rate"`
	EscalationRate      float64                          `json:"escalation_rate"`
	Trends              Trends                           `json:"trends"`
}

// ZeroAnalytics is the safe empty summary: all buckets present, all zero.
func ZeroAnalytics() *Analytics {
	return &Analytics{
		ByLevel: map[models.EscalationLevel]int{
			models.LevelCritical: 0,
			models.LevelHigh:     0,
			models.LevelMedium:   0,
			models.LevelLow:      0,
			models.LevelNone:     0,
		},
		ByStatus: map[models.EscalationStatus]int{
			models.EscalationPending:    0,
			models.EscalationInProgress: 0,
			models.EscalationResolved:   0,
			models.EscalationDismissed:  0,
		},
		Trends: Trends{
			Daily:      map[string]int{},
			ByCategory: map[models.Category]int{},
		},
	}
}

// Aggregator computes escalation summary statistics for reporting.
type Aggregator struct {
	escalations EscalationSource
	posts       PostSource
}

// NewAggregator returns an Aggregator over the given sources.
func NewAggregator(escalations EscalationSource, posts PostSource) *Aggregator {
	return &Aggregator{escalations: escalations, posts: posts}
}

// Summary tallies escalations by level and status, computes resolution
// statistics and trends, and relates escalation volume to post volume.
// Empty denominators yield 0, never NaN.
func (a *Aggregator) Summary(ctx context.Context) (*Analytics, error) {
	escalations, err := a.escalations.GetEscalations(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch escalations: %w", err)
	}
	posts, err := a.posts.GetPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	out := ZeroAnalytics()
	out.TotalEscalations = len(escalations)

	categoryByPost := make(map[uint]models.Category, len(posts))
	for _, post := range posts {
		categoryByPost[post.ID] = post.Category
	}

	var resolvedHours float64
	var resolvedWithTime int
	for _, esc := range escalations {
		out.ByLevel[esc.Level]++
		out.ByStatus[esc.Status]++

		if esc.Status == models.EscalationResolved && esc.ResolvedAt != nil {
			resolvedHours += esc.ResolvedAt.Sub(esc.DetectedAt).Hours()
			resolvedWithTime++
		}

		out.Trends.Daily[esc.DetectedAt.UTC().Format("2006-01-02")]++
		if category, ok := categoryByPost[esc.PostID]; ok {
			out.Trends.ByCategory[category]++
		}
	}

	if resolvedWithTime > 0 {
		out.AverageResponseTime = round1(resolvedHours / float64(resolvedWithTime))
	}
	if len(escalations) > 0 {
		out.ResolutionRate = round1(float64(out.ByStatus[models.EscalationResolved]) / float64(len(escalations)) * 100)
	}
	if len(posts) > 0 {
		out.EscalationRate = round1(float64(len(escalations)) / float64(len(posts)) * 100)
	}

	return out, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
