package service

import (
	"context"
	"log/slog"

	"solace/internal/cache"
	"solace/internal/escalation"
	"solace/internal/middleware"
	"solace/internal/models"
	"solace/internal/observability"
	"solace/internal/sentiment"
)

// InsightService is the fail-open boundary around the escalation engine.
// Every method returns a usable neutral result alongside any engine error:
// a broken classifier must never take down post serving, but the degradation
// is logged and counted so it stays visible.
type InsightService struct {
	predictor  *escalation.Predictor
	aggregator *escalation.Aggregator
	analyzer   *sentiment.Analyzer
}

func NewInsightService(predictor *escalation.Predictor, aggregator *escalation.Aggregator, analyzer *sentiment.Analyzer) *InsightService {
	return &InsightService{
		predictor:  predictor,
		aggregator: aggregator,
		analyzer:   analyzer,
	}
}

func (s *InsightService) degrade(ctx context.Context, component string, err error) {
	middleware.Logger.ErrorContext(ctx, "escalation engine degraded to neutral result",
		slog.String("component", component),
		slog.String("error", err.Error()),
	)
	observability.EngineFailures.WithLabelValues(component).Inc()
}

// PredictPost forecasts escalation likelihood for one post. On engine
// failure the neutral prediction is returned together with the error.
func (s *InsightService) PredictPost(ctx context.Context, post *models.Post) (*escalation.Prediction, error) {
	defer observability.TrackPrediction("likelihood")()

	pred, err := s.predictor.PredictLikelihood(ctx, post)
	if err != nil {
		s.degrade(ctx, "likelihood", err)
		return escalation.NeutralPrediction(post.ID), err
	}
	return pred, nil
}

// AnalyzePost produces the auxiliary sentiment analysis shown alongside a
// post in moderator views. Pure computation over the post text; it cannot
// degrade.
func (s *InsightService) AnalyzePost(post *models.Post) sentiment.Analysis {
	defer observability.TrackPrediction("analysis")()

	return s.analyzer.Analyze(post.Title, post.Content, post.Category)
}

// SuggestInterventions returns early-intervention steps for one post, or a
// monitoring-only suggestion on engine failure.
func (s *InsightService) SuggestInterventions(ctx context.Context, post *models.Post) ([]string, error) {
	defer observability.TrackPrediction("interventions")()

	steps, err := s.predictor.InterventionSuggestions(ctx, post)
	if err != nil {
		s.degrade(ctx, "interventions", err)
		return []string{"No intervention needed; continue routine monitoring"}, err
	}
	return steps, nil
}

// UserNeeds estimates a user's support needs, cached briefly per user. On
// engine failure the neutral low-risk result is returned with the error.
func (s *InsightService) UserNeeds(ctx context.Context, userID uint) (*escalation.UserNeeds, error) {
	defer observability.TrackPrediction("user_needs")()

	var needs escalation.UserNeeds
	err := cache.Aside(ctx, cache.UserNeedsKey(userID), &needs, cache.UserNeedsTTL, func() error {
		out, err := s.predictor.PredictUserNeeds(ctx, userID)
		if err != nil {
			return err
		}
		needs = *out
		return nil
	})
	if err != nil {
		s.degrade(ctx, "user_needs", err)
		return escalation.NeutralUserNeeds(userID), err
	}
	return &needs, nil
}

// PeakUsage forecasts hourly platform load, cached globally. On engine
// failure 24 neutral entries are returned with the error.
func (s *InsightService) PeakUsage(ctx context.Context) ([]escalation.PeakUsage, error) {
	defer observability.TrackPrediction("peak_usage")()

	var usage []escalation.PeakUsage
	err := cache.Aside(ctx, cache.PeakUsageKey, &usage, cache.PeakUsageTTL, func() error {
		out, err := s.predictor.PredictPeakUsage(ctx)
		if err != nil {
			return err
		}
		usage = out
		return nil
	})
	if err != nil {
		s.degrade(ctx, "peak_usage", err)
		return escalation.NeutralPeakUsage(), err
	}
	return usage, nil
}

// Analytics computes the escalation summary, cached briefly because it scans
// every escalation and post. On failure the zero summary is returned with
// the error.
func (s *InsightService) Analytics(ctx context.Context) (*escalation.Analytics, error) {
	defer observability.TrackPrediction("analytics")()

	var summary escalation.Analytics
	err := cache.Aside(ctx, cache.AnalyticsKey, &summary, cache.AnalyticsTTL, func() error {
		out, err := s.aggregator.Summary(ctx)
		if err != nil {
			return err
		}
		summary = *out
		return nil
	})
	if err != nil {
		s.degrade(ctx, "analytics", err)
		return escalation.ZeroAnalytics(), err
	}
	return &summary, nil
}
