package escalation

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// activitySmoothing keeps historically quiet hours from being forecast as
// exactly zero.
const activitySmoothing = 0.3

// PeakUsage is the forecast for one hour of the day. DayOfWeek is the
// dataset-wide busiest weekday (0=Sunday..6=Saturday); every hourly entry
// carries the same value.
type PeakUsage struct {
	Hour             int     `json:"hour"`
	DayOfWeek        int     `json:"day_of_week"`
	ExpectedActivity float64 `json:"expected_activity"`
	Confidence       float64 `json:"confidence"`
}

// NeutralPeakUsage is the safe zero-result: 24 hourly entries with no
// expected activity.
func NeutralPeakUsage() []PeakUsage {
	out := make([]PeakUsage, 24)
	for h := range out {
		out[h] = PeakUsage{Hour: h}
	}
	return out
}

// PredictPeakUsage aggregates every post and reply timestamp into hourly and
// weekday histograms and forecasts expected load per hour.
//
// The output always has exactly 24 entries, sorted by expected activity
// descending (ties by hour ascending). Each entry is paired with the single
// globally busiest weekday rather than a per-hour weekday: the hour and
// weekday histograms are aggregated independently, not cross-tabulated.
// Timestamps are bucketed in UTC so identical datasets aggregate
// identically regardless of server locale.
func (p *Predictor) PredictPeakUsage(ctx context.Context) ([]PeakUsage, error) {
	posts, err := p.posts.GetPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	var hourCounts [24]int
	var dayCounts [7]int
	total := 0
	observe := func(hour, day int) {
		hourCounts[hour]++
		dayCounts[day]++
		total++
	}
	for _, post := range posts {
		t := post.CreatedAt.UTC()
		observe(t.Hour(), int(t.Weekday()))
		for _, reply := range post.Replies {
			rt := reply.CreatedAt.UTC()
			observe(rt.Hour(), int(rt.Weekday()))
		}
	}

	perHour := float64(total) / 24

	bestDay := 0
	for day, count := range dayCounts {
		if count > dayCounts[bestDay] {
			bestDay = day
		}
	}

	out := make([]PeakUsage, 24)
	for hour := 0; hour < 24; hour++ {
		observed := float64(hourCounts[hour])
		out[hour] = PeakUsage{
			Hour:             hour,
			DayOfWeek:        bestDay,
			ExpectedActivity: observed + activitySmoothing*perHour,
			Confidence:       math.Min(observed/math.Max(perHour, 1), 1.0),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpectedActivity > out[j].ExpectedActivity
	})
	return out, nil
}
