package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix   = "post:%d"
	AnalyticsKey    = "escalations:analytics"
	PeakUsageKey    = "insights:peak-usage"
	UserNeedsPrefix = "insights:needs:%d"
)

const (
	PostTTL      = 30 * time.Minute
	AnalyticsTTL = 2 * time.Minute
	PeakUsageTTL = 10 * time.Minute
	UserNeedsTTL = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func UserNeedsKey(userID uint) string {
	return fmt.Sprintf(UserNeedsPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateAnalytics drops the cached analytics summary. Called whenever an
// escalation record is created or transitioned.
func InvalidateAnalytics(ctx context.Context) {
	Invalidate(ctx, AnalyticsKey)
}
