// Timeline pages are cached outside the aggregator with an explicit TTL and
// an explicit invalidation trigger (a version counter bumped when a sweep
// writes alerts). The aggregator itself stays cache-free.
package assets

import (
	"context"
	"strconv"

	"taskforge/state"
	"taskforge/sweep"
	"taskforge/timeline"
)

var (
	Builder *timeline.Builder
	Sweeper *sweep.Sweeper
)

// Setup wires the engine instances used by the timeline and sweep routes.
func Setup(b *timeline.Builder, sw *sweep.Sweeper) {
	Builder = b
	Sweeper = sw
}

func versionKey(orgID string) string {
	return "timeline_ver:" + orgID
}

func pageKey(orgID string, version string, page uint64) string {
	return "timeline:" + orgID + ":" + version + ":" + strconv.FormatUint(page, 10)
}

func timelineVersion(ctx context.Context, orgID string) string {
	v := state.Redis.Get(ctx, versionKey(orgID)).Val()

	if v == "" {
		return "0"
	}

	return v
}

func GetCachedTimeline(ctx context.Context, orgID string, page uint64) ([]byte, bool) {
	payload, err := state.Redis.Get(ctx, pageKey(orgID, timelineVersion(ctx, orgID), page)).Bytes()

	if err != nil {
		return nil, false
	}

	return payload, true
}

func SetCachedTimeline(ctx context.Context, orgID string, page uint64, payload []byte) {
	err := state.Redis.Set(ctx, pageKey(orgID, timelineVersion(ctx, orgID), page), payload, state.Config.Engine.CacheTTL.Duration()).Err()

	if err != nil {
		state.Logger.Errorw("Error caching timeline page", "error", err, "org_id", orgID)
	}
}

// InvalidateTimelineCache bumps the organization's timeline version so every
// cached page misses from now on. Stale entries age out via their TTL.
func InvalidateTimelineCache(ctx context.Context, orgID string) {
	err := state.Redis.Incr(ctx, versionKey(orgID)).Err()

	if err != nil {
		state.Logger.Errorw("Error invalidating timeline cache", "error", err, "org_id", orgID)
	}
}
