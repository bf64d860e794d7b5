package notifications

import (
	"time"

	"taskforge/routes/timeline/assets"
	"taskforge/state"
	"taskforge/store"
	"taskforge/sweep"
)

var (
	Store   *store.Store
	Sweeper *sweep.Sweeper
)

// Setup wires the sweep runner. Must be called before StartTaskMgr.
func Setup(st *store.Store, sw *sweep.Sweeper) {
	Store = st
	Sweeper = sw
}

// sweepCheck runs one missed-task sweep across every organization. Per-org
// failures are logged and skipped so one broken tenant cannot starve the
// rest.
func sweepCheck() {
	orgs, err := Store.Organizations(state.Context)

	if err != nil {
		state.Logger.Errorw("[SweepCheck] Error listing organizations", "error", err)
		return
	}

	now := time.Now()

	for _, org := range orgs {
		created, err := Sweeper.Run(state.Context, org.ID, now)

		if err != nil {
			state.Logger.Errorw("[SweepCheck] Error sweeping organization", "error", err, "org_id", org.ID)
			continue
		}

		if len(created) > 0 {
			// New alerts change the timeline, drop the org's cached pages
			assets.InvalidateTimelineCache(state.Context, org.ID)
		}
	}
}
