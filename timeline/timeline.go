// Package timeline merges four independently shaped record streams into one
// prioritized, paginated activity feed. A build is read-only and fails
// wholesale if any source fetch fails: a partial merge would misrepresent
// the overdue counts it is asked to report.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskforge/types"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// ErrSourceFetch wraps any source query failure or timeout. The caller is
// expected to retry wholesale or show a stale view.
var ErrSourceFetch = errors.New("timeline source fetch failed")

// Sources is the read side of the record store, scoped per organization.
// The four fetches have no ordering dependency and are issued concurrently.
type Sources interface {
	AssignmentsSince(ctx context.Context, orgID string, since time.Time, limit int) ([]types.Assignment, error)
	SubmissionsSince(ctx context.Context, orgID string, since time.Time, limit int) ([]types.Submission, error)
	ChecklistInstancesSince(ctx context.Context, orgID string, since time.Time, limit int) ([]types.ChecklistInstance, error)
	MissedTaskAlertsSince(ctx context.Context, orgID string, since time.Time, limit int) ([]types.Alert, error)
}

const (
	DefaultDueSoonWindow = 72 * time.Hour
	DefaultRecencyWindow = 30 * 24 * time.Hour
	DefaultFetchTimeout  = 5 * time.Second
	DefaultPageSize      = 10
	DefaultFetchCap      = 200
)

type Builder struct {
	Sources Sources
	Logger  *zap.SugaredLogger

	// Zero values fall back to the package defaults.
	DueSoonWindow time.Duration
	RecencyWindow time.Duration
	FetchTimeout  time.Duration
	PageSize      int
	FetchCap      int
}

func (b *Builder) dueSoonWindow() time.Duration {
	if b.DueSoonWindow > 0 {
		return b.DueSoonWindow
	}
	return DefaultDueSoonWindow
}

func (b *Builder) recencyWindow() time.Duration {
	if b.RecencyWindow > 0 {
		return b.RecencyWindow
	}
	return DefaultRecencyWindow
}

func (b *Builder) fetchTimeout() time.Duration {
	if b.FetchTimeout > 0 {
		return b.FetchTimeout
	}
	return DefaultFetchTimeout
}

func (b *Builder) pageSize() int {
	if b.PageSize > 0 {
		return b.PageSize
	}
	return DefaultPageSize
}

func (b *Builder) fetchCap() int {
	if b.FetchCap > 0 {
		return b.FetchCap
	}
	return DefaultFetchCap
}

// Build fetches the four sources in parallel, normalizes and merges them,
// and returns the requested page. Out-of-range pages return an empty page,
// not an error.
func (b *Builder) Build(ctx context.Context, orgID string, now time.Time, page int) (*types.TimelinePage, error) {
	ctx, cancel := context.WithTimeout(ctx, b.fetchTimeout())
	defer cancel()

	since := now.Add(-b.recencyWindow())
	limit := b.fetchCap()

	var (
		assignments []types.Assignment
		submissions []types.Submission
		checklists  []types.ChecklistInstance
		alerts      []types.Alert
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		assignments, err = b.Sources.AssignmentsSince(gctx, orgID, since, limit)
		return fetchErr("assignments", err)
	})

	g.Go(func() error {
		var err error
		submissions, err = b.Sources.SubmissionsSince(gctx, orgID, since, limit)
		return fetchErr("submissions", err)
	})

	g.Go(func() error {
		var err error
		checklists, err = b.Sources.ChecklistInstancesSince(gctx, orgID, since, limit)
		return fetchErr("checklist instances", err)
	})

	g.Go(func() error {
		var err error
		alerts, err = b.Sources.MissedTaskAlertsSince(gctx, orgID, since, limit)
		return fetchErr("alerts", err)
	})

	if err := g.Wait(); err != nil {
		if b.Logger != nil {
			b.Logger.Errorw("Error fetching timeline sources", "error", err, "org_id", orgID)
		}
		return nil, err
	}

	// An abandoned call may let in-flight fetches finish, but their results
	// are never merged into a response.
	if err := ctx.Err(); err != nil {
		return nil, fetchErr("aggregation", err)
	}

	activities := make([]types.Activity, 0, len(assignments)+len(submissions)+len(checklists)+len(alerts))

	for _, a := range alerts {
		activities = append(activities, normalizeAlert(a))
	}

	for _, a := range assignments {
		activities = append(activities, normalizeAssignment(a, now, b.dueSoonWindow()))
	}

	for _, s := range submissions {
		activities = append(activities, normalizeSubmission(s))
	}

	// No cross-source dedup: an assignment that also produced an alert
	// appears twice, they are distinct semantic events.
	for _, c := range checklists {
		activities = append(activities, normalizeChecklist(c, now, b.dueSoonWindow()))
	}

	slices.SortFunc(activities, func(a, b types.Activity) int {
		if a.Priority != b.Priority {
			return a.Priority - b.Priority
		}
		// Ties break most-recent-first
		return b.Timestamp.Compare(a.Timestamp)
	})

	overdue := 0

	for _, a := range activities {
		if a.IsOverdue {
			overdue++
		}
	}

	return &types.TimelinePage{
		Items:        Paginate(activities, page, b.pageSize()),
		TotalCount:   len(activities),
		OverdueCount: overdue,
		Page:         page,
		PerPage:      b.pageSize(),
	}, nil
}

// Paginate slices one fixed-size page out of the sorted activity list.
// Page numbering starts at 1; pages past the end are empty.
func Paginate(activities []types.Activity, page, perPage int) []types.Activity {
	if page < 1 || perPage < 1 {
		return []types.Activity{}
	}

	start := (page - 1) * perPage

	if start >= len(activities) {
		return []types.Activity{}
	}

	end := start + perPage

	if end > len(activities) {
		end = len(activities)
	}

	return activities[start:end]
}

func fetchErr(source string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", source, ErrSourceFetch, err)
}
