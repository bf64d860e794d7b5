// Package sweep detects missed task assignments and emits deduplicated
// missed-task alerts. A sweep is a best-effort pass, not a transaction:
// failures are isolated per item and the rest of the batch continues.
package sweep

import (
	"context"
	"time"

	"taskforge/schedule"
	"taskforge/types"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/infinitybotlist/eureka/crypto"
	"go.uber.org/zap"
)

type Store interface {
	// PendingAssignments returns the active, non-completed assignments of an
	// organization joined with their template's scheduling columns.
	PendingAssignments(ctx context.Context, orgID string) ([]types.PendingAssignment, error)

	// HasUnreadAlert reports whether an unread alert already exists for the
	// (assignee, template, kind) key.
	HasUnreadAlert(ctx context.Context, assigneeID, templateID string, kind types.AlertKind) (bool, error)

	// CreateAlert inserts an alert. The store enforces the one-unread-alert-
	// per-key guard, so a racing duplicate insert is a no-op.
	CreateAlert(ctx context.Context, alert *types.Alert) error
}

// Entitlements reports whether an organization's subscription entitles it to
// engine features.
type Entitlements interface {
	Active(ctx context.Context, orgID string) (bool, error)
}

// Notifier receives alerts after they are written. Delivery failures are the
// notifier's problem, not the sweep's.
type Notifier interface {
	AlertCreated(ctx context.Context, alert types.Alert)
}

// MissedItem is a non-completed assignment whose resolved due instant is in
// the past relative to the sweep's "now".
type MissedItem struct {
	Assignment types.PendingAssignment
	DueAt      time.Time
}

// DetectMissed resolves each assignment's policy and keeps those strictly
// past due. Assignments whose policy yields no due instant are never missed.
func DetectMissed(assignments []types.PendingAssignment, now time.Time) []MissedItem {
	var missed []MissedItem

	for _, a := range assignments {
		if a.Status == types.AssignmentStatusCompleted {
			continue
		}

		due, ok := schedule.ResolveDueInstant(schedule.FromPendingAssignment(a), now)

		if !ok {
			continue
		}

		if now.After(due) {
			missed = append(missed, MissedItem{Assignment: a, DueAt: due})
		}
	}

	return missed
}

type Sweeper struct {
	Store        Store
	Entitlements Entitlements // optional
	Notifier     Notifier     // optional
	Logger       *zap.SugaredLogger
}

// EmitAlerts writes one alert per missed item unless an unread alert for the
// same (assignee, template) key already exists. Repeated sweeps over the
// same missed item therefore create exactly one visible alert. A failed
// lookup or insert skips that item only.
func (s *Sweeper) EmitAlerts(ctx context.Context, items []MissedItem, now time.Time) []types.Alert {
	var created []types.Alert

	for _, item := range items {
		a := item.Assignment

		exists, err := s.Store.HasUnreadAlert(ctx, a.AssigneeID, a.TemplateID, types.AlertKindMissedTask)

		if err != nil {
			s.Logger.Errorw("Error checking for existing alert", "error", err, "assignee_id", a.AssigneeID, "template_id", a.TemplateID)
			sentry.CaptureException(err)
			continue
		}

		if exists {
			continue
		}

		alert := types.Alert{
			ID:             uuid.NewString(),
			AssigneeID:     a.AssigneeID,
			TemplateID:     a.TemplateID,
			Kind:           types.AlertKindMissedTask,
			Message:        "You have a missed task: " + a.TemplateName + " was due " + item.DueAt.Format("Jan 2, 2006"),
			CreatedAt:      now,
			OrganizationID: a.OrganizationID,
		}

		err = s.Store.CreateAlert(ctx, &alert)

		if err != nil {
			s.Logger.Errorw("Error creating alert", "error", err, "assignee_id", a.AssigneeID, "template_id", a.TemplateID)
			sentry.CaptureException(err)
			continue
		}

		created = append(created, alert)

		if s.Notifier != nil {
			s.Notifier.AlertCreated(ctx, alert)
		}
	}

	return created
}

// Run sweeps one organization: fetch pending assignments, detect missed
// items, emit alerts. Returns the alerts created by this run.
func (s *Sweeper) Run(ctx context.Context, orgID string, now time.Time) ([]types.Alert, error) {
	runID := crypto.RandString(12)

	if s.Entitlements != nil {
		active, err := s.Entitlements.Active(ctx, orgID)

		if err != nil {
			// A billing outage should not stop compliance alerts
			s.Logger.Errorw("Error checking entitlement, sweeping anyway", "error", err, "run_id", runID, "org_id", orgID)
		} else if !active {
			s.Logger.Infow("Skipping sweep, subscription lapsed", "run_id", runID, "org_id", orgID)
			return nil, nil
		}
	}

	assignments, err := s.Store.PendingAssignments(ctx, orgID)

	if err != nil {
		return nil, err
	}

	missed := DetectMissed(assignments, now)

	created := s.EmitAlerts(ctx, missed, now)

	s.Logger.Infow("Sweep complete", "run_id", runID, "org_id", orgID, "pending", len(assignments), "missed", len(missed), "alerts_created", len(created))

	return created, nil
}
