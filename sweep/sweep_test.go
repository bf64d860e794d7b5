package sweep

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taskforge/types"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

type memStore struct {
	assignments []types.PendingAssignment
	alerts      []types.Alert

	failCheckFor  string // assignee ID whose lookup fails
	failInsertFor string // assignee ID whose insert fails
}

func (m *memStore) PendingAssignments(_ context.Context, orgID string) ([]types.PendingAssignment, error) {
	var out []types.PendingAssignment
	for _, a := range m.assignments {
		if a.OrganizationID == orgID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) HasUnreadAlert(_ context.Context, assigneeID, templateID string, kind types.AlertKind) (bool, error) {
	if assigneeID == m.failCheckFor {
		return false, errors.New("lookup failed")
	}
	for _, a := range m.alerts {
		if a.AssigneeID == assigneeID && a.TemplateID == templateID && a.Kind == kind && !a.IsRead {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateAlert(_ context.Context, alert *types.Alert) error {
	if alert.AssigneeID == m.failInsertFor {
		return errors.New("insert failed")
	}
	m.alerts = append(m.alerts, *alert)
	return nil
}

func deadlineDate(y int, mo time.Month, d int) pgtype.Date {
	return pgtype.Date{Time: time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func pendingWithDeadline(id, assignee string, date pgtype.Date) types.PendingAssignment {
	return types.PendingAssignment{
		ID:             id,
		TemplateID:     "tmpl-" + id,
		TemplateName:   "Fire Safety Checklist",
		AssigneeID:     assignee,
		Status:         types.AssignmentStatusPending,
		OrganizationID: "org-1",
		ScheduleType:   types.ScheduleTypeDeadlineDate,
		DeadlineDate:   date,
	}
}

func TestDetectMissedBoundary(t *testing.T) {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)

	yesterday := pendingWithDeadline("a1", "m1", deadlineDate(2024, time.March, 12))
	tomorrow := pendingWithDeadline("a2", "m2", deadlineDate(2024, time.March, 14))

	missed := DetectMissed([]types.PendingAssignment{yesterday, tomorrow}, now)

	if len(missed) != 1 {
		t.Fatalf("expected 1 missed item, got %d", len(missed))
	}
	if missed[0].Assignment.ID != "a1" {
		t.Errorf("expected a1 to be missed, got %s", missed[0].Assignment.ID)
	}
}

func TestDetectMissedStrictComparison(t *testing.T) {
	// Due today 23:59:59.999, now is 23:59:59.998: not missed yet
	due := pendingWithDeadline("a1", "m1", deadlineDate(2024, time.March, 13))
	now := time.Date(2024, time.March, 13, 23, 59, 59, int(998*time.Millisecond), time.UTC)

	if missed := DetectMissed([]types.PendingAssignment{due}, now); len(missed) != 0 {
		t.Fatalf("expected no missed items at the boundary, got %d", len(missed))
	}

	// One millisecond later it is missed
	now = time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	if missed := DetectMissed([]types.PendingAssignment{due}, now); len(missed) != 1 {
		t.Fatalf("expected 1 missed item past the boundary, got %d", len(missed))
	}
}

func TestDetectMissedSkipsCompletedAndUnscheduled(t *testing.T) {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)

	completed := pendingWithDeadline("a1", "m1", deadlineDate(2024, time.March, 1))
	completed.Status = types.AssignmentStatusCompleted

	unscheduled := types.PendingAssignment{
		ID:             "a2",
		TemplateID:     "tmpl-a2",
		AssigneeID:     "m2",
		Status:         types.AssignmentStatusPending,
		OrganizationID: "org-1",
	}

	if missed := DetectMissed([]types.PendingAssignment{completed, unscheduled}, now); len(missed) != 0 {
		t.Fatalf("expected no missed items, got %d", len(missed))
	}
}

func TestEmitAlertsIdempotent(t *testing.T) {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)
	st := &memStore{}
	s := &Sweeper{Store: st, Logger: zap.NewNop().Sugar()}

	item := MissedItem{
		Assignment: pendingWithDeadline("a1", "m1", deadlineDate(2024, time.March, 12)),
		DueAt:      time.Date(2024, time.March, 12, 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}

	first := s.EmitAlerts(context.Background(), []MissedItem{item}, now)
	second := s.EmitAlerts(context.Background(), []MissedItem{item}, now)

	if len(first) != 1 {
		t.Fatalf("expected 1 alert from first run, got %d", len(first))
	}
	if len(second) != 0 {
		t.Fatalf("expected 0 alerts from second run, got %d", len(second))
	}
	if len(st.alerts) != 1 {
		t.Fatalf("expected 1 stored alert, got %d", len(st.alerts))
	}
	if st.alerts[0].Kind != types.AlertKindMissedTask {
		t.Errorf("expected missed_task kind, got %s", st.alerts[0].Kind)
	}
}

func TestEmitAlertsIsolatesFailures(t *testing.T) {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)
	st := &memStore{failCheckFor: "m2", failInsertFor: "m3"}
	s := &Sweeper{Store: st, Logger: zap.NewNop().Sugar()}

	var items []MissedItem
	for i := 1; i <= 4; i++ {
		items = append(items, MissedItem{
			Assignment: pendingWithDeadline(fmt.Sprintf("a%d", i), fmt.Sprintf("m%d", i), deadlineDate(2024, time.March, 12)),
			DueAt:      time.Date(2024, time.March, 12, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		})
	}

	created := s.EmitAlerts(context.Background(), items, now)

	// m2 and m3 fail, m1 and m4 must still go through
	if len(created) != 2 {
		t.Fatalf("expected 2 alerts despite failures, got %d", len(created))
	}
	if created[0].AssigneeID != "m1" || created[1].AssigneeID != "m4" {
		t.Errorf("expected alerts for m1 and m4, got %s and %s", created[0].AssigneeID, created[1].AssigneeID)
	}
}

type fixedEntitlements struct {
	active bool
	err    error
}

func (f fixedEntitlements) Active(context.Context, string) (bool, error) {
	return f.active, f.err
}

func TestRunSkipsLapsedOrganizations(t *testing.T) {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)
	st := &memStore{assignments: []types.PendingAssignment{
		pendingWithDeadline("a1", "m1", deadlineDate(2024, time.March, 12)),
	}}
	s := &Sweeper{Store: st, Entitlements: fixedEntitlements{active: false}, Logger: zap.NewNop().Sugar()}

	created, err := s.Run(context.Background(), "org-1", now)

	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(created) != 0 || len(st.alerts) != 0 {
		t.Fatal("expected no alerts for a lapsed organization")
	}
}

func TestRunSweepsDespiteEntitlementError(t *testing.T) {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)
	st := &memStore{assignments: []types.PendingAssignment{
		pendingWithDeadline("a1", "m1", deadlineDate(2024, time.March, 12)),
	}}
	s := &Sweeper{Store: st, Entitlements: fixedEntitlements{err: errors.New("billing down")}, Logger: zap.NewNop().Sugar()}

	created, err := s.Run(context.Background(), "org-1", now)

	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(created))
	}
}
