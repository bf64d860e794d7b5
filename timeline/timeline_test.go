package timeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taskforge/types"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testNow = time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)

type memSources struct {
	assignments []types.Assignment
	submissions []types.Submission
	checklists  []types.ChecklistInstance
	alerts      []types.Alert

	failSource string
}

func (m *memSources) AssignmentsSince(ctx context.Context, _ string, _ time.Time, _ int) ([]types.Assignment, error) {
	if m.failSource == "assignments" {
		return nil, errors.New("db down")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.assignments, nil
}

func (m *memSources) SubmissionsSince(ctx context.Context, _ string, _ time.Time, _ int) ([]types.Submission, error) {
	if m.failSource == "submissions" {
		return nil, errors.New("db down")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.submissions, nil
}

func (m *memSources) ChecklistInstancesSince(ctx context.Context, _ string, _ time.Time, _ int) ([]types.ChecklistInstance, error) {
	if m.failSource == "checklists" {
		return nil, errors.New("db down")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.checklists, nil
}

func (m *memSources) MissedTaskAlertsSince(ctx context.Context, _ string, _ time.Time, _ int) ([]types.Alert, error) {
	if m.failSource == "alerts" {
		return nil, errors.New("db down")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.alerts, nil
}

func newBuilder(src Sources) *Builder {
	return &Builder{Sources: src, Logger: zap.NewNop().Sugar()}
}

func ts(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pendingAssignment(id string, assignedAt time.Time, due *time.Time) types.Assignment {
	a := types.Assignment{
		ID:           id,
		TemplateID:   "tmpl-" + id,
		TemplateName: "Incident Report",
		AssigneeID:   "m1",
		Status:       types.AssignmentStatusPending,
		AssignedAt:   assignedAt,
	}
	if due != nil {
		a.ScheduledDate = ts(*due)
	}
	return a
}

func TestUrgencyExclusivity(t *testing.T) {
	offsets := []time.Duration{
		-30 * 24 * time.Hour, -time.Hour, -time.Millisecond, 0,
		time.Millisecond, time.Hour, 71 * time.Hour, 72 * time.Hour, 500 * time.Hour,
	}

	for _, off := range offsets {
		due := testNow.Add(off)
		act := normalizeAssignment(pendingAssignment("a", testNow.Add(-time.Hour), &due), testNow, DefaultDueSoonWindow)

		if act.IsOverdue && act.IsDueSoon {
			t.Errorf("offset %v: overdue and due-soon are both set", off)
		}
		if off < 0 && !act.IsOverdue {
			t.Errorf("offset %v: expected overdue", off)
		}
		if off >= 0 && off < 72*time.Hour && !act.IsDueSoon {
			t.Errorf("offset %v: expected due-soon", off)
		}
		if off >= 72*time.Hour && (act.IsOverdue || act.IsDueSoon) {
			t.Errorf("offset %v: expected normal urgency", off)
		}
	}
}

func TestCompletedNeverOverdue(t *testing.T) {
	due := testNow.Add(-48 * time.Hour) // long past due
	a := pendingAssignment("a", testNow.Add(-72*time.Hour), &due)
	a.Status = types.AssignmentStatusCompleted
	a.CompletedAt = ts(testNow.Add(-time.Hour))

	act := normalizeAssignment(a, testNow, DefaultDueSoonWindow)

	if act.IsOverdue || act.IsDueSoon {
		t.Error("completed assignment must never be overdue or due-soon")
	}
	if act.Kind != types.ActivityKindCompletion {
		t.Errorf("expected completion kind, got %s", act.Kind)
	}
	if act.Priority != types.ActivityPriorityCompletion {
		t.Errorf("expected completion priority, got %d", act.Priority)
	}

	c := types.ChecklistInstance{
		ID:           "c1",
		TemplateName: "Opening Checklist",
		Status:       types.ChecklistStatusCompleted,
		Date:         ts(due),
		UpdatedAt:    testNow.Add(-time.Hour),
	}

	cact := normalizeChecklist(c, testNow, DefaultDueSoonWindow)

	if cact.IsOverdue || cact.IsDueSoon {
		t.Error("completed checklist must never be overdue or due-soon")
	}
}

func TestBuildSortOrder(t *testing.T) {
	t0 := testNow.Add(-10 * time.Hour)
	t1 := testNow.Add(-5 * time.Hour)
	t2 := testNow.Add(-1 * time.Hour)

	overdueDue := testNow.Add(-time.Hour)

	src := &memSources{
		// Both overdue (priority 1), assigned at t0 and t2
		assignments: []types.Assignment{
			pendingAssignment("a1", t0, &overdueDue),
			pendingAssignment("a2", t2, &overdueDue),
		},
		// Priority 4 at t1
		submissions: []types.Submission{
			{ID: "s1", TemplateName: "Incident Report", SubmittedAt: t1},
		},
	}

	page, err := newBuilder(src).Build(context.Background(), "org-1", testNow, 1)

	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Items))
	}

	wantOrder := []string{"assignment:a2", "assignment:a1", "submission:s1"}
	for i, want := range wantOrder {
		if page.Items[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, page.Items[i].ID)
		}
	}
}

func TestBuildEndToEnd(t *testing.T) {
	yesterday := testNow.Add(-24 * time.Hour)
	inTwoDays := testNow.Add(48 * time.Hour)

	completed := pendingAssignment("done", testNow.Add(-48*time.Hour), nil)
	completed.Status = types.AssignmentStatusCompleted
	completed.CompletedAt = ts(yesterday)

	src := &memSources{
		assignments: []types.Assignment{
			pendingAssignment("late", testNow.Add(-48*time.Hour), &yesterday),
			completed,
		},
		submissions: []types.Submission{
			{ID: "s1", TemplateName: "Daily Report", SubmittedAt: testNow.Add(-time.Hour)},
		},
		checklists: []types.ChecklistInstance{
			{ID: "c1", TemplateName: "Safety Walkthrough", Status: types.ChecklistStatusPending, Date: ts(inTwoDays), UpdatedAt: testNow.Add(-2 * time.Hour)},
		},
	}

	page, err := newBuilder(src).Build(context.Background(), "org-1", testNow, 1)

	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if page.TotalCount != 4 {
		t.Fatalf("expected 4 activities, got %d", page.TotalCount)
	}
	if page.OverdueCount != 1 {
		t.Errorf("expected overdue count 1, got %d", page.OverdueCount)
	}

	wantOrder := []string{"assignment:late", "checklist:c1", "submission:s1", "assignment:done"}
	for i, want := range wantOrder {
		if page.Items[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, page.Items[i].ID)
		}
	}
}

func TestBuildAlertsRankFirstAndDuplicatesSurvive(t *testing.T) {
	yesterday := testNow.Add(-24 * time.Hour)

	src := &memSources{
		assignments: []types.Assignment{
			pendingAssignment("late", testNow.Add(-48*time.Hour), &yesterday),
		},
		alerts: []types.Alert{
			{ID: "al1", Message: "You have a missed task: Incident Report", CreatedAt: testNow.Add(-time.Hour)},
		},
	}

	page, err := newBuilder(src).Build(context.Background(), "org-1", testNow, 1)

	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// The alert and the overdue assignment are distinct semantic events:
	// both appear, alert first
	if page.TotalCount != 2 {
		t.Fatalf("expected 2 activities, got %d", page.TotalCount)
	}
	if page.Items[0].ID != "alert:al1" {
		t.Errorf("expected the alert first, got %s", page.Items[0].ID)
	}
	if page.OverdueCount != 2 {
		t.Errorf("expected overdue count 2 (alert + assignment), got %d", page.OverdueCount)
	}
}

func TestPaginateExactness(t *testing.T) {
	var activities []types.Activity
	for i := 0; i < 25; i++ {
		activities = append(activities, types.Activity{ID: fmt.Sprintf("a%d", i)})
	}

	if got := len(Paginate(activities, 1, 10)); got != 10 {
		t.Errorf("page 1: expected 10 items, got %d", got)
	}
	if got := len(Paginate(activities, 3, 10)); got != 5 {
		t.Errorf("page 3: expected 5 items, got %d", got)
	}
	if got := len(Paginate(activities, 4, 10)); got != 0 {
		t.Errorf("page 4: expected 0 items, got %d", got)
	}
	if got := len(Paginate(activities, 0, 10)); got != 0 {
		t.Errorf("page 0: expected 0 items, got %d", got)
	}
}

func TestOverdueCountIndependentOfPage(t *testing.T) {
	src := &memSources{}
	for i := 0; i < 25; i++ {
		due := testNow.Add(-time.Hour)
		src.assignments = append(src.assignments, pendingAssignment(fmt.Sprintf("a%d", i), testNow.Add(-2*time.Hour), &due))
	}

	b := newBuilder(src)

	for page := 1; page <= 4; page++ {
		got, err := b.Build(context.Background(), "org-1", testNow, page)
		if err != nil {
			t.Fatalf("build page %d: %v", page, err)
		}
		if got.OverdueCount != 25 {
			t.Errorf("page %d: expected overdue count 25, got %d", page, got.OverdueCount)
		}
	}
}

func TestBuildFailsWholesale(t *testing.T) {
	for _, source := range []string{"assignments", "submissions", "checklists", "alerts"} {
		src := &memSources{
			submissions: []types.Submission{{ID: "s1", SubmittedAt: testNow}},
			failSource:  source,
		}

		page, err := newBuilder(src).Build(context.Background(), "org-1", testNow, 1)

		if err == nil {
			t.Fatalf("%s: expected an error, got page %+v", source, page)
		}
		if !errors.Is(err, ErrSourceFetch) {
			t.Errorf("%s: expected ErrSourceFetch, got %v", source, err)
		}
		if page != nil {
			t.Errorf("%s: expected no partial timeline", source)
		}
	}
}

func TestBuildLogsFailedFetch(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	src := &memSources{failSource: "alerts"}
	b := &Builder{Sources: src, Logger: zap.New(core).Sugar()}

	if _, err := b.Build(context.Background(), "org-1", testNow, 1); err == nil {
		t.Fatal("expected an error")
	}

	if logs.Len() == 0 {
		t.Fatal("expected the failed fetch to be logged")
	}

	// A builder without a logger still fails cleanly
	b = &Builder{Sources: src}
	if _, err := b.Build(context.Background(), "org-1", testNow, 1); err == nil {
		t.Fatal("expected an error without a logger too")
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &memSources{submissions: []types.Submission{{ID: "s1", SubmittedAt: testNow}}}

	page, err := newBuilder(src).Build(ctx, "org-1", testNow, 1)

	if err == nil {
		t.Fatal("expected an error from a cancelled build")
	}
	if page != nil {
		t.Error("cancelled build must not return a page")
	}
}
