package schedule

import (
	"testing"
	"time"

	"taskforge/types"

	"github.com/jackc/pgx/v5/pgtype"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveDueInstantAbsoluteDates(t *testing.T) {
	now := time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

	due, ok := ResolveDueInstant(Policy{Type: types.ScheduleTypeDeadlineDate, Date: datePtr(2024, time.April, 2)}, now)
	if !ok {
		t.Fatal("expected a due instant for deadline_date")
	}
	want := time.Date(2024, time.April, 2, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !due.Equal(want) {
		t.Errorf("expected %v, got %v", want, due)
	}

	due, ok = ResolveDueInstant(Policy{Type: types.ScheduleTypeSpecificDate, Date: datePtr(2024, time.March, 13)}, now)
	if !ok {
		t.Fatal("expected a due instant for specific_date")
	}
	want = time.Date(2024, time.March, 13, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !due.Equal(want) {
		t.Errorf("expected %v, got %v", want, due)
	}

	// Absolute policies without a stored date resolve to nothing
	if _, ok = ResolveDueInstant(Policy{Type: types.ScheduleTypeDeadlineDate}, now); ok {
		t.Error("expected no due instant for deadline_date without a date")
	}
}

func TestFromTemplate(t *testing.T) {
	now := time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

	tmpl := types.Template{
		ID:           "t1",
		Name:         "Fridge temperature log",
		ScheduleType: types.ScheduleTypeDeadlineDate,
		DeadlineDate: pgtype.Date{Time: time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), Valid: true},
	}

	due, ok := ResolveDueInstant(FromTemplate(tmpl), now)
	if !ok {
		t.Fatal("expected a due instant from a deadline_date template")
	}
	want := time.Date(2024, time.April, 2, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !due.Equal(want) {
		t.Errorf("expected %v, got %v", want, due)
	}

	// A recurring template carries no stored date, only its type
	tmpl = types.Template{ID: "t2", Name: "Opening checklist", ScheduleType: types.ScheduleTypeDaily}

	p := FromTemplate(tmpl)
	if p.Date != nil {
		t.Error("expected no stored date for a daily template")
	}
	due, ok = ResolveDueInstant(p, now)
	if !ok {
		t.Fatal("expected a due instant from a daily template")
	}
	want = time.Date(2024, time.March, 13, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !due.Equal(want) {
		t.Errorf("expected %v, got %v", want, due)
	}

	// A null date column yields a policy with no due instant
	tmpl = types.Template{ID: "t3", Name: "Audit", ScheduleType: types.ScheduleTypeSpecificDate}
	if _, ok = ResolveDueInstant(FromTemplate(tmpl), now); ok {
		t.Error("expected no due instant when the date column is null")
	}
}

func TestResolveDueInstantDaily(t *testing.T) {
	now := time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

	due, ok := ResolveDueInstant(Policy{Type: types.ScheduleTypeDaily}, now)
	if !ok {
		t.Fatal("expected a due instant for daily")
	}
	want := time.Date(2024, time.March, 13, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !due.Equal(want) {
		t.Errorf("expected %v, got %v", want, due)
	}
}

func TestResolveDueInstantWeekly(t *testing.T) {
	// A Wednesday resolves to the following Sunday
	now := time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

	due, ok := ResolveDueInstant(Policy{Type: types.ScheduleTypeWeekly}, now)
	if !ok {
		t.Fatal("expected a due instant for weekly")
	}
	want := time.Date(2024, time.March, 17, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !due.Equal(want) {
		t.Errorf("expected %v, got %v", want, due)
	}

	// A Sunday is due that same day, not a week later
	now = time.Date(2024, time.March, 17, 12, 0, 0, 0, time.UTC)
	due, _ = ResolveDueInstant(Policy{Type: types.ScheduleTypeWeekly}, now)
	if !due.Equal(want) {
		t.Errorf("expected %v, got %v", want, due)
	}
}

func TestResolveDueInstantMonthly(t *testing.T) {
	// Any day in March resolves to March 31
	for day := 1; day <= 31; day++ {
		now := time.Date(2024, time.March, day, 10, 0, 0, 0, time.UTC)

		due, ok := ResolveDueInstant(Policy{Type: types.ScheduleTypeMonthly}, now)
		if !ok {
			t.Fatal("expected a due instant for monthly")
		}
		want := time.Date(2024, time.March, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
		if !due.Equal(want) {
			t.Errorf("day %d: expected %v, got %v", day, want, due)
		}
	}

	// February in a leap year
	now := time.Date(2024, time.February, 10, 10, 0, 0, 0, time.UTC)
	due, _ := ResolveDueInstant(Policy{Type: types.ScheduleTypeMonthly}, now)
	want := time.Date(2024, time.February, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !due.Equal(want) {
		t.Errorf("expected %v, got %v", want, due)
	}
}

func TestResolveDueInstantUnsetPolicy(t *testing.T) {
	now := time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

	if _, ok := ResolveDueInstant(Policy{}, now); ok {
		t.Error("expected no due instant for an unset policy")
	}
	if _, ok := ResolveDueInstant(Policy{Type: "fortnightly"}, now); ok {
		t.Error("expected no due instant for an unknown policy")
	}
}

func TestResolveDueInstantDeterminism(t *testing.T) {
	now := time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)
	p := Policy{Type: types.ScheduleTypeWeekly}

	first, _ := ResolveDueInstant(p, now)
	for i := 0; i < 10; i++ {
		again, _ := ResolveDueInstant(p, now)
		if !again.Equal(first) {
			t.Fatalf("resolution is not deterministic: %v != %v", again, first)
		}
	}
}
