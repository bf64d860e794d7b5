package timeline

import (
	"time"

	"taskforge/types"
)

// Each normalizer is a pure mapping from one source row to an Activity so
// the merge/sort step stays source-agnostic.

func normalizeAlert(a types.Alert) types.Activity {
	return types.Activity{
		ID:          "alert:" + a.ID,
		Kind:        types.ActivityKindAlert,
		Description: a.Message,
		Timestamp:   a.CreatedAt,
		IsOverdue:   true,
		Priority:    types.ActivityPriorityAlert,
	}
}

func normalizeAssignment(a types.Assignment, now time.Time, dueSoonWindow time.Duration) types.Activity {
	if a.Status == types.AssignmentStatusCompleted {
		ts := a.AssignedAt
		if a.CompletedAt.Valid {
			ts = a.CompletedAt.Time
		}

		return types.Activity{
			ID:          "assignment:" + a.ID,
			Kind:        types.ActivityKindCompletion,
			Description: "Task completed: " + a.TemplateName,
			Timestamp:   ts,
			Priority:    types.ActivityPriorityCompletion,
		}
	}

	act := types.Activity{
		ID:          "assignment:" + a.ID,
		Kind:        types.ActivityKindAssignment,
		Description: "Task assigned: " + a.TemplateName,
		Timestamp:   a.AssignedAt,
		Priority:    types.ActivityPriorityNormal,
	}

	// The due instant stored at assignment time is trusted as-is, never
	// re-resolved here.
	if a.ScheduledDate.Valid {
		due := a.ScheduledDate.Time
		act.DueAt = &due
		act.IsOverdue, act.IsDueSoon, act.Priority = urgency(due, now, dueSoonWindow)
	}

	return act
}

func normalizeSubmission(s types.Submission) types.Activity {
	return types.Activity{
		ID:          "submission:" + s.ID,
		Kind:        types.ActivityKindSubmission,
		Description: "Report submitted: " + s.TemplateName,
		Timestamp:   s.SubmittedAt,
		Priority:    types.ActivityPrioritySubmission,
	}
}

func normalizeChecklist(c types.ChecklistInstance, now time.Time, dueSoonWindow time.Duration) types.Activity {
	if c.Status == types.ChecklistStatusCompleted {
		ts := c.UpdatedAt
		if c.CompletedAt.Valid {
			ts = c.CompletedAt.Time
		}

		return types.Activity{
			ID:          "checklist:" + c.ID,
			Kind:        types.ActivityKindCompletion,
			Description: "Checklist completed: " + c.TemplateName,
			Timestamp:   ts,
			Priority:    types.ActivityPriorityCompletion,
		}
	}

	act := types.Activity{
		ID:          "checklist:" + c.ID,
		Kind:        types.ActivityKindPending,
		Description: "Checklist due: " + c.TemplateName,
		Timestamp:   c.UpdatedAt,
		Priority:    types.ActivityPriorityNormal,
	}

	if c.Date.Valid {
		due := c.Date.Time
		act.DueAt = &due
		act.IsOverdue, act.IsDueSoon, act.Priority = urgency(due, now, dueSoonWindow)
	}

	return act
}

// urgency derives the overdue/due-soon split for a non-completed item.
// The two flags are mutually exclusive: overdue wins.
func urgency(due, now time.Time, dueSoonWindow time.Duration) (overdue, dueSoon bool, priority int) {
	if due.Before(now) {
		return true, false, types.ActivityPriorityOverdue
	}

	if due.Sub(now) < dueSoonWindow {
		return false, true, types.ActivityPriorityDueSoon
	}

	return false, false, types.ActivityPriorityNormal
}
