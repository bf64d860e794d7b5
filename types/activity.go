package types

import "time"

// ActivityKind tags which source a timeline entry was normalized from.
type ActivityKind string

const (
	ActivityKindAssignment ActivityKind = "assignment"
	ActivityKindCompletion ActivityKind = "completion"
	ActivityKindSubmission ActivityKind = "submission"
	ActivityKindPending    ActivityKind = "pending"
	ActivityKindAlert      ActivityKind = "alert"
)

// Display priorities, lower surfaces first.
const (
	ActivityPriorityAlert      = 0
	ActivityPriorityOverdue    = 1
	ActivityPriorityDueSoon    = 2
	ActivityPriorityNormal     = 3
	ActivityPrioritySubmission = 4
	ActivityPriorityCompletion = 5
)

// Activity is the normalized timeline projection. It is derived per
// aggregation run and never persisted.
type Activity struct {
	ID          string       `json:"id" description:"Unique within one aggregation run"`
	Kind        ActivityKind `json:"kind"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp" description:"Instant used for recency ordering"`
	DueAt       *time.Time   `json:"due_at,omitempty"`
	IsOverdue   bool         `json:"is_overdue"`
	IsDueSoon   bool         `json:"is_due_soon"`
	Priority    int          `json:"priority" description:"Lower is shown first"`
}

// TimelinePage is one page of the merged, ranked timeline.
type TimelinePage struct {
	Items        []Activity `json:"items"`
	TotalCount   int        `json:"total_count" description:"Size of the full merged set, before pagination"`
	OverdueCount int        `json:"overdue_count" description:"Overdue items in the full merged set, independent of the page requested"`
	Page         int        `json:"page"`
	PerPage      int        `json:"per_page"`
}
