package types

import "time"

type AlertKind string

const (
	AlertKindMissedTask AlertKind = "missed_task"
)

// Alert is a missed-task notification row. The store enforces at most one
// unread alert per (assignee, template, kind) key; inserting a duplicate is
// a no-op.
type Alert struct {
	ID             string    `db:"id" json:"id" description:"The alert's ID"`
	AssigneeID     string    `db:"assignee_id" json:"assignee_id" validate:"required" description:"The member the alert is for"`
	TemplateID     string    `db:"template_id" json:"template_id" validate:"required" description:"The template whose task was missed"`
	Kind           AlertKind `db:"kind" json:"kind" validate:"required,oneof=missed_task"`
	Message        string    `db:"message" json:"message" validate:"required"`
	CreatedAt      time.Time `db:"created_at" json:"created_at" description:"The alert's creation date"`
	IsRead         bool      `db:"is_read" json:"is_read" description:"Whether the alert has been acknowledged"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
}

type AlertList struct {
	UnreadCount uint64  `json:"unread_count" description:"Number of unacknowledged alerts"`
	Alerts      []Alert `json:"alerts" description:"List of alerts"`
}
