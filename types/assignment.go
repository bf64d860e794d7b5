package types

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
)

type Assignment struct {
	ID             string             `db:"id" json:"id" description:"The assignment's ID"`
	TemplateID     string             `db:"template_id" json:"template_id" validate:"required" description:"The template this assignment was created from"`
	TemplateName   string             `db:"template_name" json:"template_name" description:"Denormalized template name for display"`
	AssigneeID     string             `db:"assignee_id" json:"assignee_id" validate:"required" description:"The member the task is assigned to"`
	AssignedByID   string             `db:"assigned_by_id" json:"assigned_by_id" description:"The member who made the assignment"`
	Status         AssignmentStatus   `db:"status" json:"status" validate:"required,oneof=pending in_progress completed"`
	AssignedAt     time.Time          `db:"assigned_at" json:"assigned_at" description:"When the assignment was created"`
	CompletedAt    pgtype.Timestamptz `db:"completed_at" json:"completed_at" description:"When the assignment was completed, if it was"`
	ScheduledDate  pgtype.Timestamptz `db:"scheduled_date" json:"scheduled_date" description:"Due instant stored at assignment time, if the template had a policy"`
	OrganizationID string             `db:"organization_id" json:"organization_id" description:"The organization the assignment belongs to"`
	IsActive       bool               `db:"is_active" json:"is_active" description:"Inactive assignments are retained but excluded from missed detection"`
}

// PendingAssignment is the sweep's working row: a non-completed active
// assignment joined with the scheduling columns of its template.
type PendingAssignment struct {
	ID             string             `db:"id" json:"id"`
	TemplateID     string             `db:"template_id" json:"template_id"`
	TemplateName   string             `db:"template_name" json:"template_name"`
	AssigneeID     string             `db:"assignee_id" json:"assignee_id"`
	Status         AssignmentStatus   `db:"status" json:"status"`
	AssignedAt     time.Time          `db:"assigned_at" json:"assigned_at"`
	OrganizationID string             `db:"organization_id" json:"organization_id"`
	ScheduleType   ScheduleType       `db:"schedule_type" json:"schedule_type"`
	DeadlineDate   pgtype.Date        `db:"deadline_date" json:"deadline_date"`
	SpecificDate   pgtype.Date        `db:"specific_date" json:"specific_date"`
	ScheduledDate  pgtype.Timestamptz `db:"scheduled_date" json:"scheduled_date"`
}
