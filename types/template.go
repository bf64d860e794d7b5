package types

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ScheduleType is the scheduling policy attached to a template. At most one
// policy is in effect per template at resolution time.
type ScheduleType string

const (
	ScheduleTypeDeadlineDate ScheduleType = "deadline_date"
	ScheduleTypeSpecificDate ScheduleType = "specific_date"
	ScheduleTypeDaily        ScheduleType = "daily"
	ScheduleTypeWeekly       ScheduleType = "weekly"
	ScheduleTypeMonthly      ScheduleType = "monthly"
)

type Template struct {
	ID             string       `db:"id" json:"id" description:"The template's ID"`
	Name           string       `db:"name" json:"name" validate:"required" description:"The template's name"`
	ScheduleType   ScheduleType `db:"schedule_type" json:"schedule_type" description:"The template's scheduling policy, empty if unscheduled"`
	DeadlineDate   pgtype.Date  `db:"deadline_date" json:"deadline_date" description:"Absolute deadline date, only set for deadline_date templates"`
	SpecificDate   pgtype.Date  `db:"specific_date" json:"specific_date" description:"Absolute scheduled date, only set for specific_date templates"`
	OrganizationID string       `db:"organization_id" json:"organization_id" description:"The organization that owns the template"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at" description:"The template's creation date"`
}
