package types

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type ChecklistStatus string

const (
	ChecklistStatusPending    ChecklistStatus = "pending"
	ChecklistStatusInProgress ChecklistStatus = "in_progress"
	ChecklistStatusCompleted  ChecklistStatus = "completed"
)

type ChecklistInstance struct {
	ID             string             `db:"id" json:"id" description:"The checklist instance's ID"`
	TemplateID     string             `db:"template_id" json:"template_id"`
	TemplateName   string             `db:"template_name" json:"template_name" description:"Denormalized template name for display"`
	AssigneeID     string             `db:"assignee_id" json:"assignee_id"`
	Status         ChecklistStatus    `db:"status" json:"status" validate:"required,oneof=pending in_progress completed"`
	Date           pgtype.Timestamptz `db:"date" json:"date" description:"The checklist's due instant, if it has one"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
	CompletedAt    pgtype.Timestamptz `db:"completed_at" json:"completed_at"`
	OrganizationID string             `db:"organization_id" json:"organization_id"`
}
