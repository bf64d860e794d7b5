package types

import "time"

type Submission struct {
	ID             string    `db:"id" json:"id" description:"The submission's ID"`
	SubmitterID    string    `db:"submitter_id" json:"submitter_id" description:"The member who filed the submission"`
	TemplateName   string    `db:"template_name" json:"template_name" description:"Name of the template the report was filed against"`
	SubmittedAt    time.Time `db:"submitted_at" json:"submitted_at"`
	Status         string    `db:"status" json:"status" description:"Review status of the submission"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
}
