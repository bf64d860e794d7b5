// Package store is the engine's adapter onto the record store. It reads the
// columns the engine cares about and writes alert rows; schema changes live
// in the migrations package.
package store

import (
	"context"
	"strings"
	"time"

	"taskforge/db"
	"taskforge/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	submissionCols = strings.Join(db.GetCols(types.Submission{}), ", ")
	alertCols      = strings.Join(db.GetCols(types.Alert{}), ", ")
	orgCols        = strings.Join(db.GetCols(types.Organization{}), ", ")
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// PendingAssignments returns the sweep's working set: active, non-completed
// assignments joined with their template's scheduling columns.
func (s *Store) PendingAssignments(ctx context.Context, orgID string) ([]types.PendingAssignment, error) {
	rows, err := s.Pool.Query(
		ctx,
		`SELECT a.id, a.template_id, t.name AS template_name, a.assignee_id, a.status,
		        a.assigned_at, a.organization_id, t.schedule_type, t.deadline_date,
		        t.specific_date, a.scheduled_date
		 FROM assignments a
		 JOIN templates t ON t.id = a.template_id
		 WHERE a.organization_id = $1 AND a.is_active AND a.status != 'completed'`,
		orgID,
	)

	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[types.PendingAssignment])
}

func (s *Store) HasUnreadAlert(ctx context.Context, assigneeID, templateID string, kind types.AlertKind) (bool, error) {
	var count int64

	err := s.Pool.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM alerts WHERE assignee_id = $1 AND template_id = $2 AND kind = $3 AND is_read = false",
		assigneeID, templateID, kind,
	).Scan(&count)

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateAlert inserts an alert under a per-(assignee, template) advisory
// lock, re-checking for an unread duplicate inside the transaction. Racing
// sweeps therefore cannot produce two visible alerts for the same key.
func (s *Store) CreateAlert(ctx context.Context, alert *types.Alert) error {
	tx, err := s.Pool.Begin(ctx)

	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", alert.AssigneeID+"/"+alert.TemplateID)

	if err != nil {
		return err
	}

	var count int64

	err = tx.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM alerts WHERE assignee_id = $1 AND template_id = $2 AND kind = $3 AND is_read = false",
		alert.AssigneeID, alert.TemplateID, alert.Kind,
	).Scan(&count)

	if err != nil {
		return err
	}

	if count == 0 {
		_, err = tx.Exec(
			ctx,
			"INSERT INTO alerts ("+alertCols+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
			alert.ID, alert.AssigneeID, alert.TemplateID, alert.Kind, alert.Message, alert.CreatedAt, alert.IsRead, alert.OrganizationID,
		)

		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) AssignmentsSince(ctx context.Context, orgID string, since time.Time, limit int) ([]types.Assignment, error) {
	rows, err := s.Pool.Query(
		ctx,
		`SELECT a.id, a.template_id, t.name AS template_name, a.assignee_id, a.assigned_by_id,
		        a.status, a.assigned_at, a.completed_at, a.scheduled_date, a.organization_id, a.is_active
		 FROM assignments a
		 JOIN templates t ON t.id = a.template_id
		 WHERE a.organization_id = $1 AND (a.assigned_at > $2 OR a.completed_at > $2)
		 ORDER BY a.assigned_at DESC
		 LIMIT $3`,
		orgID, since, limit,
	)

	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[types.Assignment])
}

func (s *Store) SubmissionsSince(ctx context.Context, orgID string, since time.Time, limit int) ([]types.Submission, error) {
	rows, err := s.Pool.Query(
		ctx,
		"SELECT "+submissionCols+" FROM submissions WHERE organization_id = $1 AND submitted_at > $2 ORDER BY submitted_at DESC LIMIT $3",
		orgID, since, limit,
	)

	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[types.Submission])
}

func (s *Store) ChecklistInstancesSince(ctx context.Context, orgID string, since time.Time, limit int) ([]types.ChecklistInstance, error) {
	rows, err := s.Pool.Query(
		ctx,
		`SELECT c.id, c.template_id, t.name AS template_name, c.assignee_id, c.status,
		        c.date, c.updated_at, c.completed_at, c.organization_id
		 FROM checklist_instances c
		 JOIN templates t ON t.id = c.template_id
		 WHERE c.organization_id = $1 AND c.updated_at > $2
		 ORDER BY c.updated_at DESC
		 LIMIT $3`,
		orgID, since, limit,
	)

	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[types.ChecklistInstance])
}

func (s *Store) MissedTaskAlertsSince(ctx context.Context, orgID string, since time.Time, limit int) ([]types.Alert, error) {
	rows, err := s.Pool.Query(
		ctx,
		"SELECT "+alertCols+" FROM alerts WHERE organization_id = $1 AND kind = $2 AND created_at > $3 ORDER BY created_at DESC LIMIT $4",
		orgID, types.AlertKindMissedTask, since, limit,
	)

	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[types.Alert])
}

// Organizations returns every organization, for the background sweep runner.
func (s *Store) Organizations(ctx context.Context) ([]types.Organization, error) {
	rows, err := s.Pool.Query(ctx, "SELECT "+orgCols+" FROM organizations ORDER BY created_at")

	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[types.Organization])
}

func (s *Store) OrganizationByID(ctx context.Context, orgID string) (*types.Organization, error) {
	rows, err := s.Pool.Query(ctx, "SELECT "+orgCols+" FROM organizations WHERE id = $1", orgID)

	if err != nil {
		return nil, err
	}

	org, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.Organization])

	if err != nil {
		return nil, err
	}

	return &org, nil
}
