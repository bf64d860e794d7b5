package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var miglist = []migrator{
	{
		name: "create_core_tables",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "alerts") {
				fmt.Println("Nothing to do")
				return
			}

			_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS organizations (
	id text PRIMARY KEY,
	name text NOT NULL,
	billing_provider text NOT NULL DEFAULT '',
	subscription_id text NOT NULL DEFAULT '',
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS members (
	member_id text PRIMARY KEY,
	organization_id text NOT NULL REFERENCES organizations(id),
	name text NOT NULL,
	api_token text NOT NULL UNIQUE,
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS templates (
	id text PRIMARY KEY,
	name text NOT NULL,
	schedule_type text NOT NULL DEFAULT '',
	deadline_date date,
	specific_date date,
	organization_id text NOT NULL REFERENCES organizations(id),
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS assignments (
	id text PRIMARY KEY,
	template_id text NOT NULL REFERENCES templates(id),
	assignee_id text NOT NULL REFERENCES members(member_id),
	assigned_by_id text NOT NULL DEFAULT '',
	status text NOT NULL DEFAULT 'pending',
	assigned_at timestamptz NOT NULL DEFAULT now(),
	completed_at timestamptz,
	organization_id text NOT NULL REFERENCES organizations(id),
	is_active boolean NOT NULL DEFAULT true
);

CREATE TABLE IF NOT EXISTS submissions (
	id text PRIMARY KEY,
	submitter_id text NOT NULL REFERENCES members(member_id),
	template_name text NOT NULL,
	submitted_at timestamptz NOT NULL DEFAULT now(),
	status text NOT NULL DEFAULT 'pending',
	organization_id text NOT NULL REFERENCES organizations(id)
);

CREATE TABLE IF NOT EXISTS checklist_instances (
	id text PRIMARY KEY,
	template_id text NOT NULL REFERENCES templates(id),
	assignee_id text NOT NULL REFERENCES members(member_id),
	status text NOT NULL DEFAULT 'pending',
	date timestamptz,
	updated_at timestamptz NOT NULL DEFAULT now(),
	completed_at timestamptz,
	organization_id text NOT NULL REFERENCES organizations(id)
);

CREATE TABLE IF NOT EXISTS alerts (
	id text PRIMARY KEY,
	assignee_id text NOT NULL REFERENCES members(member_id),
	template_id text NOT NULL REFERENCES templates(id),
	kind text NOT NULL,
	message text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	organization_id text NOT NULL REFERENCES organizations(id)
);

CREATE INDEX IF NOT EXISTS assignments_org_assigned_idx ON assignments (organization_id, assigned_at DESC);
CREATE INDEX IF NOT EXISTS submissions_org_submitted_idx ON submissions (organization_id, submitted_at DESC);
CREATE INDEX IF NOT EXISTS checklist_org_updated_idx ON checklist_instances (organization_id, updated_at DESC);
CREATE INDEX IF NOT EXISTS alerts_org_created_idx ON alerts (organization_id, created_at DESC);
`)

			if err != nil {
				panic(err)
			}
		},
	},
	{
		name: "add_alert_read_flag",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if !tableExists(ctx, pool, "alerts") {
				panic("required table alerts does not exist")
			}

			if colExists(ctx, pool, "alerts", "is_read") {
				fmt.Println("Nothing to do")
				return
			}

			_, err := pool.Exec(ctx, "ALTER TABLE alerts ADD COLUMN is_read boolean NOT NULL DEFAULT false")

			if err != nil {
				panic(err)
			}

			_, err = pool.Exec(ctx, "CREATE INDEX alerts_unread_idx ON alerts (assignee_id, template_id, kind) WHERE NOT is_read")

			if err != nil {
				panic(err)
			}
		},
	},
	{
		name: "add_assignment_schedule_snapshot",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if colExists(ctx, pool, "assignments", "scheduled_date") {
				fmt.Println("Nothing to do")
				return
			}

			_, err := pool.Exec(ctx, "ALTER TABLE assignments ADD COLUMN scheduled_date timestamptz")

			if err != nil {
				panic(err)
			}

			// Backfill from the template's fixed date where one exists, for both
			// absolute policy kinds. Recurring policies are resolved at sweep
			// time and get no snapshot.
			_, err = pool.Exec(ctx, `
UPDATE assignments a
SET scheduled_date = ((CASE t.schedule_type
	WHEN 'specific_date' THEN t.specific_date
	ELSE t.deadline_date
END) + time '23:59:59.999')::timestamptz
FROM templates t
WHERE t.id = a.template_id
AND ((t.schedule_type = 'specific_date' AND t.specific_date IS NOT NULL)
	OR (t.schedule_type = 'deadline_date' AND t.deadline_date IS NOT NULL))`)

			if err != nil {
				panic(err)
			}
		},
	},
	{
		name: "create_push_subscriptions",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "push_subscriptions") {
				fmt.Println("Nothing to do")
				return
			}

			_, err := pool.Exec(ctx, `
CREATE TABLE push_subscriptions (
	notif_id text PRIMARY KEY,
	member_id text NOT NULL REFERENCES members(member_id),
	endpoint text NOT NULL,
	auth text NOT NULL,
	p256dh text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
)`)

			if err != nil {
				panic(err)
			}
		},
	},
}
