package migrations

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HasMigrated reports whether the schema already matches the latest migration.
func HasMigrated(ctx context.Context, pool *pgxpool.Pool) bool {
	if !tableExists(ctx, pool, "alerts") {
		return false
	}

	if !colExists(ctx, pool, "alerts", "is_read") {
		return false
	}

	if !colExists(ctx, pool, "assignments", "scheduled_date") {
		return false
	}

	return tableExists(ctx, pool, "push_subscriptions")
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) {
	if HasMigrated(ctx, pool) {
		fmt.Println("Nothing to do")
		return
	}

	for i, m := range miglist {
		fmt.Println("Running migration ["+strconv.Itoa(i)+"/"+strconv.Itoa(len(miglist))+"]", m.name)
		m.fn(ctx, pool)
	}
}
