package health

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresPool is the subset of *pgxpool.Pool the checker needs.
type PostgresPool interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresChecker pings the database and verifies the migrated tables exist,
// so a pod pointed at an unmigrated database never reports ready.
type PostgresChecker struct {
	pool   PostgresPool
	tables []string
}

func NewPostgresChecker(pool PostgresPool, tables ...string) *PostgresChecker {
	return &PostgresChecker{pool: pool, tables: tables}
}

func (c *PostgresChecker) Name() string {
	return "postgres"
}

func (c *PostgresChecker) Check(ctx context.Context) Result {
	if err := c.pool.Ping(ctx); err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}

	for _, table := range c.tables {
		var exists bool
		if err := c.pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists); err != nil {
			return Result{Status: StatusDown, Message: err.Error()}
		}
		if !exists {
			return Result{Status: StatusDown, Message: fmt.Sprintf("table %s missing, migrations not applied", table)}
		}
	}
	return Result{Status: StatusUp}
}
