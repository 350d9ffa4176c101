//go:build integration
// +build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"RenewalSync/internal/api"
	"RenewalSync/pkg/postgres"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresContainer struct {
	Container testcontainers.Container
	Pool      *postgres.Postgres
	DSN       string
}

func NewPostgres(ctx context.Context) (*PostgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image: "postgres:17-alpine",
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "secret",
			"POSTGRES_DB":       "renewals_test",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres",
			func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://postgres:secret@%s:%s/renewals_test?sslmode=disable", host, port.Port())
			},
		).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/renewals_test?sslmode=disable", host, port.Port())

	if err := api.ApplyMigrations(dsn, api.MigrationFS); err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool, err := postgres.New(dsn, postgres.MaxPoolSize(10))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		Pool:      pool,
		DSN:       dsn,
	}, nil
}

func (c *PostgresContainer) Cleanup(ctx context.Context) {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Container != nil {
		_ = c.Container.Terminate(ctx)
	}
}

// Truncate clears all tables (for isolation between tests)
func (c *PostgresContainer) Truncate(ctx context.Context) error {
	_, err := c.Pool.Pool.Exec(ctx,
		"TRUNCATE TABLE webhook_deliveries, subscription_renewals, platform_subscriptions, orders CASCADE")
	return err
}
