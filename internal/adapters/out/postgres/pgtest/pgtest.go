// Package pgtest starts a disposable PostgreSQL container with the full schema for
// integration suites.
package pgtest

import (
	"context"
	"time"

	pgadapter "restaurant/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const tables = "outbox_events, inventory, devices, order_items, orders, menu_items, restaurant_tables, tenants"

// Start runs postgres:15-alpine, connects through pgadapter.Open and migrates.
// The caller terminates the container.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, string, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, "", err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, "", err
	}

	db, err := pgadapter.Open(dsn)
	if err != nil {
		return container, nil, "", err
	}

	if err = pgadapter.Migrate(db); err != nil {
		return container, nil, "", err
	}

	return container, db, dsn, nil
}

// Truncate empties every table.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + tables + " CASCADE").Error
}
