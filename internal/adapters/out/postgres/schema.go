package postgres

import (
	"fmt"

	"restaurant/internal/adapters/out/postgres/devicerepo"
	"restaurant/internal/adapters/out/postgres/inventoryrepo"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/outboxrepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/adapters/out/postgres/tenantrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&tenantrepo.TenantDTO{},
		&tablerepo.TableDTO{},
		&menurepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&devicerepo.DeviceDTO{},
		&inventoryrepo.InventoryItemDTO{},
		&outboxrepo.EventDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Open connects with the settings the repositories rely on: driver errors are
// translated so unique violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}
