package pgtest

import (
	"context"
	"time"

	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/adapters/out/postgres/tenantrepo"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/domain/model/tenant"

	"gorm.io/gorm"
)

// Restaurant is a tenant with one table and a small menu, stored outside any unit of
// work.
type Restaurant struct {
	Tenant *tenant.Tenant
	Table  *table.Table
	Pizza  *menu.Item
	Soda   *menu.Item
	Cake   *menu.Item // unavailable
}

// SeedRestaurant stores a Restaurant whose domain is derived from name.
func SeedRestaurant(ctx context.Context, db *gorm.DB, name string, tableNumber int) (Restaurant, error) {
	var r Restaurant
	var err error

	if r.Tenant, err = tenant.NewTenant(kernel.NewUUID(), name, name+".example.com"); err != nil {
		return r, err
	}
	if err = tenantrepo.NewGormTenantRepository(db).Add(ctx, r.Tenant); err != nil {
		return r, err
	}

	if r.Table, err = table.NewTable(kernel.NewUUID(), r.Tenant.ID(), tableNumber); err != nil {
		return r, err
	}
	if err = tablerepo.NewGormTableRepository(db).Add(ctx, r.Table); err != nil {
		return r, err
	}

	menuRepo := menurepo.NewGormMenuRepository(db)
	for _, fixture := range []struct {
		target   **menu.Item
		name     string
		price    int64
		category string
	}{
		{&r.Pizza, "Pizza", 299, "Mains"},
		{&r.Soda, "Soda", 60, "Drinks"},
		{&r.Cake, "Cake", 150, "Desserts"},
	} {
		price, priceErr := kernel.NewMoney(fixture.price)
		if priceErr != nil {
			return r, priceErr
		}
		item, itemErr := menu.NewItem(kernel.NewUUID(), r.Tenant.ID(), fixture.name, "", price, fixture.category, 10)
		if itemErr != nil {
			return r, itemErr
		}
		if fixture.name == "Cake" {
			item.SetAvailability(false)
		}
		if err = menuRepo.Add(ctx, item); err != nil {
			return r, err
		}
		*fixture.target = item
	}

	return r, nil
}

// NewOrder builds a pending order of quantity pizzas for the restaurant's table.
func (r Restaurant) NewOrder(quantity int, placedAt time.Time) (*order.Order, error) {
	item, err := order.NewItem(r.Pizza.ID(), r.Pizza.Name(), r.Pizza.Category(), r.Pizza.Price(), quantity)
	if err != nil {
		return nil, err
	}
	contact, err := order.NewContact("Asha", "9999999999")
	if err != nil {
		return nil, err
	}
	return order.NewOrder(kernel.NewUUID(), r.Tenant.ID(), r.Table.ID(), r.Table.Number(),
		contact, []order.Item{item}, "", placedAt)
}
