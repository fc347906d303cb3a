package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrGetMenuQueryIsNotConstructed = errors.New(
		"GetMenuQuery must be created via NewGetMenuQuery constructor",
	)
)

// GetMenuQuery loads what a customer sees after scanning a table's QR code.
//
// Example:
//
//	query, err := NewGetMenuQuery(c.QueryParam("table"))
//	if err != nil {
//	    return err
//	}
//	menu, err := handler.Handle(ctx, query)
type GetMenuQuery struct {
	token kernel.AccessToken

	guard guard.ConstructorGuard
}

func NewGetMenuQuery(tableToken string) (GetMenuQuery, error) {
	token, err := kernel.AccessTokenFromString(tableToken)
	if err != nil {
		return GetMenuQuery{}, err
	}
	return GetMenuQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuQueryIsNotConstructed)
}

func (q GetMenuQuery) TableToken() kernel.AccessToken {
	return q.token
}

// GetMenuQueryResponse is the table context plus the available dishes by category.
type GetMenuQueryResponse struct {
	TableRef
	Sections []cart.Section[MenuItemView]
}

type MenuItemView struct {
	ID          kernel.UUID
	Name        string
	Description string
	Price       int64
	Category    string
	PrepMinutes int
}
