package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrGetTablesQueryIsNotConstructed = errors.New(
		"GetTablesQuery must be created via NewGetTablesQuery constructor",
	)
)

// GetTablesQuery lists a tenant's tables with the menu URLs to print as QR codes.
type GetTablesQuery struct {
	tenantID kernel.UUID
	baseURL  string

	guard guard.ConstructorGuard
}

func NewGetTablesQuery(tenantID kernel.UUID, baseURL string) (GetTablesQuery, error) {
	if err := requireID("tenant", tenantID); err != nil {
		return GetTablesQuery{}, err
	}
	if baseURL == "" {
		return GetTablesQuery{}, errs.NewValueIsRequiredError("base URL")
	}
	return GetTablesQuery{tenantID: tenantID, baseURL: baseURL, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTablesQuery) Validate() error {
	return q.guard.Validate(ErrGetTablesQueryIsNotConstructed)
}

func (q GetTablesQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetTablesQuery) BaseURL() string {
	return q.baseURL
}

type TableView struct {
	ID      kernel.UUID
	Number  int
	Status  table.Status
	Token   string
	MenuURL string
}
