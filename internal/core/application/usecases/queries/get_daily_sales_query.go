package queries

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const maxSalesRange = 366 * 24 * time.Hour

var (
	ErrGetDailySalesQueryIsNotConstructed = errors.New(
		"GetDailySalesQuery must be created via NewGetDailySalesQuery constructor",
	)
)

// GetDailySalesQuery sums paid orders per calendar day in the tenant's time zone over
// the half-open range [from, to).
type GetDailySalesQuery struct {
	tenantID kernel.UUID
	from     time.Time
	to       time.Time
	location *time.Location

	guard guard.ConstructorGuard
}

// NewGetDailySalesQuery validates the range; a nil location means UTC.
func NewGetDailySalesQuery(tenantID kernel.UUID, from, to time.Time, location *time.Location) (GetDailySalesQuery, error) {
	if err := requireID("tenant", tenantID); err != nil {
		return GetDailySalesQuery{}, err
	}
	if !from.Before(to) {
		return GetDailySalesQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"sales range", fmt.Errorf("from %s is not before to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		)
	}
	if to.Sub(from) > maxSalesRange {
		return GetDailySalesQuery{}, errs.NewValueIsOutOfRangeError("sales range", to.Sub(from), time.Duration(0), maxSalesRange)
	}
	if location == nil {
		location = time.UTC
	}

	return GetDailySalesQuery{
		tenantID: tenantID,
		from:     from,
		to:       to,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetDailySalesQuery) Validate() error {
	return q.guard.Validate(ErrGetDailySalesQueryIsNotConstructed)
}

func (q GetDailySalesQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetDailySalesQuery) From() time.Time {
	return q.from
}

func (q GetDailySalesQuery) To() time.Time {
	return q.to
}

func (q GetDailySalesQuery) Location() *time.Location {
	return q.location
}

// DailySales is the revenue of one day.
type DailySales struct {
	Day     string // 2006-01-02
	Orders  int64
	Revenue int64
}
