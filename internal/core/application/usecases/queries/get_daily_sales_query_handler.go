package queries

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDailySalesQueryHandler struct {
	db *gorm.DB
}

func NewGetDailySalesQueryHandler(db *gorm.DB) GetDailySalesQueryHandler {
	return GetDailySalesQueryHandler{db: db}
}

// Handle returns one row per day with paid orders, most recent day first. Orders are
// attributed to the day they were placed.
func (h GetDailySalesQueryHandler) Handle(ctx context.Context, query GetDailySalesQuery) ([]DailySales, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			to_char((created_at AT TIME ZONE ?)::date, 'YYYY-MM-DD') AS day,
			count(*) AS orders,
			coalesce(sum(total_amount), 0) AS revenue
		FROM orders
		WHERE tenant_id = ?
			AND status = ?
			AND created_at >= ?
			AND created_at < ?
		GROUP BY day
		ORDER BY day DESC
	`,
		query.Location().String(),
		query.TenantID().Bytes(),
		int(order.Paid),
		query.From().UTC(),
		query.To().UTC(),
	).Rows()
	if err != nil {
		return nil, errs.Unavailable("database", err)
	}
	defer rows.Close()

	sales := make([]DailySales, 0)
	for rows.Next() {
		var day DailySales
		if err = rows.Scan(&day.Day, &day.Orders, &day.Revenue); err != nil {
			return nil, errs.Unavailable("database", err)
		}
		sales = append(sales, day)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.Unavailable("database", err)
	}
	return sales, nil
}
