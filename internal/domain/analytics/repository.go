package analytics

import (
	"context"
	"time"
)

// Repository is the read-only query contract against the transaction
// and category stores. Date bounds are inclusive calendar dates.
type Repository interface {
	Overview(ctx context.Context, userID string, from, to time.Time) (OverviewRow, error)
	CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]CategoryTotalRow, error)
	TotalExpenses(ctx context.Context, userID string, from, to time.Time) (float64, error)
	TransactionsSince(ctx context.Context, userID string, from time.Time) ([]TransactionRow, error)
}
