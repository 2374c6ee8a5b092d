// internal/analytics/service.go
package analytics

import (
	"context"
	"time"
)

// Service aggregates circulation data for the dashboard.
type Service interface {
	// MostBorrowed returns the top titles ranked by total borrow count.
	MostBorrowed(ctx context.Context) ([]*MostBorrowedBook, error)

	// MonthlyTrends returns borrow counts for the last six calendar months,
	// oldest first, including months with zero borrows.
	MonthlyTrends(ctx context.Context) ([]*MonthlyTrend, error)

	// CategoryDistribution returns how many titles each category holds.
	CategoryDistribution(ctx context.Context) ([]*CategoryCount, error)
}

// Store is the read-side persistence port for analytics queries.
type Store interface {
	MostBorrowed(ctx context.Context, limit int) ([]*MostBorrowedBook, error)
	BorrowDatesSince(ctx context.Context, since time.Time) ([]time.Time, error)
	CategoryDistribution(ctx context.Context) ([]*CategoryCount, error)
}
