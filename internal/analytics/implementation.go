// internal/analytics/implementation.go
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	leaderboardSize = 3
	trendMonths     = 6
)

type service struct {
	store  Store
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewService creates a new analytics service.
func NewService(store Store, logger *slog.Logger) Service {
	return &service{
		store:  store,
		logger: logger,
		tracer: otel.Tracer("libraledger/analytics"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) MostBorrowed(ctx context.Context) ([]*MostBorrowedBook, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.most_borrowed")
	defer span.End()

	books, err := s.store.MostBorrowed(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("query most borrowed: %w", err)
	}
	span.SetAttributes(attribute.Int("result.count", len(books)))
	return books, nil
}

// MonthlyTrends buckets raw borrow timestamps in memory. The window starts at
// the first day of the month five months back, so the current partial month is
// always the last bucket.
func (s *service) MonthlyTrends(ctx context.Context) ([]*MonthlyTrend, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.monthly_trends")
	defer span.End()

	now := s.now()
	windowStart := startOfMonth(now).AddDate(0, -(trendMonths - 1), 0)

	dates, err := s.store.BorrowDatesSince(ctx, windowStart)
	if err != nil {
		return nil, fmt.Errorf("query borrow dates: %w", err)
	}

	counts := make(map[string]int, trendMonths)
	for _, date := range dates {
		counts[monthLabel(date)]++
	}

	trends := make([]*MonthlyTrend, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		label := monthLabel(windowStart.AddDate(0, i, 0))
		trends = append(trends, &MonthlyTrend{Month: label, Count: counts[label]})
	}

	span.SetAttributes(attribute.Int("lendings.in_window", len(dates)))
	return trends, nil
}

func (s *service) CategoryDistribution(ctx context.Context) ([]*CategoryCount, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.category_distribution")
	defer span.End()

	counts, err := s.store.CategoryDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("query category distribution: %w", err)
	}
	span.SetAttributes(attribute.Int("result.count", len(counts)))
	return counts, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
