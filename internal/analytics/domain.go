// internal/analytics/domain.go
package analytics

import (
	"time"

	"github.com/google/uuid"
)

// MostBorrowedBook is one row of the circulation leaderboard.
type MostBorrowedBook struct {
	BookID      uuid.UUID `json:"book_id" db:"book_id"`
	BookTitle   string    `json:"book_title" db:"book_title"`
	BookAuthor  string    `json:"book_author" db:"book_author"`
	BorrowCount int       `json:"borrow_count" db:"borrow_count"`
}

// MonthlyTrend is the borrow count for one calendar month, labelled like
// "Jan 2006".
type MonthlyTrend struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// CategoryCount is the number of catalogued titles in one category.
type CategoryCount struct {
	CategoryID   uuid.UUID `json:"category_id" db:"category_id"`
	CategoryName string    `json:"category_name" db:"category_name"`
	BookCount    int       `json:"book_count" db:"book_count"`
}

// monthLabel formats a timestamp the way the dashboard charts expect.
func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}
