// internal/membership/domain.go
package membership

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidInput   = errors.New("invalid input")
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Member represents a library member. Lending operations reference members
// but never mutate them.
type Member struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Status     string    `json:"status" db:"status"`
	JoinedDate time.Time `json:"joined_date" db:"joined_date"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CreateMemberInput carries the fields of a new member registration.
type CreateMemberInput struct {
	Name  string
	Email string
	Phone string
}

// UpdateMemberInput carries the mutable fields of a member. Nil pointers
// leave the current value in place, matching partial updates from the admin
// console.
type UpdateMemberInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Status     *string
	JoinedDate *time.Time
}

// ListFilter narrows the member list.
type ListFilter struct {
	Search string
	Status string
}
