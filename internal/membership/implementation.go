// internal/membership/implementation.go
package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	store Store
	now   func() time.Time
}

// NewService creates a new membership service instance.
func NewService(store Store) Service {
	return &service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CreateMember(ctx context.Context, input CreateMemberInput) (*Member, error) {
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	now := s.now()
	member := &Member{
		ID:         uuid.New(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Status:     StatusActive,
		JoinedDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.InsertMember(ctx, member); err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}

	return member, nil
}

func (s *service) GetMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	return s.store.FindMember(ctx, id)
}

func (s *service) ListMembers(ctx context.Context, filter ListFilter, limit, offset int) ([]*Member, int, error) {
	return s.store.ListMembers(ctx, filter, limit, offset)
}

func (s *service) UpdateMember(ctx context.Context, id uuid.UUID, input UpdateMemberInput) (*Member, error) {
	member, err := s.store.FindMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Status != nil {
		if *input.Status != StatusActive && *input.Status != StatusInactive {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)
		}
		member.Status = *input.Status
	}
	if input.JoinedDate != nil {
		member.JoinedDate = *input.JoinedDate
	}
	member.UpdatedAt = s.now()

	if err := s.store.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	return member, nil
}

func (s *service) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.FindMember(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteMember(ctx, id)
}
