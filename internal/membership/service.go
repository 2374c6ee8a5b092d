// internal/membership/service.go
package membership

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the membership service.
type Service interface {
	CreateMember(ctx context.Context, input CreateMemberInput) (*Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (*Member, error)
	ListMembers(ctx context.Context, filter ListFilter, limit, offset int) ([]*Member, int, error)
	UpdateMember(ctx context.Context, id uuid.UUID, input UpdateMemberInput) (*Member, error)
	DeleteMember(ctx context.Context, id uuid.UUID) error
}

// Store is the persistence collaborator for members.
type Store interface {
	InsertMember(ctx context.Context, member *Member) error
	FindMember(ctx context.Context, id uuid.UUID) (*Member, error)
	ListMembers(ctx context.Context, filter ListFilter, limit, offset int) ([]*Member, int, error)
	UpdateMember(ctx context.Context, member *Member) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
}
