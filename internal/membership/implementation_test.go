package membership

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemberService() Service {
	return NewService(NewMemoryStore())
}

func TestCreateMember(t *testing.T) {
	service := newMemberService()

	member, err := service.CreateMember(context.Background(), CreateMemberInput{
		Name:  "Ada Reader",
		Email: "ada@example.com",
		Phone: "555-0100",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, member.ID)
	assert.Equal(t, StatusActive, member.Status)
	assert.False(t, member.JoinedDate.IsZero())
}

func TestCreateMemberRequiresNameAndEmail(t *testing.T) {
	service := newMemberService()

	_, err := service.CreateMember(context.Background(), CreateMemberInput{Name: "Ada Reader"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.CreateMember(context.Background(), CreateMemberInput{Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateMemberPartial(t *testing.T) {
	service := newMemberService()
	ctx := context.Background()

	member, err := service.CreateMember(ctx, CreateMemberInput{
		Name:  "Ada Reader",
		Email: "ada@example.com",
	})
	require.NoError(t, err)

	status := StatusInactive
	updated, err := service.UpdateMember(ctx, member.ID, UpdateMemberInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusInactive, updated.Status)
	assert.Equal(t, "Ada Reader", updated.Name)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdateMemberRejectsUnknownStatus(t *testing.T) {
	service := newMemberService()
	ctx := context.Background()

	member, err := service.CreateMember(ctx, CreateMemberInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	bogus := "SUSPENDED"
	_, err = service.UpdateMember(ctx, member.ID, UpdateMemberInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListMembersFilter(t *testing.T) {
	service := newMemberService()
	ctx := context.Background()

	ada, err := service.CreateMember(ctx, CreateMemberInput{Name: "Ada Reader", Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = service.CreateMember(ctx, CreateMemberInput{Name: "Grace Borrower", Email: "grace@example.com"})
	require.NoError(t, err)

	inactive := StatusInactive
	_, err = service.UpdateMember(ctx, ada.ID, UpdateMemberInput{Status: &inactive})
	require.NoError(t, err)

	members, total, err := service.ListMembers(ctx, ListFilter{Status: StatusActive}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, members, 1)
	assert.Equal(t, "Grace Borrower", members[0].Name)

	members, total, err = service.ListMembers(ctx, ListFilter{Search: "ada"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Ada Reader", members[0].Name)
}

func TestDeleteMember(t *testing.T) {
	service := newMemberService()
	ctx := context.Background()

	member, err := service.CreateMember(ctx, CreateMemberInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteMember(ctx, member.ID))

	_, err = service.GetMember(ctx, member.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)

	err = service.DeleteMember(ctx, member.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
