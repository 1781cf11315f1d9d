package roles

import (
	"context"
	"testing"

	"github.com/alumni-connect-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAdminStore struct{ mock.Mock }

func (m *mockAdminStore) ListByEmail(ctx context.Context, email string) ([]domain.CommunityAdmin, error) {
	args := m.Called(ctx, email)
	if rows, _ := args.Get(0).([]domain.CommunityAdmin); rows != nil {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCommunityLister struct{ mock.Mock }

func (m *mockCommunityLister) Scan(ctx context.Context) ([]domain.Community, error) {
	args := m.Called(ctx)
	if cs, _ := args.Get(0).([]domain.Community); cs != nil {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestIsSuperAdmin(t *testing.T) {
	o := NewOracle([]string{"root@example.edu", " Boss@Example.edu "}, &mockAdminStore{}, &mockCommunityLister{})

	assert.True(t, o.IsSuperAdmin("root@example.edu"))
	assert.True(t, o.IsSuperAdmin("BOSS@example.edu"))
	assert.False(t, o.IsSuperAdmin("nobody@example.edu"))
}

func TestIsCommunityAdmin_SuperAdminShortCircuits(t *testing.T) {
	store := &mockAdminStore{}
	o := NewOracle([]string{"root@example.edu"}, store, &mockCommunityLister{})

	ok, err := o.IsCommunityAdmin(context.Background(), "root@example.edu", "c1")
	require.NoError(t, err)
	assert.True(t, ok)
	store.AssertNotCalled(t, "ListByEmail", mock.Anything, mock.Anything)
}

func TestIsCommunityAdmin_SpecificCommunity(t *testing.T) {
	store := &mockAdminStore{}
	store.On("ListByEmail", mock.Anything, "admin@example.edu").Return([]domain.CommunityAdmin{
		{AdminID: "a1", CommunityID: "c1", AdminEmail: "admin@example.edu"},
	}, nil)
	o := NewOracle(nil, store, &mockCommunityLister{})

	ok, err := o.IsCommunityAdmin(context.Background(), "admin@example.edu", "c1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = o.IsCommunityAdmin(context.Background(), "admin@example.edu", "c2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsCommunityAdmin_AnyCommunity(t *testing.T) {
	store := &mockAdminStore{}
	store.On("ListByEmail", mock.Anything, "admin@example.edu").Return([]domain.CommunityAdmin{
		{AdminID: "a1", CommunityID: "c1"},
	}, nil)
	store.On("ListByEmail", mock.Anything, "user@example.edu").Return([]domain.CommunityAdmin{}, nil)
	o := NewOracle(nil, store, &mockCommunityLister{})

	ok, err := o.IsCommunityAdmin(context.Background(), "admin@example.edu", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = o.IsCommunityAdmin(context.Background(), "user@example.edu", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminCommunityIDs_SuperAdminGetsAll(t *testing.T) {
	lister := &mockCommunityLister{}
	lister.On("Scan", mock.Anything).Return([]domain.Community{
		{CommunityID: "c1"}, {CommunityID: "c2"},
	}, nil)
	o := NewOracle([]string{"root@example.edu"}, &mockAdminStore{}, lister)

	ids, err := o.AdminCommunityIDs(context.Background(), "root@example.edu")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)
}

func TestAdminCommunityIDs_RegularAdmin(t *testing.T) {
	store := &mockAdminStore{}
	store.On("ListByEmail", mock.Anything, "admin@example.edu").Return([]domain.CommunityAdmin{
		{AdminID: "a1", CommunityID: "c2"},
	}, nil)
	o := NewOracle(nil, store, &mockCommunityLister{})

	ids, err := o.AdminCommunityIDs(context.Background(), "admin@example.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, ids)
}
