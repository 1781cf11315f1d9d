package profile

import (
	"context"
	"testing"
	"time"

	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) Get(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if p, _ := args.Get(0).(*domain.Profile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProfileStore) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	args := m.Called(ctx, uid)
	if p, _ := args.Get(0).(*domain.Profile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockIdentifierStore struct{ mock.Mock }

func (m *mockIdentifierStore) Put(ctx context.Context, ident *domain.Identifier) error {
	return m.Called(ctx, ident).Error(0)
}
func (m *mockIdentifierStore) Get(ctx context.Context, identifierID string) (*domain.Identifier, error) {
	args := m.Called(ctx, identifierID)
	if i, _ := args.Get(0).(*domain.Identifier); i != nil {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockIdentifierStore) ListByProfile(ctx context.Context, profileID string) ([]domain.Identifier, error) {
	args := m.Called(ctx, profileID)
	if l, _ := args.Get(0).([]domain.Identifier); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockIdentifierStore) HardDelete(ctx context.Context, identifierID string) error {
	return m.Called(ctx, identifierID).Error(0)
}

var testHasher = hash.New("test-hash-key")

func aliceProfile() *domain.Profile {
	return &domain.Profile{ProfileID: "p1", UID: "u1", Email: "alice@example.edu", Name: "Alice"}
}

func TestGet_OwnerSeesIdentifierLabels(t *testing.T) {
	ps, is := &mockProfileStore{}, &mockIdentifierStore{}
	ps.On("Get", mock.Anything, "p1").Return(aliceProfile(), nil)
	is.On("ListByProfile", mock.Anything, "p1").Return([]domain.Identifier{
		{IdentifierID: "i1", ProfileID: "p1", Label: "discord", CreatedAt: time.Now()},
		{IdentifierID: "i2", ProfileID: "p1", Label: "phone", CreatedAt: time.Now()},
	}, nil)

	view, err := NewService(ps, is, testHasher).Get(context.Background(), "p1", "u1")

	require.NoError(t, err)
	assert.Equal(t, 2, view.IdentifiersCount)
	require.Len(t, view.Identifiers, 2)
	assert.Equal(t, "discord", view.Identifiers[0].Label)
}

func TestGet_StrangerSeesOnlyCount(t *testing.T) {
	ps, is := &mockProfileStore{}, &mockIdentifierStore{}
	ps.On("Get", mock.Anything, "p1").Return(aliceProfile(), nil)
	is.On("ListByProfile", mock.Anything, "p1").Return([]domain.Identifier{
		{IdentifierID: "i1", ProfileID: "p1", Label: "discord"},
	}, nil)

	view, err := NewService(ps, is, testHasher).Get(context.Background(), "p1", "someone-else")

	require.NoError(t, err)
	assert.Equal(t, 1, view.IdentifiersCount)
	assert.Nil(t, view.Identifiers)
}

func TestRegisterIdentifiers_HashesEveryValue(t *testing.T) {
	ps, is := &mockProfileStore{}, &mockIdentifierStore{}
	ps.On("GetByUID", mock.Anything, "u1").Return(aliceProfile(), nil)
	is.On("Put", mock.Anything, mock.AnythingOfType("*domain.Identifier")).Return(nil)

	req := &domain.RegisterIdentifiersRequest{Identifiers: []domain.IdentifierInput{
		{Label: "discord", Value: "Alice#1234"},
		{Label: "phone", Value: "+91 98765 43210"},
	}}
	views, err := NewService(ps, is, testHasher).RegisterIdentifiers(context.Background(), "u1", req)

	require.NoError(t, err)
	assert.Len(t, views, 2)
	is.AssertNumberOfCalls(t, "Put", 2)
	is.AssertCalled(t, "Put", mock.Anything, mock.MatchedBy(func(i *domain.Identifier) bool {
		return i.Label == "discord" && i.Hash == testHasher.Digest("Alice#1234")
	}))
}

func TestRegisterIdentifiers_EmptyBatchRejected(t *testing.T) {
	ps, is := &mockProfileStore{}, &mockIdentifierStore{}

	req := &domain.RegisterIdentifiersRequest{}
	_, err := NewService(ps, is, testHasher).RegisterIdentifiers(context.Background(), "u1", req)

	assert.ErrorIs(t, err, domain.ErrBadRequest)
	is.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestDeleteIdentifier_OwnedByCaller(t *testing.T) {
	ps, is := &mockProfileStore{}, &mockIdentifierStore{}
	ps.On("GetByUID", mock.Anything, "u1").Return(aliceProfile(), nil)
	is.On("Get", mock.Anything, "i1").Return(&domain.Identifier{IdentifierID: "i1", ProfileID: "p1"}, nil)
	is.On("HardDelete", mock.Anything, "i1").Return(nil)

	err := NewService(ps, is, testHasher).DeleteIdentifier(context.Background(), "u1", "i1")

	require.NoError(t, err)
	is.AssertCalled(t, "HardDelete", mock.Anything, "i1")
}

func TestDeleteIdentifier_NotOwned_LooksLikeMissing(t *testing.T) {
	ps, is := &mockProfileStore{}, &mockIdentifierStore{}
	ps.On("GetByUID", mock.Anything, "u1").Return(aliceProfile(), nil)
	is.On("Get", mock.Anything, "i9").Return(&domain.Identifier{IdentifierID: "i9", ProfileID: "other"}, nil)

	err := NewService(ps, is, testHasher).DeleteIdentifier(context.Background(), "u1", "i9")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	is.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}
