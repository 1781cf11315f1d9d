package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/infrastructure/cas"
	jwtinfra "github.com/alumni-connect-api/internal/infrastructure/jwt"
	"github.com/alumni-connect-api/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockValidator struct{ mock.Mock }

func (m *mockValidator) ValidateTicket(ctx context.Context, ticket string) (*cas.Attributes, error) {
	args := m.Called(ctx, ticket)
	if a, _ := args.Get(0).(*cas.Attributes); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTokenIssuer struct{ mock.Mock }

func (m *mockTokenIssuer) Issue(uid, email, name string) (string, error) {
	args := m.Called(uid, email, name)
	return args.String(0), args.Error(1)
}
func (m *mockTokenIssuer) Verify(token string) (*jwtinfra.Claims, error) {
	args := m.Called(token)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenIssuer) IsValid(token string) bool {
	return m.Called(token).Bool(0)
}
func (m *mockTokenIssuer) Expiry() time.Duration {
	return 24 * time.Hour
}

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	args := m.Called(ctx, uid)
	if p, _ := args.Get(0).(*domain.Profile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProfileStore) Put(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type mockIdentifierStore struct{ mock.Mock }

func (m *mockIdentifierStore) Put(ctx context.Context, ident *domain.Identifier) error {
	return m.Called(ctx, ident).Error(0)
}

// --- helpers ---

var testHasher = hash.New("test-hash-key")

func validAttrs() *cas.Attributes {
	return &cas.Attributes{
		UID:    "2021111001",
		Email:  "alice@students.example.edu",
		Name:   "Alice Smith",
		RollNo: "2021111001",
	}
}

// --- LoginWithTicket tests ---

func TestLoginWithTicket_NewUser_CreatesProfileAndDefaultIdentifier(t *testing.T) {
	v, tok, ps, is := &mockValidator{}, &mockTokenIssuer{}, &mockProfileStore{}, &mockIdentifierStore{}

	v.On("ValidateTicket", mock.Anything, "ST-1").Return(validAttrs(), nil)
	ps.On("GetByUID", mock.Anything, "2021111001").Return(nil, domain.ErrNotFound)
	ps.On("Put", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)
	is.On("Put", mock.Anything, mock.AnythingOfType("*domain.Identifier")).Return(nil)
	tok.On("Issue", "2021111001", "alice@students.example.edu", "Alice Smith").Return("signed-token", nil)

	result, err := NewService(v, tok, ps, is, testHasher).LoginWithTicket(context.Background(), "ST-1")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, int64(86400), result.ExpiresIn)
	assert.Equal(t, "Alice Smith", result.Profile.Name)

	// The seeded identifier must carry the digest of the login email.
	is.AssertCalled(t, "Put", mock.Anything, mock.MatchedBy(func(i *domain.Identifier) bool {
		return i.Label == "CAS email" && i.Hash == testHasher.Digest("alice@students.example.edu")
	}))
}

func TestLoginWithTicket_ExistingUser_NoNewIdentifier(t *testing.T) {
	v, tok, ps, is := &mockValidator{}, &mockTokenIssuer{}, &mockProfileStore{}, &mockIdentifierStore{}

	existing := &domain.Profile{ProfileID: "p1", UID: "2021111001", Email: "alice@students.example.edu", Name: "Alice Smith"}
	v.On("ValidateTicket", mock.Anything, "ST-1").Return(validAttrs(), nil)
	ps.On("GetByUID", mock.Anything, "2021111001").Return(existing, nil)
	tok.On("Issue", "2021111001", "alice@students.example.edu", "Alice Smith").Return("signed-token", nil)

	result, err := NewService(v, tok, ps, is, testHasher).LoginWithTicket(context.Background(), "ST-1")

	require.NoError(t, err)
	assert.Equal(t, "p1", result.Profile.ProfileID)
	ps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	is.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestLoginWithTicket_InvalidTicket(t *testing.T) {
	v, tok, ps, is := &mockValidator{}, &mockTokenIssuer{}, &mockProfileStore{}, &mockIdentifierStore{}

	v.On("ValidateTicket", mock.Anything, "ST-bad").Return(nil, domain.ErrUnauthorized)

	_, err := NewService(v, tok, ps, is, testHasher).LoginWithTicket(context.Background(), "ST-bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	ps.AssertNotCalled(t, "GetByUID", mock.Anything, mock.Anything)
}

func TestLoginWithTicket_StoreFailureDoesNotCreateProfile(t *testing.T) {
	v, tok, ps, is := &mockValidator{}, &mockTokenIssuer{}, &mockProfileStore{}, &mockIdentifierStore{}

	v.On("ValidateTicket", mock.Anything, "ST-1").Return(validAttrs(), nil)
	ps.On("GetByUID", mock.Anything, "2021111001").Return(nil, errors.New("dynamo: throughput exceeded"))

	_, err := NewService(v, tok, ps, is, testHasher).LoginWithTicket(context.Background(), "ST-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	ps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	is.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	tok.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginWithTicket_MissingUID_FallsBackToEmail(t *testing.T) {
	v, tok, ps, is := &mockValidator{}, &mockTokenIssuer{}, &mockProfileStore{}, &mockIdentifierStore{}

	attrs := &cas.Attributes{Email: "bob@students.example.edu", FirstName: "Bob", LastName: "Jones"}
	v.On("ValidateTicket", mock.Anything, "ST-1").Return(attrs, nil)
	ps.On("GetByUID", mock.Anything, "bob@students.example.edu").Return(nil, domain.ErrNotFound)
	ps.On("Put", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)
	is.On("Put", mock.Anything, mock.AnythingOfType("*domain.Identifier")).Return(nil)
	tok.On("Issue", "bob@students.example.edu", "bob@students.example.edu", "Bob Jones").Return("signed-token", nil)

	result, err := NewService(v, tok, ps, is, testHasher).LoginWithTicket(context.Background(), "ST-1")

	require.NoError(t, err)
	assert.Equal(t, "bob@students.example.edu", result.Profile.UID)
	assert.Equal(t, "Bob Jones", result.Profile.Name)
}
