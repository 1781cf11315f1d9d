package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/infrastructure/cas"
	jwtinfra "github.com/alumni-connect-api/internal/infrastructure/jwt"
	"github.com/alumni-connect-api/internal/pkg/hash"
	"github.com/alumni-connect-api/internal/pkg/id"
)

// The login email is registered as an identifier on first login so admins can
// verify membership against it without any extra action from the user.
const defaultIdentifierLabel = "CAS email"

// TicketValidator exchanges a CAS service ticket for verified attributes.
type TicketValidator interface {
	ValidateTicket(ctx context.Context, ticket string) (*cas.Attributes, error)
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(uid, email, name string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
	IsValid(token string) bool
	Expiry() time.Duration
}

// ProfileStore is the profile access the auth flow needs.
type ProfileStore interface {
	GetByUID(ctx context.Context, uid string) (*domain.Profile, error)
	Put(ctx context.Context, p *domain.Profile) error
}

// IdentifierStore persists hashed identifiers.
type IdentifierStore interface {
	Put(ctx context.Context, ident *domain.Identifier) error
}

// LoginResult is a completed CAS login: the signed session token plus the
// profile it authenticates.
type LoginResult struct {
	Token     string
	ExpiresIn int64 // seconds
	Profile   *domain.Profile
}

type Service interface {
	// LoginWithTicket validates the CAS ticket, ensures a profile exists and
	// returns a signed session token.
	LoginWithTicket(ctx context.Context, ticket string) (*LoginResult, error)
	// VerifyToken returns the claims of a valid session token.
	VerifyToken(token string) (*jwtinfra.Claims, error)
	// IsLoggedIn reports whether the token still authenticates, without detail.
	IsLoggedIn(token string) bool
}

type service struct {
	validator      TicketValidator
	tokens         TokenIssuer
	profileRepo    ProfileStore
	identifierRepo IdentifierStore
	hasher         *hash.Hasher
}

func NewService(validator TicketValidator, tokens TokenIssuer, profileRepo ProfileStore, identifierRepo IdentifierStore, hasher *hash.Hasher) Service {
	return &service{
		validator:      validator,
		tokens:         tokens,
		profileRepo:    profileRepo,
		identifierRepo: identifierRepo,
		hasher:         hasher,
	}
}

func (s *service) LoginWithTicket(ctx context.Context, ticket string) (*LoginResult, error) {
	attrs, err := s.validator.ValidateTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	if attrs.Email == "" {
		return nil, fmt.Errorf("cas attributes missing email: %w", domain.ErrUnauthorized)
	}

	profile, err := s.getOrCreateProfile(ctx, attrs)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(profile.UID, profile.Email, profile.Name)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "uid", profile.UID, "email", profile.Email)
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokens.Expiry().Seconds()),
		Profile:   profile,
	}, nil
}

func (s *service) VerifyToken(token string) (*jwtinfra.Claims, error) {
	return s.tokens.Verify(token)
}

func (s *service) IsLoggedIn(token string) bool {
	return s.tokens.IsValid(token)
}

func (s *service) getOrCreateProfile(ctx context.Context, attrs *cas.Attributes) (*domain.Profile, error) {
	uid := attrs.UID
	if uid == "" {
		// Some CAS deployments omit the uid attribute; the principal is
		// still unique per user.
		uid = attrs.Email
	}

	p, err := s.profileRepo.GetByUID(ctx, uid)
	if err == nil {
		return p, nil
	}
	// Only a confirmed miss means first login. A store failure must not
	// create a second profile row for an existing user.
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ProfileID: id.New(),
		UID:       uid,
		Email:     attrs.Email,
		Name:      attrs.DisplayName(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profileRepo.Put(ctx, profile); err != nil {
		return nil, err
	}

	ident := &domain.Identifier{
		IdentifierID: id.New(),
		ProfileID:    profile.ProfileID,
		Label:        defaultIdentifierLabel,
		Hash:         s.hasher.Digest(attrs.Email),
		CreatedAt:    now,
	}
	if err := s.identifierRepo.Put(ctx, ident); err != nil {
		// The profile exists; a missing default identifier can be re-added by
		// the user, so log rather than fail the login.
		slog.Warn("failed to seed default identifier", "uid", profile.UID, "err", err)
	}

	slog.Info("created new profile", "uid", profile.UID, "email", profile.Email)
	return profile, nil
}
