package identifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alumni-connect-api/internal/application/roles"
	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/pkg/hash"
	"github.com/alumni-connect-api/internal/pkg/validate"
)

// IdentifierStore looks up identifiers by digest.
type IdentifierStore interface {
	FindByHash(ctx context.Context, hash string) (*domain.Identifier, error)
}

// ProfileStore resolves a matched identifier back to its owner.
type ProfileStore interface {
	Get(ctx context.Context, profileID string) (*domain.Profile, error)
}

type Service interface {
	// Verify reports whether any registered identifier matches the candidate
	// value. Only super admins and community admins may ask; the permission
	// check happens before the candidate is hashed or the store is touched,
	// so unauthorized callers leak nothing about stored data. A miss is a
	// found=false result, not an error.
	Verify(ctx context.Context, callerEmail string, req *domain.VerifyIdentifierRequest) (*domain.VerifyIdentifierResult, error)
}

type service struct {
	identifiers IdentifierStore
	profiles    ProfileStore
	oracle      roles.Oracle
	hasher      *hash.Hasher
}

func NewService(identifiers IdentifierStore, profiles ProfileStore, oracle roles.Oracle, hasher *hash.Hasher) Service {
	return &service{
		identifiers: identifiers,
		profiles:    profiles,
		oracle:      oracle,
		hasher:      hasher,
	}
}

func (s *service) Verify(ctx context.Context, callerEmail string, req *domain.VerifyIdentifierRequest) (*domain.VerifyIdentifierResult, error) {
	allowed, err := s.oracle.IsCommunityAdmin(ctx, callerEmail, req.CommunityID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	match, err := s.identifiers.FindByHash(ctx, s.hasher.Digest(req.Identifier))
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.VerifyIdentifierResult{Found: false}, nil
	}
	if err != nil {
		return nil, err
	}

	owner, err := s.profiles.Get(ctx, match.ProfileID)
	if err != nil {
		return nil, err
	}

	slog.Info("identifier verified", "by", callerEmail, "owner_uid", owner.UID)
	return &domain.VerifyIdentifierResult{
		Found: true,
		Name:  owner.Name,
		Email: owner.Email,
	}, nil
}
