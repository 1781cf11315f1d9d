package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/pkg/hash"
	"github.com/alumni-connect-api/internal/pkg/id"
	"github.com/alumni-connect-api/internal/pkg/validate"
)

// ProfileStore is the profile access this service needs.
type ProfileStore interface {
	Get(ctx context.Context, profileID string) (*domain.Profile, error)
	GetByUID(ctx context.Context, uid string) (*domain.Profile, error)
}

// IdentifierStore persists and lists hashed identifiers.
type IdentifierStore interface {
	Put(ctx context.Context, ident *domain.Identifier) error
	Get(ctx context.Context, identifierID string) (*domain.Identifier, error)
	ListByProfile(ctx context.Context, profileID string) ([]domain.Identifier, error)
	HardDelete(ctx context.Context, identifierID string) error
}

type Service interface {
	// Me returns the caller's own profile with full identifier details.
	Me(ctx context.Context, uid string) (*domain.ProfileView, error)
	// Get returns a profile by id. Identifier labels are only included when the
	// requester owns the profile; everyone else sees the count.
	Get(ctx context.Context, profileID, requesterUID string) (*domain.ProfileView, error)
	// GetByUID is Get keyed by the CAS uid instead of the profile id.
	GetByUID(ctx context.Context, uid, requesterUID string) (*domain.ProfileView, error)
	// RegisterIdentifiers hashes and stores a batch of identifiers on the
	// caller's profile. Repeated values are tolerated and stored again.
	RegisterIdentifiers(ctx context.Context, uid string, req *domain.RegisterIdentifiersRequest) ([]domain.IdentifierView, error)
	// DeleteIdentifier removes one of the caller's identifiers. Identifiers
	// owned by someone else are reported as not found.
	DeleteIdentifier(ctx context.Context, uid, identifierID string) error
}

type service struct {
	profiles    ProfileStore
	identifiers IdentifierStore
	hasher      *hash.Hasher
}

func NewService(profiles ProfileStore, identifiers IdentifierStore, hasher *hash.Hasher) Service {
	return &service{profiles: profiles, identifiers: identifiers, hasher: hasher}
}

func (s *service) Me(ctx context.Context, uid string) (*domain.ProfileView, error) {
	p, err := s.profiles.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, p, true)
}

func (s *service) Get(ctx context.Context, profileID, requesterUID string) (*domain.ProfileView, error) {
	p, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, p, p.UID == requesterUID)
}

func (s *service) GetByUID(ctx context.Context, uid, requesterUID string) (*domain.ProfileView, error) {
	p, err := s.profiles.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, p, p.UID == requesterUID)
}

func (s *service) RegisterIdentifiers(ctx context.Context, uid string, req *domain.RegisterIdentifiersRequest) ([]domain.IdentifierView, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	p, err := s.profiles.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]domain.IdentifierView, 0, len(req.Identifiers))
	for _, in := range req.Identifiers {
		ident := &domain.Identifier{
			IdentifierID: id.New(),
			ProfileID:    p.ProfileID,
			Label:        in.Label,
			Hash:         s.hasher.Digest(in.Value),
			CreatedAt:    now,
		}
		if err := s.identifiers.Put(ctx, ident); err != nil {
			return nil, err
		}
		views = append(views, domain.IdentifierView{
			IdentifierID: ident.IdentifierID,
			Label:        ident.Label,
			CreatedAt:    ident.CreatedAt,
		})
	}

	slog.Info("registered identifiers", "uid", uid, "count", len(views))
	return views, nil
}

func (s *service) DeleteIdentifier(ctx context.Context, uid, identifierID string) error {
	p, err := s.profiles.GetByUID(ctx, uid)
	if err != nil {
		return err
	}

	ident, err := s.identifiers.Get(ctx, identifierID)
	if err != nil {
		return err
	}
	if ident.ProfileID != p.ProfileID {
		// Do not reveal that the identifier exists under another profile.
		return domain.ErrNotFound
	}
	return s.identifiers.HardDelete(ctx, identifierID)
}

func (s *service) buildView(ctx context.Context, p *domain.Profile, owner bool) (*domain.ProfileView, error) {
	idents, err := s.identifiers.ListByProfile(ctx, p.ProfileID)
	if err != nil {
		return nil, err
	}

	view := &domain.ProfileView{
		ProfileID:        p.ProfileID,
		UID:              p.UID,
		Email:            p.Email,
		Name:             p.Name,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		IdentifiersCount: len(idents),
	}
	if owner {
		view.Identifiers = make([]domain.IdentifierView, 0, len(idents))
		for _, ident := range idents {
			view.Identifiers = append(view.Identifiers, domain.IdentifierView{
				IdentifierID: ident.IdentifierID,
				Label:        ident.Label,
				CreatedAt:    ident.CreatedAt,
			})
		}
	}
	return view, nil
}
