package community

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alumni-connect-api/internal/application/roles"
	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/infrastructure/smtp"
	"github.com/alumni-connect-api/internal/pkg/id"
	"github.com/alumni-connect-api/internal/pkg/validate"
)

// CommunityStore is the community persistence this service needs.
type CommunityStore interface {
	Put(ctx context.Context, c *domain.Community) error
	Get(ctx context.Context, communityID string) (*domain.Community, error)
	Scan(ctx context.Context) ([]domain.Community, error)
	Update(ctx context.Context, communityID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, communityID string) error
}

// AdminStore is the community-admin persistence this service needs.
type AdminStore interface {
	Put(ctx context.Context, a *domain.CommunityAdmin) error
	Get(ctx context.Context, adminID string) (*domain.CommunityAdmin, error)
	ListByCommunity(ctx context.Context, communityID string) ([]domain.CommunityAdmin, error)
	HardDelete(ctx context.Context, adminID string) error
}

// IconStore holds community icons in object storage.
type IconStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service interface {
	// List returns all communities matching the filter, with user_is_admin
	// computed for the caller. Works for anonymous callers (empty email).
	List(ctx context.Context, filter domain.CommunityFilter, callerEmail string) ([]domain.CommunityView, error)
	Get(ctx context.Context, communityID, callerEmail string) (*domain.CommunityView, error)
	// Create registers a new community. Super admins only.
	Create(ctx context.Context, callerEmail string, req *domain.CreateCommunityRequest) (*domain.Community, error)
	// Update applies a partial update. Super admins or that community's admins.
	Update(ctx context.Context, communityID, callerEmail string, req *domain.UpdateCommunityRequest) (*domain.Community, error)
	// Delete removes the community and its admin rows. Super admins only.
	Delete(ctx context.Context, communityID, callerEmail string) error
	// UploadIcon stores a base64-encoded icon and saves its URL.
	UploadIcon(ctx context.Context, communityID, callerEmail, b64Data string) (string, error)

	// AddAdmin grants admin rights over a community. Super admins only.
	AddAdmin(ctx context.Context, communityID, callerEmail string, req *domain.CreateAdminRequest) (*domain.CommunityAdmin, error)
	// ListAdmins returns the community's admins. Super admins or that
	// community's admins.
	ListAdmins(ctx context.Context, communityID, callerEmail string) ([]domain.CommunityAdmin, error)
	// RemoveAdmin revokes an admin row. Super admins only.
	RemoveAdmin(ctx context.Context, adminID, callerEmail string) error

	// UserRoles summarises the caller's privileges.
	UserRoles(ctx context.Context, callerEmail string) (*domain.UserRoles, error)
}

type service struct {
	communities CommunityStore
	admins      AdminStore
	icons       IconStore
	oracle      roles.Oracle
	mailer      smtp.Mailer
}

func NewService(communities CommunityStore, admins AdminStore, icons IconStore, oracle roles.Oracle, mailer smtp.Mailer) Service {
	return &service{
		communities: communities,
		admins:      admins,
		icons:       icons,
		oracle:      oracle,
		mailer:      mailer,
	}
}

func (s *service) List(ctx context.Context, filter domain.CommunityFilter, callerEmail string) ([]domain.CommunityView, error) {
	all, err := s.communities.Scan(ctx)
	if err != nil {
		return nil, err
	}

	adminOf := map[string]bool{}
	if callerEmail != "" {
		ids, err := s.oracle.AdminCommunityIDs(ctx, callerEmail)
		if err != nil {
			return nil, err
		}
		for _, cid := range ids {
			adminOf[cid] = true
		}
	}

	views := make([]domain.CommunityView, 0, len(all))
	for _, c := range all {
		if !matches(&c, filter) {
			continue
		}
		views = append(views, domain.CommunityView{Community: c, UserIsAdmin: adminOf[c.CommunityID]})
	}
	sortViews(views, filter.SortBy)
	return views, nil
}

func (s *service) Get(ctx context.Context, communityID, callerEmail string) (*domain.CommunityView, error) {
	c, err := s.communities.Get(ctx, communityID)
	if err != nil {
		return nil, err
	}
	view := &domain.CommunityView{Community: *c}
	if callerEmail != "" {
		isAdmin, err := s.oracle.IsCommunityAdmin(ctx, callerEmail, communityID)
		if err != nil {
			return nil, err
		}
		view.UserIsAdmin = isAdmin
	}
	return view, nil
}

func (s *service) Create(ctx context.Context, callerEmail string, req *domain.CreateCommunityRequest) (*domain.Community, error) {
	if !s.oracle.IsSuperAdmin(callerEmail) {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	now := time.Now().UTC()
	c := &domain.Community{
		CommunityID:      id.New(),
		Name:             req.Name,
		Description:      req.Description,
		PlatformType:     req.PlatformType,
		Tags:             req.Tags,
		MemberCount:      req.MemberCount,
		InviteLink:       req.InviteLink,
		IdentifierFormat: req.IdentifierFormat,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.communities.Put(ctx, c); err != nil {
		return nil, err
	}
	slog.Info("community created", "community_id", c.CommunityID, "name", c.Name, "by", callerEmail)
	return c, nil
}

func (s *service) Update(ctx context.Context, communityID, callerEmail string, req *domain.UpdateCommunityRequest) (*domain.Community, error) {
	if err := s.requireCommunityAdmin(ctx, callerEmail, communityID); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	if _, err := s.communities.Get(ctx, communityID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PlatformType != nil {
		updates["platform_type"] = *req.PlatformType
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.MemberCount != nil {
		updates["member_count"] = *req.MemberCount
	}
	if req.InviteLink != nil {
		updates["invite_link"] = *req.InviteLink
	}
	if req.IdentifierFormat != nil {
		updates["identifier_format"] = *req.IdentifierFormat
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrBadRequest)
	}
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	if err := s.communities.Update(ctx, communityID, updates); err != nil {
		return nil, err
	}
	return s.communities.Get(ctx, communityID)
}

func (s *service) Delete(ctx context.Context, communityID, callerEmail string) error {
	if !s.oracle.IsSuperAdmin(callerEmail) {
		return domain.ErrForbidden
	}
	c, err := s.communities.Get(ctx, communityID)
	if err != nil {
		return err
	}

	// Admin rows for a deleted community would grant rights over nothing;
	// remove them with the community.
	admins, err := s.admins.ListByCommunity(ctx, communityID)
	if err != nil {
		return err
	}
	for _, a := range admins {
		if err := s.admins.HardDelete(ctx, a.AdminID); err != nil {
			return err
		}
	}

	if err := s.communities.HardDelete(ctx, communityID); err != nil {
		return err
	}

	// The stored icon is orphaned once the row is gone; removal is
	// best-effort since the community itself is already deleted.
	if c.IconURL != "" {
		if err := s.icons.Delete(ctx, "icons/"+communityID); err != nil {
			slog.Warn("failed to delete community icon", "community_id", communityID, "err", err)
		}
	}

	slog.Info("community deleted", "community_id", communityID, "by", callerEmail)
	return nil
}

func (s *service) UploadIcon(ctx context.Context, communityID, callerEmail, b64Data string) (string, error) {
	if err := s.requireCommunityAdmin(ctx, callerEmail, communityID); err != nil {
		return "", err
	}
	if _, err := s.communities.Get(ctx, communityID); err != nil {
		return "", err
	}

	url, err := s.icons.UploadBase64(ctx, "icons/"+communityID, b64Data)
	if err != nil {
		return "", err
	}
	updates := map[string]interface{}{
		"icon_url":   url,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.communities.Update(ctx, communityID, updates); err != nil {
		return "", err
	}
	return url, nil
}

func (s *service) AddAdmin(ctx context.Context, communityID, callerEmail string, req *domain.CreateAdminRequest) (*domain.CommunityAdmin, error) {
	if !s.oracle.IsSuperAdmin(callerEmail) {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	c, err := s.communities.Get(ctx, communityID)
	if err != nil {
		return nil, err
	}

	existing, err := s.admins.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if strings.EqualFold(a.AdminEmail, req.AdminEmail) {
			return nil, fmt.Errorf("%s is already an admin of %s: %w", req.AdminEmail, communityID, domain.ErrConflict)
		}
	}

	admin := &domain.CommunityAdmin{
		AdminID:     id.New(),
		CommunityID: communityID,
		AdminEmail:  strings.ToLower(req.AdminEmail),
		AdminName:   req.AdminName,
		AssignedBy:  callerEmail,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.admins.Put(ctx, admin); err != nil {
		return nil, err
	}

	// Notification is best-effort; the grant already happened.
	subject := fmt.Sprintf("You are now an admin of %s", c.Name)
	body := fmt.Sprintf("Hi %s,\n\nYou have been made an admin of the community %q. You can now verify member identifiers and manage the community page.\n", admin.AdminName, c.Name)
	if err := s.mailer.SendEmail(admin.AdminEmail, subject, body); err != nil {
		slog.Warn("failed to send admin notification", "email", admin.AdminEmail, "err", err)
	}

	slog.Info("community admin added", "community_id", communityID, "admin_email", admin.AdminEmail, "by", callerEmail)
	return admin, nil
}

func (s *service) ListAdmins(ctx context.Context, communityID, callerEmail string) ([]domain.CommunityAdmin, error) {
	if err := s.requireCommunityAdmin(ctx, callerEmail, communityID); err != nil {
		return nil, err
	}
	return s.admins.ListByCommunity(ctx, communityID)
}

func (s *service) RemoveAdmin(ctx context.Context, adminID, callerEmail string) error {
	if !s.oracle.IsSuperAdmin(callerEmail) {
		return domain.ErrForbidden
	}
	if _, err := s.admins.Get(ctx, adminID); err != nil {
		return err
	}
	if err := s.admins.HardDelete(ctx, adminID); err != nil {
		return err
	}
	slog.Info("community admin removed", "admin_id", adminID, "by", callerEmail)
	return nil
}

func (s *service) UserRoles(ctx context.Context, callerEmail string) (*domain.UserRoles, error) {
	ids, err := s.oracle.AdminCommunityIDs(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	return &domain.UserRoles{
		IsSuperAdmin:      s.oracle.IsSuperAdmin(callerEmail),
		AdminCommunityIDs: ids,
	}, nil
}

func (s *service) requireCommunityAdmin(ctx context.Context, email, communityID string) error {
	ok, err := s.oracle.IsCommunityAdmin(ctx, email, communityID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

func matches(c *domain.Community, f domain.CommunityFilter) bool {
	if f.Platform != "" && c.PlatformType != f.Platform {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range c.Tags {
			if strings.EqualFold(t, f.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) {
			return false
		}
	}
	return true
}

func sortViews(views []domain.CommunityView, sortBy string) {
	switch sortBy {
	case "member_count":
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].MemberCount > views[j].MemberCount
		})
	case "created_at":
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		})
	default:
		sort.SliceStable(views, func(i, j int) bool {
			return strings.ToLower(views[i].Name) < strings.ToLower(views[j].Name)
		})
	}
}
