package roles

import (
	"context"
	"strings"

	"github.com/alumni-connect-api/internal/domain"
)

// AdminStore is the minimal admin-row access the oracle needs.
type AdminStore interface {
	ListByEmail(ctx context.Context, email string) ([]domain.CommunityAdmin, error)
}

// CommunityLister is used to expand a super admin's reach to every community.
type CommunityLister interface {
	Scan(ctx context.Context) ([]domain.Community, error)
}

// Oracle answers role questions. The lookup strategy (static allow-list vs.
// admin table) is an implementation detail hidden behind this interface.
type Oracle interface {
	IsSuperAdmin(email string) bool
	// IsCommunityAdmin reports whether email administers communityID.
	// An empty communityID means "admin of any community".
	IsCommunityAdmin(ctx context.Context, email, communityID string) (bool, error)
	// AdminCommunityIDs lists the community IDs email administers.
	// Super admins administer every community.
	AdminCommunityIDs(ctx context.Context, email string) ([]string, error)
}

type oracle struct {
	superAdmins map[string]struct{}
	adminRepo   AdminStore
	communities CommunityLister
}

// NewOracle builds an Oracle from the static super-admin allow-list and the
// community-admins store. Emails are compared case-insensitively.
func NewOracle(superAdminEmails []string, adminRepo AdminStore, communities CommunityLister) Oracle {
	set := make(map[string]struct{}, len(superAdminEmails))
	for _, e := range superAdminEmails {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &oracle{superAdmins: set, adminRepo: adminRepo, communities: communities}
}

func (o *oracle) IsSuperAdmin(email string) bool {
	_, ok := o.superAdmins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (o *oracle) IsCommunityAdmin(ctx context.Context, email, communityID string) (bool, error) {
	// Super admins are admins for all communities.
	if o.IsSuperAdmin(email) {
		return true, nil
	}
	// Admin rows store emails lowercased.
	rows, err := o.adminRepo.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, err
	}
	if communityID == "" {
		return len(rows) > 0, nil
	}
	for _, row := range rows {
		if row.CommunityID == communityID {
			return true, nil
		}
	}
	return false, nil
}

func (o *oracle) AdminCommunityIDs(ctx context.Context, email string) ([]string, error) {
	if o.IsSuperAdmin(email) {
		communities, err := o.communities.Scan(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(communities))
		for _, c := range communities {
			ids = append(ids, c.CommunityID)
		}
		return ids, nil
	}
	rows, err := o.adminRepo.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CommunityID)
	}
	return ids, nil
}
