package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
)

// permissionService resolves effective permissions as the union of the
// permission sets of every group the user belongs to.
type permissionService struct {
	groupRepository store.GroupRepository
	logger          *logger.Logger
}

// NewPermissionService constructs a PermissionService over the given group
// repository.
func NewPermissionService(groupRepository store.GroupRepository, logger *logger.Logger) PermissionService {
	return &permissionService{
		groupRepository: groupRepository,
		logger:          logger,
	}
}

// Resolve returns the sorted, deduplicated union of the user's group
// permissions. A user without groups resolves to an empty set, not an error.
func (p *permissionService) Resolve(ctx context.Context, userID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	groups, err := p.groupRepository.FindGroupsByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("loading user groups failed")
		return nil, fmt.Errorf("loading user groups: %w", err)
	}

	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, permission := range group.Permissions {
			seen[permission] = struct{}{}
		}
	}

	permissions := make([]string, 0, len(seen))
	for permission := range seen {
		permissions = append(permissions, permission)
	}
	sort.Strings(permissions)

	return permissions, nil
}
