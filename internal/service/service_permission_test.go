package service

import (
	"context"
	"errors"
	"testing"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/mock"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPermissionService_Resolve_UnionAcrossGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGroups := mock.NewMockGroupRepository(ctrl)
	svc := NewPermissionService(mockGroups, logger.Nop())
	ctx := context.Background()

	mockGroups.EXPECT().FindGroupsByUserID(ctx, int64(7)).Return([]models.Group{
		{GroupID: 1, Name: "netadmins", Permissions: []string{"devices:write", "devices:read"}},
		{GroupID: 2, Name: "operators", Permissions: []string{"devices:read", "backups:read"}},
	}, nil)

	permissions, err := svc.Resolve(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"backups:read", "devices:read", "devices:write"}, permissions,
		"union must be deduplicated and sorted")
}

func TestPermissionService_Resolve_NoGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGroups := mock.NewMockGroupRepository(ctrl)
	svc := NewPermissionService(mockGroups, logger.Nop())
	ctx := context.Background()

	mockGroups.EXPECT().FindGroupsByUserID(ctx, int64(7)).Return(nil, nil)

	permissions, err := svc.Resolve(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, permissions)
	assert.NotNil(t, permissions, "a user without groups resolves to an empty set, not nil")
}

func TestPermissionService_Resolve_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGroups := mock.NewMockGroupRepository(ctrl)
	svc := NewPermissionService(mockGroups, logger.Nop())
	ctx := context.Background()

	repoErr := errors.New("connection refused")
	mockGroups.EXPECT().FindGroupsByUserID(ctx, int64(7)).Return(nil, repoErr)

	_, err := svc.Resolve(ctx, 7)
	assert.ErrorIs(t, err, repoErr)
}
