package service

import (
	"context"
	"testing"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/mock"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDirectoryService(t *testing.T, ctrl *gomock.Controller) (
	*directoryService,
	*mock.MockClient,
	*mock.MockDirectoryConfigRepository,
	*directory.ConfigStore,
) {
	t.Helper()
	mockClient := mock.NewMockClient(ctrl)
	mockConfigs := mock.NewMockDirectoryConfigRepository(ctrl)
	configStore := directory.NewConfigStore()

	svc := NewDirectoryService(mockClient, configStore, mockConfigs, logger.Nop()).(*directoryService)

	return svc, mockClient, mockConfigs, configStore
}

func TestDirectoryService_GetConfig_StripsSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockConfigs, _ := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	mockConfigs.EXPECT().GetActive(ctx).Return(activeDirectoryConfig(), nil)

	cfg, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Empty(t, cfg.BindPassword)
	assert.Equal(t, "ldap://dc01.example.com:389", cfg.ServerURL)
}

func TestDirectoryService_GetConfig_NoActiveRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockConfigs, _ := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	mockConfigs.EXPECT().GetActive(ctx).Return(models.DirectoryConfig{}, store.ErrNoActiveDirectoryConfig)

	_, err := svc.GetConfig(ctx)
	assert.ErrorIs(t, err, store.ErrNoActiveDirectoryConfig)
}

func TestDirectoryService_SaveConfig_ValidatesRequiredFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	_, err := svc.SaveConfig(ctx, models.DirectoryConfig{ServerURL: "ldap://dc01:389"})
	assert.ErrorIs(t, err, ErrValidation)

	// a new config without a bind secret cannot inherit one
	cfg := activeDirectoryConfig()
	cfg.ID = 0
	cfg.BindPassword = ""
	_, err = svc.SaveConfig(ctx, cfg)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDirectoryService_SaveConfig_ReloadsConfigStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockConfigs, configStore := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	cfg := activeDirectoryConfig()

	gomock.InOrder(
		mockConfigs.EXPECT().Save(ctx, cfg).Return(cfg, nil),
		mockConfigs.EXPECT().GetActive(ctx).Return(cfg, nil),
	)

	saved, err := svc.SaveConfig(ctx, cfg)
	require.NoError(t, err)
	assert.Empty(t, saved.BindPassword, "saved config must be returned without the secret")

	require.True(t, configStore.Enabled())
	loaded, _ := configStore.Snapshot()
	assert.Equal(t, cfg.BindPassword, loaded.BindPassword,
		"the loaded store keeps the full secret for directory operations")
}

func TestDirectoryService_SaveConfig_DeactivationClearsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockConfigs, configStore := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	configStore.Load(activeDirectoryConfig())

	cfg := activeDirectoryConfig()
	cfg.Active = false

	gomock.InOrder(
		mockConfigs.EXPECT().Save(ctx, cfg).Return(cfg, nil),
		mockConfigs.EXPECT().GetActive(ctx).Return(models.DirectoryConfig{}, store.ErrNoActiveDirectoryConfig),
	)

	_, err := svc.SaveConfig(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, configStore.Enabled())
}

func TestDirectoryService_TestConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockClient, _, _ := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	cfg := activeDirectoryConfig()
	mockClient.EXPECT().Test(ctx, gomock.Any()).Return(nil)

	require.NoError(t, svc.TestConnection(ctx, cfg))
}

func TestDirectoryService_TestConnection_FallsBackToStoredSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockClient, _, configStore := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	configStore.Load(activeDirectoryConfig())

	cfg := activeDirectoryConfig()
	cfg.BindPassword = ""

	mockClient.EXPECT().Test(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, got models.DirectoryConfig) error {
			assert.Equal(t, "secret", got.BindPassword)
			return nil
		},
	)

	require.NoError(t, svc.TestConnection(ctx, cfg))
}

func TestDirectoryService_TestConnection_FailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockClient, _, _ := newTestDirectoryService(t, ctrl)
	ctx := context.Background()

	mockClient.EXPECT().Test(ctx, gomock.Any()).Return(directory.ErrBindFailed)

	err := svc.TestConnection(ctx, activeDirectoryConfig())
	assert.ErrorIs(t, err, directory.ErrBindFailed)
}

func TestDirectoryService_TestConnection_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestDirectoryService(t, ctrl)

	err := svc.TestConnection(context.Background(), models.DirectoryConfig{})
	assert.ErrorIs(t, err, ErrValidation)
}
