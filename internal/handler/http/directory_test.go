package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/service"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func authedRequest(method, target string, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Authorization", "Bearer valid-token")
	return request
}

func TestGetDirectoryConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, mockDirectory := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockDirectory.EXPECT().
		GetConfig(gomock.Any()).
		Return(models.DirectoryConfig{ID: 1, ServerURL: "ldap://dc01:389", Active: true}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/directory/config", ""))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "ldap://dc01:389")
	assert.NotContains(t, recorder.Body.String(), "bind_password",
		"the bind secret must never appear in responses")
}

func TestGetDirectoryConfig_NoneConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, mockDirectory := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockDirectory.EXPECT().
		GetConfig(gomock.Any()).
		Return(models.DirectoryConfig{}, store.ErrNoActiveDirectoryConfig)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/directory/config", ""))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSaveDirectoryConfig_PassesSecretThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, mockDirectory := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockDirectory.EXPECT().
		SaveConfig(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg models.DirectoryConfig) (models.DirectoryConfig, error) {
			assert.Equal(t, "hunter2", cfg.BindPassword)
			assert.Equal(t, "ldap://dc01:389", cfg.ServerURL)
			return cfg.Sanitized(), nil
		})

	body := `{"server_url":"ldap://dc01:389","bind_dn":"CN=svc,DC=example,DC=com","bind_password":"hunter2","search_base":"DC=example,DC=com","active":true}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPut, "/api/directory/config", body))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "hunter2")
}

func TestSaveDirectoryConfig_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, mockDirectory := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockDirectory.EXPECT().
		SaveConfig(gomock.Any(), gomock.Any()).
		Return(models.DirectoryConfig{}, service.ErrValidation)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPut, "/api/directory/config", `{"server_url":""}`))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTestDirectoryConnection_FailureReportedInBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, mockDirectory := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockDirectory.EXPECT().
		TestConnection(gomock.Any(), gomock.Any()).
		Return(directory.ErrBindFailed)

	body := `{"server_url":"ldap://dc01:389","bind_dn":"CN=svc,DC=example,DC=com","bind_password":"bad"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/directory/test", body))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"success":false`)
	assert.Contains(t, recorder.Body.String(), "directory bind failed")
}

func TestTestDirectoryConnection_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, mockDirectory := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockDirectory.EXPECT().
		TestConnection(gomock.Any(), gomock.Any()).
		Return(nil)

	body := `{"server_url":"ldap://dc01:389","bind_dn":"CN=svc,DC=example,DC=com","bind_password":"ok"}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/directory/test", body))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"success":true`)
}

func TestTriggerSync_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, mockSync, _ := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockSync.EXPECT().
		Run(gomock.Any()).
		Return(models.SyncResult{UsersCreated: 3, GroupsCreated: 1}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/directory/sync", ""))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"users_created":3`)
}

func TestTriggerSync_AlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, mockSync, _ := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockSync.EXPECT().
		Run(gomock.Any()).
		Return(models.SyncResult{}, service.ErrSyncInProgress)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/directory/sync", ""))

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestTriggerSync_DirectoryDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, mockSync, _ := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().
		VerifyToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: 1, Username: "admin"}, nil)
	mockSync.EXPECT().
		Run(gomock.Any()).
		Return(models.SyncResult{}, service.ErrDirectoryDisabled)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/api/directory/sync", ""))

	assert.Equal(t, http.StatusConflict, recorder.Code)
}
