package http

import (
	"errors"
	"net/http"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/service"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrTokenExpired:       http.StatusUnauthorized,
	service.ErrTokenInvalid:       http.StatusUnauthorized,
	service.ErrDirectoryDisabled:  http.StatusConflict,
	service.ErrSyncInProgress:     http.StatusConflict,

	store.ErrUserNotFound:            http.StatusNotFound,
	store.ErrUsernameTaken:           http.StatusConflict,
	store.ErrNoActiveDirectoryConfig: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
