package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/service"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/utils"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Login(ctx, request.Username, request.Password, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Warn().Str("username", request.Username).Msg("login rejected")
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", result.User.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", "Bearer "+result.Token)
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in authenticated request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	username, _ := utils.GetUsernameFromContext(ctx)

	if err := h.services.AuthService.Logout(ctx, userID, username, clientIP(r)); err != nil {
		log.Err(err).Msg("unexpected error occurred during logout")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in authenticated request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	username, _ := utils.GetUsernameFromContext(ctx)

	permissions, err := h.services.PermissionService.Resolve(ctx, userID)
	if err != nil {
		log.Err(err).Msg("resolving permissions failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	result := models.AuthResult{
		User: models.User{
			UserID:   userID,
			Username: username,
		},
		Permissions: permissions,
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

// clientIP returns the originating client address, preferring proxy headers
// over the socket peer.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
