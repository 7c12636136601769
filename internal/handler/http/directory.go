package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/service"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/utils"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// directoryConfigRequest carries the writable configuration fields. The bind
// secret travels only in this direction; responses never include it.
type directoryConfigRequest struct {
	models.DirectoryConfig
	BindPassword string `json:"bind_password"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) getDirectoryConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	cfg, err := h.services.DirectoryService.GetConfig(ctx)
	if err != nil {
		log.Err(err).Msg("loading directory config failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, cfg, http.StatusOK)
}

func (h *Handler) saveDirectoryConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request directoryConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	cfg := request.DirectoryConfig
	cfg.BindPassword = request.BindPassword

	saved, err := h.services.DirectoryService.SaveConfig(ctx, cfg)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			log.Err(err).Msg("invalid directory config provided")
			http.Error(w, "invalid directory config provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("saving directory config failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) testDirectoryConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request directoryConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	cfg := request.DirectoryConfig
	cfg.BindPassword = request.BindPassword

	if err := h.services.DirectoryService.TestConnection(ctx, cfg); err != nil {
		if errors.Is(err, service.ErrValidation) {
			http.Error(w, "invalid directory config provided", http.StatusBadRequest)
			return
		}

		log.Warn().Err(err).Msg("directory connection test failed")
		utils.WriteJSON(w, statusResponse{Success: false, Message: err.Error()}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, statusResponse{Success: true, Message: "connection established"}, http.StatusOK)
}

func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	result, err := h.services.SyncService.Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSyncInProgress):
			http.Error(w, service.ErrSyncInProgress.Error(), http.StatusConflict)
			return
		case errors.Is(err, service.ErrDirectoryDisabled):
			http.Error(w, service.ErrDirectoryDisabled.Error(), http.StatusConflict)
			return
		default:
			log.Err(err).Msg("directory sync failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
