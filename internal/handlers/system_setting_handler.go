package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"
)

type SystemSettingHandler struct {
	settings *services.SystemSettingService
}

func NewSystemSettingHandler(settings *services.SystemSettingService) *SystemSettingHandler {
	return &SystemSettingHandler{settings: settings}
}

// List returns every setting.
// GET /api/settings
func (h *SystemSettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}

// Get returns one setting by key.
// GET /api/settings/{key}
func (h *SystemSettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	setting, err := h.settings.Get(r.Context(), key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, setting)
}

// Update upserts a setting.
// PUT /api/settings/{key}
func (h *SystemSettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req models.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settings.Update(r.Context(), key, req.Value); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Setting updated"})
}
