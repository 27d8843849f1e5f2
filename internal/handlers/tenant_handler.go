package handlers

import (
	"encoding/json"
	"net/http"

	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"
)

type TenantHandler struct {
	tenants *services.TenantService
}

func NewTenantHandler(tenants *services.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Create registers a tenant, optionally claiming a bed.
// POST /api/tenants
func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tenant, err := h.tenants.CreateTenant(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, tenant)
}

// List returns active tenants. With ?phone= it searches by phone instead.
// GET /api/tenants?pg_id=1&phone=98
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	pgID := queryInt(r, "pg_id", 1)

	if phone := r.URL.Query().Get("phone"); phone != "" {
		tenants, err := h.tenants.SearchByPhone(r.Context(), pgID, phone)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, tenants)
		return
	}

	tenants, err := h.tenants.ListTenants(r.Context(), pgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tenants)
}

// Get returns one tenant.
// GET /api/tenants/{id}
func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tenant, err := h.tenants.GetTenant(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tenant)
}

// Update edits a tenant's profile and rent terms.
// PUT /api/tenants/{id}
func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tenant, err := h.tenants.UpdateTenant(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tenant)
}

// Summary returns the tenant plus derived rent badges and due amounts.
// GET /api/tenants/{id}/summary
func (h *TenantHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.tenants.Summary(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// Summaries returns the dashboard list: every active tenant with badges.
// GET /api/tenants/summaries?pg_id=1
func (h *TenantHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	pgID := queryInt(r, "pg_id", 1)

	summaries, err := h.tenants.ListSummaries(r.Context(), pgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summaries)
}

// ReassignBed moves a tenant to another bed.
// POST /api/tenants/{id}/bed
func (h *TenantHandler) ReassignBed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		BedID int `json:"bed_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BedID <= 0 {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tenant, err := h.tenants.ReassignBed(r.Context(), id, req.BedID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tenant)
}

// MoveOut deactivates the tenant and frees the bed.
// POST /api/tenants/{id}/move-out
func (h *TenantHandler) MoveOut(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tenants.MoveOut(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Tenant moved out"})
}
