package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/service"
)

// EquipmentHandler exposes the public catalog and the vendor's
// equipment management endpoints.
type EquipmentHandler struct {
	equipments service.EquipmentService
}

func NewEquipmentHandler(equipments service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipments: equipments}
}

// Search lists available equipment with optional text, category and
// rate filters.
func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var maxDayRate float64
	if raw := q.Get("maxDayRate"); raw != "" {
		var err error
		maxDayRate, err = strconv.ParseFloat(raw, 64)
		if err != nil || maxDayRate < 0 {
			writeError(w, http.StatusBadRequest, "invalid maxDayRate")
			return
		}
	}
	page, pageSize := parsePagination(r)

	equipments, total, err := h.equipments.SearchEquipments(r.Context(), q.Get("q"), q.Get("category"), maxDayRate, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"equipments": equipments,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
	})
}

// Get returns one equipment with its pricing parameters.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	eq, err := h.equipments.GetEquipment(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

// Create registers new equipment under the authenticated vendor.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var eq domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.equipments.AddEquipment(r.Context(), claims.UserID, &eq); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

// Update modifies equipment owned by the authenticated vendor.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	var eq domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	eq.ID = id

	if err := h.equipments.UpdateEquipment(r.Context(), claims.UserID, &eq); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

// Delete removes equipment owned by the authenticated vendor.
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	if err := h.equipments.DeleteEquipment(r.Context(), claims.UserID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

// ListVendor lists the authenticated vendor's own equipment.
func (h *EquipmentHandler) ListVendor(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, pageSize := parsePagination(r)

	equipments, total, err := h.equipments.ListVendorEquipments(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"equipments": equipments,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
	})
}
