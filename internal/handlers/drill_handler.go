package handlers

import (
	"net/http"
	"strconv"

	"golfacademy/internal/models"
	"golfacademy/internal/service"
)

// DrillHandler serves the drill catalog
type DrillHandler struct {
	drills service.DrillStore
}

// NewDrillHandler creates a new drill handler
func NewDrillHandler(drills service.DrillStore) *DrillHandler {
	return &DrillHandler{drills: drills}
}

type drillResponse struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	ContentType      models.ContentType `json:"contentType"`
	Category         models.Pillar      `json:"category"`
	EstimatedMinutes int                `json:"estimatedMinutes"`
	BaseXP           int                `json:"baseXp"`
	SourceRef        string             `json:"sourceRef,omitempty"`
}

func toDrillResponse(d *models.Drill) drillResponse {
	return drillResponse{
		ID:               d.ID,
		Title:            d.Title,
		ContentType:      d.ContentType,
		Category:         d.Category,
		EstimatedMinutes: d.EstimatedMinutes,
		BaseXP:           d.BaseXP,
		SourceRef:        d.SourceRef,
	}
}

// List handles GET /api/drills, optionally filtered by category
func (h *DrillHandler) List(w http.ResponseWriter, r *http.Request) {
	drills, err := h.drills.List()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list drills", "Failed to list drills", err)
		return
	}

	category := r.URL.Query().Get("category")

	out := make([]drillResponse, 0, len(drills))
	for i := range drills {
		if category != "" && string(drills[i].Category) != category {
			continue
		}
		out = append(out, toDrillResponse(&drills[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/drills/{id}
func (h *DrillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid drill id", "", nil)
		return
	}

	drill, err := h.drills.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to get drill", "Failed to get drill", err)
		return
	}
	if drill == nil {
		respondWithError(w, http.StatusNotFound, "drill not found", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, toDrillResponse(drill))
}
