package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"golfacademy/internal/service"
	"golfacademy/internal/validation"
)

// PlanHandler handles weekly plan endpoints
type PlanHandler struct {
	planService     *service.PlanService
	progressService *service.ProgressService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService *service.PlanService, progressService *service.ProgressService) *PlanHandler {
	return &PlanHandler{
		planService:     planService,
		progressService: progressService,
	}
}

// Get handles GET /api/plan
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	plan, err := h.planService.Get(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoPlan) {
			respondWithError(w, http.StatusNotFound, "no weekly plan generated", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "failed to load plan", "Failed to load plan", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// Generate handles POST /api/plan
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req struct {
		Days [7]service.DayRequest `json:"days"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	for _, day := range req.Days {
		if !day.Selected {
			continue
		}
		if err := validation.ValidatePracticeMinutes(day.Minutes); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
	}

	plan, err := h.planService.Generate(user.ID, req.Days)
	if err != nil {
		if errors.Is(err, service.ErrNothingToPlan) {
			respondWithError(w, http.StatusUnprocessableEntity, "select at least one day with practice time or a round", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "failed to generate plan", "Failed to generate plan", err)
		}
		return
	}
	respondJSON(w, http.StatusCreated, plan)
}

func planSlot(r *http.Request) (day, index int, err error) {
	day, err = strconv.Atoi(r.PathValue("day"))
	if err != nil {
		return 0, 0, errors.New("invalid day")
	}
	if vErr := validation.ValidateDayIndex(day); vErr != nil {
		return 0, 0, vErr
	}
	index, err = strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		return 0, 0, errors.New("invalid drill index")
	}
	return day, index, nil
}

// Swap handles POST /api/plan/{day}/drills/{index}/swap
func (h *PlanHandler) Swap(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	day, index, err := planSlot(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	replacement, err := h.planService.SwapDrill(user.ID, day, index)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPlan):
			respondWithError(w, http.StatusNotFound, "no weekly plan generated", "", nil)
		case errors.Is(err, service.ErrSlotNotFound):
			respondWithError(w, http.StatusNotFound, "no drill at that slot", "", nil)
		case errors.Is(err, service.ErrNoSwapCandidate):
			respondWithError(w, http.StatusConflict, "no suitable replacement drill", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to swap drill", "Failed to swap drill", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, replacement)
}

// Complete handles POST /api/plan/{day}/drills/{index}/complete
func (h *PlanHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	day, index, err := planSlot(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	slot, err := h.progressService.MarkComplete(user.ID, day, index)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPlan):
			respondWithError(w, http.StatusNotFound, "no weekly plan generated", "", nil)
		case errors.Is(err, service.ErrSlotNotFound):
			respondWithError(w, http.StatusNotFound, "no drill at that slot", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to update completion", "Failed to toggle completion", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, slot)
}
