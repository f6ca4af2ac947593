package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"golfacademy/internal/models"
	"golfacademy/internal/service"
)

// ProgressHandler handles XP, level, freestyle and activity endpoints
type ProgressHandler struct {
	progressService *service.ProgressService
	statsService    *service.StatsService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService, statsService *service.StatsService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		statsService:    statsService,
	}
}

type progressResponse struct {
	TotalXP      int                  `json:"totalXp"`
	TotalMinutes int                  `json:"totalMinutes"`
	Level        models.LevelProgress `json:"level"`
	DrillCounts  map[int64]int        `json:"drillCounts"`
}

// Summary handles GET /api/progress
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	progress, err := h.progressService.Get(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load progress", "Failed to load progress", err)
		return
	}

	respondJSON(w, http.StatusOK, progressResponse{
		TotalXP:      progress.TotalXP,
		TotalMinutes: progress.TotalMinutes,
		Level:        service.LevelForXP(progress.TotalXP),
		DrillCounts:  progress.DrillCounts,
	})
}

// Stats handles GET /api/progress/stats: category percentages and the
// weakest category from recent rounds
func (h *ProgressHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	stats, err := h.statsService.CategoryStats(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to aggregate stats", "Failed to aggregate stats", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// LogFreestyle handles POST /api/progress/freestyle
func (h *ProgressHandler) LogFreestyle(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req struct {
		Facility models.Facility `json:"facility"`
		Minutes  int             `json:"minutes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if req.Minutes <= 0 || req.Minutes > 480 {
		respondWithError(w, http.StatusBadRequest, "minutes must be between 1 and 480", "", nil)
		return
	}

	xp, err := h.progressService.LogFreestyle(user.ID, req.Facility, req.Minutes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownFacility):
			respondWithError(w, http.StatusBadRequest, "unknown practice facility", "", nil)
		case errors.Is(err, service.ErrDailyCapReached):
			respondWithError(w, http.StatusUnprocessableEntity, "daily freestyle XP cap reached", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to log practice", "Failed to log freestyle practice", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"xpEarned": xp})
}

type activityResponse struct {
	ID         string        `json:"id"`
	DrillID    int64         `json:"drillId,omitempty"`
	Title      string        `json:"title"`
	Category   models.Pillar `json:"category"`
	XPEarned   int           `json:"xpEarned"`
	Minutes    int           `json:"minutes"`
	OccurredAt string        `json:"occurredAt"`
}

// Activity handles GET /api/progress/activity
func (h *ProgressHandler) Activity(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	entries, err := h.progressService.Activity(user.ID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load activity", "Failed to load activity", err)
		return
	}

	out := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, activityResponse{
			ID:         e.ID,
			DrillID:    e.DrillID,
			Title:      e.Title,
			Category:   e.Category,
			XPEarned:   e.XPEarned,
			Minutes:    e.Minutes,
			OccurredAt: e.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	respondJSON(w, http.StatusOK, out)
}
