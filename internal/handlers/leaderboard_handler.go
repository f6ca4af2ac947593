package handlers

import (
	"net/http"
	"strconv"

	"golfacademy/internal/service"
)

// LeaderboardHandler serves the academy XP leaderboard
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Top handles GET /api/leaderboard
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.leaderboard.Top(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load leaderboard", "Failed to load leaderboard", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
