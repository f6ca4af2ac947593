package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"golfacademy/internal/models"
	"golfacademy/internal/service"
	"golfacademy/internal/validation"
)

// RoundHandler handles round logging endpoints
type RoundHandler struct {
	roundService *service.RoundService
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(roundService *service.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

type roundRequest struct {
	PlayedAt          time.Time `json:"playedAt"`
	CourseName        string    `json:"courseName"`
	Holes             int       `json:"holes"`
	Score             int       `json:"score"`
	Handicap          float64   `json:"handicap"`
	Eagles            int       `json:"eagles"`
	Birdies           int       `json:"birdies"`
	Pars              int       `json:"pars"`
	Bogeys            int       `json:"bogeys"`
	DoubleBogeys      int       `json:"doubleBogeys"`
	FairwaysHit       int       `json:"fairwaysHit"`
	FairwaysTotal     int       `json:"fairwaysTotal"`
	GreensHit         int       `json:"greensHit"`
	GreensTotal       int       `json:"greensTotal"`
	UpAndDownsMade    int       `json:"upAndDownsMade"`
	UpAndDownAttempts int       `json:"upAndDownAttempts"`
	TotalPutts        int       `json:"totalPutts"`
	MissedShortPutts  int       `json:"missedShortPutts"`
	PenaltyStrokes    int       `json:"penaltyStrokes"`
}

type roundResponse struct {
	ID int64 `json:"id"`
	roundRequest
	NettScore int `json:"nettScore"`
}

func toRoundResponse(r *models.RoundRecord) roundResponse {
	return roundResponse{
		ID: r.ID,
		roundRequest: roundRequest{
			PlayedAt:          r.PlayedAt,
			CourseName:        r.CourseName,
			Holes:             r.Holes,
			Score:             r.Score,
			Handicap:          r.Handicap,
			Eagles:            r.Eagles,
			Birdies:           r.Birdies,
			Pars:              r.Pars,
			Bogeys:            r.Bogeys,
			DoubleBogeys:      r.DoubleBogeys,
			FairwaysHit:       r.FairwaysHit,
			FairwaysTotal:     r.FairwaysTotal,
			GreensHit:         r.GreensHit,
			GreensTotal:       r.GreensTotal,
			UpAndDownsMade:    r.UpAndDownsMade,
			UpAndDownAttempts: r.UpAndDownAttempts,
			TotalPutts:        r.TotalPutts,
			MissedShortPutts:  r.MissedShortPutts,
			PenaltyStrokes:    r.PenaltyStrokes,
		},
		NettScore: r.NettScore,
	}
}

// Create handles POST /api/rounds
func (h *RoundHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req roundRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if req.PlayedAt.IsZero() {
		req.PlayedAt = time.Now()
	}

	round := &models.RoundRecord{
		UserID:            user.ID,
		PlayedAt:          req.PlayedAt,
		CourseName:        req.CourseName,
		Holes:             req.Holes,
		Score:             req.Score,
		Handicap:          req.Handicap,
		Eagles:            req.Eagles,
		Birdies:           req.Birdies,
		Pars:              req.Pars,
		Bogeys:            req.Bogeys,
		DoubleBogeys:      req.DoubleBogeys,
		FairwaysHit:       req.FairwaysHit,
		FairwaysTotal:     req.FairwaysTotal,
		GreensHit:         req.GreensHit,
		GreensTotal:       req.GreensTotal,
		UpAndDownsMade:    req.UpAndDownsMade,
		UpAndDownAttempts: req.UpAndDownAttempts,
		TotalPutts:        req.TotalPutts,
		MissedShortPutts:  req.MissedShortPutts,
		PenaltyStrokes:    req.PenaltyStrokes,
	}

	created, err := h.roundService.Log(round)
	if err != nil {
		var vErr validation.ValidationError
		if errors.As(err, &vErr) {
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "failed to log round", "Failed to log round", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, toRoundResponse(created))
}

// List handles GET /api/rounds
func (h *RoundHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	rounds, err := h.roundService.List(user.ID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list rounds", "Failed to list rounds", err)
		return
	}

	out := make([]roundResponse, 0, len(rounds))
	for i := range rounds {
		out = append(out, toRoundResponse(&rounds[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/rounds/{id}
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid round id", "", nil)
		return
	}

	round, err := h.roundService.Get(id, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			respondWithError(w, http.StatusNotFound, "round not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "failed to get round", "Failed to get round", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, toRoundResponse(round))
}

// Delete handles DELETE /api/rounds/{id}
func (h *RoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid round id", "", nil)
		return
	}

	if err := h.roundService.Delete(id, user.ID); err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			respondWithError(w, http.StatusNotFound, "round not found", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "failed to delete round", "Failed to delete round", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Summary handles GET /api/rounds/summary
func (h *RoundHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	summary, err := h.roundService.Summary(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to build summary", "Failed to build round summary", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
