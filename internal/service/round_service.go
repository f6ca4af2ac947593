package service

import (
	"errors"
	"math"

	"golfacademy/internal/events"
	"golfacademy/internal/models"
	"golfacademy/internal/validation"
)

// ErrRoundNotFound is returned when a round does not exist or belongs to
// another user
var ErrRoundNotFound = errors.New("round not found")

// RoundService handles round logging and summary stats
type RoundService struct {
	rounds RoundStore
	bus    Publisher
}

// NewRoundService creates a new round service
func NewRoundService(rounds RoundStore, bus Publisher) *RoundService {
	return &RoundService{rounds: rounds, bus: bus}
}

// Log validates and stores a played round. The nett score is derived from
// the gross score and the handicap carried on the round.
func (s *RoundService) Log(round *models.RoundRecord) (*models.RoundRecord, error) {
	if err := validation.ValidateHoles(round.Holes); err != nil {
		return nil, err
	}
	if err := validation.ValidateScore(round.Score, round.Holes); err != nil {
		return nil, err
	}

	counters := []struct {
		field string
		value int
	}{
		{"eagles", round.Eagles},
		{"birdies", round.Birdies},
		{"pars", round.Pars},
		{"bogeys", round.Bogeys},
		{"doubleBogeys", round.DoubleBogeys},
		{"fairwaysHit", round.FairwaysHit},
		{"fairwaysTotal", round.FairwaysTotal},
		{"greensHit", round.GreensHit},
		{"greensTotal", round.GreensTotal},
		{"upAndDownsMade", round.UpAndDownsMade},
		{"upAndDownAttempts", round.UpAndDownAttempts},
		{"missedShortPutts", round.MissedShortPutts},
	}
	for _, c := range counters {
		if err := validation.ValidateCounter(c.field, c.value, round.Holes); err != nil {
			return nil, err
		}
	}
	if round.FairwaysHit > round.FairwaysTotal {
		return nil, validation.ValidationError{Field: "fairwaysHit", Message: "exceeds fairways played"}
	}
	if round.GreensHit > round.GreensTotal {
		return nil, validation.ValidationError{Field: "greensHit", Message: "exceeds greens played"}
	}
	if round.UpAndDownsMade > round.UpAndDownAttempts {
		return nil, validation.ValidationError{Field: "upAndDownsMade", Message: "exceeds attempts"}
	}
	if round.TotalPutts < 0 || round.TotalPutts > round.Holes*4 {
		return nil, validation.ValidationError{Field: "totalPutts", Message: "implausible putt count"}
	}
	if round.PenaltyStrokes < 0 {
		return nil, validation.ValidationError{Field: "penaltyStrokes", Message: "must not be negative"}
	}

	round.NettScore = round.Score - int(math.Round(round.Handicap))

	created, err := s.rounds.Create(round)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicRoundsUpdated, round.UserID)
	return created, nil
}

// List retrieves a user's rounds, most recent first. A limit of 0 returns
// all rounds.
func (s *RoundService) List(userID int64, limit int) ([]models.RoundRecord, error) {
	return s.rounds.ListByUser(userID, limit)
}

// Get retrieves one round, enforcing ownership
func (s *RoundService) Get(id, userID int64) (*models.RoundRecord, error) {
	round, err := s.rounds.GetByID(id)
	if err != nil {
		return nil, err
	}
	if round == nil || round.UserID != userID {
		return nil, ErrRoundNotFound
	}
	return round, nil
}

// Delete removes a round owned by the user
func (s *RoundService) Delete(id, userID int64) error {
	deleted, err := s.rounds.Delete(id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRoundNotFound
	}
	s.bus.Publish(events.TopicRoundsUpdated, userID)
	return nil
}

// Summary aggregates scoring outcomes across all of a user's rounds
func (s *RoundService) Summary(userID int64) (*models.RoundSummary, error) {
	rounds, err := s.rounds.ListByUser(userID, 0)
	if err != nil {
		return nil, err
	}

	summary := &models.RoundSummary{Rounds: len(rounds)}
	if len(rounds) == 0 {
		return summary, nil
	}

	total := 0
	summary.BestScore = rounds[0].Score
	for _, r := range rounds {
		total += r.Score
		if r.Score < summary.BestScore {
			summary.BestScore = r.Score
		}
		summary.Eagles += r.Eagles
		summary.Birdies += r.Birdies
		summary.Pars += r.Pars
	}
	summary.AverageScore = float64(total) / float64(len(rounds))

	return summary, nil
}
