package service

import (
	"errors"
	"testing"

	"golfacademy/internal/models"
	"golfacademy/internal/validation"
)

func validRound() *models.RoundRecord {
	return &models.RoundRecord{
		UserID:            1,
		CourseName:        "Kingsbarns",
		Holes:             18,
		Score:             85,
		Handicap:          12.4,
		Eagles:            0,
		Birdies:           2,
		Pars:              8,
		Bogeys:            6,
		DoubleBogeys:      2,
		FairwaysHit:       7,
		FairwaysTotal:     14,
		GreensHit:         8,
		GreensTotal:       18,
		UpAndDownsMade:    3,
		UpAndDownAttempts: 7,
		TotalPutts:        31,
	}
}

func TestLogRoundComputesNett(t *testing.T) {
	store := &fakeRoundStore{}
	bus := &fakePublisher{}
	svc := NewRoundService(store, bus)

	created, err := svc.Log(validRound())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 85 gross, handicap 12.4 rounds to 12
	if created.NettScore != 73 {
		t.Errorf("expected nett 73, got %d", created.NettScore)
	}
	if len(bus.published) != 1 {
		t.Errorf("expected one rounds event, got %d", len(bus.published))
	}
}

func TestLogRoundValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RoundRecord)
	}{
		{"bad holes", func(r *models.RoundRecord) { r.Holes = 12 }},
		{"score too low", func(r *models.RoundRecord) { r.Score = 10 }},
		{"negative birdies", func(r *models.RoundRecord) { r.Birdies = -1 }},
		{"fairways hit above played", func(r *models.RoundRecord) { r.FairwaysHit = 15; r.FairwaysTotal = 14 }},
		{"greens hit above played", func(r *models.RoundRecord) { r.GreensHit = 19 }},
		{"up and downs above attempts", func(r *models.RoundRecord) { r.UpAndDownsMade = 8; r.UpAndDownAttempts = 3 }},
		{"implausible putts", func(r *models.RoundRecord) { r.TotalPutts = 100 }},
		{"negative penalties", func(r *models.RoundRecord) { r.PenaltyStrokes = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRoundService(&fakeRoundStore{}, &fakePublisher{})

			round := validRound()
			tt.mutate(round)

			_, err := svc.Log(round)
			var vErr validation.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRoundSummary(t *testing.T) {
	store := &fakeRoundStore{}
	svc := NewRoundService(store, &fakePublisher{})

	first := validRound()
	first.Score = 85
	second := validRound()
	second.Score = 79
	second.Birdies = 4

	if _, err := svc.Log(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Log(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := svc.Summary(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Rounds != 2 {
		t.Errorf("expected 2 rounds, got %d", summary.Rounds)
	}
	if summary.BestScore != 79 {
		t.Errorf("expected best score 79, got %d", summary.BestScore)
	}
	if summary.AverageScore != 82 {
		t.Errorf("expected average 82, got %.1f", summary.AverageScore)
	}
	if summary.Birdies != 6 {
		t.Errorf("expected 6 birdies, got %d", summary.Birdies)
	}
}

func TestRoundSummaryEmpty(t *testing.T) {
	svc := NewRoundService(&fakeRoundStore{}, &fakePublisher{})

	summary, err := svc.Summary(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Rounds != 0 || summary.BestScore != 0 {
		t.Errorf("expected zeroed summary, got %+v", summary)
	}
}

func TestDeleteRoundNotFound(t *testing.T) {
	svc := NewRoundService(&fakeRoundStore{}, &fakePublisher{})

	if err := svc.Delete(99, 1); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("expected ErrRoundNotFound, got %v", err)
	}
}
