package service

import (
	"math"
	"testing"

	"golfacademy/internal/models"
)

func round18(fairwaysHit, greensHit, upDownsMade, putts, missedShort int) models.RoundRecord {
	return models.RoundRecord{
		Holes:             18,
		FairwaysHit:       fairwaysHit,
		FairwaysTotal:     14,
		GreensHit:         greensHit,
		GreensTotal:       18,
		UpAndDownsMade:    upDownsMade,
		UpAndDownAttempts: 8,
		TotalPutts:        putts,
		MissedShortPutts:  missedShort,
	}
}

func TestAggregateRoundsEmpty(t *testing.T) {
	stats := AggregateRounds(nil)

	if stats.Rounds != 0 {
		t.Errorf("expected 0 rounds, got %d", stats.Rounds)
	}
	if stats.Weakest != models.CategoryPutting {
		t.Errorf("expected Putting for empty history, got %s", stats.Weakest)
	}
}

func TestAggregateRoundsPercentages(t *testing.T) {
	// 7/14 fairways = 50%, 9/18 greens = 50%, 4/8 up-and-downs = 50%
	rounds := []models.RoundRecord{round18(7, 9, 4, 30, 0)}

	stats := AggregateRounds(rounds)

	if math.Abs(stats.FairwaysPct-50.0) > 0.001 {
		t.Errorf("expected 50%% fairways, got %.2f", stats.FairwaysPct)
	}
	if math.Abs(stats.GreensPct-50.0) > 0.001 {
		t.Errorf("expected 50%% greens, got %.2f", stats.GreensPct)
	}
	if math.Abs(stats.AveragePutts-30.0) > 0.001 {
		t.Errorf("expected 30 putts, got %.2f", stats.AveragePutts)
	}
}

func TestAggregateRoundsNormalizesNineHoles(t *testing.T) {
	nine := models.RoundRecord{
		Holes:         9,
		FairwaysHit:   4,
		FairwaysTotal: 7,
		GreensHit:     5,
		GreensTotal:   9,
		TotalPutts:    16,
	}

	stats := AggregateRounds([]models.RoundRecord{nine})

	if math.Abs(stats.AveragePutts-32.0) > 0.001 {
		t.Errorf("expected 9-hole putts doubled to 32, got %.2f", stats.AveragePutts)
	}
}

func TestWeakestCategory(t *testing.T) {
	tests := []struct {
		name   string
		rounds []models.RoundRecord
		want   models.StatCategory
	}{
		{
			// Fairways 50% misses the 55% goal by 5; greens 27.8% misses
			// the 50% goal by 22.2 and carries the biggest gap.
			name:   "approach weakest on green gap",
			rounds: []models.RoundRecord{round18(7, 5, 4, 28, 0)},
			want:   models.CategoryApproach,
		},
		{
			// 3/14 fairways = 21.4%, a 33.6 point gap
			name:   "driving weakest on fairway gap",
			rounds: []models.RoundRecord{round18(3, 10, 4, 28, 0)},
			want:   models.CategoryDriving,
		},
		{
			// 1/8 up-and-downs = 12.5%, a 32.5 point gap
			name:   "short game weakest on up-and-down gap",
			rounds: []models.RoundRecord{round18(9, 10, 1, 28, 0)},
			want:   models.CategoryShortGame,
		},
		{
			// 40 putts runs 8 over the goal of 32
			name:   "putting weakest on putt count",
			rounds: []models.RoundRecord{round18(9, 10, 5, 40, 0)},
			want:   models.CategoryPutting,
		},
		{
			// Greens are the biggest gap, but 3 missed short putts in the
			// latest round override the ranking.
			name:   "missed short putts override",
			rounds: []models.RoundRecord{round18(7, 5, 4, 28, 3)},
			want:   models.CategoryPutting,
		},
		{
			// Exactly 2 missed short putts does not trigger the override
			name:   "two missed short putts do not override",
			rounds: []models.RoundRecord{round18(7, 5, 4, 28, 2)},
			want:   models.CategoryApproach,
		},
		{
			// Override reads the most recent round only; rounds are most
			// recent first.
			name: "older missed putts ignored",
			rounds: []models.RoundRecord{
				round18(7, 5, 4, 28, 0),
				round18(7, 5, 4, 28, 5),
			},
			want: models.CategoryApproach,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := AggregateRounds(tt.rounds)
			if stats.Weakest != tt.want {
				t.Errorf("expected weakest %s, got %s", tt.want, stats.Weakest)
			}
		})
	}
}
