package service

import (
	"fmt"

	"golfacademy/internal/models"
)

// Stat goals a scratch-track amateur is measured against. The gap between
// goal and achieved decides the weakest category.
const (
	goalFairwaysPct  = 55.0
	goalGreensPct    = 50.0
	goalUpAndDownPct = 45.0
	goalPuttsPerRound = 32.0

	// Rounds considered when aggregating category stats
	statsWindow = 20

	// Missed putts from 6ft and in that flag a putting problem regardless
	// of the other gaps
	missedShortPuttLimit = 2
)

// StatsService aggregates round stats into category percentages and picks
// the weakest category for plan generation
type StatsService struct {
	rounds RoundStore
}

// NewStatsService creates a new stats service
func NewStatsService(rounds RoundStore) *StatsService {
	return &StatsService{rounds: rounds}
}

// CategoryStats aggregates a user's recent rounds. With no rounds logged it
// returns zeroed stats with Putting as the weakest category.
func (s *StatsService) CategoryStats(userID int64) (*models.CategoryStats, error) {
	rounds, err := s.rounds.ListByUser(userID, statsWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load rounds: %w", err)
	}

	stats := AggregateRounds(rounds)
	return &stats, nil
}

// AggregateRounds computes category percentages and the weakest category
// across a set of rounds, most recent first
func AggregateRounds(rounds []models.RoundRecord) models.CategoryStats {
	stats := models.CategoryStats{
		Rounds:  len(rounds),
		Weakest: models.CategoryPutting,
	}
	if len(rounds) == 0 {
		return stats
	}

	var fairwaysHit, fairwaysTotal int
	var greensHit, greensTotal int
	var upDownsMade, upDownAttempts int
	var putts18 float64

	for _, r := range rounds {
		fairwaysHit += r.FairwaysHit
		fairwaysTotal += r.FairwaysTotal
		greensHit += r.GreensHit
		greensTotal += r.GreensTotal
		upDownsMade += r.UpAndDownsMade
		upDownAttempts += r.UpAndDownAttempts
		// Normalize 9-hole rounds to an 18-hole putt count
		putts18 += float64(r.TotalPutts) * 18.0 / float64(r.Holes)
	}

	stats.FairwaysPct = percentage(fairwaysHit, fairwaysTotal)
	stats.GreensPct = percentage(greensHit, greensTotal)
	stats.UpAndDownPct = percentage(upDownsMade, upDownAttempts)
	stats.AveragePutts = putts18 / float64(len(rounds))

	stats.Weakest = weakestCategory(stats)

	// Short putts missed in the most recent round trump everything
	if rounds[0].MissedShortPutts > missedShortPuttLimit {
		stats.Weakest = models.CategoryPutting
	}

	return stats
}

func percentage(hit, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(hit) / float64(total) * 100.0
}

// weakestCategory picks the category with the largest shortfall against its
// goal. For putting the gap runs the other way: strokes over the goal.
func weakestCategory(stats models.CategoryStats) models.StatCategory {
	gaps := []struct {
		category models.StatCategory
		gap      float64
	}{
		{models.CategoryDriving, goalFairwaysPct - stats.FairwaysPct},
		{models.CategoryApproach, goalGreensPct - stats.GreensPct},
		{models.CategoryShortGame, goalUpAndDownPct - stats.UpAndDownPct},
		{models.CategoryPutting, stats.AveragePutts - goalPuttsPerRound},
	}

	weakest := gaps[0]
	for _, g := range gaps[1:] {
		if g.gap > weakest.gap {
			weakest = g
		}
	}
	return weakest.category
}
