package models

import "time"

// StatCategory is a performance category derived from round stats
type StatCategory string

const (
	CategoryApproach  StatCategory = "Approach"
	CategoryDriving   StatCategory = "Driving"
	CategoryShortGame StatCategory = "Short Game"
	CategoryPutting   StatCategory = "Putting"
)

// CategoryStats holds per-category achieved values across a set of rounds,
// plus the single weakest category
type CategoryStats struct {
	Rounds       int          `json:"rounds"`
	FairwaysPct  float64      `json:"fairwaysPct"`
	GreensPct    float64      `json:"greensPct"`
	UpAndDownPct float64      `json:"upAndDownPct"`
	AveragePutts float64      `json:"averagePutts"`
	Weakest      StatCategory `json:"weakest"`
}

// UserProgress tracks cumulative practice totals for a player. TotalXP is
// never decremented: un-completing a drill keeps the XP it granted.
type UserProgress struct {
	UserID          int64
	TotalXP         int
	TotalMinutes    int
	CompletedDrills map[int64]bool
	DrillCounts     map[int64]int
	UpdatedAt       time.Time
}

// NewUserProgress returns zeroed progress for a user
func NewUserProgress(userID int64) *UserProgress {
	return &UserProgress{
		UserID:          userID,
		CompletedDrills: make(map[int64]bool),
		DrillCounts:     make(map[int64]int),
	}
}

// ActivityEntry is one row in a player's practice activity history. The
// history is capped at the most recent 100 entries.
type ActivityEntry struct {
	ID         string
	UserID     int64
	DrillID    int64
	Title      string
	Category   Pillar
	XPEarned   int
	Minutes    int
	OccurredAt time.Time
}

// LevelProgress describes a player level derived from cumulative XP
type LevelProgress struct {
	Level       int     `json:"level"`
	XPIntoLevel int     `json:"xpIntoLevel"`
	LevelSpan   int     `json:"levelSpan"`
	Fraction    float64 `json:"fraction"`
}

// LeaderboardEntry is one row of the academy XP leaderboard
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserID  int64  `json:"userId"`
	Name    string `json:"name"`
	TotalXP int    `json:"totalXp"`
	Level   int    `json:"level"`
}
