package models

import "time"

// RoundRecord represents one played round of golf
type RoundRecord struct {
	ID           int64
	UserID       int64
	PlayedAt     time.Time
	CourseName   string
	Holes        int // 9 or 18
	Score        int
	Handicap     float64
	NettScore    int
	Eagles       int
	Birdies      int
	Pars         int
	Bogeys       int
	DoubleBogeys int

	// Fairway, green and putting counters for stat aggregation
	FairwaysHit       int
	FairwaysTotal     int
	GreensHit         int
	GreensTotal       int
	UpAndDownsMade    int
	UpAndDownAttempts int
	TotalPutts        int
	MissedShortPutts  int // putts missed from 6ft and in
	PenaltyStrokes    int

	CreatedAt time.Time
}

// RoundSummary aggregates scoring outcomes across a set of rounds
type RoundSummary struct {
	Rounds       int     `json:"rounds"`
	BestScore    int     `json:"bestScore"`
	AverageScore float64 `json:"averageScore"`
	Eagles       int     `json:"eagles"`
	Birdies      int     `json:"birdies"`
	Pars         int     `json:"pars"`
}
