package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"golfacademy/internal/events"
	"golfacademy/internal/models"
)

var (
	// ErrDailyCapReached is returned when freestyle XP for the day is
	// exhausted
	ErrDailyCapReached = errors.New("daily freestyle XP cap reached")

	// ErrUnknownFacility is returned for a freestyle log against an
	// unrecognized facility
	ErrUnknownFacility = errors.New("unknown practice facility")
)

const (
	// Completion XP is earned per minute of estimated drill time
	xpPerMinute = 10

	// Freestyle practice earns XP per started 15-minute block, capped
	// per calendar day
	freestyleBlockMinutes = 15
	freestyleDailyCap     = 30

	// Activity history keeps only the most recent entries
	activityHistoryLimit = 100
)

// freestyleRates is XP per 15-minute block at each facility. Harder-to-book
// facilities pay better.
var freestyleRates = map[models.Facility]int{
	models.FacilityPuttingGreen:  3,
	models.FacilityChippingGreen: 3,
	models.FacilityBunker:        4,
	models.FacilityRangeMats:     2,
	models.FacilityRangeGrass:    4,
	models.FacilitySimulator:     5,
}

// ProgressService owns the XP engine: drill completion, freestyle logging,
// levels and the activity history
type ProgressService struct {
	progress ProgressStore
	plans    PlanStore
	bus      Publisher
	now      func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(progress ProgressStore, plans PlanStore, bus Publisher) *ProgressService {
	return &ProgressService{
		progress: progress,
		plans:    plans,
		bus:      bus,
		now:      time.Now,
	}
}

// Get retrieves a user's cumulative progress
func (s *ProgressService) Get(userID int64) (*models.UserProgress, error) {
	return s.progress.Get(userID)
}

// Level returns the level a user's total XP places them at
func (s *ProgressService) Level(userID int64) (*models.LevelProgress, error) {
	progress, err := s.progress.Get(userID)
	if err != nil {
		return nil, err
	}
	level := LevelForXP(progress.TotalXP)
	return &level, nil
}

// LevelForXP maps cumulative XP to a level with progress within it.
// Levels 1-3 take 500, 1000 and 1500 XP; every level after that takes 2000.
func LevelForXP(xp int) models.LevelProgress {
	var level, start, span int
	switch {
	case xp < 500:
		level, start, span = 1, 0, 500
	case xp < 1500:
		level, start, span = 2, 500, 1000
	case xp < 3000:
		level, start, span = 3, 1500, 1500
	default:
		level = 4 + (xp-3000)/2000
		start = 3000 + (level-4)*2000
		span = 2000
	}

	into := xp - start
	return models.LevelProgress{
		Level:       level,
		XPIntoLevel: into,
		LevelSpan:   span,
		Fraction:    float64(into) / float64(span),
	}
}

// MarkComplete toggles completion of a plan slot. XP is granted on the
// pending-to-completed transition only and is never taken back when the
// slot is toggled off again; XP is recomputed from the drill's time at
// completion, not read from the planned value.
func (s *ProgressService) MarkComplete(userID int64, day, index int) (*models.PlannedDrill, error) {
	plan, err := s.plans.Get(userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}
	if day < 0 || day > 6 || index < 0 || index >= len(plan.Days[day].Drills) {
		return nil, ErrSlotNotFound
	}

	slot := &plan.Days[day].Drills[index]

	if slot.Completed {
		// Toggling off keeps the XP already granted
		slot.Completed = false
		if err := s.plans.Save(userID, plan); err != nil {
			return nil, err
		}
		return slot, nil
	}

	xp := slot.EstimatedMinutes * xpPerMinute
	if slot.IsRound {
		xp = roundXP
	}
	slot.Completed = true
	slot.XPEarned = xp

	progress, err := s.progress.Get(userID)
	if err != nil {
		return nil, err
	}
	progress.TotalXP += xp
	progress.TotalMinutes += slot.EstimatedMinutes
	if slot.DrillID != 0 {
		progress.CompletedDrills[slot.DrillID] = true
		progress.DrillCounts[slot.DrillID]++
	}

	if err := s.progress.Save(progress); err != nil {
		return nil, err
	}
	if err := s.plans.Save(userID, plan); err != nil {
		return nil, err
	}

	entry := models.ActivityEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		DrillID:    slot.DrillID,
		Title:      slot.Title,
		Category:   slot.Category,
		XPEarned:   xp,
		Minutes:    slot.EstimatedMinutes,
		OccurredAt: s.now(),
	}
	if err := s.progress.AppendActivity(entry); err != nil {
		return nil, err
	}
	if err := s.progress.PruneActivity(userID, activityHistoryLimit); err != nil {
		return nil, fmt.Errorf("failed to prune activity: %w", err)
	}

	s.bus.Publish(events.TopicProgressUpdated, userID)
	s.bus.Publish(events.TopicActivityUpdated, userID)
	s.bus.Publish(events.TopicLeaderboardRefresh, userID)

	return slot, nil
}

// LogFreestyle grants XP for unplanned practice at a facility: the facility
// rate per full 15-minute block, clamped against the daily cap. Returns the
// XP actually granted.
func (s *ProgressService) LogFreestyle(userID int64, facility models.Facility, minutes int) (int, error) {
	rate, ok := freestyleRates[facility]
	if !ok {
		return 0, ErrUnknownFacility
	}

	day := s.now().Format("2006-01-02")
	used, err := s.progress.FreestyleXP(userID, day)
	if err != nil {
		return 0, err
	}
	if used >= freestyleDailyCap {
		return 0, ErrDailyCapReached
	}

	xp := rate * (minutes / freestyleBlockMinutes)
	if xp > freestyleDailyCap-used {
		xp = freestyleDailyCap - used
	}
	if xp <= 0 {
		return 0, nil
	}

	progress, err := s.progress.Get(userID)
	if err != nil {
		return 0, err
	}
	progress.TotalXP += xp
	progress.TotalMinutes += minutes

	if err := s.progress.Save(progress); err != nil {
		return 0, err
	}
	if err := s.progress.AddFreestyleXP(userID, day, xp); err != nil {
		return 0, err
	}

	entry := models.ActivityEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      "Freestyle practice",
		Category:   models.PillarSkills,
		XPEarned:   xp,
		Minutes:    minutes,
		OccurredAt: s.now(),
	}
	if err := s.progress.AppendActivity(entry); err != nil {
		return 0, err
	}
	if err := s.progress.PruneActivity(userID, activityHistoryLimit); err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}

	s.bus.Publish(events.TopicProgressUpdated, userID)
	s.bus.Publish(events.TopicActivityUpdated, userID)
	s.bus.Publish(events.TopicLeaderboardRefresh, userID)

	return xp, nil
}

// Activity retrieves a user's recent practice history, most recent first
func (s *ProgressService) Activity(userID int64, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 || limit > activityHistoryLimit {
		limit = activityHistoryLimit
	}
	return s.progress.ListActivity(userID, limit)
}
