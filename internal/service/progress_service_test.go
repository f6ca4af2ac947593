package service

import (
	"errors"
	"testing"

	"golfacademy/internal/models"
)

func seededPlan(drills ...models.PlannedDrill) *models.WeeklyPlan {
	plan := models.NewWeeklyPlan()
	plan.Days[0].Selected = true
	plan.Days[0].Drills = drills
	return plan
}

func newTestProgressService(plan *models.WeeklyPlan) (*ProgressService, *fakeProgressStore, *fakePlanStore, *fakePublisher) {
	plans := newFakePlanStore()
	if plan != nil {
		if err := plans.Save(1, plan); err != nil {
			panic(err)
		}
	}
	progress := newFakeProgressStore()
	bus := &fakePublisher{}
	return NewProgressService(progress, plans, bus), progress, plans, bus
}

func TestMarkCompleteGrantsTimeBasedXP(t *testing.T) {
	plan := seededPlan(models.PlannedDrill{
		DrillID: 2, Title: "Clock Drill", Category: models.PillarPutting,
		EstimatedMinutes: 20, XPValue: 50,
	})
	svc, store, _, bus := newTestProgressService(plan)

	slot, err := svc.MarkComplete(1, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// XP comes from time spent, not the planned value
	if slot.XPEarned != 200 {
		t.Errorf("expected 200 XP for 20 minutes, got %d", slot.XPEarned)
	}
	if !slot.Completed {
		t.Error("expected slot marked completed")
	}

	progress, _ := store.Get(1)
	if progress.TotalXP != 200 {
		t.Errorf("expected total XP 200, got %d", progress.TotalXP)
	}
	if progress.TotalMinutes != 20 {
		t.Errorf("expected total minutes 20, got %d", progress.TotalMinutes)
	}
	if !progress.CompletedDrills[2] {
		t.Error("expected drill 2 in completed set")
	}
	if progress.DrillCounts[2] != 1 {
		t.Errorf("expected drill count 1, got %d", progress.DrillCounts[2])
	}
	if len(store.activity) != 1 {
		t.Errorf("expected one activity entry, got %d", len(store.activity))
	}
	if len(bus.published) == 0 {
		t.Error("expected progress events published")
	}
}

func TestMarkCompleteRoundEntry(t *testing.T) {
	plan := seededPlan(models.PlannedDrill{
		Title: "Alternate Club Round", Category: models.PillarOnCourse,
		EstimatedMinutes: 240, IsRound: true, XPValue: 500,
	})
	svc, store, _, _ := newTestProgressService(plan)

	slot, err := svc.MarkComplete(1, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if slot.XPEarned != 500 {
		t.Errorf("expected flat 500 XP for a round, got %d", slot.XPEarned)
	}
	progress, _ := store.Get(1)
	if progress.TotalXP != 500 {
		t.Errorf("expected total XP 500, got %d", progress.TotalXP)
	}
}

func TestMarkCompleteToggleKeepsXP(t *testing.T) {
	plan := seededPlan(models.PlannedDrill{
		DrillID: 2, Title: "Clock Drill", Category: models.PillarPutting,
		EstimatedMinutes: 20, XPValue: 50,
	})
	svc, store, _, _ := newTestProgressService(plan)

	if _, err := svc.MarkComplete(1, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Toggle off: completion flag clears but XP stays
	slot, err := svc.MarkComplete(1, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Completed {
		t.Error("expected slot toggled back to pending")
	}
	progress, _ := store.Get(1)
	if progress.TotalXP != 200 {
		t.Errorf("expected XP kept after toggle off, got %d", progress.TotalXP)
	}

	// Completing again grants again
	if _, err := svc.MarkComplete(1, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	progress, _ = store.Get(1)
	if progress.TotalXP != 400 {
		t.Errorf("expected 400 XP after recompletion, got %d", progress.TotalXP)
	}
	if progress.DrillCounts[2] != 2 {
		t.Errorf("expected drill count 2, got %d", progress.DrillCounts[2])
	}
}

func TestMarkCompleteNoPlan(t *testing.T) {
	svc, _, _, _ := newTestProgressService(nil)

	_, err := svc.MarkComplete(1, 0, 0)
	if !errors.Is(err, ErrNoPlan) {
		t.Fatalf("expected ErrNoPlan, got %v", err)
	}
}

func TestLogFreestyleRates(t *testing.T) {
	tests := []struct {
		name     string
		facility models.Facility
		minutes  int
		wantXP   int
	}{
		{"simulator two blocks", models.FacilitySimulator, 30, 10},
		{"mats three blocks", models.FacilityRangeMats, 45, 6},
		{"grass partial block ignored", models.FacilityRangeGrass, 20, 4},
		{"under one block", models.FacilityPuttingGreen, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _, _ := newTestProgressService(nil)

			xp, err := svc.LogFreestyle(1, tt.facility, tt.minutes)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if xp != tt.wantXP {
				t.Errorf("expected %d XP, got %d", tt.wantXP, xp)
			}

			progress, _ := store.Get(1)
			if progress.TotalXP != tt.wantXP {
				t.Errorf("expected total XP %d, got %d", tt.wantXP, progress.TotalXP)
			}
		})
	}
}

func TestLogFreestyleDailyCap(t *testing.T) {
	svc, _, _, _ := newTestProgressService(nil)

	// 90 simulator minutes would earn 30; exactly the cap
	xp, err := svc.LogFreestyle(1, models.FacilitySimulator, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if xp != 30 {
		t.Errorf("expected 30 XP at the cap, got %d", xp)
	}

	_, err = svc.LogFreestyle(1, models.FacilitySimulator, 30)
	if !errors.Is(err, ErrDailyCapReached) {
		t.Fatalf("expected ErrDailyCapReached, got %v", err)
	}
}

func TestLogFreestyleClampsToRemaining(t *testing.T) {
	svc, store, _, _ := newTestProgressService(nil)

	if _, err := svc.LogFreestyle(1, models.FacilitySimulator, 75); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 25 used; a 10 XP session clamps to the 5 left
	xp, err := svc.LogFreestyle(1, models.FacilitySimulator, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if xp != 5 {
		t.Errorf("expected clamp to 5 XP, got %d", xp)
	}

	progress, _ := store.Get(1)
	if progress.TotalXP != 30 {
		t.Errorf("expected total XP 30, got %d", progress.TotalXP)
	}
}

func TestLogFreestyleUnknownFacility(t *testing.T) {
	svc, _, _, _ := newTestProgressService(nil)

	_, err := svc.LogFreestyle(1, models.Facility("driving-simulator"), 30)
	if !errors.Is(err, ErrUnknownFacility) {
		t.Fatalf("expected ErrUnknownFacility, got %v", err)
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp        int
		wantLevel int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{1499, 2},
		{1500, 3},
		{2999, 3},
		{3000, 4},
		{4999, 4},
		{5000, 5},
		{9000, 7},
	}

	for _, tt := range tests {
		got := LevelForXP(tt.xp)
		if got.Level != tt.wantLevel {
			t.Errorf("LevelForXP(%d) = level %d, want %d", tt.xp, got.Level, tt.wantLevel)
		}
		if got.Fraction < 0 || got.Fraction >= 1 {
			t.Errorf("LevelForXP(%d) fraction %.3f out of range", tt.xp, got.Fraction)
		}
	}
}
