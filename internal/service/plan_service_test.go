package service

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"golfacademy/internal/models"
)

func testCatalog() []models.Drill {
	return []models.Drill{
		{ID: 1, Title: "Gate Putting", Category: models.PillarPutting, ContentType: models.ContentVideo, EstimatedMinutes: 15, BaseXP: 50},
		{ID: 2, Title: "Clock Drill", Category: models.PillarPutting, ContentType: models.ContentText, EstimatedMinutes: 20, BaseXP: 50},
		{ID: 3, Title: "Fairway Finder", Category: models.PillarDriving, ContentType: models.ContentVideo, EstimatedMinutes: 20, BaseXP: 60},
		{ID: 4, Title: "Tee Height Ladder", Category: models.PillarDriving, ContentType: models.ContentText, EstimatedMinutes: 15, BaseXP: 60},
		{ID: 5, Title: "Nine Shot Windows", Category: models.PillarIrons, ContentType: models.ContentVideo, EstimatedMinutes: 30, BaseXP: 60},
		{ID: 6, Title: "Wedge Distance Matrix", Category: models.PillarWedgePlay, ContentType: models.ContentPDF, EstimatedMinutes: 20, BaseXP: 55},
		{ID: 7, Title: "Chip and Run Circuit", Category: models.PillarShortGame, ContentType: models.ContentVideo, EstimatedMinutes: 15, BaseXP: 55},
		{ID: 8, Title: "Bunker Splash Ladder", Category: models.PillarShortGame, ContentType: models.ContentText, EstimatedMinutes: 20, BaseXP: 55},
		{ID: 9, Title: "Trajectory Control", Category: models.PillarSkills, ContentType: models.ContentVideo, EstimatedMinutes: 25, BaseXP: 45},
		{ID: 10, Title: "Alternate Club Round", Category: models.PillarOnCourse, ContentType: models.ContentText, EstimatedMinutes: 240, BaseXP: 500},
		{ID: 11, Title: "Ladies Tee Challenge", Category: models.PillarOnCourse, ContentType: models.ContentText, EstimatedMinutes: 120, BaseXP: 500},
		{ID: 12, Title: "Pre-Shot Routine Reset", Category: models.PillarMentalGame, ContentType: models.ContentPDF, EstimatedMinutes: 45, BaseXP: 40},
		{ID: 13, Title: "Scoring Zone Visualization", Category: models.PillarMentalGame, ContentType: models.ContentText, EstimatedMinutes: 20, BaseXP: 40},
	}
}

func newTestPlanService(seed int64, plans PlanStore) *PlanService {
	drills := &fakeDrillStore{drills: testCatalog()}
	stats := NewStatsService(&fakeRoundStore{})
	return NewPlanService(drills, plans, stats, rand.New(rand.NewSource(seed)))
}

func TestGenerateNothingToPlan(t *testing.T) {
	svc := newTestPlanService(1, newFakePlanStore())

	var days [7]DayRequest
	days[2].Selected = true // selected but no minutes and no round

	_, err := svc.Generate(1, days)
	if !errors.Is(err, ErrNothingToPlan) {
		t.Fatalf("expected ErrNothingToPlan, got %v", err)
	}
}

func TestGenerateEighteenHoleRound(t *testing.T) {
	svc := newTestPlanService(1, newFakePlanStore())

	var days [7]DayRequest
	days[5] = DayRequest{Selected: true, Minutes: 60, RoundType: models.RoundEighteen}

	plan, err := svc.Generate(1, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drills := plan.Days[5].Drills
	if len(drills) != 1 {
		t.Fatalf("expected only the round entry, got %d drills", len(drills))
	}
	entry := drills[0]
	if !entry.IsRound {
		t.Error("expected round entry to be flagged IsRound")
	}
	if entry.XPValue != 500 {
		t.Errorf("expected round XP 500, got %d", entry.XPValue)
	}
	if entry.EstimatedMinutes != 240 {
		t.Errorf("expected 240 minute block, got %d", entry.EstimatedMinutes)
	}
	if entry.Title != "Alternate Club Round" {
		t.Errorf("expected themed 18-hole challenge, got %q", entry.Title)
	}
}

func TestGenerateNineHoleRound(t *testing.T) {
	svc := newTestPlanService(1, newFakePlanStore())

	var days [7]DayRequest
	days[0] = DayRequest{Selected: true, Minutes: 0, RoundType: models.RoundNine}

	plan, err := svc.Generate(1, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := plan.Days[0].Drills[0]
	if entry.EstimatedMinutes != 120 {
		t.Errorf("expected 120 minute block, got %d", entry.EstimatedMinutes)
	}
	if entry.Title != "Ladies Tee Challenge" {
		t.Errorf("expected themed 9-hole challenge, got %q", entry.Title)
	}
}

func TestGenerateMentalGameSlot(t *testing.T) {
	svc := newTestPlanService(1, newFakePlanStore())

	var days [7]DayRequest
	days[1] = DayRequest{Selected: true, Minutes: 180, RoundType: models.RoundNine}

	plan, err := svc.Generate(1, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drills := plan.Days[1].Drills
	if len(drills) < 2 {
		t.Fatalf("expected mental game slot after the round, got %d drills", len(drills))
	}
	mental := drills[1]
	if mental.Category != models.PillarMentalGame {
		t.Errorf("expected Mental Game drill, got %s", mental.Category)
	}
	if mental.EstimatedMinutes > 30 {
		t.Errorf("expected mental game capped at 30 minutes, got %d", mental.EstimatedMinutes)
	}
}

func TestGenerateFacilityCompatibility(t *testing.T) {
	svc := newTestPlanService(1, newFakePlanStore())

	var days [7]DayRequest
	days[3] = DayRequest{
		Selected:   true,
		Minutes:    90,
		Facilities: []models.Facility{models.FacilityPuttingGreen},
	}

	plan, err := svc.Generate(1, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perFacility := 0
	for _, d := range plan.Days[3].Drills {
		if d.Facility != models.FacilityPuttingGreen {
			continue
		}
		perFacility++
		if d.Category != models.PillarPutting {
			t.Errorf("drill %q at putting green has category %s", d.Title, d.Category)
		}
	}
	if perFacility == 0 {
		t.Fatal("expected at least one putting green drill")
	}
	if perFacility > 3 {
		t.Errorf("expected at most 3 drills per facility, got %d", perFacility)
	}
}

func TestGenerateFallbackUsesWeakestPillar(t *testing.T) {
	// No rounds logged: weakest defaults to Putting
	svc := newTestPlanService(1, newFakePlanStore())

	var days [7]DayRequest
	days[4] = DayRequest{Selected: true, Minutes: 45}

	plan, err := svc.Generate(1, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	putting := 0
	for _, d := range plan.Days[4].Drills {
		if d.Category == models.PillarPutting {
			putting++
		} else if d.Category != models.PillarMentalGame {
			t.Errorf("unexpected category %s in fallback plan", d.Category)
		}
	}
	if putting == 0 {
		t.Fatal("expected putting drills for the weakest category")
	}
}

func TestGenerateDeterministicUnderFixedSeed(t *testing.T) {
	var days [7]DayRequest
	days[0] = DayRequest{Selected: true, Minutes: 120, Facilities: []models.Facility{models.FacilityRangeGrass, models.FacilityPuttingGreen}}
	days[5] = DayRequest{Selected: true, Minutes: 60, RoundType: models.RoundNine}

	first, err := newTestPlanService(42, newFakePlanStore()).Generate(1, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newTestPlanService(42, newFakePlanStore()).Generate(1, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical plans for the same seed")
	}
}

func TestSwapDrillPreservesSlot(t *testing.T) {
	plans := newFakePlanStore()
	svc := newTestPlanService(1, plans)

	plan := models.NewWeeklyPlan()
	plan.Days[2].Selected = true
	plan.Days[2].Drills = []models.PlannedDrill{{
		DrillID:          1,
		Title:            "Gate Putting",
		Category:         models.PillarPutting,
		EstimatedMinutes: 15,
		Facility:         models.FacilityPuttingGreen,
		XPValue:          50,
		Completed:        true,
		XPEarned:         150,
	}}
	if err := plans.Save(1, plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replacement, err := svc.SwapDrill(1, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if replacement.DrillID == 1 {
		t.Error("expected a different drill")
	}
	if replacement.Category != models.PillarPutting {
		t.Errorf("expected a related category, got %s", replacement.Category)
	}
	if replacement.Facility != models.FacilityPuttingGreen {
		t.Errorf("expected facility preserved, got %s", replacement.Facility)
	}
	if replacement.Completed || replacement.XPEarned != 0 {
		t.Error("expected completion state reset")
	}
	if replacement.XPValue != 50 {
		t.Errorf("expected fresh tiered XP 50, got %d", replacement.XPValue)
	}

	saved, _ := plans.Get(1)
	if saved.Days[2].Drills[0].DrillID != replacement.DrillID {
		t.Error("expected swap to be persisted")
	}
}

func TestSwapDrillNoPlan(t *testing.T) {
	svc := newTestPlanService(1, newFakePlanStore())

	_, err := svc.SwapDrill(1, 0, 0)
	if !errors.Is(err, ErrNoPlan) {
		t.Fatalf("expected ErrNoPlan, got %v", err)
	}
}

func TestSwapDrillSlotNotFound(t *testing.T) {
	plans := newFakePlanStore()
	svc := newTestPlanService(1, plans)

	if err := plans.Save(1, models.NewWeeklyPlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.SwapDrill(1, 3, 0)
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestSwapDrillNoCandidate(t *testing.T) {
	plans := newFakePlanStore()
	drills := &fakeDrillStore{drills: []models.Drill{
		{ID: 1, Title: "Gate Putting", Category: models.PillarPutting, EstimatedMinutes: 15},
	}}
	stats := NewStatsService(&fakeRoundStore{})
	svc := NewPlanService(drills, plans, stats, rand.New(rand.NewSource(1)))

	plan := models.NewWeeklyPlan()
	plan.Days[0].Drills = []models.PlannedDrill{{
		DrillID: 1, Title: "Gate Putting", Category: models.PillarPutting, EstimatedMinutes: 15,
	}}
	if err := plans.Save(1, plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.SwapDrill(1, 0, 0)
	if !errors.Is(err, ErrNoSwapCandidate) {
		t.Fatalf("expected ErrNoSwapCandidate, got %v", err)
	}
}
