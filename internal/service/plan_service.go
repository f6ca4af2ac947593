package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"golfacademy/internal/models"
)

var (
	// ErrNothingToPlan is returned when no selected day has practice time
	// or a scheduled round
	ErrNothingToPlan = errors.New("no day with practice time or a round selected")

	// ErrNoPlan is returned when a user has not generated a weekly plan
	ErrNoPlan = errors.New("no weekly plan generated")

	// ErrSlotNotFound is returned for a day/index pair that holds no drill
	ErrSlotNotFound = errors.New("no drill at that plan slot")

	// ErrNoSwapCandidate is returned when no replacement drill fits
	ErrNoSwapCandidate = errors.New("no suitable replacement drill")
)

// On-course blocks consume a fixed slice of the day regardless of the
// entered practice budget
const (
	nineHoleBlockMinutes     = 120
	eighteenHoleBlockMinutes = 240
	roundXP                  = 500

	mentalGameCapMinutes = 30
	maxDrillsPerFacility = 3
	maxFallbackDrills    = 5

	// Below this many leftover minutes a day with two or more drills is
	// considered full
	minLeftoverMinutes = 15
)

// pillarXP is the planned reward per practice category. Completion XP is
// recomputed from time spent; this value is what the plan advertises.
var pillarXP = map[models.Pillar]int{
	models.PillarPutting:    50,
	models.PillarDriving:    60,
	models.PillarIrons:      60,
	models.PillarShortGame:  55,
	models.PillarWedgePlay:  55,
	models.PillarSkills:     45,
	models.PillarMentalGame: 40,
	models.PillarOnCourse:   roundXP,
}

// facilityPillars maps each practice facility to the categories that can be
// worked there
var facilityPillars = map[models.Facility][]models.Pillar{
	models.FacilityPuttingGreen:  {models.PillarPutting},
	models.FacilityChippingGreen: {models.PillarShortGame, models.PillarWedgePlay},
	models.FacilityBunker:        {models.PillarShortGame},
	models.FacilityRangeMats:     {models.PillarDriving, models.PillarIrons, models.PillarWedgePlay},
	models.FacilityRangeGrass:    {models.PillarSkills, models.PillarWedgePlay, models.PillarIrons, models.PillarDriving},
	models.FacilitySimulator:     {models.PillarDriving, models.PillarIrons, models.PillarSkills},
}

// categoryPillars maps a weakest stat category to the drill categories that
// train it
var categoryPillars = map[models.StatCategory][]models.Pillar{
	models.CategoryApproach:  {models.PillarIrons},
	models.CategoryDriving:   {models.PillarDriving},
	models.CategoryShortGame: {models.PillarShortGame, models.PillarWedgePlay},
	models.CategoryPutting:   {models.PillarPutting},
}

// DayRequest is the per-day input to plan generation
type DayRequest struct {
	Selected   bool              `json:"selected"`
	Minutes    int               `json:"minutes"`
	Facilities []models.Facility `json:"facilities"`
	RoundType  models.RoundType  `json:"roundType"`
}

// PlanService generates and mutates weekly practice plans. The random
// source is injected so generation is reproducible under a fixed seed.
type PlanService struct {
	drills DrillStore
	plans  PlanStore
	stats  *StatsService

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlanService creates a new plan service
func NewPlanService(drills DrillStore, plans PlanStore, stats *StatsService, rng *rand.Rand) *PlanService {
	return &PlanService{
		drills: drills,
		plans:  plans,
		stats:  stats,
		rng:    rng,
	}
}

// Get retrieves a user's current weekly plan
func (s *PlanService) Get(userID int64) (*models.WeeklyPlan, error) {
	plan, err := s.plans.Get(userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}
	return plan, nil
}

// Generate builds a fresh weekly plan from the day selections, replacing
// any existing plan
func (s *PlanService) Generate(userID int64, days [7]DayRequest) (*models.WeeklyPlan, error) {
	hasWork := false
	for _, d := range days {
		if d.Selected && (d.Minutes > 0 || d.RoundType != models.RoundNone) {
			hasWork = true
			break
		}
	}
	if !hasWork {
		return nil, ErrNothingToPlan
	}

	catalog, err := s.drills.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load drill catalog: %w", err)
	}
	stats, err := s.stats.CategoryStats(userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	plan := models.NewWeeklyPlan()
	for i, req := range days {
		day := &plan.Days[i]
		day.Selected = req.Selected
		day.Minutes = req.Minutes
		day.Facilities = req.Facilities
		day.RoundType = req.RoundType
		if !req.Selected {
			continue
		}
		day.Drills = s.buildDay(req, catalog, stats.Weakest)
	}
	s.mu.Unlock()

	if err := s.plans.Save(userID, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// buildDay fills one selected day. Caller holds the rng lock.
func (s *PlanService) buildDay(req DayRequest, catalog []models.Drill, weakest models.StatCategory) []models.PlannedDrill {
	var drills []models.PlannedDrill
	remaining := req.Minutes

	if req.RoundType != models.RoundNone {
		entry := s.roundEntry(req.RoundType, catalog)
		drills = append(drills, entry)
		remaining -= entry.EstimatedMinutes
	}

	if remaining > minLeftoverMinutes {
		if mental := s.pickMentalGame(catalog); mental != nil {
			drills = append(drills, *mental)
			remaining -= mental.EstimatedMinutes
		}
	}

	switch {
	case len(req.Facilities) > 0 && remaining > 0:
		perFacility := remaining / len(req.Facilities)
		for _, facility := range req.Facilities {
			if len(drills) >= 2 && remaining < minLeftoverMinutes {
				break
			}
			budget := perFacility
			candidates := s.facilityCandidates(catalog, facility)
			added := 0
			for _, d := range candidates {
				if added >= maxDrillsPerFacility {
					break
				}
				if d.EstimatedMinutes > budget || containsDrill(drills, d.ID) {
					continue
				}
				drills = append(drills, planned(d, facility))
				budget -= d.EstimatedMinutes
				remaining -= d.EstimatedMinutes
				added++
			}
		}

	case remaining > 0:
		// No facilities: train whatever the stats say is weakest
		candidates := byPillars(catalog, categoryPillars[weakest])
		s.shuffle(candidates)
		for _, d := range candidates {
			if len(drills) >= maxFallbackDrills || remaining < d.EstimatedMinutes {
				continue
			}
			drills = append(drills, planned(d, ""))
			remaining -= d.EstimatedMinutes
		}
	}

	return drills
}

// roundEntry builds the single on-course slot for a day with a scheduled
// round. An 18-hole day gets the alternate-club challenge; a 9-hole day
// prefers the shorter themed challenges. Falls back to a plain round entry
// when the catalog has no on-course drills.
func (s *PlanService) roundEntry(roundType models.RoundType, catalog []models.Drill) models.PlannedDrill {
	block := nineHoleBlockMinutes
	preferred := []string{"Ladies Tee Challenge", "Alternate Club Round"}
	fallbackTitle := "9-Hole Round"
	if roundType == models.RoundEighteen {
		block = eighteenHoleBlockMinutes
		preferred = []string{"Alternate Club Round"}
		fallbackTitle = "18-Hole Round"
	}

	for _, want := range preferred {
		for _, d := range catalog {
			if d.Category == models.PillarOnCourse && d.Title == want {
				entry := planned(d, "")
				entry.EstimatedMinutes = block
				entry.IsRound = true
				entry.XPValue = roundXP
				return entry
			}
		}
	}

	if onCourse := byPillars(catalog, []models.Pillar{models.PillarOnCourse}); len(onCourse) > 0 {
		d := onCourse[s.rng.Intn(len(onCourse))]
		entry := planned(d, "")
		entry.EstimatedMinutes = block
		entry.IsRound = true
		entry.XPValue = roundXP
		return entry
	}

	return models.PlannedDrill{
		Title:            fallbackTitle,
		Category:         models.PillarOnCourse,
		ContentType:      models.ContentText,
		EstimatedMinutes: block,
		IsRound:          true,
		XPValue:          roundXP,
	}
}

// pickMentalGame selects one random mental-game drill, capped at 30 minutes
func (s *PlanService) pickMentalGame(catalog []models.Drill) *models.PlannedDrill {
	mental := byPillars(catalog, []models.Pillar{models.PillarMentalGame})
	if len(mental) == 0 {
		return nil
	}
	d := mental[s.rng.Intn(len(mental))]
	entry := planned(d, "")
	if entry.EstimatedMinutes > mentalGameCapMinutes {
		entry.EstimatedMinutes = mentalGameCapMinutes
	}
	return &entry
}

// facilityCandidates returns shuffled drills workable at a facility. The
// grass range doubles up Skills and Wedge Play drills so they dominate the
// draw there.
func (s *PlanService) facilityCandidates(catalog []models.Drill, facility models.Facility) []models.Drill {
	pillars := facilityPillars[facility]
	candidates := byPillars(catalog, pillars)

	if facility == models.FacilityRangeGrass {
		for _, d := range catalog {
			if d.Category == models.PillarSkills || d.Category == models.PillarWedgePlay {
				candidates = append(candidates, d)
			}
		}
	}

	s.shuffle(candidates)
	return candidates
}

// SwapDrill replaces the drill at a plan slot with a related one from the
// catalog, preserving the slot's facility and round flag and resetting its
// completion state
func (s *PlanService) SwapDrill(userID int64, day, index int) (*models.PlannedDrill, error) {
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

	current := plan.Days[day].Drills[index]

	catalog, err := s.drills.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load drill catalog: %w", err)
	}

	inDay := make(map[int64]bool)
	for _, d := range plan.Days[day].Drills {
		inDay[d.DrillID] = true
	}

	var candidates []models.Drill
	for _, d := range catalog {
		if inDay[d.ID] {
			continue
		}
		if categoriesRelated(d.Category, current.Category) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		// Nothing in the category: fall back to anything of similar length
		for _, d := range catalog {
			if inDay[d.ID] {
				continue
			}
			if abs(d.EstimatedMinutes-current.EstimatedMinutes) <= 15 {
				candidates = append(candidates, d)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoSwapCandidate
	}

	s.mu.Lock()
	pick := candidates[s.rng.Intn(len(candidates))]
	s.mu.Unlock()

	replacement := planned(pick, current.Facility)
	replacement.IsRound = current.IsRound
	if current.IsRound {
		replacement.EstimatedMinutes = current.EstimatedMinutes
		replacement.XPValue = roundXP
	}

	plan.Days[day].Drills[index] = replacement
	if err := s.plans.Save(userID, plan); err != nil {
		return nil, err
	}
	return &replacement, nil
}

func (s *PlanService) shuffle(drills []models.Drill) {
	s.rng.Shuffle(len(drills), func(i, j int) {
		drills[i], drills[j] = drills[j], drills[i]
	})
}

// planned snapshots a catalog drill into a plan slot with its tiered reward
func planned(d models.Drill, facility models.Facility) models.PlannedDrill {
	return models.PlannedDrill{
		DrillID:          d.ID,
		Title:            d.Title,
		Category:         d.Category,
		ContentType:      d.ContentType,
		EstimatedMinutes: d.EstimatedMinutes,
		Facility:         facility,
		XPValue:          tieredXP(d.Category),
	}
}

// tieredXP returns the planned reward for a category
func tieredXP(category models.Pillar) int {
	if xp, ok := pillarXP[category]; ok {
		return xp
	}
	return 40
}

func byPillars(catalog []models.Drill, pillars []models.Pillar) []models.Drill {
	var out []models.Drill
	for _, d := range catalog {
		for _, p := range pillars {
			if d.Category == p {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func containsDrill(drills []models.PlannedDrill, id int64) bool {
	for _, d := range drills {
		if d.DrillID == id {
			return true
		}
	}
	return false
}

// categoriesRelated reports whether two drill categories train the same
// part of the game, either by name overlap or because a stat category maps
// to both
func categoriesRelated(a, b models.Pillar) bool {
	al := strings.ToLower(string(a))
	bl := strings.ToLower(string(b))
	if strings.Contains(al, bl) || strings.Contains(bl, al) {
		return true
	}
	for _, pillars := range categoryPillars {
		var hasA, hasB bool
		for _, p := range pillars {
			if p == a {
				hasA = true
			}
			if p == b {
				hasB = true
			}
		}
		if hasA && hasB {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
