package models

// Facility identifies a practice area a player can select for a day
type Facility string

const (
	FacilityPuttingGreen  Facility = "putting-green"
	FacilityChippingGreen Facility = "chipping-green"
	FacilityBunker        Facility = "bunker"
	FacilityRangeMats     Facility = "range-mats"
	FacilityRangeGrass    Facility = "range-grass"
	FacilitySimulator     Facility = "simulator"
)

// Facilities lists every known practice facility
func Facilities() []Facility {
	return []Facility{
		FacilityPuttingGreen,
		FacilityChippingGreen,
		FacilityBunker,
		FacilityRangeMats,
		FacilityRangeGrass,
		FacilitySimulator,
	}
}

// RoundType is an optional scheduled on-course round for a plan day
type RoundType string

const (
	RoundNone     RoundType = ""
	RoundNine     RoundType = "9-hole"
	RoundEighteen RoundType = "18-hole"
)

// PlannedDrill is one slot in a day's plan: a snapshot of the drill it was
// built from plus completion state. XPValue is the reward assigned at
// generation time; XPEarned is what was actually granted on completion.
type PlannedDrill struct {
	DrillID          int64       `json:"drillId"`
	Title            string      `json:"title"`
	Category         Pillar      `json:"category"`
	ContentType      ContentType `json:"contentType"`
	EstimatedMinutes int         `json:"estimatedMinutes"`
	Facility         Facility    `json:"facility,omitempty"`
	IsRound          bool        `json:"isRound,omitempty"`
	XPValue          int         `json:"xpValue"`
	Completed        bool        `json:"completed"`
	XPEarned         int         `json:"xpEarned"`
}

// DayPlan is one weekday's practice plan
type DayPlan struct {
	Day        int            `json:"day"` // 0 = Monday .. 6 = Sunday
	Selected   bool           `json:"selected"`
	Minutes    int            `json:"minutes"`
	Facilities []Facility     `json:"facilities,omitempty"`
	RoundType  RoundType      `json:"roundType,omitempty"`
	Drills     []PlannedDrill `json:"drills"`
}

// WeeklyPlan maps day index 0-6 to a DayPlan. It is persisted as a whole.
type WeeklyPlan struct {
	Days [7]DayPlan `json:"days"`
}

// NewWeeklyPlan returns an empty plan with day indices filled in
func NewWeeklyPlan() *WeeklyPlan {
	plan := &WeeklyPlan{}
	for i := range plan.Days {
		plan.Days[i].Day = i
	}
	return plan
}
