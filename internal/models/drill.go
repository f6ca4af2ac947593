package models

// Pillar is a fixed practice category used for both drill classification
// and XP tiering
type Pillar string

const (
	PillarPutting    Pillar = "Putting"
	PillarDriving    Pillar = "Driving"
	PillarIrons      Pillar = "Irons"
	PillarShortGame  Pillar = "Short Game"
	PillarWedgePlay  Pillar = "Wedge Play"
	PillarSkills     Pillar = "Skills"
	PillarOnCourse   Pillar = "On-Course"
	PillarMentalGame Pillar = "Mental Game"
)

// Pillars lists every practice category in display order
func Pillars() []Pillar {
	return []Pillar{
		PillarPutting,
		PillarDriving,
		PillarIrons,
		PillarShortGame,
		PillarWedgePlay,
		PillarSkills,
		PillarOnCourse,
		PillarMentalGame,
	}
}

// ContentType describes the instructional format of a drill
type ContentType string

const (
	ContentVideo ContentType = "video"
	ContentPDF   ContentType = "pdf"
	ContentText  ContentType = "text"
)

// Drill is a catalog entry. The catalog is seeded at startup and is not
// user-mutable.
type Drill struct {
	ID               int64
	Title            string
	ContentType      ContentType
	Category         Pillar
	EstimatedMinutes int
	BaseXP           int
	SourceRef        string
}
