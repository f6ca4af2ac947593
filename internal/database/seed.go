package database

import (
	"fmt"
	"log"

	"golfacademy/internal/models"
)

type seedDrill struct {
	title       string
	contentType models.ContentType
	category    models.Pillar
	minutes     int
	baseXP      int
	sourceRef   string
}

// defaultCatalog is the drill library seeded on first start. Titles are
// unique; plan generation looks some of them up by name.
var defaultCatalog = []seedDrill{
	// Putting
	{"Gate Drill", models.ContentVideo, models.PillarPutting, 15, 50, "library/putting/gate-drill"},
	{"Clock Drill", models.ContentVideo, models.PillarPutting, 20, 50, "library/putting/clock-drill"},
	{"Ladder Lag Putting", models.ContentText, models.PillarPutting, 15, 50, "library/putting/ladder-lag"},
	{"One-Handed Putting", models.ContentVideo, models.PillarPutting, 15, 50, "library/putting/one-handed"},
	{"Three-Six-Nine Circuit", models.ContentPDF, models.PillarPutting, 30, 50, "library/putting/3-6-9"},
	{"Breaking Putt Reads", models.ContentVideo, models.PillarPutting, 20, 50, "library/putting/breaking-reads"},

	// Driving
	{"Fairway Finder", models.ContentVideo, models.PillarDriving, 20, 60, "library/driving/fairway-finder"},
	{"Tee Height Ladder", models.ContentText, models.PillarDriving, 15, 60, "library/driving/tee-height"},
	{"Step-Change Tempo", models.ContentVideo, models.PillarDriving, 20, 60, "library/driving/tempo"},
	{"Corridor Drill", models.ContentVideo, models.PillarDriving, 30, 60, "library/driving/corridor"},
	{"Anti-Slice Path Work", models.ContentPDF, models.PillarDriving, 25, 60, "library/driving/anti-slice"},

	// Irons
	{"Nine Shot Windows", models.ContentVideo, models.PillarIrons, 30, 60, "library/irons/nine-windows"},
	{"Strike Line Drill", models.ContentVideo, models.PillarIrons, 20, 60, "library/irons/strike-line"},
	{"Distance Stock Yardages", models.ContentPDF, models.PillarIrons, 30, 60, "library/irons/stock-yardages"},
	{"Towel Behind Ball", models.ContentText, models.PillarIrons, 15, 60, "library/irons/towel-drill"},
	{"Flighted Wedge Thirds", models.ContentVideo, models.PillarIrons, 25, 60, "library/irons/flighted-thirds"},

	// Short Game
	{"Chip and Run Circuit", models.ContentVideo, models.PillarShortGame, 15, 55, "library/short-game/chip-run"},
	{"Landing Spot Towel", models.ContentText, models.PillarShortGame, 15, 55, "library/short-game/landing-spot"},
	{"Bunker Splash Ladder", models.ContentVideo, models.PillarShortGame, 20, 55, "library/short-game/bunker-splash"},
	{"Up and Down Nine", models.ContentPDF, models.PillarShortGame, 30, 55, "library/short-game/up-down-nine"},
	{"Fringe Ratio Chips", models.ContentVideo, models.PillarShortGame, 20, 55, "library/short-game/fringe-ratio"},

	// Wedge Play
	{"Wedge Distance Matrix", models.ContentPDF, models.PillarWedgePlay, 30, 55, "library/wedges/distance-matrix"},
	{"Clock Face Wedges", models.ContentVideo, models.PillarWedgePlay, 20, 55, "library/wedges/clock-face"},
	{"Trajectory Stacking", models.ContentVideo, models.PillarWedgePlay, 25, 55, "library/wedges/trajectory-stacking"},
	{"Fifty Yard Dispersion", models.ContentText, models.PillarWedgePlay, 20, 55, "library/wedges/fifty-yard"},

	// Skills challenges
	{"Trajectory Control Test", models.ContentVideo, models.PillarSkills, 25, 45, "library/skills/trajectory-test"},
	{"Shot Shape Bingo", models.ContentText, models.PillarSkills, 20, 45, "library/skills/shape-bingo"},
	{"Worst Ball Scramble", models.ContentText, models.PillarSkills, 30, 45, "library/skills/worst-ball"},
	{"Random Club Targets", models.ContentVideo, models.PillarSkills, 20, 45, "library/skills/random-targets"},

	// On-course challenges
	{"Alternate Club Round", models.ContentText, models.PillarOnCourse, 240, 500, "library/on-course/alternate-club"},
	{"Ladies Tee Challenge", models.ContentText, models.PillarOnCourse, 120, 500, "library/on-course/forward-tees"},
	{"Fairways Only Nine", models.ContentText, models.PillarOnCourse, 120, 500, "library/on-course/fairways-only"},
	{"Three Club Round", models.ContentText, models.PillarOnCourse, 240, 500, "library/on-course/three-club"},

	// Mental game
	{"Pre-Shot Routine Reset", models.ContentPDF, models.PillarMentalGame, 20, 40, "library/mental/pre-shot-routine"},
	{"Scoring Zone Visualization", models.ContentText, models.PillarMentalGame, 15, 40, "library/mental/visualization"},
	{"Breath Count Reset", models.ContentText, models.PillarMentalGame, 10, 40, "library/mental/breath-count"},
	{"Post-Round Review Journal", models.ContentPDF, models.PillarMentalGame, 30, 40, "library/mental/review-journal"},
}

// SeedDrillCatalog inserts the default drill library if the catalog is
// empty. Safe to call on every start.
func SeedDrillCatalog(db *DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM drills").Scan(&count); err != nil {
		return fmt.Errorf("failed to count drills: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO drills (title, content_type, category, estimated_minutes, base_xp, source_ref)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, d := range defaultCatalog {
		if _, err := db.Exec(query,
			d.title, string(d.contentType), string(d.category),
			d.minutes, d.baseXP, d.sourceRef,
		); err != nil {
			return fmt.Errorf("failed to seed drill %q: %w", d.title, err)
		}
	}

	log.Printf("Seeded drill catalog with %d drills", len(defaultCatalog))
	return nil
}
