package service

import "golfacademy/internal/models"

// Store interfaces consumed by the services. The repository package
// satisfies all of them; tests substitute in-memory fakes.

// Publisher emits fire-and-forget events after state changes. Satisfied by
// events.Bus.
type Publisher interface {
	Publish(topic string, userID int64)
}

// RoundStore provides access to logged rounds
type RoundStore interface {
	Create(round *models.RoundRecord) (*models.RoundRecord, error)
	GetByID(id int64) (*models.RoundRecord, error)
	ListByUser(userID int64, limit int) ([]models.RoundRecord, error)
	Delete(id, userID int64) (bool, error)
}

// DrillStore provides access to the drill catalog
type DrillStore interface {
	List() ([]models.Drill, error)
	GetByID(id int64) (*models.Drill, error)
}

// PlanStore provides access to persisted weekly plans
type PlanStore interface {
	Get(userID int64) (*models.WeeklyPlan, error)
	Save(userID int64, plan *models.WeeklyPlan) error
}

// ProgressStore provides access to user progress, activity history and
// freestyle XP counters
type ProgressStore interface {
	Get(userID int64) (*models.UserProgress, error)
	Save(progress *models.UserProgress) error
	AppendActivity(entry models.ActivityEntry) error
	PruneActivity(userID int64, keep int) error
	ListActivity(userID int64, limit int) ([]models.ActivityEntry, error)
	FreestyleXP(userID int64, day string) (int, error)
	AddFreestyleXP(userID int64, day string, xp int) error
	ListTotals(limit int) ([]models.LeaderboardEntry, error)
}
