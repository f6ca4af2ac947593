package service

import (
	"sort"

	"golfacademy/internal/models"
)

// In-memory store fakes backing the service tests.

type fakeRoundStore struct {
	rounds []models.RoundRecord
	nextID int64
}

func (f *fakeRoundStore) Create(round *models.RoundRecord) (*models.RoundRecord, error) {
	f.nextID++
	round.ID = f.nextID
	// Most recent first, matching the repository's ordering
	f.rounds = append([]models.RoundRecord{*round}, f.rounds...)
	return round, nil
}

func (f *fakeRoundStore) GetByID(id int64) (*models.RoundRecord, error) {
	for i := range f.rounds {
		if f.rounds[i].ID == id {
			return &f.rounds[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRoundStore) ListByUser(userID int64, limit int) ([]models.RoundRecord, error) {
	var out []models.RoundRecord
	for _, r := range f.rounds {
		if r.UserID == userID {
			out = append(out, r)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRoundStore) Delete(id, userID int64) (bool, error) {
	for i, r := range f.rounds {
		if r.ID == id && r.UserID == userID {
			f.rounds = append(f.rounds[:i], f.rounds[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeDrillStore struct {
	drills []models.Drill
}

func (f *fakeDrillStore) List() ([]models.Drill, error) {
	return append([]models.Drill(nil), f.drills...), nil
}

func (f *fakeDrillStore) GetByID(id int64) (*models.Drill, error) {
	for i := range f.drills {
		if f.drills[i].ID == id {
			return &f.drills[i], nil
		}
	}
	return nil, nil
}

type fakePlanStore struct {
	plans map[int64]*models.WeeklyPlan
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{plans: make(map[int64]*models.WeeklyPlan)}
}

func (f *fakePlanStore) Get(userID int64) (*models.WeeklyPlan, error) {
	plan, ok := f.plans[userID]
	if !ok {
		return nil, nil
	}
	copied := *plan
	for i := range copied.Days {
		copied.Days[i].Drills = append([]models.PlannedDrill(nil), plan.Days[i].Drills...)
	}
	return &copied, nil
}

func (f *fakePlanStore) Save(userID int64, plan *models.WeeklyPlan) error {
	copied := *plan
	for i := range copied.Days {
		copied.Days[i].Drills = append([]models.PlannedDrill(nil), plan.Days[i].Drills...)
	}
	f.plans[userID] = &copied
	return nil
}

type fakeProgressStore struct {
	progress  map[int64]*models.UserProgress
	activity  []models.ActivityEntry
	freestyle map[string]int
	totals    []models.LeaderboardEntry
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{
		progress:  make(map[int64]*models.UserProgress),
		freestyle: make(map[string]int),
	}
}

func (f *fakeProgressStore) Get(userID int64) (*models.UserProgress, error) {
	if p, ok := f.progress[userID]; ok {
		return p, nil
	}
	return models.NewUserProgress(userID), nil
}

func (f *fakeProgressStore) Save(progress *models.UserProgress) error {
	f.progress[progress.UserID] = progress
	return nil
}

func (f *fakeProgressStore) AppendActivity(entry models.ActivityEntry) error {
	f.activity = append(f.activity, entry)
	return nil
}

func (f *fakeProgressStore) PruneActivity(userID int64, keep int) error {
	var mine []models.ActivityEntry
	var others []models.ActivityEntry
	for _, e := range f.activity {
		if e.UserID == userID {
			mine = append(mine, e)
		} else {
			others = append(others, e)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].OccurredAt.After(mine[j].OccurredAt)
	})
	if len(mine) > keep {
		mine = mine[:keep]
	}
	f.activity = append(others, mine...)
	return nil
}

func (f *fakeProgressStore) ListActivity(userID int64, limit int) ([]models.ActivityEntry, error) {
	var out []models.ActivityEntry
	for _, e := range f.activity {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProgressStore) FreestyleXP(userID int64, day string) (int, error) {
	return f.freestyle[day], nil
}

func (f *fakeProgressStore) AddFreestyleXP(userID int64, day string, xp int) error {
	f.freestyle[day] += xp
	return nil
}

func (f *fakeProgressStore) ListTotals(limit int) ([]models.LeaderboardEntry, error) {
	return f.totals, nil
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) Publish(topic string, userID int64) {
	f.published = append(f.published, topic)
}
