package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"golfacademy/internal/database"
	"golfacademy/internal/models"
)

// PlanRepository persists weekly practice plans. A plan is serialized as a
// whole: the week is the unit of persistence.
type PlanRepository struct {
	db *database.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *database.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Get retrieves a user's weekly plan, or nil if none has been generated
func (r *PlanRepository) Get(userID int64) (*models.WeeklyPlan, error) {
	query := "SELECT payload FROM weekly_plans WHERE user_id = ?"

	var payload string
	err := r.db.QueryRow(query, userID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly plan: %w", err)
	}

	plan := &models.WeeklyPlan{}
	if err := json.Unmarshal([]byte(payload), plan); err != nil {
		return nil, fmt.Errorf("failed to decode weekly plan: %w", err)
	}

	return plan, nil
}

// Save stores a user's weekly plan, replacing any previous one
func (r *PlanRepository) Save(userID int64, plan *models.WeeklyPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode weekly plan: %w", err)
	}

	// Update first, insert if no row existed. Portable across all three
	// dialects, unlike INSERT OR REPLACE.
	result, err := r.db.Exec(
		"UPDATE weekly_plans SET payload = ?, updated_at = ? WHERE user_id = ?",
		string(payload), time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save weekly plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		_, err = r.db.Exec(
			"INSERT INTO weekly_plans (user_id, payload) VALUES (?, ?)",
			userID, string(payload),
		)
		if err != nil {
			return fmt.Errorf("failed to save weekly plan: %w", err)
		}
	}

	return nil
}

// Delete removes a user's weekly plan
func (r *PlanRepository) Delete(userID int64) error {
	_, err := r.db.Exec("DELETE FROM weekly_plans WHERE user_id = ?", userID)
	return err
}
