package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"golfacademy/internal/database"
	"golfacademy/internal/models"
)

// ProgressRepository persists cumulative user progress, activity history and
// per-day freestyle XP counters
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get retrieves a user's progress, returning zeroed progress if none exists
func (r *ProgressRepository) Get(userID int64) (*models.UserProgress, error) {
	query := `
		SELECT total_xp, total_minutes, completed_drills, drill_counts, updated_at
		FROM user_progress
		WHERE user_id = ?
	`

	progress := models.NewUserProgress(userID)
	var completedJSON, countsJSON string

	err := r.db.QueryRow(query, userID).Scan(
		&progress.TotalXP,
		&progress.TotalMinutes,
		&completedJSON,
		&countsJSON,
		&progress.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return progress, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	if err := json.Unmarshal([]byte(completedJSON), &progress.CompletedDrills); err != nil {
		return nil, fmt.Errorf("failed to decode completed drills: %w", err)
	}
	if err := json.Unmarshal([]byte(countsJSON), &progress.DrillCounts); err != nil {
		return nil, fmt.Errorf("failed to decode drill counts: %w", err)
	}

	return progress, nil
}

// Save stores a user's progress, replacing any previous row
func (r *ProgressRepository) Save(progress *models.UserProgress) error {
	completedJSON, err := json.Marshal(progress.CompletedDrills)
	if err != nil {
		return fmt.Errorf("failed to encode completed drills: %w", err)
	}
	countsJSON, err := json.Marshal(progress.DrillCounts)
	if err != nil {
		return fmt.Errorf("failed to encode drill counts: %w", err)
	}

	result, err := r.db.Exec(`
		UPDATE user_progress
		SET total_xp = ?, total_minutes = ?, completed_drills = ?, drill_counts = ?, updated_at = ?
		WHERE user_id = ?`,
		progress.TotalXP, progress.TotalMinutes, string(completedJSON), string(countsJSON),
		time.Now(), progress.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		_, err = r.db.Exec(`
			INSERT INTO user_progress (user_id, total_xp, total_minutes, completed_drills, drill_counts)
			VALUES (?, ?, ?, ?, ?)`,
			progress.UserID, progress.TotalXP, progress.TotalMinutes,
			string(completedJSON), string(countsJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
	}

	return nil
}

// AppendActivity adds an entry to a user's activity history
func (r *ProgressRepository) AppendActivity(entry models.ActivityEntry) error {
	query := `
		INSERT INTO activity_history (id, user_id, drill_id, title, category, xp_earned, minutes, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		entry.ID, entry.UserID, entry.DrillID, entry.Title, entry.Category,
		entry.XPEarned, entry.Minutes, entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// PruneActivity keeps only the most recent keep entries for a user
func (r *ProgressRepository) PruneActivity(userID int64, keep int) error {
	// Subquery selects the IDs to keep; everything else for the user goes.
	query := `
		DELETE FROM activity_history
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM (
				SELECT id FROM activity_history
				WHERE user_id = ?
				ORDER BY occurred_at DESC
				LIMIT ?
			) keepers
		)
	`
	_, err := r.db.Exec(query, userID, userID, keep)
	if err != nil {
		return fmt.Errorf("failed to prune activity: %w", err)
	}
	return nil
}

// ListActivity retrieves a user's activity history, most recent first
func (r *ProgressRepository) ListActivity(userID int64, limit int) ([]models.ActivityEntry, error) {
	query := `
		SELECT id, user_id, drill_id, title, category, xp_earned, minutes, occurred_at
		FROM activity_history
		WHERE user_id = ?
		ORDER BY occurred_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.DrillID,
			&entry.Title,
			&entry.Category,
			&entry.XPEarned,
			&entry.Minutes,
			&entry.OccurredAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// FreestyleXP returns the freestyle XP already granted on a calendar day
// (day format: YYYY-MM-DD)
func (r *ProgressRepository) FreestyleXP(userID int64, day string) (int, error) {
	var xp int
	query := "SELECT COALESCE(xp, 0) FROM freestyle_xp WHERE user_id = ? AND day = ?"
	err := r.db.QueryRow(query, userID, day).Scan(&xp)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get freestyle xp: %w", err)
	}
	return xp, nil
}

// AddFreestyleXP increments the freestyle XP counter for a calendar day
func (r *ProgressRepository) AddFreestyleXP(userID int64, day string, xp int) error {
	result, err := r.db.Exec(
		"UPDATE freestyle_xp SET xp = xp + ? WHERE user_id = ? AND day = ?",
		xp, userID, day,
	)
	if err != nil {
		return fmt.Errorf("failed to add freestyle xp: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		_, err = r.db.Exec(
			"INSERT INTO freestyle_xp (user_id, day, xp) VALUES (?, ?, ?)",
			userID, day, xp,
		)
		if err != nil {
			return fmt.Errorf("failed to add freestyle xp: %w", err)
		}
	}

	return nil
}

// ListTotals returns per-user XP totals joined with user names, highest
// first, for the academy leaderboard
func (r *ProgressRepository) ListTotals(limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT u.id, u.name, p.total_xp
		FROM user_progress p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.total_xp DESC, u.name ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list totals: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Name, &entry.TotalXP); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
