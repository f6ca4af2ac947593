package repository

import (
	"database/sql"
	"fmt"

	"golfacademy/internal/database"
	"golfacademy/internal/models"
)

// RoundRepository handles database operations for logged rounds
type RoundRepository struct {
	db *database.DB
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db *database.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

const roundColumns = `id, user_id, played_at, course_name, holes, score, handicap, nett_score,
	eagles, birdies, pars, bogeys, double_bogeys,
	fairways_hit, fairways_total, greens_hit, greens_total,
	up_and_downs_made, up_and_down_attempts, total_putts, missed_short_putts,
	penalty_strokes, created_at`

// Create inserts a new round record
func (r *RoundRepository) Create(round *models.RoundRecord) (*models.RoundRecord, error) {
	query := `
		INSERT INTO rounds (user_id, played_at, course_name, holes, score, handicap, nett_score,
			eagles, birdies, pars, bogeys, double_bogeys,
			fairways_hit, fairways_total, greens_hit, greens_total,
			up_and_downs_made, up_and_down_attempts, total_putts, missed_short_putts,
			penalty_strokes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		round.UserID, round.PlayedAt, round.CourseName, round.Holes, round.Score,
		round.Handicap, round.NettScore,
		round.Eagles, round.Birdies, round.Pars, round.Bogeys, round.DoubleBogeys,
		round.FairwaysHit, round.FairwaysTotal, round.GreensHit, round.GreensTotal,
		round.UpAndDownsMade, round.UpAndDownAttempts, round.TotalPutts, round.MissedShortPutts,
		round.PenaltyStrokes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}

	return r.GetByID(id)
}

func scanRound(scan func(dest ...interface{}) error) (*models.RoundRecord, error) {
	round := &models.RoundRecord{}
	err := scan(
		&round.ID,
		&round.UserID,
		&round.PlayedAt,
		&round.CourseName,
		&round.Holes,
		&round.Score,
		&round.Handicap,
		&round.NettScore,
		&round.Eagles,
		&round.Birdies,
		&round.Pars,
		&round.Bogeys,
		&round.DoubleBogeys,
		&round.FairwaysHit,
		&round.FairwaysTotal,
		&round.GreensHit,
		&round.GreensTotal,
		&round.UpAndDownsMade,
		&round.UpAndDownAttempts,
		&round.TotalPutts,
		&round.MissedShortPutts,
		&round.PenaltyStrokes,
		&round.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return round, nil
}

// GetByID retrieves a round by ID
func (r *RoundRepository) GetByID(id int64) (*models.RoundRecord, error) {
	query := "SELECT " + roundColumns + " FROM rounds WHERE id = ?"
	row := r.db.QueryRow(query, id)

	round, err := scanRound(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil
}

// ListByUser retrieves rounds for a user, most recent first. A limit of 0
// means no limit.
func (r *RoundRepository) ListByUser(userID int64, limit int) ([]models.RoundRecord, error) {
	query := "SELECT " + roundColumns + " FROM rounds WHERE user_id = ? ORDER BY played_at DESC"
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []models.RoundRecord
	for rows.Next() {
		round, err := scanRound(rows.Scan)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, *round)
	}

	return rounds, rows.Err()
}

// Delete removes a round owned by the given user. Returns false if no row
// matched.
func (r *RoundRepository) Delete(id, userID int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM rounds WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete round: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
