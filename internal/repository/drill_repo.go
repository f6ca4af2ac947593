package repository

import (
	"database/sql"
	"fmt"

	"golfacademy/internal/database"
	"golfacademy/internal/models"
)

// DrillRepository handles database operations for the drill catalog
type DrillRepository struct {
	db *database.DB
}

// NewDrillRepository creates a new drill repository
func NewDrillRepository(db *database.DB) *DrillRepository {
	return &DrillRepository{db: db}
}

// List retrieves the full drill catalog
func (r *DrillRepository) List() ([]models.Drill, error) {
	query := `
		SELECT id, title, content_type, category, estimated_minutes, base_xp, source_ref
		FROM drills
		ORDER BY category, title
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drills: %w", err)
	}
	defer rows.Close()

	var drills []models.Drill
	for rows.Next() {
		var drill models.Drill
		err := rows.Scan(
			&drill.ID,
			&drill.Title,
			&drill.ContentType,
			&drill.Category,
			&drill.EstimatedMinutes,
			&drill.BaseXP,
			&drill.SourceRef,
		)
		if err != nil {
			return nil, err
		}
		drills = append(drills, drill)
	}

	return drills, rows.Err()
}

// GetByID retrieves a drill by ID
func (r *DrillRepository) GetByID(id int64) (*models.Drill, error) {
	query := `
		SELECT id, title, content_type, category, estimated_minutes, base_xp, source_ref
		FROM drills
		WHERE id = ?
	`

	drill := &models.Drill{}
	err := r.db.QueryRow(query, id).Scan(
		&drill.ID,
		&drill.Title,
		&drill.ContentType,
		&drill.Category,
		&drill.EstimatedMinutes,
		&drill.BaseXP,
		&drill.SourceRef,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get drill: %w", err)
	}

	return drill, nil
}

// GetByTitle retrieves a drill by its unique title
func (r *DrillRepository) GetByTitle(title string) (*models.Drill, error) {
	query := `
		SELECT id, title, content_type, category, estimated_minutes, base_xp, source_ref
		FROM drills
		WHERE title = ?
	`

	drill := &models.Drill{}
	err := r.db.QueryRow(query, title).Scan(
		&drill.ID,
		&drill.Title,
		&drill.ContentType,
		&drill.Category,
		&drill.EstimatedMinutes,
		&drill.BaseXP,
		&drill.SourceRef,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get drill: %w", err)
	}

	return drill, nil
}

// Insert adds a catalog entry
func (r *DrillRepository) Insert(drill *models.Drill) (int64, error) {
	query := `
		INSERT INTO drills (title, content_type, category, estimated_minutes, base_xp, source_ref)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		drill.Title, drill.ContentType, drill.Category,
		drill.EstimatedMinutes, drill.BaseXP, drill.SourceRef,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert drill: %w", err)
	}
	return id, nil
}

// Count returns the number of catalog entries
func (r *DrillRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM drills").Scan(&count)
	return count, err
}
