package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stridefit/stride/internal/models"
)

const exerciseColumns = `id, name, description, difficulty, image_url, video_url, is_active, created_at`

// ListExercises returns the active exercise catalog ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+`
		 FROM exercises
		 WHERE is_active
		 ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// GetExercise retrieves a single catalog exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)
	return scanExercise(row)
}

// GetExerciseByName retrieves a catalog exercise by its exact name. Used by
// the save flow to resolve references the client only knows by name.
func (db *DB) GetExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE name = $1`, name)
	return scanExercise(row)
}

// CreateExercise inserts a catalog exercise, assigning an ID when absent.
// Returns true if inserted, false when the name already exists.
func (db *DB) CreateExercise(ctx context.Context, ex models.Exercise) (bool, error) {
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, description, difficulty, image_url, video_url, is_active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (name) DO NOTHING`,
		ex.ID, ex.Name, ex.Description, ex.Difficulty, ex.ImageURL, ex.VideoURL, ex.IsActive)
	if err != nil {
		return false, fmt.Errorf("inserting exercise: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanExercise(row pgx.Row) (*models.Exercise, error) {
	var ex models.Exercise
	err := row.Scan(&ex.ID, &ex.Name, &ex.Description, &ex.Difficulty,
		&ex.ImageURL, &ex.VideoURL, &ex.IsActive, &ex.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	return &ex, nil
}

func scanExercises(rows pgx.Rows) ([]models.Exercise, error) {
	var result []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Description, &ex.Difficulty,
			&ex.ImageURL, &ex.VideoURL, &ex.IsActive, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}
