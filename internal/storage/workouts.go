package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stridefit/stride/internal/models"
)

// InsertWorkout persists a completed workout document transactionally:
// either the whole document lands or nothing does. Every exercise reference
// is checked first; an unknown reference aborts with ErrNotFound.
func (db *DB) InsertWorkout(ctx context.Context, data models.WorkoutData) (uuid.UUID, error) {
	workoutID := uuid.New()

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, entry := range data.Exercises {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM exercises WHERE id = $1)`,
			entry.ExerciseRef).Scan(&exists)
		if err != nil {
			return uuid.Nil, fmt.Errorf("checking exercise %s: %w", entry.ExerciseRef, err)
		}
		if !exists {
			return uuid.Nil, fmt.Errorf("exercise %s: %w", entry.ExerciseRef, ErrNotFound)
		}
	}

	// The owner may not have hit an identity-resolving endpoint yet.
	_, err = tx.Exec(ctx,
		`INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`,
		data.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("ensuring user: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO workouts (id, user_id, date, duration_sec)
		 VALUES ($1,$2,$3,$4)`,
		workoutID, data.UserID, data.Date, data.Duration)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting workout: %w", err)
	}

	for pos, entry := range data.Exercises {
		var workoutExerciseID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO workout_exercises (workout_id, exercise_id, position)
			 VALUES ($1,$2,$3) RETURNING id`,
			workoutID, entry.ExerciseRef, pos).Scan(&workoutExerciseID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("inserting workout exercise: %w", err)
		}

		for setPos, set := range entry.Sets {
			_, err := tx.Exec(ctx,
				`INSERT INTO workout_sets (workout_exercise_id, position, reps, weight, weight_unit)
				 VALUES ($1,$2,$3,$4,$5)`,
				workoutExerciseID, setPos, set.Reps, set.Weight, set.WeightUnit)
			if err != nil {
				return uuid.Nil, fmt.Errorf("inserting workout set: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("committing workout: %w", err)
	}
	return workoutID, nil
}

// ListWorkoutsByUser retrieves a user's workouts newest first, each with its
// nested exercise references and sets.
func (db *DB) ListWorkoutsByUser(ctx context.Context, userID string) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, date, duration_sec
		 FROM workouts
		 WHERE user_id = $1
		 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var workouts []models.Workout
	var ids []uuid.UUID
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Duration); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		workouts = append(workouts, w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return workouts, nil
	}

	if err := db.attachExercises(ctx, workouts, ids); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetWorkout retrieves a single workout by ID with its exercises and sets.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, date, duration_sec FROM workouts WHERE id = $1`, id)

	var w models.Workout
	err := row.Scan(&w.ID, &w.UserID, &w.Date, &w.Duration)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning workout: %w", err)
	}

	workouts := []models.Workout{w}
	if err := db.attachExercises(ctx, workouts, []uuid.UUID{id}); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

// DeleteWorkout removes a workout and, via cascade, its exercises and sets.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// attachExercises fills in the nested exercise+set lists for the given
// workouts with a single join query.
func (db *DB) attachExercises(ctx context.Context, workouts []models.Workout, ids []uuid.UUID) error {
	rows, err := db.Pool.Query(ctx,
		`SELECT we.id, we.workout_id, e.id, e.name,
		        ws.reps, ws.weight, ws.weight_unit
		 FROM workout_exercises we
		 JOIN exercises e ON e.id = we.exercise_id
		 LEFT JOIN workout_sets ws ON ws.workout_exercise_id = we.id
		 WHERE we.workout_id = ANY($1)
		 ORDER BY we.workout_id, we.position, ws.position`, ids)
	if err != nil {
		return fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	byWorkout := make(map[uuid.UUID]*models.Workout, len(workouts))
	for i := range workouts {
		byWorkout[workouts[i].ID] = &workouts[i]
	}

	// Rows arrive grouped by workout exercise; a new entry id starts a
	// new exercise, subsequent rows append its sets.
	var lastEntryID int64 = -1
	for rows.Next() {
		var (
			entryID    int64
			workoutID  uuid.UUID
			ref        models.ExerciseRef
			reps       *int
			weight     *float64
			weightUnit *string
		)
		if err := rows.Scan(&entryID, &workoutID, &ref.ID, &ref.Name,
			&reps, &weight, &weightUnit); err != nil {
			return fmt.Errorf("scanning workout exercise: %w", err)
		}

		w := byWorkout[workoutID]
		if w == nil {
			continue
		}
		if entryID != lastEntryID {
			w.Exercises = append(w.Exercises, models.WorkoutExercise{Exercise: ref})
			lastEntryID = entryID
		}
		if reps != nil && weight != nil && weightUnit != nil {
			ex := &w.Exercises[len(w.Exercises)-1]
			ex.Sets = append(ex.Sets, models.WorkoutSet{
				Reps: *reps, Weight: *weight, WeightUnit: *weightUnit,
			})
		}
	}
	return rows.Err()
}
