// Package tracker drives the workout flows on top of the session store and
// the server API: picking exercises from the catalog, completing and saving
// a session, and browsing history.
package tracker

import (
	"context"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
)

// API is the server surface the tracker flows need. *client.Client
// satisfies it.
type API interface {
	FetchExercises(ctx context.Context) ([]models.Exercise, error)
	FetchExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
	SaveWorkout(ctx context.Context, data models.WorkoutData) (uuid.UUID, error)
	FetchWorkouts(ctx context.Context, userID string) ([]models.Workout, error)
	FetchWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
	UserStats(ctx context.Context, userID string) (*models.UserStats, error)
}
