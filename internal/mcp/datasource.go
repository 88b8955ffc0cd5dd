package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
	"github.com/stridefit/stride/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and Remote (via the REST API) satisfy this interface.
type DataSource interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
	ListWorkoutsByUser(ctx context.Context, userID string) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
