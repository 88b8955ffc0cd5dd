package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/client"
	"github.com/stridefit/stride/internal/models"
)

// Remote adapts the HTTP client to the DataSource interface so the MCP
// server can run against a stride server instead of a local database.
type Remote struct {
	c *client.Client
}

// NewRemote wraps an HTTP client as a DataSource.
func NewRemote(c *client.Client) *Remote {
	return &Remote{c: c}
}

var _ DataSource = (*Remote)(nil)

func (r *Remote) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return r.c.FetchExercises(ctx)
}

func (r *Remote) GetExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	return r.c.FetchExerciseByName(ctx, name)
}

func (r *Remote) ListWorkoutsByUser(ctx context.Context, userID string) ([]models.Workout, error) {
	return r.c.FetchWorkouts(ctx, userID)
}

func (r *Remote) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	return r.c.FetchWorkout(ctx, id)
}

func (r *Remote) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	return r.c.UserStats(ctx, userID)
}
