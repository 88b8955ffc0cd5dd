package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
)

// History browses a user's persisted workouts.
type History struct {
	api    API
	userID string
}

// NewHistory creates a History view for one user.
func NewHistory(api API, userID string) *History {
	return &History{api: api, userID: userID}
}

// List returns the user's workouts, newest first.
func (h *History) List(ctx context.Context) ([]models.Workout, error) {
	workouts, err := h.api.FetchWorkouts(ctx, h.userID)
	if err != nil {
		return nil, fmt.Errorf("loading workout history: %w", err)
	}
	return workouts, nil
}

// Get returns one workout in full detail.
func (h *History) Get(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	w, err := h.api.FetchWorkout(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading workout %s: %w", id, err)
	}
	return w, nil
}

// Delete removes one workout. The caller is expected to have confirmed the
// action; there is no undo.
func (h *History) Delete(ctx context.Context, id uuid.UUID) error {
	if err := h.api.DeleteWorkout(ctx, id); err != nil {
		return fmt.Errorf("deleting workout %s: %w", id, err)
	}
	return nil
}

// Stats returns the user's aggregate numbers.
func (h *History) Stats(ctx context.Context) (*models.UserStats, error) {
	stats, err := h.api.UserStats(ctx, h.userID)
	if err != nil {
		return nil, fmt.Errorf("loading user stats: %w", err)
	}
	return stats, nil
}
