package storage

import (
	"context"
	"fmt"

	"github.com/stridefit/stride/internal/models"
)

// GetUserStats returns a user's aggregate workout numbers, computed in SQL
// so the profile view never pages the whole history through the app.
func (db *DB) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	stats := &models.UserStats{}
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(duration_sec), 0)
		 FROM workouts
		 WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.TotalDuration)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}
	if stats.TotalWorkouts > 0 {
		stats.AverageDuration = float64(stats.TotalDuration) / float64(stats.TotalWorkouts)
	}
	return stats, nil
}
