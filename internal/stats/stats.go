// Package stats computes derived statistics over persisted workouts.
// All functions are pure and safe to call on every render of a view.
package stats

import "github.com/stridefit/stride/internal/models"

// Volume is the total lifted weight of a workout with its display unit.
type Volume struct {
	Volume float64 `json:"volume"`
	Unit   string  `json:"unit"`
}

// TotalSets returns the number of sets across all exercises of a workout.
func TotalSets(w models.Workout) int {
	total := 0
	for _, ex := range w.Exercises {
		total += len(ex.Sets)
	}
	return total
}

// TotalVolume sums weight x reps over every set where both are non-zero.
// The unit of the last contributing set in iteration order wins; mixed-unit
// workouts are not reconciled. This mirrors the historical behavior that
// clients depend on.
func TotalVolume(w models.Workout) Volume {
	v := Volume{Unit: "kg"}
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.Weight != 0 && set.Reps != 0 {
				v.Volume += set.Weight * float64(set.Reps)
				if set.WeightUnit != "" {
					v.Unit = set.WeightUnit
				} else {
					v.Unit = "kg"
				}
			}
		}
	}
	return v
}

// ExerciseNames returns the exercise names of a workout in display order,
// skipping entries with no resolved name.
func ExerciseNames(w models.Workout) []string {
	var names []string
	for _, ex := range w.Exercises {
		if ex.Exercise.Name != "" {
			names = append(names, ex.Exercise.Name)
		}
	}
	return names
}

// WorkoutStats aggregates a user's workout history. Workouts with no
// recorded duration count toward the total with a duration of zero.
func WorkoutStats(workouts []models.Workout) models.UserStats {
	s := models.UserStats{TotalWorkouts: int64(len(workouts))}
	for _, w := range workouts {
		if w.Duration > 0 {
			s.TotalDuration += int64(w.Duration)
		}
	}
	if s.TotalWorkouts > 0 {
		s.AverageDuration = float64(s.TotalDuration) / float64(s.TotalWorkouts)
	}
	return s
}
