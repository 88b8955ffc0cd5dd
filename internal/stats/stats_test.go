package stats

import (
	"testing"

	"github.com/stridefit/stride/internal/models"
)

func workoutWithSets(sets ...models.WorkoutSet) models.Workout {
	return models.Workout{
		Exercises: []models.WorkoutExercise{{Sets: sets}},
	}
}

// TestTotalSets counts sets across exercises, including the empty case.
func TestTotalSets(t *testing.T) {
	if got := TotalSets(models.Workout{}); got != 0 {
		t.Errorf("empty workout = %d, want 0", got)
	}

	w := models.Workout{
		Exercises: []models.WorkoutExercise{
			{Sets: []models.WorkoutSet{{Reps: 10}, {Reps: 8}}},
			{Sets: nil},
			{Sets: []models.WorkoutSet{{Reps: 5}}},
		},
	}
	if got := TotalSets(w); got != 3 {
		t.Errorf("TotalSets = %d, want 3", got)
	}
}

// TestTotalVolume verifies that sets with zero reps or weight contribute
// nothing, and that the last contributing set decides the unit.
func TestTotalVolume(t *testing.T) {
	w := workoutWithSets(
		models.WorkoutSet{Reps: 10, Weight: 20, WeightUnit: "kg"},
		models.WorkoutSet{Reps: 0, Weight: 50, WeightUnit: "kg"},
	)
	got := TotalVolume(w)
	if got.Volume != 200 || got.Unit != "kg" {
		t.Errorf("TotalVolume = %+v, want {200 kg}", got)
	}
}

// TestTotalVolumeLastUnitWins preserves the last-contributor unit behavior
// for mixed-unit workouts.
func TestTotalVolumeLastUnitWins(t *testing.T) {
	w := workoutWithSets(
		models.WorkoutSet{Reps: 5, Weight: 100, WeightUnit: "kg"},
		models.WorkoutSet{Reps: 5, Weight: 45, WeightUnit: "lbs"},
	)
	got := TotalVolume(w)
	if got.Unit != "lbs" {
		t.Errorf("unit = %q, want lbs", got.Unit)
	}
	if got.Volume != 725 {
		t.Errorf("volume = %v, want 725", got.Volume)
	}

	// A trailing non-contributing set must not steal the unit.
	w = workoutWithSets(
		models.WorkoutSet{Reps: 5, Weight: 100, WeightUnit: "lbs"},
		models.WorkoutSet{Reps: 0, Weight: 45, WeightUnit: "kg"},
	)
	if got := TotalVolume(w); got.Unit != "lbs" {
		t.Errorf("unit = %q, want lbs", got.Unit)
	}
}

// TestTotalVolumeEmpty returns the kg zero value when nothing contributes.
func TestTotalVolumeEmpty(t *testing.T) {
	got := TotalVolume(models.Workout{})
	if got.Volume != 0 || got.Unit != "kg" {
		t.Errorf("TotalVolume = %+v, want {0 kg}", got)
	}
}

// TestExerciseNames returns names in display order, skipping unresolved refs.
func TestExerciseNames(t *testing.T) {
	w := models.Workout{
		Exercises: []models.WorkoutExercise{
			{Exercise: models.ExerciseRef{Name: "Squat"}},
			{Exercise: models.ExerciseRef{Name: ""}},
			{Exercise: models.ExerciseRef{Name: "Bench Press"}},
		},
	}
	names := ExerciseNames(w)
	if len(names) != 2 || names[0] != "Squat" || names[1] != "Bench Press" {
		t.Errorf("ExerciseNames = %v", names)
	}
}

// TestWorkoutStats covers the empty history and the averaged case, with
// missing durations treated as zero.
func TestWorkoutStats(t *testing.T) {
	got := WorkoutStats(nil)
	if got.TotalWorkouts != 0 || got.TotalDuration != 0 || got.AverageDuration != 0 {
		t.Errorf("empty stats = %+v", got)
	}

	got = WorkoutStats([]models.Workout{{Duration: 100}, {Duration: 200}})
	if got.TotalWorkouts != 2 || got.TotalDuration != 300 || got.AverageDuration != 150 {
		t.Errorf("stats = %+v, want {2 300 150}", got)
	}

	got = WorkoutStats([]models.Workout{{Duration: 300}, {Duration: 0}})
	if got.TotalWorkouts != 2 || got.TotalDuration != 300 || got.AverageDuration != 150 {
		t.Errorf("missing-duration stats = %+v, want {2 300 150}", got)
	}
}
