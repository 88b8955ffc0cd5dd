package models

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty levels for catalog exercises.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Exercise is a reusable catalog exercise definition.
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ExerciseRef is the exercise reference embedded in a persisted workout.
type ExerciseRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// WorkoutSet is one logged set within a persisted workout exercise.
type WorkoutSet struct {
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	WeightUnit string  `json:"weightUnit"`
}

// WorkoutExercise is one exercise entry within a persisted workout.
type WorkoutExercise struct {
	Exercise ExerciseRef  `json:"exercise"`
	Sets     []WorkoutSet `json:"sets"`
}

// Workout is a persisted workout document. Created once per completed
// session, never mutated afterwards (only deleted).
type Workout struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"userId"`
	Date      time.Time         `json:"date"`
	Duration  int               `json:"duration"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// WorkoutEntry is one exercise entry in a save-workout submission.
type WorkoutEntry struct {
	ExerciseRef uuid.UUID    `json:"exerciseRef"`
	Sets        []WorkoutSet `json:"sets"`
}

// WorkoutData is the save-workout submission body.
type WorkoutData struct {
	Type      string         `json:"type"`
	UserID    string         `json:"userId"`
	Date      time.Time      `json:"date"`
	Duration  int            `json:"duration"`
	Exercises []WorkoutEntry `json:"exercises"`
}

// UserStats are the aggregate history numbers shown on the profile screen.
type UserStats struct {
	TotalWorkouts   int64   `json:"totalWorkouts"`
	TotalDuration   int64   `json:"totalDuration"`
	AverageDuration float64 `json:"averageDuration"`
}

// User is an identity row. Authentication itself is delegated to the
// identity layer; the store only records who a workout belongs to.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	LastSeen    time.Time `json:"lastSeen"`
}
