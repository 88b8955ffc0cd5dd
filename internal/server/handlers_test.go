package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
)

// TestValidateWorkoutData walks the fail-fast validation rules: any
// malformed submission must be rejected before anything touches the store.
func TestValidateWorkoutData(t *testing.T) {
	valid := models.WorkoutData{
		Type:     "workout",
		UserID:   "user_123",
		Date:     time.Now(),
		Duration: 1800,
		Exercises: []models.WorkoutEntry{{
			ExerciseRef: uuid.New(),
			Sets:        []models.WorkoutSet{{Reps: 10, Weight: 60, WeightUnit: "kg"}},
		}},
	}
	if msg := validateWorkoutData(valid); msg != "" {
		t.Fatalf("valid data rejected: %s", msg)
	}

	cases := []struct {
		name   string
		mutate func(*models.WorkoutData)
	}{
		{"missing user", func(d *models.WorkoutData) { d.UserID = "" }},
		{"missing date", func(d *models.WorkoutData) { d.Date = time.Time{} }},
		{"zero duration", func(d *models.WorkoutData) { d.Duration = 0 }},
		{"no exercises", func(d *models.WorkoutData) { d.Exercises = nil }},
		{"nil exercise ref", func(d *models.WorkoutData) { d.Exercises[0].ExerciseRef = uuid.Nil }},
		{"no sets", func(d *models.WorkoutData) { d.Exercises[0].Sets = nil }},
		{"zero reps", func(d *models.WorkoutData) { d.Exercises[0].Sets[0].Reps = 0 }},
		{"negative weight", func(d *models.WorkoutData) { d.Exercises[0].Sets[0].Weight = -1 }},
		{"bad unit", func(d *models.WorkoutData) { d.Exercises[0].Sets[0].WeightUnit = "stone" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data := valid
			data.Exercises = []models.WorkoutEntry{{
				ExerciseRef: valid.Exercises[0].ExerciseRef,
				Sets:        []models.WorkoutSet{valid.Exercises[0].Sets[0]},
			}}
			c.mutate(&data)
			if msg := validateWorkoutData(data); msg == "" {
				t.Error("expected validation error, got none")
			}
		})
	}
}

// TestFilterExercises verifies the case-insensitive substring filter.
func TestFilterExercises(t *testing.T) {
	catalog := []models.Exercise{
		{Name: "Squat"},
		{Name: "Bench Press"},
		{Name: "Deadlift"},
	}

	got := filterExercises(catalog, "be")
	if len(got) != 1 || got[0].Name != "Bench Press" {
		t.Errorf("filter(be) = %v", exerciseNames(got))
	}

	if got := filterExercises(catalog, "PRESS"); len(got) != 1 {
		t.Errorf("filter is not case-insensitive: %v", exerciseNames(got))
	}
	if got := filterExercises(catalog, "xyz"); len(got) != 0 {
		t.Errorf("filter(xyz) = %v", exerciseNames(got))
	}
}

func exerciseNames(exercises []models.Exercise) []string {
	names := make([]string, len(exercises))
	for i, ex := range exercises {
		names[i] = ex.Name
	}
	return names
}

// stubCoach returns canned guidance or a canned error.
type stubCoach struct {
	text string
	err  error
}

func (c *stubCoach) Guidance(ctx context.Context, name string) (string, error) {
	return c.text, c.err
}

// TestHandleGuidanceMissingName returns 400 when exerciseName is absent.
func TestHandleGuidanceMissingName(t *testing.T) {
	s := &Server{log: slog.Default(), coach: &stubCoach{}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/guidance", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	s.handleGuidance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// TestHandleGuidanceSuccess returns the generated text under "message".
func TestHandleGuidanceSuccess(t *testing.T) {
	s := &Server{log: slog.Default(), coach: &stubCoach{text: "## Form cues"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/guidance",
		strings.NewReader(`{"exerciseName":"Bench Press"}`))
	rec := httptest.NewRecorder()

	s.handleGuidance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "## Form cues" {
		t.Errorf("message = %q", body["message"])
	}
}

// TestHandleGuidanceUpstreamFailure maps generator errors to 500.
func TestHandleGuidanceUpstreamFailure(t *testing.T) {
	s := &Server{log: slog.Default(), coach: &stubCoach{err: errors.New("quota exceeded")}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/guidance",
		strings.NewReader(`{"exerciseName":"Squat"}`))
	rec := httptest.NewRecorder()

	s.handleGuidance(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

// TestHandleGuidanceUnconfigured reports 500 when no coach is wired.
func TestHandleGuidanceUnconfigured(t *testing.T) {
	s := &Server{log: slog.Default()}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/guidance",
		strings.NewReader(`{"exerciseName":"Squat"}`))
	rec := httptest.NewRecorder()

	s.handleGuidance(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

// TestHandleMe returns the identity stored by the middleware.
func TestHandleMe(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Login != "alice@example.com" || info.DisplayName != "Alice" {
		t.Errorf("info = %+v", info)
	}
}

// TestHandleMeDefault falls back to the dev identity when no middleware ran.
func TestHandleMeDefault(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want local", info.Login)
	}
}
