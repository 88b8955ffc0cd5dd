package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
)

// newTestServer routes requests to handler functions keyed by path.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestFetchExercises parses the catalog response.
func TestFetchExercises(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.Exercise{
				{ID: uuid.New(), Name: "Squat", Difficulty: models.DifficultyBeginner, IsActive: true},
				{ID: uuid.New(), Name: "Bench Press", Difficulty: models.DifficultyIntermediate, IsActive: true},
			})
		},
	})
	defer ts.Close()

	c := New(ts.URL, "")
	exercises, err := c.FetchExercises(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 2 || exercises[0].Name != "Squat" {
		t.Errorf("exercises = %+v", exercises)
	}
}

// TestFetchExerciseByName sends the name as a query parameter.
func TestFetchExerciseByName(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/by-name": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("name"); got != "Bench Press" {
				t.Errorf("name = %q, want Bench Press", got)
			}
			writeTestJSON(t, w, models.Exercise{ID: id, Name: "Bench Press"})
		},
	})
	defer ts.Close()

	c := New(ts.URL, "")
	ex, err := c.FetchExerciseByName(context.Background(), "Bench Press")
	if err != nil {
		t.Fatal(err)
	}
	if ex.ID != id {
		t.Errorf("id = %v, want %v", ex.ID, id)
	}
}

// TestSaveWorkout wraps the document in workoutData, sends the API key, and
// returns the server-assigned ID.
func TestSaveWorkout(t *testing.T) {
	workoutID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-API-Key"); got != "test-key" {
				t.Errorf("api key = %q, want test-key", got)
			}
			var body struct {
				WorkoutData models.WorkoutData `json:"workoutData"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.WorkoutData.UserID != "user_1" {
				t.Errorf("userId = %q", body.WorkoutData.UserID)
			}
			writeTestJSON(t, w, map[string]any{"success": true, "workoutId": workoutID})
		},
	})
	defer ts.Close()

	c := New(ts.URL, "test-key")
	got, err := c.SaveWorkout(context.Background(), models.WorkoutData{
		UserID: "user_1", Date: time.Now(), Duration: 60,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != workoutID {
		t.Errorf("workoutId = %v, want %v", got, workoutID)
	}
}

// TestSaveWorkoutServerError surfaces non-2xx responses as errors without
// any retry (a second request would trip the unexpected-path check).
func TestSaveWorkoutServerError(t *testing.T) {
	calls := 0
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
			writeTestJSON(t, w, map[string]string{"error": "failed to save workout"})
		},
	})
	defer ts.Close()

	c := New(ts.URL, "k")
	if _, err := c.SaveWorkout(context.Background(), models.WorkoutData{}); err == nil {
		t.Fatal("expected error on 500")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1 (no automatic retries)", calls)
	}
}

// TestDeleteWorkout posts the workout ID.
func TestDeleteWorkout(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts/delete": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]uuid.UUID
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["workoutId"] != id {
				t.Errorf("workoutId = %v, want %v", body["workoutId"], id)
			}
			writeTestJSON(t, w, map[string]any{"success": true, "message": "Workout deleted successfully"})
		},
	})
	defer ts.Close()

	c := New(ts.URL, "k")
	if err := c.DeleteWorkout(context.Background(), id); err != nil {
		t.Fatal(err)
	}
}

// TestGuidance returns the message field.
func TestGuidance(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/ai/guidance": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]string{"message": "## Setup"})
		},
	})
	defer ts.Close()

	c := New(ts.URL, "k")
	msg, err := c.Guidance(context.Background(), "Squat")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "## Setup" {
		t.Errorf("message = %q", msg)
	}
}

// TestFetchWorkoutsQuery sends the user as a query parameter.
func TestFetchWorkoutsQuery(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("user"); got != "user_1" {
				t.Errorf("user = %q", got)
			}
			writeTestJSON(t, w, []models.Workout{})
		},
	})
	defer ts.Close()

	c := New(ts.URL, "")
	if _, err := c.FetchWorkouts(context.Background(), "user_1"); err != nil {
		t.Fatal(err)
	}
}
