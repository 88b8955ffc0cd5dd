package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
	"github.com/stridefit/stride/internal/storage"
)

type saveWorkoutRequest struct {
	WorkoutData models.WorkoutData `json:"workoutData"`
}

func (s *Server) handleSaveWorkout(w http.ResponseWriter, r *http.Request) {
	var req saveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if msg := validateWorkoutData(req.WorkoutData); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	workoutID, err := s.db.InsertWorkout(r.Context(), req.WorkoutData)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "referenced exercise not found"})
		return
	}
	if err != nil {
		s.log.Error("save workout failed", "user", req.WorkoutData.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save workout"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"workoutId": workoutID,
		"message":   "Workout saved successfully",
	})
}

// validateWorkoutData returns an error message for a malformed submission,
// or "" when the document is acceptable. Nothing is written on failure.
func validateWorkoutData(data models.WorkoutData) string {
	switch {
	case data.UserID == "":
		return "userId is required"
	case data.Date.IsZero():
		return "date is required"
	case data.Duration <= 0:
		return "duration must be a positive number of seconds"
	case len(data.Exercises) == 0:
		return "at least one exercise is required"
	}
	for _, entry := range data.Exercises {
		if entry.ExerciseRef == uuid.Nil {
			return "exercise reference is required"
		}
		if len(entry.Sets) == 0 {
			return "every exercise needs at least one set"
		}
		for _, set := range entry.Sets {
			if set.Reps <= 0 {
				return "set reps must be a positive integer"
			}
			if set.Weight < 0 {
				return "set weight must not be negative"
			}
			if set.WeightUnit != "kg" && set.WeightUnit != "lbs" {
				return "set weight unit must be kg or lbs"
			}
		}
	}
	return ""
}

type deleteWorkoutRequest struct {
	WorkoutID uuid.UUID `json:"workoutId"`
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	var req deleteWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.WorkoutID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workoutId is required"})
		return
	}

	err := s.db.DeleteWorkout(r.Context(), req.WorkoutID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		s.log.Error("delete workout failed", "workout", req.WorkoutID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete workout"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Workout deleted successfully",
	})
}

type guidanceRequest struct {
	ExerciseName string `json:"exerciseName"`
}

func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	var req guidanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.ExerciseName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Exercise name is required"})
		return
	}
	if s.coach == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "AI guidance is not configured"})
		return
	}

	text, err := s.coach.Guidance(r.Context(), req.ExerciseName)
	if err != nil {
		s.log.Error("guidance generation failed", "exercise", req.ExerciseName, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to generate AI guidance"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": text})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		exercises = filterExercises(exercises, q)
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

// filterExercises keeps exercises whose name contains the query,
// case-insensitively.
func filterExercises(exercises []models.Exercise, query string) []models.Exercise {
	query = strings.ToLower(query)
	var out []models.Exercise
	for _, ex := range exercises {
		if strings.Contains(strings.ToLower(ex.Name), query) {
			out = append(out, ex)
		}
	}
	return out
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	ex, err := s.db.GetExercise(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleGetExerciseByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name parameter required"})
		return
	}

	ex, err := s.db.GetExerciseByName(r.Context(), name)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user parameter required"})
		return
	}

	workouts, err := s.db.ListWorkoutsByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	workout, err := s.db.GetWorkout(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	stats, err := s.db.GetUserStats(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
