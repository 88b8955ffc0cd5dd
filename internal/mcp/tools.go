package mcp

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stridefit/stride/internal/models"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the active exercise catalog. Returns name, difficulty, and description for each exercise."),
	mcp.WithString("query", mcp.Description("Filter by name (case-insensitive partial match, e.g. 'press')")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List a user's workouts, newest first. Each workout includes its exercises and logged sets."),
	mcp.WithString("user", mcp.Description("User ID. Defaults to the requesting user.")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one workout in full detail by ID."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID (UUID)")),
)

var toolGetUserStats = mcp.NewTool("get_user_stats",
	mcp.WithDescription("Get a user's aggregate training numbers: total workouts, total time, and average workout duration."),
	mcp.WithString("user", mcp.Description("User ID. Defaults to the requesting user.")),
)

var toolGetExerciseGuidance = mcp.NewTool("get_exercise_guidance",
	mcp.WithDescription("Generate AI coaching guidance for an exercise: technique, form cues, common mistakes, and variations."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Bench Press')")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if query := req.GetString("query", ""); query != "" {
		query = strings.ToLower(query)
		var filtered []models.Exercise
		for _, ex := range exercises {
			if strings.Contains(strings.ToLower(ex.Name), query) {
				filtered = append(filtered, ex)
			}
		}
		exercises = filtered
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := req.GetString("user", "")
	if userID == "" {
		userID = UserIDFromContext(ctx)
	}

	workouts, err := h.ds.ListWorkoutsByUser(ctx, userID)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID: " + err.Error()), nil
	}

	workout, err := h.ds.GetWorkout(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getUserStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := req.GetString("user", "")
	if userID == "" {
		userID = UserIDFromContext(ctx)
	}

	stats, err := h.ds.GetUserStats(ctx, userID)
	if err != nil {
		h.log.Error("mcp get_user_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseGuidance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	if h.coach == nil {
		return mcp.NewToolResultError("AI guidance is not configured"), nil
	}

	text, err := h.coach.Guidance(ctx, name)
	if err != nil {
		h.log.Error("mcp get_exercise_guidance", "error", err)
		return mcp.NewToolResultError("guidance failed: " + err.Error()), nil
	}

	return mcp.NewToolResultText(text), nil
}
