// Package mcp exposes the workout data over the Model Context Protocol so
// assistants can query exercises, history, and stats.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stridefit/stride/internal/ai"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return "local"
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered. The
// coach may be nil, in which case the guidance tool reports it is
// unavailable.
func New(ds DataSource, coach ai.Coach, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Stride", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Stride workout tracking server. Query the exercise catalog, workout history, and training stats. Workout data is scoped to the requesting user."),
	)

	h := &handlers{ds: ds, coach: coach, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetUserStats, Handler: h.getUserStats},
		server.ServerTool{Tool: toolGetExerciseGuidance, Handler: h.getExerciseGuidance},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds    DataSource
	coach ai.Coach
	log   *slog.Logger
}

// --- Resource definitions ---

var resExerciseCatalog = mcp.NewResource(
	"stride://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All active exercises with difficulty, description, and media links"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"stride://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The requesting user's most recent workouts with exercises and sets"),
	mcp.WithMIMEType("application/json"),
)
