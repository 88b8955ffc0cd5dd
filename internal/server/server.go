package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stridefit/stride/internal/ai"
	"github.com/stridefit/stride/internal/storage"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	coach  ai.Coach
	log    *slog.Logger
	apiKey string
	ts     *local.Client
	router chi.Router
}

// New creates a new Server with all routes configured. coach may be nil;
// the guidance endpoint then reports the feature as unavailable.
func New(db *storage.DB, coach ai.Coach, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		coach:  coach,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale wires the tsnet local client used to resolve request
// identities. Without it every request runs as the dev identity.
func (s *Server) SetTailscale(lc *local.Client) {
	s.ts = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Mutations (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/workouts", s.handleSaveWorkout)
			r.Post("/workouts/delete", s.handleDeleteWorkout)
			r.Post("/ai/guidance", s.handleGuidance)
		})

		// Reads
		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/by-name", s.handleGetExerciseByName)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Get("/workouts", s.handleListWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Get("/users/{id}/stats", s.handleUserStats)
		r.Get("/me", s.handleMe)
	})
}
