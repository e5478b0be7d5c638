package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golift/backend/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured. The jwtSecret is
// shared with the auth service that issues the tokens.
func New(db *storage.DB, jwtSecret string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes(jwtSecret)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes keeps the paths the mobile client already ships with.
func (s *Server) routes(jwtSecret string) {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(JWTAuth(jwtSecret))

		// Workouts
		r.Post("/treino", s.handleCreateWorkout)
		r.Get("/treino/{userId}", s.handleListWorkouts)
		r.Get("/treino/{userId}/{treinoId}", s.handleGetWorkout)
		r.Delete("/treino/{userId}/{treinoId}", s.handleDeleteWorkout)

		// Session lifecycle
		r.Post("/treino/{userId}/{treinoId}/iniciar", s.handleStartSession)
		r.Post("/treino/sessao/{sessaoId}/serie", s.handleRecordSet)
		r.Post("/treino/sessao/{sessaoId}/finalizar", s.handleFinalizeSession)
		r.Delete("/treino/sessao/{sessaoId}/cancelar", s.handleCancelSession)
		r.Post("/treino/sessao/guardar", s.handleSaveSession)

		// History
		r.Get("/sessoes/{userId}", s.handleListSessions)
		r.Get("/sessao/detalhes/{sessaoId}", s.handleSessionDetail)
		r.Get("/lastWorkout/{userId}", s.handleLastWorkout)

		// Derived metrics
		r.Get("/recordes/{userId}", s.handleRecords)
		r.Get("/streak/{userId}", s.handleStreak)

		// Catalog
		r.Get("/exercicios", s.handleListExercises)
	})
}
