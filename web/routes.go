/* routes.go
 * Contains the router construction for the web server
 * Authors: scouting-admin contributors
 */

package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewServer creates a Server from the config, falling back to slog.Default when no logger is set
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{api: cfg.API, logger: logger}
}

// Routes builds the chi router with middleware and every endpoint bound to s
// Preconditions: s has a non-nil api
// Postconditions: Returns the handler serving all routes
func (s *Server) Routes(corsOrigins []string) http.Handler {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.Health)

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/", s.ListSeasons)
		r.Post("/", s.CreateSeason)

		r.Route("/{year}", func(r chi.Router) {
			r.Get("/params", s.GetAllParams)
			r.Get("/params/{mode}", s.GetParams)
			r.Put("/params/{mode}", s.SetParam)

			r.Get("/users", s.ListUsers)
			r.Post("/users", s.CreateUser)
			r.Put("/users/{username}", s.UpdateUser)
			r.Delete("/users/{username}", s.DeleteUser)
			r.Get("/usernames", s.ListUsernames)

			r.Get("/scouting-teams", s.ListScoutingTeams)
			r.Get("/scouters", s.ListScouters)
			r.Post("/scouters", s.AddScouter)
			r.Get("/quals", s.ListQuals)
		})
	})

	return router
}
