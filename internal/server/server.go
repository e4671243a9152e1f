package server

import (
	"log/slog"
	"net/http"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *api.Service
	log    *slog.Logger
	apiKey string
	whois  WhoIser
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(svc *api.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale resolves request identities through the tailnet. Without it
// every request is attributed to the local dev user.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identify)

	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/api/v1/methods", s.handleMethods)

	s.router.Route("/api/v1/programs/{id}", func(r chi.Router) {
		r.Get("/plan", s.handlePlan)
		r.Post("/preview", s.handlePreview)

		// Writes rows; API key required
		r.With(APIKeyAuth(s.apiKey)).Post("/generate", s.handleGenerate)
	})
}
