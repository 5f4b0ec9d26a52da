package nodesvc

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DiagnosticsMux builds the side-channel HTTP surface a node exposes next to
// its TCP protocol listener: a Prometheus scrape endpoint and a liveness
// check. This is separate from the dedup protocol itself, which never
// speaks HTTP.
func (s *Server) DiagnosticsMux() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	return r
}
