package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Triage/internal/store"
)

func NewRouter(svc *Service, runs store.Store, adminToken string, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	tasks := NewTasksHandler(svc)
	admin := NewAdminHandler(runs)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tasks/analyze", tasks.Analyze)
		r.Get("/tasks/suggest", tasks.Suggest)
		r.Get("/strategies", tasks.Strategies)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/runs", admin.ListRuns)
			r.Get("/runs/{id}", admin.GetRun)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
