package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ZaidRasheed/backend-admin-panel/internal/logger"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/api/handlers"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/api/middleware"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/authz"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/metrics"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/teacher"
)

// Dependencies carries the collaborators the router wires into handlers.
type Dependencies struct {
	Authorizer *authz.Authorizer
	Teachers   *teacher.Service
	Metrics    *metrics.TeacherOperations // nil when metrics are disabled
}

// NewRouter creates the chi router with all middleware and routes.
//
// The four teacher endpoints sit behind the administrator gate; /health is
// unauthenticated. Every unmatched path or method returns the 404 body.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", handlers.NewHealthHandler().Liveness)

	th := handlers.NewTeacherHandler(deps.Teachers, deps.Metrics)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(deps.Authorizer, deps.Metrics))
		r.Post("/add_teacher", th.Create)
		r.Delete("/delete_teacher", th.Delete)
		r.Put("/edit_teacher_name", th.Rename)
		r.Put("/enable_disable_teacher", th.SetEnabled)
	})

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	return r
}

// requestLogger logs request start at DEBUG and completion at INFO.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimw.GetReqID(r.Context())

		logger.Debug("request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
