package http

import (
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/logging"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, analyticsHandler AnalyticsHandler, snapshotHandler SnapshotHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	r.Use(logging.Middleware(logger))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(chiMiddleware.Timeout(timeout))

			r.Route("/hr-analytics", func(r chi.Router) {
				r.Get("/data", analyticsHandler.QueryData)
				r.Post("/data", analyticsHandler.GetData)
				r.Get("/departments", analyticsHandler.ListDepartments)
				r.Get("/employees/{id}/metrics", analyticsHandler.GetEmployeeMetrics)
				r.Get("/export", analyticsHandler.Export)

				r.Route("/snapshots", func(r chi.Router) {
					r.Get("/", snapshotHandler.List)
					r.Get("/{id}", snapshotHandler.GetByID)

					// Manager or owner only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/", snapshotHandler.Create)
						r.Post("/{id}/refresh", snapshotHandler.Refresh)
					})
				})
			})
		})
	})
	return r
}

// NewHTTPLogger builds the JSON logger shared by the router and services,
// with attribute names following the ECS schema used for request logs.
func NewHTTPLogger(w io.Writer, level slog.Level, attrs ...any) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return logging.NewStructuredLogger(w, level, logFormat.ReplaceAttr).With(attrs...)
}
