package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/teamtrack-hq/teamtrack-backend/internal/config"
	"github.com/teamtrack-hq/teamtrack-backend/internal/handler/http/middleware"
	"github.com/teamtrack-hq/teamtrack-backend/internal/pkg/jwt"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "teamtrack-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Internal-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/records", payrollHandler.ListRecords)
				r.Get("/records/{id}", payrollHandler.GetRecord)
				r.Get("/summary", payrollHandler.GetSummary)

				// Payroll mutations are admin/hr only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole("admin", "hr"))
					r.Post("/compute", payrollHandler.Compute)
					r.Post("/records/{id}/lock", payrollHandler.Lock)
					r.Post("/records/{id}/unlock", payrollHandler.Unlock)
					r.Post("/records/{id}/approve", payrollHandler.Approve)
					r.Post("/records/{id}/mark-paid", payrollHandler.MarkPaid)
				})
			})
		})
	})

	// Internal trigger for the scheduled run, guarded by the shared token
	r.Route("/internal", func(r chi.Router) {
		r.Use(middleware.InternalToken(cfg.Internal.TriggerTokenHash))
		r.Post("/payroll/run", payrollHandler.TriggerScheduledRun)
	})

	return r
}
