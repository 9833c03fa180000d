package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/handler/http/middleware"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler, legalParamsHandler LegalParamsHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nexo-seguridad"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		// Requires authentication and a company-scoped token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireCompany)

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/employer-cost", payrollHandler.ComputeEmployerCost)
				r.Post("/simulate", payrollHandler.SimulatePayslip)

				r.Route("/simulations", func(r chi.Router) {
					r.Get("/", payrollHandler.ListSimulations)
					r.Get("/{id}", payrollHandler.GetSimulation)
				})
			})

			r.Route("/legal-parameters", func(r chi.Router) {
				r.Get("/active", legalParamsHandler.GetActiveVersion)
				r.Get("/indexes", legalParamsHandler.GetCurrentIndexes)

				r.Route("/versions", func(r chi.Router) {
					r.Get("/", legalParamsHandler.ListVersions)
					r.Get("/by-date", legalParamsHandler.GetVersionByDate)
					r.Get("/{id}", legalParamsHandler.GetVersion)
				})
			})
		})
	})
	return r
}
