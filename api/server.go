/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. CORS:          Cross-origin requests for the browser frontend
  2. RequestLogger: Structured request logging (httplog, ECS schema)
  3. Recoverer:     Panic recovery (500 instead of crash)
  4. RequestID:     Unique ID per request for tracing
  5. Heartbeat:     GET /healthz for liveness probes

ROUTE GROUPS:
  /api/records/*   Work records and their pay
  /api/pay/*       Provisional pay
  /api/months      Month list
  /api/summary/*   Monthly summary
  /api/workdays/*  Statutory working days
  /api/holidays/*  Holiday calendar
  /api/settings/*  Overtime and salary settings

SECURITY NOTE:
  No authentication middleware. The engine serves a single worker on a
  local machine.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewLogger creates the JSON logger the request logger expects.
func NewLogger(level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(slog.String("app", "overtime-engine"))
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Heartbeat("/healthz"))

	r.Route("/api", func(r chi.Router) {
		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.ListRecords)
			r.Post("/", h.CreateRecord)
			r.Delete("/", h.ClearRecords)
			r.Get("/{id}", h.GetRecord)
			r.Put("/{id}", h.UpdateRecord)
			r.Delete("/{id}", h.DeleteRecord)
			r.Get("/{id}/pay", h.GetRecordPay)
		})

		r.Post("/pay/preview", h.PreviewPay)

		r.Get("/months", h.ListMonths)
		r.Get("/summary/{month}", h.GetSummary)
		r.Get("/workdays/{month}", h.GetWorkdays)

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Get("/{date}", h.ClassifyDate)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/overtime", h.GetOvertimeSettings)
			r.Put("/overtime", h.PutOvertimeSettings)
			r.Get("/salary", h.GetSalarySettings)
			r.Put("/salary", h.PutSalarySettings)
			r.Get("/salary/examples", h.GetPremiumExamples)
		})
	})

	return r
}
