package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterConfig carries the settings the router needs from configuration.
type RouterConfig struct {
	Env            string
	AllowedOrigins []string
	// PublicDir holds public artifacts and is served under /files/public.
	// Empty disables it.
	PublicDir string
}

func NewRouter(cfg RouterConfig, telegramHandler TelegramHandler, reportHandler ReportHandler, reminderHandler ReminderHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.PublicDir != "" {
		r.Handle("/files/public/*", http.StripPrefix("/files/public/", http.FileServer(http.Dir(cfg.PublicDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/telegram/webhook", telegramHandler.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Route("/reports", func(r chi.Router) {
				r.Get("/employee-timesheet", reportHandler.GetEmployeeTimesheetReport)
				r.Post("/missing-timesheets", reportHandler.GenerateMissingTimesheets)
				r.Post("/weekly-pending", reminderHandler.TriggerWeeklyPendingReport)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Post("/daily", reminderHandler.TriggerDailyReminder)
				r.Post("/pending", reminderHandler.TriggerPendingReminder)
			})
		})
	})
	return r
}
