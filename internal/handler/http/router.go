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

// RouterOptions carries the settings the router needs from config.
type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	// UploadsPath is served read-only under /uploads; empty disables it
	UploadsPath string
}

func NewRouter(opts RouterOptions, attendanceHandler AttendanceHandler, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsPath != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsPath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Get("/calendar", attendanceHandler.GetCalendar)
			r.With(chiMiddleware.AllowContentType("application/json")).
				Post("/calendar/compute", attendanceHandler.ComputeCalendar)
			r.Get("/roster", attendanceHandler.GetRoster)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/attendance", reportHandler.GetMonthlyAttendanceReport)
			r.Post("/attendance/export", reportHandler.ExportMonthlyAttendanceReport)
		})
	})
	return r
}
