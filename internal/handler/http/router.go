package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/senam-dashboard/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type Handlers struct {
	Dashboard DashboardHandler
	Export    ExportHandler
	Upload    UploadHandler
	Health    HealthHandler
}

func NewRouter(appCfg config.AppConfig, handlers Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appCfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "senam-dashboard"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appCfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
		// The event stream stays open for the whole session
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/dashboard/stream"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", handlers.Health.Check)

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/data/clear", handlers.Dashboard.ClearData)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", handlers.Dashboard.GetDashboard)
			r.Get("/stream", handlers.Dashboard.Stream)
			r.Post("/reload", handlers.Dashboard.Reload)
			r.Post("/search", handlers.Dashboard.Search)

			r.Put("/filters", handlers.Dashboard.ApplyFilters)
			r.Delete("/filters", handlers.Dashboard.ResetFilters)
			r.Put("/date-range", handlers.Dashboard.SetDateRange)
			r.Delete("/date-range", handlers.Dashboard.ClearDateRange)

			r.Put("/page", handlers.Dashboard.ChangePage)
			r.Put("/page-size", handlers.Dashboard.ChangePageSize)
			r.Post("/sort", handlers.Dashboard.Sort)
			r.Put("/chart-kind", handlers.Dashboard.SetChartKind)
			r.Put("/shift", handlers.Dashboard.SetShiftMode)
			r.Put("/group-shift", handlers.Dashboard.SetShiftFilter)

			r.Route("/selection", func(r chi.Router) {
				r.Get("/", handlers.Dashboard.GetSelection)
				r.Delete("/", handlers.Dashboard.ClearSelection)
				r.Put("/page", handlers.Dashboard.SelectPage)
				r.Post("/{id}", handlers.Dashboard.ToggleSelection)
			})

			r.Put("/detail/{id}", handlers.Dashboard.OpenDetail)
			r.Delete("/detail", handlers.Dashboard.CloseDetail)
		})

		r.Route("/exports", func(r chi.Router) {
			r.Get("/", handlers.Export.ListLogs)
			r.Get("/files/{name}", handlers.Export.Download)
			r.Post("/{intent}", handlers.Export.Export)
		})

		r.Route("/upload", func(r chi.Router) {
			r.Get("/", handlers.Upload.GetStatus)
			r.Post("/file", handlers.Upload.SelectFile)
			r.Delete("/file", handlers.Upload.ClearFile)
			r.Post("/submit", handlers.Upload.Submit)
		})
	})
	return r
}
