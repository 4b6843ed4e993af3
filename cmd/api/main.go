package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/config"
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	appHTTP "github.com/cmlabs-hris/senam-dashboard/internal/handler/http"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/cron"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/database"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/senamapi"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/sse"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/storage"
	"github.com/cmlabs-hris/senam-dashboard/internal/repository/memory"
	"github.com/cmlabs-hris/senam-dashboard/internal/repository/postgresql"
	exportService "github.com/cmlabs-hris/senam-dashboard/internal/service/export"
	senamService "github.com/cmlabs-hris/senam-dashboard/internal/service/senam"
	uploadService "github.com/cmlabs-hris/senam-dashboard/internal/service/upload"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	// Export history: Postgres when enabled, in memory otherwise
	var exportRepo export.Repository
	if cfg.Database.Enabled {
		db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()
		exportRepo = postgresql.NewExportLogRepository(db)
	} else {
		slog.Info("Database disabled, export history kept in memory")
		exportRepo = memory.NewExportLogRepository()
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage types: ", cfg.Storage.Type)
	}

	backend := senamapi.NewClient(cfg.Backend)
	hub := sse.NewHub()

	dashboardSvc := senamService.NewDashboardService(backend, hub, senamService.Config{
		PageSize:       cfg.Dashboard.PageSize,
		SearchDebounce: cfg.Dashboard.SearchDebounce,
		Thresholds: senam.Thresholds{
			TargetNonShift:      cfg.Dashboard.TargetNonShift,
			TargetShift:         cfg.Dashboard.TargetShift,
			YearlyCeiling:       cfg.Dashboard.YearlyCeiling,
			YearlyGoodThreshold: cfg.Dashboard.YearlyGoodThreshold,
		},
	})
	exportSvc := exportService.NewExportService(backend, dashboardSvc, fileStorage, exportRepo, exportService.Config{})
	uploadSvc := uploadService.NewUploadService(backend, dashboardSvc, uploadService.Config{
		MaxSize:     cfg.Upload.MaxSize,
		AllowedExts: cfg.Upload.AllowedExts,
		SettleDelay: cfg.Upload.SettleDelay,
		Progress: uploadService.ProgressConfig{
			Tick: cfg.Upload.ProgressTick,
			Step: cfg.Upload.ProgressStep,
			Cap:  cfg.Upload.ProgressCap,
		},
	})

	scheduler := cron.NewScheduler()
	refreshScheduled := cron.NewDashboardJobs(dashboardSvc).RegisterJobs(scheduler, cfg.Dashboard.RefreshInterval)

	router := appHTTP.NewRouter(cfg.App, appHTTP.Handlers{
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc, backend),
		Export:    appHTTP.NewExportHandler(exportSvc),
		Upload:    appHTTP.NewUploadHandler(uploadSvc, cfg.Upload.MaxRequestBytes),
		Health:    appHTTP.NewHealthHandler(backend),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return dashboardSvc.Run(gctx)
	})

	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	// The refresh job performs the first load when it is scheduled
	if !refreshScheduled {
		g.Go(func() error {
			if _, err := dashboardSvc.Reload(gctx); err != nil {
				slog.Warn("Initial dashboard load failed", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "backend", cfg.Backend.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
