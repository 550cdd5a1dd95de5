package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/config"
	appHTTP "github.com/salesverse/salesverse-backend-go/internal/handler/http"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/cron"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/database"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/jwt"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/sse"
	"github.com/salesverse/salesverse-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/salesverse/salesverse-backend-go/internal/service/auth"
	metricService "github.com/salesverse/salesverse-backend-go/internal/service/metric"
	saleService "github.com/salesverse/salesverse-backend-go/internal/service/sale"
	shiftService "github.com/salesverse/salesverse-backend-go/internal/service/shift"
)

const (
	appName    = "salesverse"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("error applying schema: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	saleRepo := postgresql.NewSaleRepository(db)
	transactor := postgresql.NewTransactor(db)
	clk := clock.New()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	metricSvc := metricService.NewPublishingMetricService(
		metricService.NewMetricService(transactor, shiftRepo, saleRepo, clk),
		hub,
	)
	shiftSvc := shiftService.NewShiftService(shiftRepo, employeeRepo, metricSvc, clk)
	saleSvc := saleService.NewSaleService(transactor, saleRepo, shiftRepo, metricSvc, clk)
	authSvc := serviceAuth.NewAuthService(employeeRepo, JWTService, shiftSvc, clk, cfg.Shift.DefaultHours)

	router, err := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			RateLimit:   cfg.RateLimit.Rate,
			LogLevel:    cfg.SlogLevel(),
		},
		appHTTP.NewRequestLogger(appName, appVersion, cfg.App.Env, os.Stdout),
		JWTService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewSaleHandler(saleSvc),
		appHTTP.NewDailyLogHandler(shiftSvc, metricSvc),
		appHTTP.NewStreamHandler(hub),
	)
	if err != nil {
		return err
	}

	scheduler := cron.NewScheduler()
	if cfg.Repair.Enabled {
		cron.NewMetricJobs(metricSvc, clk, cfg.Repair.LookbackDays).RegisterJobs(scheduler, cfg.Repair.Interval)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
