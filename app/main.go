package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kristindyulgeryan/stock-market-app/app/api"
	"github.com/kristindyulgeryan/stock-market-app/app/cfg"
	"github.com/kristindyulgeryan/stock-market-app/app/database"
	"github.com/kristindyulgeryan/stock-market-app/app/digest"
	"github.com/kristindyulgeryan/stock-market-app/app/news"
	"github.com/kristindyulgeryan/stock-market-app/app/tasks"
)

func main() {
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting Signalist server", "version", appCfg.Version)

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := database.NewUserRepository(db)
	watchlistRepo := database.NewWatchlistRepository(db)

	finnhub, err := news.NewFinnhubClient(appCfg.FinnhubAPIKey, appCfg.UserAgent)
	if err != nil {
		slog.Error("Failed to initialize news client", "error", err)
		os.Exit(1)
	}
	aggregator := news.NewAggregator(finnhub, appCfg.NewsLookbackDays)

	prompts, err := digest.LoadPrompts()
	if err != nil {
		slog.Error("Failed to load prompt templates", "error", err)
		os.Exit(1)
	}

	generator, err := digest.NewGeminiGenerator(context.Background(), appCfg.GeminiAPIKey)
	if err != nil {
		slog.Error("Failed to initialize text generator", "error", err)
		os.Exit(1)
	}

	mailer := digest.NewSMTPMailer(appCfg.SMTPHost, appCfg.SMTPPort,
		appCfg.SMTPUser, appCfg.SMTPPassword, appCfg.EmailFrom)

	orchestrator := digest.NewOrchestrator(watchlistRepo, aggregator, generator,
		mailer, prompts, appCfg.UserAgent)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "digest_hour_utc", appCfg.DigestHourUTC)
	scheduler := tasks.NewScheduler(userRepo, orchestrator)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(userRepo, watchlistRepo, aggregator, scheduler)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
