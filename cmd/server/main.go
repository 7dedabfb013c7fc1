package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/nihaocards/internal/api"
	"github.com/vytor/nihaocards/internal/config"
	"github.com/vytor/nihaocards/internal/db"
	"github.com/vytor/nihaocards/internal/importer"
	"github.com/vytor/nihaocards/internal/jobs"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/repository/sqlite"
	"github.com/vytor/nihaocards/internal/rewards"
	"github.com/vytor/nihaocards/internal/services"
	"github.com/vytor/nihaocards/internal/session"
	"github.com/vytor/nihaocards/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("NihaoCards Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("worker_queue_size=%d", cfg.WorkerQueueSize)
	log.Debug("timers flashcard=%d minigame=%d type=%d", cfg.DefaultFlashcardTimer, cfg.DefaultMiniGameTimer, cfg.DefaultTypeTimer)
	log.Debug("minigame_resets_level=%t", cfg.MiniGameResetsLevel)
	log.Debug("leaderboard_limit=%d", cfg.LeaderboardLimit)
	log.Debug("session_idle_timeout=%dm", cfg.SessionIdleTimeout)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	scoreRepo := sqlite.NewScoreRepository(database.DB)
	playedRepo := sqlite.NewPlayedRepository(database.DB)

	// Sticker unlocks run off the request path
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	jobQueue := jobs.NewWorkerQueue(pool, rewards.NewUnlocker(cfg.RewardsRPCURL))

	// Initialize services
	settingsService := services.NewSettingsService(
		sqlite.NewSettingsRepository(database.DB),
		progressRepo,
		services.Timers{
			Flashcard: cfg.DefaultFlashcardTimer,
			MiniGame:  cfg.DefaultMiniGameTimer,
			Type:      cfg.DefaultTypeTimer,
		},
	)
	sessionService := services.NewSessionService(services.SessionDeps{
		Cards:    cardRepo,
		Progress: progressRepo,
		Scores:   scoreRepo,
		Answers:  sqlite.NewAnswerRepository(database.DB),
		Played:   session.NewFallbackStore(playedRepo),
		Settings: settingsService,
	}, services.SessionOptions{
		MiniGameResetsLevel: cfg.MiniGameResetsLevel,
		Seed:                cfg.ShuffleSeed,
	})

	srv := &api.Server{
		DB:               database.DB,
		UserService:      services.NewUserService(userRepo),
		CatalogService:   services.NewCatalogService(cardRepo, importer.DefaultConfig()),
		SelectionService: services.NewSelectionService(cardRepo, progressRepo),
		SettingsService:  settingsService,
		SessionService:   sessionService,
		ScoreService:     services.NewScoreService(scoreRepo, progressRepo, cfg.LeaderboardLimit),
		WrongWordService: services.NewWrongWordService(sqlite.NewWrongWordRepository(database.DB)),
		RewardService:    services.NewRewardService(sqlite.NewRewardRepository(database.DB), jobQueue),
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	// Idle session reaper
	idle := time.Duration(cfg.SessionIdleTimeout) * time.Minute
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(1).Minute().Do(func() {
		sessionService.EvictIdle(ctx, idle)
	}); err != nil {
		log.Error("failed to schedule session reaper: %v", err)
		os.Exit(1)
	}
	scheduler.StartAsync()

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping session reaper")
	scheduler.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("closing live sessions")
	sessionService.Close()

	// Let queued unlocks drain before the context goes away
	log.Debug("stopping worker pool")
	pool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("NihaoCards Server Stopped")
	log.Info("===========================================")
}
