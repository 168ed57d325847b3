package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/corp-finance-service/internal/config"
	"github.com/Dan9191/corp-finance-service/internal/corpcode"
	"github.com/Dan9191/corp-finance-service/internal/handler"
	"github.com/Dan9191/corp-finance-service/internal/integrations/dart"
	"github.com/Dan9191/corp-finance-service/internal/integrations/llm"
	"github.com/Dan9191/corp-finance-service/internal/middleware"
	"github.com/Dan9191/corp-finance-service/internal/narrator"
	"github.com/Dan9191/corp-finance-service/internal/repository"
	"github.com/Dan9191/corp-finance-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sqlx.Open(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	ctx := context.Background()
	repo := repository.NewRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatalf("Failed to prepare schema: %v", err)
	}

	// Initialize integrations
	dartClient := dart.NewClient(cfg, logger)
	if !dartClient.Enabled() {
		logger.Warn("DART_API_KEY is not set, financial statements are disabled")
	}
	gen, err := llm.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize narration backend: %v", err)
	}
	if gen == nil {
		logger.Warn("NARRATOR_API_KEY is not set, AI reports are disabled")
	}

	// Initialize layers
	svc := service.NewService(repo, dartClient, narrator.New(gen, cfg.NarratorTimeout, logger), logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Optional corp code refresh
	if cfg.CorpCodeRefreshSchedule != "" {
		loader := corpcode.NewLoader(repo, dartClient, cfg.CorpCodeXMLPath, logger)
		scheduler, err := loader.Schedule(cfg.CorpCodeRefreshSchedule)
		if err != nil {
			logger.Fatalf("Failed to schedule corp code refresh: %v", err)
		}
		defer scheduler.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Recover(logger), middleware.Logger(logger))
	h.Register(r)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// Narration may take up to NarratorTimeout on top of the statement fetch.
		WriteTimeout: cfg.NarratorTimeout + cfg.DARTTimeout + 10*time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
