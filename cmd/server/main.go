package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rusafidt/Sentiment-Analyzer/internal/config"
	"github.com/rusafidt/Sentiment-Analyzer/internal/corpus"
	"github.com/rusafidt/Sentiment-Analyzer/internal/handler"
	"github.com/rusafidt/Sentiment-Analyzer/internal/logging"
	"github.com/rusafidt/Sentiment-Analyzer/internal/repository"
	"github.com/rusafidt/Sentiment-Analyzer/internal/server"
	"github.com/rusafidt/Sentiment-Analyzer/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yml", "path to the YAML configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting Sentiment Analyzer...", zap.String("config", *configPath))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Make sure the training corpus is available
	if cfg.Corpus.Download {
		client := &http.Client{Timeout: cfg.Corpus.DownloadTimeout}
		if err := corpus.Ensure(ctx, client, cfg.Corpus.URL, cfg.Corpus.Path, logger); err != nil {
			logger.Fatal("Failed to fetch corpus", zap.String("url", cfg.Corpus.URL), zap.Error(err))
		}
	}

	// Initialize service
	trainer := service.NewTrainer(
		service.PathLoader(cfg.Corpus.Path, cfg.Corpus.Root),
		service.TrainerConfig{
			MaxFeatures: cfg.Vectorizer.MaxFeatures,
			StopWords:   cfg.Vectorizer.StopWords,
			RankBy:      cfg.Vectorizer.RankBy,
			Alpha:       cfg.Classifier.Alpha,
		},
		logger,
	)
	analyzer, err := service.NewAnalyzer(trainer, cfg.Cache.Size, logger)
	if err != nil {
		logger.Fatal("Failed to initialize analyzer", zap.Error(err))
	}

	if !cfg.Training.Background {
		if err := analyzer.Train(ctx); err != nil {
			logger.Fatal("Failed to train model", zap.String("corpus", cfg.Corpus.Path), zap.Error(err))
		}
	}

	// Initialize repository (optional)
	var repo repository.PredictionRepository
	if cfg.Database.Enabled {
		if cfg.Database.Type == repository.SQLite {
			if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
				logger.Fatal("Failed to create data directory", zap.Error(err))
			}
		}
		db, err := repository.Open(cfg.Database.Type, cfg.Database.Path, logger)
		if err != nil {
			logger.Fatal("Failed to initialize repository", zap.Error(err))
		}
		defer db.Close()
		repo = repository.NewPredictionRepository(db, logger)
	}

	// Initialize HTTP handler
	apiHandler := handler.NewHandler(analyzer, repo, logger)

	// Setup Gin router
	gin.SetMode(cfg.Server.Mode)
	srv := server.NewServer(cfg, apiHandler, logger)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	if cfg.Training.Background {
		go func() {
			if err := analyzer.Train(ctx); err != nil && ctx.Err() == nil {
				logger.Fatal("Failed to train model", zap.String("corpus", cfg.Corpus.Path), zap.Error(err))
			}
		}()
	}

	logger.Info("Sentiment Analyzer is running",
		zap.String("address", cfg.Addr()),
		zap.Bool("background_training", cfg.Training.Background),
		zap.Bool("prediction_log", repo != nil))

	// Wait for interrupt signal
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
