// Command sentiment-demo trains the model once and prints a prediction for
// each text given on the command line, or for the built-in samples.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/rusafidt/Sentiment-Analyzer/internal/config"
	"github.com/rusafidt/Sentiment-Analyzer/internal/corpus"
	"github.com/rusafidt/Sentiment-Analyzer/internal/logging"
	"github.com/rusafidt/Sentiment-Analyzer/internal/models"
	"github.com/rusafidt/Sentiment-Analyzer/internal/service"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Diagnostics go to stderr so stdout carries only predictions.
	cfg.Log.Development = false
	if cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.Corpus.Download {
		client := &http.Client{Timeout: cfg.Corpus.DownloadTimeout}
		if err := corpus.Ensure(ctx, client, cfg.Corpus.URL, cfg.Corpus.Path, logger); err != nil {
			logger.Fatal("Failed to fetch corpus", zap.Error(err))
		}
	}

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
	model, err := trainer.Train(ctx)
	if err != nil {
		logger.Fatal("Failed to train model", zap.Error(err))
	}

	texts := flag.Args()
	if len(texts) == 0 {
		texts = models.DemoSamples
	}
	for _, text := range texts {
		p, err := model.Predict(text)
		if err != nil {
			logger.Fatal("Prediction failed", zap.String("text", text), zap.Error(err))
		}
		fmt.Printf("%s → %s (%.2f)\n", text, p.Label, p.Confidence)
	}
}
