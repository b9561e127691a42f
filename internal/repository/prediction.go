package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rusafidt/Sentiment-Analyzer/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// PredictionRepository stores served predictions.
type PredictionRepository interface {
	Save(ctx context.Context, rec *models.PredictionRecord) error
	Recent(ctx context.Context, limit int) ([]*models.PredictionRecord, error)
	Stats(ctx context.Context) (*models.PredictionStats, error)
}

type predictionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPredictionRepository creates a prediction repository on db.
func NewPredictionRepository(db *sqlx.DB, logger *zap.Logger) PredictionRepository {
	return &predictionRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts rec, filling in ID and CreatedAt when empty.
func (r *predictionRepository) Save(ctx context.Context, rec *models.PredictionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO predictions (id, text, sentiment, confidence, model_id, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Text,
		rec.Sentiment,
		rec.Confidence,
		rec.ModelID,
		rec.RequestID,
		rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save prediction", zap.String("id", rec.ID), zap.Error(err))
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// Recent returns up to limit predictions, newest first.
func (r *predictionRepository) Recent(ctx context.Context, limit int) ([]*models.PredictionRecord, error) {
	query := r.db.Rebind(`
		SELECT id, text, sentiment, confidence, model_id, request_id, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT ?
	`)

	records := []*models.PredictionRecord{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		r.logger.Error("Failed to get recent predictions", zap.Int("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("failed to get predictions: %w", err)
	}
	return records, nil
}

// Stats counts predictions per sentiment and averages their confidence.
func (r *predictionRepository) Stats(ctx context.Context) (*models.PredictionStats, error) {
	var rows []struct {
		Sentiment     string  `db:"sentiment"`
		Count         int     `db:"count"`
		ConfidenceSum float64 `db:"confidence_sum"`
	}
	query := `
		SELECT sentiment, COUNT(*) AS count, SUM(confidence) AS confidence_sum
		FROM predictions
		GROUP BY sentiment
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to get prediction stats", zap.Error(err))
		return nil, fmt.Errorf("failed to get prediction stats: %w", err)
	}

	stats := &models.PredictionStats{BySentiment: make(map[string]int)}
	sum := 0.0
	for _, row := range rows {
		stats.BySentiment[row.Sentiment] = row.Count
		stats.Total += row.Count
		sum += row.ConfidenceSum
	}
	if stats.Total > 0 {
		stats.AverageConfidence = sum / float64(stats.Total)
	}
	return stats, nil
}
