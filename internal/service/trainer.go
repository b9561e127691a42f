package service

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand"
	"time"

	"github.com/rusafidt/Sentiment-Analyzer/internal/classifier"
	"github.com/rusafidt/Sentiment-Analyzer/internal/corpus"
	"github.com/rusafidt/Sentiment-Analyzer/internal/models"
	"github.com/rusafidt/Sentiment-Analyzer/internal/textproc"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentLoader supplies the labeled training corpus.
type DocumentLoader func(ctx context.Context) ([]corpus.Document, error)

// FSLoader loads the corpus found under root in fsys.
func FSLoader(fsys fs.FS, root string) DocumentLoader {
	return func(ctx context.Context) ([]corpus.Document, error) {
		return corpus.Load(fsys, root)
	}
}

// PathLoader opens a corpus directory or archive at path and loads root from it.
func PathLoader(path, root string) DocumentLoader {
	return func(ctx context.Context) ([]corpus.Document, error) {
		fsys, closer, err := corpus.Open(path)
		if err != nil {
			return nil, err
		}
		defer closer.Close()
		return corpus.Load(fsys, root)
	}
}

// TrainerConfig holds the vectorizer and classifier settings.
type TrainerConfig struct {
	MaxFeatures int
	StopWords   string
	RankBy      string
	Alpha       float64
}

// DefaultTrainerConfig matches the service defaults.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		MaxFeatures: 3000,
		StopWords:   "english",
		RankBy:      string(textproc.RankTermFrequency),
		Alpha:       1.0,
	}
}

// Trainer fits a vectorizer and classifier pair from the corpus.
type Trainer struct {
	load    DocumentLoader
	config  TrainerConfig
	shuffle func(n int, swap func(i, j int))
	logger  *zap.Logger
}

// NewTrainer creates a trainer. Document order is shuffled with an unseeded
// generator, so repeated trainings see different orders.
func NewTrainer(load DocumentLoader, config TrainerConfig, logger *zap.Logger) *Trainer {
	return &Trainer{
		load:    load,
		config:  config,
		shuffle: rand.Shuffle,
		logger:  logger,
	}
}

// Train loads the corpus and fits a model. The corpus must have exactly two categories.
func (t *Trainer) Train(ctx context.Context) (*Model, error) {
	start := time.Now()

	docs, err := t.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	categories := make(map[string]struct{})
	for _, d := range docs {
		categories[d.Category] = struct{}{}
	}
	if len(categories) != 2 {
		return nil, fmt.Errorf("corpus must have exactly two categories, found %d", len(categories))
	}

	t.shuffle(len(docs), func(i, j int) {
		docs[i], docs[j] = docs[j], docs[i]
	})

	texts := make([]string, len(docs))
	labels := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text()
		labels[i] = d.Category
	}

	stop, err := textproc.NewStopList(t.config.StopWords)
	if err != nil {
		return nil, err
	}
	vectorizer, err := textproc.NewCountVectorizer(textproc.NewAnalyzer(stop), t.config.MaxFeatures, textproc.RankBy(t.config.RankBy))
	if err != nil {
		return nil, err
	}

	X, err := vectorizer.Fit(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to fit vocabulary: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nb := classifier.NewMultinomialNB(t.config.Alpha)
	if err := nb.Fit(X, labels, vectorizer.Size()); err != nil {
		return nil, fmt.Errorf("failed to fit classifier: %w", err)
	}

	elapsed := time.Since(start)
	info := models.ModelInfo{
		ID:             uuid.New().String(),
		Classes:        nb.Classes(),
		VocabularySize: vectorizer.Size(),
		Documents:      len(docs),
		ClassCounts:    nb.ClassCounts(),
		TrainedAt:      time.Now().UTC(),
		TrainingTimeMs: float64(elapsed.Microseconds()) / 1000,
	}

	t.logger.Info("Model training completed",
		zap.String("model_id", info.ID),
		zap.Int("documents", info.Documents),
		zap.Int("vocabulary_size", info.VocabularySize),
		zap.Strings("classes", info.Classes),
		zap.Duration("elapsed", elapsed))

	return &Model{vectorizer: vectorizer, classifier: nb, info: info}, nil
}
