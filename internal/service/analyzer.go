package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rusafidt/Sentiment-Analyzer/internal/metrics"
	"github.com/rusafidt/Sentiment-Analyzer/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
)

// State is the lifecycle stage of an Analyzer.
type State string

const (
	StatePending  State = "pending"
	StateTraining State = "training"
	StateReady    State = "ready"
	StateFailed   State = "failed"
)

// Status is a snapshot of the Analyzer lifecycle.
type Status struct {
	State State
	Err   error
	Model *models.ModelInfo
}

// SentencePrediction is the prediction for one sentence of a longer text.
type SentencePrediction struct {
	Text string
	Prediction
}

// Analyzer serves predictions from a model trained once.
type Analyzer struct {
	trainer *Trainer
	logger  *zap.Logger

	mu    sync.Mutex
	state State
	err   error

	model atomic.Pointer[Model]
	cache *lru.Cache[string, Prediction]

	splitOnce sync.Once
	splitMu   sync.Mutex
	splitter  *sentences.DefaultSentenceTokenizer
	splitErr  error
}

// NewAnalyzer creates an Analyzer in the pending state. cacheSize <= 0
// disables the prediction cache.
func NewAnalyzer(trainer *Trainer, cacheSize int, logger *zap.Logger) (*Analyzer, error) {
	a := &Analyzer{
		trainer: trainer,
		logger:  logger,
		state:   StatePending,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, Prediction](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create prediction cache: %w", err)
		}
		a.cache = cache
	}
	return a, nil
}

// Train fits the model. It may be called only once; a failure leaves the
// Analyzer in the failed state for good.
func (a *Analyzer) Train(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StatePending {
		a.mu.Unlock()
		return ErrAlreadyTrained
	}
	a.state = StateTraining
	a.mu.Unlock()

	a.logger.Info("Training sentiment model")
	start := time.Now()

	model, err := a.trainer.Train(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = StateFailed
		a.err = fmt.Errorf("%w: %v", ErrTrainingFailed, err)
		a.logger.Error("Model training failed", zap.Error(err))
		return a.err
	}

	a.model.Store(model)
	a.state = StateReady
	metrics.RecordModelTrained(model.info.VocabularySize, time.Since(start))
	return nil
}

// Ready reports whether predictions can be served.
func (a *Analyzer) Ready() bool {
	return a.model.Load() != nil
}

// Status returns the current lifecycle state.
func (a *Analyzer) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Status{State: a.state, Err: a.err}
	if m := a.model.Load(); m != nil {
		info := m.Info()
		s.Model = &info
	}
	return s
}

// ModelInfo describes the trained model.
func (a *Analyzer) ModelInfo() (models.ModelInfo, error) {
	m := a.model.Load()
	if m == nil {
		return models.ModelInfo{}, ErrModelNotReady
	}
	return m.Info(), nil
}

// Predict scores text with the trained model.
func (a *Analyzer) Predict(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	m := a.model.Load()
	if m == nil {
		metrics.RecordPredictionError("not_ready")
		return Prediction{}, ErrModelNotReady
	}
	return a.predict(m, text)
}

func (a *Analyzer) predict(m *Model, text string) (Prediction, error) {
	if a.cache != nil {
		if p, ok := a.cache.Get(text); ok {
			metrics.RecordCacheHit()
			return p, nil
		}
	}

	start := time.Now()
	p, err := m.Predict(text)
	if err != nil {
		metrics.RecordPredictionError("inference")
		return Prediction{}, err
	}
	metrics.RecordPrediction(p.Label, time.Since(start))

	if a.cache != nil {
		a.cache.Add(text, p)
	}
	return p, nil
}

// PredictSentences scores the whole text and then every sentence in it.
func (a *Analyzer) PredictSentences(ctx context.Context, text string) (Prediction, []SentencePrediction, error) {
	whole, err := a.Predict(ctx, text)
	if err != nil {
		return Prediction{}, nil, err
	}
	m := a.model.Load()

	parts, err := a.split(text)
	if err != nil {
		return Prediction{}, nil, &InferenceError{Err: err}
	}

	out := make([]SentencePrediction, 0, len(parts))
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return Prediction{}, nil, err
		}
		p, err := a.predict(m, part)
		if err != nil {
			return Prediction{}, nil, err
		}
		out = append(out, SentencePrediction{Text: part, Prediction: p})
	}
	return whole, out, nil
}

func (a *Analyzer) split(text string) ([]string, error) {
	a.splitOnce.Do(func() {
		a.splitter, a.splitErr = english.NewSentenceTokenizer(nil)
	})
	if a.splitErr != nil {
		return nil, fmt.Errorf("sentence tokenizer unavailable: %w", a.splitErr)
	}

	a.splitMu.Lock()
	tokens := a.splitter.Tokenize(text)
	a.splitMu.Unlock()

	parts := make([]string, 0, len(tokens))
	for _, s := range tokens {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return parts, nil
}
