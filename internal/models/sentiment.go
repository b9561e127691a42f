package models

import "time"

// Sentiment labels produced by the movie review corpus
const (
	Positive = "pos"
	Negative = "neg"
)

// DemoSamples are the sentences scored by the demo endpoint
var DemoSamples = []string{
	"I really loved this movie, it was amazing!",
	"It was boring and too long.",
	"The acting was okay, nothing special.",
}

// TextInput is the body of a prediction request
type TextInput struct {
	Text *string `json:"text" binding:"required"`
}

// SentimentResponse is the result of scoring one text
type SentimentResponse struct {
	Text       string  `json:"text"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// SentenceBreakdownResponse scores the whole text and each of its sentences
type SentenceBreakdownResponse struct {
	SentimentResponse
	Sentences []SentimentResponse `json:"sentences"`
}

// DemoResponse wraps the demo predictions
type DemoResponse struct {
	DemoResults []SentimentResponse `json:"demo_results"`
}

// HealthResponse is returned by the health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorDetail carries the message of a failed prediction
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// ModelInfo describes the trained model
type ModelInfo struct {
	ID             string         `json:"id"`
	Classes        []string       `json:"classes"`
	VocabularySize int            `json:"vocabulary_size"`
	Documents      int            `json:"documents"`
	ClassCounts    map[string]int `json:"class_counts"`
	TrainedAt      time.Time      `json:"trained_at"`
	TrainingTimeMs float64        `json:"training_time_ms"`
}

// ReadinessResponse reports the model lifecycle state
type ReadinessResponse struct {
	Status string     `json:"status"` // "pending", "training", "ready", "failed"
	Error  string     `json:"error,omitempty"`
	Model  *ModelInfo `json:"model,omitempty"`
}

// PredictionRecord is one logged prediction
type PredictionRecord struct {
	ID         string    `json:"id" db:"id"`
	Text       string    `json:"text" db:"text"`
	Sentiment  string    `json:"sentiment" db:"sentiment"`
	Confidence float64   `json:"confidence" db:"confidence"`
	ModelID    string    `json:"model_id" db:"model_id"`
	RequestID  string    `json:"request_id,omitempty" db:"request_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PredictionStats summarises the prediction log
type PredictionStats struct {
	Total             int            `json:"total"`
	BySentiment       map[string]int `json:"by_sentiment"`
	AverageConfidence float64        `json:"average_confidence"`
}
