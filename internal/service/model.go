package service

import (
	"github.com/rusafidt/Sentiment-Analyzer/internal/classifier"
	"github.com/rusafidt/Sentiment-Analyzer/internal/models"
	"github.com/rusafidt/Sentiment-Analyzer/internal/textproc"
)

// Prediction is a label with its posterior probability.
type Prediction struct {
	Label      string
	Confidence float64
}

// Model pairs a vocabulary with the classifier fitted on it. Both are
// read-only after training and safe for concurrent use.
type Model struct {
	vectorizer *textproc.CountVectorizer
	classifier *classifier.MultinomialNB
	info       models.ModelInfo
}

// Predict scores text. Tokens outside the vocabulary are ignored.
func (m *Model) Predict(text string) (Prediction, error) {
	x, err := m.vectorizer.Transform(text)
	if err != nil {
		return Prediction{}, &InferenceError{Err: err}
	}
	label, confidence, err := m.classifier.Predict(x)
	if err != nil {
		return Prediction{}, &InferenceError{Err: err}
	}
	return Prediction{Label: label, Confidence: confidence}, nil
}

// Probabilities returns the posterior for every class, keyed by label.
func (m *Model) Probabilities(text string) (map[string]float64, error) {
	x, err := m.vectorizer.Transform(text)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	proba, err := m.classifier.PredictProba(x)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	out := make(map[string]float64, len(proba))
	for i, class := range m.classifier.Classes() {
		out[class] = proba[i]
	}
	return out, nil
}

// Info describes the model.
func (m *Model) Info() models.ModelInfo {
	info := m.info
	info.Classes = append([]string(nil), m.info.Classes...)
	info.ClassCounts = make(map[string]int, len(m.info.ClassCounts))
	for k, v := range m.info.ClassCounts {
		info.ClassCounts[k] = v
	}
	return info
}
