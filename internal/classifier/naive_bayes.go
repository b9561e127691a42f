// Package classifier implements a multinomial Naive Bayes classifier over
// sparse count vectors.
package classifier

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rusafidt/Sentiment-Analyzer/internal/textproc"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotFitted is returned when predicting with an untrained classifier.
	ErrNotFitted = errors.New("classifier is not fitted")
	// ErrDimensionMismatch is returned when a vector does not match the fitted feature count.
	ErrDimensionMismatch = errors.New("feature vector dimension does not match classifier")
)

// MultinomialNB is a multinomial Naive Bayes classifier with additive
// (Laplace/Lidstone) smoothing. It is read-only after Fit.
type MultinomialNB struct {
	alpha float64

	classes        []string
	classCount     []float64
	classLogPrior  *mat.VecDense // classes
	featureCount   *mat.Dense    // classes x features
	featureLogProb *mat.Dense    // classes x features
}

// NewMultinomialNB creates an unfitted classifier with the given smoothing.
func NewMultinomialNB(alpha float64) *MultinomialNB {
	return &MultinomialNB{alpha: alpha}
}

// Fit learns class priors and per-class feature likelihoods from X and labels y.
// Classes are ordered lexically.
func (nb *MultinomialNB) Fit(X []textproc.Vector, y []string, nFeatures int) error {
	if len(X) == 0 {
		return errors.New("training set is empty")
	}
	if len(X) != len(y) {
		return fmt.Errorf("got %d vectors but %d labels", len(X), len(y))
	}
	if nFeatures <= 0 {
		return errors.New("feature count must be positive")
	}

	classIndex := make(map[string]int)
	for _, label := range y {
		classIndex[label] = 0
	}
	if len(classIndex) < 2 {
		return fmt.Errorf("need at least two classes, got %d", len(classIndex))
	}
	classes := make([]string, 0, len(classIndex))
	for c := range classIndex {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for i, c := range classes {
		classIndex[c] = i
	}

	nClasses := len(classes)
	classCount := make([]float64, nClasses)
	featureCount := mat.NewDense(nClasses, nFeatures, nil)

	for i, x := range X {
		if x.Dim != nFeatures {
			return fmt.Errorf("%w: vector %d has %d features, want %d", ErrDimensionMismatch, i, x.Dim, nFeatures)
		}
		c := classIndex[y[i]]
		classCount[c]++
		row := featureCount.RawRowView(c)
		for k, j := range x.Indices {
			row[j] += x.Values[k]
		}
	}

	total := floats.Sum(classCount)
	prior := make([]float64, nClasses)
	for c, n := range classCount {
		prior[c] = math.Log(n / total)
	}

	logProb := mat.NewDense(nClasses, nFeatures, nil)
	for c := 0; c < nClasses; c++ {
		counts := featureCount.RawRowView(c)
		denom := math.Log(floats.Sum(counts) + nb.alpha*float64(nFeatures))
		out := logProb.RawRowView(c)
		for j, n := range counts {
			out[j] = math.Log(n+nb.alpha) - denom
		}
	}

	nb.classes = classes
	nb.classCount = classCount
	nb.classLogPrior = mat.NewVecDense(nClasses, prior)
	nb.featureCount = featureCount
	nb.featureLogProb = logProb
	return nil
}

// Classes returns the class labels in index order.
func (nb *MultinomialNB) Classes() []string {
	return append([]string(nil), nb.classes...)
}

// NumFeatures is the fitted feature count, zero before Fit.
func (nb *MultinomialNB) NumFeatures() int {
	if nb.featureLogProb == nil {
		return 0
	}
	_, n := nb.featureLogProb.Dims()
	return n
}

// ClassCounts returns the number of training documents per class.
func (nb *MultinomialNB) ClassCounts() map[string]int {
	out := make(map[string]int, len(nb.classes))
	for i, c := range nb.classes {
		out[c] = int(nb.classCount[i])
	}
	return out
}

// JointLogLikelihood returns log P(c) + sum_j x_j log P(j|c) for each class.
func (nb *MultinomialNB) JointLogLikelihood(x textproc.Vector) ([]float64, error) {
	if nb.featureLogProb == nil {
		return nil, ErrNotFitted
	}
	if x.Dim != nb.NumFeatures() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, x.Dim, nb.NumFeatures())
	}

	var jll mat.VecDense
	jll.MulVec(nb.featureLogProb, x.Dense())
	jll.AddVec(&jll, nb.classLogPrior)
	return mat.Col(nil, 0, &jll), nil
}

// PredictProba returns the posterior probability of each class, summing to 1.
func (nb *MultinomialNB) PredictProba(x textproc.Vector) ([]float64, error) {
	jll, err := nb.JointLogLikelihood(x)
	if err != nil {
		return nil, err
	}

	norm := floats.LogSumExp(jll)
	proba := make([]float64, len(jll))
	for i, v := range jll {
		proba[i] = math.Exp(v - norm)
	}
	return proba, nil
}

// Predict returns the most probable class and its posterior probability.
// Ties go to the class that sorts first.
func (nb *MultinomialNB) Predict(x textproc.Vector) (string, float64, error) {
	proba, err := nb.PredictProba(x)
	if err != nil {
		return "", 0, err
	}
	best := floats.MaxIdx(proba)
	return nb.classes[best], proba[best], nil
}
