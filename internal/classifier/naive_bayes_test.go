package classifier

import (
	"errors"
	"math"
	"testing"

	"github.com/rusafidt/Sentiment-Analyzer/internal/textproc"
)

func vec(dim int, counts map[int]float64) textproc.Vector {
	v := textproc.Vector{Dim: dim}
	for i := 0; i < dim; i++ {
		if c, ok := counts[i]; ok {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, c)
		}
	}
	return v
}

func fitted(t *testing.T) *MultinomialNB {
	t.Helper()
	nb := NewMultinomialNB(1.0)
	X := []textproc.Vector{
		vec(2, map[int]float64{0: 2}),
		vec(2, map[int]float64{1: 2}),
	}
	if err := nb.Fit(X, []string{"pos", "neg"}, 2); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return nb
}

func TestFitAndPredictProba(t *testing.T) {
	nb := fitted(t)

	if got := nb.Classes(); got[0] != "neg" || got[1] != "pos" {
		t.Fatalf("classes = %v, want [neg pos]", got)
	}

	// pos: counts [2,0] -> P(f0|pos) = 3/4; neg: [0,2] -> P(f0|neg) = 1/4
	proba, err := nb.PredictProba(vec(2, map[int]float64{0: 1}))
	if err != nil {
		t.Fatalf("PredictProba: %v", err)
	}
	if math.Abs(proba[1]-0.75) > 1e-12 || math.Abs(proba[0]-0.25) > 1e-12 {
		t.Errorf("proba = %v, want [0.25 0.75]", proba)
	}

	label, conf, err := nb.Predict(vec(2, map[int]float64{0: 1}))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if label != "pos" || math.Abs(conf-0.75) > 1e-12 {
		t.Errorf("Predict = %s %.3f", label, conf)
	}
}

func TestProbabilitiesSumToOne(t *testing.T) {
	nb := fitted(t)
	inputs := []textproc.Vector{
		vec(2, nil),
		vec(2, map[int]float64{0: 50}),
		vec(2, map[int]float64{0: 3, 1: 7}),
		vec(2, map[int]float64{1: 1000}),
	}
	for _, x := range inputs {
		proba, err := nb.PredictProba(x)
		if err != nil {
			t.Fatalf("PredictProba: %v", err)
		}
		sum := proba[0] + proba[1]
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("probabilities %v sum to %g", proba, sum)
		}

		_, conf, _ := nb.Predict(x)
		if conf < 0.5 || conf > 1 {
			t.Errorf("confidence %g out of [0.5, 1]", conf)
		}
	}
}

func TestEmptyVectorReflectsPriors(t *testing.T) {
	nb := NewMultinomialNB(1.0)
	X := []textproc.Vector{
		vec(1, map[int]float64{0: 1}),
		vec(1, map[int]float64{0: 1}),
		vec(1, map[int]float64{0: 1}),
		vec(1, map[int]float64{0: 1}),
	}
	if err := nb.Fit(X, []string{"pos", "pos", "pos", "neg"}, 1); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	label, conf, err := nb.Predict(vec(1, nil))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if label != "pos" || math.Abs(conf-0.75) > 1e-12 {
		t.Errorf("Predict = %s %.3f, want pos 0.75", label, conf)
	}
	if counts := nb.ClassCounts(); counts["pos"] != 3 || counts["neg"] != 1 {
		t.Errorf("class counts = %v", counts)
	}
}

func TestTieGoesToFirstClass(t *testing.T) {
	nb := fitted(t)
	label, conf, err := nb.Predict(vec(2, map[int]float64{0: 1, 1: 1}))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if label != "neg" || math.Abs(conf-0.5) > 1e-12 {
		t.Errorf("Predict = %s %.3f, want neg 0.5", label, conf)
	}
}

func TestPredictDeterministic(t *testing.T) {
	nb := fitted(t)
	x := vec(2, map[int]float64{0: 4, 1: 1})
	l1, c1, _ := nb.Predict(x)
	for i := 0; i < 10; i++ {
		l2, c2, _ := nb.Predict(x)
		if l1 != l2 || c1 != c2 {
			t.Fatalf("prediction changed: %s %g vs %s %g", l1, c1, l2, c2)
		}
	}
}

func TestFitErrors(t *testing.T) {
	one := []textproc.Vector{vec(2, nil)}
	tests := []struct {
		name string
		X    []textproc.Vector
		y    []string
		n    int
	}{
		{"empty", nil, nil, 2},
		{"length mismatch", one, []string{"a", "b"}, 2},
		{"single class", []textproc.Vector{vec(2, nil), vec(2, nil)}, []string{"a", "a"}, 2},
		{"dimension", []textproc.Vector{vec(3, nil), vec(2, nil)}, []string{"a", "b"}, 2},
		{"no features", one, []string{"a"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewMultinomialNB(1).Fit(tt.X, tt.y, tt.n); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPredictErrors(t *testing.T) {
	if _, _, err := NewMultinomialNB(1).Predict(vec(2, nil)); !errors.Is(err, ErrNotFitted) {
		t.Errorf("err = %v, want ErrNotFitted", err)
	}
	if _, _, err := fitted(t).Predict(vec(5, nil)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}
