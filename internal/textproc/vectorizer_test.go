package textproc

import (
	"errors"
	"reflect"
	"testing"
)

func TestAnalyzerEnglish(t *testing.T) {
	stop, err := NewStopList("english")
	if err != nil {
		t.Fatalf("NewStopList: %v", err)
	}
	a := NewAnalyzer(stop)

	got := a.Analyze("I really LOVED this movie, it was Amazing! 10/10 a+")
	want := []string{"really", "loved", "movie", "amazing", "10", "10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Analyze = %q, want %q", got, want)
	}
}

func TestAnalyzerKeepsEverythingWithoutStopList(t *testing.T) {
	got := NewAnalyzer(nil).Analyze("The end. x")
	want := []string{"the", "end"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Analyze = %q, want %q", got, want)
	}
}

func TestISOStopList(t *testing.T) {
	stop, err := NewStopList("en")
	if err != nil {
		t.Fatalf("NewStopList: %v", err)
	}
	if !stop.Contains("the") {
		t.Error(`"the" should be an English stop word`)
	}
	if stop.Contains("movie") {
		t.Error(`"movie" should not be a stop word`)
	}
	if stop.Contains("1999") {
		t.Error("numbers should not be stop words")
	}
	// cached answer must match
	if !stop.Contains("the") {
		t.Error("cached lookup changed")
	}
}

func TestNewStopListUnknown(t *testing.T) {
	if _, err := NewStopList("klingon"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCountVectorizerFit(t *testing.T) {
	cv, err := NewCountVectorizer(NewAnalyzer(nil), 3, RankTermFrequency)
	if err != nil {
		t.Fatalf("NewCountVectorizer: %v", err)
	}

	vectors, err := cv.Fit([]string{
		"good good good bad",
		"good ok ok",
		"zebra bad",
	})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// good=4, bad=2, ok=2, zebra=1 -> keep good, bad, ok; indices alphabetical
	wantVocab := map[string]int{"bad": 0, "good": 1, "ok": 2}
	if !reflect.DeepEqual(cv.Vocabulary(), wantVocab) {
		t.Errorf("vocabulary = %v, want %v", cv.Vocabulary(), wantVocab)
	}
	if cv.Size() != 3 {
		t.Errorf("Size = %d", cv.Size())
	}

	first := vectors[0]
	if !reflect.DeepEqual(first.Indices, []int{0, 1}) || !reflect.DeepEqual(first.Values, []float64{1, 3}) {
		t.Errorf("vector 0 = %+v", first)
	}
	if vectors[2].NNZ() != 1 {
		t.Errorf("zebra must be dropped from vector 2: %+v", vectors[2])
	}
}

func TestCountVectorizerDocumentFrequency(t *testing.T) {
	cv, err := NewCountVectorizer(NewAnalyzer(nil), 1, RankDocumentFrequency)
	if err != nil {
		t.Fatalf("NewCountVectorizer: %v", err)
	}
	// "aa" has the highest term count but "bb" appears in more documents
	if _, err := cv.Fit([]string{"aa aa aa aa bb", "bb", "bb"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if _, ok := cv.Vocabulary()["bb"]; !ok {
		t.Errorf("vocabulary = %v, want bb", cv.Vocabulary())
	}
}

func TestCountVectorizerTransform(t *testing.T) {
	cv, _ := NewCountVectorizer(NewAnalyzer(nil), 0, "")

	if _, err := cv.Transform("anything"); !errors.Is(err, ErrNotFitted) {
		t.Fatalf("err = %v, want ErrNotFitted", err)
	}

	if _, err := cv.Fit([]string{"great film", "awful film"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	v, err := cv.Transform("Great, GREAT unseen words here")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if v.Dim != 3 || v.NNZ() != 1 || v.Values[0] != 2 {
		t.Errorf("vector = %+v", v)
	}

	empty, err := cv.Transform("nothing known")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if empty.NNZ() != 0 {
		t.Errorf("unseen tokens produced features: %+v", empty)
	}

	dense := v.Dense()
	if dense.Len() != 3 || dense.AtVec(cv.Vocabulary()["great"]) != 2 {
		t.Errorf("dense vector mismatch")
	}
}

func TestCountVectorizerRejectsStopOnlyCorpus(t *testing.T) {
	stop, _ := NewStopList("english")
	cv, _ := NewCountVectorizer(NewAnalyzer(stop), 10, RankTermFrequency)
	if _, err := cv.Fit([]string{"the and of", "it is"}); !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("err = %v, want ErrEmptyVocabulary", err)
	}
}

func TestCountVectorizerFitOnce(t *testing.T) {
	cv, _ := NewCountVectorizer(nil, 0, "")
	if _, err := cv.Fit([]string{"one two"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if _, err := cv.Fit([]string{"three"}); err == nil {
		t.Fatal("second Fit should fail")
	}
}

func TestNewCountVectorizerUnknownRank(t *testing.T) {
	if _, err := NewCountVectorizer(nil, 10, "tfidf"); err == nil {
		t.Fatal("expected error")
	}
}
