// Package textproc turns raw text into bag-of-words count vectors over a
// fixed vocabulary.
package textproc

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/mat"
)

// RankBy selects how candidate tokens are ordered when the vocabulary is capped.
type RankBy string

const (
	// RankTermFrequency ranks tokens by their total count across the corpus.
	RankTermFrequency RankBy = "term_frequency"
	// RankDocumentFrequency ranks tokens by the number of documents containing them.
	RankDocumentFrequency RankBy = "document_frequency"
)

var (
	// ErrNotFitted is returned when a vectorizer is used before Fit.
	ErrNotFitted = errors.New("vectorizer is not fitted")
	// ErrEmptyVocabulary is returned when no token survives filtering.
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words")
)

// tokens of two or more word characters
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Analyzer lowercases text, splits it into tokens and removes stop words.
type Analyzer struct {
	stop StopList
}

// NewAnalyzer creates an analyzer. A nil stop list keeps every token.
func NewAnalyzer(stop StopList) *Analyzer {
	if stop == nil {
		stop = noStopList{}
	}
	return &Analyzer{stop: stop}
}

// Analyze returns the qualifying tokens of text in order.
func (a *Analyzer) Analyze(text string) []string {
	// a Caser holds state, so one is made per call
	lower := cases.Lower(language.Und).String(text)

	raw := tokenPattern.FindAllString(lower, -1)
	out := raw[:0]
	for _, tok := range raw {
		if !a.stop.Contains(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// Vector is a sparse count vector. Indices are strictly increasing.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NNZ is the number of non-zero entries.
func (v Vector) NNZ() int { return len(v.Indices) }

// Dense expands the vector into a gonum vector of length Dim.
func (v Vector) Dense() *mat.VecDense {
	data := make([]float64, v.Dim)
	for k, i := range v.Indices {
		data[i] = v.Values[k]
	}
	return mat.NewVecDense(v.Dim, data)
}

// CountVectorizer learns a capped token vocabulary and maps text to count vectors.
// After Fit it is read-only and safe for concurrent use.
type CountVectorizer struct {
	analyzer    *Analyzer
	maxFeatures int
	rankBy      RankBy
	vocabulary  map[string]int
}

// NewCountVectorizer creates an unfitted vectorizer. maxFeatures <= 0 keeps
// every qualifying token.
func NewCountVectorizer(analyzer *Analyzer, maxFeatures int, rankBy RankBy) (*CountVectorizer, error) {
	switch rankBy {
	case "":
		rankBy = RankTermFrequency
	case RankTermFrequency, RankDocumentFrequency:
	default:
		return nil, fmt.Errorf("unknown rank %q", rankBy)
	}
	if analyzer == nil {
		analyzer = NewAnalyzer(nil)
	}
	return &CountVectorizer{
		analyzer:    analyzer,
		maxFeatures: maxFeatures,
		rankBy:      rankBy,
	}, nil
}

// Fit builds the vocabulary from texts and returns their vectors.
func (cv *CountVectorizer) Fit(texts []string) ([]Vector, error) {
	if cv.vocabulary != nil {
		return nil, errors.New("vectorizer is already fitted")
	}

	docs := make([][]string, len(texts))
	tf := make(map[string]int)
	df := make(map[string]int)
	for i, text := range texts {
		tokens := cv.analyzer.Analyze(text)
		docs[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	if len(tf) == 0 {
		return nil, ErrEmptyVocabulary
	}

	score := tf
	if cv.rankBy == RankDocumentFrequency {
		score = df
	}

	terms := make([]string, 0, len(tf))
	for term := range tf {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if score[terms[i]] != score[terms[j]] {
			return score[terms[i]] > score[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if cv.maxFeatures > 0 && len(terms) > cv.maxFeatures {
		terms = terms[:cv.maxFeatures]
	}

	// indices follow alphabetical order of the kept terms
	sort.Strings(terms)
	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	cv.vocabulary = vocab

	vectors := make([]Vector, len(docs))
	for i, tokens := range docs {
		vectors[i] = cv.vectorize(tokens)
	}
	return vectors, nil
}

// Transform maps text onto the fitted vocabulary. Unknown tokens are ignored.
func (cv *CountVectorizer) Transform(text string) (Vector, error) {
	if cv.vocabulary == nil {
		return Vector{}, ErrNotFitted
	}
	return cv.vectorize(cv.analyzer.Analyze(text)), nil
}

func (cv *CountVectorizer) vectorize(tokens []string) Vector {
	counts := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := cv.vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	v := Vector{
		Dim:     len(cv.vocabulary),
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		v.Indices = append(v.Indices, idx)
	}
	sort.Ints(v.Indices)
	for _, idx := range v.Indices {
		v.Values = append(v.Values, counts[idx])
	}
	return v
}

// Size is the number of features, zero before Fit.
func (cv *CountVectorizer) Size() int {
	return len(cv.vocabulary)
}

// Vocabulary returns a copy of the token to feature index mapping.
func (cv *CountVectorizer) Vocabulary() map[string]int {
	out := make(map[string]int, len(cv.vocabulary))
	for k, v := range cv.vocabulary {
		out[k] = v
	}
	return out
}
