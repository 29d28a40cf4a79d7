// Package tfidf builds a vocabulary from a corpus snapshot and turns text
// into TF-IDF weighted feature vectors over that vocabulary.
//
// A Vectorizer belongs to one corpus snapshot. Vectors are only comparable
// when they come from the same build, so callers create a fresh Vectorizer
// per request instead of sharing one.
package tfidf

import (
	"math"
	"sort"

	"github.com/okian/lexrec/internal/domain/text"
)

// FeatureVector holds one non-negative weight per vocabulary term, in
// vocabulary order.
type FeatureVector []float64

// Vectorizer holds the vocabulary and document-frequency table of a corpus.
// It is not safe for concurrent BuildVocabulary calls.
type Vectorizer struct {
	vocabulary     []string
	docFrequency   map[string]int
	totalDocuments int
}

// NewVectorizer returns an empty Vectorizer. Vectorize on it yields
// zero-length vectors until BuildVocabulary is called.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{docFrequency: map[string]int{}}
}

// BuildVocabulary replaces the vocabulary with the sorted union of the
// documents' tokens. A token occurring several times in one document counts
// once towards its document frequency.
func (v *Vectorizer) BuildVocabulary(documents []string) {
	df := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{})
		for _, tok := range text.Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	v.vocabulary = vocab
	v.docFrequency = df
	v.totalDocuments = len(documents)
}

// Vectorize weights each vocabulary term by its raw count in text times
// ln(totalDocuments/documentFrequency). Terms outside the vocabulary are
// ignored.
func (v *Vectorizer) Vectorize(s string) FeatureVector {
	counts := make(map[string]int)
	for _, tok := range text.Tokenize(s) {
		counts[tok]++
	}

	vec := make(FeatureVector, len(v.vocabulary))
	for i, term := range v.vocabulary {
		tf := counts[term]
		if tf == 0 {
			continue
		}
		// df >= 1 for every vocabulary term.
		idf := math.Log(float64(v.totalDocuments) / float64(v.docFrequency[term]))
		vec[i] = float64(tf) * idf
	}
	return vec
}

// Size returns the number of vocabulary terms.
func (v *Vectorizer) Size() int { return len(v.vocabulary) }

// Vocabulary returns a copy of the sorted vocabulary.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.vocabulary))
	copy(out, v.vocabulary)
	return out
}

// DocumentFrequency returns how many documents of the last build contained term.
func (v *Vectorizer) DocumentFrequency(term string) int { return v.docFrequency[term] }

// TotalDocuments returns the corpus size of the last build.
func (v *Vectorizer) TotalDocuments() int { return v.totalDocuments }
