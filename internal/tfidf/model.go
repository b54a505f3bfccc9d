// Package tfidf fits and applies a sublinear, smoothed TF-IDF model over
// a small corpus of short documents.
package tfidf

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyVocabulary is returned when document frequency pruning removes every term.
var ErrEmptyVocabulary = errors.New("tfidf: no terms remain after pruning")

// Config controls vocabulary construction and weighting.
type Config struct {
	NGramMax    int     `json:"ngram_max"`
	MaxFeatures int     `json:"max_features"` // 0 = unlimited
	MinDF       int     `json:"min_df"`
	MaxDF       float64 `json:"max_df"` // fraction of documents
	SublinearTF bool    `json:"sublinear_tf"`
}

// DefaultConfig returns unigrams+bigrams, 1000 features, min_df=1, max_df=0.8, log tf.
func DefaultConfig() Config {
	return Config{
		NGramMax:    2,
		MaxFeatures: 1000,
		MinDF:       1,
		MaxDF:       0.8,
		SublinearTF: true,
	}
}

// maxDocCount converts MaxDF into an absolute bound. A corpus always keeps
// terms that occur in a single document.
func (c Config) maxDocCount(n int) int {
	if c.MaxDF <= 0 || c.MaxDF >= 1 {
		return n
	}
	m := int(math.Floor(c.MaxDF * float64(n)))
	if m < 1 {
		m = 1
	}
	return m
}

// Document is a training input.
type Document struct {
	ID   string
	Text string
}

// Model is an immutable trained snapshot. Rows align with WorkerIDs.
type Model struct {
	id        string
	trainedAt time.Time
	config    Config
	terms     []string // index -> term, sorted
	idf       []float64
	rows      []SparseVector
	workerIDs []string

	vocab    map[string]int
	rowIndex map[string]int
}

// Fit builds a model over docs. Documents with no terms after analysis are kept as
// zero rows so that rows stay aligned with the supplied ids.
func Fit(docs []Document, cfg Config) (*Model, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyVocabulary
	}
	n := len(docs)

	counts := make([]map[string]int, n)
	df := make(map[string]int)
	total := make(map[string]int)
	for i, d := range docs {
		counts[i] = termCounts(d.Text, cfg.NGramMax)
		for t, c := range counts[i] {
			df[t]++
			total[t] += c
		}
	}

	maxDocs := cfg.maxDocCount(n)
	minDocs := cfg.MinDF
	if minDocs < 1 {
		minDocs = 1
	}
	kept := make([]string, 0, len(df))
	for t, f := range df {
		if f >= minDocs && f <= maxDocs {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyVocabulary
	}

	if cfg.MaxFeatures > 0 && len(kept) > cfg.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:cfg.MaxFeatures]
	}
	sort.Strings(kept)

	m := &Model{
		id:        uuid.NewString(),
		trainedAt: time.Now().UTC(),
		config:    cfg,
		terms:     kept,
		idf:       make([]float64, len(kept)),
		rows:      make([]SparseVector, n),
		workerIDs: make([]string, n),
	}
	m.buildIndexes()

	for i, t := range kept {
		m.idf[i] = math.Log(float64(1+n)/float64(1+df[t])) + 1
	}
	for i, d := range docs {
		m.workerIDs[i] = d.ID
		m.rows[i] = m.weigh(counts[i])
	}
	return m, nil
}

func (m *Model) buildIndexes() {
	m.vocab = make(map[string]int, len(m.terms))
	for i, t := range m.terms {
		m.vocab[t] = i
	}
	m.rowIndex = make(map[string]int, len(m.workerIDs))
	for i, id := range m.workerIDs {
		m.rowIndex[id] = i
	}
}

// weigh turns raw term counts into an L2-normalized tf-idf row.
func (m *Model) weigh(counts map[string]int) SparseVector {
	v := SparseVector{}
	for t := range counts {
		idx, ok := m.vocab[t]
		if !ok {
			continue
		}
		v.Indices = append(v.Indices, idx)
	}
	sort.Ints(v.Indices)
	v.Values = make([]float64, len(v.Indices))
	for i, idx := range v.Indices {
		tf := float64(counts[m.terms[idx]])
		if m.config.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		v.Values[i] = tf * m.idf[idx]
	}
	v.normalize()
	return v
}

// Transform vectorizes text against the model vocabulary. Unknown terms are ignored.
func (m *Model) Transform(text string) SparseVector {
	return m.weigh(termCounts(text, m.config.NGramMax))
}

// Similarities returns the cosine similarity of q against every row, aligned with WorkerIDs.
func (m *Model) Similarities(q SparseVector) []float64 {
	out := make([]float64, len(m.rows))
	qn := q.Norm()
	if qn == 0 {
		return out
	}
	dense := make([]float64, len(m.terms))
	for i, idx := range q.Indices {
		dense[idx] = q.Values[i]
	}
	for r, row := range m.rows {
		rn := row.Norm()
		if rn == 0 {
			continue
		}
		var dot float64
		for i, idx := range row.Indices {
			dot += dense[idx] * row.Values[i]
		}
		s := dot / (qn * rn)
		if s > 1 {
			s = 1
		}
		out[r] = s
	}
	return out
}

// TopTerms returns up to k indices of row's highest weights, ties broken by term.
func (m *Model) TopTerms(row SparseVector, k int) []int {
	idx := make([]int, len(row.Indices))
	copy(idx, row.Indices)
	sort.Slice(idx, func(a, b int) bool {
		wa, wb := row.Get(idx[a]), row.Get(idx[b])
		if wa != wb {
			return wa > wb
		}
		return m.terms[idx[a]] < m.terms[idx[b]]
	})
	if len(idx) > k {
		idx = idx[:k]
	}
	return idx
}

// Metadata describes a model without its matrix.
type Metadata struct {
	ModelID        string
	TrainedAt      time.Time
	WorkersCount   int
	VocabularySize int
}

// Metadata returns the model's descriptive fields.
func (m *Model) Metadata() Metadata {
	return Metadata{
		ModelID:        m.id,
		TrainedAt:      m.trainedAt,
		WorkersCount:   len(m.rows),
		VocabularySize: len(m.terms),
	}
}

// ID returns the snapshot identifier.
func (m *Model) ID() string { return m.id }

// TrainedAt returns the fit time.
func (m *Model) TrainedAt() time.Time { return m.trainedAt }

// Config returns the fit configuration.
func (m *Model) Config() Config { return m.config }

// Term returns the vocabulary term at index i.
func (m *Model) Term(i int) string { return m.terms[i] }

// VocabularySize returns the number of terms.
func (m *Model) VocabularySize() int { return len(m.terms) }

// Len returns the number of documents.
func (m *Model) Len() int { return len(m.rows) }

// Shape returns rows x columns of the document matrix.
func (m *Model) Shape() (int, int) { return len(m.rows), len(m.terms) }

// WorkerID returns the worker at row i.
func (m *Model) WorkerID(i int) string { return m.workerIDs[i] }

// WorkerIDs returns a copy of the ordered worker ids.
func (m *Model) WorkerIDs() []string {
	out := make([]string, len(m.workerIDs))
	copy(out, m.workerIDs)
	return out
}

// Row returns the document vector at i. Callers must not modify it.
func (m *Model) Row(i int) SparseVector { return m.rows[i] }

// RowOf returns the document vector of a worker.
func (m *Model) RowOf(workerID string) (SparseVector, bool) {
	i, ok := m.rowIndex[workerID]
	if !ok {
		return SparseVector{}, false
	}
	return m.rows[i], true
}

func (m *Model) validate() error {
	if len(m.rows) != len(m.workerIDs) {
		return fmt.Errorf("tfidf: %d rows for %d worker ids", len(m.rows), len(m.workerIDs))
	}
	if len(m.idf) != len(m.terms) {
		return fmt.Errorf("tfidf: %d idf weights for %d terms", len(m.idf), len(m.terms))
	}
	for r, row := range m.rows {
		if len(row.Indices) != len(row.Values) {
			return fmt.Errorf("tfidf: row %d has mismatched indices and values", r)
		}
		for _, idx := range row.Indices {
			if idx < 0 || idx >= len(m.terms) {
				return fmt.Errorf("tfidf: row %d references term %d out of range", r, idx)
			}
		}
	}
	return nil
}
