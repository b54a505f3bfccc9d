package tfidf

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type snapshot struct {
	ID        string    `json:"id"`
	TrainedAt time.Time `json:"trained_at"`
	Config    Config    `json:"config"`
	Terms     []string  `json:"terms"`
	IDF       []float64 `json:"idf"`
	WorkerIDs []string  `json:"worker_ids"`
	Rows      []row     `json:"rows"`
}

type row struct {
	I []int     `json:"i"`
	V []float64 `json:"v"`
}

// MarshalJSON implements json.Marshaler.
func (m *Model) MarshalJSON() ([]byte, error) {
	s := snapshot{
		ID:        m.id,
		TrainedAt: m.trainedAt,
		Config:    m.config,
		Terms:     m.terms,
		IDF:       m.idf,
		WorkerIDs: m.workerIDs,
		Rows:      make([]row, len(m.rows)),
	}
	for i, r := range m.rows {
		s.Rows[i] = row{I: r.Indices, V: r.Values}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	return data, nil
}

// Decode restores a model encoded with MarshalJSON.
func Decode(data []byte) (*Model, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	m := &Model{
		id:        s.ID,
		trainedAt: s.TrainedAt,
		config:    s.Config,
		terms:     s.Terms,
		idf:       s.IDF,
		workerIDs: s.WorkerIDs,
		rows:      make([]SparseVector, len(s.Rows)),
	}
	for i, r := range s.Rows {
		m.rows[i] = SparseVector{Indices: r.I, Values: r.V}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.buildIndexes()
	return m, nil
}
