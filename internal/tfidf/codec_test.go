package tfidf

import (
	"strings"
	"testing"
)

func TestCodec_RoundTripPreservesScoring(t *testing.T) {
	docs := []Document{
		{ID: "w1", Text: "leaking pipes repair"},
		{ID: "w2", Text: "garden lawn mowing"},
		{ID: "w3", Text: "electric wiring repair"},
	}
	m, err := Fit(docs, DefaultConfig())
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.ID() != m.ID() || !got.TrainedAt().Equal(m.TrainedAt()) {
		t.Errorf("identity changed: %s/%v vs %s/%v", got.ID(), got.TrainedAt(), m.ID(), m.TrainedAt())
	}
	if got.VocabularySize() != m.VocabularySize() || got.Len() != m.Len() {
		t.Fatalf("shape changed")
	}
	q := "repair pipes"
	want := m.Similarities(m.Transform(q))
	have := got.Similarities(got.Transform(q))
	for i := range want {
		if want[i] != have[i] {
			t.Errorf("similarity %d: %v vs %v", i, have[i], want[i])
		}
	}
	if _, ok := got.RowOf("w3"); !ok {
		t.Error("row index not rebuilt")
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"garbage", "{not json", "decode model"},
		{"rows mismatch", `{"terms":["a"],"idf":[1],"worker_ids":["w1","w2"],"rows":[{"i":[0],"v":[1]}]}`, "rows"},
		{"idf mismatch", `{"terms":["a","b"],"idf":[1],"worker_ids":[],"rows":[]}`, "idf"},
		{"index out of range", `{"terms":["a"],"idf":[1],"worker_ids":["w1"],"rows":[{"i":[3],"v":[1]}]}`, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
