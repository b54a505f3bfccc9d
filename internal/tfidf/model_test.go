package tfidf

import (
	"errors"
	"math"
	"testing"
)

func unigramConfig() Config {
	return Config{NGramMax: 1, MinDF: 1, MaxDF: 1, SublinearTF: true}
}

func TestFit_Empty(t *testing.T) {
	if _, err := Fit(nil, DefaultConfig()); !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestFit_SingleDocumentKeepsTerms(t *testing.T) {
	m, err := Fit([]Document{{ID: "w1", Text: "leaking pipes"}}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// leaking, pipes, "leaking pipes"
	if m.VocabularySize() != 3 {
		t.Fatalf("VocabularySize() = %d, want 3", m.VocabularySize())
	}
	if _, ok := m.vocab["leaking pipes"]; !ok {
		t.Error("bigram missing from vocabulary")
	}
	rows, cols := m.Shape()
	if rows != 1 || cols != 3 {
		t.Errorf("Shape() = %dx%d", rows, cols)
	}
	if math.Abs(m.Row(0).Norm()-1) > 1e-12 {
		t.Errorf("row not L2-normalized: %v", m.Row(0).Norm())
	}
}

func TestFit_MaxDFPrunesCommonTerms(t *testing.T) {
	docs := []Document{
		{ID: "1", Text: "common alpha"},
		{ID: "2", Text: "common beta"},
		{ID: "3", Text: "common gamma"},
		{ID: "4", Text: "common delta"},
		{ID: "5", Text: "common epsilon"},
	}
	m, err := Fit(docs, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.vocab["common"]; ok {
		t.Error("term present in every document should be pruned")
	}
	if _, ok := m.vocab["alpha"]; !ok {
		t.Error("rare term should be kept")
	}
	if _, ok := m.vocab["common alpha"]; !ok {
		t.Error("rare bigram should be kept")
	}
	if m.VocabularySize() != 10 {
		t.Errorf("VocabularySize() = %d, want 10", m.VocabularySize())
	}
}

func TestFit_AllTermsPruned(t *testing.T) {
	docs := []Document{{ID: "1", Text: "same words"}, {ID: "2", Text: "same words"}}
	if _, err := Fit(docs, DefaultConfig()); !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestFit_MaxFeaturesKeepsMostFrequent(t *testing.T) {
	cfg := unigramConfig()
	cfg.MaxFeatures = 2
	docs := []Document{
		{ID: "1", Text: "alpha alpha alpha beta beta gamma"},
		{ID: "2", Text: "delta"},
	}
	m, err := Fit(docs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.VocabularySize() != 2 || m.Term(0) != "alpha" || m.Term(1) != "beta" {
		t.Fatalf("unexpected vocabulary: %v", m.terms)
	}
	if !m.Row(1).IsZero() {
		t.Error("document with no kept terms should be a zero row")
	}
}

func TestFit_SublinearTF(t *testing.T) {
	docs := []Document{
		{ID: "1", Text: "apple apple banana"},
		{ID: "2", Text: "cherry"},
	}
	m, err := Fit(docs, unigramConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := m.Row(0)
	apple := row.Get(m.vocab["apple"])
	banana := row.Get(m.vocab["banana"])
	if math.Abs(apple/banana-(1+math.Log(2))) > 1e-9 {
		t.Errorf("apple/banana = %v, want 1+ln2", apple/banana)
	}
	wantIDF := math.Log(3.0/2.0) + 1
	if math.Abs(m.idf[m.vocab["cherry"]]-wantIDF) > 1e-12 {
		t.Errorf("idf = %v, want %v", m.idf[m.vocab["cherry"]], wantIDF)
	}
}

func TestFit_PreservesWorkerOrder(t *testing.T) {
	docs := []Document{{ID: "c", Text: "one"}, {ID: "a", Text: "two"}, {ID: "b", Text: "three"}}
	m, err := Fit(docs, unigramConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := m.WorkerIDs()
	if len(ids) != 3 || ids[0] != "c" || ids[1] != "a" || ids[2] != "b" {
		t.Errorf("WorkerIDs() = %v", ids)
	}
	if m.WorkerID(1) != "a" {
		t.Errorf("WorkerID(1) = %q", m.WorkerID(1))
	}
	if _, ok := m.RowOf("b"); !ok {
		t.Error("RowOf(b) not found")
	}
	if _, ok := m.RowOf("zzz"); ok {
		t.Error("RowOf(zzz) found")
	}
}

func TestTokenize_DropsSingleCharacters(t *testing.T) {
	got := tokenize("a b cd e_f 7 42")
	want := []string{"cd", "e_f", "42"}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokenize = %v, want %v", got, want)
		}
	}
}

func TestTransform_FoldsAccents(t *testing.T) {
	m, err := Fit([]Document{{ID: "1", Text: "tubería"}, {ID: "2", Text: "jardín"}}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.vocab["tuberia"]; !ok {
		t.Fatalf("expected folded term, vocabulary: %v", m.terms)
	}
	if m.Transform("TUBERIA").IsZero() {
		t.Error("query without accents should match folded vocabulary")
	}
}

func TestTransform_UnknownTerms(t *testing.T) {
	m, err := Fit([]Document{{ID: "1", Text: "leaking pipes"}}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Transform("garden lawn").IsZero() {
		t.Error("unknown terms should produce a zero vector")
	}
	if !m.Transform("").IsZero() {
		t.Error("empty text should produce a zero vector")
	}
}

func TestSimilarities(t *testing.T) {
	docs := []Document{
		{ID: "1", Text: "leaking pipes repair"},
		{ID: "2", Text: "garden lawn mowing"},
	}
	m, err := Fit(docs, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sims := m.Similarities(m.Transform("pipes"))
	if len(sims) != 2 {
		t.Fatalf("len = %d", len(sims))
	}
	if sims[0] <= 0 || sims[0] > 1 {
		t.Errorf("sims[0] = %v, want (0,1]", sims[0])
	}
	if sims[1] != 0 {
		t.Errorf("sims[1] = %v, want 0", sims[1])
	}

	self := m.Similarities(m.Transform("leaking pipes repair"))
	if math.Abs(self[0]-1) > 1e-9 {
		t.Errorf("self similarity = %v, want 1", self[0])
	}
	if s := Cosine(m.Transform("pipes"), m.Row(0)); math.Abs(s-sims[0]) > 1e-12 {
		t.Errorf("Cosine = %v, Similarities = %v", s, sims[0])
	}
}

func TestSimilarities_ZeroQuery(t *testing.T) {
	m, err := Fit([]Document{{ID: "1", Text: "leaking pipes"}}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range m.Similarities(SparseVector{}) {
		if s != 0 {
			t.Fatalf("zero query similarity = %v", s)
		}
	}
}

func TestTopTerms(t *testing.T) {
	m, err := Fit([]Document{{ID: "1", Text: "apple apple apple banana banana cherry"}}, unigramConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := m.TopTerms(m.Row(0), 2)
	if len(top) != 2 || m.Term(top[0]) != "apple" || m.Term(top[1]) != "banana" {
		t.Errorf("TopTerms = %v", top)
	}
}

func TestMetadata(t *testing.T) {
	m, err := Fit([]Document{{ID: "a", Text: "tile floors"}, {ID: "b", Text: "roof tiles"}}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta := m.Metadata()
	if meta.ModelID != m.ID() || meta.WorkersCount != 2 || meta.VocabularySize != m.VocabularySize() {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if !meta.TrainedAt.Equal(m.TrainedAt()) {
		t.Errorf("expected trained_at %v, got %v", m.TrainedAt(), meta.TrainedAt)
	}
}
