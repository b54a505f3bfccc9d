package nlp

import (
	"strings"
	"sync"
	"testing"

	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	r, err := DefaultResources()
	if err != nil {
		t.Fatalf("load default resources: %v", err)
	}
	return NewNormalizer(r)
}

func TestNormalize_Empty(t *testing.T) {
	n := newTestNormalizer(t)
	if got := n.Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q", got)
	}
	if got := n.Normalize("  !!! ¿? "); got != "" {
		t.Errorf("Normalize(punctuation) = %q", got)
	}
}

func TestNormalize_LowercaseAndStrip(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("Tubería ROTA, 24h!!")
	if got != "tubería rota 24h" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestNormalize_PreservesSpanishLetters(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("Pingüino ÑANDÚ")
	if got != "pingüino ñandú" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestNormalize_ExpandsSynonyms(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("urgent leak")
	want := "urgent leak emergency asap immediate quick fast leaking drip seepage water damage"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalize_ExpandsBeforeStopwordRemoval(t *testing.T) {
	n := newTestNormalizer(t)
	// "repair" expands to "service", which is a stopword and must be dropped,
	// while the other variants survive.
	got := n.Normalize("repair")
	if strings.Contains(got, "service") {
		t.Errorf("stopword survived: %q", got)
	}
	if !strings.Contains(got, "fix") {
		t.Errorf("synonym missing: %q", got)
	}
}

func TestNormalize_DropsStopwordsBothLanguages(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("Tengo experiencia professional work pintando casas")
	if got != "pintando casas" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	n := newTestNormalizer(t)
	got := n.Normalize("  casas \t\n  grandes  ")
	if got != "casas grandes" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	n := newTestNormalizer(t)
	want := n.Normalize("plomero urgente")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := n.Normalize("plomero urgente"); got != want {
				t.Errorf("concurrent Normalize = %q, want %q", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestDetectProfession(t *testing.T) {
	n := newTestNormalizer(t)
	tests := []struct {
		text string
		want worker.Profession
		ok   bool
	}{
		{n.Normalize("electrician"), worker.Electrician, true},
		{n.Normalize("necesito plomero"), worker.Plumber, true},
		{"fuga de agua", worker.Plumber, true},
		{"pintar la pared con pintura", worker.Painter, true},
		{"mueble de madera", worker.Carpenter, true},
		{"cortar el lawn", worker.Gardener, true},
		{"hola mundo", "", false},
	}
	for _, tc := range tests {
		got, ok := n.DetectProfession(tc.text)
		if got != tc.want || ok != tc.ok {
			t.Errorf("DetectProfession(%q) = (%q, %v), want (%q, %v)", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDetectProfession_FirstMatchWins(t *testing.T) {
	n := newTestNormalizer(t)
	// Both plumber and electrician keywords: plumber is listed first.
	got, _ := n.DetectProfession("leak near the electric panel")
	if got != worker.Plumber {
		t.Errorf("DetectProfession = %q, want PLUMBER", got)
	}
}
