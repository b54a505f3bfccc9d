package nlp

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

//go:embed resources.yaml
var defaultResources []byte

// Language holds the tables of a single language.
type Language struct {
	Stopwords []string            `yaml:"stopwords"`
	Synonyms  map[string][]string `yaml:"synonyms"`
}

// ProfessionKeywords maps a profession to its trigger keywords per language.
type ProfessionKeywords struct {
	Code     worker.Profession   `yaml:"code"`
	Keywords map[string][]string `yaml:"keywords"`
}

// Resources is the static NLP configuration. Immutable once loaded.
type Resources struct {
	Languages   map[string]Language  `yaml:"languages"`
	Professions []ProfessionKeywords `yaml:"professions"`
}

// DefaultResources parses the embedded Spanish/English tables.
func DefaultResources() (*Resources, error) {
	return ParseResources(defaultResources)
}

// LoadResources reads tables from a YAML file. An empty path yields the defaults.
func LoadResources(path string) (*Resources, error) {
	if path == "" {
		return DefaultResources()
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read nlp resources %s: %w", path, err)
	}
	return ParseResources(data)
}

// ParseResources decodes and validates a resources document.
func ParseResources(data []byte) (*Resources, error) {
	var r Resources
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse nlp resources: %w", err)
	}
	if len(r.Languages) == 0 {
		return nil, fmt.Errorf("nlp resources: at least one language is required")
	}
	for _, p := range r.Professions {
		if !p.Code.IsValid() {
			return nil, fmt.Errorf("nlp resources: unknown profession %q", p.Code)
		}
	}
	return &r, nil
}

// LanguageCodes returns the configured language codes in sorted order.
func (r *Resources) LanguageCodes() []string {
	codes := make([]string, 0, len(r.Languages))
	for c := range r.Languages {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func (r *Resources) stopwordSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, lang := range r.Languages {
		for _, w := range lang.Stopwords {
			set[w] = struct{}{}
		}
	}
	return set
}

// synonymTable merges per-language synonyms; later languages (sorted) win on key clashes.
func (r *Resources) synonymTable() map[string][]string {
	table := make(map[string][]string)
	for _, code := range r.LanguageCodes() {
		for k, v := range r.Languages[code].Synonyms {
			table[k] = v
		}
	}
	return table
}
