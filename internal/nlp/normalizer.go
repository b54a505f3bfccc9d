// Package nlp turns free text into comparable token streams.
package nlp

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// Normalizer lowercases, strips, expands synonyms and drops stopwords.
// Safe for concurrent use.
type Normalizer struct {
	stopwords   map[string]struct{}
	synonyms    map[string][]string
	professions []professionRule
}

type professionRule struct {
	code     worker.Profession
	keywords []string
}

// NewNormalizer builds a Normalizer from the given tables.
func NewNormalizer(r *Resources) *Normalizer {
	n := &Normalizer{
		stopwords: r.stopwordSet(),
		synonyms:  r.synonymTable(),
	}
	for _, p := range r.Professions {
		rule := professionRule{code: p.Code}
		for _, code := range sortedKeys(p.Keywords) {
			rule.keywords = append(rule.keywords, p.Keywords[code]...)
		}
		n.professions = append(n.professions, rule)
	}
	return n
}

// Normalize runs the pipeline: lowercase, strip, expand synonyms, drop stopwords, collapse.
// Synonyms are expanded before stopword removal so that a trigger which is itself a
// stopword still contributes its variants.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = strings.Map(keepRune, text)
	text = n.expandSynonyms(text)

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, stop := n.stopwords[w]; !stop {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// DetectProfession returns the first profession whose keyword occurs in text.
func (n *Normalizer) DetectProfession(text string) (worker.Profession, bool) {
	text = strings.ToLower(text)
	for _, rule := range n.professions {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.code, true
			}
		}
	}
	return "", false
}

func (n *Normalizer) expandSynonyms(text string) string {
	words := strings.Fields(text)
	var b strings.Builder
	b.WriteString(text)
	for _, w := range words {
		for _, syn := range n.synonyms[w] {
			b.WriteByte(' ')
			b.WriteString(syn)
		}
	}
	return b.String()
}

// keepRune maps anything outside [a-z0-9áéíóúñü] and whitespace to a space.
func keepRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return r
	case unicode.IsSpace(r):
		return ' '
	}
	switch r {
	case 'á', 'é', 'í', 'ó', 'ú', 'ñ', 'ü':
		return r
	}
	return ' '
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
