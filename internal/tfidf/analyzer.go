package tfidf

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenRunes drops single-character tokens.
const minTokenRunes = 2

// foldAccents removes combining marks: "tubería" -> "tuberia".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// tokenize splits on anything that is not a letter, digit or underscore.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minTokenRunes {
			out = append(out, f)
		}
	}
	return out
}

// analyze produces the n-gram terms of text, from unigrams up to maxN.
func analyze(text string, maxN int) []string {
	tokens := tokenize(strings.ToLower(foldAccents(text)))
	if maxN < 1 {
		maxN = 1
	}
	terms := make([]string, 0, len(tokens)*maxN)
	terms = append(terms, tokens...)
	for n := 2; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func termCounts(text string, maxN int) map[string]int {
	counts := make(map[string]int)
	for _, t := range analyze(text, maxN) {
		counts[t]++
	}
	return counts
}
