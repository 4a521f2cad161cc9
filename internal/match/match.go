// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match scores candidate heading text against canonical section
// names. Scoring is a pure function over normalized strings so that the
// threshold and the underlying metrics stay swappable.
package match

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Metric instances are stateless after construction and safe for
// concurrent Compare calls.
var (
	levenshtein = metrics.NewLevenshtein()
	jaroWinkler = metrics.NewJaroWinkler()
	diceBigram  = metrics.NewSorensenDice()
)

// Normalize lowercases s, replaces punctuation with spaces, collapses
// whitespace, and strips leading numbering tokens ("3.", "4)", "IV.").
// Outline titles and heading lines commonly carry section numbers that
// must not count against the match.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	tokens := strings.Fields(b.String())
	for len(tokens) > 1 && isNumberingToken(tokens[0]) {
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

// isNumberingToken reports whether tok is a section number ("3", "12") or a
// short roman numeral ("iv", "xii").
func isNumberingToken(tok string) bool {
	digits := true
	for _, r := range tok {
		if r < '0' || r > '9' {
			digits = false
			break
		}
	}
	if digits {
		return true
	}
	if len(tok) > 4 {
		return false
	}
	for _, r := range tok {
		if !strings.ContainsRune("ivxlcdm", r) {
			return false
		}
	}
	return true
}

// Score returns a similarity in [0,1] between candidate text and a
// vocabulary name. It takes the best of Levenshtein ratio, Jaro-Winkler,
// Sørensen-Dice bigrams, and whole-token containment, so that both
// misspellings ("Acknowledgements") and decorated titles
// ("4. References and Notes") score high against their canonical name.
func Score(candidate, name string) float64 {
	c := Normalize(candidate)
	n := Normalize(name)
	if c == "" || n == "" {
		return 0
	}
	if c == n {
		return 1
	}

	best := strutil.Similarity(c, n, levenshtein)
	if s := strutil.Similarity(c, n, jaroWinkler); s > best {
		best = s
	}
	if s := strutil.Similarity(c, n, diceBigram); s > best {
		best = s
	}
	if containsAllTokens(c, n) {
		best = 1
	}
	return best
}

// containsAllTokens reports whether every token of name occurs among the
// tokens of candidate. Mirrors token-set matching, where a title that
// embeds the full section name is a perfect match.
func containsAllTokens(candidate, name string) bool {
	have := make(map[string]bool)
	for _, t := range strings.Fields(candidate) {
		have[t] = true
	}
	for _, t := range strings.Fields(name) {
		if !have[t] {
			return false
		}
	}
	return true
}
