package detect

import (
	"github.com/pdiddy/strip-engine/internal/match"
)

// Vocabulary maps canonical section names to the alias phrasings journals
// use for them. Matching runs against every alias and reports the canonical
// name.
type Vocabulary map[string][]string

// DefaultVocabulary returns the built-in section vocabulary for scientific
// papers.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		"introduction":    {"introduction"},
		"background":      {"background", "related work"},
		"methods":         {"methods", "materials and methods", "patients and methods", "methodology", "experimental procedures"},
		"results":         {"results", "findings"},
		"discussion":      {"discussion"},
		"conclusion":      {"conclusion", "conclusions"},
		"acknowledgments": {"acknowledgments", "acknowledgements"},
		"references":      {"references", "bibliography", "works cited"},
		"appendix":        {"appendix", "supplementary material", "supplementary information"},
	}
}

// Extend returns a copy of v with extra aliases merged in. Unknown keys
// introduce new canonical names.
func (v Vocabulary) Extend(extra map[string][]string) Vocabulary {
	if len(extra) == 0 {
		return v
	}
	out := make(Vocabulary, len(v)+len(extra))
	for name, aliases := range v {
		out[name] = append([]string(nil), aliases...)
	}
	for name, aliases := range extra {
		out[name] = append(out[name], aliases...)
	}
	return out
}

// BestMatch scores text against every alias and returns the canonical name
// with the highest score, or ("", 0) for an empty vocabulary.
func (v Vocabulary) BestMatch(text string) (string, float64) {
	bestName := ""
	bestScore := 0.0
	for name, aliases := range v {
		for _, alias := range aliases {
			if s := match.Score(text, alias); s > bestScore {
				bestName, bestScore = name, s
			}
		}
	}
	return bestName, bestScore
}

// terminalSections are the names that appear in a paper's tail matter.
// They scan all pages in the heading detector and may legitimately run to
// the end of the document.
var terminalSections = map[string]bool{
	"acknowledgments": true,
	"references":      true,
	"appendix":        true,
}

// Terminal reports whether name is a tail-matter section.
func Terminal(name string) bool {
	return terminalSections[name]
}
