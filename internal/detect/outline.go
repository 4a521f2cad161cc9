package detect

import (
	"github.com/pdiddy/strip-engine/pkg/types"
)

// OutlineDetector derives sections from the PDF bookmark tree. Outline
// entries carry explicit target pages, so matches are taken at face value
// with the match score as confidence.
type OutlineDetector struct {
	Cfg   types.StripConfig
	Vocab Vocabulary
}

// Source returns the detector's source tag.
func (d OutlineDetector) Source() types.DetectorSource {
	return types.SourceOutline
}

// Detect fuzzy-matches every outline title against the vocabulary. A match
// at or above the configured threshold becomes a section starting at the
// entry's target page and ending on the page before the next entry's
// target (or the last page for the final entry). An absent or unmatched
// outline returns an empty slice and no error.
func (d OutlineDetector) Detect(doc Document) ([]types.Section, error) {
	entries := doc.Outline()
	if len(entries) == 0 {
		return nil, nil
	}

	lastPage := doc.PageCount() - 1
	var sections []types.Section
	for i, e := range entries {
		if e.Page < 0 || e.Page > lastPage {
			continue
		}
		name, score := d.Vocab.BestMatch(e.Title)
		if name == "" || score < d.Cfg.MinHeadingScore {
			continue
		}

		// The section runs until the next entry that targets a later page.
		// Entries on the same page (subsections, say) do not end it early.
		end := lastPage
		open := true
		for _, next := range entries[i+1:] {
			if next.Page > e.Page {
				end = next.Page - 1
				open = false
				break
			}
		}

		sections = append(sections, types.Section{
			Name:       name,
			StartPage:  e.Page,
			EndPage:    end,
			Source:     types.SourceOutline,
			Confidence: score,
			RawText:    e.Title,
			OpenEnded:  open,
		})
	}
	return sections, nil
}
