package detect

import (
	"sort"
	"strings"

	"github.com/pdiddy/strip-engine/internal/pdfio"
	"github.com/pdiddy/strip-engine/pkg/types"
)

// HeadingDetector derives sections from heading-like text lines. It is the
// fallback signal for documents without a usable outline; its confidence
// scores carry the configured penalty because in-page text is noisier than
// explicit outline metadata.
type HeadingDetector struct {
	Cfg   types.StripConfig
	Vocab Vocabulary

	// Targets restricts which canonical names are reported. Nil reports
	// every vocabulary match. Non-target matches still contribute end-page
	// boundaries, so a gap-fill run for "references" can be bounded by an
	// already-resolved "discussion" heading.
	Targets map[string]bool
}

// Source returns the detector's source tag.
func (d HeadingDetector) Source() types.DetectorSource {
	return types.SourceHeading
}

type headingCandidate struct {
	name  string
	page  int
	score float64
	text  string
}

// Detect scans pages for heading-like lines and fuzzy-matches them against
// the vocabulary. For each canonical name the earliest matching page wins
// (the best-scoring line on that page). Body sections are only looked for
// in the first HeadingScanPages pages; tail-matter sections scan the whole
// document.
func (d HeadingDetector) Detect(doc Document) ([]types.Section, error) {
	n := doc.PageCount()
	scanLimit := d.Cfg.HeadingScanPages
	if scanLimit <= 0 || scanLimit > n {
		scanLimit = n
	}

	best := make(map[string]headingCandidate)
	for i := 0; i < n; i++ {
		page, err := doc.Page(i)
		if err != nil {
			return nil, err
		}
		median := medianFontSize(page.Lines)
		for _, line := range page.Lines {
			if !d.headingLike(line, median) {
				continue
			}
			name, score := d.Vocab.BestMatch(line.Text)
			if name == "" || score < d.Cfg.MinHeadingScore {
				continue
			}
			if !Terminal(name) && i >= scanLimit {
				continue
			}
			prev, seen := best[name]
			if seen && (prev.page < i || prev.score >= score) {
				continue
			}
			best[name] = headingCandidate{name: name, page: i, score: score, text: line.Text}
		}
	}
	if len(best) == 0 {
		return nil, nil
	}

	candidates := make([]headingCandidate, 0, len(best))
	for _, c := range best {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].page < candidates[b].page })

	penalty := d.Cfg.HeadingConfidencePenalty
	if penalty <= 0 || penalty > 1 {
		penalty = 1
	}

	var sections []types.Section
	for i, c := range candidates {
		if d.Targets != nil && !d.Targets[c.name] {
			continue
		}
		end := n - 1
		open := true
		for _, next := range candidates[i+1:] {
			if next.page > c.page {
				end = next.page - 1
				open = false
				break
			}
		}
		sections = append(sections, types.Section{
			Name:       c.name,
			StartPage:  c.page,
			EndPage:    end,
			Source:     types.SourceHeading,
			Confidence: c.score * penalty,
			RawText:    c.text,
			OpenEnded:  open,
		})
	}
	return sections, nil
}

// headingLike applies the layout heuristics: brevity, a font visibly larger
// than the page median (or boldness), and not reading like a running
// sentence.
func (d HeadingDetector) headingLike(line pdfio.Line, median float64) bool {
	t := strings.TrimSpace(line.Text)
	if t == "" {
		return false
	}
	maxChars := d.Cfg.HeadingMaxChars
	if maxChars <= 0 {
		maxChars = 80
	}
	if len(t) > maxChars {
		return false
	}
	if median > 0 && line.FontSize > 0 && !line.Bold {
		ratio := d.Cfg.HeadingMinFontRatio
		if ratio <= 0 {
			ratio = 1.1
		}
		if line.FontSize/median < ratio {
			return false
		}
	}
	// A multi-word line ending in a period is body text, not a title.
	if strings.HasSuffix(t, ".") && len(strings.Fields(t)) > 3 {
		return false
	}
	return true
}

// medianFontSize returns the lower median of the known font sizes on a
// page. Pages with fewer than three sized lines cannot establish a body
// size, so they report 0 and the font-ratio check is skipped for them.
func medianFontSize(lines []pdfio.Line) float64 {
	sizes := make([]float64, 0, len(lines))
	for _, l := range lines {
		if l.FontSize > 0 {
			sizes = append(sizes, l.FontSize)
		}
	}
	if len(sizes) < 3 {
		return 0
	}
	sort.Float64s(sizes)
	return sizes[(len(sizes)-1)/2]
}
