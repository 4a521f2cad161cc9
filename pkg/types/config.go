package types

// LinkPolicy selects how internal links and outline entries pointing into a
// removed page range are handled by the writer.
type LinkPolicy string

const (
	// LinkDrop discards links whose target page was removed.
	LinkDrop LinkPolicy = "drop"

	// LinkNearestRetained retargets links to the closest retained page.
	LinkNearestRetained LinkPolicy = "nearest-retained"
)

// Valid reports whether p is a recognized link policy.
func (p LinkPolicy) Valid() bool {
	return p == LinkDrop || p == LinkNearestRetained
}

// StripConfig holds settings for section detection and removal.
type StripConfig struct {
	// SectionsToRemove lists canonical vocabulary names to strip
	// (e.g. introduction, background, acknowledgments, references).
	// Empty means stripping is disabled and detectors are never run.
	SectionsToRemove []string `json:"sections_to_remove" yaml:"sections_to_remove"`

	// MinHeadingScore is the fuzzy-match acceptance threshold in [0,1]
	// (default 0.8).
	MinHeadingScore float64 `json:"min_heading_score" yaml:"min_heading_score"`

	// UseHeadingFallback controls whether the heading detector runs when
	// the outline does not resolve every removal target (default true).
	UseHeadingFallback bool `json:"use_heading_fallback" yaml:"use_heading_fallback"`

	// HeadingFullScan runs the heading detector over the whole vocabulary
	// instead of gap-filling only the targets the outline missed.
	HeadingFullScan bool `json:"heading_full_scan" yaml:"heading_full_scan"`

	// HeadingConfidencePenalty scales heading-sourced match scores relative
	// to outline-sourced ones (default 0.85). Heading-text matches are
	// noisier than explicit outline metadata; the value is a heuristic
	// constant with no principled derivation.
	HeadingConfidencePenalty float64 `json:"heading_confidence_penalty" yaml:"heading_confidence_penalty"`

	// HeadingMaxChars is the maximum length of a heading-like line
	// (default 80).
	HeadingMaxChars int `json:"heading_max_chars" yaml:"heading_max_chars"`

	// HeadingMinFontRatio is the minimum heading-font to median-font ratio
	// for a line to count as heading-like (default 1.1). Ignored when font
	// sizes are unavailable.
	HeadingMinFontRatio float64 `json:"heading_min_font_ratio" yaml:"heading_min_font_ratio"`

	// HeadingScanPages bounds the heading scan for body sections to the
	// first N pages (default 12). Terminal sections such as references and
	// acknowledgments always scan the full document.
	HeadingScanPages int `json:"heading_scan_pages" yaml:"heading_scan_pages"`

	// KeepFirstPages protects the first N pages from removal regardless of
	// detection (title page, abstract). Default 0.
	KeepFirstPages int `json:"keep_first_pages" yaml:"keep_first_pages"`

	// RequireLowerBoundary skips removal of a body section whose end page
	// was inferred only as "rest of document" rather than from a following
	// boundary. Guards against open-ended introduction cuts.
	RequireLowerBoundary bool `json:"require_lower_boundary" yaml:"require_lower_boundary"`

	// LinkPolicy selects handling of links into removed ranges
	// (default drop).
	LinkPolicy LinkPolicy `json:"link_policy" yaml:"link_policy"`

	// VocabularyExtra adds alias lists to the built-in vocabulary,
	// keyed by canonical section name.
	VocabularyExtra map[string][]string `json:"vocabulary_extra,omitempty" yaml:"vocabulary_extra,omitempty"`

	// Debug emits per-candidate diagnostic traces (boundary, score, source).
	Debug bool `json:"debug" yaml:"debug"`
}

// DefaultStripConfig returns a StripConfig with the standard thresholds and
// the usual removal set for scientific papers.
func DefaultStripConfig() StripConfig {
	return StripConfig{
		SectionsToRemove:         []string{"introduction", "background", "acknowledgments", "references"},
		MinHeadingScore:          0.8,
		UseHeadingFallback:       true,
		HeadingConfidencePenalty: 0.85,
		HeadingMaxChars:          80,
		HeadingMinFontRatio:      1.1,
		HeadingScanPages:         12,
		LinkPolicy:               LinkDrop,
	}
}

// Removes reports whether name is in the removal set.
func (c StripConfig) Removes(name string) bool {
	for _, n := range c.SectionsToRemove {
		if n == name {
			return true
		}
	}
	return false
}

// BatchConfig holds settings for batch processing.
type BatchConfig struct {
	// InputDir is scanned for *.pdf files in batch mode.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives stripped PDFs and YAML sidecars.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ReportDir receives the SQLite run log (default "reports").
	ReportDir string `json:"report_dir" yaml:"report_dir"`

	// Workers bounds concurrent document processing (default: NumCPU).
	Workers int `json:"workers" yaml:"workers"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Strip StripConfig `json:"strip" yaml:"strip"`
	Batch BatchConfig `json:"batch" yaml:"batch"`
}
