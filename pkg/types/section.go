// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// DetectorSource identifies which detector produced a Section.
type DetectorSource string

const (
	// SourceOutline marks sections derived from the PDF bookmark tree.
	SourceOutline DetectorSource = "outline"

	// SourceHeading marks sections derived from in-page heading text.
	SourceHeading DetectorSource = "heading"
)

// Section is one detected logical section of a document. Sections are value
// objects: detectors create them and the planner replaces rather than edits
// them.
type Section struct {
	// Name is the canonical vocabulary label (e.g. "references").
	Name string `json:"name" yaml:"name"`

	// StartPage and EndPage are zero-based inclusive page indices,
	// 0 <= StartPage <= EndPage < page count.
	StartPage int `json:"start_page" yaml:"start_page"`
	EndPage   int `json:"end_page" yaml:"end_page"`

	// Source is the detector that produced the section.
	Source DetectorSource `json:"source" yaml:"source"`

	// Confidence is the match score in [0,1]. Heading-sourced scores carry
	// a configured penalty relative to outline-sourced ones.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// RawText is the matched heading or outline title, for diagnostics.
	RawText string `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`

	// OpenEnded marks a section whose EndPage was inferred as "rest of
	// document" because no following boundary was found.
	OpenEnded bool `json:"open_ended,omitempty" yaml:"open_ended,omitempty"`
}

// Pages returns the number of pages the section spans.
func (s Section) Pages() int {
	return s.EndPage - s.StartPage + 1
}

// Intersects reports whether the page ranges of s and o overlap.
func (s Section) Intersects(o Section) bool {
	return s.StartPage <= o.EndPage && o.StartPage <= s.EndPage
}

func (s Section) String() string {
	return fmt.Sprintf("%s pages %d-%d (%s %.2f)", s.Name, s.StartPage, s.EndPage, s.Source, s.Confidence)
}

// Cut is one contiguous inclusive page range slated for removal. A planned
// cut list is sorted ascending by StartPage, pairwise non-overlapping, and
// never merges ranges separated by a retained page.
type Cut struct {
	StartPage int `json:"start_page" yaml:"start_page"`
	EndPage   int `json:"end_page" yaml:"end_page"`

	// Reason lists the section name(s) that produced the cut.
	Reason string `json:"reason" yaml:"reason"`
}

// Length returns the number of pages the cut removes.
func (c Cut) Length() int {
	return c.EndPage - c.StartPage + 1
}

func (c Cut) String() string {
	return fmt.Sprintf("(%d,%d,%q)", c.StartPage, c.EndPage, c.Reason)
}

// StripResult records the outcome of processing one document.
type StripResult struct {
	// Input and Output are the source and destination paths.
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`

	// PageCount is the original page count.
	PageCount int `json:"page_count" yaml:"page_count"`

	// RetainedPages is the page count of the output document.
	RetainedPages int `json:"retained_pages" yaml:"retained_pages"`

	// Cuts lists the applied removals in page order.
	Cuts []Cut `json:"cuts,omitempty" yaml:"cuts,omitempty"`

	// Sections lists every detection, including sections not removed.
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty"`

	// Modified is false when no cuts were necessary and the output equals
	// the input.
	Modified bool `json:"modified" yaml:"modified"`
}

// RemovedPages returns the total number of pages covered by the cut list.
func (r StripResult) RemovedPages() int {
	n := 0
	for _, c := range r.Cuts {
		n += c.Length()
	}
	return n
}

// Summary returns a one-line human-readable description of the result.
func (r StripResult) Summary() string {
	if !r.Modified {
		return fmt.Sprintf("%d/%d pages kept (unmodified)", r.RetainedPages, r.PageCount)
	}
	reasons := make([]string, 0, len(r.Cuts))
	for _, c := range r.Cuts {
		reasons = append(reasons, c.Reason)
	}
	return fmt.Sprintf("%d/%d pages kept, removed %s", r.RetainedPages, r.PageCount, strings.Join(reasons, ", "))
}
