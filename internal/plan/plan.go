// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan reconciles section candidates from both detectors into a
// minimal, non-overlapping cut list. An off-by-one here silently corrupts
// scientific content, so every transformation keeps the invariants
// explicit: cuts are sorted, pairwise disjoint, separated by at least one
// retained page, and never cover the whole document.
package plan

import (
	"errors"
	"sort"
	"strings"

	"github.com/pdiddy/strip-engine/internal/detect"
	"github.com/pdiddy/strip-engine/pkg/types"
)

// ErrCoversAll reports that the planned cuts would remove every page even
// after dropping low-confidence candidates. The document must pass through
// unmodified instead of becoming empty.
var ErrCoversAll = errors.New("planned cuts would remove every page")

// Plan is the planner's immutable output.
type Plan struct {
	// Cuts is the final removal list, sorted and disjoint.
	Cuts []types.Cut

	// Sections lists every detection that went into planning, removed or
	// not, for diagnostics.
	Sections []types.Section
}

// Build produces the cut list for a document with pageCount pages from the
// combined detector candidates. Candidates may overlap, duplicate one
// another across sources, or reach outside the page range; Build resolves
// all of that and never mutates its inputs.
func Build(sections []types.Section, cfg types.StripConfig, pageCount int) (Plan, error) {
	p := Plan{Sections: sections}
	if pageCount <= 0 || len(sections) == 0 || len(cfg.SectionsToRemove) == 0 {
		return p, nil
	}

	kept := dedupe(sections)
	kept = filterRemovable(kept, cfg)
	kept = clamp(kept, cfg.KeepFirstPages, pageCount)

	// Merge, then guard against total removal: drop the lowest-confidence
	// contributor and replan until at least one page survives. If the guard
	// keeps tripping down to the last candidate, the detection is degenerate
	// and the document must pass through unmodified.
	for {
		cuts := merge(kept)
		if len(cuts) == 0 || covered(cuts) < pageCount {
			p.Cuts = cuts
			return p, nil
		}
		if len(kept) == 1 {
			return p, ErrCoversAll
		}
		kept = dropLowestConfidence(kept)
	}
}

// dedupe keeps, for each group of same-name sections with intersecting
// ranges, only the highest-confidence one. Outline-sourced sections win
// confidence ties because the outline is structurally authoritative.
// Same-name sections on disjoint ranges are distinct physical sections and
// all survive.
func dedupe(sections []types.Section) []types.Section {
	ordered := append([]types.Section(nil), sections...)
	sort.SliceStable(ordered, func(a, b int) bool {
		if ordered[a].Confidence != ordered[b].Confidence {
			return ordered[a].Confidence > ordered[b].Confidence
		}
		return ordered[a].Source == types.SourceOutline && ordered[b].Source != types.SourceOutline
	})

	var kept []types.Section
	for _, s := range ordered {
		duplicate := false
		for _, k := range kept {
			if k.Name == s.Name && k.Intersects(s) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, s)
		}
	}
	return kept
}

// filterRemovable retains sections named in the removal set. When
// RequireLowerBoundary is set, an open-ended body section (no following
// boundary bounded its end) is skipped rather than cut to the end of the
// document.
func filterRemovable(sections []types.Section, cfg types.StripConfig) []types.Section {
	var out []types.Section
	for _, s := range sections {
		if !cfg.Removes(s.Name) {
			continue
		}
		if cfg.RequireLowerBoundary && s.OpenEnded && !detect.Terminal(s.Name) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// clamp clips each section to [keepFirst, pageCount-1] and discards any
// whose range becomes empty. Invalid candidates are dropped, never fatal.
func clamp(sections []types.Section, keepFirst, pageCount int) []types.Section {
	if keepFirst < 0 {
		keepFirst = 0
	}
	var out []types.Section
	for _, s := range sections {
		start, end := s.StartPage, s.EndPage
		if start < keepFirst {
			start = keepFirst
		}
		if end > pageCount-1 {
			end = pageCount - 1
		}
		if start > end || start >= pageCount || end < 0 {
			continue
		}
		s.StartPage, s.EndPage = start, end
		out = append(out, s)
	}
	return out
}

// merge sorts sections by start page and folds overlapping or contiguous
// ranges into single cuts, concatenating reason labels. Ranges separated by
// a retained page stay separate cuts.
func merge(sections []types.Section) []types.Cut {
	if len(sections) == 0 {
		return nil
	}
	ordered := append([]types.Section(nil), sections...)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].StartPage < ordered[b].StartPage
	})

	var cuts []types.Cut
	cur := types.Cut{
		StartPage: ordered[0].StartPage,
		EndPage:   ordered[0].EndPage,
		Reason:    ordered[0].Name,
	}
	for _, s := range ordered[1:] {
		if s.StartPage <= cur.EndPage+1 {
			if s.EndPage > cur.EndPage {
				cur.EndPage = s.EndPage
			}
			cur.Reason = joinReason(cur.Reason, s.Name)
			continue
		}
		cuts = append(cuts, cur)
		cur = types.Cut{StartPage: s.StartPage, EndPage: s.EndPage, Reason: s.Name}
	}
	return append(cuts, cur)
}

// joinReason appends name to a "+"-joined reason label, skipping names
// already present.
func joinReason(reason, name string) string {
	for _, r := range strings.Split(reason, "+") {
		if r == name {
			return reason
		}
	}
	return reason + "+" + name
}

// covered returns the total page count a cut list removes.
func covered(cuts []types.Cut) int {
	n := 0
	for _, c := range cuts {
		n += c.Length()
	}
	return n
}

// dropLowestConfidence removes the single weakest section.
func dropLowestConfidence(sections []types.Section) []types.Section {
	lowest := 0
	for i, s := range sections {
		if s.Confidence < sections[lowest].Confidence {
			lowest = i
		}
	}
	out := make([]types.Section, 0, len(sections)-1)
	out = append(out, sections[:lowest]...)
	return append(out, sections[lowest+1:]...)
}
