// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect finds section boundaries in a PDF. Two detectors implement
// the same capability: one reads the document outline (authoritative when
// present), one scans page text for heading-like lines (fallback). The
// planner composes them in priority order.
package detect

import (
	"github.com/pdiddy/strip-engine/internal/pdfio"
	"github.com/pdiddy/strip-engine/pkg/types"
)

// Document is the read-only view of a loaded PDF that detectors consume.
// *pdfio.Document satisfies it; tests substitute fakes.
type Document interface {
	PageCount() int
	Outline() []pdfio.OutlineEntry
	Page(index int) (pdfio.Page, error)
}

// BoundaryDetector produces candidate sections from one signal source.
// An empty result is not an error; it signals "no boundaries found here,
// fall through to the next detector".
type BoundaryDetector interface {
	Source() types.DetectorSource
	Detect(doc Document) ([]types.Section, error)
}
