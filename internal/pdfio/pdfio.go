// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio provides read access to a PDF document for section
// detection: page count, the flattened outline tree, and per-page text
// lines with font-size and position metadata.
package pdfio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoPages reports a structurally valid PDF with an empty page tree.
var ErrNoPages = errors.New("pdf has no pages")

// OutlineEntry is one flattened bookmark: a title and its zero-based
// target page.
type OutlineEntry struct {
	Title string
	Page  int
}

// Line is one extracted text line with layout metadata. FontSize and Y are
// zero when the content stream did not expose them.
type Line struct {
	Text     string
	FontSize float64
	Y        float64
	Bold     bool
}

// Page holds the extracted lines of one page.
type Page struct {
	Index int
	Lines []Line
}

// Document is a loaded PDF. It owns the raw bytes plus the parsed pdfcpu
// context and is read-only for its lifetime.
type Document struct {
	data      []byte
	ctx       *model.Context
	conf      *model.Configuration
	pageCount int
}

// Load parses and validates the document. A corrupt PDF or an empty page
// tree is an input error for the whole document.
func Load(data []byte) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	if ctx.PageCount == 0 {
		return nil, ErrNoPages
	}
	return &Document{
		data:      data,
		ctx:       ctx,
		conf:      conf,
		pageCount: ctx.PageCount,
	}, nil
}

// Bytes returns the original document bytes.
func (d *Document) Bytes() []byte {
	return d.data
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.pageCount
}

// Outline returns the bookmark tree flattened to document order. A missing
// or empty outline yields an empty slice; that is a signal to fall back to
// heading detection, not an error.
func (d *Document) Outline() []OutlineEntry {
	bms, err := api.Bookmarks(bytes.NewReader(d.data), d.conf)
	if err != nil {
		// pdfcpu reports an absent outline as an error.
		return nil
	}
	var entries []OutlineEntry
	flattenBookmarks(bms, &entries)
	return entries
}

func flattenBookmarks(bms []pdfcpu.Bookmark, out *[]OutlineEntry) {
	for _, bm := range bms {
		if bm.Title != "" && bm.PageFrom >= 1 {
			*out = append(*out, OutlineEntry{Title: bm.Title, Page: bm.PageFrom - 1})
		}
		if len(bm.Kids) > 0 {
			flattenBookmarks(bm.Kids, out)
		}
	}
}

// Page extracts the text lines of the zero-based page index.
func (d *Document) Page(index int) (Page, error) {
	if index < 0 || index >= d.pageCount {
		return Page{}, fmt.Errorf("page index %d out of range [0,%d)", index, d.pageCount)
	}
	r, err := pdfcpu.ExtractPageContent(d.ctx, index+1)
	if err != nil {
		return Page{Index: index}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return Page{Index: index}, nil
	}
	return Page{Index: index, Lines: ScanContent(data)}, nil
}
