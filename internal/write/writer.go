// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package write materializes a cut plan: it produces a new PDF holding
// exactly the retained pages in original order. Output goes to a temporary
// file that is renamed into place only on success, so a cancelled or failed
// run never leaves a partial document at the final path.
package write

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/strip-engine/pkg/types"
)

// Write produces outPath from the source bytes with the cut pages removed.
// An empty cut list copies the input verbatim. It returns the number of
// retained pages. Page content is reproduced by pdfcpu's page-level copy;
// any failure there or in the filesystem surfaces as an error with the
// temporary output discarded.
func Write(src []byte, pageCount int, cuts []types.Cut, outPath string, policy types.LinkPolicy) (int, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	if len(cuts) == 0 {
		if err := commit(src, outPath); err != nil {
			return 0, err
		}
		return pageCount, nil
	}

	retained := RetainedPages(pageCount, cuts)
	if len(retained) == 0 {
		return 0, fmt.Errorf("cut list removes all %d pages", pageCount)
	}

	conf := model.NewDefaultConfiguration()
	var trimmed bytes.Buffer
	if err := api.Trim(bytes.NewReader(src), &trimmed, PageSelection(retained), conf); err != nil {
		return 0, fmt.Errorf("copying retained pages: %w", err)
	}

	out, err := retargetBookmarks(src, trimmed.Bytes(), retained, policy, conf)
	if err != nil {
		return 0, err
	}

	if err := commit(out, outPath); err != nil {
		return 0, err
	}
	return len(retained), nil
}

// commit writes data through a temp file in the destination directory and
// renames it into place.
func commit(data []byte, outPath string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".strip-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// RetainedPages returns the zero-based pages not covered by cuts, in order.
// Cuts are assumed sorted and disjoint (the planner's invariant).
func RetainedPages(pageCount int, cuts []types.Cut) []int {
	removed := make(map[int]bool)
	for _, c := range cuts {
		for p := c.StartPage; p <= c.EndPage; p++ {
			removed[p] = true
		}
	}
	var pages []int
	for p := 0; p < pageCount; p++ {
		if !removed[p] {
			pages = append(pages, p)
		}
	}
	return pages
}

// PageSelection converts zero-based page indices into pdfcpu's 1-based
// selection strings, compressing consecutive runs ("1-3", "7").
func PageSelection(pages []int) []string {
	if len(pages) == 0 {
		return nil
	}
	var sel []string
	runStart := pages[0]
	prev := pages[0]
	emit := func(start, end int) {
		if start == end {
			sel = append(sel, fmt.Sprintf("%d", start+1))
		} else {
			sel = append(sel, fmt.Sprintf("%d-%d", start+1, end+1))
		}
	}
	for _, p := range pages[1:] {
		if p != prev+1 {
			emit(runStart, prev)
			runStart = p
		}
		prev = p
	}
	emit(runStart, prev)
	return sel
}

// retargetBookmarks rewrites the outline of the trimmed document according
// to the link policy. Entries targeting retained pages are renumbered;
// entries targeting removed pages are dropped (hoisting their children) or
// redirected to the nearest retained page. Documents without an outline
// pass through untouched.
func retargetBookmarks(src, trimmed []byte, retained []int, policy types.LinkPolicy, conf *model.Configuration) ([]byte, error) {
	bms, err := api.Bookmarks(bytes.NewReader(src), conf)
	if err != nil || len(bms) == 0 {
		return trimmed, nil
	}

	oldToNew := make(map[int]int, len(retained))
	for newIdx, oldIdx := range retained {
		oldToNew[oldIdx+1] = newIdx + 1
	}

	remapped := remapBookmarks(bms, oldToNew, retained, policy)
	var out bytes.Buffer
	if len(remapped) == 0 {
		if err := api.RemoveBookmarks(bytes.NewReader(trimmed), &out, conf); err != nil {
			return nil, fmt.Errorf("removing outline: %w", err)
		}
		return out.Bytes(), nil
	}
	if err := api.AddBookmarks(bytes.NewReader(trimmed), &out, remapped, true, conf); err != nil {
		return nil, fmt.Errorf("rewriting outline: %w", err)
	}
	return out.Bytes(), nil
}

func remapBookmarks(bms []pdfcpu.Bookmark, oldToNew map[int]int, retained []int, policy types.LinkPolicy) []pdfcpu.Bookmark {
	var out []pdfcpu.Bookmark
	for _, bm := range bms {
		kids := remapBookmarks(bm.Kids, oldToNew, retained, policy)
		newPage, kept := oldToNew[bm.PageFrom]
		if !kept {
			if policy == types.LinkNearestRetained {
				newPage = oldToNew[nearestRetained(retained, bm.PageFrom-1)+1]
				kept = true
			} else {
				// Drop the entry, hoist surviving children.
				out = append(out, kids...)
				continue
			}
		}
		out = append(out, pdfcpu.Bookmark{
			Title:    bm.Title,
			PageFrom: newPage,
			Bold:     bm.Bold,
			Italic:   bm.Italic,
			Kids:     kids,
		})
	}
	return out
}

// nearestRetained returns the retained zero-based page closest to page.
// Ties resolve to the earlier page.
func nearestRetained(retained []int, page int) int {
	i := sort.SearchInts(retained, page)
	if i == 0 {
		return retained[0]
	}
	if i == len(retained) {
		return retained[len(retained)-1]
	}
	before, after := retained[i-1], retained[i]
	if page-before <= after-page {
		return before
	}
	return after
}
