// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package write

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/strip-engine/pkg/types"
)

func TestRetainedPages(t *testing.T) {
	tests := []struct {
		name      string
		pageCount int
		cuts      []types.Cut
		want      []int
	}{
		{
			"no cuts",
			4,
			nil,
			[]int{0, 1, 2, 3},
		},
		{
			"leading cut",
			6,
			[]types.Cut{{StartPage: 0, EndPage: 1, Reason: "introduction"}},
			[]int{2, 3, 4, 5},
		},
		{
			"trailing cut",
			6,
			[]types.Cut{{StartPage: 4, EndPage: 5, Reason: "references"}},
			[]int{0, 1, 2, 3},
		},
		{
			"both ends",
			10,
			[]types.Cut{
				{StartPage: 0, EndPage: 1, Reason: "introduction"},
				{StartPage: 8, EndPage: 9, Reason: "references"},
			},
			[]int{2, 3, 4, 5, 6, 7},
		},
		{
			"everything removed",
			3,
			[]types.Cut{{StartPage: 0, EndPage: 2, Reason: "references"}},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RetainedPages(tt.pageCount, tt.cuts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RetainedPages = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageSelection(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
		want  []string
	}{
		{"empty", nil, nil},
		{"single page", []int{0}, []string{"1"}},
		{"single run", []int{2, 3, 4}, []string{"3-5"}},
		{"run then gap", []int{0, 1, 2, 6}, []string{"1-3", "7"}},
		{"alternating", []int{0, 2, 4}, []string{"1", "3", "5"}},
		{"two runs", []int{2, 3, 4, 5, 6, 7}, []string{"3-8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageSelection(tt.pages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageSelection(%v) = %v, want %v", tt.pages, got, tt.want)
			}
		})
	}
}

func TestNearestRetained(t *testing.T) {
	retained := []int{2, 3, 4, 5, 6, 7}
	tests := []struct {
		page int
		want int
	}{
		{0, 2},  // before the range clamps forward
		{1, 2},
		{3, 3},  // retained pages map to themselves
		{8, 7},  // past the range clamps back
		{9, 7},
	}
	for _, tt := range tests {
		if got := nearestRetained(retained, tt.page); got != tt.want {
			t.Errorf("nearestRetained(%d) = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestNearestRetainedTieGoesEarlier(t *testing.T) {
	// Page 4 sits exactly between retained 2 and 6.
	if got := nearestRetained([]int{2, 6}, 4); got != 2 {
		t.Errorf("nearestRetained = %d, want 2", got)
	}
}

func TestWriteNoCutsCopiesVerbatim(t *testing.T) {
	dir := t.TempDir()
	src := []byte("%PDF-1.4 fake body for the copy path")
	outPath := filepath.Join(dir, "nested", "out.pdf")

	n, err := Write(src, 7, nil, outPath, types.LinkDrop)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 7 {
		t.Errorf("retained = %d, want 7", n)
	}
	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != string(src) {
		t.Errorf("output differs from input")
	}

	// No temp file may remain beside the output.
	entries, err := os.ReadDir(filepath.Dir(outPath))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "out.pdf" {
			t.Errorf("leftover file %q in output directory", e.Name())
		}
	}
}

func TestWriteRejectsFullRemoval(t *testing.T) {
	dir := t.TempDir()
	cuts := []types.Cut{{StartPage: 0, EndPage: 2, Reason: "references"}}
	_, err := Write([]byte("%PDF-1.4"), 3, cuts, filepath.Join(dir, "out.pdf"), types.LinkDrop)
	if err == nil {
		t.Fatal("Write accepted a cut list covering every page")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.pdf")); !os.IsNotExist(statErr) {
		t.Error("output file exists after failed write")
	}
}
