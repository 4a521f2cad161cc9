// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestSectionIntersects(t *testing.T) {
	a := Section{Name: "introduction", StartPage: 0, EndPage: 2}
	tests := []struct {
		name string
		o    Section
		want bool
	}{
		{"overlapping", Section{StartPage: 2, EndPage: 4}, true},
		{"contained", Section{StartPage: 1, EndPage: 1}, true},
		{"adjacent", Section{StartPage: 3, EndPage: 5}, false},
		{"disjoint", Section{StartPage: 7, EndPage: 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.o); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.o.Intersects(a); got != tt.want {
				t.Errorf("Intersects (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCutLengthAndString(t *testing.T) {
	c := Cut{StartPage: 8, EndPage: 9, Reason: "references"}
	if c.Length() != 2 {
		t.Errorf("Length = %d, want 2", c.Length())
	}
	if got, want := c.String(), `(8,9,"references")`; got != want {
		t.Errorf("String = %s, want %s", got, want)
	}
}

func TestStripResultSummary(t *testing.T) {
	r := StripResult{
		PageCount:     10,
		RetainedPages: 6,
		Modified:      true,
		Cuts: []Cut{
			{StartPage: 0, EndPage: 1, Reason: "introduction"},
			{StartPage: 8, EndPage: 9, Reason: "references"},
		},
	}
	if got, want := r.Summary(), "6/10 pages kept, removed introduction, references"; got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
	if r.RemovedPages() != 4 {
		t.Errorf("RemovedPages = %d, want 4", r.RemovedPages())
	}

	unmodified := StripResult{PageCount: 10, RetainedPages: 10}
	if got, want := unmodified.Summary(), "10/10 pages kept (unmodified)"; got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

func TestLinkPolicyValid(t *testing.T) {
	if !LinkDrop.Valid() || !LinkNearestRetained.Valid() {
		t.Error("built-in policies must be valid")
	}
	if LinkPolicy("teleport").Valid() {
		t.Error("unknown policy accepted")
	}
}

func TestStripConfigRemoves(t *testing.T) {
	cfg := DefaultStripConfig()
	for _, name := range []string{"introduction", "background", "acknowledgments", "references"} {
		if !cfg.Removes(name) {
			t.Errorf("default config should remove %q", name)
		}
	}
	if cfg.Removes("methods") {
		t.Error("default config must not remove methods")
	}
}
