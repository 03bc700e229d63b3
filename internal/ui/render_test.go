package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/henri123lemoine/arbor/internal/menu"
	"github.com/henri123lemoine/arbor/internal/tree"
)

func expandedSampleRows(t *testing.T, opts ...tree.Option) []tree.Row {
	t.Helper()
	forest := menu.Sample()
	r := tree.New(opts...)
	for _, p := range []tree.Path{{1}, {1, 0}} {
		if !r.Toggle(forest, p) {
			t.Fatalf("Toggle(%v) failed", p)
		}
	}
	return r.Rows(forest)
}

func TestTreeLinesWithGuides(t *testing.T) {
	rows := expandedSampleRows(t)
	got := TreeLines(rows, TreeOptions{ShowGuides: true, ShowCounts: true})

	want := []string{
		"· Home",
		"▾ Profile",
		"└─ ▾ Details",
		"   └─ ▸ Location (1)",
		"▸ Settings (2)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TreeLines mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeLinesPipesForOpenSiblings(t *testing.T) {
	forest := menu.Forest{
		{Name: "A", Children: []menu.Node{
			{Name: "A1", Children: []menu.Node{{Name: "x"}}},
			{Name: "A2"},
		}},
	}
	r := tree.New()
	r.Toggle(forest, tree.Path{0})
	r.Toggle(forest, tree.Path{0, 0})

	got := TreeLines(r.Rows(forest), TreeOptions{ShowGuides: true})
	want := []string{
		"▾ A",
		"├─ ▾ A1",
		"│  └─ · x",
		"└─ · A2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TreeLines mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeLinesPlainIndent(t *testing.T) {
	rows := expandedSampleRows(t)
	got := TreeLines(rows, TreeOptions{ShowTargets: true})

	want := []string{
		"· Home → /",
		"▾ Profile → /profile",
		"  ▾ Details → details",
		"    ▸ Location → location",
		"▸ Settings → /settings",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TreeLines mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeLinesTruncated(t *testing.T) {
	forest := menu.Sample()
	r := tree.New(tree.WithMaxDepth(2))
	r.Toggle(forest, tree.Path{1})

	got := TreeLines(r.Rows(forest), TreeOptions{ShowCounts: true})
	if !strings.Contains(got[2], "⋯ Details (depth limit)") {
		t.Errorf("Expected truncated marker, got %q", got[2])
	}
}

func TestRenderListStates(t *testing.T) {
	rows := expandedSampleRows(t)

	tests := []struct {
		name   string
		params RenderParams
		want   []string
	}{
		{
			name:   "rows",
			params: RenderParams{Source: "sample", Rows: rows, Width: 100, Height: 30},
			want:   []string{"MENU", "sample", "Profile", "Location", "q quit"},
		},
		{
			name:   "loading",
			params: RenderParams{Loading: true, Width: 100, Height: 30},
			want:   []string{"Loading menu"},
		},
		{
			name:   "empty",
			params: RenderParams{Width: 100, Height: 30},
			want:   []string{"Menu is empty"},
		},
		{
			name:   "error keeps rows",
			params: RenderParams{Rows: rows, Err: errors.New("read menu: boom"), Width: 100, Height: 30},
			want:   []string{"Error: read menu: boom", "Home"},
		},
		{
			name:   "scrolled",
			params: RenderParams{Rows: rows, ViewOffset: 1, VisibleCount: 2, Width: 100, Height: 30},
			want:   []string{"1 more above", "2 more below"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.params)
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("Render() missing %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestRenderFilter(t *testing.T) {
	p := RenderParams{
		State:       StateFilter,
		FilterValue: "sec",
		Matches: []Match{
			{Path: tree.Path{2, 1}, Label: "Settings › Security"},
		},
		Width:  100,
		Height: 30,
	}
	if out := Render(p); !strings.Contains(out, "Settings › Security") {
		t.Errorf("filter view missing match:\n%s", out)
	}

	p.Matches = nil
	p.Suggestion = "Security"
	out := Render(p)
	if !strings.Contains(out, "No matches found") || !strings.Contains(out, "Security") {
		t.Errorf("filter view missing suggestion:\n%s", out)
	}
}

func TestRenderHelp(t *testing.T) {
	p := RenderParams{
		State: StateHelp,
		HelpSections: []HelpSection{
			{Title: "Tree", Bindings: []HelpBinding{{Keys: "enter", Desc: "expand or collapse"}}},
		},
		Width:  100,
		Height: 30,
	}
	out := Render(p)
	for _, s := range []string{"HELP", "Tree", "expand or collapse"} {
		if !strings.Contains(out, s) {
			t.Errorf("help view missing %q", s)
		}
	}
}

func TestRowAt(t *testing.T) {
	rows := expandedSampleRows(t)
	p := RenderParams{Rows: rows, Width: 100, Height: 30}

	top := ListTop(p)
	if top != 4 {
		t.Fatalf("ListTop() = %d, want 4", top)
	}
	if got := RowAt(p, top); got != 0 {
		t.Errorf("RowAt(top) = %d, want 0", got)
	}
	if got := RowAt(p, top+4); got != 4 {
		t.Errorf("RowAt(top+4) = %d, want 4", got)
	}
	if got := RowAt(p, top-1); got != -1 {
		t.Errorf("RowAt(header) = %d, want -1", got)
	}
	if got := RowAt(p, top+5); got != -1 {
		t.Errorf("RowAt(past end) = %d, want -1", got)
	}

	// Scrolled lists gain an indicator line
	p.ViewOffset = 2
	p.VisibleCount = 2
	if got := RowAt(p, ListTop(p)); got != 2 {
		t.Errorf("RowAt(scrolled top) = %d, want 2", got)
	}
	if ListTop(p) != top+1 {
		t.Errorf("ListTop() with scroll = %d, want %d", ListTop(p), top+1)
	}
}
