package render

import (
	"strings"
	"testing"

	"github.com/talegraph/talegraph/pkg/timeline"
)

func linkedModel() *timeline.Model {
	return timeline.Build([]timeline.Record{
		{ID: "r1", Title: "Opening", Chapter: "Chapter 1", NextRefs: []string{"r2"}},
		{ID: "r2", Title: "T1", Chapter: "Chapter 1", AsideHeading: true},
		{ID: "r3", Title: "T1", Chapter: "Aside A", ChapterHeading: true},
	})
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(linkedModel(), Options{})

	if !strings.Contains(dot, "digraph timeline") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"Chapter 1"`) {
		t.Error("ToDOT() output missing Chapter 1 node")
	}
	if !strings.Contains(dot, `"Aside A"`) {
		t.Error("ToDOT() output missing Aside A node")
	}
}

func TestToDOT_ChapterAsideLinkEdge(t *testing.T) {
	dot := ToDOT(linkedModel(), Options{})

	if !strings.Contains(dot, `"Chapter 1" -> "Aside A" [style=dashed`) {
		t.Error("ToDOT() output missing chapter↔aside link edge")
	}
}

func TestToDOT_LinkedAsideMarkedAndRoutable(t *testing.T) {
	dot := ToDOT(linkedModel(), Options{})

	if !strings.Contains(dot, AsideMarker+"Aside A") {
		t.Error("ToDOT() linked aside missing marker prefix")
	}
	if !strings.Contains(dot, `href="?chapter=Aside+A"`) {
		t.Error("ToDOT() linked aside missing internal navigation href")
	}
	if !strings.Contains(dot, `target="_self"`) {
		t.Error("ToDOT() nodes must navigate in the same tab")
	}
}

func TestToDOT_UnlinkedAsideNotMarked(t *testing.T) {
	m := timeline.Build([]timeline.Record{
		{Title: "A", Chapter: "Chapter 1"},
		{Title: "B", Chapter: "Aside A"},
	})

	dot := ToDOT(m, Options{})

	if strings.Contains(dot, AsideMarker) {
		t.Error("ToDOT() unlinked aside must not carry the marker")
	}
}

func TestToDOT_ReferenceEdges(t *testing.T) {
	m := timeline.Build([]timeline.Record{
		{ID: "r1", Title: "A", Chapter: "Prologue", NextRefs: []string{"r2"}},
		{ID: "r2", Title: "B", Chapter: "Chapter 1", PriorRefs: []string{"r1"}},
		{ID: "r3", Title: "C", Chapter: "Chapter 1", NextRefs: []string{"missing", "r3"}},
	})

	dot := ToDOT(m, Options{})

	if !strings.Contains(dot, `"Prologue" -> "Chapter 1"`) {
		t.Error("ToDOT() missing forward reference edge")
	}
	// The prior reference resolves to the same pair; edges are deduplicated
	if strings.Count(dot, `"Prologue" -> "Chapter 1"`) != 1 {
		t.Error("ToDOT() duplicate edges must collapse to one")
	}
	// Unresolvable and self references are skipped
	if strings.Contains(dot, "missing") {
		t.Error("ToDOT() must skip unresolvable references")
	}
	if strings.Contains(dot, `"Chapter 1" -> "Chapter 1"`) {
		t.Error("ToDOT() must skip self references")
	}
}

func TestToDOT_Themes(t *testing.T) {
	m := linkedModel()

	light := ToDOT(m, Options{Theme: ThemeLight})
	dark := ToDOT(m, Options{Theme: ThemeDark})

	if !strings.Contains(light, `edge [color="#666666"`) {
		t.Error("light theme missing grey edges")
	}
	if !strings.Contains(dark, `edge [color="#ffffff"`) {
		t.Error("dark theme missing white edges")
	}
	if light == dark {
		t.Error("themes must differ")
	}
}

func TestToDOT_SelectedChapterEmphasized(t *testing.T) {
	dot := ToDOT(linkedModel(), Options{Selected: "Chapter 1"})

	if !strings.Contains(dot, "penwidth=2") {
		t.Error("ToDOT() selected chapter missing emphasis")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	m := linkedModel()
	if ToDOT(m, Options{}) != ToDOT(m, Options{}) {
		t.Error("ToDOT() output must be deterministic")
	}
}

func TestChapterHref(t *testing.T) {
	if got := ChapterHref("Aside A - Notes"); got != "?chapter=Aside+A+-+Notes" {
		t.Errorf("ChapterHref() = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("normalizeViewBox() = %q", got)
	}
	if !strings.Contains(got, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() missing pixel dimensions: %q", got)
	}
}
