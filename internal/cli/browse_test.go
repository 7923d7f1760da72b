package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/talegraph/talegraph/pkg/timeline"
)

func browseRecords() []timeline.Record {
	return []timeline.Record{
		{ID: "1", Title: "Landfall", Chapter: "Chapter 1", ChapterHeading: true},
		{ID: "2", Title: "The Map", Chapter: "Aside: Cartography", AsideHeading: true},
		{ID: "3", Title: "Landfall", Chapter: "Aside: Cartography"},
	}
}

func TestChapterListEnterSelects(t *testing.T) {
	m := newChapterListModel(timeline.Build(browseRecords()))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got, ok := updated.(chapterListModel)
	if !ok {
		t.Fatalf("Update() returned %T, want chapterListModel", updated)
	}
	if got.Selected != "Chapter 1" {
		t.Errorf("Selected = %q, want %q", got.Selected, "Chapter 1")
	}
}

func TestChapterListEnterOnEmptyModel(t *testing.T) {
	m := newChapterListModel(timeline.Build(nil))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got, ok := updated.(chapterListModel)
	if !ok {
		t.Fatalf("Update() returned %T, want chapterListModel", updated)
	}
	if got.Selected != "" {
		t.Errorf("Selected = %q, want empty", got.Selected)
	}
	if cmd == nil {
		t.Error("enter on an empty list should quit")
	}
}

func TestChapterListNavigation(t *testing.T) {
	m := newChapterListModel(timeline.Build(browseRecords()))
	if len(m.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.Rows))
	}

	down, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = down.(chapterListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after down = %d, want 1", m.Cursor)
	}

	// Stays in bounds at the bottom
	down, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = down.(chapterListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor past end = %d, want 1", m.Cursor)
	}

	up, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = up.(chapterListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor after up = %d, want 0", m.Cursor)
	}
}
