// Package timeline builds the narrative timeline model: a graph of chapter
// and aside nodes derived from the flat record list of a document database.
//
// The model builder is a pure function over its input. Records are grouped
// by chapter label into one [EventNode] per distinct label, labels are
// classified as main chapters or asides by prefix convention, and a
// chapter↔aside link is derived wherever the chapter's aside-heading titles
// intersect the aside's chapter-heading titles. The whole model is rebuilt
// from scratch on every fetch or snapshot load; there is no incremental
// mutation.
package timeline

import (
	"fmt"
	"slices"
	"strings"
)

// EventNode is one vertex of the timeline graph: all records sharing a
// chapter label folded into a single node. The label uniquely identifies
// the node within a [Model].
type EventNode struct {
	Label   string   // Chapter label, unique key within the model
	Records []Record // Member records in input order

	// Heading flags are the logical OR over the node's records: a node is
	// a chapter (or aside) heading if any member record sets the flag.
	IsChapterHeading bool
	IsAsideHeading   bool

	// NextRefs and PriorRefs collect the raw forward/back reference strings
	// of all member records, in input order, unresolved.
	NextRefs  []string
	PriorRefs []string
}

// IsAside reports whether the node is classified as an aside.
func (n *EventNode) IsAside() bool { return IsAsideLabel(n.Label) }

// Titles returns the member record titles in input order.
func (n *EventNode) Titles() []string {
	titles := make([]string, len(n.Records))
	for i, r := range n.Records {
		titles[i] = r.Title
	}
	return titles
}

// asideHeadingTitles returns the set of member titles marked AsideHeading.
func (n *EventNode) asideHeadingTitles() map[string]bool {
	return n.headingTitles(func(r Record) bool { return r.AsideHeading })
}

// chapterHeadingTitles returns the set of member titles marked ChapterHeading.
func (n *EventNode) chapterHeadingTitles() map[string]bool {
	return n.headingTitles(func(r Record) bool { return r.ChapterHeading })
}

func (n *EventNode) headingTitles(marked func(Record) bool) map[string]bool {
	set := make(map[string]bool)
	for _, r := range n.Records {
		if marked(r) {
			set[r.Title] = true
		}
	}
	return set
}

// Model is the derived timeline graph: one node per distinct chapter label
// plus the chapter↔aside link relation. A Model is immutable once built.
type Model struct {
	nodes    map[string]*EventNode
	order    []string            // labels in first-seen input order
	links    map[string][]string // main-chapter label -> sorted aside labels
	warnings []string

	byID    map[string]string // record ID -> owning label
	byTitle map[string]string // record title -> first owning label
}

// Build derives a Model from a raw record sequence.
//
// Records with an empty chapter label are dropped and recorded as warnings;
// they never fail the build. An empty input yields an empty model. Building
// twice from the same sequence produces structurally identical models.
func Build(records []Record) *Model {
	m := &Model{
		nodes:   make(map[string]*EventNode),
		links:   make(map[string][]string),
		byID:    make(map[string]string),
		byTitle: make(map[string]string),
	}

	for i, r := range records {
		if r.Chapter == "" {
			m.warnings = append(m.warnings,
				fmt.Sprintf("record %d (%q) has no chapter label, skipping", i, r.Title))
			continue
		}

		n, ok := m.nodes[r.Chapter]
		if !ok {
			n = &EventNode{Label: r.Chapter}
			m.nodes[r.Chapter] = n
			m.order = append(m.order, r.Chapter)
		}

		n.Records = append(n.Records, r)
		n.IsChapterHeading = n.IsChapterHeading || r.ChapterHeading
		n.IsAsideHeading = n.IsAsideHeading || r.AsideHeading
		n.NextRefs = append(n.NextRefs, r.NextRefs...)
		n.PriorRefs = append(n.PriorRefs, r.PriorRefs...)

		if r.ID != "" {
			m.byID[r.ID] = r.Chapter
		}
		if _, seen := m.byTitle[r.Title]; !seen && r.Title != "" {
			m.byTitle[r.Title] = r.Chapter
		}
	}

	m.deriveLinks()
	return m
}

// deriveLinks computes the chapter↔aside link relation: a main chapter and
// an aside are linked iff the chapter's aside-heading titles intersect the
// aside's chapter-heading titles. The relation is symmetric and not
// transitive; links are never chained through intermediate nodes.
func (m *Model) deriveLinks() {
	for _, main := range m.order {
		mn := m.nodes[main]
		if mn.IsAside() {
			continue
		}
		out := mn.asideHeadingTitles()
		if len(out) == 0 {
			continue
		}

		var linked []string
		for _, aside := range m.order {
			an := m.nodes[aside]
			if !an.IsAside() {
				continue
			}
			if intersects(out, an.chapterHeadingTitles()) {
				linked = append(linked, aside)
			}
		}
		if len(linked) > 0 {
			slices.Sort(linked)
			m.links[main] = linked
		}
	}
}

func intersects(a, b map[string]bool) bool {
	for title := range a {
		if b[title] {
			return true
		}
	}
	return false
}

// Node returns the node for a chapter label.
func (m *Model) Node(label string) (*EventNode, bool) {
	n, ok := m.nodes[label]
	return n, ok
}

// Labels returns all chapter labels in first-seen input order.
func (m *Model) Labels() []string {
	return slices.Clone(m.order)
}

// Len returns the number of distinct nodes in the model.
func (m *Model) Len() int { return len(m.nodes) }

// Chapters returns the main-chapter labels in display order: "Prologue"
// first if present, then labels starting with "Chapter" sorted, then any
// remaining main chapters sorted.
func (m *Model) Chapters() []string {
	var prologue, numbered, rest []string
	for _, label := range m.order {
		switch {
		case IsAsideLabel(label):
		case label == "Prologue":
			prologue = append(prologue, label)
		case strings.HasPrefix(label, "Chapter"):
			numbered = append(numbered, label)
		default:
			rest = append(rest, label)
		}
	}
	slices.Sort(numbered)
	slices.Sort(rest)
	return slices.Concat(prologue, numbered, rest)
}

// Asides returns the aside labels, sorted.
func (m *Model) Asides() []string {
	var asides []string
	for _, label := range m.order {
		if IsAsideLabel(label) {
			asides = append(asides, label)
		}
	}
	slices.Sort(asides)
	return asides
}

// LinkedAsides returns the sorted aside labels linked to a main chapter,
// or nil if the chapter has no links.
func (m *Model) LinkedAsides(main string) []string {
	return slices.Clone(m.links[main])
}

// Linked reports whether a main chapter and an aside are linked. The check
// recomputes the title-set intersection from the two nodes' record sets, so
// it holds symmetrically regardless of which direction derived the link.
func (m *Model) Linked(main, aside string) bool {
	mn, ok := m.nodes[main]
	if !ok || mn.IsAside() {
		return false
	}
	an, ok := m.nodes[aside]
	if !ok || !an.IsAside() {
		return false
	}
	return intersects(mn.asideHeadingTitles(), an.chapterHeadingTitles())
}

// AsideFor returns the aside label whose chapter-heading titles contain
// title, if any. The renderer uses this to turn an aside-outlink node into
// an internal navigation target.
func (m *Model) AsideFor(title string) (string, bool) {
	for _, aside := range m.Asides() {
		if m.nodes[aside].chapterHeadingTitles()[title] {
			return aside, true
		}
	}
	return "", false
}

// Resolve maps a raw reference string to the label of the node containing
// the referenced record. References resolve by record ID first, then by
// exact title. Unresolvable references return ok=false and are skipped by
// the renderer.
func (m *Model) Resolve(ref string) (string, bool) {
	if label, ok := m.byID[ref]; ok {
		return label, true
	}
	label, ok := m.byTitle[ref]
	return label, ok
}

// Warnings returns the non-fatal problems encountered during the build,
// e.g. records dropped for missing chapter labels.
func (m *Model) Warnings() []string {
	return slices.Clone(m.warnings)
}
