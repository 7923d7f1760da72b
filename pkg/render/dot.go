// Package render turns a timeline model into a Graphviz diagram: one
// visual node per chapter/aside, edges for forward references and
// chapter↔aside links, and internal hrefs so the web UI can route clicks
// back to a chapter via the ?chapter= query parameter.
package render

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/talegraph/talegraph/pkg/timeline"
)

// Theme selects the diagram color palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// AsideMarker prefixes the label of linked aside nodes so the UI layer can
// distinguish internal navigation targets from plain nodes.
const AsideMarker = "↪ "

// Options configures diagram generation.
type Options struct {
	// Theme selects the dark or light palette. Empty means light.
	Theme Theme
	// Selected is the chapter label to visually emphasize, typically taken
	// from the ?chapter= query parameter. Empty selects nothing.
	Selected string
}

// palette holds the per-theme colors, mirroring the UI themes.
type palette struct {
	chapterFill string
	asideFill   string
	edge        string
	font        string
}

func themePalette(t Theme) palette {
	if t == ThemeDark {
		return palette{
			chapterFill: "#5dade2",
			asideFill:   "#85c1e9",
			edge:        "#ffffff",
			font:        "black",
		}
	}
	return palette{
		chapterFill: "#f5f5f5",
		asideFill:   "#ffffff",
		edge:        "#666666",
		font:        "black",
	}
}

// ToDOT converts a timeline model to Graphviz DOT format.
//
// Output is deterministic for a given model: nodes appear in the model's
// first-seen order, followed by reference edges in that same order, then
// chapter↔aside link edges. Every node carries an internal ?chapter= href;
// linked aside nodes additionally carry the [AsideMarker] label prefix.
func ToDOT(m *timeline.Model, opts Options) string {
	p := themePalette(opts.Theme)
	linked := linkedAsides(m)

	var buf bytes.Buffer
	buf.WriteString("digraph timeline {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12, margin=\"0.2,0.1\"];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=1, arrowsize=0.6];\n", p.edge)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, label := range m.Labels() {
		n, _ := m.Node(label)
		fmt.Fprintf(&buf, "  %q [%s];\n", label, nodeAttrs(n, p, opts.Selected, linked[label]))
	}

	buf.WriteString("\n")
	for _, e := range referenceEdges(m) {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
	}
	for _, main := range m.Labels() {
		for _, aside := range m.LinkedAsides(main) {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, dir=both, arrowhead=none, arrowtail=none];\n", main, aside)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeAttrs formats the DOT attribute list for one node.
func nodeAttrs(n *timeline.EventNode, p palette, selected string, isLinkedAside bool) string {
	label := n.Label
	if isLinkedAside {
		label = AsideMarker + label
	}

	fill := p.chapterFill
	if n.IsAside() {
		fill = p.asideFill
	}

	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("fontcolor=%s", p.font),
		fmt.Sprintf("tooltip=%q", tooltip(n)),
		fmt.Sprintf("href=%q", ChapterHref(n.Label)),
		"target=\"_self\"",
	}
	if n.Label == selected {
		attrs = append(attrs, "penwidth=2", "color=\"#000000\"")
	} else {
		attrs = append(attrs, fmt.Sprintf("color=%q", p.edge))
	}
	return join(attrs)
}

func tooltip(n *timeline.EventNode) string {
	return fmt.Sprintf("%s (%d entries)", n.Label, len(n.Records))
}

// ChapterHref builds the internal navigation URL for a chapter label.
func ChapterHref(label string) string {
	return "?chapter=" + url.QueryEscape(label)
}

type edge struct{ from, to string }

// referenceEdges resolves forward and back references to node-level edges.
// A NextRef of a record in node A pointing into node B yields A→B; a
// PriorRef yields B→A. Self references and unresolvable references are
// skipped, and duplicate edges collapse to one.
func referenceEdges(m *timeline.Model) []edge {
	var edges []edge
	seen := make(map[edge]bool)

	add := func(e edge) {
		if e.from == e.to || seen[e] {
			return
		}
		seen[e] = true
		edges = append(edges, e)
	}

	for _, label := range m.Labels() {
		n, _ := m.Node(label)
		for _, ref := range n.NextRefs {
			if target, ok := m.Resolve(ref); ok {
				add(edge{from: label, to: target})
			}
		}
		for _, ref := range n.PriorRefs {
			if origin, ok := m.Resolve(ref); ok {
				add(edge{from: origin, to: label})
			}
		}
	}
	return edges
}

// linkedAsides collects the aside labels that are the target of at least
// one chapter↔aside link.
func linkedAsides(m *timeline.Model) map[string]bool {
	linked := make(map[string]bool)
	for _, main := range m.Labels() {
		for _, aside := range m.LinkedAsides(main) {
			linked[aside] = true
		}
	}
	return linked
}

func join(attrs []string) string {
	var buf bytes.Buffer
	for i, a := range attrs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a)
	}
	return buf.String()
}
