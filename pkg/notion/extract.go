package notion

import (
	"strings"

	"github.com/talegraph/talegraph/pkg/timeline"
)

// Property names of the timeline database schema.
const (
	propName           = "Name"
	propTitle          = "Title"
	propURL            = "URL"
	propChapter        = "Chapter"
	propChapterHeading = "Chapter Heading"
	propAsideHeading   = "Aside Heading"
	propNextEvent      = "Next Event"
	propPriorEvent     = "Prior Event"
)

// untitled is the fallback title for pages with an empty title property.
const untitled = "Untitled"

// toRecord maps one database page onto a timeline record.
func toRecord(p page) timeline.Record {
	props := properties(p.Properties)
	return timeline.Record{
		ID:             p.ID,
		Title:          props.title(),
		URL:            props.url(propURL),
		Chapter:        props.selectName(propChapter),
		ChapterHeading: props.checkbox(propChapterHeading),
		AsideHeading:   props.checkbox(propAsideHeading),
		NextRefs:       props.relationIDs(propNextEvent),
		PriorRefs:      props.relationIDs(propPriorEvent),
	}
}

type properties map[string]property

// title returns the page title from the Name property, falling back to
// Title, falling back to "Untitled" (matching the database conventions).
func (ps properties) title() string {
	if t := ps.text(propName); t != "" {
		return t
	}
	if t := ps.text(propTitle); t != "" {
		return t
	}
	return untitled
}

// text extracts plain text from a title or rich_text property.
func (ps properties) text(name string) string {
	p, ok := ps[name]
	if !ok {
		return ""
	}
	switch p.Type {
	case "title":
		if len(p.Title) == 0 {
			return ""
		}
		return p.Title[0].PlainText
	case "rich_text":
		parts := make([]string, len(p.RichText))
		for i, rt := range p.RichText {
			parts[i] = rt.PlainText
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func (ps properties) url(name string) string {
	if p, ok := ps[name]; ok && p.Type == "url" {
		return p.URL
	}
	return ""
}

func (ps properties) checkbox(name string) bool {
	if p, ok := ps[name]; ok && p.Type == "checkbox" {
		return p.Checkbox
	}
	return false
}

func (ps properties) selectName(name string) string {
	if p, ok := ps[name]; ok && p.Type == "select" && p.Select != nil {
		return p.Select.Name
	}
	return ""
}

func (ps properties) relationIDs(name string) []string {
	p, ok := ps[name]
	if !ok || p.Type != "relation" || len(p.Relation) == 0 {
		return nil
	}
	ids := make([]string, len(p.Relation))
	for i, r := range p.Relation {
		ids[i] = r.ID
	}
	return ids
}
