package timeline

// Record is a single raw entry fetched from the document database.
// Records are immutable inputs to [Build]; they are fetched (or loaded from
// a snapshot) once per session and never mutated afterwards.
//
// NextRefs and PriorRefs hold raw reference strings exactly as the source
// database provides them (record IDs for the Notion relation properties,
// titles for plainer backends). They are not resolved to nodes until
// render time; see [Model.Resolve].
type Record struct {
	ID             string   `json:"id,omitempty" bson:"id,omitempty"`
	Title          string   `json:"title" bson:"title"`
	URL            string   `json:"url,omitempty" bson:"url,omitempty"`
	Chapter        string   `json:"chapter" bson:"chapter"`
	ChapterHeading bool     `json:"chapter_heading,omitempty" bson:"chapter_heading,omitempty"`
	AsideHeading   bool     `json:"aside_heading,omitempty" bson:"aside_heading,omitempty"`
	NextRefs       []string `json:"next_refs,omitempty" bson:"next_refs,omitempty"`
	PriorRefs      []string `json:"prior_refs,omitempty" bson:"prior_refs,omitempty"`
}

// AsidePrefix is the label prefix convention that marks a chapter as an
// aside (e.g. "Aside A - Notes"). The test is case-sensitive and matches
// the label schema used by the source database.
//
// This string-prefix classification is coupled to the source schema; if the
// database ever grows an explicit category field, IsAsideLabel is the single
// place to switch over.
const AsidePrefix = "Aside"

// IsAsideLabel reports whether a chapter label names an aside rather than
// a main chapter.
func IsAsideLabel(label string) bool {
	return len(label) >= len(AsidePrefix) && label[:len(AsidePrefix)] == AsidePrefix
}
