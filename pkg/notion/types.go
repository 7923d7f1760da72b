package notion

// Wire types for the database query endpoint. Only the property shapes the
// timeline schema uses are modeled: title, rich_text, url, checkbox, select
// and relation.

type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type page struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

type property struct {
	Type     string      `json:"type"`
	Title    []richText  `json:"title,omitempty"`
	RichText []richText  `json:"rich_text,omitempty"`
	URL      string      `json:"url,omitempty"`
	Checkbox bool        `json:"checkbox,omitempty"`
	Select   *selectOpt  `json:"select,omitempty"`
	Relation []pageRef   `json:"relation,omitempty"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type selectOpt struct {
	Name string `json:"name"`
}

type pageRef struct {
	ID string `json:"id"`
}
