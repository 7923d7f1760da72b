package server

import (
	"html/template"
	"time"

	"github.com/talegraph/talegraph/pkg/render"
)

// chapterOption is one entry of the chapter selector. Asides are listed
// indented beneath the chapter they link to.
type chapterOption struct {
	Label string
	Aside bool
}

type pageData struct {
	Options      []chapterOption
	Selected     string
	Theme        render.Theme
	FetchedAt    time.Time
	Warnings     []string
	RefreshError string
}

func (d pageData) OtherTheme() render.Theme {
	if d.Theme == render.ThemeDark {
		return render.ThemeLight
	}
	return render.ThemeDark
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Talegraph</title>
<style>
  body { font-family: Helvetica, sans-serif; margin: 2rem; }
  body.dark { background: #1e1e1e; color: #e6e6e6; }
  .toolbar { display: flex; gap: 1rem; align-items: center; margin-bottom: 1rem; }
  .error { color: #c0392b; margin: 0.5rem 0; }
  .warning { color: #b9770e; margin: 0.25rem 0; font-size: 0.9rem; }
  .meta { color: #888; font-size: 0.85rem; }
  .diagram { border: 1px solid #8884; overflow: auto; }
  .diagram svg, .diagram object { max-width: 100%; height: auto; }
</style>
</head>
<body class="{{.Theme}}">
<h1>Timeline</h1>

<div class="toolbar">
  <form method="get">
    <label>&#128214; Chapter:
      <select name="chapter" onchange="this.form.submit()">
        {{range .Options}}
        <option value="{{.Label}}" {{if eq .Label $.Selected}}selected{{end}}>{{if .Aside}}&nbsp;&nbsp;&#8627; {{end}}{{.Label}}</option>
        {{end}}
      </select>
    </label>
    <input type="hidden" name="theme" value="{{.Theme}}">
  </form>

  <form method="post" action="/refresh?chapter={{.Selected}}&amp;theme={{.Theme}}">
    <button type="submit" title="Poll the database now and update the local snapshot">&#128260; Fetch fresh data</button>
  </form>

  <a href="?chapter={{.Selected}}&amp;theme={{.OtherTheme}}">{{.OtherTheme}} theme</a>
</div>

{{if .RefreshError}}<p class="error">Refresh failed: {{.RefreshError}} (showing last good snapshot)</p>{{end}}
{{range .Warnings}}<p class="warning">&#9888; {{.}}</p>{{end}}

<div class="diagram">
  <object type="image/svg+xml" data="/diagram.svg?chapter={{.Selected}}&amp;theme={{.Theme}}"></object>
</div>

{{if not .FetchedAt.IsZero}}<p class="meta">Snapshot fetched {{.FetchedAt.Format "Jan 2, 2006 15:04 MST"}}</p>{{end}}
</body>
</html>
`))
