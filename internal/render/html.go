package render

import (
	"html/template"
	"io"

	"github.com/job-scalper/internal/models"
	"github.com/job-scalper/internal/view"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Job Scalper</title>
</head>
<body>
<div class="app">
  <h1>Job Scalper</h1>
  <div class="filter">
    <input type="text" class="filter-input" name="filter" value="{{.Filter}}" placeholder="Filter offers">
  </div>
  <form class="search-form" method="post">
    {{- if eq .Kind "url"}}
    <input type="text" class="url-input" name="starturl" value="{{.SeedURL}}" placeholder="Paste a search URL">
    {{- else}}
    <input type="text" class="url-input" name="query" value="{{.Query}}" placeholder="Job title">
    {{- end}}
    {{- if eq .Kind "intern"}}
    <label>IsIntern <input type="checkbox" name="isIntern"{{if .IsIntern}} checked{{end}}></label>
    {{- end}}
    {{- if eq .Kind "levels"}}
    <fieldset class="levels">
      {{- range .Levels}}
      <label><input type="checkbox" name="ETCategories" value="{{.Code}}"{{if .Checked}} checked{{end}}> {{.Label}}</label>
      {{- end}}
    </fieldset>
    {{- end}}
    <button type="submit"{{if .Loading}} disabled{{end}}>{{.ButtonLabel}}</button>
  </form>
  {{- if .Error}}
  <p class="error">{{.Error}}</p>
  {{- end}}
  {{- if .Jobs}}
  <div class="jobs-grid">
    {{- range .Jobs}}
    <div class="job-card">
      <h3>{{.Title}}</h3>
      <a href="{{.Link}}" target="_blank" rel="noopener noreferrer">View Job →</a>
    </div>
    {{- end}}
  </div>
  {{- end}}
  {{- if .NoResults}}
  <p class="no-results">{{.NoResults}}</p>
  {{- end}}
</div>
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

type levelOption struct {
	Code    int
	Label   string
	Checked bool
}

type pageData struct {
	Kind        string
	Query       string
	SeedURL     string
	IsIntern    bool
	Levels      []levelOption
	Filter      string
	Loading     bool
	ButtonLabel string
	Error       string
	Jobs        []models.JobPosting
	NoResults   string
}

// HTMLRenderer writes a state as a static page with the search form and grid.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) Render(w io.Writer, s view.State) error {
	c := s.Criteria
	selected := make(map[int]bool, len(c.LevelCodes))
	for _, code := range c.LevelCodes {
		selected[code] = true
	}
	levels := make([]levelOption, 0, len(models.Levels))
	for _, l := range models.Levels {
		levels = append(levels, levelOption{Code: l.Code, Label: l.Label, Checked: selected[l.Code]})
	}

	return page.Execute(w, pageData{
		Kind:        c.Kind.String(),
		Query:       c.Query,
		SeedURL:     c.SeedURL,
		IsIntern:    c.IsIntern,
		Levels:      levels,
		Filter:      s.Filter,
		Loading:     s.Loading(),
		ButtonLabel: s.SubmitLabel(),
		Error:       s.Error,
		Jobs:        s.Visible(),
		NoResults:   NoResults(s),
	})
}
