package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/job-scalper/internal/models"
	"github.com/job-scalper/internal/view"
)

// TextRenderer writes a state as plain lines for a terminal.
type TextRenderer struct {
	Color bool
}

func NewTextRenderer(useColor bool) *TextRenderer {
	return &TextRenderer{Color: useColor}
}

func (r *TextRenderer) paint(attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func (r *TextRenderer) Render(w io.Writer, s view.State) error {
	bold := r.paint(color.Bold)
	red := r.paint(color.FgRed)
	dim := r.paint(color.Faint)
	cyan := r.paint(color.FgCyan)

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", bold("["+s.SubmitLabel()+"]"), describeCriteria(s))
	if s.Filter != "" {
		fmt.Fprintf(&b, "filter: %q\n", s.Filter)
	}
	if s.Error != "" {
		fmt.Fprintln(&b, red(s.Error))
	}

	visible := s.Visible()
	for i, job := range visible {
		fmt.Fprintf(&b, "%3d. %s\n     %s\n", i+1, bold(job.Title), cyan(job.Link))
	}
	if s.Status == view.StatusSuccess && len(s.Jobs) > 0 {
		fmt.Fprintln(&b, dim(fmt.Sprintf("%d of %d shown", len(visible), len(s.Jobs))))
	}

	if s.ShowNoResults() {
		fmt.Fprintln(&b, NoResults(s))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func NoResults(s view.State) string {
	if !s.ShowNoResults() {
		return ""
	}
	return view.NoResultsMessage
}

func describeCriteria(s view.State) string {
	if s.Status == view.StatusIdle {
		return "no search yet"
	}
	c := s.Criteria
	if c.Kind == models.KindSeedURL {
		return "url " + c.SeedURL
	}

	var labels []string
	for _, code := range c.EffectiveLevels() {
		if l, ok := models.LevelByCode(code); ok {
			labels = append(labels, l.Label)
		}
	}
	switch {
	case len(labels) > 0:
		return fmt.Sprintf("%q (%s)", c.Query, strings.Join(labels, ", "))
	case c.Kind == models.KindLevels:
		return fmt.Sprintf("%q (all levels)", c.Query)
	default:
		return fmt.Sprintf("%q", c.Query)
	}
}
