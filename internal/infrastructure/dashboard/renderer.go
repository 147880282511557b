package dashboard

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/dashboard.html
var dashboardTemplate string

// Renderer executes the embedded dashboard template.
// It is safe for concurrent use once constructed.
type Renderer struct {
	tmpl     *template.Template
	location *time.Location
}

// RendererOption configures a Renderer
type RendererOption func(*Renderer)

// WithLocation sets the zone creation times are displayed in (default time.Local).
func WithLocation(loc *time.Location) RendererOption {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// NewRenderer parses the dashboard template.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{location: time.Local}
	for _, opt := range opts {
		opt(r)
	}

	tmpl, err := template.New("dashboard").Funcs(r.funcMap()).Parse(dashboardTemplate)
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes the dashboard page for in to w.
func (r *Renderer) Render(w io.Writer, in Input) error {
	if err := r.tmpl.Execute(w, newPage(in)); err != nil {
		return fmt.Errorf("dashboard: execute template: %w", err)
	}
	return nil
}

// RenderString renders the dashboard page to a string.
func (r *Renderer) RenderString(in Input) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}
