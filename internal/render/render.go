package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"dailyoffice/internal/core"
)

// Template names every site build needs.
const (
	DayTemplate   = "day.html"
	IndexTemplate = "index.html"
	AllTemplate   = "all.html"
	AboutTemplate = "about.html"
)

// RequiredTemplates must all be present for New to succeed.
var RequiredTemplates = []string{DayTemplate, IndexTemplate, AllTemplate, AboutTemplate}

// Renderer executes a parsed template set. It is safe for concurrent use.
type Renderer struct {
	templates *template.Template
}

// New parses the templates in fsys matching patterns and checks that every
// required page template is defined.
func New(fsys fs.FS, patterns ...string) (*Renderer, error) {
	t, err := template.New("").Funcs(Funcs()).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	var missing []string
	for _, name := range RequiredTemplates {
		if t.Lookup(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing templates: %s", strings.Join(missing, ", "))
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	if r.templates.Lookup(name) == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"colorFor":   colorFor,
		"weekdays":   core.Weekdays,
		"pageURL":    PageURL,
		"dayContext": dayContext,
		"abbr":       abbr,
	}
}

// PageURL is the relative link to a day page.
func PageURL(slug string) string {
	return slug + ".html"
}

// colorFor returns the display color for a liturgical color name, or ""
// when the name is unknown. Map values are validated hex colors.
func colorFor(colors map[string]string, name string) template.CSS {
	v, ok := colors[strings.TrimSpace(name)]
	if !ok {
		return ""
	}
	return template.CSS(v)
}

// dayContext lets the print-all page reuse the day page body.
func dayContext(site Site, r core.Record) DayPage {
	return DayPage{Site: site, Day: &r}
}

func abbr(s string) string {
	if len(s) > 3 {
		return s[:3]
	}
	return s
}
