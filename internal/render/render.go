// Package render turns model data into HTML. Every user-supplied field
// passes through Text or Paragraphs before it reaches a template, so
// content can never inject markup.
package render

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Text escapes a single-line user-supplied field for HTML output.
func Text(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}

// Paragraphs escapes user-supplied text, then turns newlines into <br>
// tags. Escaping runs first, so the input cannot contribute structure of
// its own.
func Paragraphs(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	lines := strings.Split(escaped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return template.HTML(strings.Join(lines, "<br>"))
}

// Page is the envelope every template receives.
type Page struct {
	Title    string
	UserID   int64
	LoggedIn bool
	Flashes  []string
	Data     any
}

type Renderer struct {
	tmpl *template.Template
}

func New() *Renderer {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"text":       Text,
		"paragraphs": Paragraphs,
	}).ParseFS(templateFS, "templates/*.html"))
	return &Renderer{tmpl: tmpl}
}

// HTML writes the named template with the given status. Render failures
// are logged; by then part of the body may already be out.
func (rn *Renderer) HTML(w http.ResponseWriter, status int, name string, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rn.tmpl.ExecuteTemplate(w, name, page); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
