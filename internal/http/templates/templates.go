// Package templates holds the embedded HTML templates behind the
// server-rendered pages (dashboard, ticket detail, search and edit forms).
// Templates are parsed once at startup and installed on the Gin engine.
package templates

import (
	"embed"
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed *.html
var files embed.FS

// titleCaser normalizes free-form status text for display ("in progress"
// renders as "In Progress"); the stored value is untouched.
var titleCaser = cases.Title(language.English)

// Load parses the embedded templates with the page helper functions.
func Load() (*template.Template, error) {
	funcs := template.FuncMap{
		"title": titleCaser.String,
		"fmtdate": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"fmtdateptr": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
	}
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}
