// Package templates embeds the HTML pages so the binary runs from any
// working directory.
package templates

import (
	"embed"
	"html/template"
	"strconv"
)

//go:embed *.html
var files embed.FS

// Page is the name of the full-page template.
const Page = "page"

func Parse() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"mileage": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 1, 64)
		},
	}).ParseFS(files, "*.html")
}

func Must() *template.Template {
	return template.Must(Parse())
}
