// Package web embeds the HTML templates and static assets of the landing
// site so the binary is self-contained.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	// first returns the first message of a field error list, or "".
	"first": func(msgs []string) string {
		if len(msgs) == 0 {
			return ""
		}
		return msgs[0]
	},
	// paragraphs splits multi-line admin text into paragraphs.
	"paragraphs": func(s string) []string {
		var out []string
		for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
	// telHref keeps digits and a leading plus for tel: links.
	"telHref": func(phone string) string {
		var b strings.Builder
		for i, r := range phone {
			if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
				b.WriteRune(r)
			}
		}
		return "tel:" + b.String()
	},
}

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templatesFS, "templates/*.html")
}

// MustTemplates is Templates that panics on parse errors.
func MustTemplates() *template.Template {
	t, err := Templates()
	if err != nil {
		panic(err)
	}
	return t
}

// Static returns the static asset tree (css, js) rooted at "static".
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
