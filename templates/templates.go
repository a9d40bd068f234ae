// Package templates embeds the HTML pages and static assets into the binary.
package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cppla/yatube/utils"
)

//go:embed html/*.html
var pages embed.FS

//go:embed static
var static embed.FS

// Static returns the asset tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load parses every page. extra overrides or adds template functions.
func Load(extra template.FuncMap) (*template.Template, error) {
	funcs := Funcs()
	for k, v := range extra {
		funcs[k] = v
	}
	return template.New("").Funcs(funcs).ParseFS(pages, "html/*.html")
}

// Funcs are the helpers the pages use.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"text":          func(s string) template.HTML { return template.HTML(utils.RenderText(s)) },
		"date":          func(t time.Time) string { return t.Format("02 Jan 2006") },
		"truncatewords": TruncateWords,
		"add":           func(a, b int) int { return a + b },
		"media":         func(rel string) string { return "/media/" + rel },
	}
}

// TruncateWords keeps the first n words of s, adding an ellipsis when something was cut.
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	out := strings.Join(words[:n], " ")
	if r, _ := utf8.DecodeLastRuneInString(out); r != '…' {
		out += " …"
	}
	return out
}
