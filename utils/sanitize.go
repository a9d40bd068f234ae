package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// CleanText trims user supplied text. The text itself is stored as submitted.
func CleanText(input string) string {
	return strings.TrimSpace(input)
}

// RenderText turns stored plain text into HTML: everything is escaped, line
// breaks become <br>, and the result goes through the UGC policy before it
// reaches a page.
func RenderText(text string) string {
	escaped := html.EscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return sanitizer.Sanitize(strings.ReplaceAll(escaped, "\n", "<br>"))
}
