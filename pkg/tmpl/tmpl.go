// Package tmpl provides template rendering utilities for dialog bodies.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// markdownSpecial holds the characters that change meaning in markdown.
const markdownSpecial = "\\`*_{}[]()<>#+-.!|~"

var whitespace = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ")

// Escape makes s safe to interpolate into a markdown body rendered in a
// terminal. Terminal escape sequences and other control characters are
// removed and markdown punctuation is backslash-escaped.
func Escape(s string) string {
	s = ansi.Strip(whitespace.Replace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			continue
		case strings.ContainsRune(markdownSpecial, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var funcs = template.FuncMap{
	"esc": Escape,
	"raw": func(s string) string { return s },
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - esc: Escape a value for safe use in a markdown body
//   - raw: Insert a value untouched
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
