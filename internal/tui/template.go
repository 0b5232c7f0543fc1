package tui

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"text/template"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/glamour"

	"github.com/hay-kot/modalkit/internal/core/dialog"
)

// bodyWidth is the word-wrap width for rendered dialog bodies.
const bodyWidth = 56

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// ErrTemplateNotFound is returned when a window template cannot be found.
var ErrTemplateNotFound = errors.New("template not found")

// templates loads and caches window templates. Names are looked up on disk
// first and then in the embedded templates.
type templates struct {
	cache    map[string]*template.Template
	renderer *glamour.TermRenderer
	keys     KeyMap
	help     help.Model
	escape   bool
}

func newTemplates(markdownStyle string, keys KeyMap, escape bool) *templates {
	t := &templates{
		cache:  map[string]*template.Template{},
		keys:   keys,
		help:   help.New(),
		escape: escape,
	}

	t.help.Styles.ShortKey = modalHelpStyle.UnsetMarginTop()
	t.help.Styles.ShortDesc = modalHelpStyle.UnsetMarginTop()
	t.help.Styles.ShortSeparator = modalHelpStyle.UnsetMarginTop()

	if markdownStyle == "" {
		markdownStyle = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle),
		glamour.WithWordWrap(bodyWidth),
	)
	if err == nil {
		t.renderer = renderer
	}

	return t
}

// load returns the parsed template for name.
func (t *templates) load(name string) (*template.Template, error) {
	if tmpl, ok := t.cache[name]; ok {
		return tmpl, nil
	}

	src, err := os.ReadFile(name)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		src, err = fs.ReadFile(builtinTemplates, path.Join("templates", name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
	default:
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(t.funcs()).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	t.cache[name] = tmpl
	return tmpl, nil
}

func (t *templates) funcs() template.FuncMap {
	return template.FuncMap{
		"title": func(s string) string {
			return modalTitleStyle.Render(s)
		},
		"markdown": t.markdown,
		"button": func(b dialog.BoundButton, selected bool) string {
			return buttonStyle(b.Classes, selected).Render(b.Text)
		},
		"help": func(dismissable bool) string {
			return modalHelpStyle.Render(t.help.ShortHelpView(t.keys.shortHelp(dismissable && t.escape)))
		},
	}
}

// markdown renders a dialog body. On renderer failure the body is returned
// as-is.
func (t *templates) markdown(body string) string {
	if t.renderer == nil {
		return body
	}

	rendered, err := t.renderer.Render(body)
	if err != nil {
		return body
	}

	lines := strings.Split(strings.TrimSpace(rendered), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// execute renders tmpl with the values of scope plus the selected index.
func execute(tmpl *template.Template, scope *dialog.Scope, selected int) (string, error) {
	data := scope.Values()
	data["selected"] = selected

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}
