package tui

import (
	"context"
	"sync"
	"text/template"
	"time"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/modalkit/internal/core/dialog"
)

// Options configures a Manager.
type Options struct {
	MarkdownStyle   string // glamour style for bodies (default "dark")
	DismissOnEscape bool   // esc rejects dismissable modals
	Keys            *KeyMap
	Logger          zerolog.Logger
}

// Manager is the windowing primitive: it keeps a stack of open modals,
// routes keys to the top one and draws it over the background.
type Manager struct {
	mu           sync.Mutex
	stack        []*window
	nextID       int
	keys         KeyMap
	templates    *templates
	dismissOnEsc bool
	logger       zerolog.Logger
}

// NewManager creates an empty window manager.
func NewManager(opts Options) *Manager {
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	return &Manager{
		keys:         keys,
		templates:    newTemplates(opts.MarkdownStyle, keys, opts.DismissOnEscape),
		dismissOnEsc: opts.DismissOnEscape,
		logger:       opts.Logger,
	}
}

// Open pushes a new window rendered from opts.Template with opts.Scope.
// A missing or invalid template is returned as an error and nothing is
// pushed.
func (m *Manager) Open(ctx context.Context, opts dialog.WindowOptions) (dialog.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tmpl, err := m.templates.load(opts.Template)
	if err != nil {
		return nil, err
	}

	outcome, resolver := dialog.NewOutcome()
	m.nextID++
	w := &window{
		id:       m.nextID,
		class:    opts.WindowClass,
		scope:    opts.Scope,
		tmpl:     tmpl,
		outcome:  outcome,
		resolver: resolver,
		mgr:      m,
	}
	m.stack = append(m.stack, w)

	m.logger.Debug().Int("window", w.id).Str("class", w.class).Int("depth", len(m.stack)).Msg("window opened")
	return w, nil
}

// Active reports whether any modal is open.
func (m *Manager) Active() bool {
	return m.Len() > 0
}

// Len returns the number of open modals.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stack)
}

// Update routes a message to the top modal. It reports whether the message
// was consumed; every key is consumed while a modal is open.
func (m *Manager) Update(msg tea.Msg) bool {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}

	m.mu.Lock()
	w := m.top()
	if w == nil {
		m.mu.Unlock()
		return false
	}

	view := w.view()
	n := len(view.Buttons)

	var settle func()
	switch {
	case key.Matches(keyMsg, m.keys.Next):
		if n > 0 {
			w.selected = (w.selected + 1) % n
		}
	case key.Matches(keyMsg, m.keys.Prev):
		if n > 0 {
			w.selected = (w.selected - 1 + n) % n
		}
	case key.Matches(keyMsg, m.keys.Press):
		if n > 0 {
			i := w.selected
			b := view.Buttons[i]
			ev := dialog.Event{Button: b.Text, Index: i, Key: keyMsg.String(), At: time.Now()}
			settle = func() { b.Click(ev) }
		}
	case key.Matches(keyMsg, m.keys.Dismiss):
		if view.Dismissable && m.dismissOnEsc {
			ev := dialog.Event{Index: -1, Key: keyMsg.String(), At: time.Now()}
			settle = func() { w.Dismiss(ev) }
		}
	}
	m.mu.Unlock()

	// Settling runs callbacks which may open further modals.
	if settle != nil {
		settle()
	}
	return true
}

// Render returns the framed top modal without positioning it. Template
// errors are drawn in place of the content.
func (m *Manager) Render() string {
	out, _ := m.RenderTop()
	return out
}

// RenderTop is Render that also reports a template execution error.
func (m *Manager) RenderTop() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.top()
	if w == nil {
		return "", nil
	}
	return w.render()
}

// Overlay draws the top modal as a layer centered over background in a
// width x height area. The background stays visible around the modal. With
// no modal open the background is returned unchanged.
func (m *Manager) Overlay(background string, width, height int) string {
	modal := m.Render()
	if modal == "" {
		return background
	}

	// Pad the background so the canvas covers the whole area.
	background = lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, background)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	centerX := max((width-modalW)/2, 0)
	centerY := max((height-modalH)/2, 0)

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal).X(centerX).Y(centerY).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

func (m *Manager) top() *window {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Manager) remove(w *window) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, cur := range m.stack {
		if cur == w {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			m.logger.Debug().Int("window", w.id).Int("depth", len(m.stack)).Msg("window closed")
			return
		}
	}
}

// window is one open modal. It implements dialog.Window.
type window struct {
	id       int
	class    string
	scope    *dialog.Scope
	tmpl     *template.Template
	selected int
	outcome  *dialog.Outcome
	resolver dialog.Resolver
	mgr      *Manager
}

func (w *window) Close(ev dialog.Event) bool {
	w.mgr.remove(w)
	return w.resolver.Fulfill(ev)
}

func (w *window) Dismiss(ev dialog.Event) bool {
	w.mgr.remove(w)
	return w.resolver.Reject(ev)
}

func (w *window) Result() *dialog.Outcome {
	return w.outcome
}

// view returns the modal merged into the window scope.
func (w *window) view() dialog.View {
	v, _ := w.scope.Get("modal")
	view, _ := v.(dialog.View)
	return view
}

func (w *window) render() (string, error) {
	content, err := execute(w.tmpl, w.scope, w.selected)
	if err != nil {
		content = modalErrorStyle.Render(err.Error())
	}
	return frameStyle(w.class).Render(content), err
}
