package dialog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DefaultStyle is the window class used when Open is called without one.
const DefaultStyle = "modal-default"

// DefaultTemplate names the built-in window template.
const DefaultTemplate = "modal.tmpl"

// ErrUnknownButton is returned by Handle.Press for an out of range index.
var ErrUnknownButton = errors.New("unknown button")

// WindowOptions is what the launcher hands to the windowing primitive.
type WindowOptions struct {
	Template    string
	WindowClass string
	Scope       *Scope
}

// Window is one open window of the windowing primitive. Close fulfills its
// result, Dismiss rejects it. Both report whether they settled it.
type Window interface {
	Close(ev Event) bool
	Dismiss(ev Event) bool
	Result() *Outcome
}

// Windower is the windowing primitive that actually renders modals.
type Windower interface {
	Open(ctx context.Context, opts WindowOptions) (Window, error)
}

// Launcher opens modals through a Windower, giving each one a fresh child
// scope with the caller's data merged in.
type Launcher struct {
	windows      Windower
	root         *Scope
	template     string
	defaultStyle string
	logger       zerolog.Logger
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithTemplate overrides the template passed to the Windower.
func WithTemplate(name string) LauncherOption {
	return func(l *Launcher) {
		if name != "" {
			l.template = name
		}
	}
}

// WithDefaultStyle overrides the window class used for an empty style tag.
func WithDefaultStyle(style string) LauncherOption {
	return func(l *Launcher) {
		if style != "" {
			l.defaultStyle = style
		}
	}
}

// WithRootScope sets the scope every modal scope is created from.
func WithRootScope(s *Scope) LauncherOption {
	return func(l *Launcher) {
		if s != nil {
			l.root = s
		}
	}
}

// NewLauncher creates a launcher that opens windows through w.
func NewLauncher(w Windower, logger zerolog.Logger, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		windows:      w,
		root:         NewScope(),
		template:     DefaultTemplate,
		defaultStyle: DefaultStyle,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open opens a modal rendering desc with the given window class. An empty
// styleTag selects the default style. Windower failures are returned
// wrapped but otherwise untouched.
func (l *Launcher) Open(desc Description, styleTag string) (*Handle, error) {
	if styleTag == "" {
		styleTag = l.defaultStyle
	}

	h := &Handle{}
	view := bind(desc, h)

	scope := l.root.NewChild()
	scope.Merge(map[string]any{"modal": view})

	win, err := l.windows.Open(context.Background(), WindowOptions{
		Template:    l.template,
		WindowClass: styleTag,
		Scope:       scope,
	})
	if err != nil {
		return nil, fmt.Errorf("open modal: %w", err)
	}

	h.window = win
	h.view = view
	h.scope = scope
	h.logger = l.logger.With().Str("title", desc.Title).Str("class", styleTag).Logger()

	h.logger.Debug().Int("buttons", len(view.Buttons)).Msg("modal opened")
	return h, nil
}

// bind copies desc into a View whose buttons settle h.
func bind(desc Description, h *Handle) View {
	view := View{
		Dismissable: desc.Dismissable,
		Title:       desc.Title,
		Body:        desc.Body,
		Buttons:     make([]BoundButton, len(desc.Buttons)),
	}

	for i, b := range desc.Buttons {
		bb := BoundButton{Classes: b.Classes, Text: b.Label, Action: b.Action}
		switch b.Action {
		case ActionResolve:
			bb.Click = h.Close
		default:
			bb.Click = h.Dismiss
		}
		view.Buttons[i] = bb
	}
	return view
}

// Handle identifies one open modal instance.
type Handle struct {
	window Window
	view   View
	scope  *Scope
	logger zerolog.Logger
}

// Outcome returns the future that settles when a button is pressed.
func (h *Handle) Outcome() *Outcome {
	return h.window.Result()
}

// Scope returns the scope the modal was rendered with.
func (h *Handle) Scope() *Scope {
	return h.scope
}

// View returns the bound view merged into the modal scope.
func (h *Handle) View() View {
	return h.view
}

// Close fulfills the modal's outcome.
func (h *Handle) Close(ev Event) {
	if h.window.Close(ev) {
		h.logger.Debug().Str("button", ev.Button).Msg("modal closed")
	}
}

// Dismiss rejects the modal's outcome.
func (h *Handle) Dismiss(ev Event) {
	if h.window.Dismiss(ev) {
		h.logger.Debug().Str("button", ev.Button).Str("key", ev.Key).Msg("modal dismissed")
	}
}

// Press clicks the button at index i as if the user had selected it.
func (h *Handle) Press(i int) error {
	if i < 0 || i >= len(h.view.Buttons) {
		return fmt.Errorf("%w: index %d", ErrUnknownButton, i)
	}

	b := h.view.Buttons[i]
	b.Click(Event{Button: b.Text, Index: i, At: time.Now()})
	return nil
}

// PressLabel clicks the first button labelled label.
func (h *Handle) PressLabel(label string) error {
	for i, b := range h.view.Buttons {
		if b.Text == label {
			return h.Press(i)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownButton, label)
}
