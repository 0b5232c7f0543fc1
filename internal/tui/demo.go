package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/modalkit/internal/core/dialog"
)

// Key constants for event handling.
const (
	keyCtrlC = "ctrl+c"
)

// Demo is a Bubble Tea model listing a few items whose keys open each of
// the built-in dialogs. It is pointer based because dialog callbacks run
// during Update and mutate it.
type Demo struct {
	windows *Manager
	items   []string
	cursor  int
	status  string
	width   int
	height  int
	logger  zerolog.Logger

	loggedIn bool

	confirmDelete dialog.Opener
	askToLogin    dialog.Opener
	showError     dialog.Opener
	showSuccess   dialog.Opener
}

// NewDemo creates the demo model. windows must be the Windower behind svc.
func NewDemo(svc *dialog.Service, windows *Manager, items []string, logger zerolog.Logger) *Demo {
	d := &Demo{
		windows: windows,
		items:   append([]string(nil), items...),
		status:  "not logged in",
		logger:  logger,
	}

	d.confirmDelete = svc.Delete(d.onDelete)
	d.askToLogin = svc.AskToLogin(d.onLogin)
	d.showError = svc.ErrorMessage(d.onAcknowledge)
	d.showSuccess = svc.SuccessMessage(d.onAcknowledge)

	return d
}

// Items returns the remaining items.
func (d *Demo) Items() []string {
	return d.items
}

// Status returns the status line text.
func (d *Demo) Status() string {
	return d.status
}

// Init implements tea.Model.
func (d *Demo) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (d *Demo) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			return d, tea.Quit
		}
		if d.windows.Update(msg) {
			return d, nil
		}
		return d.handleKey(msg.String())
	}

	return d, nil
}

func (d *Demo) handleKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "q":
		return d, tea.Quit
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.items)-1 {
			d.cursor++
		}
	case "d":
		if len(d.items) == 0 {
			d.open(d.showError, "There is nothing left to delete.")
			return d, nil
		}
		item := d.items[d.cursor]
		if !d.loggedIn {
			d.open(d.askToLogin, "delete", item)
			return d, nil
		}
		d.confirm(item)
	case "l":
		if d.loggedIn {
			d.open(d.showSuccess, "You are already logged in.")
			return d, nil
		}
		d.open(d.askToLogin, "login")
	case "e":
		d.open(d.showError, "Something went wrong.", "error")
	case "s":
		d.open(d.showSuccess, "Everything worked.", "success")
	}
	return d, nil
}

func (d *Demo) open(opener dialog.Opener, primary string, extras ...any) *dialog.Handle {
	h, err := opener(primary, extras...)
	if err != nil {
		d.logger.Error().Err(err).Msg("open dialog")
		d.status = "error: " + err.Error()
		return nil
	}
	return h
}

// confirm asks before deleting item. A cancelled confirmation never reaches
// onDelete, so the rejection is reported here.
func (d *Demo) confirm(item string) {
	h := d.open(d.confirmDelete, item, item)
	if h == nil {
		return
	}
	h.Outcome().Catch(func(dialog.Event) {
		d.status = "kept " + item
	})
}

// onDelete removes the item passed as the first extra argument.
func (d *Demo) onDelete(_ dialog.Event, extras ...any) {
	if len(extras) == 0 {
		return
	}
	item, _ := extras[0].(string)

	for i, it := range d.items {
		if it == item {
			d.items = append(d.items[:i], d.items[i+1:]...)
			break
		}
	}
	if d.cursor >= len(d.items) && d.cursor > 0 {
		d.cursor = len(d.items) - 1
	}

	d.status = "deleted " + item
	d.open(d.showSuccess, fmt.Sprintf("Deleted %s.", item))
}

// onLogin marks the session logged in and resumes the pending delete, if
// one was passed along.
func (d *Demo) onLogin(_ dialog.Event, extras ...any) {
	d.loggedIn = true
	d.status = "logged in"

	if len(extras) > 0 {
		if item, ok := extras[0].(string); ok {
			d.confirm(item)
		}
	}
}

func (d *Demo) onAcknowledge(ev dialog.Event, extras ...any) {
	d.status = fmt.Sprintf("acknowledged %s %v", ev.Button, extras)
}

// View implements tea.Model.
func (d *Demo) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("modalkit demo"))
	b.WriteString("\n\n")

	if len(d.items) == 0 {
		b.WriteString(statusStyle.Render("no items"))
		b.WriteString("\n")
	}
	for i, item := range d.items {
		if i == d.cursor {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString(normalStyle.Render("  " + item))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(d.status))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("d delete • l login • e error • s success • q quit"))

	background := b.String()
	if !d.windows.Active() {
		return background
	}

	width := max(d.width, lipgloss.Width(background))
	height := max(d.height, lipgloss.Height(background))
	return d.windows.Overlay(background, width, height)
}
