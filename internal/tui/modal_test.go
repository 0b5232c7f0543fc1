package tui

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/modalkit/internal/core/dialog"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestManager(t *testing.T, dismissOnEsc bool) (*dialog.Service, *Manager) {
	t.Helper()
	m := NewManager(Options{
		MarkdownStyle:   "notty",
		DismissOnEscape: dismissOnEsc,
		Logger:          zerolog.Nop(),
	})
	svc := dialog.New(dialog.NewLauncher(m, zerolog.Nop()), dialog.Options{})
	return svc, m
}

type calls struct {
	n      int
	extras []any
}

func (c *calls) cb(_ dialog.Event, extras ...any) {
	c.n++
	c.extras = extras
}

func TestManager_RendersDeleteDialog(t *testing.T) {
	svc, m := newTestManager(t, true)

	_, err := svc.Delete(nil)("widget")
	require.NoError(t, err)

	out := ansi.Strip(m.Render())
	assert.Contains(t, out, "Confirm Delete")
	assert.Contains(t, out, "widget")
	assert.Contains(t, out, "Delete")
	assert.Contains(t, out, "Cancel")
	assert.Contains(t, out, "esc")
}

func TestManager_EnterPressesSelected(t *testing.T) {
	svc, m := newTestManager(t, true)

	c := &calls{}
	h, err := svc.Delete(c.cb)("widget", 1, 2)
	require.NoError(t, err)

	assert.True(t, m.Update(keyEnter))

	assert.Equal(t, 1, c.n)
	assert.Equal(t, []any{1, 2}, c.extras)
	assert.Equal(t, dialog.StateFulfilled, h.Outcome().State())
	assert.Equal(t, "Delete", h.Outcome().Event().Button)
	assert.Equal(t, "enter", h.Outcome().Event().Key)
	assert.False(t, m.Active())
}

func TestManager_SelectCancel(t *testing.T) {
	svc, m := newTestManager(t, true)

	c := &calls{}
	h, err := svc.Delete(c.cb)("widget")
	require.NoError(t, err)

	m.Update(keyRight)
	m.Update(keyEnter)

	assert.Equal(t, 0, c.n)
	assert.Equal(t, dialog.StateRejected, h.Outcome().State())
	assert.Equal(t, "Cancel", h.Outcome().Event().Button)
	assert.False(t, m.Active())
}

func TestManager_SelectionWraps(t *testing.T) {
	svc, m := newTestManager(t, true)

	c := &calls{}
	h, err := svc.AskToLogin(c.cb)("deploy")
	require.NoError(t, err)

	// Cancel is first; moving left wraps to Login.
	m.Update(keyLeft)
	m.Update(keyEnter)

	assert.Equal(t, 1, c.n)
	assert.Equal(t, "Login", h.Outcome().Event().Button)
}

func TestManager_Escape(t *testing.T) {
	t.Run("dismisses when enabled", func(t *testing.T) {
		svc, m := newTestManager(t, true)

		c := &calls{}
		h, err := svc.Delete(c.cb)("widget")
		require.NoError(t, err)

		m.Update(keyEsc)

		assert.Equal(t, dialog.StateRejected, h.Outcome().State())
		assert.Equal(t, -1, h.Outcome().Event().Index)
		assert.Equal(t, 0, c.n)
		assert.False(t, m.Active())
	})

	t.Run("ignored when disabled", func(t *testing.T) {
		svc, m := newTestManager(t, false)

		h, err := svc.Delete(nil)("widget")
		require.NoError(t, err)

		assert.True(t, m.Update(keyEsc), "keys are consumed while a modal is open")
		assert.Equal(t, dialog.StateOpen, h.Outcome().State())
		assert.True(t, m.Active())
		assert.NotContains(t, ansi.Strip(m.Render()), "dismiss")
	})
}

func TestManager_MessageOkNeverInvokesCallback(t *testing.T) {
	svc, m := newTestManager(t, true)

	for name, factory := range map[string]func(dialog.Callback) dialog.Opener{
		"error":   svc.ErrorMessage,
		"success": svc.SuccessMessage,
	} {
		t.Run(name, func(t *testing.T) {
			c := &calls{}
			h, err := factory(c.cb)("saved", "extra")
			require.NoError(t, err)

			m.Update(keyEnter)

			assert.Equal(t, dialog.StateRejected, h.Outcome().State())
			assert.Equal(t, 0, c.n)
		})
	}
}

func TestManager_Stack(t *testing.T) {
	svc, m := newTestManager(t, true)

	first, err := svc.Delete(nil)("first")
	require.NoError(t, err)
	second, err := svc.ErrorMessage(nil)("second")
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	assert.Contains(t, ansi.Strip(m.Render()), "second")

	m.Update(keyEnter)
	assert.Equal(t, dialog.StateRejected, second.Outcome().State())
	assert.Equal(t, dialog.StateOpen, first.Outcome().State())
	assert.Contains(t, ansi.Strip(m.Render()), "first")

	m.Update(keyEnter)
	assert.Equal(t, dialog.StateFulfilled, first.Outcome().State())
	assert.False(t, m.Active())
}

func TestManager_ProgrammaticCloseRemovesWindow(t *testing.T) {
	svc, m := newTestManager(t, true)

	h, err := svc.Delete(nil)("widget")
	require.NoError(t, err)

	h.Dismiss(dialog.Event{Index: -1})
	assert.False(t, m.Active())
	assert.Equal(t, dialog.StateRejected, h.Outcome().State())
}

func TestManager_IgnoresWhenIdle(t *testing.T) {
	_, m := newTestManager(t, true)

	assert.False(t, m.Update(keyEnter))
	assert.False(t, m.Update(tea.WindowSizeMsg{Width: 10, Height: 10}))
	assert.Equal(t, "background", m.Overlay("background", 80, 24))
	assert.Empty(t, m.Render())
}

func TestManager_NonKeyMessagesPassThrough(t *testing.T) {
	svc, m := newTestManager(t, true)

	_, err := svc.Delete(nil)("widget")
	require.NoError(t, err)

	assert.False(t, m.Update(tea.WindowSizeMsg{Width: 10, Height: 10}))
	assert.True(t, m.Update(runeKey("x")))
	assert.True(t, m.Active())
}

func TestManager_OverlayCenters(t *testing.T) {
	svc, m := newTestManager(t, true)

	_, err := svc.SuccessMessage(nil)("done")
	require.NoError(t, err)

	background := "ITEM-ONE\nITEM-TWO"
	out := ansi.Strip(m.Overlay(background, 100, 30))

	assert.Contains(t, out, "Success")
	assert.Contains(t, out, "ITEM-ONE", "background stays visible around the modal")
	assert.Contains(t, out, "ITEM-TWO")

	lines := splitLines(out)
	assert.GreaterOrEqual(t, len(lines), 20)

	row := slices.IndexFunc(lines, func(l string) bool { return strings.Contains(l, "Success") })
	assert.Greater(t, row, 2, "modal is centered vertically")
	assert.Greater(t, strings.Index(lines[row], "Success"), 15, "modal is centered horizontally")
}

func TestManager_TemplateErrors(t *testing.T) {
	_, m := newTestManager(t, true)

	t.Run("missing template", func(t *testing.T) {
		l := dialog.NewLauncher(m, zerolog.Nop(), dialog.WithTemplate(filepath.Join(t.TempDir(), "missing.tmpl")))

		h, err := l.Open(dialog.Description{Title: "x"}, "")
		assert.Nil(t, h)
		require.ErrorIs(t, err, ErrTemplateNotFound)
		assert.False(t, m.Active())
	})

	t.Run("invalid template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{ .modal.Title "), 0o644))

		l := dialog.NewLauncher(m, zerolog.Nop(), dialog.WithTemplate(path))
		_, err := l.Open(dialog.Description{Title: "x"}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse template")
	})
}

func TestManager_CustomTemplate(t *testing.T) {
	_, m := newTestManager(t, true)

	path := filepath.Join(t.TempDir(), "plain.tmpl")
	content := `[{{ .modal.Title }}]{{ range .modal.Buttons }} <{{ .Text }}>{{ end }}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l := dialog.NewLauncher(m, zerolog.Nop(), dialog.WithTemplate(path))
	svc := dialog.New(l, dialog.Options{})

	_, err := svc.AskToLogin(nil)("x")
	require.NoError(t, err)

	out := ansi.Strip(m.Render())
	assert.Contains(t, out, "[Login] <Cancel> <Login>")
}

func TestManager_DiskTemplateShadowsBuiltin(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(dialog.DefaultTemplate, []byte(`custom {{ .modal.Title }}`), 0o644))

	svc, m := newTestManager(t, true)

	_, err := svc.ErrorMessage(nil)("boom")
	require.NoError(t, err)

	out := ansi.Strip(m.Render())
	assert.Contains(t, out, "custom Error")
	assert.NotContains(t, out, "Ok")
}

func TestManager_OpenCancelledContext(t *testing.T) {
	_, m := newTestManager(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Open(ctx, dialog.WindowOptions{Template: dialog.DefaultTemplate, Scope: dialog.NewScope()})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, m.Active())
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
