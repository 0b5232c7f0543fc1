package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDemo(t *testing.T, items ...string) (*Demo, *Manager) {
	t.Helper()
	svc, m := newTestManager(t, true)
	return NewDemo(svc, m, items, zerolog.Nop()), m
}

func send(d *Demo, msgs ...tea.Msg) {
	for _, msg := range msgs {
		d.Update(msg)
	}
}

func TestDemo_LoginThenDelete(t *testing.T) {
	d, m := newTestDemo(t, "alpha", "beta")

	send(d, runeKey("d"))
	require.True(t, m.Active())
	assert.Contains(t, ansi.Strip(m.Render()), "Login")

	// select "Login" and press it; the pending delete opens next
	send(d, keyRight, keyEnter)
	assert.Equal(t, "logged in", d.Status())
	require.True(t, m.Active())
	assert.Contains(t, ansi.Strip(m.Render()), "Confirm Delete")

	send(d, keyEnter)
	assert.Equal(t, []string{"beta"}, d.Items())
	assert.Equal(t, "deleted alpha", d.Status())

	// success notice follows the delete
	require.True(t, m.Active())
	assert.Contains(t, ansi.Strip(m.Render()), "Deleted alpha")
	send(d, keyEnter)
	assert.False(t, m.Active())
}

func TestDemo_CancelLoginKeepsItems(t *testing.T) {
	d, m := newTestDemo(t, "alpha")

	send(d, runeKey("d"), keyEnter)

	assert.False(t, m.Active())
	assert.Equal(t, []string{"alpha"}, d.Items())
	assert.Equal(t, "not logged in", d.Status())
}

func TestDemo_CancelDelete(t *testing.T) {
	d, m := newTestDemo(t, "alpha", "beta")

	send(d, runeKey("l"), keyRight, keyEnter)
	require.False(t, m.Active())

	send(d, tea.KeyMsg{Type: tea.KeyDown}, runeKey("d"), keyRight, keyEnter)
	assert.False(t, m.Active())
	assert.Equal(t, []string{"alpha", "beta"}, d.Items())
	assert.Equal(t, "kept beta", d.Status())

	send(d, runeKey("d"), keyEsc)
	assert.False(t, m.Active())
	assert.Equal(t, []string{"alpha", "beta"}, d.Items())
}

func TestDemo_MessagesDoNotAcknowledge(t *testing.T) {
	d, m := newTestDemo(t, "alpha")

	send(d, runeKey("e"))
	require.True(t, m.Active())
	assert.Contains(t, ansi.Strip(d.View()), "Something went wrong")

	send(d, keyEnter)
	assert.False(t, m.Active())
	assert.Equal(t, "not logged in", d.Status())
}

func TestDemo_KeysGoToModal(t *testing.T) {
	d, m := newTestDemo(t, "alpha", "beta")

	send(d, runeKey("s"))
	require.True(t, m.Active())

	// "q" must not quit while a modal is open
	_, cmd := d.Update(runeKey("q"))
	assert.Nil(t, cmd)
	assert.True(t, m.Active())
}

func TestDemo_ViewWithoutModal(t *testing.T) {
	d, _ := newTestDemo(t, "alpha", "beta")
	send(d, tea.WindowSizeMsg{Width: 80, Height: 24})

	out := ansi.Strip(d.View())
	assert.Contains(t, out, "> alpha")
	assert.Contains(t, out, "  beta")
	assert.Contains(t, out, "not logged in")
}

func TestDemo_ViewKeepsListBehindModal(t *testing.T) {
	d, m := newTestDemo(t, "alpha", "beta")
	send(d, tea.WindowSizeMsg{Width: 100, Height: 40}, runeKey("e"))
	require.True(t, m.Active())

	out := ansi.Strip(d.View())
	assert.Contains(t, out, "Something went wrong")
	assert.Contains(t, out, "> alpha")
	assert.Contains(t, out, "not logged in")
}
