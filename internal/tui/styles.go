// Package tui implements the Bubble Tea windowing primitive for modalkit
// dialogs and a small demo program built on it.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a") // green
	colorYellow = lipgloss.Color("#e0af68") // yellow
	colorBlue   = lipgloss.Color("#7aa2f7") // blue
	colorRed    = lipgloss.Color("#f38ba8") // red
	colorCyan   = lipgloss.Color("#7dcfff") // cyan
	colorGray   = lipgloss.Color("#565f89") // comment
	colorWhite  = lipgloss.Color("#c0caf5") // foreground
	colorDark   = lipgloss.Color("#1a1b26") // background
	colorMuted  = lipgloss.Color("#3b4261") // selection
)

// Styles used for the demo list.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			PaddingLeft(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true).
			PaddingLeft(1)
)

// Modal styles.
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1)

	modalErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	modalButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(colorMuted).
				Foreground(lipgloss.Color("#a9b1d6"))
)

// windowBorders maps window classes to their border color.
var windowBorders = map[string]lipgloss.Color{
	"modal-default": colorGray,
	"modal-danger":  colorRed,
	"modal-primary": colorBlue,
	"modal-warning": colorYellow,
	"modal-success": colorGreen,
	"modal-info":    colorCyan,
}

// buttonColors maps button classes to the background used when selected.
var buttonColors = map[string]lipgloss.Color{
	"btn-default": colorGray,
	"btn-danger":  colorRed,
	"btn-primary": colorBlue,
	"btn-warning": colorYellow,
	"btn-success": colorGreen,
}

// frameStyle returns the modal frame for a window class. Several classes
// may be given separated by spaces; the first known one wins.
func frameStyle(class string) lipgloss.Style {
	for _, c := range strings.Fields(class) {
		if color, ok := windowBorders[c]; ok {
			return modalStyle.BorderForeground(color)
		}
	}
	return modalStyle
}

// buttonStyle returns the style for a button with the given classes.
func buttonStyle(classes string, selected bool) lipgloss.Style {
	if !selected {
		return modalButtonStyle
	}

	bg := colorBlue
	for _, c := range strings.Fields(classes) {
		if color, ok := buttonColors[c]; ok {
			bg = color
			break
		}
	}

	return modalButtonStyle.
		Background(bg).
		Foreground(colorDark).
		Bold(true)
}
