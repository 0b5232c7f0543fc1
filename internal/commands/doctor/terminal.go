package doctor

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
)

// minWidth is the narrowest terminal the built-in template fits in.
const minWidth = 64

// TerminalCheck reports whether stdout can host the interactive demo.
type TerminalCheck struct {
	fd int
}

// NewTerminalCheck creates a terminal check for stdout.
func NewTerminalCheck() *TerminalCheck {
	return &TerminalCheck{fd: int(os.Stdout.Fd())}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if !term.IsTerminal(c.fd) {
		result.Items = append(result.Items, CheckItem{
			Label:  "Interactive",
			Status: StatusWarn,
			Detail: "stdout is not a terminal; only preview output is available",
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Interactive",
		Status: StatusPass,
	})

	width, height, err := term.GetSize(c.fd)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Size",
			Status: StatusWarn,
			Detail: err.Error(),
		})
		return result
	}

	item := CheckItem{
		Label:  "Size",
		Status: StatusPass,
		Detail: fmt.Sprintf("%dx%d", width, height),
	}
	if width < minWidth {
		item.Status = StatusWarn
		item.Detail = fmt.Sprintf("%dx%d, dialogs need at least %d columns", width, height, minWidth)
	}
	result.Items = append(result.Items, item)

	return result
}
