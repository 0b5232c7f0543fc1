package doctor

import (
	"context"
	"fmt"

	"github.com/hay-kot/modalkit/internal/core/dialog"
)

// Renderer draws the top open modal.
type Renderer interface {
	RenderTop() (string, error)
}

// DialogCheck opens every built-in dialog against the configured window
// template and verifies it renders and settles.
type DialogCheck struct {
	svc     *dialog.Service
	windows Renderer
}

// NewDialogCheck creates a check that exercises svc, whose windows are
// drawn by windows.
func NewDialogCheck(svc *dialog.Service, windows Renderer) *DialogCheck {
	return &DialogCheck{svc: svc, windows: windows}
}

func (c *DialogCheck) Name() string {
	return "Dialogs"
}

func (c *DialogCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	dialogs := []struct {
		label  string
		opener dialog.Opener
		press  string
		want   dialog.State
	}{
		{"delete", c.svc.Delete(nil), "Cancel", dialog.StateRejected},
		{"login", c.svc.AskToLogin(nil), "Cancel", dialog.StateRejected},
		{"error", c.svc.ErrorMessage(nil), "Ok", dialog.StateOpen},
		{"success", c.svc.SuccessMessage(nil), "Ok", dialog.StateOpen},
	}

	for _, d := range dialogs {
		item := CheckItem{Label: d.label, Status: StatusPass}

		if err := c.exercise(d.opener, d.press, d.want); err != nil {
			item.Status = StatusFail
			item.Detail = err.Error()
		}

		result.Items = append(result.Items, item)
	}

	return result
}

// exercise opens a dialog, renders it and presses one button. Passing
// StateOpen as want accepts either settled state.
func (c *DialogCheck) exercise(open dialog.Opener, press string, want dialog.State) error {
	h, err := open("doctor")
	if err != nil {
		return err
	}

	// Failed dialogs are dismissed so they do not stay on top of the next one.
	abort := func(err error) error {
		h.Dismiss(dialog.Event{Index: -1})
		return err
	}

	out, err := c.windows.RenderTop()
	if err != nil {
		return abort(err)
	}
	if out == "" {
		return abort(fmt.Errorf("nothing rendered"))
	}

	if err := h.PressLabel(press); err != nil {
		return abort(err)
	}

	got := h.Outcome().State()
	switch {
	case got == dialog.StateOpen:
		return fmt.Errorf("%s did not settle the dialog", press)
	case want != dialog.StateOpen && got != want:
		return fmt.Errorf("%s settled as %s, want %s", press, got, want)
	}
	return nil
}
