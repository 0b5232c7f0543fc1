package dialog

import (
	"fmt"

	"github.com/hay-kot/modalkit/pkg/tmpl"
)

// Button classes used by the built-in dialogs.
const (
	ClassDanger  = "btn-danger"
	ClassDefault = "btn-default"
	ClassWarning = "btn-warning"
	ClassPrimary = "btn-primary"
	ClassSuccess = "btn-success"
)

// Body templates for the built-in dialogs. Interpolated values are escaped.
const (
	deleteBody  = "Are you sure you want to delete **{{ .Name | esc }}** ?"
	loginBody   = "In order to complete the **{{ .Name | esc }}** action you must login."
	messageBody = "{{ .Message | esc }}"
)

// Callback receives the settling event followed by the extra arguments the
// opener was called with.
type Callback func(ev Event, extras ...any)

// Opener launches one dialog instance per call. primary is shown in the
// dialog body; extras are forwarded to the callback untouched.
type Opener func(primary string, extras ...any) (*Handle, error)

// Styles selects the window class for each built-in dialog.
type Styles struct {
	Delete  string
	Login   string
	Error   string
	Success string
}

// DefaultStyles returns the window classes used when none are configured.
func DefaultStyles() Styles {
	return Styles{
		Delete:  "modal-danger",
		Login:   "modal-primary",
		Error:   "modal-primary",
		Success: "modal-primary",
	}
}

// Options configures a Service.
type Options struct {
	Styles Styles

	// AckInvokesCallback makes the single "Ok" button of the error and
	// success dialogs resolve instead of reject, so their callback fires.
	AckInvokesCallback bool
}

// Service builds the pre-made dialogs on top of a Launcher.
type Service struct {
	launcher *Launcher
	opts     Options
}

// New creates a Service. Empty style fields fall back to DefaultStyles.
func New(l *Launcher, opts Options) *Service {
	defaults := DefaultStyles()
	if opts.Styles.Delete == "" {
		opts.Styles.Delete = defaults.Delete
	}
	if opts.Styles.Login == "" {
		opts.Styles.Login = defaults.Login
	}
	if opts.Styles.Error == "" {
		opts.Styles.Error = defaults.Error
	}
	if opts.Styles.Success == "" {
		opts.Styles.Success = defaults.Success
	}

	return &Service{launcher: l, opts: opts}
}

// Open opens an arbitrary description through the underlying launcher.
func (s *Service) Open(desc Description, styleTag string) (*Handle, error) {
	return s.launcher.Open(desc, styleTag)
}

// Delete returns an opener for a delete confirmation. onConfirm runs when
// "Delete" is pressed; "Cancel" runs nothing.
func (s *Service) Delete(onConfirm Callback) Opener {
	return s.opener(onConfirm, s.opts.Styles.Delete, func(name string) (Description, error) {
		body, err := tmpl.Render(deleteBody, map[string]string{"Name": name})
		if err != nil {
			return Description{}, err
		}

		return Description{
			Dismissable: true,
			Title:       "Confirm Delete",
			Body:        body,
			Buttons: []Button{
				{Classes: ClassDanger, Label: "Delete", Action: ActionResolve},
				{Classes: ClassDefault, Label: "Cancel", Action: ActionReject},
			},
		}, nil
	})
}

// AskToLogin returns an opener for a login prompt. cb runs when "Login" is
// pressed; "Cancel" runs nothing.
func (s *Service) AskToLogin(cb Callback) Opener {
	return s.opener(cb, s.opts.Styles.Login, func(name string) (Description, error) {
		body, err := tmpl.Render(loginBody, map[string]string{"Name": name})
		if err != nil {
			return Description{}, err
		}

		return Description{
			Dismissable: true,
			Title:       "Login",
			Body:        body,
			Buttons: []Button{
				{Classes: ClassWarning, Label: "Cancel", Action: ActionReject},
				{Classes: ClassPrimary, Label: "Login", Action: ActionResolve},
			},
		}, nil
	})
}

// ErrorMessage returns an opener for an error notice with a single "Ok"
// button. Unless AckInvokesCallback is set, "Ok" rejects and cb never runs.
func (s *Service) ErrorMessage(cb Callback) Opener {
	return s.opener(cb, s.opts.Styles.Error, s.message("Error", ClassWarning))
}

// SuccessMessage returns an opener for a success notice with a single "Ok"
// button. Unless AckInvokesCallback is set, "Ok" rejects and cb never runs.
func (s *Service) SuccessMessage(cb Callback) Opener {
	return s.opener(cb, s.opts.Styles.Success, s.message("Success", ClassSuccess))
}

func (s *Service) message(title, class string) func(string) (Description, error) {
	ack := ActionReject
	if s.opts.AckInvokesCallback {
		ack = ActionResolve
	}

	return func(message string) (Description, error) {
		body, err := tmpl.Render(messageBody, map[string]string{"Message": message})
		if err != nil {
			return Description{}, err
		}

		return Description{
			Dismissable: true,
			Title:       title,
			Body:        body,
			Buttons: []Button{
				{Classes: class, Label: "Ok", Action: ack},
			},
		}, nil
	}
}

// opener wires describe, the launcher and the outcome bridge into an Opener.
func (s *Service) opener(cb Callback, style string, describe func(string) (Description, error)) Opener {
	if cb == nil {
		cb = func(Event, ...any) {}
	}

	return func(primary string, extras ...any) (*Handle, error) {
		desc, err := describe(primary)
		if err != nil {
			return nil, fmt.Errorf("build dialog: %w", err)
		}

		h, err := s.launcher.Open(desc, style)
		if err != nil {
			return nil, err
		}

		bridge(h, cb, extras)
		return h, nil
	}
}

// bridge runs cb with the preserved extras once h is fulfilled. Rejection
// has no continuation.
func bridge(h *Handle, cb Callback, extras []any) {
	args := make([]any, len(extras))
	copy(args, extras)

	h.Outcome().Then(func(ev Event) {
		cb(ev, args...)
	})
}
