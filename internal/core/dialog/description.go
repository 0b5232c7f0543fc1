// Package dialog builds declarative dialog descriptions and bridges button
// presses back to caller callbacks through a settle-once Outcome.
package dialog

import (
	"fmt"
	"time"
)

// Action identifies how a button settles its modal.
type Action int

const (
	// ActionResolve fulfills the modal's outcome.
	ActionResolve Action = iota
	// ActionReject rejects the modal's outcome.
	ActionReject
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionResolve:
		return "resolve"
	case ActionReject:
		return "reject"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Event describes the user interaction that settled a modal.
type Event struct {
	Button string    // label of the pressed button, empty for key dismissals
	Index  int       // index of the pressed button, -1 for key dismissals
	Key    string    // key that triggered the press
	At     time.Time // when the interaction happened
}

// Button describes one button of a dialog.
type Button struct {
	Classes string
	Label   string
	Action  Action
}

// Description is the declarative shape of a dialog.
type Description struct {
	Dismissable bool
	Title       string
	Body        string
	Buttons     []Button
}

// BoundButton is a button as seen by the window template: its label and
// classes plus a Click func bound to one modal instance.
type BoundButton struct {
	Classes string
	Text    string
	Action  Action
	Click   func(Event)
}

// View is the value merged into a modal scope under the "modal" key.
type View struct {
	Dismissable bool
	Title       string
	Body        string
	Buttons     []BoundButton
}
