package dialog

import (
	"context"
	"errors"
	"sync"
)

// State is the settlement state of an Outcome.
type State int

const (
	StateOpen State = iota
	StateFulfilled
	StateRejected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateFulfilled:
		return "fulfilled"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ErrRejected is returned by Outcome.Wait when the outcome was rejected.
var ErrRejected = errors.New("modal dismissed")

// Outcome is a future that settles exactly once, either fulfilled or
// rejected, carrying the Event that settled it.
type Outcome struct {
	mu          sync.Mutex
	state       State
	event       Event
	onFulfilled []func(Event)
	onRejected  []func(Event)
	done        chan struct{}
}

// Resolver settles the Outcome it was created with. Only the first call to
// Fulfill or Reject has any effect.
type Resolver struct {
	o *Outcome
}

// NewOutcome returns an open Outcome and the Resolver that settles it.
func NewOutcome() (*Outcome, Resolver) {
	o := &Outcome{done: make(chan struct{})}
	return o, Resolver{o: o}
}

// Fulfill settles the outcome as fulfilled. It reports whether this call
// settled it.
func (r Resolver) Fulfill(ev Event) bool {
	return r.o.settle(StateFulfilled, ev)
}

// Reject settles the outcome as rejected. It reports whether this call
// settled it.
func (r Resolver) Reject(ev Event) bool {
	return r.o.settle(StateRejected, ev)
}

func (o *Outcome) settle(state State, ev Event) bool {
	o.mu.Lock()
	if o.state != StateOpen {
		o.mu.Unlock()
		return false
	}

	o.state = state
	o.event = ev

	var run []func(Event)
	if state == StateFulfilled {
		run = o.onFulfilled
	} else {
		run = o.onRejected
	}
	o.onFulfilled = nil
	o.onRejected = nil
	close(o.done)
	o.mu.Unlock()

	for _, fn := range run {
		fn(ev)
	}
	return true
}

// Then registers fn to run when the outcome is fulfilled. If it already
// is, fn runs immediately on the calling goroutine.
func (o *Outcome) Then(fn func(Event)) *Outcome {
	o.mu.Lock()
	switch o.state {
	case StateOpen:
		o.onFulfilled = append(o.onFulfilled, fn)
		o.mu.Unlock()
	case StateFulfilled:
		ev := o.event
		o.mu.Unlock()
		fn(ev)
	default:
		o.mu.Unlock()
	}
	return o
}

// Catch registers fn to run when the outcome is rejected. If it already
// is, fn runs immediately on the calling goroutine.
func (o *Outcome) Catch(fn func(Event)) *Outcome {
	o.mu.Lock()
	switch o.state {
	case StateOpen:
		o.onRejected = append(o.onRejected, fn)
		o.mu.Unlock()
	case StateRejected:
		ev := o.event
		o.mu.Unlock()
		fn(ev)
	default:
		o.mu.Unlock()
	}
	return o
}

// State returns the current settlement state.
func (o *Outcome) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Event returns the settling event, or the zero Event while open.
func (o *Outcome) Event() Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.event
}

// Done is closed once the outcome settles.
func (o *Outcome) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the outcome settles or ctx is done. A rejected outcome
// returns its event together with ErrRejected.
func (o *Outcome) Wait(ctx context.Context) (Event, error) {
	select {
	case <-o.done:
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateRejected {
		return o.event, ErrRejected
	}
	return o.event, nil
}
