// Package flow models the booking wizard as an explicit state machine. The
// handler drives it per step so that every transition, including the failure
// paths, is enumerable and testable.
package flow

import (
	"errors"
	"time"

	"seller_portal_backend/internal/booking/calendar"
)

// State is a step in the booking wizard.
type State int

const (
	// StateCalendar is the initial day-picking step.
	StateCalendar State = iota
	// StateTimes is the slot-picking step for the selected day.
	StateTimes
	// StateValidating means the chosen slot is being re-checked upstream.
	StateValidating
	// StateConfirming is the contact-details step for a validated slot.
	StateConfirming
	// StateBooking means the booking call is in flight.
	StateBooking
	// StateSuccess is the terminal success step.
	StateSuccess
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCalendar:
		return "calendar"
	case StateTimes:
		return "times"
	case StateValidating:
		return "validating"
	case StateConfirming:
		return "confirming"
	case StateBooking:
		return "booking"
	case StateSuccess:
		return "success"
	}
	return "unknown"
}

// ErrClosed is returned for any transition attempted after Close.
var ErrClosed = errors.New("booking flow closed")

// ErrInvalidTransition is returned when a step is driven out of order.
var ErrInvalidTransition = errors.New("invalid booking flow transition")

// Flow is a single booking session. It is not safe for concurrent use; each
// session owns one Flow.
type Flow struct {
	state  State
	closed bool

	selectedDay  time.Time
	selectedSlot time.Time
}

// New creates a flow at the calendar step.
func New() *Flow {
	return &Flow{state: StateCalendar}
}

// State returns the current step.
func (f *Flow) State() State {
	return f.state
}

// SelectedSlot returns the slot currently being booked, zero if none.
func (f *Flow) SelectedSlot() time.Time {
	return f.selectedSlot
}

// SelectDay moves from the calendar to the times step.
func (f *Flow) SelectDay(day time.Time) error {
	if err := f.guard(StateCalendar); err != nil {
		return err
	}
	f.selectedDay = day
	f.state = StateTimes
	return nil
}

// SelectSlot moves from the times step into validation.
func (f *Flow) SelectSlot(start time.Time) error {
	if err := f.guard(StateTimes); err != nil {
		return err
	}
	f.selectedSlot = start
	f.state = StateValidating
	return nil
}

// ValidationSucceeded moves a validated slot to the confirmation step.
func (f *Flow) ValidationSucceeded() error {
	if err := f.guard(StateValidating); err != nil {
		return err
	}
	f.state = StateConfirming
	return nil
}

// ValidationFailed sends the session back to slot selection.
func (f *Flow) ValidationFailed() error {
	if err := f.guard(StateValidating); err != nil {
		return err
	}
	f.selectedSlot = time.Time{}
	f.state = StateTimes
	return nil
}

// Confirm starts the booking call for the validated slot.
func (f *Flow) Confirm() error {
	if err := f.guard(StateConfirming); err != nil {
		return err
	}
	f.state = StateBooking
	return nil
}

// BookingSucceeded moves the session to the terminal success step.
func (f *Flow) BookingSucceeded() error {
	if err := f.guard(StateBooking); err != nil {
		return err
	}
	f.state = StateSuccess
	return nil
}

// BookingFailed routes a failed booking call. A slot conflict invalidates the
// selection and returns to slot picking; any other failure keeps the details
// the user already entered and returns to confirmation for a retry.
func (f *Flow) BookingFailed(err error) error {
	if f.closed {
		return ErrClosed
	}
	if f.state != StateBooking {
		return ErrInvalidTransition
	}

	if errors.Is(err, calendar.ErrSlotUnavailable) {
		f.selectedSlot = time.Time{}
		f.state = StateTimes
		return nil
	}
	f.state = StateConfirming
	return nil
}

// Back steps the wizard backwards. It is a no-op on the calendar step and not
// permitted while a validation or booking call is in flight, or after success.
func (f *Flow) Back() error {
	if f.closed {
		return ErrClosed
	}

	switch f.state {
	case StateCalendar:
		return nil
	case StateTimes:
		f.selectedDay = time.Time{}
		f.state = StateCalendar
		return nil
	case StateConfirming:
		f.selectedSlot = time.Time{}
		f.state = StateTimes
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Close ends the session. Every later transition fails with ErrClosed.
func (f *Flow) Close() {
	f.closed = true
}

func (f *Flow) guard(from State) error {
	if f.closed {
		return ErrClosed
	}
	if f.state != from {
		return ErrInvalidTransition
	}
	return nil
}
