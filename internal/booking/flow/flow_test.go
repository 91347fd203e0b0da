package flow

import (
	"errors"
	"testing"
	"time"

	"seller_portal_backend/internal/booking/calendar"
)

func mustStep(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected transition error: %v", err)
	}
}

func driveToConfirming(t *testing.T) *Flow {
	t.Helper()
	f := New()
	mustStep(t, f.SelectDay(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	mustStep(t, f.SelectSlot(time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)))
	mustStep(t, f.ValidationSucceeded())
	return f
}

func TestHappyPath(t *testing.T) {
	f := driveToConfirming(t)
	if f.State() != StateConfirming {
		t.Fatalf("state = %s, want confirming", f.State())
	}

	mustStep(t, f.Confirm())
	if f.State() != StateBooking {
		t.Fatalf("state = %s, want booking", f.State())
	}

	mustStep(t, f.BookingSucceeded())
	if f.State() != StateSuccess {
		t.Fatalf("state = %s, want success", f.State())
	}
}

func TestValidationFailureReturnsToTimes(t *testing.T) {
	f := New()
	mustStep(t, f.SelectDay(time.Now()))
	slot := time.Now().Add(48 * time.Hour)
	mustStep(t, f.SelectSlot(slot))

	mustStep(t, f.ValidationFailed())
	if f.State() != StateTimes {
		t.Fatalf("state = %s, want times", f.State())
	}
	if !f.SelectedSlot().IsZero() {
		t.Error("stale slot kept after failed validation")
	}
}

func TestSlotConflictDuringBookingReturnsToTimes(t *testing.T) {
	f := driveToConfirming(t)
	mustStep(t, f.Confirm())

	mustStep(t, f.BookingFailed(calendar.ErrSlotUnavailable))
	if f.State() != StateTimes {
		t.Fatalf("state = %s, want times", f.State())
	}
	if !f.SelectedSlot().IsZero() {
		t.Error("conflicted slot kept after booking failure")
	}
}

func TestGenericBookingFailureReturnsToConfirming(t *testing.T) {
	f := driveToConfirming(t)
	mustStep(t, f.Confirm())

	mustStep(t, f.BookingFailed(errors.New("provider timeout")))
	if f.State() != StateConfirming {
		t.Fatalf("state = %s, want confirming", f.State())
	}
	if f.SelectedSlot().IsZero() {
		t.Error("slot should survive a retryable booking failure")
	}
}

func TestBackTransitions(t *testing.T) {
	f := driveToConfirming(t)

	mustStep(t, f.Back())
	if f.State() != StateTimes {
		t.Fatalf("state = %s, want times", f.State())
	}

	mustStep(t, f.Back())
	if f.State() != StateCalendar {
		t.Fatalf("state = %s, want calendar", f.State())
	}

	// Back on the first step stays put.
	mustStep(t, f.Back())
	if f.State() != StateCalendar {
		t.Fatalf("state = %s, want calendar", f.State())
	}
}

func TestBackBlockedWhileInFlight(t *testing.T) {
	f := New()
	mustStep(t, f.SelectDay(time.Now()))
	mustStep(t, f.SelectSlot(time.Now().Add(time.Hour)))

	if err := f.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Back() during validation = %v, want ErrInvalidTransition", err)
	}
}

func TestOutOfOrderTransitionsRejected(t *testing.T) {
	f := New()

	if err := f.SelectSlot(time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SelectSlot from calendar = %v, want ErrInvalidTransition", err)
	}
	if err := f.Confirm(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Confirm from calendar = %v, want ErrInvalidTransition", err)
	}
	if err := f.BookingSucceeded(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("BookingSucceeded from calendar = %v, want ErrInvalidTransition", err)
	}
}

func TestCloseStopsAllTransitions(t *testing.T) {
	f := driveToConfirming(t)
	f.Close()

	if err := f.Confirm(); !errors.Is(err, ErrClosed) {
		t.Errorf("Confirm after close = %v, want ErrClosed", err)
	}
	if err := f.Back(); !errors.Is(err, ErrClosed) {
		t.Errorf("Back after close = %v, want ErrClosed", err)
	}
	if err := f.BookingFailed(errors.New("late")); !errors.Is(err, ErrClosed) {
		t.Errorf("BookingFailed after close = %v, want ErrClosed", err)
	}
}
