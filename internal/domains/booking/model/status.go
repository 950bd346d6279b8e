package model

import (
	"slices"
	"time"

	"tourism/shared/timezone"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusConfirmed = "confirmed"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
	StatusCompleted = "completed"
)

var transitions = map[string][]string{
	StatusPending:   {StatusAccepted, StatusConfirmed, StatusCancelled, StatusExpired},
	StatusAccepted:  {StatusPaid, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusPaid:      {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// IsTerminal reports whether no further change is possible.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

// RequiresDownPayment reports whether accepting a booking of this target
// waits for a down payment before it is confirmed.
func RequiresDownPayment(targetType string) bool {
	switch targetType {
	case TargetResort, TargetHotel, TargetBoat:
		return true
	default:
		return false
	}
}

// StatusAfterAccept is the status an accepted booking moves to.
func StatusAfterAccept(targetType string) string {
	if RequiresDownPayment(targetType) {
		return StatusAccepted
	}

	return StatusConfirmed
}

type ExpiryPolicy struct {
	PendingWindow time.Duration
	PaymentWindow time.Duration
}

// EffectiveStatus is the stored status with time-based expiry applied. A
// booking still waiting on the operator or on payment expires when its window
// closes or when its check-in day is over.
func (b Booking) EffectiveStatus(now time.Time, policy ExpiryPolicy) string {
	if b.Status != StatusPending && b.Status != StatusAccepted {
		return b.Status
	}

	if now.After(timezone.EndOfDate(b.CheckIn)) {
		return StatusExpired
	}

	switch b.Status {
	case StatusPending:
		if policy.PendingWindow > 0 && now.After(b.CreatedAt.Add(policy.PendingWindow)) {
			return StatusExpired
		}
	case StatusAccepted:
		if policy.PaymentWindow > 0 && b.AcceptedAt != nil && now.After(b.AcceptedAt.Add(policy.PaymentWindow)) {
			return StatusExpired
		}
	}

	return b.Status
}

// ExpiresAt is when the booking will expire if nothing else happens, or nil
// when it cannot expire any more. A window of zero or less only leaves the
// end of the check-in day.
func (b Booking) ExpiresAt(policy ExpiryPolicy) *time.Time {
	deadline := timezone.EndOfDate(b.CheckIn)

	var window time.Time

	switch b.Status {
	case StatusPending:
		if policy.PendingWindow > 0 {
			window = b.CreatedAt.Add(policy.PendingWindow)
		}
	case StatusAccepted:
		if policy.PaymentWindow > 0 && b.AcceptedAt != nil {
			window = b.AcceptedAt.Add(policy.PaymentWindow)
		}
	default:
		return nil
	}

	if !window.IsZero() && window.Before(deadline) {
		deadline = window
	}

	return &deadline
}
