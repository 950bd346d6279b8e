package model

import (
	"testing"
	"time"

	gModel "tourism/shared/model"
	"tourism/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusAccepted))
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusAccepted, StatusPaid))
	assert.True(t, CanTransition(StatusPaid, StatusCompleted))
	assert.True(t, CanTransition(StatusConfirmed, StatusCompleted))
	assert.False(t, CanTransition(StatusPending, StatusPaid))
	assert.False(t, CanTransition(StatusConfirmed, StatusPaid))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusPaid, StatusExpired))

	for _, status := range []string{StatusCancelled, StatusExpired, StatusCompleted} {
		assert.True(t, IsTerminal(status), status)
	}

	assert.False(t, IsTerminal(StatusPaid))
}

func TestStatusAfterAccept(t *testing.T) {
	assert.Equal(t, StatusAccepted, StatusAfterAccept(TargetResort))
	assert.Equal(t, StatusAccepted, StatusAfterAccept(TargetHotel))
	assert.Equal(t, StatusAccepted, StatusAfterAccept(TargetBoat))
	assert.Equal(t, StatusConfirmed, StatusAfterAccept(TargetRestaurant))
	assert.Equal(t, StatusConfirmed, StatusAfterAccept(TargetLandingArea))
}

func TestBooking_EffectiveStatus(t *testing.T) {
	now := timezone.Now()
	policy := ExpiryPolicy{PendingWindow: 24 * time.Hour, PaymentWindow: 12 * time.Hour}
	nextWeek := now.AddDate(0, 0, 7)
	accepted := now.Add(-13 * time.Hour)
	recent := now.Add(-time.Hour)

	tests := []struct {
		name    string
		booking Booking
		want    string
	}{
		{
			name:    "fresh pending",
			booking: Booking{Status: StatusPending, CheckIn: nextWeek, Metadata: metadataAt(now.Add(-time.Hour))},
			want:    StatusPending,
		},
		{
			name:    "pending past window",
			booking: Booking{Status: StatusPending, CheckIn: nextWeek, Metadata: metadataAt(now.Add(-25 * time.Hour))},
			want:    StatusExpired,
		},
		{
			name:    "accepted past payment window",
			booking: Booking{Status: StatusAccepted, CheckIn: nextWeek, AcceptedAt: &accepted, Metadata: metadataAt(now.Add(-14 * time.Hour))},
			want:    StatusExpired,
		},
		{
			name:    "accepted within payment window",
			booking: Booking{Status: StatusAccepted, CheckIn: nextWeek, AcceptedAt: &recent, Metadata: metadataAt(now.Add(-2 * time.Hour))},
			want:    StatusAccepted,
		},
		{
			name:    "check-in day already over",
			booking: Booking{Status: StatusPending, CheckIn: now.AddDate(0, 0, -2), Metadata: metadataAt(now.Add(-time.Minute))},
			want:    StatusExpired,
		},
		{
			name:    "paid never expires",
			booking: Booking{Status: StatusPaid, CheckIn: now.AddDate(0, 0, -2), Metadata: metadataAt(now.AddDate(0, 0, -10))},
			want:    StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.EffectiveStatus(now, policy))
		})
	}
}

func TestBooking_ExpiresAt(t *testing.T) {
	policy := ExpiryPolicy{PendingWindow: 24 * time.Hour, PaymentWindow: 24 * time.Hour}
	now := timezone.Now()

	pending := Booking{Status: StatusPending, CheckIn: now.AddDate(0, 0, 10), Metadata: metadataAt(now)}
	assert.WithinDuration(t, now.Add(24*time.Hour), *pending.ExpiresAt(policy), time.Second)

	sameDay := Booking{Status: StatusPending, CheckIn: now, Metadata: metadataAt(now)}
	assert.Equal(t, timezone.EndOfDate(now), *sameDay.ExpiresAt(policy))

	assert.Nil(t, Booking{Status: StatusConfirmed}.ExpiresAt(policy))
}

func TestBooking_ExpiresAtWithoutWindows(t *testing.T) {
	now := timezone.Now()
	checkIn := now.AddDate(0, 0, 3)
	accepted := now.Add(-time.Hour)
	policy := ExpiryPolicy{}

	pending := Booking{Status: StatusPending, CheckIn: checkIn, Metadata: metadataAt(now.Add(-time.Hour))}
	assert.Equal(t, StatusPending, pending.EffectiveStatus(now, policy))
	assert.Equal(t, timezone.EndOfDate(checkIn), *pending.ExpiresAt(policy))
	assert.True(t, pending.ExpiresAt(policy).After(now))

	waiting := Booking{Status: StatusAccepted, CheckIn: checkIn, AcceptedAt: &accepted, Metadata: metadataAt(now.Add(-2 * time.Hour))}
	assert.Equal(t, StatusAccepted, waiting.EffectiveStatus(now, policy))
	assert.Equal(t, timezone.EndOfDate(checkIn), *waiting.ExpiresAt(policy))
}

func TestBooking_ExpiresAtUnacceptedWithoutTimestamp(t *testing.T) {
	now := timezone.Now()
	checkIn := now.AddDate(0, 0, 3)
	policy := ExpiryPolicy{PendingWindow: time.Hour, PaymentWindow: time.Hour}

	booking := Booking{Status: StatusAccepted, CheckIn: checkIn, Metadata: metadataAt(now)}
	assert.Equal(t, timezone.EndOfDate(checkIn), *booking.ExpiresAt(policy))
}

func TestNewReference(t *testing.T) {
	ref := NewReference()

	assert.Len(t, ref, len(referencePrefix)+8)
	assert.Equal(t, referencePrefix, ref[:3])
	assert.NotEqual(t, ref, NewReference())
}

func metadataAt(at time.Time) gModel.Metadata {
	return gModel.NewMetadata("tester", at)
}
