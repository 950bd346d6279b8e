package model

import "time"

const (
	TableName  = "booking_status_histories"
	EntityName = "booking_status_history"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldOccurredAt = "occurred_at"
)

// History is one committed status change. ID is the event id, which makes
// redelivered events detectable.
type History struct {
	ID         string    `db:"id"`
	BookingID  string    `db:"booking_id"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	ActorID    string    `db:"actor_id"`
	Reason     string    `db:"reason"`
	OccurredAt time.Time `db:"occurred_at"`
	CreatedAt  time.Time `db:"created_at"`
}
