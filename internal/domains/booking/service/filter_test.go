package service

import (
	"testing"
	"time"

	"tourism/internal/domains/booking/model"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func statusFilter(status string) gDto.FilterGroup {
	return gDto.Where(
		gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status, Table: model.TableName},
		gDto.Filter{Field: model.FieldTargetType, Operator: gDto.FilterOperatorEq, Value: model.TargetHotel, Table: model.TableName},
	)
}

func TestEffectiveStatus(t *testing.T) {
	now := timezone.Now()
	today := timezone.Format(now, constant.DateOnlyFormat)
	policy := model.ExpiryPolicy{PendingWindow: 24 * time.Hour, PaymentWindow: 12 * time.Hour}

	tests := []struct {
		name     string
		status   string
		policy   model.ExpiryPolicy
		contains []string
		excludes []string
		args     map[string]any
	}{
		{
			name:   "pending",
			status: model.StatusPending,
			policy: policy,
			contains: []string{
				"bookings.status = :effective_pending",
				"bookings.check_in >= :effective_pending_day",
				"bookings.created_at >= :effective_pending_since",
				"bookings.target_type = :target_type",
			},
			args: map[string]any{
				"effective_pending":       model.StatusPending,
				"effective_pending_day":   today,
				"effective_pending_since": now.Add(-24 * time.Hour),
			},
		},
		{
			name:   "accepted keeps rows without an acceptance time",
			status: model.StatusAccepted,
			policy: policy,
			contains: []string{
				"bookings.status = :effective_accepted",
				"(bookings.accepted_at IS NULL OR bookings.accepted_at >= :effective_accepted_since)",
			},
			args: map[string]any{"effective_accepted_since": now.Add(-12 * time.Hour)},
		},
		{
			name:     "pending without a window only checks the day",
			status:   model.StatusPending,
			policy:   model.ExpiryPolicy{},
			contains: []string{"bookings.check_in >= :effective_pending_day"},
			excludes: []string{"created_at"},
		},
		{
			name:   "expired",
			status: model.StatusExpired,
			policy: policy,
			contains: []string{
				"bookings.status = :expired_stored OR",
				"bookings.status IN (:expired_waiting_0, :expired_waiting_1)",
				"bookings.check_in < :expired_day",
				"bookings.created_at < :expired_pending_since",
				"bookings.accepted_at < :expired_accepted_since",
			},
			args: map[string]any{
				"expired_stored":    model.StatusExpired,
				"expired_waiting_0": model.StatusPending,
				"expired_waiting_1": model.StatusAccepted,
				"expired_day":       today,
			},
		},
		{
			name:     "expired without windows only checks the day",
			status:   model.StatusExpired,
			policy:   model.ExpiryPolicy{},
			contains: []string{"bookings.check_in < :expired_day"},
			excludes: []string{"created_at", "accepted_at"},
		},
		{
			name:     "stored statuses pass through",
			status:   model.StatusPaid,
			policy:   policy,
			contains: []string{"bookings.status = :status"},
			excludes: []string{"check_in"},
			args:     map[string]any{"status": model.StatusPaid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := effectiveStatus(statusFilter(tt.status), now, tt.policy)
			where, args := filter.GetWhereClause()

			for _, fragment := range tt.contains {
				assert.Contains(t, where, fragment)
			}

			for _, fragment := range tt.excludes {
				assert.NotContains(t, where, fragment)
			}

			for key, value := range tt.args {
				assert.Equal(t, value, args[key], key)
			}
		})
	}
}

func TestEffectiveStatusInsideScope(t *testing.T) {
	now := timezone.Now()
	filter := scoped(statusFilter(model.StatusPending), model.FieldOwnerID, "owner-id")

	effective := effectiveStatus(filter, now, model.ExpiryPolicy{PendingWindow: time.Hour})
	where, args := effective.GetWhereClause()

	assert.Contains(t, where, "bookings.created_at >= :effective_pending_since")
	assert.Contains(t, where, "bookings.owner_id = :scope_owner_id")
	assert.NotContains(t, where, ":status")
	assert.Equal(t, "owner-id", args["scope_owner_id"])
}
