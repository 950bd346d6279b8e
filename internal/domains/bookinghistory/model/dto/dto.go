package dto

import (
	"tourism/internal/domains/bookinghistory/event"
	"tourism/internal/domains/bookinghistory/model"
	"tourism/shared/constant"
	"tourism/shared/timezone"
)

func FromEvent(evt event.BookingStatusChanged) model.History {
	return model.History{
		ID:         evt.ID,
		BookingID:  evt.BookingID,
		FromStatus: evt.From,
		ToStatus:   evt.To,
		ActorID:    evt.ActorID,
		Reason:     evt.Reason,
		OccurredAt: evt.OccurredAt,
		CreatedAt:  timezone.Now(),
	}
}

type HistoryResponse struct {
	ID         string `json:"id"`
	BookingID  string `json:"booking_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ActorID    string `json:"actor_id"`
	Reason     string `json:"reason,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

func (r *HistoryResponse) FromModel(model model.History) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.FromStatus = model.FromStatus
	r.ToStatus = model.ToStatus
	r.ActorID = model.ActorID
	r.Reason = model.Reason
	r.OccurredAt = timezone.Format(model.OccurredAt, constant.DateFormat)
}

type GetHistoriesResponse struct {
	Histories []HistoryResponse `json:"histories"`
}

func (r *GetHistoriesResponse) FromModels(models []model.History) {
	r.Histories = make([]HistoryResponse, len(models))
	for i, mod := range models {
		r.Histories[i].FromModel(mod)
	}
}
