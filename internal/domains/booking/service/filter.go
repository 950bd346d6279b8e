package service

import (
	"time"

	"tourism/internal/domains/booking/model"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/timezone"
)

// effectiveStatus rewrites a status equality so that listings agree with the
// status reads report: pending and accepted bookings past their window are
// listed as expired even before an expiring write has reached the row.
func effectiveStatus(filter gDto.FilterGroup, now time.Time, policy model.ExpiryPolicy) gDto.FilterGroup {
	filters := make([]any, 0, len(filter.Filters))

	for _, item := range filter.Filters {
		switch f := item.(type) {
		case gDto.FilterGroup:
			filters = append(filters, effectiveStatus(f, now, policy))

			continue
		case gDto.Filter:
			if predicate, ok := statusPredicate(f, now, policy); ok {
				filters = append(filters, predicate)

				continue
			}
		}

		filters = append(filters, item)
	}

	return gDto.FilterGroup{Filters: filters, Operator: filter.Operator}
}

func statusPredicate(f gDto.Filter, now time.Time, policy model.ExpiryPolicy) (gDto.FilterGroup, bool) {
	if f.Field != model.FieldStatus || f.Operator != gDto.FilterOperatorEq {
		return gDto.FilterGroup{}, false
	}

	status, _ := f.Value.(string)
	today := timezone.Format(now, constant.DateOnlyFormat)

	switch status {
	case model.StatusPending:
		return waiting(model.StatusPending, constant.FieldCreatedAt, policy.PendingWindow, now, today), true
	case model.StatusAccepted:
		return waiting(model.StatusAccepted, model.FieldAcceptedAt, policy.PaymentWindow, now, today), true
	case model.StatusExpired:
		return expired(now, policy, today), true
	default:
		return gDto.FilterGroup{}, false
	}
}

// waiting matches rows stored as status whose expiry has not come yet.
func waiting(status, since string, window time.Duration, now time.Time, today string) gDto.FilterGroup {
	arg := "effective_" + status

	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{ArgName: arg, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status, Table: model.TableName},
			gDto.Filter{ArgName: arg + "_day", Field: model.FieldCheckIn, Operator: gDto.FilterOperatorGreaterEq, Value: today, Table: model.TableName},
		},
	}

	if window <= 0 {
		return group
	}

	open := gDto.Filter{
		ArgName:  arg + "_since",
		Field:    since,
		Operator: gDto.FilterOperatorGreaterEq,
		Value:    now.Add(-window),
		Table:    model.TableName,
	}

	if since == model.FieldAcceptedAt {
		group.Filters = append(group.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: since, Operator: gDto.FilterIsNull, Table: model.TableName},
				open,
			},
		})

		return group
	}

	group.Filters = append(group.Filters, open)

	return group
}

// expired matches rows already stored as expired and rows that only expire on read.
func expired(now time.Time, policy model.ExpiryPolicy, today string) gDto.FilterGroup {
	lapsed := []any{
		gDto.Filter{ArgName: "expired_day", Field: model.FieldCheckIn, Operator: gDto.FilterOperatorLess, Value: today, Table: model.TableName},
	}

	if policy.PendingWindow > 0 {
		lapsed = append(lapsed, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{ArgName: "expired_pending", Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
				gDto.Filter{ArgName: "expired_pending_since", Field: constant.FieldCreatedAt, Operator: gDto.FilterOperatorLess, Value: now.Add(-policy.PendingWindow), Table: model.TableName},
			},
		})
	}

	if policy.PaymentWindow > 0 {
		lapsed = append(lapsed, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{ArgName: "expired_accepted", Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusAccepted, Table: model.TableName},
				gDto.Filter{ArgName: "expired_accepted_since", Field: model.FieldAcceptedAt, Operator: gDto.FilterOperatorLess, Value: now.Add(-policy.PaymentWindow), Table: model.TableName},
			},
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{ArgName: "expired_stored", Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusExpired, Table: model.TableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{
						ArgName:  "expired_waiting",
						Field:    model.FieldStatus,
						Operator: gDto.FilterOperatorIn,
						Value:    []string{model.StatusPending, model.StatusAccepted},
						Table:    model.TableName,
					},
					gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr, Filters: lapsed},
				},
			},
		},
	}
}
