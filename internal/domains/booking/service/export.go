package service

import (
	"context"
	"fmt"

	"tourism/internal/domains/booking/model"
	"tourism/shared"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet    = "Bookings"
	exportMaxRows  = 5000
	exportColWidth = 20
)

var exportHeader = []any{
	"Reference", "Target", "Customer ID", "Check-in", "Check-out", "Nights",
	"Guests", "Total (PHP)", "Down payment (PHP)", "Status", "Created at",
}

// Export renders the listing as an XLSX workbook. Operators only see their own bookings.
func (s *serviceImpl) Export(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (content []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsAdmin(ctx) {
		user, _ := shared.UserFromContext(ctx)
		filter = scoped(filter, model.FieldOwnerID, user)
	}

	filter = effectiveStatus(filter, s.now(), s.policy())
	req.Page = 1
	req.Limit = exportMaxRows

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return s.workbook(bookings)
}

func (s *serviceImpl) workbook(bookings []model.Booking) ([]byte, error) {
	file := excelize.NewFile()
	defer func() {
		if err := file.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close workbook")
		}
	}()

	if err := file.SetSheetName(file.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err = file.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	if err = file.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	now, policy := s.now(), s.policy()

	for index, booking := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, index+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row: %w", err)
		}

		checkOut := constant.Empty
		if booking.CheckOut != nil {
			checkOut = timezone.Date(*booking.CheckOut).Format(constant.DateOnlyFormat)
		}

		row := []any{
			booking.Reference,
			booking.TargetType,
			booking.CustomerID,
			timezone.Date(booking.CheckIn).Format(constant.DateOnlyFormat),
			checkOut,
			booking.Nights,
			booking.TotalGuests,
			shared.CentavosToPeso(booking.TotalAmount),
			shared.CentavosToPeso(booking.DownPayment),
			booking.EffectiveStatus(now, policy),
			timezone.Format(booking.CreatedAt, constant.DateFormat),
		}

		if err = file.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return nil, fmt.Errorf("failed to address columns: %w", err)
	}

	if err = file.SetColWidth(exportSheet, "A", lastCol, exportColWidth); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return buffer.Bytes(), nil
}
