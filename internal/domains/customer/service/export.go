package service

import (
	"bytes"
	"context"
	"fmt"

	"hotel/internal/domains/customer/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/pricing"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	sheetCustomers = "Customers"
	sheetBookings  = "Bookings"
	defaultSheet   = "Sheet1"
)

var (
	customerHeader = []string{"Name", "Email", "Phone", "Total Bookings", "Last Booking"}
	bookingHeader  = []string{
		"Booking ID", "Customer", "Email", "Room Type", "Check-in", "Check-out",
		"Nights", "Adults", "Children", "Total", "Status", "Booked At",
	}
)

// Export renders every customer and their bookings as an xlsx workbook.
func (s *serviceImpl) Export(ctx context.Context) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	customers, err := s.load(ctx, gDto.FilterGroup{})
	if err != nil {
		return nil, err
	}

	res, err = workbook(customers)
	if err != nil {
		log.Error().Err(err).Msg("failed to build customer export")

		return nil, fmt.Errorf("failed to build customer export: %w", err)
	}

	return res, nil
}

func workbook(customers []model.Customer) ([]byte, error) {
	file := excelize.NewFile()

	defer func() {
		if err := file.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close workbook")
		}
	}()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	customerRows := make([][]any, 0, len(customers))
	bookingRows := [][]any{}

	for _, customer := range customers {
		customerRows = append(customerRows, []any{
			customer.Name,
			customer.Email,
			customer.Phone,
			len(customer.Bookings),
			timezone.Format(customer.LastBookingAt(), "2006-01-02 15:04"),
		})

		for _, booking := range customer.Bookings {
			bookingRows = append(bookingRows, []any{
				booking.ID,
				booking.CustomerName,
				booking.Email,
				booking.RoomTypeOrUnknown(),
				booking.CheckInDate.Format(constant.DateOnlyFormat),
				booking.CheckOutDate.Format(constant.DateOnlyFormat),
				pricing.NightsBetween(booking.CheckInDate, booking.CheckOutDate),
				booking.Adults,
				booking.Children,
				pricing.FormatCurrency(booking.TotalPrice),
				booking.BookingStatus,
				timezone.Format(booking.CreatedAt, "2006-01-02 15:04"),
			})
		}
	}

	if err = writeSheet(file, sheetCustomers, customerHeader, customerRows, headerStyle); err != nil {
		return nil, err
	}

	if err = writeSheet(file, sheetBookings, bookingHeader, bookingRows, headerStyle); err != nil {
		return nil, err
	}

	if err = file.DeleteSheet(defaultSheet); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	index, err := file.GetSheetIndex(sheetCustomers)
	if err != nil {
		return nil, fmt.Errorf("failed to find sheet: %w", err)
	}

	file.SetActiveSheet(index)

	var buf bytes.Buffer
	if _, err = file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSheet(file *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	if _, err := file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}

	if err = file.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}

		if err = file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to convert column number: %w", err)
	}

	if err = file.SetColWidth(sheet, "A", lastColumn, 20); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	err = file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("failed to freeze header of %s: %w", sheet, err)
	}

	return nil
}
