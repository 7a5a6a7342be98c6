package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// SheetName имя листа с бронированиями
const SheetName = "Bookings"

// ContentType MIME тип xlsx
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrWrite ошибка формирования файла
var ErrWrite = errors.New("export: failed to write workbook")

var header = []string{"Date", "Teacher", "Class", "Mobile", "Period", "Time", "Subject", "Booked At (UTC)"}

// BookingsWriter выгружает бронирования в xlsx.
// Один лист, первая строка - заголовок (жирный шрифт), далее по строке на бронирование в порядке выдачи.
type BookingsWriter struct{}

// NewBookingsWriter создает выгрузку
func NewBookingsWriter() *BookingsWriter {
	return &BookingsWriter{}
}

// Write пишет книгу в w
func (BookingsWriter) Write(w io.Writer, bookings []*domain.Booking) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%w: rename sheet: %v", ErrWrite, err)
	}

	if err := writeRow(file, 1, toRow(header)); err != nil {
		return err
	}

	if err := styleHeader(file); err != nil {
		return err
	}

	for i, b := range bookings {
		row := []interface{}{
			b.BookingDate.String(),
			b.TeacherName,
			b.ClassName,
			b.Contact,
			b.Period,
			b.TimeRange.String(),
			b.Subject,
			b.CreatedAt.UTC().Format(domain.CreatedAtFormat),
		}
		if err := writeRow(file, i+2, row); err != nil {
			return err
		}
	}

	if err := setColumnWidths(file); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// styleHeader выделяет строку заголовка жирным
func styleHeader(file *excelize.File) error {
	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%w: header style: %v", ErrWrite, err)
	}

	endCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("%w: header range: %v", ErrWrite, err)
	}

	if err := file.SetCellStyle(SheetName, "A1", endCell, style); err != nil {
		return fmt.Errorf("%w: header style: %v", ErrWrite, err)
	}
	return nil
}

var columnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 12},
	{"B", "D", 20},
	{"F", "F", 16},
	{"G", "H", 20},
}

func setColumnWidths(file *excelize.File) error {
	for _, c := range columnWidths {
		if err := file.SetColWidth(SheetName, c.from, c.to, c.width); err != nil {
			return fmt.Errorf("%w: column width %s:%s: %v", ErrWrite, c.from, c.to, err)
		}
	}
	return nil
}

func writeRow(file *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("%w: row %d: %v", ErrWrite, rowNum, err)
	}
	if err := file.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("%w: row %d: %v", ErrWrite, rowNum, err)
	}
	return nil
}

func toRow(columns []string) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}
