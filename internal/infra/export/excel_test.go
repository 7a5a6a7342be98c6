package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

func TestBookingsWriter_Write(t *testing.T) {
	bookings := []*domain.Booking{
		{
			ID:          "a",
			BookingDate: types.MustParseDate("2025-06-10"),
			TeacherName: "Teacher X",
			ClassName:   "7B",
			Contact:     "+919800000000",
			Period:      1,
			TimeRange:   domain.TimeRange{Start: "08:20", End: "09:00"},
			Subject:     "Physics",
			CreatedAt:   time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:          "b",
			BookingDate: types.MustParseDate("2025-06-10"),
			TeacherName: "Teacher Z",
			ClassName:   "8A",
			Contact:     "z@example.org",
			Period:      4,
			TimeRange:   domain.TimeRange{Start: "10:30", End: "11:10"},
			Subject:     "Chemistry",
			CreatedAt:   time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewBookingsWriter().Write(&buf, bookings))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	assert.Equal(t, []string{SheetName}, file.GetSheetList())

	rows, err := file.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"2025-06-10", "Teacher X", "7B", "+919800000000", "1", "08:20 - 09:00", "Physics", "2025-06-01 10:30:00"}, rows[1])
	assert.Equal(t, "Teacher Z", rows[2][1])
	assert.Equal(t, "10:30 - 11:10", rows[2][5])
}

func TestBookingsWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBookingsWriter().Write(&buf, nil))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := file.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, header, rows[0])
}

func TestBookingsWriter_HeaderStyleAndWidths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBookingsWriter().Write(&buf, nil))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	for _, cell := range []string{"A1", "H1"} {
		idx, err := file.GetCellStyle(SheetName, cell)
		require.NoError(t, err)
		style, err := file.GetStyle(idx)
		require.NoError(t, err)
		require.NotNil(t, style.Font, cell)
		assert.True(t, style.Font.Bold, cell)
	}

	width, err := file.GetColWidth(SheetName, "C")
	require.NoError(t, err)
	assert.Equal(t, 20.0, width)
}

func TestFormatting_MissingSheetIsWriteError(t *testing.T) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	err := styleHeader(file)
	assert.ErrorIs(t, err, ErrWrite)

	err = setColumnWidths(file)
	assert.ErrorIs(t, err, ErrWrite)
}
