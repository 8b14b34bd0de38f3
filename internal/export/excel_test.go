package export

import (
	"testing"

	"salonadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBookingsToExcel(t *testing.T) {
	exporter := NewExporter(t.TempDir(), nil)

	bookings := []models.Booking{
		{
			ID:          1,
			BookingDate: "2026-01-04",
			StartTime:   "10:00",
			EndTime:     "11:00",
			Price:       1500,
			Status:      models.StatusConfirmed,
			User:        &models.BookingUser{Name: "Mei"},
			Stylist:     &models.BookingRef{Name: "Sakura"},
			Services:    []models.ServiceItem{{Name: "Cut"}, {Name: "Color"}},
		},
		{
			ID:          2,
			BookingDate: "2026-01-05",
			StartTime:   "14:00",
			EndTime:     "15:00",
			Price:       800,
			Status:      models.StatusPending,
		},
	}

	path, err := exporter.BookingsToExcel(bookings)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	customer, err := f.GetCellValue(sheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Mei", customer)

	services, err := f.GetCellValue(sheetName, "G2")
	require.NoError(t, err)
	assert.Equal(t, "Cut, Color", services)

	status, err := f.GetCellValue(sheetName, "I3")
	require.NoError(t, err)
	assert.Equal(t, "Pending", status)
}

func TestBookingsToExcelEmptyList(t *testing.T) {
	exporter := NewExporter(t.TempDir(), nil)

	path, err := exporter.BookingsToExcel(nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
