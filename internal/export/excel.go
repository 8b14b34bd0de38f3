package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"salonadmin/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var columns = []string{"ID", "Date", "Start", "End", "Customer", "Stylist", "Services", "Price", "Status"}

// Exporter writes booking lists to XLSX files for offline reporting.
type Exporter struct {
	exportsPath string
	logger      zerolog.Logger
}

func NewExporter(exportsPath string, logger *zerolog.Logger) *Exporter {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "export").Logger()
	}
	return &Exporter{exportsPath: exportsPath, logger: base}
}

// BookingsToExcel writes one row per booking and returns the file path.
func (e *Exporter) BookingsToExcel(bookings []models.Booking) (string, error) {
	if err := os.MkdirAll(e.exportsPath, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	e.writeHeader(f)
	for i, booking := range bookings {
		e.writeRow(f, i+2, &booking)
	}

	_ = f.SetColWidth(sheetName, "E", "G", 25)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(e.exportsPath, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("save export file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("export written")
	return filePath, nil
}

func (e *Exporter) writeHeader(f *excelize.File) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, name)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func (e *Exporter) writeRow(f *excelize.File, row int, b *models.Booking) {
	customer := b.CustomerName()
	stylist := ""
	if b.Stylist != nil {
		stylist = b.Stylist.Name
	}

	values := []any{
		b.ID,
		b.BookingDate,
		b.StartTime,
		b.EndTime,
		customer,
		stylist,
		strings.Join(b.ServiceNames(), ", "),
		b.Price,
		models.StatusLabel(b.Status),
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheetName, cell, v)
	}
}
