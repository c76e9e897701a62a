package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/edumanage-api/internal/models"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
	"github.com/noah-isme/edumanage-api/pkg/export"
)

// Report content types.
const (
	ContentTypeCSV = "text/csv"
	ContentTypePDF = "application/pdf"
)

var csvHeaders = []string{"Student ID", "Name", "Class", "Status", "Date", "Time"}

type exportSource interface {
	Students(ctx context.Context) ([]models.Student, error)
	Ledger(ctx context.Context) (models.Ledger, error)
}

type sheetBuilder interface {
	Sheet(ctx context.Context, date, classFilter string) (*models.AttendanceSheet, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders attendance reports.
type ExportService struct {
	source exportSource
	sheets sheetBuilder
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(source exportSource, sheets sheetBuilder, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{source: source, sheets: sheets, csv: csv, pdf: pdf, logger: logger}
}

// ExportCSV writes one row per roster student, in roster order, with their
// status on date. Unmarked students read "Not Marked".
func (s *ExportService) ExportCSV(ctx context.Context, date string) (*ExportFile, error) {
	if err := validateISODate(date); err != nil {
		return nil, err
	}
	roster, err := s.source.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	ledger, err := s.source.Ledger(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load attendance")
	}

	dataset := buildCSVDataset(roster, ledger.Record(date), date)
	body, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	s.logger.Info("attendance csv exported", zap.String("date", date), zap.Int("rows", len(dataset.Rows)))
	return &ExportFile{
		Filename:    fmt.Sprintf("attendance_report_%s.csv", date),
		ContentType: ContentTypeCSV,
		Body:        body,
	}, nil
}

// ExportPDF renders the attendance sheet for date and classFilter.
func (s *ExportService) ExportPDF(ctx context.Context, date, classFilter string) (*ExportFile, error) {
	if err := validateISODate(date); err != nil {
		return nil, err
	}
	sheet, err := s.sheets.Sheet(ctx, date, classFilter)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, map[string]string{
			"Student ID": row.StudentID,
			"Name":       row.Name,
			"Class":      valueOr(row.Class, "N/A"),
			"Status":     row.Label,
			"Time":       row.Time,
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Student ID", "Name", "Class", "Status", "Time"},
		Rows:    rows,
		Footer: []string{
			fmt.Sprintf("Present: %d  Absent: %d  Late: %d  Pending: %d", sheet.Stats.Present, sheet.Stats.Absent, sheet.Stats.Late, sheet.Stats.Pending),
			fmt.Sprintf("Attendance: %d%%", sheet.Stats.Percentage),
		},
	}
	title := fmt.Sprintf("Attendance Report %s (%s)", sheet.Date, sheet.Class)
	body, err := s.pdf.Render(dataset, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("attendance_report_%s.pdf", date),
		ContentType: ContentTypePDF,
		Body:        body,
	}, nil
}

func buildCSVDataset(roster []models.Student, record models.DailyRecord, date string) export.Dataset {
	rows := make([]map[string]string, 0, len(roster))
	for _, student := range roster {
		status := record[student.ID]
		rows = append(rows, map[string]string{
			"Student ID": student.ID,
			"Name":       student.FullName(),
			"Class":      valueOr(student.Class, "N/A"),
			"Status":     valueOr(string(status), "Not Marked"),
			"Date":       date,
			"Time":       CheckInTime(status),
		})
	}
	return export.Dataset{Headers: csvHeaders, Rows: rows}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
