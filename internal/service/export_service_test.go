package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edumanage-api/internal/models"
	"github.com/noah-isme/edumanage-api/pkg/export"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
)

type capturingPDF struct {
	data  export.Dataset
	title string
	err   error
}

func (c *capturingPDF) Render(data export.Dataset, title string) ([]byte, error) {
	c.data = data
	c.title = title
	return []byte("%PDF-fake"), c.err
}

func TestExportCSVTwoStudentExample(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t,
		models.Student{ID: "S1", FirstName: "Emma", LastName: "Wilson", Class: "Grade 10"},
		models.Student{ID: "S2", FirstName: "James", LastName: "Davis"},
	)
	attendance := NewAttendanceService(store, nil, nil, nil)
	require.NoError(t, attendance.SetStatus(ctx, testDate, "S1", models.AttendanceStatusPresent))

	svc := NewExportService(store, attendance, nil, nil, nil)
	file, err := svc.ExportCSV(ctx, testDate)
	require.NoError(t, err)

	assert.Equal(t, "attendance_report_2024-01-15.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	expected := "Student ID,Name,Class,Status,Date,Time\n" +
		`"S1","Emma Wilson","Grade 10","present","2024-01-15","08:00 AM"` + "\n" +
		`"S2","James Davis","N/A","Not Marked","2024-01-15",""` + "\n"
	assert.Equal(t, expected, string(file.Body))
}

func TestExportCSVWritesQuotesThrough(t *testing.T) {
	store := newTestStore(t, models.Student{ID: "S1", FirstName: `Jo "JJ"`, LastName: "Smith", Class: "Grade 9"})
	svc := NewExportService(store, nil, nil, nil, nil)

	file, err := svc.ExportCSV(context.Background(), testDate)
	require.NoError(t, err)
	assert.Contains(t, string(file.Body), `"Jo "JJ" Smith"`)
}

func TestExportCSVSkipsDanglingEntries(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, student("S1", "Emma", "Wilson", "Grade 10"))
	require.NoError(t, store.SaveLedger(ctx, models.Ledger{testDate: {"ghost": models.AttendanceStatusLate}}))
	svc := NewExportService(store, nil, nil, nil, nil)

	file, err := svc.ExportCSV(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(file.Body, []byte("\n")))
	assert.NotContains(t, string(file.Body), "ghost")
}

func TestExportCSVRejectsBadDate(t *testing.T) {
	svc := NewExportService(newTestStore(t), nil, nil, nil, nil)
	_, err := svc.ExportCSV(context.Background(), "yesterday")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestExportPDFUsesSheet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t,
		student("S1", "Emma", "Wilson", "Grade 10 - Science A"),
		student("S2", "James", "Davis", "Grade 11 - Mathematics"),
	)
	attendance := NewAttendanceService(store, nil, nil, nil)
	require.NoError(t, attendance.SetStatus(ctx, testDate, "S1", models.AttendanceStatusLate))
	pdf := &capturingPDF{}

	svc := NewExportService(store, attendance, nil, nil, pdf)
	file, err := svc.ExportPDF(ctx, testDate, "Grade 10 - Science A")
	require.NoError(t, err)
	assert.Equal(t, "attendance_report_2024-01-15.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	require.Len(t, pdf.data.Rows, 1)
	assert.Equal(t, "Late", pdf.data.Rows[0]["Status"])
	assert.Equal(t, "08:15 AM", pdf.data.Rows[0]["Time"])
	assert.Contains(t, pdf.data.Footer[1], "50%")
	assert.Contains(t, pdf.title, "Grade 10 - Science A")

	pdf.err = errors.New("font missing")
	_, err = svc.ExportPDF(ctx, testDate, "")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
