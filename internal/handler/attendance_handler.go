package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edumanage-api/internal/models"
	"github.com/noah-isme/edumanage-api/internal/service"
	"github.com/noah-isme/edumanage-api/pkg/response"
)

type attendanceService interface {
	Sheet(ctx context.Context, date, classFilter string) (*models.AttendanceSheet, error)
	DailyRecord(ctx context.Context, date string) (models.DailyRecord, error)
	SetStatus(ctx context.Context, date, studentID string, status models.AttendanceStatus) error
	MarkMany(ctx context.Context, date string, req service.MarkAllPresentRequest) (*models.BulkAttendanceResult, error)
}

type attendanceExporter interface {
	ExportCSV(ctx context.Context, date string) (*service.ExportFile, error)
	ExportPDF(ctx context.Context, date, classFilter string) (*service.ExportFile, error)
}

// SetStatusRequest is the body of a single attendance mark.
type SetStatusRequest struct {
	Status models.AttendanceStatus `json:"status"`
}

// AttendanceHandler exposes the attendance ledger.
type AttendanceHandler struct {
	attendance attendanceService
	exports    attendanceExporter
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService, exports attendanceExporter) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, exports: exports}
}

// Sheet godoc
// @Summary Attendance sheet for a date
// @Tags Attendance
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param class query string false "Class filter, All Classes for everyone"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) Sheet(c *gin.Context) {
	sheet, err := h.attendance.Sheet(c.Request.Context(), c.Query("date"), c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet)
}

// Daily godoc
// @Summary Raw daily record
// @Tags Attendance
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /attendance/{date} [get]
func (h *AttendanceHandler) Daily(c *gin.Context) {
	record, err := h.attendance.DailyRecord(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// SetStatus godoc
// @Summary Mark one student
// @Tags Attendance
// @Accept json
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Param studentId path string true "Student ID"
// @Param payload body SetStatusRequest true "present, absent or late"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance/{date}/{studentId} [put]
func (h *AttendanceHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	date, studentID := c.Param("date"), c.Param("studentId")
	if err := h.attendance.SetStatus(c.Request.Context(), date, studentID, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"date": date, "studentId": studentID, "status": req.Status})
}

// MarkAll godoc
// @Summary Mark the given or visible students present
// @Tags Attendance
// @Accept json
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Param payload body service.MarkAllPresentRequest true "studentIds or class"
// @Success 200 {object} response.Envelope
// @Router /attendance/{date}/mark-all [post]
func (h *AttendanceHandler) MarkAll(c *gin.Context) {
	var req service.MarkAllPresentRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	result, err := h.attendance.MarkMany(c.Request.Context(), c.Param("date"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ExportCSV godoc
// @Summary Download the CSV report
// @Tags Attendance
// @Produce text/csv
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {file} file
// @Router /attendance/{date}/export.csv [get]
func (h *AttendanceHandler) ExportCSV(c *gin.Context) {
	file, err := h.exports.ExportCSV(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// ExportPDF godoc
// @Summary Download the PDF report
// @Tags Attendance
// @Produce application/pdf
// @Param date path string true "YYYY-MM-DD"
// @Param class query string false "Class filter"
// @Success 200 {file} file
// @Router /attendance/{date}/export.pdf [get]
func (h *AttendanceHandler) ExportPDF(c *gin.Context) {
	file, err := h.exports.ExportPDF(c.Request.Context(), c.Param("date"), c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
