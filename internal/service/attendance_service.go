package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edumanage-api/internal/models"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
)

const historyDays = 5

type ledgerStore interface {
	Students(ctx context.Context) ([]models.Student, error)
	Ledger(ctx context.Context) (models.Ledger, error)
	MutateLedger(ctx context.Context, fn func(models.Ledger) (models.Ledger, error)) (models.Ledger, error)
}

type ledgerRecorder interface {
	RecordLedgerWrite(operation string, entries int)
}

// AttendanceService owns the attendance ledger.
type AttendanceService struct {
	store     ledgerStore
	validator *validator.Validate
	logger    *zap.Logger
	metrics   ledgerRecorder
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(store ledgerStore, validate *validator.Validate, logger *zap.Logger, metrics ledgerRecorder) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	RegisterValidations(validate)
	return &AttendanceService{store: store, validator: validate, logger: logger, metrics: metrics, now: time.Now}
}

// RegisterValidations installs the attendance_status and iso_date tags.
func RegisterValidations(validate *validator.Validate) {
	_ = validate.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.DateLayout, fl.Field().String())
		return err == nil
	})
}

type markRequest struct {
	Date      string `validate:"required,iso_date"`
	StudentID string `validate:"required"`
	Status    string `validate:"required,attendance_status"`
}

// MarkAllPresentRequest is the payload of a bulk mark. StudentIDs wins over
// Class when both are given.
type MarkAllPresentRequest struct {
	StudentIDs []string `json:"studentIds" validate:"omitempty,dive,required"`
	Class      string   `json:"class"`
}

// DailyRecord returns the statuses recorded for date; unseen dates yield an
// empty record.
func (s *AttendanceService) DailyRecord(ctx context.Context, date string) (models.DailyRecord, error) {
	if err := validateISODate(date); err != nil {
		return nil, err
	}
	ledger, err := s.store.Ledger(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load attendance")
	}
	return ledger.Record(date), nil
}

// SetStatus records status for one student on date, overwriting any prior value.
func (s *AttendanceService) SetStatus(ctx context.Context, date, studentID string, status models.AttendanceStatus) error {
	studentID = strings.TrimSpace(studentID)
	req := markRequest{Date: date, StudentID: studentID, Status: string(status)}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	_, err := s.store.MutateLedger(ctx, func(ledger models.Ledger) (models.Ledger, error) {
		record := ledger[date]
		if record == nil {
			record = models.DailyRecord{}
			ledger[date] = record
		}
		record[studentID] = status
		return ledger, nil
	})
	if err != nil {
		return storeError(err, "failed to save attendance")
	}
	s.recordWrite("set_status", 1)
	s.logger.Debug("attendance marked", zap.String("date", date), zap.String("student_id", studentID), zap.String("status", string(status)))
	return nil
}

// MarkAllPresent marks every id in studentIDs present on date. Only the given
// ids are touched; an empty list just creates the date bucket.
func (s *AttendanceService) MarkAllPresent(ctx context.Context, date string, studentIDs []string) (*models.BulkAttendanceResult, error) {
	if err := validateISODate(date); err != nil {
		return nil, err
	}
	ids := uniqueIDs(studentIDs)
	for _, id := range ids {
		if id == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student id must not be empty")
		}
	}
	_, err := s.store.MutateLedger(ctx, func(ledger models.Ledger) (models.Ledger, error) {
		record := ledger[date]
		if record == nil {
			record = models.DailyRecord{}
			ledger[date] = record
		}
		for _, id := range ids {
			record[id] = models.AttendanceStatusPresent
		}
		return ledger, nil
	})
	if err != nil {
		return nil, storeError(err, "failed to save attendance")
	}
	s.recordWrite("mark_all_present", len(ids))
	s.logger.Info("attendance bulk marked present", zap.String("date", date), zap.Int("count", len(ids)))
	return &models.BulkAttendanceResult{Date: date, Marked: len(ids)}, nil
}

// MarkVisiblePresent marks the students matching classFilter present.
func (s *AttendanceService) MarkVisiblePresent(ctx context.Context, date, classFilter string) (*models.BulkAttendanceResult, error) {
	if err := validateISODate(date); err != nil {
		return nil, err
	}
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	return s.MarkAllPresent(ctx, date, StudentIDs(FilterForAttendance(roster, classFilter)))
}

// MarkMany applies a bulk request, resolving the visible set when no ids are given.
func (s *AttendanceService) MarkMany(ctx context.Context, date string, req MarkAllPresentRequest) (*models.BulkAttendanceResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if req.StudentIDs != nil {
		return s.MarkAllPresent(ctx, date, req.StudentIDs)
	}
	return s.MarkVisiblePresent(ctx, date, req.Class)
}

// Sheet joins the roster with the record for date. An empty date means today.
func (s *AttendanceService) Sheet(ctx context.Context, date, classFilter string) (*models.AttendanceSheet, error) {
	if date == "" {
		date = s.Today()
	}
	if err := validateISODate(date); err != nil {
		return nil, err
	}
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	ledger, err := s.store.Ledger(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load attendance")
	}
	record := ledger.Record(date)
	visible := FilterForAttendance(roster, classFilter)

	rows := make([]models.AttendanceRow, 0, len(visible))
	for _, student := range visible {
		status := record[student.ID]
		rows = append(rows, models.AttendanceRow{
			StudentID:   student.ID,
			Name:        student.FullName(),
			Class:       student.Class,
			Email:       student.Email,
			AvatarColor: student.AvatarColor,
			Status:      status,
			Label:       StatusLabel(status),
			Time:        sheetTime(status),
		})
	}
	if classFilter == "" {
		classFilter = ClassFilterAllClasses
	}
	return &models.AttendanceSheet{
		Date:  date,
		Class: classFilter,
		Rows:  rows,
		Stats: ComputeStats(record, StudentIDs(visible)),
	}, nil
}

// StudentHistory returns the student's entries among the most recent ledger dates.
func (s *AttendanceService) StudentHistory(ctx context.Context, studentID string) ([]models.AttendanceHistoryEntry, error) {
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	if findStudent(roster, studentID) < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	ledger, err := s.store.Ledger(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load attendance")
	}

	dates := make([]string, 0, len(ledger))
	for date := range ledger {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > historyDays {
		dates = dates[:historyDays]
	}

	history := make([]models.AttendanceHistoryEntry, 0, len(dates))
	for _, date := range dates {
		if status, ok := ledger[date][studentID]; ok {
			history = append(history, models.AttendanceHistoryEntry{Date: date, Status: status})
		}
	}
	return history, nil
}

// Today returns the current UTC date in ledger key form.
func (s *AttendanceService) Today() string {
	return s.now().UTC().Format(models.DateLayout)
}

func validateISODate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}
	return nil
}

func (s *AttendanceService) recordWrite(operation string, entries int) {
	if s.metrics != nil {
		s.metrics.RecordLedgerWrite(operation, entries)
	}
}

// uniqueIDs trims and dedups ids, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func findStudent(roster []models.Student, id string) int {
	for i, student := range roster {
		if student.ID == id {
			return i
		}
	}
	return -1
}
