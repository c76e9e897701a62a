package service

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edumanage-api/internal/models"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
)

// Listing filter values meaning "no filter".
const (
	StudentStatusAll = "All Status"
)

var avatarPalette = []string{"#4361ee", "#3f37c9", "#f72585", "#4cc9f0", "#7209b7"}

type rosterStore interface {
	Students(ctx context.Context) ([]models.Student, error)
	MutateStudents(ctx context.Context, fn func([]models.Student) ([]models.Student, error)) ([]models.Student, error)
}

// StudentFields is the editable part of a student record. Class wins over
// GradeLevel/Program when both are sent.
type StudentFields struct {
	FirstName             string  `json:"firstName" validate:"required"`
	LastName              string  `json:"lastName" validate:"required"`
	Email                 string  `json:"email" validate:"omitempty,email"`
	Phone                 string  `json:"phone"`
	Class                 string  `json:"class"`
	GradeLevel            string  `json:"gradeLevel"`
	Program               string  `json:"program"`
	EnrollDate            string  `json:"enrollDate" validate:"omitempty,iso_date"`
	Status                string  `json:"status" validate:"omitempty,oneof=Active Inactive Pending"`
	Photo                 []byte  `json:"photo,omitempty"`
	DOB                   *string `json:"dob,omitempty"`
	Gender                *string `json:"gender,omitempty"`
	EmergencyName         *string `json:"emergencyName,omitempty"`
	EmergencyRelationship *string `json:"emergencyRelationship,omitempty"`
	EmergencyPhone        *string `json:"emergencyPhone,omitempty"`
}

// CreateStudentRequest holds payload for enrolling a student.
type CreateStudentRequest struct {
	ID string `json:"id" validate:"required"`
	StudentFields
}

// UpdateStudentRequest holds payload for editing a student. The id is taken
// from the path and never changes.
type UpdateStudentRequest struct {
	StudentFields
}

// RosterService manages the student roster.
type RosterService struct {
	store     rosterStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	pick      func(n int) int
}

// NewRosterService constructs the roster service.
func NewRosterService(store rosterStore, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	RegisterValidations(validate)
	return &RosterService{store: store, validator: validate, logger: logger, now: time.Now, pick: rand.Intn}
}

// List returns students matching filter.
func (s *RosterService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to list students")
	}

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Student, 0, len(roster))
	for _, student := range roster {
		if term != "" && !matchesStudentSearch(student, term) {
			continue
		}
		if filter.Class != "" && filter.Class != ClassFilterAllClasses && !strings.Contains(student.Class, filter.Class) {
			continue
		}
		if filter.Status != "" && filter.Status != StudentStatusAll && string(student.Status) != filter.Status {
			continue
		}
		out = append(out, student)
	}

	switch filter.Sort {
	case models.StudentSortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].FirstName) < strings.ToLower(out[j].FirstName)
		})
	case models.StudentSortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].FirstName) > strings.ToLower(out[j].FirstName)
		})
	case models.StudentSortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EnrollDate > out[j].EnrollDate
		})
	}
	return out, nil
}

// Get returns a student by id.
func (s *RosterService) Get(ctx context.Context, id string) (*models.Student, error) {
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load student")
	}
	idx := findStudent(roster, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student := roster[idx]
	return &student, nil
}

// GetOrFirst returns the student with id, or the first roster entry when id is empty.
func (s *RosterService) GetOrFirst(ctx context.Context, id string) (*models.Student, error) {
	if id != "" {
		return s.Get(ctx, id)
	}
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load student")
	}
	if len(roster) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "roster is empty")
	}
	student := roster[0]
	return &student, nil
}

// Create appends a new student. A duplicate id is rejected and the roster is
// left as it was.
func (s *RosterService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.StudentFields = req.StudentFields.trimmed()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := models.Student{
		ID:          req.ID,
		Status:      models.StudentStatusActive,
		AvatarColor: avatarPalette[s.pick(len(avatarPalette))],
		EnrollDate:  s.now().UTC().Format(models.DateLayout),
	}
	applyStudentFields(&student, req.StudentFields)

	_, err := s.store.MutateStudents(ctx, func(roster []models.Student) ([]models.Student, error) {
		if findStudent(roster, student.ID) >= 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student id already exists")
		}
		return append(roster, student), nil
	})
	if err != nil {
		return nil, storeError(err, "failed to create student")
	}
	s.logger.Info("student enrolled", zap.String("student_id", student.ID))
	return &student, nil
}

// Update replaces the editable fields of a student in place. Status, avatar
// colour, photo and class are kept unless the request carries new values.
func (s *RosterService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	req.StudentFields = req.StudentFields.trimmed()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	var updated models.Student
	_, err := s.store.MutateStudents(ctx, func(roster []models.Student) ([]models.Student, error) {
		idx := findStudent(roster, id)
		if idx < 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		existing := roster[idx]
		next := models.Student{
			ID:          existing.ID,
			Status:      existing.Status,
			AvatarColor: existing.AvatarColor,
			Photo:       existing.Photo,
			EnrollDate:  existing.EnrollDate,
			Class:       existing.Class,
		}
		applyStudentFields(&next, req.StudentFields)
		roster[idx] = next
		updated = next
		return roster, nil
	})
	if err != nil {
		return nil, storeError(err, "failed to update student")
	}
	s.logger.Info("student updated", zap.String("student_id", id))
	return &updated, nil
}

// Delete removes a student. Ledger entries for the id are left in place.
func (s *RosterService) Delete(ctx context.Context, id string) error {
	_, err := s.store.MutateStudents(ctx, func(roster []models.Student) ([]models.Student, error) {
		idx := findStudent(roster, id)
		if idx < 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return append(roster[:idx:idx], roster[idx+1:]...), nil
	})
	if err != nil {
		return storeError(err, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}

// Stats counts the roster by lifecycle status.
func (s *RosterService) Stats(ctx context.Context) (*models.StudentStats, error) {
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	stats := countStudents(roster)
	return &stats, nil
}

// Recent returns the last n admissions, newest first.
func (s *RosterService) Recent(ctx context.Context, n int) ([]models.Student, error) {
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	return recentStudents(roster, n), nil
}

// Classes lists the distinct class labels on the roster, sorted.
func (s *RosterService) Classes(ctx context.Context) ([]string, error) {
	roster, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	seen := make(map[string]struct{})
	classes := make([]string, 0)
	for _, student := range roster {
		if student.Class == "" {
			continue
		}
		if _, ok := seen[student.Class]; ok {
			continue
		}
		seen[student.Class] = struct{}{}
		classes = append(classes, student.Class)
	}
	sort.Strings(classes)
	return classes, nil
}

// trimmed strips surrounding blanks so required fields cannot pass as spaces.
func (f StudentFields) trimmed() StudentFields {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Class = strings.TrimSpace(f.Class)
	f.GradeLevel = strings.TrimSpace(f.GradeLevel)
	f.Program = strings.TrimSpace(f.Program)
	f.EnrollDate = strings.TrimSpace(f.EnrollDate)
	return f
}

func applyStudentFields(student *models.Student, fields StudentFields) {
	student.FirstName = fields.FirstName
	student.LastName = fields.LastName
	student.Email = fields.Email
	student.Phone = fields.Phone
	if class := composeClass(fields); class != "" {
		student.Class = class
	}
	if fields.EnrollDate != "" {
		student.EnrollDate = fields.EnrollDate
	}
	if fields.Status != "" {
		student.Status = models.StudentStatus(fields.Status)
	}
	if len(fields.Photo) > 0 {
		student.Photo = fields.Photo
	}
	student.DOB = fields.DOB
	student.Gender = fields.Gender
	student.EmergencyName = fields.EmergencyName
	student.EmergencyRelationship = fields.EmergencyRelationship
	student.EmergencyPhone = fields.EmergencyPhone
}

func composeClass(fields StudentFields) string {
	if class := strings.TrimSpace(fields.Class); class != "" {
		return class
	}
	grade := strings.TrimSpace(fields.GradeLevel)
	if program := strings.TrimSpace(fields.Program); program != "" {
		return grade + " - " + program
	}
	return grade
}

func matchesStudentSearch(student models.Student, term string) bool {
	return strings.Contains(strings.ToLower(student.FirstName), term) ||
		strings.Contains(strings.ToLower(student.LastName), term) ||
		strings.Contains(strings.ToLower(student.ID), term) ||
		strings.Contains(strings.ToLower(student.Email), term)
}

func countStudents(roster []models.Student) models.StudentStats {
	stats := models.StudentStats{Total: len(roster)}
	for _, student := range roster {
		switch student.Status {
		case models.StudentStatusActive:
			stats.Active++
		case models.StudentStatusPending:
			stats.Pending++
		case models.StudentStatusInactive:
			stats.Inactive++
		}
	}
	return stats
}

func recentStudents(roster []models.Student, n int) []models.Student {
	if n <= 0 || n > len(roster) {
		n = len(roster)
	}
	out := make([]models.Student, 0, n)
	for i := len(roster) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, roster[i])
	}
	return out
}
