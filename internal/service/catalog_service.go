package service

import (
	"context"
	"math/rand"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/edumanage-api/internal/models"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
)

const defaultCourseHours = 40

// Catalog filter values meaning "no filter".
const (
	CourseFilterAll  = "All"
	CourseStatusAll  = "All Status"
	CourseSubjectAll = "All Subjects"
)

const courseIDPrefix = "CRSE-"

var courseThemes = []string{"blue", "purple", "pink", "green", "orange", "teal"}

type catalogStore interface {
	Courses(ctx context.Context) ([]models.Course, error)
	MutateCourses(ctx context.Context, fn func([]models.Course) ([]models.Course, error)) ([]models.Course, error)
}

// CourseRequest holds payload for creating or editing a course.
type CourseRequest struct {
	Code        string  `json:"code" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Instructor  string  `json:"instructor"`
	Hours       *int    `json:"hours" validate:"omitempty,min=1"`
	Status      string  `json:"status" validate:"omitempty,oneof=Active Upcoming Completed"`
	Description *string `json:"description"`
}

// CatalogService manages courses.
type CatalogService struct {
	store     catalogStore
	validator *validator.Validate
	logger    *zap.Logger
	pick      func(n int) int
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(store catalogStore, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{store: store, validator: validate, logger: logger, pick: rand.Intn}
}

// List returns courses matching filter in catalog order.
func (s *CatalogService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return nil, storeError(err, "failed to list courses")
	}
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if term != "" && !matchesCourseSearch(course, term) {
			continue
		}
		if !isAll(filter.Status, CourseFilterAll, CourseStatusAll) && string(course.Status) != filter.Status {
			continue
		}
		if !isAll(filter.Subject, CourseFilterAll, CourseSubjectAll) && !matchesSubject(course, filter.Subject) {
			continue
		}
		out = append(out, course)
	}
	return out, nil
}

// Get returns a course by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Course, error) {
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load course")
	}
	idx := findCourse(courses, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	course := courses[idx]
	return &course, nil
}

// Create appends a course with a generated id and a random theme.
func (s *CatalogService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := models.Course{
		ID:          courseIDPrefix + uuid.NewString(),
		Code:        strings.TrimSpace(req.Code),
		Title:       strings.TrimSpace(req.Title),
		Instructor:  strings.TrimSpace(req.Instructor),
		Hours:       defaultCourseHours,
		Status:      models.CourseStatusActive,
		Theme:       courseThemes[s.pick(len(courseThemes))],
		Description: req.Description,
	}
	if req.Hours != nil {
		course.Hours = *req.Hours
	}
	if req.Status != "" {
		course.Status = models.CourseStatus(req.Status)
	}

	if _, err := s.store.MutateCourses(ctx, func(courses []models.Course) ([]models.Course, error) {
		return append(courses, course), nil
	}); err != nil {
		return nil, storeError(err, "failed to create course")
	}
	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("code", course.Code))
	return &course, nil
}

// Update edits a course in place, keeping its id, theme and enrolled count.
// Hours and status are kept when omitted.
func (s *CatalogService) Update(ctx context.Context, id string, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	var updated models.Course
	_, err := s.store.MutateCourses(ctx, func(courses []models.Course) ([]models.Course, error) {
		idx := findCourse(courses, id)
		if idx < 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		course := courses[idx]
		course.Code = strings.TrimSpace(req.Code)
		course.Title = strings.TrimSpace(req.Title)
		course.Instructor = strings.TrimSpace(req.Instructor)
		course.Description = req.Description
		if req.Hours != nil {
			course.Hours = *req.Hours
		}
		if req.Status != "" {
			course.Status = models.CourseStatus(req.Status)
		}
		courses[idx] = course
		updated = course
		return courses, nil
	})
	if err != nil {
		return nil, storeError(err, "failed to update course")
	}
	return &updated, nil
}

// Delete removes a course.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	_, err := s.store.MutateCourses(ctx, func(courses []models.Course) ([]models.Course, error) {
		idx := findCourse(courses, id)
		if idx < 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return append(courses[:idx:idx], courses[idx+1:]...), nil
	})
	if err != nil {
		return storeError(err, "failed to delete course")
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}

// Stats counts all and active courses.
func (s *CatalogService) Stats(ctx context.Context) (*models.CourseStats, error) {
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load courses")
	}
	stats := countCourses(courses)
	return &stats, nil
}

func countCourses(courses []models.Course) models.CourseStats {
	stats := models.CourseStats{Total: len(courses)}
	for _, course := range courses {
		if course.Status == models.CourseStatusActive {
			stats.Active++
		}
	}
	return stats
}

func findCourse(courses []models.Course, id string) int {
	for i, course := range courses {
		if course.ID == id {
			return i
		}
	}
	return -1
}

func matchesCourseSearch(course models.Course, term string) bool {
	return strings.Contains(strings.ToLower(course.Title), term) ||
		strings.Contains(strings.ToLower(course.Code), term) ||
		strings.Contains(strings.ToLower(course.Instructor), term)
}

func matchesSubject(course models.Course, subject string) bool {
	if strings.Contains(course.Title, subject) {
		return true
	}
	return course.Description != nil && strings.Contains(*course.Description, subject)
}

func isAll(value string, all ...string) bool {
	if value == "" {
		return true
	}
	for _, a := range all {
		if value == a {
			return true
		}
	}
	return false
}
