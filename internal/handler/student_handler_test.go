package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edumanage-api/internal/models"
	"github.com/noah-isme/edumanage-api/internal/service"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
)

type rosterServiceMock struct {
	students    []models.Student
	lastFilter  models.StudentFilter
	lastCreate  service.CreateStudentRequest
	lastLimit   int
	lastProfile string
	err         error
}

func (m *rosterServiceMock) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	m.lastFilter = filter
	return m.students, m.err
}

func (m *rosterServiceMock) Get(ctx context.Context, id string) (*models.Student, error) {
	for _, s := range m.students {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

func (m *rosterServiceMock) GetOrFirst(ctx context.Context, id string) (*models.Student, error) {
	m.lastProfile = id
	if id == "" && len(m.students) > 0 {
		return &m.students[0], nil
	}
	return m.Get(ctx, id)
}

func (m *rosterServiceMock) Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error) {
	m.lastCreate = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Student{ID: req.ID, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (m *rosterServiceMock) Update(ctx context.Context, id string, req service.UpdateStudentRequest) (*models.Student, error) {
	return &models.Student{ID: id, FirstName: req.FirstName}, m.err
}

func (m *rosterServiceMock) Delete(ctx context.Context, id string) error {
	return m.err
}

func (m *rosterServiceMock) Stats(ctx context.Context) (*models.StudentStats, error) {
	return &models.StudentStats{Total: len(m.students)}, m.err
}

func (m *rosterServiceMock) Recent(ctx context.Context, n int) ([]models.Student, error) {
	m.lastLimit = n
	return m.students, m.err
}

func (m *rosterServiceMock) Classes(ctx context.Context) ([]string, error) {
	return []string{"Grade 10"}, m.err
}

type historyServiceMock struct {
	entries []models.AttendanceHistoryEntry
	err     error
}

func (m *historyServiceMock) StudentHistory(ctx context.Context, studentID string) ([]models.AttendanceHistoryEntry, error) {
	return m.entries, m.err
}

func TestStudentHandlerListPassesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &rosterServiceMock{students: []models.Student{{ID: "S1"}}}
	handler := NewStudentHandler(mock, &historyServiceMock{})

	c, w := newGinContext(http.MethodGet, "/students?search=+emma+&class=Grade+10&status=Active&sort=newest", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StudentFilter{Search: "emma", Class: "Grade 10", Status: "Active", Sort: "newest"}, mock.lastFilter)
	env := decodeEnvelope(t, w)
	assert.Equal(t, float64(1), env.Meta["count"])
}

func TestStudentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &rosterServiceMock{}
	handler := NewStudentHandler(mock, &historyServiceMock{})

	payload, _ := json.Marshal(map[string]string{"id": "STD-9", "firstName": "Ava", "lastName": "Garcia", "gradeLevel": "Grade 11"})
	c, w := newGinContext(http.MethodPost, "/students", payload)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "STD-9", mock.lastCreate.ID)
	assert.Equal(t, "Grade 11", mock.lastCreate.GradeLevel)
}

func TestStudentHandlerCreateRejectsMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStudentHandler(&rosterServiceMock{}, &historyServiceMock{})

	c, w := newGinContext(http.MethodPost, "/students", []byte(`{"id":`))
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w).Error.Code)
}

func TestStudentHandlerCreateDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &rosterServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "student id already exists")}
	handler := NewStudentHandler(mock, &historyServiceMock{})

	c, w := newGinContext(http.MethodPost, "/students", []byte(`{"id":"S1","firstName":"A","lastName":"B"}`))
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "student id already exists", decodeEnvelope(t, w).Error.Message)
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStudentHandler(&rosterServiceMock{}, &historyServiceMock{})

	c, w := newGinContext(http.MethodGet, "/students/S9", nil)
	c.Params = gin.Params{{Key: "id", Value: "S9"}}
	handler.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentHandlerProfileDefaultsToFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &rosterServiceMock{students: []models.Student{{ID: "S1"}, {ID: "S2"}}}
	handler := NewStudentHandler(mock, &historyServiceMock{})

	c, w := newGinContext(http.MethodGet, "/students/profile", nil)
	handler.Profile(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", mock.lastProfile)
	var student models.Student
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &student))
	assert.Equal(t, "S1", student.ID)
}

func TestStudentHandlerRecentLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &rosterServiceMock{}
	handler := NewStudentHandler(mock, &historyServiceMock{})

	c, _ := newGinContext(http.MethodGet, "/students/recent", nil)
	handler.Recent(c)
	assert.Equal(t, 5, mock.lastLimit)

	c, _ = newGinContext(http.MethodGet, "/students/recent?limit=abc", nil)
	handler.Recent(c)
	assert.Equal(t, 5, mock.lastLimit)

	c, _ = newGinContext(http.MethodGet, "/students/recent?limit=2", nil)
	handler.Recent(c)
	assert.Equal(t, 2, mock.lastLimit)
}

func TestStudentHandlerAttendance(t *testing.T) {
	gin.SetMode(gin.TestMode)
	history := &historyServiceMock{entries: []models.AttendanceHistoryEntry{{Date: "2024-01-15", Status: models.AttendanceStatusLate}}}
	handler := NewStudentHandler(&rosterServiceMock{}, history)

	c, w := newGinContext(http.MethodGet, "/students/S1/attendance", nil)
	c.Params = gin.Params{{Key: "id", Value: "S1"}}
	handler.Attendance(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"late"`)
}
