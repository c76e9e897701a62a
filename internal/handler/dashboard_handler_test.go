package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edumanage-api/internal/middleware"
	"github.com/noah-isme/edumanage-api/internal/models"
)

type dashboardServiceMock struct {
	err error
}

func (m *dashboardServiceMock) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.DashboardSummary{TotalStudents: 8, TodayAttendance: 31}, nil
}

func TestDashboardHandlerSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&dashboardServiceMock{})

	c, w := newGinContext(http.MethodGet, "/dashboard", nil)
	c.Set(middleware.ContextSessionKey, &models.Session{Email: "admin@school.edu", Role: "Admin"})
	handler.Summary(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Welcome back, Admin!", env.Meta["welcome"])
	assert.Contains(t, string(env.Data), `"todayAttendance":31`)
}

func TestDashboardHandlerSummaryError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&dashboardServiceMock{err: errors.New("store down")})

	c, w := newGinContext(http.MethodGet, "/dashboard", nil)
	handler.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
