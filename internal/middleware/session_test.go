package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edumanage-api/internal/models"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
)

type stubSessions struct {
	session *models.Session
}

func (s stubSessions) Current(context.Context) (*models.Session, error) {
	if s.session == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "no active session")
	}
	return s.session, nil
}

type recordedRequest struct {
	method string
	path   string
	status int
}

type stubObserver struct {
	requests []recordedRequest
}

func (s *stubObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	s.requests = append(s.requests, recordedRequest{method: method, path: path, status: status})
}

func TestSessionGuardBlocksWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	called := false
	router.GET("/students", SessionGuard(stubSessions{}), func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students", nil))

	assert.False(t, called)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestSessionGuardAttachesSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var seen *models.Session
	router.GET("/students", SessionGuard(stubSessions{session: &models.Session{Email: "admin@school.edu", Role: "Admin"}}), func(c *gin.Context) {
		seen = SessionFromContext(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "admin@school.edu", seen.Email)
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &stubObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/students/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/students/STD-1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Len(t, observer.requests, 2)
	assert.Equal(t, recordedRequest{method: "GET", path: "/students/:id", status: http.StatusNoContent}, observer.requests[0])
	assert.Equal(t, "unmatched", observer.requests[1].path)
	assert.Equal(t, http.StatusNotFound, observer.requests[1].status)
}
