package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edumanage-api/internal/models"
	"github.com/noah-isme/edumanage-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the current session.
const ContextSessionKey = "currentSession"

type sessionReader interface {
	Current(ctx context.Context) (*models.Session, error)
}

// SessionGuard rejects requests while no session record is stored.
func SessionGuard(sessions sessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.Current(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session attached by SessionGuard.
func SessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}
