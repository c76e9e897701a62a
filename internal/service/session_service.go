package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edumanage-api/internal/models"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
)

const defaultSessionRole = "Admin"

type sessionStore interface {
	Session(ctx context.Context) (*models.Session, error)
	SaveSession(ctx context.Context, session models.Session) error
	ClearSession(ctx context.Context) error
	RememberedEmail(ctx context.Context) (string, error)
	SaveRememberedEmail(ctx context.Context, email string) error
}

// SessionConfig lists the accepted demo accounts as email to plain password.
type SessionConfig struct {
	Accounts map[string]string
	Role     string
	// Cost is the bcrypt cost used to hash the account passwords; zero means bcrypt.DefaultCost.
	Cost int
}

// SessionService keeps the single stored "current user" record. It gates
// the UI and is not an authentication system.
type SessionService struct {
	store     sessionStore
	validator *validator.Validate
	logger    *zap.Logger
	hashes    map[string][]byte
	role      string
	now       func() time.Time
}

// NewSessionService hashes the configured passwords and constructs the service.
func NewSessionService(store sessionStore, validate *validator.Validate, logger *zap.Logger, cfg SessionConfig) (*SessionService, error) {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Role == "" {
		cfg.Role = defaultSessionRole
	}
	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashes := make(map[string][]byte, len(cfg.Accounts))
	for email, password := range cfg.Accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, err
		}
		hashes[normalizeEmail(email)] = hash
	}
	return &SessionService{
		store:     store,
		validator: validate,
		logger:    logger,
		hashes:    hashes,
		role:      cfg.Role,
		now:       time.Now,
	}, nil
}

// Login checks the credentials against the demo accounts and stores the
// session. With Remember set the email is kept for the next login form.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	email := req.Email
	hash, ok := s.hashes[email]
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		s.logger.Info("login rejected", zap.String("email", email))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	session := models.Session{Email: email, Role: s.role, LoggedInAt: s.now().UTC()}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, storeError(err, "failed to save session")
	}
	if req.Remember {
		if err := s.store.SaveRememberedEmail(ctx, email); err != nil {
			s.logger.Warn("failed to remember email", zap.Error(err))
		}
	}
	s.logger.Info("session opened", zap.String("email", email))
	return &session, nil
}

// Logout clears the session record. Logging out twice is not an error.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return storeError(err, "failed to clear session")
	}
	return nil
}

// Current returns the stored session or UNAUTHORIZED when there is none.
func (s *SessionService) Current(ctx context.Context) (*models.Session, error) {
	session, err := s.store.Session(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load session")
	}
	if session == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "no active session")
	}
	return session, nil
}

// RememberedEmail returns the email saved by a previous "remember me" login.
func (s *SessionService) RememberedEmail(ctx context.Context) (string, error) {
	email, err := s.store.RememberedEmail(ctx)
	if err != nil {
		return "", storeError(err, "failed to load remembered email")
	}
	return email, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
