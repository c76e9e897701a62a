package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edumanage-api/internal/models"
)

// Document names appended to the namespace to form store keys.
const (
	DocStudents = "students"
	DocCourses  = "courses"
	DocLedger   = "attendance_v2"
	DocSession  = "user"
	DocRemember = "remember"
)

const (
	defaultNamespace  = "eduManage"
	defaultMaxRetries = 5
)

// Observer receives store instrumentation events.
type Observer interface {
	ObserveStoreOperation(operation, document string, duration time.Duration, err error)
	RecordVersionConflict(document string)
}

type nopObserver struct{}

func (nopObserver) ObserveStoreOperation(string, string, time.Duration, error) {}
func (nopObserver) RecordVersionConflict(string)                               {}

// StoreOptions tunes Store behaviour.
type StoreOptions struct {
	Namespace  string
	MaxRetries int
	Logger     *zap.Logger
	Observer   Observer
}

// Store exposes the typed collections kept in a DocumentStore. Every read
// goes to the backend; nothing is cached between calls.
type Store struct {
	docs       DocumentStore
	namespace  string
	maxRetries int
	logger     *zap.Logger
	observer   Observer
}

// NewStore wraps a DocumentStore.
func NewStore(docs DocumentStore, opts StoreOptions) *Store {
	if opts.Namespace == "" {
		opts.Namespace = defaultNamespace
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Store{
		docs:       docs,
		namespace:  opts.Namespace,
		maxRetries: opts.MaxRetries,
		logger:     opts.Logger,
		observer:   opts.Observer,
	}
}

// Key returns the backend key for a document name.
func (s *Store) Key(name string) string {
	return s.namespace + "_" + name
}

// Students returns the roster in insertion order.
func (s *Store) Students(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if _, err := load(ctx, s, DocStudents, &students); err != nil {
		return nil, err
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// SaveStudents replaces the whole roster.
func (s *Store) SaveStudents(ctx context.Context, students []models.Student) error {
	_, err := s.MutateStudents(ctx, func([]models.Student) ([]models.Student, error) {
		return students, nil
	})
	return err
}

// MutateStudents applies fn to a fresh roster snapshot and writes the result,
// re-running fn on version conflicts.
func (s *Store) MutateStudents(ctx context.Context, fn func([]models.Student) ([]models.Student, error)) ([]models.Student, error) {
	return mutate(ctx, s, DocStudents, func(current []models.Student) ([]models.Student, error) {
		if current == nil {
			current = []models.Student{}
		}
		return fn(current)
	})
}

// Courses returns the catalog in insertion order.
func (s *Store) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if _, err := load(ctx, s, DocCourses, &courses); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// SaveCourses replaces the whole catalog.
func (s *Store) SaveCourses(ctx context.Context, courses []models.Course) error {
	_, err := s.MutateCourses(ctx, func([]models.Course) ([]models.Course, error) {
		return courses, nil
	})
	return err
}

// MutateCourses is the catalog counterpart of MutateStudents.
func (s *Store) MutateCourses(ctx context.Context, fn func([]models.Course) ([]models.Course, error)) ([]models.Course, error) {
	return mutate(ctx, s, DocCourses, func(current []models.Course) ([]models.Course, error) {
		if current == nil {
			current = []models.Course{}
		}
		return fn(current)
	})
}

// Ledger returns the attendance ledger; never nil.
func (s *Store) Ledger(ctx context.Context) (models.Ledger, error) {
	var ledger models.Ledger
	if _, err := load(ctx, s, DocLedger, &ledger); err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = models.Ledger{}
	}
	return ledger, nil
}

// SaveLedger replaces the whole ledger.
func (s *Store) SaveLedger(ctx context.Context, ledger models.Ledger) error {
	_, err := s.MutateLedger(ctx, func(models.Ledger) (models.Ledger, error) {
		return ledger, nil
	})
	return err
}

// MutateLedger applies fn to a fresh ledger snapshot and writes it back.
func (s *Store) MutateLedger(ctx context.Context, fn func(models.Ledger) (models.Ledger, error)) (models.Ledger, error) {
	return mutate(ctx, s, DocLedger, func(current models.Ledger) (models.Ledger, error) {
		if current == nil {
			current = models.Ledger{}
		}
		return fn(current)
	})
}

// Session returns the stored session or nil when logged out.
func (s *Store) Session(ctx context.Context) (*models.Session, error) {
	var session *models.Session
	if _, err := load(ctx, s, DocSession, &session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveSession writes the session record.
func (s *Store) SaveSession(ctx context.Context, session models.Session) error {
	_, err := mutate(ctx, s, DocSession, func(*models.Session) (*models.Session, error) {
		return &session, nil
	})
	return err
}

// ClearSession removes the session record.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.remove(ctx, DocSession)
}

// RememberedEmail returns the email saved by a "remember me" login.
func (s *Store) RememberedEmail(ctx context.Context) (string, error) {
	var email string
	if _, err := load(ctx, s, DocRemember, &email); err != nil {
		return "", err
	}
	return email, nil
}

// SaveRememberedEmail stores email for the login form.
func (s *Store) SaveRememberedEmail(ctx context.Context, email string) error {
	_, err := mutate(ctx, s, DocRemember, func(string) (string, error) {
		return email, nil
	})
	return err
}

// Version reports the current version of a document; 0 when absent.
func (s *Store) Version(ctx context.Context, name string) (int64, error) {
	doc, err := s.docs.Load(ctx, s.Key(name))
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", s.Key(name), err)
	}
	return doc.Version, nil
}

// create writes value only if the document has never been written.
// It reports false when the document already exists.
func (s *Store) create(ctx context.Context, name string, value any) (bool, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", s.Key(name), err)
	}
	start := time.Now()
	_, err = s.docs.Save(ctx, s.Key(name), payload, 0)
	s.observer.ObserveStoreOperation("create", name, time.Since(start), ignoreConflict(err))
	if errors.Is(err, ErrVersionConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create %s: %w", s.Key(name), err)
	}
	return true, nil
}

func (s *Store) remove(ctx context.Context, name string) error {
	start := time.Now()
	err := s.docs.Delete(ctx, s.Key(name))
	s.observer.ObserveStoreOperation("delete", name, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.Key(name), err)
	}
	return nil
}

func load[T any](ctx context.Context, s *Store, name string, dest *T) (int64, error) {
	start := time.Now()
	doc, err := s.docs.Load(ctx, s.Key(name))
	s.observer.ObserveStoreOperation("load", name, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", s.Key(name), err)
	}
	if doc.Version == 0 || len(doc.Value) == 0 {
		return doc.Version, nil
	}
	if err := json.Unmarshal(doc.Value, dest); err != nil {
		return 0, fmt.Errorf("decode %s: %w", s.Key(name), err)
	}
	return doc.Version, nil
}

// mutate runs a load/apply/save cycle until the save lands on the version it
// loaded or the retry budget is spent. fn must not keep state across calls.
func mutate[T any](ctx context.Context, s *Store, name string, fn func(T) (T, error)) (T, error) {
	var zero T
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		var current T
		version, err := load(ctx, s, name, &current)
		if err != nil {
			return zero, err
		}

		next, err := fn(current)
		if err != nil {
			return zero, err
		}

		payload, err := json.Marshal(next)
		if err != nil {
			return zero, fmt.Errorf("encode %s: %w", s.Key(name), err)
		}

		start := time.Now()
		_, err = s.docs.Save(ctx, s.Key(name), payload, version)
		s.observer.ObserveStoreOperation("save", name, time.Since(start), ignoreConflict(err))
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return zero, fmt.Errorf("save %s: %w", s.Key(name), err)
		}

		s.observer.RecordVersionConflict(name)
		s.logger.Debug("document version conflict, retrying",
			zap.String("document", s.Key(name)),
			zap.Int64("version", version),
			zap.Int("attempt", attempt),
		)
	}
	return zero, fmt.Errorf("save %s after %d attempts: %w", s.Key(name), s.maxRetries, ErrVersionConflict)
}

func ignoreConflict(err error) error {
	if errors.Is(err, ErrVersionConflict) {
		return nil
	}
	return err
}
