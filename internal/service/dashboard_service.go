package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edumanage-api/internal/models"
)

const (
	dashboardCourses  = 2
	dashboardStudents = 5
)

type dashboardStore interface {
	Students(ctx context.Context) ([]models.Student, error)
	Courses(ctx context.Context) ([]models.Course, error)
	Ledger(ctx context.Context) (models.Ledger, error)
}

// DashboardService composes the landing page overview.
type DashboardService struct {
	store  dashboardStore
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(store dashboardStore, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: store, logger: logger, now: time.Now}
}

// Summary returns the headline counters, today's attendance over the whole
// roster, the first active courses and the latest admissions.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	students, err := s.store.Students(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load courses")
	}
	ledger, err := s.store.Ledger(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load attendance")
	}

	today := s.now().UTC().Format(models.DateLayout)
	studentStats := countStudents(students)
	stats := ComputeStats(ledger.Record(today), StudentIDs(students))

	active := make([]models.Course, 0, dashboardCourses)
	for _, course := range courses {
		if len(active) == dashboardCourses {
			break
		}
		if course.Status == models.CourseStatusActive {
			active = append(active, course)
		}
	}

	return &models.DashboardSummary{
		TotalStudents:   studentStats.Total,
		ActiveCourses:   countCourses(courses).Active,
		PendingStudents: studentStats.Pending,
		TodayAttendance: stats.Percentage,
		Today:           today,
		Classes:         active,
		RecentStudents:  recentStudents(students, dashboardStudents),
	}, nil
}
