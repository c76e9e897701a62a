package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edumanage-api/internal/models"
	"github.com/noah-isme/edumanage-api/internal/repository"
)

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SeedDemoData(ctx))
	require.NoError(t, store.SaveLedger(ctx, models.Ledger{
		"2024-10-01": {
			"STD-2024-001": models.AttendanceStatusPresent,
			"STD-2024-002": models.AttendanceStatusLate,
			"STD-2024-003": models.AttendanceStatusPresent,
			"gone":         models.AttendanceStatusPresent,
		},
		"2024-09-30": {"STD-2024-004": models.AttendanceStatusPresent},
	}))
	_, err := store.MutateStudents(ctx, func(s []models.Student) ([]models.Student, error) {
		s[1].Status = models.StudentStatusPending
		return s, nil
	})
	require.NoError(t, err)

	svc := NewDashboardService(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC) }

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, summary.TotalStudents)
	assert.Equal(t, 5, summary.ActiveCourses)
	assert.Equal(t, 1, summary.PendingStudents)
	// (2 + 0.5) / 8 = 31.25
	assert.Equal(t, 31, summary.TodayAttendance)
	assert.Equal(t, "2024-10-01", summary.Today)
	require.Len(t, summary.Classes, 2)
	assert.Equal(t, "CRSE-001", summary.Classes[0].ID)
	assert.Equal(t, "CRSE-002", summary.Classes[1].ID)
	assert.Equal(t, []string{"STD-2024-008", "STD-2024-007", "STD-2024-006", "STD-2024-005", "STD-2024-004"}, StudentIDs(summary.RecentStudents))
}

func TestDashboardSummaryEmptyStore(t *testing.T) {
	svc := NewDashboardService(repository.NewStore(repository.NewMemoryDocumentStore(), repository.StoreOptions{}), nil)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TodayAttendance)
	assert.Empty(t, summary.Classes)
	assert.Empty(t, summary.RecentStudents)
}
