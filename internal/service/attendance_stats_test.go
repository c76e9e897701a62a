package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/edumanage-api/internal/models"
)

func TestComputeStatsMixedRecord(t *testing.T) {
	record := models.DailyRecord{
		"A": models.AttendanceStatusPresent,
		"B": models.AttendanceStatusLate,
		"C": models.AttendanceStatusAbsent,
	}
	stats := ComputeStats(record, []string{"A", "B", "C", "D"})
	assert.Equal(t, models.AttendanceStats{Present: 1, Absent: 1, Late: 1, Pending: 1, Percentage: 38}, stats)
}

func TestComputeStatsNoVisibleStudents(t *testing.T) {
	stats := ComputeStats(models.DailyRecord{"A": models.AttendanceStatusPresent}, nil)
	assert.Equal(t, models.AttendanceStats{}, stats)
}

func TestComputeStatsCountsSumToVisible(t *testing.T) {
	record := models.DailyRecord{
		"A":       models.AttendanceStatusPresent,
		"B":       models.AttendanceStatusPresent,
		"C":       models.AttendanceStatusLate,
		"ghost":   models.AttendanceStatusAbsent,
		"another": models.AttendanceStatusPresent,
	}
	cases := [][]string{
		{},
		{"A"},
		{"A", "B", "C"},
		{"A", "X", "Y", "C", "B"},
		{"X"},
	}
	for _, visible := range cases {
		stats := ComputeStats(record, visible)
		assert.Equal(t, len(visible), stats.Present+stats.Absent+stats.Late+stats.Pending, "visible %v", visible)
	}
}

func TestComputeStatsRoundsHalfUp(t *testing.T) {
	// one late out of one: 50
	assert.Equal(t, 50, ComputeStats(models.DailyRecord{"A": models.AttendanceStatusLate}, []string{"A"}).Percentage)
	// 2/3 present: 66.67 -> 67
	record := models.DailyRecord{"A": models.AttendanceStatusPresent, "B": models.AttendanceStatusPresent}
	assert.Equal(t, 67, ComputeStats(record, []string{"A", "B", "C"}).Percentage)
	// one late out of eight: 6.25 -> 6
	assert.Equal(t, 6, ComputeStats(models.DailyRecord{"A": models.AttendanceStatusLate}, []string{"A", "B", "C", "D", "E", "F", "G", "H"}).Percentage)
}

func TestFilterForAttendance(t *testing.T) {
	roster := []models.Student{
		student("S1", "Emma", "Wilson", "Grade 10 - Science A"),
		student("S2", "James", "Davis", "Grade 11 - Mathematics"),
		student("S3", "Liam", "Brown", "Grade 10 - Arts"),
		{ID: "S4", FirstName: "Mason", Class: "Grade 10 - Science A", Status: models.StudentStatusInactive},
	}

	assert.Len(t, FilterForAttendance(roster, ""), 4)
	assert.Len(t, FilterForAttendance(roster, "All"), 4)
	assert.Len(t, FilterForAttendance(roster, "All Classes"), 4)

	// only the grade token before " - " is matched
	got := FilterForAttendance(roster, "Grade 10 - Science A")
	assert.Equal(t, []string{"S1", "S3", "S4"}, StudentIDs(got))

	got = FilterForAttendance(roster, "Mathematics")
	assert.Equal(t, []string{"S2"}, StudentIDs(got))

	assert.Empty(t, FilterForAttendance(roster, "Grade 12"))
}

func TestStatusPresentation(t *testing.T) {
	assert.Equal(t, "Present", StatusLabel(models.AttendanceStatusPresent))
	assert.Equal(t, "Late", StatusLabel(models.AttendanceStatusLate))
	assert.Equal(t, "Absent", StatusLabel(models.AttendanceStatusAbsent))
	assert.Equal(t, "Pending", StatusLabel(""))

	assert.Equal(t, "08:00 AM", CheckInTime(models.AttendanceStatusPresent))
	assert.Equal(t, "08:15 AM", CheckInTime(models.AttendanceStatusLate))
	assert.Equal(t, "", CheckInTime(models.AttendanceStatusAbsent))
	assert.Equal(t, "-", sheetTime(""))
}
