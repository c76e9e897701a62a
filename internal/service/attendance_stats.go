package service

import (
	"math"
	"strings"

	"github.com/noah-isme/edumanage-api/internal/models"
)

// Class filter values that select the whole roster.
const (
	ClassFilterAll        = "All"
	ClassFilterAllClasses = "All Classes"
)

const (
	timePresent = "08:00 AM"
	timeLate    = "08:15 AM"
)

// ComputeStats counts the statuses of the visible students in record.
// Students without an entry are pending. Late counts as half present in the
// percentage, which is rounded half up.
func ComputeStats(record models.DailyRecord, visibleIDs []string) models.AttendanceStats {
	var stats models.AttendanceStats
	for _, id := range visibleIDs {
		switch record[id] {
		case models.AttendanceStatusPresent:
			stats.Present++
		case models.AttendanceStatusAbsent:
			stats.Absent++
		case models.AttendanceStatusLate:
			stats.Late++
		}
	}
	n := len(visibleIDs)
	stats.Pending = n - stats.Present - stats.Absent - stats.Late

	denom := n
	if denom < 1 {
		denom = 1
	}
	ratio := (float64(stats.Present) + 0.5*float64(stats.Late)) / float64(denom) * 100
	stats.Percentage = int(math.Floor(ratio + 0.5))
	return stats
}

// FilterForAttendance selects the students shown on the attendance sheet.
// Only the part of the filter before " - " is matched, as a substring of the
// student's class. Lifecycle status is ignored.
func FilterForAttendance(roster []models.Student, classFilter string) []models.Student {
	if classFilter == "" || classFilter == ClassFilterAll || classFilter == ClassFilterAllClasses {
		return roster
	}
	token := strings.Split(classFilter, " - ")[0]
	out := make([]models.Student, 0, len(roster))
	for _, student := range roster {
		if strings.Contains(student.Class, token) {
			out = append(out, student)
		}
	}
	return out
}

// StudentIDs lists ids in roster order.
func StudentIDs(students []models.Student) []string {
	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	return ids
}

// StatusLabel is the sheet caption for a status; unmarked is "Pending".
func StatusLabel(status models.AttendanceStatus) string {
	switch status {
	case models.AttendanceStatusPresent:
		return "Present"
	case models.AttendanceStatusAbsent:
		return "Absent"
	case models.AttendanceStatusLate:
		return "Late"
	default:
		return "Pending"
	}
}

// CheckInTime returns the nominal check-in time, empty when not on site.
func CheckInTime(status models.AttendanceStatus) string {
	switch status {
	case models.AttendanceStatusPresent:
		return timePresent
	case models.AttendanceStatusLate:
		return timeLate
	default:
		return ""
	}
}

func sheetTime(status models.AttendanceStatus) string {
	if t := CheckInTime(status); t != "" {
		return t
	}
	return "-"
}
