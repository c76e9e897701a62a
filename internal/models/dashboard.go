package models

// DashboardSummary is the landing page overview.
type DashboardSummary struct {
	TotalStudents   int       `json:"totalStudents"`
	ActiveCourses   int       `json:"activeCourses"`
	PendingStudents int       `json:"pendingStudents"`
	TodayAttendance int       `json:"todayAttendance"`
	Today           string    `json:"today"`
	Classes         []Course  `json:"classes"`
	RecentStudents  []Student `json:"recentStudents"`
}
