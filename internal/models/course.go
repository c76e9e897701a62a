package models

// CourseStatus is the lifecycle state of a course.
type CourseStatus string

const (
	CourseStatusActive    CourseStatus = "Active"
	CourseStatusUpcoming  CourseStatus = "Upcoming"
	CourseStatusCompleted CourseStatus = "Completed"
)

// Valid returns true when the status is a supported value.
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusActive, CourseStatusUpcoming, CourseStatusCompleted:
		return true
	default:
		return false
	}
}

// Course is a catalog entry. Students is a display counter and is never
// reconciled against the roster.
type Course struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Title       string       `json:"title"`
	Students    int          `json:"students"`
	Hours       int          `json:"hours"`
	Instructor  string       `json:"instructor"`
	Status      CourseStatus `json:"status"`
	Theme       string       `json:"theme"`
	Description *string      `json:"description,omitempty"`
}

// CourseFilter scopes catalog listing.
type CourseFilter struct {
	Search  string
	Status  string
	Subject string
}

// CourseStats holds catalog counters.
type CourseStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}
