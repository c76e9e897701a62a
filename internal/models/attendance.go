package models

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// DateLayout is the ISO calendar date used as ledger key.
const DateLayout = "2006-01-02"

// DailyRecord maps student IDs to their status for one date. A missing key
// means the student has not been marked yet.
type DailyRecord map[string]AttendanceStatus

// Ledger maps ISO dates to daily records.
type Ledger map[string]DailyRecord

// Record returns the daily record for date, or an empty record.
func (l Ledger) Record(date string) DailyRecord {
	out := DailyRecord{}
	for id, status := range l[date] {
		out[id] = status
	}
	return out
}

// AttendanceStats aggregates a daily record over a visible student set.
type AttendanceStats struct {
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Late       int `json:"late"`
	Pending    int `json:"pending"`
	Percentage int `json:"percentage"`
}

// AttendanceRow is one student line of the attendance sheet.
type AttendanceRow struct {
	StudentID   string           `json:"studentId"`
	Name        string           `json:"name"`
	Class       string           `json:"class"`
	Email       string           `json:"email"`
	AvatarColor string           `json:"avatarColor"`
	Status      AttendanceStatus `json:"status,omitempty"`
	Label       string           `json:"label"`
	Time        string           `json:"time"`
}

// AttendanceSheet is the roster-joined view of one date.
type AttendanceSheet struct {
	Date  string          `json:"date"`
	Class string          `json:"class"`
	Rows  []AttendanceRow `json:"rows"`
	Stats AttendanceStats `json:"stats"`
}

// AttendanceHistoryEntry is a dated status for a single student.
type AttendanceHistoryEntry struct {
	Date   string           `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// BulkAttendanceResult summarises a mark-all call.
type BulkAttendanceResult struct {
	Date   string `json:"date"`
	Marked int    `json:"marked"`
}
