package models

// StudentStatus is the roster lifecycle state of a student. It is a separate
// namespace from AttendanceStatus.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "Active"
	StudentStatusInactive StudentStatus = "Inactive"
	StudentStatusPending  StudentStatus = "Pending"
)

// Valid returns true when the status is a supported value.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusPending:
		return true
	default:
		return false
	}
}

// Student represents a learner on the roster. JSON names match the persisted
// roster document.
type Student struct {
	ID          string        `json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Class       string        `json:"class"`
	EnrollDate  string        `json:"enrollDate"`
	Status      StudentStatus `json:"status"`
	AvatarColor string        `json:"avatarColor"`
	Photo       []byte        `json:"photo,omitempty"`

	DOB                   *string `json:"dob,omitempty"`
	Gender                *string `json:"gender,omitempty"`
	EmergencyName         *string `json:"emergencyName,omitempty"`
	EmergencyRelationship *string `json:"emergencyRelationship,omitempty"`
	EmergencyPhone        *string `json:"emergencyPhone,omitempty"`
}

// FullName joins first and last name the way every view displays it.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Student list sort keys.
const (
	StudentSortNameAsc  = "name_asc"
	StudentSortNameDesc = "name_desc"
	StudentSortNewest   = "newest"
)

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search string
	Class  string
	Status string
	Sort   string
}

// StudentStats holds the roster counter badges.
type StudentStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Pending  int `json:"pending"`
	Inactive int `json:"inactive"`
}
