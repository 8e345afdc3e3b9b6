package domain

import "fmt"

// Role is the fixed authorization level of a registered user.
type Role uint8

const (
	RoleStudent Role = iota
	RoleProfessor
	RoleAdmin
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r <= RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleProfessor:
		return "professor"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// ParseRole parses a role name as printed by String.
func ParseRole(value string) (Role, bool) {
	switch value {
	case "student":
		return RoleStudent, true
	case "professor":
		return RoleProfessor, true
	case "admin":
		return RoleAdmin, true
	}
	return 0, false
}

// User is a registered principal.
type User struct {
	Principal string
	Role      Role
	IsActive  bool
}

// Course is a catalog entry. ScheduleCount counts every schedule ever added
// and mints local schedule indices.
type Course struct {
	ID            uint64
	Name          string
	Description   string
	Credits       uint32
	IsActive      bool
	ScheduleCount uint64
}

// Classroom is a catalog entry.
type Classroom struct {
	ID       uint64
	Name     string
	Location string
	Capacity uint32
	IsActive bool
}

// Schedule is one weekly meeting of a course.
type Schedule struct {
	GlobalID    uint64
	LocalIndex  uint64
	CourseID    uint64
	Day         int
	StartHour   int
	EndHour     int
	ClassroomID uint64
	IsActive    bool
}

// ScheduleDetail is a schedule joined with the live state of its course.
type ScheduleDetail struct {
	GlobalID       uint64
	Day            int
	StartHour      int
	EndHour        int
	CourseName     string
	CourseIsActive bool
	ClassroomID    uint64
}

// Slot is the mutable time and place of a schedule.
type Slot struct {
	Day         int
	StartHour   int
	EndHour     int
	ClassroomID uint64
}
