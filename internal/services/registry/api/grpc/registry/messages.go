package registry

// Wire messages for registrar.v1.RegistryService. They travel CBOR-encoded;
// field keys are part of the wire contract.

type Empty struct{}

type User struct {
	Principal string `cbor:"principal"`
	Role      uint8  `cbor:"role"`
	IsActive  bool   `cbor:"is_active"`
}

type Course struct {
	ID            uint64 `cbor:"id"`
	Name          string `cbor:"name"`
	Description   string `cbor:"description"`
	Credits       uint32 `cbor:"credits"`
	IsActive      bool   `cbor:"is_active"`
	ScheduleCount uint64 `cbor:"schedule_count"`
}

type Classroom struct {
	ID       uint64 `cbor:"id"`
	Name     string `cbor:"name"`
	Location string `cbor:"location"`
	Capacity uint32 `cbor:"capacity"`
	IsActive bool   `cbor:"is_active"`
}

type Slot struct {
	Day         int    `cbor:"day"`
	StartHour   int    `cbor:"start_hour"`
	EndHour     int    `cbor:"end_hour"`
	ClassroomID uint64 `cbor:"classroom_id"`
}

type Schedule struct {
	GlobalID    uint64 `cbor:"global_id"`
	LocalIndex  uint64 `cbor:"local_index"`
	CourseID    uint64 `cbor:"course_id"`
	Day         int    `cbor:"day"`
	StartHour   int    `cbor:"start_hour"`
	EndHour     int    `cbor:"end_hour"`
	ClassroomID uint64 `cbor:"classroom_id"`
	IsActive    bool   `cbor:"is_active"`
}

type ScheduleDetail struct {
	GlobalID       uint64 `cbor:"global_id"`
	Day            int    `cbor:"day"`
	StartHour      int    `cbor:"start_hour"`
	EndHour        int    `cbor:"end_hour"`
	CourseName     string `cbor:"course_name"`
	CourseIsActive bool   `cbor:"course_is_active"`
	ClassroomID    uint64 `cbor:"classroom_id"`
}

type IDList struct {
	IDs []uint64 `cbor:"ids"`
}

type RegisterUserRequest struct {
	Principal string `cbor:"principal"`
	Role      uint8  `cbor:"role"`
}

type PrincipalRequest struct {
	Principal string `cbor:"principal"`
}

type IsRegisteredResponse struct {
	Registered bool `cbor:"registered"`
}

type CourseFields struct {
	Name        string `cbor:"name"`
	Description string `cbor:"description"`
	Credits     uint32 `cbor:"credits"`
}

type UpdateCourseRequest struct {
	ID     uint64       `cbor:"id"`
	Fields CourseFields `cbor:"fields"`
}

type IDRequest struct {
	ID uint64 `cbor:"id"`
}

type IDResponse struct {
	ID uint64 `cbor:"id"`
}

type ClassroomFields struct {
	Name     string `cbor:"name"`
	Location string `cbor:"location"`
	Capacity uint32 `cbor:"capacity"`
}

type UpdateClassroomRequest struct {
	ID     uint64          `cbor:"id"`
	Fields ClassroomFields `cbor:"fields"`
}

type AddScheduleRequest struct {
	CourseID uint64 `cbor:"course_id"`
	Slot     Slot   `cbor:"slot"`
}

type AddScheduleResponse struct {
	LocalIndex uint64 `cbor:"local_index"`
	GlobalID   uint64 `cbor:"global_id"`
}

type ScheduleAddress struct {
	CourseID   uint64 `cbor:"course_id"`
	LocalIndex uint64 `cbor:"local_index"`
}

type UpdateScheduleRequest struct {
	Address ScheduleAddress `cbor:"address"`
	Slot    Slot            `cbor:"slot"`
}

type AssignClassroomRequest struct {
	Address     ScheduleAddress `cbor:"address"`
	ClassroomID uint64          `cbor:"classroom_id"`
}

type EnrollRequest struct {
	CourseIDs []uint64 `cbor:"course_ids"`
}
