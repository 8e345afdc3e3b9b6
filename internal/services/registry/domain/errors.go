package domain

import apperrors "github.com/louisbranch/registrar/internal/platform/errors"

func errPrincipalRequired() error {
	return apperrors.New(apperrors.CodePrincipalRequired, "Principal is required")
}

func errUserNotRegistered() error {
	return apperrors.New(apperrors.CodeUserNotRegistered, "User not registered")
}

func errUserAlreadyRegistered() error {
	return apperrors.New(apperrors.CodeUserAlreadyRegistered, "User already registered")
}

func errRoleInvalid() error {
	return apperrors.New(apperrors.CodeUserRoleInvalid, "Invalid role")
}

func errCourseIDInvalid() error {
	return apperrors.New(apperrors.CodeCourseIDInvalid, "Invalid course ID")
}

func errCourseInactive() error {
	return apperrors.New(apperrors.CodeCourseInactive, "Course does not exist or has been deleted")
}

func errCreditsInvalid() error {
	return apperrors.New(apperrors.CodeCourseCreditsInvalid, "Invalid credits")
}

func errClassroomIDInvalid() error {
	return apperrors.New(apperrors.CodeClassroomIDInvalid, "Invalid classroom ID")
}

func errClassroomInactive() error {
	return apperrors.New(apperrors.CodeClassroomInactive, "Classroom does not exist or has been deleted")
}

func errCapacityInvalid() error {
	return apperrors.New(apperrors.CodeClassroomCapacityInvalid, "Invalid capacity")
}

// errAdminRequired reports a non-admin classroom mutation; action is one of
// create, update, delete.
func errAdminRequired(action string) error {
	return apperrors.WithMetadata(apperrors.CodeClassroomAdminRequired,
		"Only administrators can "+action+" classrooms",
		map[string]string{"action": action})
}

func errScheduleIDInvalid() error {
	return apperrors.New(apperrors.CodeScheduleIDInvalid, "Invalid schedule ID")
}

func errScheduleInactive() error {
	return apperrors.New(apperrors.CodeScheduleInactive, "Schedule does not exist or has been deleted")
}

func errDayInvalid() error {
	return apperrors.New(apperrors.CodeScheduleDayInvalid, "Invalid day")
}

func errHoursInvalid() error {
	return apperrors.New(apperrors.CodeScheduleHoursInvalid, "Invalid schedule")
}

func errStudentRequired() error {
	return apperrors.New(apperrors.CodeEnrollmentStudentRequired, "Only students can register in courses")
}

func errListStudentRequired() error {
	return apperrors.New(apperrors.CodeEnrollmentListStudentRequired, "Only students can have enrolled courses")
}

func errEnrollmentDuplicate() error {
	return apperrors.New(apperrors.CodeEnrollmentDuplicate, "Student already registered in one of the courses")
}
