// Package errors provides structured registry errors with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"

	// Identity errors
	CodePrincipalRequired     Code = "PRINCIPAL_REQUIRED"
	CodeUserNotRegistered     Code = "USER_NOT_REGISTERED"
	CodeUserAlreadyRegistered Code = "USER_ALREADY_REGISTERED"
	CodeUserRoleInvalid       Code = "USER_ROLE_INVALID"
	CodeTokenInvalid          Code = "TOKEN_INVALID"

	// Course errors
	CodeCourseIDInvalid      Code = "COURSE_ID_INVALID"
	CodeCourseInactive       Code = "COURSE_INACTIVE"
	CodeCourseCreditsInvalid Code = "COURSE_CREDITS_INVALID"

	// Classroom errors
	CodeClassroomIDInvalid       Code = "CLASSROOM_ID_INVALID"
	CodeClassroomInactive        Code = "CLASSROOM_INACTIVE"
	CodeClassroomCapacityInvalid Code = "CLASSROOM_CAPACITY_INVALID"
	CodeClassroomAdminRequired   Code = "CLASSROOM_ADMIN_REQUIRED"

	// Schedule errors
	CodeScheduleIDInvalid    Code = "SCHEDULE_ID_INVALID"
	CodeScheduleInactive     Code = "SCHEDULE_INACTIVE"
	CodeScheduleDayInvalid   Code = "SCHEDULE_DAY_INVALID"
	CodeScheduleHoursInvalid Code = "SCHEDULE_HOURS_INVALID"

	// Enrollment errors
	CodeEnrollmentStudentRequired     Code = "ENROLLMENT_STUDENT_REQUIRED"
	CodeEnrollmentListStudentRequired Code = "ENROLLMENT_LIST_STUDENT_REQUIRED"
	CodeEnrollmentDuplicate           Code = "ENROLLMENT_DUPLICATE"
)

// Kind groups codes into the registry's failure taxonomy.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindState
	KindValidation
	KindConflict
	KindUnauthorized
)

// String returns the taxonomy name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindState:
		return "StateError"
	case KindValidation:
		return "ValidationError"
	case KindConflict:
		return "Conflict"
	case KindUnauthorized:
		return "Unauthorized"
	default:
		return "Internal"
	}
}

// Kind returns the taxonomy bucket of a code.
func (c Code) Kind() Kind {
	switch c {
	case CodeUserNotRegistered,
		CodeCourseIDInvalid,
		CodeClassroomIDInvalid,
		CodeScheduleIDInvalid:
		return KindNotFound

	case CodeCourseInactive,
		CodeClassroomInactive,
		CodeScheduleInactive:
		return KindState

	case CodePrincipalRequired,
		CodeUserRoleInvalid,
		CodeCourseCreditsInvalid,
		CodeClassroomCapacityInvalid,
		CodeScheduleDayInvalid,
		CodeScheduleHoursInvalid:
		return KindValidation

	case CodeUserAlreadyRegistered,
		CodeEnrollmentDuplicate:
		return KindConflict

	case CodeClassroomAdminRequired,
		CodeEnrollmentStudentRequired,
		CodeEnrollmentListStudentRequired,
		CodeTokenInvalid:
		return KindUnauthorized

	default:
		return KindInternal
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	if c == CodeTokenInvalid {
		return codes.Unauthenticated
	}
	switch c.Kind() {
	case KindNotFound:
		return codes.NotFound
	case KindState:
		return codes.FailedPrecondition
	case KindValidation:
		return codes.InvalidArgument
	case KindConflict:
		return codes.AlreadyExists
	case KindUnauthorized:
		return codes.PermissionDenied
	default:
		return codes.Internal
	}
}
