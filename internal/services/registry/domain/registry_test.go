package domain

import (
	"context"
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	"github.com/louisbranch/registrar/internal/platform/requestctx"
	"github.com/louisbranch/registrar/internal/services/registry/storage/memory"
)

const (
	adminPrincipal     = "0xadmin"
	studentPrincipal   = "0xstudent"
	professorPrincipal = "0xprofessor"
)

func as(principal string) context.Context {
	return requestctx.WithPrincipal(context.Background(), principal)
}

// newSeededRegistry returns a registry with one admin, one student, one
// professor, course 0 and classroom 0.
func newSeededRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New(memory.New())
	ctx := context.Background()
	mustNoErr(t, r.RegisterUser(ctx, adminPrincipal, RoleAdmin))
	mustNoErr(t, r.RegisterUser(ctx, studentPrincipal, RoleStudent))
	mustNoErr(t, r.RegisterUser(ctx, professorPrincipal, RoleProfessor))
	if _, err := r.CreateCourse(ctx, "Calculo Diferencial", "Curso de calculo diferencial", 3); err != nil {
		t.Fatalf("create course: %v", err)
	}
	if _, err := r.CreateClassroom(as(adminPrincipal), "A-101", "Building A", 30); err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	return r
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertDomainErr(t *testing.T, err error, kind apperrors.Kind, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s %q, got nil", kind, message)
	}
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T: %v", err, err)
	}
	if domainErr.Kind() != kind {
		t.Fatalf("kind = %s, want %s (%v)", domainErr.Kind(), kind, err)
	}
	if domainErr.Message != message {
		t.Fatalf("message = %q, want %q", domainErr.Message, message)
	}
}

func TestRegisterUser(t *testing.T) {
	r := New(nil)
	ctx := context.Background()

	mustNoErr(t, r.RegisterUser(ctx, "0xabc", RoleStudent))
	u, err := r.GetUser(ctx, "0xabc")
	mustNoErr(t, err)
	if u != (User{Principal: "0xabc", Role: RoleStudent, IsActive: true}) {
		t.Fatalf("user = %+v", u)
	}
	if !r.IsRegistered(ctx, "0xabc") || r.IsRegistered(ctx, "0xdef") {
		t.Fatal("IsRegistered mismatch")
	}

	assertDomainErr(t, r.RegisterUser(ctx, "0xabc", RoleAdmin), apperrors.KindConflict, "User already registered")
	assertDomainErr(t, r.RegisterUser(ctx, " ", RoleAdmin), apperrors.KindValidation, "Principal is required")
	assertDomainErr(t, r.RegisterUser(ctx, "0xnew", Role(9)), apperrors.KindValidation, "Invalid role")

	_, err = r.GetUser(ctx, "0xmissing")
	assertDomainErr(t, err, apperrors.KindNotFound, "User not registered")

	u, _ = r.GetUser(ctx, "0xabc")
	if u.Role != RoleStudent {
		t.Fatal("role must not change on re-registration attempt")
	}
}

func TestCourseIDsAreDenseRegardlessOfDeletes(t *testing.T) {
	r := New(nil)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		id, err := r.CreateCourse(ctx, "c", "d", 3)
		mustNoErr(t, err)
		if id != uint64(i) {
			t.Fatalf("id = %d, want %d", id, i)
		}
	}
	mustNoErr(t, r.DeleteCourse(ctx, 1))
	mustNoErr(t, r.DeleteCourse(ctx, 3))

	if got := r.ListCourses(ctx); !reflect.DeepEqual(got, []uint64{0, 1, 2, 3}) {
		t.Fatalf("ListCourses = %v", got)
	}
	c, err := r.GetCourse(ctx, 1)
	mustNoErr(t, err)
	if c.IsActive {
		t.Fatal("expected deleted course to be retrievable and inactive")
	}
}

func TestCourseLifecycle(t *testing.T) {
	r := New(nil)
	ctx := context.Background()
	id, err := r.CreateCourse(ctx, "Integral Calculus", "Study the principles of integral calculus", 3)
	mustNoErr(t, err)

	mustNoErr(t, r.UpdateCourse(ctx, id, "Fundamentals of Integral Calculus", "Study the principles of integral calculus", 4))
	c, err := r.GetCourse(ctx, id)
	mustNoErr(t, err)
	want := Course{ID: 0, Name: "Fundamentals of Integral Calculus", Description: "Study the principles of integral calculus", Credits: 4, IsActive: true}
	if c != want {
		t.Fatalf("course = %+v, want %+v", c, want)
	}

	assertDomainErr(t, r.UpdateCourse(ctx, 7, "x", "y", 3), apperrors.KindNotFound, "Invalid course ID")
	assertDomainErr(t, r.DeleteCourse(ctx, 7), apperrors.KindNotFound, "Invalid course ID")
	_, err = r.GetCourse(ctx, 7)
	assertDomainErr(t, err, apperrors.KindNotFound, "Invalid course ID")
	assertDomainErr(t, r.UpdateCourse(ctx, id, "x", "y", 0), apperrors.KindValidation, "Invalid credits")
	_, err = r.CreateCourse(ctx, "x", "y", 0)
	assertDomainErr(t, err, apperrors.KindValidation, "Invalid credits")

	mustNoErr(t, r.DeleteCourse(ctx, id))
	for i := 0; i < 2; i++ {
		assertDomainErr(t, r.DeleteCourse(ctx, id), apperrors.KindState, "Course does not exist or has been deleted")
	}
	assertDomainErr(t, r.UpdateCourse(ctx, id, "x", "y", 3), apperrors.KindState, "Course does not exist or has been deleted")
	// Liveness is checked before credits.
	assertDomainErr(t, r.UpdateCourse(ctx, id, "x", "y", 0), apperrors.KindState, "Course does not exist or has been deleted")
}

func TestCourseCRUDIsNotRoleGated(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := as(studentPrincipal)
	id, err := r.CreateCourse(ctx, "Algebra Lineal", "Curso de algebra lineal", 4)
	mustNoErr(t, err)
	mustNoErr(t, r.UpdateCourse(as("0xnobody"), id, "Algebra", "x", 4))
	mustNoErr(t, r.DeleteCourse(as(professorPrincipal), id))
}

func TestClassroomMutationsRequireAdmin(t *testing.T) {
	r := newSeededRegistry(t)
	before := r.ListClassrooms(context.Background())

	tests := []struct {
		name   string
		caller string
	}{
		{name: "student", caller: studentPrincipal},
		{name: "professor", caller: professorPrincipal},
		{name: "unregistered", caller: "0xnobody"},
		{name: "anonymous", caller: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := as(tt.caller)
			_, err := r.CreateClassroom(ctx, "B-1", "B", 10)
			assertDomainErr(t, err, apperrors.KindUnauthorized, "Only administrators can create classrooms")
			assertDomainErr(t, r.UpdateClassroom(ctx, 0, "B-1", "B", 10), apperrors.KindUnauthorized, "Only administrators can update classrooms")
			assertDomainErr(t, r.DeleteClassroom(ctx, 0), apperrors.KindUnauthorized, "Only administrators can delete classrooms")
			// Role is checked before the id.
			assertDomainErr(t, r.DeleteClassroom(ctx, 99), apperrors.KindUnauthorized, "Only administrators can delete classrooms")
		})
	}

	if got := r.ListClassrooms(context.Background()); !reflect.DeepEqual(got, before) {
		t.Fatalf("classrooms changed: %v -> %v", before, got)
	}
	if code := apperrors.GetCode(r.DeleteClassroom(as(studentPrincipal), 0)); code != apperrors.CodeClassroomAdminRequired {
		t.Fatalf("code = %s", code)
	}
}

func TestClassroomLifecycle(t *testing.T) {
	r := newSeededRegistry(t)
	admin := as(adminPrincipal)

	id, err := r.CreateClassroom(admin, "Lab 2", "Building B", 25)
	mustNoErr(t, err)
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
	mustNoErr(t, r.UpdateClassroom(admin, id, "Lab 2B", "Building B", 40))
	c, err := r.GetClassroom(as(studentPrincipal), id)
	mustNoErr(t, err)
	if c != (Classroom{ID: 1, Name: "Lab 2B", Location: "Building B", Capacity: 40, IsActive: true}) {
		t.Fatalf("classroom = %+v", c)
	}

	_, err = r.CreateClassroom(admin, "x", "y", 0)
	assertDomainErr(t, err, apperrors.KindValidation, "Invalid capacity")
	assertDomainErr(t, r.UpdateClassroom(admin, 9, "x", "y", 1), apperrors.KindNotFound, "Invalid classroom ID")

	mustNoErr(t, r.DeleteClassroom(admin, id))
	assertDomainErr(t, r.DeleteClassroom(admin, id), apperrors.KindState, "Classroom does not exist or has been deleted")
	assertDomainErr(t, r.UpdateClassroom(admin, id, "x", "y", 1), apperrors.KindState, "Classroom does not exist or has been deleted")

	if got := r.ListClassrooms(admin); !reflect.DeepEqual(got, []uint64{0, 1}) {
		t.Fatalf("ListClassrooms = %v", got)
	}
}

func TestAddScheduleAddressing(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := context.Background()

	local, global, err := r.AddSchedule(ctx, 0, Slot{Day: 1, StartHour: 8, EndHour: 10, ClassroomID: 0})
	mustNoErr(t, err)
	if local != 1 || global != 0 {
		t.Fatalf("addresses = (%d, %d), want (1, 0)", local, global)
	}

	sch, err := r.GetSchedule(ctx, 0, 1)
	mustNoErr(t, err)
	want := Schedule{GlobalID: 0, LocalIndex: 1, CourseID: 0, Day: 1, StartHour: 8, EndHour: 10, ClassroomID: 0, IsActive: true}
	if sch != want {
		t.Fatalf("schedule = %+v, want %+v", sch, want)
	}

	detail, err := r.GetScheduleByID(ctx, 0)
	mustNoErr(t, err)
	wantDetail := ScheduleDetail{GlobalID: 0, Day: 1, StartHour: 8, EndHour: 10, CourseName: "Calculo Diferencial", CourseIsActive: true, ClassroomID: 0}
	if detail != wantDetail {
		t.Fatalf("detail = %+v, want %+v", detail, wantDetail)
	}

	_, err = r.GetSchedule(ctx, 0, 0)
	assertDomainErr(t, err, apperrors.KindNotFound, "Invalid schedule ID")
	_, err = r.GetSchedule(ctx, 5, 1)
	assertDomainErr(t, err, apperrors.KindNotFound, "Invalid course ID")
	_, err = r.GetScheduleByID(ctx, 1)
	assertDomainErr(t, err, apperrors.KindNotFound, "Invalid schedule ID")
}

func TestLocalIndicesArePerCourseAndGlobalIDsAreShared(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := context.Background()
	_, err := r.CreateCourse(ctx, "Algebra Lineal", "Curso de algebra lineal", 4)
	mustNoErr(t, err)

	type addr struct{ local, global uint64 }
	var got []addr
	for _, courseID := range []uint64{0, 0, 1, 0} {
		local, global, err := r.AddSchedule(ctx, courseID, Slot{Day: 2, StartHour: 8, EndHour: 10})
		mustNoErr(t, err)
		got = append(got, addr{local, global})
	}
	want := []addr{{1, 0}, {2, 1}, {1, 2}, {3, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("addresses = %v, want %v", got, want)
	}
	if ids := r.ListAllSchedules(ctx); len(ids) != 4 {
		t.Fatalf("ListAllSchedules length = %d, want 4", len(ids))
	}
	c, _ := r.GetCourse(ctx, 0)
	if c.ScheduleCount != 3 {
		t.Fatalf("schedule count = %d, want 3", c.ScheduleCount)
	}
}

func TestAddScheduleValidationOrder(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := context.Background()
	admin := as(adminPrincipal)
	_, err := r.CreateCourse(ctx, "deleted", "", 3)
	mustNoErr(t, err)
	mustNoErr(t, r.DeleteCourse(ctx, 1))
	_, err = r.CreateClassroom(admin, "gone", "", 5)
	mustNoErr(t, err)
	mustNoErr(t, r.DeleteClassroom(admin, 1))

	tests := []struct {
		name     string
		courseID uint64
		slot     Slot
		kind     apperrors.Kind
		message  string
	}{
		{"course out of range beats everything", 9, Slot{Day: 0, StartHour: 10, EndHour: 8, ClassroomID: 9}, apperrors.KindNotFound, "Invalid course ID"},
		{"inactive course beats day", 1, Slot{Day: 0, ClassroomID: 9}, apperrors.KindState, "Course does not exist or has been deleted"},
		{"day zero", 0, Slot{Day: 0, StartHour: 8, EndHour: 10}, apperrors.KindValidation, "Invalid day"},
		{"day eight", 0, Slot{Day: 8, StartHour: 8, EndHour: 10}, apperrors.KindValidation, "Invalid day"},
		{"day beats hours", 0, Slot{Day: 8, StartHour: 10, EndHour: 8}, apperrors.KindValidation, "Invalid day"},
		{"end before start", 0, Slot{Day: 1, StartHour: 10, EndHour: 8}, apperrors.KindValidation, "Invalid schedule"},
		{"end equals start", 0, Slot{Day: 1, StartHour: 8, EndHour: 8}, apperrors.KindValidation, "Invalid schedule"},
		{"end past midnight", 0, Slot{Day: 1, StartHour: 8, EndHour: 25}, apperrors.KindValidation, "Invalid schedule"},
		{"end at 24", 0, Slot{Day: 1, StartHour: 8, EndHour: 24}, apperrors.KindValidation, "Invalid schedule"},
		{"negative start", 0, Slot{Day: 1, StartHour: -1, EndHour: 8}, apperrors.KindValidation, "Invalid schedule"},
		{"hours beat classroom", 0, Slot{Day: 1, StartHour: 10, EndHour: 8, ClassroomID: 9}, apperrors.KindValidation, "Invalid schedule"},
		{"classroom out of range", 0, Slot{Day: 1, StartHour: 8, EndHour: 10, ClassroomID: 9}, apperrors.KindNotFound, "Invalid classroom ID"},
		{"inactive classroom", 0, Slot{Day: 1, StartHour: 8, EndHour: 10, ClassroomID: 1}, apperrors.KindState, "Classroom does not exist or has been deleted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := r.AddSchedule(ctx, tt.courseID, tt.slot)
			assertDomainErr(t, err, tt.kind, tt.message)
		})
	}
	if n := len(r.ListAllSchedules(ctx)); n != 0 {
		t.Fatalf("failed adds left %d schedules", n)
	}
	c, _ := r.GetCourse(ctx, 0)
	if c.ScheduleCount != 0 {
		t.Fatalf("failed adds bumped schedule count to %d", c.ScheduleCount)
	}

	// Boundaries that are valid.
	_, _, err = r.AddSchedule(ctx, 0, Slot{Day: 7, StartHour: 0, EndHour: 23})
	mustNoErr(t, err)
}

func TestDeletedClassroomKeepsExistingSchedules(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := context.Background()
	admin := as(adminPrincipal)

	_, _, err := r.AddSchedule(ctx, 0, Slot{Day: 3, StartHour: 10, EndHour: 12, ClassroomID: 0})
	mustNoErr(t, err)
	before, _ := r.GetSchedule(ctx, 0, 1)

	mustNoErr(t, r.DeleteClassroom(admin, 0))

	_, _, err = r.AddSchedule(ctx, 0, Slot{Day: 3, StartHour: 12, EndHour: 14, ClassroomID: 0})
	assertDomainErr(t, err, apperrors.KindState, "Classroom does not exist or has been deleted")

	after, err := r.GetSchedule(ctx, 0, 1)
	mustNoErr(t, err)
	if after != before {
		t.Fatalf("schedule changed: %+v -> %+v", before, after)
	}
}

func TestGetScheduleByIDReadsCourseLive(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := context.Background()
	_, _, err := r.AddSchedule(ctx, 0, Slot{Day: 1, StartHour: 8, EndHour: 10})
	mustNoErr(t, err)

	mustNoErr(t, r.UpdateCourse(ctx, 0, "Calculo I", "renamed", 3))
	mustNoErr(t, r.DeleteCourse(ctx, 0))

	detail, err := r.GetScheduleByID(ctx, 0)
	mustNoErr(t, err)
	if detail.CourseName != "Calculo I" || detail.CourseIsActive {
		t.Fatalf("detail = %+v", detail)
	}
	// Address resolution ignores course liveness.
	if _, err := r.GetSchedule(ctx, 0, 1); err != nil {
		t.Fatalf("get schedule of deleted course: %v", err)
	}
}

func TestUpdateAssignDeleteSchedule(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := context.Background()
	admin := as(adminPrincipal)
	_, err := r.CreateClassroom(admin, "B-2", "Building B", 20)
	mustNoErr(t, err)
	_, _, err = r.AddSchedule(ctx, 0, Slot{Day: 1, StartHour: 8, EndHour: 10, ClassroomID: 0})
	mustNoErr(t, err)

	mustNoErr(t, r.UpdateSchedule(ctx, 0, 1, Slot{Day: 4, StartHour: 14, EndHour: 16, ClassroomID: 1}))
	sch, _ := r.GetSchedule(ctx, 0, 1)
	if sch.Day != 4 || sch.StartHour != 14 || sch.EndHour != 16 || sch.ClassroomID != 1 || sch.GlobalID != 0 || sch.LocalIndex != 1 || !sch.IsActive {
		t.Fatalf("after update = %+v", sch)
	}

	assertDomainErr(t, r.UpdateSchedule(ctx, 0, 1, Slot{Day: 9, StartHour: 14, EndHour: 16}), apperrors.KindValidation, "Invalid day")
	assertDomainErr(t, r.UpdateSchedule(ctx, 0, 2, Slot{Day: 1, StartHour: 8, EndHour: 10}), apperrors.KindNotFound, "Invalid schedule ID")
	assertDomainErr(t, r.UpdateSchedule(ctx, 4, 1, Slot{Day: 1, StartHour: 8, EndHour: 10}), apperrors.KindNotFound, "Invalid course ID")

	mustNoErr(t, r.AssignClassroomToSchedule(ctx, 0, 1, 0))
	sch, _ = r.GetSchedule(ctx, 0, 1)
	if sch.ClassroomID != 0 || sch.Day != 4 {
		t.Fatalf("after assign = %+v", sch)
	}
	assertDomainErr(t, r.AssignClassroomToSchedule(ctx, 0, 1, 7), apperrors.KindNotFound, "Invalid classroom ID")
	mustNoErr(t, r.DeleteClassroom(admin, 1))
	assertDomainErr(t, r.AssignClassroomToSchedule(ctx, 0, 1, 1), apperrors.KindState, "Classroom does not exist or has been deleted")

	mustNoErr(t, r.DeleteSchedule(ctx, 0, 1))
	sch, err = r.GetSchedule(ctx, 0, 1)
	mustNoErr(t, err)
	if sch.IsActive {
		t.Fatal("expected schedule to be inactive")
	}
	const gone = "Schedule does not exist or has been deleted"
	assertDomainErr(t, r.DeleteSchedule(ctx, 0, 1), apperrors.KindState, gone)
	assertDomainErr(t, r.UpdateSchedule(ctx, 0, 1, Slot{Day: 1, StartHour: 8, EndHour: 10}), apperrors.KindState, gone)
	assertDomainErr(t, r.AssignClassroomToSchedule(ctx, 0, 1, 0), apperrors.KindState, gone)

	// Deleted addresses are not reused.
	local, global, err := r.AddSchedule(ctx, 0, Slot{Day: 1, StartHour: 8, EndHour: 10})
	mustNoErr(t, err)
	if local != 2 || global != 1 {
		t.Fatalf("addresses = (%d, %d), want (2, 1)", local, global)
	}
}

func TestEnrollment(t *testing.T) {
	r := newSeededRegistry(t)
	student := as(studentPrincipal)

	mustNoErr(t, r.RegisterStudentInCourses(student, []uint64{0}))
	assertDomainErr(t, r.RegisterStudentInCourses(student, []uint64{0}), apperrors.KindConflict, "Student already registered in one of the courses")

	ids, err := r.GetStudentCourses(context.Background(), studentPrincipal)
	mustNoErr(t, err)
	if !reflect.DeepEqual(ids, []uint64{0}) {
		t.Fatalf("courses = %v", ids)
	}
}

func TestEnrollmentBatchIsAtomic(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := context.Background()
	student := as(studentPrincipal)
	_, err := r.CreateCourse(ctx, "Fisica I", "Curso de fisica", 3)
	mustNoErr(t, err)
	_, err = r.CreateCourse(ctx, "Quimica General", "Curso de quimica", 3)
	mustNoErr(t, err)
	mustNoErr(t, r.DeleteCourse(ctx, 2))
	seq := r.LastSeq()

	tests := []struct {
		name    string
		batch   []uint64
		kind    apperrors.Kind
		message string
	}{
		{"missing course", []uint64{0, 999}, apperrors.KindNotFound, "Invalid course ID"},
		{"deleted course", []uint64{0, 1, 2}, apperrors.KindState, "Course does not exist or has been deleted"},
		{"repeated in batch", []uint64{0, 1, 0}, apperrors.KindConflict, "Student already registered in one of the courses"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDomainErr(t, r.RegisterStudentInCourses(student, tt.batch), tt.kind, tt.message)
			ids, err := r.GetStudentCourses(ctx, studentPrincipal)
			mustNoErr(t, err)
			if len(ids) != 0 {
				t.Fatalf("partial enrollment recorded: %v", ids)
			}
		})
	}
	if r.LastSeq() != seq {
		t.Fatalf("failed batches committed events: %d -> %d", seq, r.LastSeq())
	}

	mustNoErr(t, r.RegisterStudentInCourses(student, []uint64{1, 0}))
	ids, _ := r.GetStudentCourses(ctx, studentPrincipal)
	if !reflect.DeepEqual(ids, []uint64{1, 0}) {
		t.Fatalf("courses = %v, want insertion order [1 0]", ids)
	}
}

func TestEnrollmentEmptyBatchIsNoop(t *testing.T) {
	r := newSeededRegistry(t)
	seq := r.LastSeq()
	mustNoErr(t, r.RegisterStudentInCourses(as(studentPrincipal), nil))
	if r.LastSeq() != seq {
		t.Fatal("empty batch committed an event")
	}
}

func TestEnrollmentRoleChecks(t *testing.T) {
	r := newSeededRegistry(t)
	ctx := context.Background()

	assertDomainErr(t, r.RegisterStudentInCourses(as("0xnobody"), []uint64{0}), apperrors.KindNotFound, "User not registered")
	assertDomainErr(t, r.RegisterStudentInCourses(as(professorPrincipal), []uint64{0}), apperrors.KindUnauthorized, "Only students can register in courses")
	assertDomainErr(t, r.RegisterStudentInCourses(as(adminPrincipal), []uint64{999}), apperrors.KindUnauthorized, "Only students can register in courses")

	_, err := r.GetStudentCourses(ctx, "0xnobody")
	assertDomainErr(t, err, apperrors.KindNotFound, "User not registered")
	_, err = r.GetStudentCourses(ctx, adminPrincipal)
	assertDomainErr(t, err, apperrors.KindUnauthorized, "Only students can have enrolled courses")
}

func TestEnsureAdmin(t *testing.T) {
	r := New(nil)
	ctx := context.Background()

	created, role, err := r.EnsureAdmin(ctx, "0xroot")
	mustNoErr(t, err)
	if !created || role != RoleAdmin {
		t.Fatalf("first ensure = (%v, %v)", created, role)
	}
	created, _, err = r.EnsureAdmin(ctx, "0xroot")
	mustNoErr(t, err)
	if created {
		t.Fatal("second ensure must not register again")
	}

	mustNoErr(t, r.RegisterUser(ctx, "0xkid", RoleStudent))
	created, role, err = r.EnsureAdmin(ctx, "0xkid")
	mustNoErr(t, err)
	if created || role != RoleStudent {
		t.Fatalf("existing student = (%v, %v)", created, role)
	}
	_, _, err = r.EnsureAdmin(ctx, "")
	assertDomainErr(t, err, apperrors.KindValidation, "Principal is required")
}

func TestRoleParsing(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleProfessor, RoleAdmin} {
		parsed, ok := ParseRole(role.String())
		if !ok || parsed != role {
			t.Fatalf("ParseRole(%q) = (%v, %v)", role.String(), parsed, ok)
		}
	}
	if _, ok := ParseRole("dean"); ok {
		t.Fatal("expected unknown role")
	}
	if Role(3).Valid() {
		t.Fatal("expected role 3 to be invalid")
	}
}
