package seed

import (
	"context"
	"errors"

	registryservice "github.com/louisbranch/registrar/internal/services/registry/api/grpc/registry"
	gogrpc "google.golang.org/grpc"
)

type scheduleCall struct {
	courseID uint64
	slot     registryservice.Slot
}

type registeredUser struct {
	principal string
	role      uint8
}

type fakeRegistry struct {
	users      []registeredUser
	classrooms []registryservice.ClassroomFields
	courses    []registryservice.CourseFields
	schedules  []scheduleCall
	perCourse  map[uint64]uint64

	failCourse string
	// blockCourse makes CreateCourse wait for its context to end.
	blockCourse string
	deadlines   []bool
}

func (f *fakeRegistry) RegisterUser(ctx context.Context, principal string, role uint8, _ ...gogrpc.CallOption) error {
	f.noteDeadline(ctx)
	f.users = append(f.users, registeredUser{principal: principal, role: role})
	return nil
}

func (f *fakeRegistry) noteDeadline(ctx context.Context) {
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
}

func (f *fakeRegistry) CreateClassroom(ctx context.Context, fields registryservice.ClassroomFields, _ ...gogrpc.CallOption) (uint64, error) {
	f.noteDeadline(ctx)
	f.classrooms = append(f.classrooms, fields)
	return uint64(len(f.classrooms) - 1), nil
}

func (f *fakeRegistry) CreateCourse(ctx context.Context, fields registryservice.CourseFields, _ ...gogrpc.CallOption) (uint64, error) {
	f.noteDeadline(ctx)
	if fields.Name == f.blockCourse {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if fields.Name == f.failCourse {
		return 0, errors.New("boom")
	}
	f.courses = append(f.courses, fields)
	// Offset ids so tests catch index/id confusion.
	return uint64(len(f.courses)-1) + 100, nil
}

func (f *fakeRegistry) AddSchedule(ctx context.Context, courseID uint64, slot registryservice.Slot, _ ...gogrpc.CallOption) (uint64, uint64, error) {
	if f.perCourse == nil {
		f.perCourse = map[uint64]uint64{}
	}
	f.noteDeadline(ctx)
	f.schedules = append(f.schedules, scheduleCall{courseID: courseID, slot: slot})
	local := f.perCourse[courseID]
	f.perCourse[courseID]++
	return local, uint64(len(f.schedules) - 1), nil
}
