package domain

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

func scheduleAttrs(courseID, localIndex uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("registry.course_id", int64(courseID)),
		attribute.Int64("registry.local_index", int64(localIndex)),
	}
}

// AddSchedule appends a meeting to a live course and returns both of its
// addresses: the 1-based index within the course and the global id.
//
// Checks run in order: course exists, course is live, day, hours, classroom
// exists, classroom is live.
func (r *Registry) AddSchedule(ctx context.Context, courseID uint64, slot Slot) (localIndex, globalID uint64, err error) {
	ctx, end := r.begin(ctx, "AddSchedule", attribute.Int64("registry.course_id", int64(courseID)))
	defer end(&err)

	course, err := r.state.activeCourse(courseID)
	if err != nil {
		return 0, 0, err
	}
	if err := r.state.validateSlot(slot); err != nil {
		return 0, 0, err
	}
	localIndex = course.ScheduleCount + 1
	globalID = uint64(len(r.state.schedules))
	if err := r.commit(ctx, EventScheduleAdded, scheduleAdded{
		GlobalID:   globalID,
		CourseID:   courseID,
		LocalIndex: localIndex,
		Slot:       toSlotFields(slot),
	}); err != nil {
		return 0, 0, err
	}
	return localIndex, globalID, nil
}

// GetSchedule resolves a schedule by course and local index, regardless of
// whether the schedule or its course is live.
func (r *Registry) GetSchedule(ctx context.Context, courseID, localIndex uint64) (s Schedule, err error) {
	_, end := r.begin(ctx, "GetSchedule", scheduleAttrs(courseID, localIndex)...)
	defer end(&err)

	sch, err := r.state.scheduleAt(courseID, localIndex)
	if err != nil {
		return Schedule{}, err
	}
	return *sch, nil
}

// GetScheduleByID resolves a schedule by global id and joins the current
// name and liveness of its course.
func (r *Registry) GetScheduleByID(ctx context.Context, globalID uint64) (d ScheduleDetail, err error) {
	_, end := r.begin(ctx, "GetScheduleByID", attribute.Int64("registry.schedule_id", int64(globalID)))
	defer end(&err)

	sch, err := r.state.scheduleByGlobalID(globalID)
	if err != nil {
		return ScheduleDetail{}, err
	}
	course := r.state.courses[sch.CourseID]
	return ScheduleDetail{
		GlobalID:       sch.GlobalID,
		Day:            sch.Day,
		StartHour:      sch.StartHour,
		EndHour:        sch.EndHour,
		CourseName:     course.Name,
		CourseIsActive: course.IsActive,
		ClassroomID:    sch.ClassroomID,
	}, nil
}

// UpdateSchedule replaces the day, hours and classroom of a live schedule.
func (r *Registry) UpdateSchedule(ctx context.Context, courseID, localIndex uint64, slot Slot) (err error) {
	ctx, end := r.begin(ctx, "UpdateSchedule", scheduleAttrs(courseID, localIndex)...)
	defer end(&err)

	sch, err := r.state.activeScheduleAt(courseID, localIndex)
	if err != nil {
		return err
	}
	if err := r.state.validateSlot(slot); err != nil {
		return err
	}
	return r.commit(ctx, EventScheduleUpdated, scheduleUpdated{GlobalID: sch.GlobalID, Slot: toSlotFields(slot)})
}

// AssignClassroomToSchedule moves a live schedule to another live classroom.
func (r *Registry) AssignClassroomToSchedule(ctx context.Context, courseID, localIndex, classroomID uint64) (err error) {
	ctx, end := r.begin(ctx, "AssignClassroomToSchedule", append(scheduleAttrs(courseID, localIndex),
		attribute.Int64("registry.classroom_id", int64(classroomID)))...)
	defer end(&err)

	sch, err := r.state.activeScheduleAt(courseID, localIndex)
	if err != nil {
		return err
	}
	if _, err := r.state.activeClassroom(classroomID); err != nil {
		return err
	}
	return r.commit(ctx, EventScheduleClassroomAssigned, classroomAssigned{GlobalID: sch.GlobalID, ClassroomID: classroomID})
}

// DeleteSchedule soft-deletes a live schedule. Its addresses are never
// reused.
func (r *Registry) DeleteSchedule(ctx context.Context, courseID, localIndex uint64) (err error) {
	ctx, end := r.begin(ctx, "DeleteSchedule", scheduleAttrs(courseID, localIndex)...)
	defer end(&err)

	sch, err := r.state.activeScheduleAt(courseID, localIndex)
	if err != nil {
		return err
	}
	return r.commit(ctx, EventScheduleDeleted, entityRef{ID: sch.GlobalID})
}

// ListAllSchedules returns every global schedule id ever minted.
func (r *Registry) ListAllSchedules(ctx context.Context) []uint64 {
	_, end := r.begin(ctx, "ListAllSchedules")
	defer end(nil)

	return denseIDs(len(r.state.schedules))
}
