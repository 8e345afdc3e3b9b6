package domain

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// CreateClassroom appends a classroom. Only admins may call it.
func (r *Registry) CreateClassroom(ctx context.Context, name, location string, capacity uint32) (id uint64, err error) {
	ctx, end := r.begin(ctx, "CreateClassroom")
	defer end(&err)

	if !r.state.isAdmin(caller(ctx)) {
		return 0, errAdminRequired("create")
	}
	if capacity == 0 {
		return 0, errCapacityInvalid()
	}
	id = uint64(len(r.state.classrooms))
	if err := r.commit(ctx, EventClassroomCreated, classroomFields{ID: id, Name: name, Location: location, Capacity: capacity}); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateClassroom overwrites the fields of a live classroom. Admin only.
func (r *Registry) UpdateClassroom(ctx context.Context, id uint64, name, location string, capacity uint32) (err error) {
	ctx, end := r.begin(ctx, "UpdateClassroom", attribute.Int64("registry.classroom_id", int64(id)))
	defer end(&err)

	if !r.state.isAdmin(caller(ctx)) {
		return errAdminRequired("update")
	}
	if _, err := r.state.activeClassroom(id); err != nil {
		return err
	}
	if capacity == 0 {
		return errCapacityInvalid()
	}
	return r.commit(ctx, EventClassroomUpdated, classroomFields{ID: id, Name: name, Location: location, Capacity: capacity})
}

// DeleteClassroom soft-deletes a live classroom. Admin only. Schedules
// already pointing at it keep the reference.
func (r *Registry) DeleteClassroom(ctx context.Context, id uint64) (err error) {
	ctx, end := r.begin(ctx, "DeleteClassroom", attribute.Int64("registry.classroom_id", int64(id)))
	defer end(&err)

	if !r.state.isAdmin(caller(ctx)) {
		return errAdminRequired("delete")
	}
	if _, err := r.state.activeClassroom(id); err != nil {
		return err
	}
	return r.commit(ctx, EventClassroomDeleted, entityRef{ID: id})
}

// GetClassroom returns a classroom whether or not it is live.
func (r *Registry) GetClassroom(ctx context.Context, id uint64) (c Classroom, err error) {
	_, end := r.begin(ctx, "GetClassroom", attribute.Int64("registry.classroom_id", int64(id)))
	defer end(&err)

	classroom, err := r.state.classroom(id)
	if err != nil {
		return Classroom{}, err
	}
	return *classroom, nil
}

// ListClassrooms returns every classroom id ever minted.
func (r *Registry) ListClassrooms(ctx context.Context) []uint64 {
	_, end := r.begin(ctx, "ListClassrooms")
	defer end(nil)

	return denseIDs(len(r.state.classrooms))
}
