package domain

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// CreateCourse appends a course and returns its id.
func (r *Registry) CreateCourse(ctx context.Context, name, description string, credits uint32) (id uint64, err error) {
	ctx, end := r.begin(ctx, "CreateCourse")
	defer end(&err)

	if credits == 0 {
		return 0, errCreditsInvalid()
	}
	id = uint64(len(r.state.courses))
	if err := r.commit(ctx, EventCourseCreated, courseFields{ID: id, Name: name, Description: description, Credits: credits}); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateCourse overwrites the descriptive fields of a live course.
func (r *Registry) UpdateCourse(ctx context.Context, id uint64, name, description string, credits uint32) (err error) {
	ctx, end := r.begin(ctx, "UpdateCourse", attribute.Int64("registry.course_id", int64(id)))
	defer end(&err)

	if _, err := r.state.activeCourse(id); err != nil {
		return err
	}
	if credits == 0 {
		return errCreditsInvalid()
	}
	return r.commit(ctx, EventCourseUpdated, courseFields{ID: id, Name: name, Description: description, Credits: credits})
}

// DeleteCourse soft-deletes a live course. Schedules and enrollments that
// reference it are left alone.
func (r *Registry) DeleteCourse(ctx context.Context, id uint64) (err error) {
	ctx, end := r.begin(ctx, "DeleteCourse", attribute.Int64("registry.course_id", int64(id)))
	defer end(&err)

	if _, err := r.state.activeCourse(id); err != nil {
		return err
	}
	return r.commit(ctx, EventCourseDeleted, entityRef{ID: id})
}

// GetCourse returns a course whether or not it is live.
func (r *Registry) GetCourse(ctx context.Context, id uint64) (c Course, err error) {
	_, end := r.begin(ctx, "GetCourse", attribute.Int64("registry.course_id", int64(id)))
	defer end(&err)

	course, err := r.state.course(id)
	if err != nil {
		return Course{}, err
	}
	return *course, nil
}

// ListCourses returns every course id ever minted.
func (r *Registry) ListCourses(ctx context.Context) []uint64 {
	_, end := r.begin(ctx, "ListCourses")
	defer end(nil)

	return denseIDs(len(r.state.courses))
}

func denseIDs(n int) []uint64 {
	ids := make([]uint64, n)
	for i := range ids {
		ids[i] = uint64(i)
	}
	return ids
}
