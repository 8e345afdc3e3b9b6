package domain

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// RegisterStudentInCourses enrolls the calling student in every course of
// the batch, or in none of them. The whole batch is validated before the
// single enrollment event is committed.
func (r *Registry) RegisterStudentInCourses(ctx context.Context, courseIDs []uint64) (err error) {
	ctx, end := r.begin(ctx, "RegisterStudentInCourses", attribute.Int("registry.batch_size", len(courseIDs)))
	defer end(&err)

	principal := caller(ctx)
	if _, err := r.state.student(principal, errStudentRequired); err != nil {
		return err
	}

	seen := make(map[uint64]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		if _, err := r.state.activeCourse(id); err != nil {
			return err
		}
		if _, dup := seen[id]; dup || r.state.isEnrolled(principal, id) {
			return errEnrollmentDuplicate()
		}
		seen[id] = struct{}{}
	}
	if len(courseIDs) == 0 {
		return nil
	}
	batch := append([]uint64(nil), courseIDs...)
	return r.commit(ctx, EventEnrollmentRegistered, enrollmentRegistered{Principal: principal, CourseIDs: batch})
}

// GetStudentCourses returns the courses principal enrolled in, in the order
// they were added.
func (r *Registry) GetStudentCourses(ctx context.Context, principal string) (ids []uint64, err error) {
	_, end := r.begin(ctx, "GetStudentCourses")
	defer end(&err)

	if _, err := r.state.student(principal, errListStudentRequired); err != nil {
		return nil, err
	}
	enrolled := r.state.enrollments[principal]
	ids = make([]uint64, len(enrolled))
	copy(ids, enrolled)
	return ids, nil
}
