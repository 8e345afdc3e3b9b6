package domain

import (
	"fmt"

	"github.com/louisbranch/registrar/internal/platform/codec"
	"github.com/louisbranch/registrar/internal/services/registry/storage"
)

// Event types written to the journal. Values are persisted; never rename.
const (
	EventUserRegistered            = "user.registered"
	EventCourseCreated             = "course.created"
	EventCourseUpdated             = "course.updated"
	EventCourseDeleted             = "course.deleted"
	EventClassroomCreated          = "classroom.created"
	EventClassroomUpdated          = "classroom.updated"
	EventClassroomDeleted          = "classroom.deleted"
	EventScheduleAdded             = "schedule.added"
	EventScheduleUpdated           = "schedule.updated"
	EventScheduleClassroomAssigned = "schedule.classroom_assigned"
	EventScheduleDeleted           = "schedule.deleted"
	EventEnrollmentRegistered      = "enrollment.registered"
)

type userRegistered struct {
	Principal string `cbor:"principal"`
	Role      Role   `cbor:"role"`
}

type courseFields struct {
	ID          uint64 `cbor:"id"`
	Name        string `cbor:"name"`
	Description string `cbor:"description"`
	Credits     uint32 `cbor:"credits"`
}

type classroomFields struct {
	ID       uint64 `cbor:"id"`
	Name     string `cbor:"name"`
	Location string `cbor:"location"`
	Capacity uint32 `cbor:"capacity"`
}

type entityRef struct {
	ID uint64 `cbor:"id"`
}

type scheduleAdded struct {
	GlobalID   uint64     `cbor:"global_id"`
	CourseID   uint64     `cbor:"course_id"`
	LocalIndex uint64     `cbor:"local_index"`
	Slot       slotFields `cbor:"slot"`
}

type slotFields struct {
	Day         int    `cbor:"day"`
	StartHour   int    `cbor:"start"`
	EndHour     int    `cbor:"end"`
	ClassroomID uint64 `cbor:"classroom_id"`
}

type scheduleUpdated struct {
	GlobalID uint64     `cbor:"global_id"`
	Slot     slotFields `cbor:"slot"`
}

type classroomAssigned struct {
	GlobalID    uint64 `cbor:"global_id"`
	ClassroomID uint64 `cbor:"classroom_id"`
}

type enrollmentRegistered struct {
	Principal string   `cbor:"principal"`
	CourseIDs []uint64 `cbor:"course_ids"`
}

func toSlotFields(s Slot) slotFields {
	return slotFields{Day: s.Day, StartHour: s.StartHour, EndHour: s.EndHour, ClassroomID: s.ClassroomID}
}

func (f slotFields) applyTo(sch *Schedule) {
	sch.Day = f.Day
	sch.StartHour = f.StartHour
	sch.EndHour = f.EndHour
	sch.ClassroomID = f.ClassroomID
}

// Apply folds one journal event into the state. Events must arrive in
// sequence; structural inconsistencies (wrong ids, unknown references) are
// reported instead of applied.
func (s *State) Apply(evt storage.Event) error {
	if evt.Seq != s.lastSeq+1 {
		return fmt.Errorf("event sequence gap: expected %d got %d", s.lastSeq+1, evt.Seq)
	}
	if err := s.applyPayload(evt.Type, evt.Payload); err != nil {
		return fmt.Errorf("apply %s seq=%d: %w", evt.Type, evt.Seq, err)
	}
	s.lastSeq = evt.Seq
	return nil
}

func (s *State) applyPayload(eventType string, payload []byte) error {
	switch eventType {
	case EventUserRegistered:
		var p userRegistered
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		if _, exists := s.users[p.Principal]; exists {
			return fmt.Errorf("principal %q already registered", p.Principal)
		}
		s.users[p.Principal] = User{Principal: p.Principal, Role: p.Role, IsActive: true}

	case EventCourseCreated:
		var p courseFields
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		if p.ID != uint64(len(s.courses)) {
			return fmt.Errorf("course id %d out of order", p.ID)
		}
		s.courses = append(s.courses, Course{ID: p.ID, Name: p.Name, Description: p.Description, Credits: p.Credits, IsActive: true})

	case EventCourseUpdated:
		var p courseFields
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		c, err := s.course(p.ID)
		if err != nil {
			return err
		}
		c.Name, c.Description, c.Credits = p.Name, p.Description, p.Credits

	case EventCourseDeleted:
		var p entityRef
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		c, err := s.course(p.ID)
		if err != nil {
			return err
		}
		c.IsActive = false

	case EventClassroomCreated:
		var p classroomFields
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		if p.ID != uint64(len(s.classrooms)) {
			return fmt.Errorf("classroom id %d out of order", p.ID)
		}
		s.classrooms = append(s.classrooms, Classroom{ID: p.ID, Name: p.Name, Location: p.Location, Capacity: p.Capacity, IsActive: true})

	case EventClassroomUpdated:
		var p classroomFields
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		c, err := s.classroom(p.ID)
		if err != nil {
			return err
		}
		c.Name, c.Location, c.Capacity = p.Name, p.Location, p.Capacity

	case EventClassroomDeleted:
		var p entityRef
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		c, err := s.classroom(p.ID)
		if err != nil {
			return err
		}
		c.IsActive = false

	case EventScheduleAdded:
		var p scheduleAdded
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		c, err := s.course(p.CourseID)
		if err != nil {
			return err
		}
		if p.GlobalID != uint64(len(s.schedules)) {
			return fmt.Errorf("schedule id %d out of order", p.GlobalID)
		}
		if p.LocalIndex != c.ScheduleCount+1 {
			return fmt.Errorf("local index %d out of order for course %d", p.LocalIndex, p.CourseID)
		}
		c.ScheduleCount = p.LocalIndex
		sch := Schedule{GlobalID: p.GlobalID, LocalIndex: p.LocalIndex, CourseID: p.CourseID, IsActive: true}
		p.Slot.applyTo(&sch)
		s.schedules = append(s.schedules, sch)
		s.scheduleIndex[scheduleKey{courseID: p.CourseID, localIndex: p.LocalIndex}] = p.GlobalID

	case EventScheduleUpdated:
		var p scheduleUpdated
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		sch, err := s.scheduleByGlobalID(p.GlobalID)
		if err != nil {
			return err
		}
		p.Slot.applyTo(sch)

	case EventScheduleClassroomAssigned:
		var p classroomAssigned
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		sch, err := s.scheduleByGlobalID(p.GlobalID)
		if err != nil {
			return err
		}
		sch.ClassroomID = p.ClassroomID

	case EventScheduleDeleted:
		var p entityRef
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		sch, err := s.scheduleByGlobalID(p.ID)
		if err != nil {
			return err
		}
		sch.IsActive = false

	case EventEnrollmentRegistered:
		var p enrollmentRegistered
		if err := codec.Unmarshal(payload, &p); err != nil {
			return err
		}
		if _, ok := s.users[p.Principal]; !ok {
			return fmt.Errorf("principal %q not registered", p.Principal)
		}
		s.enrollments[p.Principal] = append(s.enrollments[p.Principal], p.CourseIDs...)

	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}
	return nil
}

func (s *State) scheduleByGlobalID(id uint64) (*Schedule, error) {
	if id >= uint64(len(s.schedules)) {
		return nil, errScheduleIDInvalid()
	}
	return &s.schedules[id], nil
}
