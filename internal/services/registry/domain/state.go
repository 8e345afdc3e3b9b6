package domain

type scheduleKey struct {
	courseID   uint64
	localIndex uint64
}

// State is the whole registry: append-only arenas plus the indices over
// them. It is owned by one Registry and only touched under its lock.
type State struct {
	users         map[string]User
	courses       []Course
	classrooms    []Classroom
	schedules     []Schedule
	scheduleIndex map[scheduleKey]uint64
	enrollments   map[string][]uint64
	lastSeq       uint64
}

// NewState returns an empty registry state.
func NewState() *State {
	return &State{
		users:         map[string]User{},
		scheduleIndex: map[scheduleKey]uint64{},
		enrollments:   map[string][]uint64{},
	}
}

// LastSeq returns the sequence of the last applied event.
func (s *State) LastSeq() uint64 {
	return s.lastSeq
}

// course resolves a course id that must exist.
func (s *State) course(id uint64) (*Course, error) {
	if id >= uint64(len(s.courses)) {
		return nil, errCourseIDInvalid()
	}
	return &s.courses[id], nil
}

// activeCourse resolves a course id that must exist and be live.
func (s *State) activeCourse(id uint64) (*Course, error) {
	c, err := s.course(id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, errCourseInactive()
	}
	return c, nil
}

func (s *State) classroom(id uint64) (*Classroom, error) {
	if id >= uint64(len(s.classrooms)) {
		return nil, errClassroomIDInvalid()
	}
	return &s.classrooms[id], nil
}

func (s *State) activeClassroom(id uint64) (*Classroom, error) {
	c, err := s.classroom(id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, errClassroomInactive()
	}
	return c, nil
}

// scheduleAt resolves a (course, local index) address. The course only has
// to exist; its liveness does not matter.
func (s *State) scheduleAt(courseID, localIndex uint64) (*Schedule, error) {
	if _, err := s.course(courseID); err != nil {
		return nil, err
	}
	globalID, ok := s.scheduleIndex[scheduleKey{courseID: courseID, localIndex: localIndex}]
	if !ok {
		return nil, errScheduleIDInvalid()
	}
	return &s.schedules[globalID], nil
}

// activeScheduleAt resolves an address whose schedule must still be live.
func (s *State) activeScheduleAt(courseID, localIndex uint64) (*Schedule, error) {
	sch, err := s.scheduleAt(courseID, localIndex)
	if err != nil {
		return nil, err
	}
	if !sch.IsActive {
		return nil, errScheduleInactive()
	}
	return sch, nil
}

// validateSlot runs the day, hour and classroom checks shared by schedule
// creation and update, in that order.
func (s *State) validateSlot(slot Slot) error {
	if slot.Day < 1 || slot.Day > 7 {
		return errDayInvalid()
	}
	if slot.StartHour < 0 || slot.EndHour >= 24 || slot.StartHour >= slot.EndHour {
		return errHoursInvalid()
	}
	_, err := s.activeClassroom(slot.ClassroomID)
	return err
}

// student resolves a principal that must be registered as a student.
func (s *State) student(principal string, notStudent func() error) (User, error) {
	u, ok := s.users[principal]
	if !ok {
		return User{}, errUserNotRegistered()
	}
	if u.Role != RoleStudent {
		return User{}, notStudent()
	}
	return u, nil
}

func (s *State) isAdmin(principal string) bool {
	u, ok := s.users[principal]
	return ok && u.Role == RoleAdmin
}

func (s *State) isEnrolled(principal string, courseID uint64) bool {
	for _, id := range s.enrollments[principal] {
		if id == courseID {
			return true
		}
	}
	return false
}
