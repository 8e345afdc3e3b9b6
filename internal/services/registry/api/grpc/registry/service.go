// Package registry exposes the course registry over gRPC.
package registry

import (
	"context"

	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	"github.com/louisbranch/registrar/internal/platform/requestctx"
	"github.com/louisbranch/registrar/internal/services/registry/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service implements registrar.v1.RegistryService on top of a
// domain.Registry. The caller principal is whatever the identity
// interceptor stored in context.
type Service struct {
	registry *domain.Registry
}

var _ RegistryServer = (*Service)(nil)

// NewService wraps registry.
func NewService(registry *domain.Registry) *Service {
	return &Service{registry: registry}
}

func (s *Service) RegisterUser(ctx context.Context, in *RegisterUserRequest) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "register user request is required")
	}
	if err := s.registry.RegisterUser(ctx, in.Principal, domain.Role(in.Role)); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) GetUser(ctx context.Context, in *PrincipalRequest) (*User, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get user request is required")
	}
	u, err := s.registry.GetUser(ctx, in.Principal)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &User{Principal: u.Principal, Role: uint8(u.Role), IsActive: u.IsActive}, nil
}

func (s *Service) IsRegistered(ctx context.Context, in *PrincipalRequest) (*IsRegisteredResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "is registered request is required")
	}
	return &IsRegisteredResponse{Registered: s.registry.IsRegistered(ctx, in.Principal)}, nil
}

func (s *Service) CreateCourse(ctx context.Context, in *CourseFields) (*IDResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "create course request is required")
	}
	id, err := s.registry.CreateCourse(ctx, in.Name, in.Description, in.Credits)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &IDResponse{ID: id}, nil
}

func (s *Service) UpdateCourse(ctx context.Context, in *UpdateCourseRequest) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "update course request is required")
	}
	if err := s.registry.UpdateCourse(ctx, in.ID, in.Fields.Name, in.Fields.Description, in.Fields.Credits); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) DeleteCourse(ctx context.Context, in *IDRequest) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "delete course request is required")
	}
	if err := s.registry.DeleteCourse(ctx, in.ID); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) GetCourse(ctx context.Context, in *IDRequest) (*Course, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get course request is required")
	}
	c, err := s.registry.GetCourse(ctx, in.ID)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return courseToWire(c), nil
}

func (s *Service) ListCourses(ctx context.Context, _ *Empty) (*IDList, error) {
	return &IDList{IDs: s.registry.ListCourses(ctx)}, nil
}

func (s *Service) CreateClassroom(ctx context.Context, in *ClassroomFields) (*IDResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "create classroom request is required")
	}
	id, err := s.registry.CreateClassroom(ctx, in.Name, in.Location, in.Capacity)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &IDResponse{ID: id}, nil
}

func (s *Service) UpdateClassroom(ctx context.Context, in *UpdateClassroomRequest) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "update classroom request is required")
	}
	if err := s.registry.UpdateClassroom(ctx, in.ID, in.Fields.Name, in.Fields.Location, in.Fields.Capacity); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) DeleteClassroom(ctx context.Context, in *IDRequest) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "delete classroom request is required")
	}
	if err := s.registry.DeleteClassroom(ctx, in.ID); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) GetClassroom(ctx context.Context, in *IDRequest) (*Classroom, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get classroom request is required")
	}
	c, err := s.registry.GetClassroom(ctx, in.ID)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Classroom{ID: c.ID, Name: c.Name, Location: c.Location, Capacity: c.Capacity, IsActive: c.IsActive}, nil
}

func (s *Service) ListClassrooms(ctx context.Context, _ *Empty) (*IDList, error) {
	return &IDList{IDs: s.registry.ListClassrooms(ctx)}, nil
}

func (s *Service) AddSchedule(ctx context.Context, in *AddScheduleRequest) (*AddScheduleResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "add schedule request is required")
	}
	local, global, err := s.registry.AddSchedule(ctx, in.CourseID, slotFromWire(in.Slot))
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &AddScheduleResponse{LocalIndex: local, GlobalID: global}, nil
}

func (s *Service) GetSchedule(ctx context.Context, in *ScheduleAddress) (*Schedule, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get schedule request is required")
	}
	sch, err := s.registry.GetSchedule(ctx, in.CourseID, in.LocalIndex)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return scheduleToWire(sch), nil
}

func (s *Service) GetScheduleByID(ctx context.Context, in *IDRequest) (*ScheduleDetail, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get schedule request is required")
	}
	d, err := s.registry.GetScheduleByID(ctx, in.ID)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &ScheduleDetail{
		GlobalID:       d.GlobalID,
		Day:            d.Day,
		StartHour:      d.StartHour,
		EndHour:        d.EndHour,
		CourseName:     d.CourseName,
		CourseIsActive: d.CourseIsActive,
		ClassroomID:    d.ClassroomID,
	}, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, in *UpdateScheduleRequest) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "update schedule request is required")
	}
	if err := s.registry.UpdateSchedule(ctx, in.Address.CourseID, in.Address.LocalIndex, slotFromWire(in.Slot)); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) AssignClassroomToSchedule(ctx context.Context, in *AssignClassroomRequest) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "assign classroom request is required")
	}
	if err := s.registry.AssignClassroomToSchedule(ctx, in.Address.CourseID, in.Address.LocalIndex, in.ClassroomID); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, in *ScheduleAddress) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "delete schedule request is required")
	}
	if err := s.registry.DeleteSchedule(ctx, in.CourseID, in.LocalIndex); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) ListAllSchedules(ctx context.Context, _ *Empty) (*IDList, error) {
	return &IDList{IDs: s.registry.ListAllSchedules(ctx)}, nil
}

func (s *Service) RegisterStudentInCourses(ctx context.Context, in *EnrollRequest) (*Empty, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "enroll request is required")
	}
	if err := s.registry.RegisterStudentInCourses(ctx, in.CourseIDs); err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &Empty{}, nil
}

func (s *Service) GetStudentCourses(ctx context.Context, in *PrincipalRequest) (*IDList, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "student courses request is required")
	}
	ids, err := s.registry.GetStudentCourses(ctx, in.Principal)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}
	return &IDList{IDs: ids}, nil
}

func handleDomainError(ctx context.Context, err error) error {
	return apperrors.HandleError(err, requestctx.LocaleName(ctx))
}

func courseToWire(c domain.Course) *Course {
	return &Course{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Credits:       c.Credits,
		IsActive:      c.IsActive,
		ScheduleCount: c.ScheduleCount,
	}
}

func scheduleToWire(s domain.Schedule) *Schedule {
	return &Schedule{
		GlobalID:    s.GlobalID,
		LocalIndex:  s.LocalIndex,
		CourseID:    s.CourseID,
		Day:         s.Day,
		StartHour:   s.StartHour,
		EndHour:     s.EndHour,
		ClassroomID: s.ClassroomID,
		IsActive:    s.IsActive,
	}
}

func slotFromWire(s Slot) domain.Slot {
	return domain.Slot{Day: s.Day, StartHour: s.StartHour, EndHour: s.EndHour, ClassroomID: s.ClassroomID}
}
