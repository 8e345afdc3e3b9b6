package registry

import (
	"context"

	"github.com/louisbranch/registrar/internal/platform/codec"
	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
	"google.golang.org/grpc"
)

// Client is a typed client for registrar.v1.RegistryService. Failures that
// carry registry error details come back as *apperrors.Error.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a client over cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.GRPCName)}, opts...)
	return apperrors.FromGRPCError(c.cc.Invoke(ctx, FullMethod(method), in, out, opts...))
}

func (c *Client) RegisterUser(ctx context.Context, principal string, role uint8, opts ...grpc.CallOption) error {
	return c.invoke(ctx, MethodRegisterUser, &RegisterUserRequest{Principal: principal, Role: role}, &Empty{}, opts...)
}

func (c *Client) GetUser(ctx context.Context, principal string, opts ...grpc.CallOption) (*User, error) {
	out := new(User)
	if err := c.invoke(ctx, MethodGetUser, &PrincipalRequest{Principal: principal}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) IsRegistered(ctx context.Context, principal string, opts ...grpc.CallOption) (bool, error) {
	out := new(IsRegisteredResponse)
	if err := c.invoke(ctx, MethodIsRegistered, &PrincipalRequest{Principal: principal}, out, opts...); err != nil {
		return false, err
	}
	return out.Registered, nil
}

func (c *Client) CreateCourse(ctx context.Context, fields CourseFields, opts ...grpc.CallOption) (uint64, error) {
	out := new(IDResponse)
	if err := c.invoke(ctx, MethodCreateCourse, &fields, out, opts...); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id uint64, fields CourseFields, opts ...grpc.CallOption) error {
	return c.invoke(ctx, MethodUpdateCourse, &UpdateCourseRequest{ID: id, Fields: fields}, &Empty{}, opts...)
}

func (c *Client) DeleteCourse(ctx context.Context, id uint64, opts ...grpc.CallOption) error {
	return c.invoke(ctx, MethodDeleteCourse, &IDRequest{ID: id}, &Empty{}, opts...)
}

func (c *Client) GetCourse(ctx context.Context, id uint64, opts ...grpc.CallOption) (*Course, error) {
	out := new(Course)
	if err := c.invoke(ctx, MethodGetCourse, &IDRequest{ID: id}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCourses(ctx context.Context, opts ...grpc.CallOption) ([]uint64, error) {
	out := new(IDList)
	if err := c.invoke(ctx, MethodListCourses, &Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out.IDs, nil
}

func (c *Client) CreateClassroom(ctx context.Context, fields ClassroomFields, opts ...grpc.CallOption) (uint64, error) {
	out := new(IDResponse)
	if err := c.invoke(ctx, MethodCreateClassroom, &fields, out, opts...); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateClassroom(ctx context.Context, id uint64, fields ClassroomFields, opts ...grpc.CallOption) error {
	return c.invoke(ctx, MethodUpdateClassroom, &UpdateClassroomRequest{ID: id, Fields: fields}, &Empty{}, opts...)
}

func (c *Client) DeleteClassroom(ctx context.Context, id uint64, opts ...grpc.CallOption) error {
	return c.invoke(ctx, MethodDeleteClassroom, &IDRequest{ID: id}, &Empty{}, opts...)
}

func (c *Client) GetClassroom(ctx context.Context, id uint64, opts ...grpc.CallOption) (*Classroom, error) {
	out := new(Classroom)
	if err := c.invoke(ctx, MethodGetClassroom, &IDRequest{ID: id}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListClassrooms(ctx context.Context, opts ...grpc.CallOption) ([]uint64, error) {
	out := new(IDList)
	if err := c.invoke(ctx, MethodListClassrooms, &Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out.IDs, nil
}

// AddSchedule returns the new schedule's local index and global id.
func (c *Client) AddSchedule(ctx context.Context, courseID uint64, slot Slot, opts ...grpc.CallOption) (uint64, uint64, error) {
	out := new(AddScheduleResponse)
	if err := c.invoke(ctx, MethodAddSchedule, &AddScheduleRequest{CourseID: courseID, Slot: slot}, out, opts...); err != nil {
		return 0, 0, err
	}
	return out.LocalIndex, out.GlobalID, nil
}

func (c *Client) GetSchedule(ctx context.Context, courseID, localIndex uint64, opts ...grpc.CallOption) (*Schedule, error) {
	out := new(Schedule)
	if err := c.invoke(ctx, MethodGetSchedule, &ScheduleAddress{CourseID: courseID, LocalIndex: localIndex}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetScheduleByID(ctx context.Context, globalID uint64, opts ...grpc.CallOption) (*ScheduleDetail, error) {
	out := new(ScheduleDetail)
	if err := c.invoke(ctx, MethodGetScheduleByID, &IDRequest{ID: globalID}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateSchedule(ctx context.Context, courseID, localIndex uint64, slot Slot, opts ...grpc.CallOption) error {
	in := &UpdateScheduleRequest{Address: ScheduleAddress{CourseID: courseID, LocalIndex: localIndex}, Slot: slot}
	return c.invoke(ctx, MethodUpdateSchedule, in, &Empty{}, opts...)
}

func (c *Client) AssignClassroomToSchedule(ctx context.Context, courseID, localIndex, classroomID uint64, opts ...grpc.CallOption) error {
	in := &AssignClassroomRequest{Address: ScheduleAddress{CourseID: courseID, LocalIndex: localIndex}, ClassroomID: classroomID}
	return c.invoke(ctx, MethodAssignClassroomToSchedule, in, &Empty{}, opts...)
}

func (c *Client) DeleteSchedule(ctx context.Context, courseID, localIndex uint64, opts ...grpc.CallOption) error {
	return c.invoke(ctx, MethodDeleteSchedule, &ScheduleAddress{CourseID: courseID, LocalIndex: localIndex}, &Empty{}, opts...)
}

func (c *Client) ListAllSchedules(ctx context.Context, opts ...grpc.CallOption) ([]uint64, error) {
	out := new(IDList)
	if err := c.invoke(ctx, MethodListAllSchedules, &Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out.IDs, nil
}

func (c *Client) RegisterStudentInCourses(ctx context.Context, courseIDs []uint64, opts ...grpc.CallOption) error {
	return c.invoke(ctx, MethodRegisterStudentInCourses, &EnrollRequest{CourseIDs: courseIDs}, &Empty{}, opts...)
}

func (c *Client) GetStudentCourses(ctx context.Context, principal string, opts ...grpc.CallOption) ([]uint64, error) {
	out := new(IDList)
	if err := c.invoke(ctx, MethodGetStudentCourses, &PrincipalRequest{Principal: principal}, out, opts...); err != nil {
		return nil, err
	}
	return out.IDs, nil
}
