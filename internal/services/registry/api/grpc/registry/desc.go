package registry

import (
	"context"

	"github.com/louisbranch/registrar/internal/platform/codec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "registrar.v1.RegistryService"

const (
	MethodRegisterUser              = "RegisterUser"
	MethodGetUser                   = "GetUser"
	MethodIsRegistered              = "IsRegistered"
	MethodCreateCourse              = "CreateCourse"
	MethodUpdateCourse              = "UpdateCourse"
	MethodDeleteCourse              = "DeleteCourse"
	MethodGetCourse                 = "GetCourse"
	MethodListCourses               = "ListCourses"
	MethodCreateClassroom           = "CreateClassroom"
	MethodUpdateClassroom           = "UpdateClassroom"
	MethodDeleteClassroom           = "DeleteClassroom"
	MethodGetClassroom              = "GetClassroom"
	MethodListClassrooms            = "ListClassrooms"
	MethodAddSchedule               = "AddSchedule"
	MethodGetSchedule               = "GetSchedule"
	MethodGetScheduleByID           = "GetScheduleByID"
	MethodUpdateSchedule            = "UpdateSchedule"
	MethodAssignClassroomToSchedule = "AssignClassroomToSchedule"
	MethodDeleteSchedule            = "DeleteSchedule"
	MethodListAllSchedules          = "ListAllSchedules"
	MethodRegisterStudentInCourses  = "RegisterStudentInCourses"
	MethodGetStudentCourses         = "GetStudentCourses"
)

func init() {
	encoding.RegisterCodec(codec.GRPC{})
}

// FullMethod returns the gRPC path of a service method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// RegistryServer is the server API for registrar.v1.RegistryService.
type RegistryServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*Empty, error)
	GetUser(context.Context, *PrincipalRequest) (*User, error)
	IsRegistered(context.Context, *PrincipalRequest) (*IsRegisteredResponse, error)

	CreateCourse(context.Context, *CourseFields) (*IDResponse, error)
	UpdateCourse(context.Context, *UpdateCourseRequest) (*Empty, error)
	DeleteCourse(context.Context, *IDRequest) (*Empty, error)
	GetCourse(context.Context, *IDRequest) (*Course, error)
	ListCourses(context.Context, *Empty) (*IDList, error)

	CreateClassroom(context.Context, *ClassroomFields) (*IDResponse, error)
	UpdateClassroom(context.Context, *UpdateClassroomRequest) (*Empty, error)
	DeleteClassroom(context.Context, *IDRequest) (*Empty, error)
	GetClassroom(context.Context, *IDRequest) (*Classroom, error)
	ListClassrooms(context.Context, *Empty) (*IDList, error)

	AddSchedule(context.Context, *AddScheduleRequest) (*AddScheduleResponse, error)
	GetSchedule(context.Context, *ScheduleAddress) (*Schedule, error)
	GetScheduleByID(context.Context, *IDRequest) (*ScheduleDetail, error)
	UpdateSchedule(context.Context, *UpdateScheduleRequest) (*Empty, error)
	AssignClassroomToSchedule(context.Context, *AssignClassroomRequest) (*Empty, error)
	DeleteSchedule(context.Context, *ScheduleAddress) (*Empty, error)
	ListAllSchedules(context.Context, *Empty) (*IDList, error)

	RegisterStudentInCourses(context.Context, *EnrollRequest) (*Empty, error)
	GetStudentCourses(context.Context, *PrincipalRequest) (*IDList, error)
}

// RegisterRegistryServer registers srv on s.
func RegisterRegistryServer(s grpc.ServiceRegistrar, srv RegistryServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes registrar.v1.RegistryService. Messages are plain
// structs, so clients must select the CBOR content-subtype.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegisterUser, RegistryServer.RegisterUser),
		unary(MethodGetUser, RegistryServer.GetUser),
		unary(MethodIsRegistered, RegistryServer.IsRegistered),
		unary(MethodCreateCourse, RegistryServer.CreateCourse),
		unary(MethodUpdateCourse, RegistryServer.UpdateCourse),
		unary(MethodDeleteCourse, RegistryServer.DeleteCourse),
		unary(MethodGetCourse, RegistryServer.GetCourse),
		unary(MethodListCourses, RegistryServer.ListCourses),
		unary(MethodCreateClassroom, RegistryServer.CreateClassroom),
		unary(MethodUpdateClassroom, RegistryServer.UpdateClassroom),
		unary(MethodDeleteClassroom, RegistryServer.DeleteClassroom),
		unary(MethodGetClassroom, RegistryServer.GetClassroom),
		unary(MethodListClassrooms, RegistryServer.ListClassrooms),
		unary(MethodAddSchedule, RegistryServer.AddSchedule),
		unary(MethodGetSchedule, RegistryServer.GetSchedule),
		unary(MethodGetScheduleByID, RegistryServer.GetScheduleByID),
		unary(MethodUpdateSchedule, RegistryServer.UpdateSchedule),
		unary(MethodAssignClassroomToSchedule, RegistryServer.AssignClassroomToSchedule),
		unary(MethodDeleteSchedule, RegistryServer.DeleteSchedule),
		unary(MethodListAllSchedules, RegistryServer.ListAllSchedules),
		unary(MethodRegisterStudentInCourses, RegistryServer.RegisterStudentInCourses),
		unary(MethodGetStudentCourses, RegistryServer.GetStudentCourses),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "registrar/v1/registry.cbor",
}

// unary builds the method descriptor for one RegistryServer method, the way
// protoc-gen-go-grpc would generate it.
func unary[Req, Resp any](name string, call func(RegistryServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(RegistryServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
