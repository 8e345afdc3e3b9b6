package seed

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	platformgrpc "github.com/louisbranch/registrar/internal/platform/grpc"
	registryservice "github.com/louisbranch/registrar/internal/services/registry/api/grpc/registry"
	server "github.com/louisbranch/registrar/internal/services/registry/app"
	"github.com/louisbranch/registrar/internal/services/registry/domain"
)

func TestApplyCreatesInOrder(t *testing.T) {
	fx, err := DefaultFixture()
	if err != nil {
		t.Fatalf("default fixture: %v", err)
	}
	reg := &fakeRegistry{}

	var lines []string
	res, err := Apply(context.Background(), reg, fx, ApplyOptions{Logf: func(format string, args ...any) {
		lines = append(lines, format)
	}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(reg.classrooms) != 1 || res.ClassroomID != 0 {
		t.Fatalf("classrooms = %d, id = %d", len(reg.classrooms), res.ClassroomID)
	}
	if len(res.CourseIDs) != 21 || res.CourseIDs[0] != 100 {
		t.Fatalf("course ids = %v", res.CourseIDs)
	}
	if len(res.ScheduleIDs) != 16 {
		t.Fatalf("schedule ids = %v", res.ScheduleIDs)
	}
	first := reg.schedules[0]
	if first.courseID != 100 || first.slot.StartHour != 8 || first.slot.EndHour != 10 || first.slot.ClassroomID != 0 {
		t.Fatalf("first schedule = %+v", first)
	}
	if got := reg.schedules[3]; got.courseID != 101 || got.slot.StartHour != 6 {
		t.Fatalf("fourth schedule = %+v", got)
	}
	if len(lines) != 1+21+16 {
		t.Fatalf("log lines = %d", len(lines))
	}
	for i, ok := range reg.deadlines {
		if !ok {
			t.Fatalf("call %d ran without a deadline", i)
		}
	}
}

func TestApplyBoundsEachCall(t *testing.T) {
	fx, err := DefaultFixture()
	if err != nil {
		t.Fatalf("default fixture: %v", err)
	}
	reg := &fakeRegistry{blockCourse: "Algebra Lineal"}

	start := time.Now()
	res, err := Apply(context.Background(), reg, fx, ApplyOptions{CallTimeout: 50 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if !strings.Contains(err.Error(), `create course "Algebra Lineal"`) {
		t.Fatalf("err = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("blocked call took %v", elapsed)
	}
	if len(res.CourseIDs) != 1 {
		t.Fatalf("course ids = %v, want only the course before the stuck call", res.CourseIDs)
	}
}

func TestApplyRegistersUsersFirst(t *testing.T) {
	fx := Fixture{
		Users:   []UserFixture{{Principal: "0xprof", Role: "professor"}, {Principal: "0xadmin2", Role: "admin"}},
		Courses: []CourseFixture{{Name: "Compiladores", Credits: 4}},
	}
	reg := &fakeRegistry{}
	if _, err := Apply(context.Background(), reg, fx, ApplyOptions{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := []registeredUser{{"0xprof", uint8(domain.RoleProfessor)}, {"0xadmin2", uint8(domain.RoleAdmin)}}
	if !reflect.DeepEqual(reg.users, want) {
		t.Fatalf("users = %+v, want %+v", reg.users, want)
	}
	if len(reg.classrooms) != 0 {
		t.Fatalf("classroom created without a fixture classroom")
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	fx, err := DefaultFixture()
	if err != nil {
		t.Fatalf("default fixture: %v", err)
	}
	reg := &fakeRegistry{failCourse: "Fisica I"}

	res, err := Apply(context.Background(), reg, fx, ApplyOptions{})
	if err == nil || !strings.Contains(err.Error(), `create course "Fisica I"`) {
		t.Fatalf("err = %v", err)
	}
	if len(res.CourseIDs) != 2 {
		t.Fatalf("course ids = %v, want two created before failure", res.CourseIDs)
	}
	if len(reg.schedules) != 0 {
		t.Fatalf("schedules added after failure: %d", len(reg.schedules))
	}
}

func TestApplyRequiresRegistry(t *testing.T) {
	if _, err := Apply(context.Background(), nil, Fixture{}, ApplyOptions{}); err == nil {
		t.Fatal("expected error for nil registry")
	}
}

func TestRunValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "missing addr", cfg: Config{Principal: "0xadmin"}, want: "address is required"},
		{name: "missing caller", cfg: Config{Addr: "127.0.0.1:1"}, want: "principal or token is required"},
		{name: "bad fixture path", cfg: Config{Addr: "127.0.0.1:1", Principal: "0xadmin", FixturePath: "/nonexistent/x.yaml"}, want: "read fixture"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRunAgainstServer(t *testing.T) {
	srv, err := server.New(context.Background(), server.Config{
		Addr:           "127.0.0.1:0",
		DBPath:         filepath.Join(t.TempDir(), "registrar.db"),
		BootstrapAdmin: "0xadmin",
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	cfg := DefaultConfig()
	cfg.Addr = srv.Addr()
	cfg.Principal = "0xadmin"
	cfg.DialTimeout = 5 * time.Second
	res, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if len(res.CourseIDs) != 21 || len(res.ScheduleIDs) != 16 {
		t.Fatalf("result = %+v", res)
	}

	conn, err := platformgrpc.DialWithHealth(context.Background(), nil, "registrar", srv.Addr(), 5*time.Second, nil, platformgrpc.ClientDialOptions()...)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := registryservice.NewClient(conn)

	detail, err := client.GetScheduleByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("get schedule 3: %v", err)
	}
	if detail.CourseName != "Algebra Lineal" || detail.StartHour != 6 {
		t.Fatalf("schedule 3 = %+v", detail)
	}
}

func TestRunAsStudentFails(t *testing.T) {
	srv, err := server.New(context.Background(), server.Config{
		Addr:   "127.0.0.1:0",
		DBPath: filepath.Join(t.TempDir(), "registrar.db"),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	cfg := DefaultConfig()
	cfg.Addr = srv.Addr()
	cfg.Principal = "0xnobody"
	_, err = Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "create classroom") {
		t.Fatalf("err = %v, want classroom creation failure", err)
	}
}
