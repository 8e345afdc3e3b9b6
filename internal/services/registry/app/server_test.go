package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	platformgrpc "github.com/louisbranch/registrar/internal/platform/grpc"
	registryservice "github.com/louisbranch/registrar/internal/services/registry/api/grpc/registry"
	"github.com/louisbranch/registrar/internal/services/registry/domain"
	"github.com/louisbranch/registrar/internal/services/shared/grpcauthctx"
)

func startServer(t *testing.T, cfg Config) *registryservice.Client {
	t.Helper()
	srv, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()

	conn, err := platformgrpc.DialWithHealth(context.Background(), nil, "registrar", srv.Addr(), 2*time.Second, nil, platformgrpc.ClientDialOptions()...)
	if err != nil {
		runCancel()
		t.Fatalf("dial registry server: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Errorf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Error("timeout waiting for server shutdown")
		}
	})
	return registryservice.NewClient(conn)
}

func TestServerPersistsAcrossRestarts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "registrar.db")
	cfg := Config{Addr: "127.0.0.1:0", DBPath: dbPath, BootstrapAdmin: "0xadmin"}

	t.Run("first boot", func(t *testing.T) {
		client := startServer(t, cfg)
		admin := grpcauthctx.WithPrincipal(context.Background(), "0xadmin")

		if _, err := client.CreateClassroom(admin, registryservice.ClassroomFields{Name: "Default", Location: "Campus", Capacity: 40}); err != nil {
			t.Fatalf("create classroom as bootstrap admin: %v", err)
		}
		if _, err := client.CreateCourse(admin, registryservice.CourseFields{Name: "Programacion I", Description: "Curso de programacion I", Credits: 4}); err != nil {
			t.Fatalf("create course: %v", err)
		}
		if _, _, err := client.AddSchedule(admin, 0, registryservice.Slot{Day: 1, StartHour: 8, EndHour: 10}); err != nil {
			t.Fatalf("add schedule: %v", err)
		}
	})

	t.Run("second boot replays journal", func(t *testing.T) {
		client := startServer(t, cfg)
		ctx := context.Background()

		u, err := client.GetUser(ctx, "0xadmin")
		if err != nil {
			t.Fatalf("get bootstrap admin: %v", err)
		}
		if u.Role != uint8(domain.RoleAdmin) {
			t.Fatalf("role = %d, want admin", u.Role)
		}
		course, err := client.GetCourse(ctx, 0)
		if err != nil {
			t.Fatalf("get course: %v", err)
		}
		if course.Name != "Programacion I" || course.ScheduleCount != 1 {
			t.Fatalf("course = %+v", course)
		}
		ids, err := client.ListAllSchedules(ctx)
		if err != nil || len(ids) != 1 {
			t.Fatalf("schedules = (%v, %v)", ids, err)
		}
	})
}

func TestNewRejectsBusyAddress(t *testing.T) {
	cfg := Config{Addr: "127.0.0.1:0", DBPath: filepath.Join(t.TempDir(), "a.db")}
	srv, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer srv.Close()

	cfg.Addr = srv.Addr()
	cfg.DBPath = filepath.Join(t.TempDir(), "b.db")
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected listen error for busy address")
	}
}

func TestServeNilServer(t *testing.T) {
	var s *Server
	if err := s.Serve(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
	if s.Addr() != "" {
		t.Fatal("expected empty addr for nil server")
	}
}

func TestDrainStopsIdleServer(t *testing.T) {
	srv, err := New(context.Background(), Config{Addr: "127.0.0.1:0", DBPath: filepath.Join(t.TempDir(), "r.db")})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer srv.Close()

	served := make(chan error, 1)
	go func() { served <- srv.grpcServer.Serve(srv.listener) }()

	done := make(chan struct{})
	go func() {
		srv.drain(time.Second)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("drain did not return")
	}
	select {
	case <-served:
	case <-time.After(time.Second):
		t.Fatal("serve did not return after drain")
	}
}
