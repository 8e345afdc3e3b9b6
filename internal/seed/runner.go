package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/registrar/internal/platform/discovery"
	platformgrpc "github.com/louisbranch/registrar/internal/platform/grpc"
	"github.com/louisbranch/registrar/internal/platform/timeouts"
	registryservice "github.com/louisbranch/registrar/internal/services/registry/api/grpc/registry"
	"github.com/louisbranch/registrar/internal/services/registry/domain"
	"github.com/louisbranch/registrar/internal/services/shared/grpcauthctx"
	gogrpc "google.golang.org/grpc"
)

// Registry is the subset of the registry client the seeder calls.
type Registry interface {
	RegisterUser(ctx context.Context, principal string, role uint8, opts ...gogrpc.CallOption) error
	CreateClassroom(ctx context.Context, fields registryservice.ClassroomFields, opts ...gogrpc.CallOption) (uint64, error)
	CreateCourse(ctx context.Context, fields registryservice.CourseFields, opts ...gogrpc.CallOption) (uint64, error)
	AddSchedule(ctx context.Context, courseID uint64, slot registryservice.Slot, opts ...gogrpc.CallOption) (uint64, uint64, error)
}

// Config holds seed runner configuration.
type Config struct {
	Addr        string
	Principal   string
	Token       string
	FixturePath string
	DialTimeout time.Duration
	CallTimeout time.Duration
	Verbose     bool
	Logf        func(string, ...any)
}

// DefaultConfig returns configuration with common defaults.
func DefaultConfig() Config {
	return Config{
		Addr:        discovery.DefaultGRPCAddr(discovery.ServiceRegistrar),
		DialTimeout: timeouts.GRPCDial,
		CallTimeout: timeouts.GRPCRequest,
	}
}

// Result reports what a seeding run created.
type Result struct {
	ClassroomID uint64
	CourseIDs   []uint64
	ScheduleIDs []uint64
}

// Run dials the registry and applies the configured fixture.
func Run(ctx context.Context, cfg Config) (Result, error) {
	fx, err := cfg.fixture()
	if err != nil {
		return Result{}, err
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return Result{}, errors.New("registry address is required")
	}
	if strings.TrimSpace(cfg.Principal) == "" && strings.TrimSpace(cfg.Token) == "" {
		return Result{}, errors.New("seed principal or token is required")
	}

	conn, err := platformgrpc.DialWithHealth(ctx, nil, discovery.ServiceRegistrar, addr, cfg.DialTimeout, cfg.Logf,
		platformgrpc.ClientDialOptions(
			gogrpc.WithUnaryInterceptor(grpcauthctx.CallerUnaryClientInterceptor(cfg.Principal, cfg.Token)),
		)...,
	)
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()

	opts := ApplyOptions{CallTimeout: cfg.CallTimeout}
	if cfg.Verbose {
		opts.Logf = cfg.Logf
	}
	return Apply(ctx, registryservice.NewClient(conn), fx, opts)
}

func (c Config) fixture() (Fixture, error) {
	if path := strings.TrimSpace(c.FixturePath); path != "" {
		return LoadFixture(path)
	}
	return DefaultFixture()
}

// ApplyOptions tunes Apply.
type ApplyOptions struct {
	// CallTimeout bounds each registry call. Zero means timeouts.GRPCRequest.
	CallTimeout time.Duration
	Logf        func(string, ...any)
}

// call runs one registry call under its own deadline.
func (o ApplyOptions) call(ctx context.Context, fn func(context.Context) error) error {
	timeout := o.CallTimeout
	if timeout <= 0 {
		timeout = timeouts.GRPCRequest
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(callCtx)
}

// Apply registers the fixture's users, then creates its classroom, courses
// and schedules in order. It stops at the first failure; data created
// before it stays committed.
func Apply(ctx context.Context, reg Registry, fx Fixture, opts ApplyOptions) (Result, error) {
	if reg == nil {
		return Result{}, errors.New("registry client is required")
	}
	if err := fx.Validate(); err != nil {
		return Result{}, err
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	var res Result
	for _, u := range fx.Users {
		role, _ := domain.ParseRole(u.Role)
		err := opts.call(ctx, func(ctx context.Context) error {
			return reg.RegisterUser(ctx, u.Principal, uint8(role))
		})
		if err != nil {
			return res, fmt.Errorf("register user %q: %w", u.Principal, err)
		}
		logf("registered %s %s", role, u.Principal)
	}

	if strings.TrimSpace(fx.Classroom.Name) != "" {
		err := opts.call(ctx, func(ctx context.Context) error {
			id, err := reg.CreateClassroom(ctx, registryservice.ClassroomFields{
				Name:     fx.Classroom.Name,
				Location: fx.Classroom.Location,
				Capacity: fx.Classroom.Capacity,
			})
			res.ClassroomID = id
			return err
		})
		if err != nil {
			return res, fmt.Errorf("create classroom %q: %w", fx.Classroom.Name, err)
		}
		logf("created classroom %d %q", res.ClassroomID, fx.Classroom.Name)
	}

	res.CourseIDs = make([]uint64, 0, len(fx.Courses))
	for _, c := range fx.Courses {
		var id uint64
		err := opts.call(ctx, func(ctx context.Context) error {
			var err error
			id, err = reg.CreateCourse(ctx, registryservice.CourseFields{
				Name:        c.Name,
				Description: c.Description,
				Credits:     c.Credits,
			})
			return err
		})
		if err != nil {
			return res, fmt.Errorf("create course %q: %w", c.Name, err)
		}
		res.CourseIDs = append(res.CourseIDs, id)
		logf("created course %d %q", id, c.Name)
	}

	res.ScheduleIDs = make([]uint64, 0, len(fx.Schedules))
	for i, s := range fx.Schedules {
		courseID := res.CourseIDs[s.Course]
		var local, global uint64
		err := opts.call(ctx, func(ctx context.Context) error {
			var err error
			local, global, err = reg.AddSchedule(ctx, courseID, registryservice.Slot{
				Day:         s.Day,
				StartHour:   s.Start,
				EndHour:     s.End,
				ClassroomID: res.ClassroomID,
			})
			return err
		})
		if err != nil {
			return res, fmt.Errorf("add schedule %d to course %d: %w", i, courseID, err)
		}
		res.ScheduleIDs = append(res.ScheduleIDs, global)
		logf("added schedule %d (course %d local %d)", global, courseID, local)
	}
	return res, nil
}
