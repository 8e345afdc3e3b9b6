// Package seed parses seeding CLI flags and replays a fixture against a
// running registry.
package seed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/registrar/internal/platform/cmd"
	"github.com/louisbranch/registrar/internal/platform/discovery"
	"github.com/louisbranch/registrar/internal/platform/timeouts"
	"github.com/louisbranch/registrar/internal/seed"
	"github.com/louisbranch/registrar/internal/services/registry/auth"
	"github.com/spf13/pflag"
)

const seedTokenTTL = 10 * time.Minute

// Config holds seed command configuration.
type Config struct {
	Addr        string        `env:"REGISTRAR_SEED_ADDR"`
	Principal   string        `env:"REGISTRAR_BOOTSTRAP_ADMIN"`
	JWTSecret   string        `env:"REGISTRAR_JWT_SECRET"`
	JWTIssuer   string        `env:"REGISTRAR_JWT_ISSUER" envDefault:"registrar"`
	DialTimeout time.Duration `env:"REGISTRAR_SEED_DIAL_TIMEOUT"`
	Fixture     string
	Verbose     bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Addr = discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceRegistrar)
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = timeouts.GRPCDial
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "registry server address")
	fs.StringVar(&cfg.Principal, "principal", cfg.Principal, "admin principal to seed as")
	fs.StringVar(&cfg.Fixture, "fixture", "", "fixture file (default: embedded bring-up data)")
	fs.DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "time to wait for the server to become healthy")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RunnerConfig converts command configuration into runner configuration,
// minting a bearer token for the principal when a JWT secret is set.
func (c Config) RunnerConfig(logf func(string, ...any)) (seed.Config, error) {
	runner := seed.DefaultConfig()
	runner.Addr = c.Addr
	runner.Principal = strings.TrimSpace(c.Principal)
	runner.FixturePath = c.Fixture
	runner.Verbose = c.Verbose
	runner.Logf = logf
	if c.DialTimeout > 0 {
		runner.DialTimeout = c.DialTimeout
	}
	if c.JWTSecret != "" {
		token, err := auth.IssueToken(auth.TokenConfig{Secret: []byte(c.JWTSecret), Issuer: c.JWTIssuer}, runner.Principal, seedTokenTTL)
		if err != nil {
			return seed.Config{}, fmt.Errorf("issue seed token: %w", err)
		}
		runner.Token = token
	}
	return runner, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	logf := func(format string, args ...any) {
		fmt.Fprintf(out, format+"\n", args...)
	}
	runner, err := cfg.RunnerConfig(logf)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		res, err := seed.Run(ctx, runner)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "seeded classroom %d, %d courses, %d schedules\n", res.ClassroomID, len(res.CourseIDs), len(res.ScheduleIDs))
		return nil
	})
}
