// Package cmd holds the startup plumbing shared by registrar binaries:
// env-then-flags configuration, signal handling, and a tracing wrapper
// around each process run loop.
package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/louisbranch/registrar/internal/platform/config"
	"github.com/louisbranch/registrar/internal/platform/otel"
	"github.com/spf13/pflag"
)

// Binary names, used as the OpenTelemetry service name.
const (
	ServiceRegistrar = "registrar"
	ServiceSeed      = "seed"
)

const defaultFlushTimeout = 5 * time.Second

// RunOptions tunes RunWithTelemetryAndOptions.
type RunOptions struct {
	// ShutdownTimeout bounds the final span flush. Zero means five seconds.
	ShutdownTimeout time.Duration
	// Logf reports flush failures. Nil means log.Printf.
	Logf func(string, ...any)
}

func (o RunOptions) flushTimeout() time.Duration {
	if o.ShutdownTimeout > 0 {
		return o.ShutdownTimeout
	}
	return defaultFlushTimeout
}

func (o RunOptions) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// ParseConfig fills cfg from its env tags. Call it before registering flags
// so flag defaults show the environment's values.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags; flags explicitly passed override
// whatever ParseConfig loaded.
func ParseArgs(fs *pflag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// RunWithTelemetry is RunWithTelemetryAndOptions with default options.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions sets up tracing for service, runs run, and
// flushes pending spans once it returns. Flush failures are logged, never
// returned.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	switch {
	case service == "":
		return errors.New("service name is required")
	case run == nil:
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), options.flushTimeout())
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			options.logf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
