// Package registrar parses registry service flags and launches the service.
package registrar

import (
	"context"
	"fmt"

	entrypoint "github.com/louisbranch/registrar/internal/platform/cmd"
	"github.com/louisbranch/registrar/internal/platform/discovery"
	server "github.com/louisbranch/registrar/internal/services/registry/app"
	"github.com/louisbranch/registrar/internal/services/registry/auth"
	"github.com/spf13/pflag"
)

// Config holds registrar command configuration.
type Config struct {
	Port           int    `env:"REGISTRAR_PORT"`
	Addr           string `env:"REGISTRAR_ADDR"`
	DBPath         string `env:"REGISTRAR_DB_PATH" envDefault:"data/registrar.db"`
	BootstrapAdmin string `env:"REGISTRAR_BOOTSTRAP_ADMIN"`
	JWTSecret      string `env:"REGISTRAR_JWT_SECRET"`
	JWTIssuer      string `env:"REGISTRAR_JWT_ISSUER" envDefault:"registrar"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Port == 0 {
		cfg.Port = discovery.DefaultGRPCPort(discovery.ServiceRegistrar)
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The registry gRPC server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address; overrides --port when set")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite journal path")
	fs.StringVar(&cfg.BootstrapAdmin, "bootstrap-admin", cfg.BootstrapAdmin, "Principal registered as admin at startup")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServerConfig converts command configuration into server configuration.
func (c Config) ServerConfig() server.Config {
	addr := c.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", c.Port)
	}
	return server.Config{
		Addr:           addr,
		DBPath:         c.DBPath,
		BootstrapAdmin: c.BootstrapAdmin,
		Tokens: auth.TokenConfig{
			Secret: []byte(c.JWTSecret),
			Issuer: c.JWTIssuer,
		},
	}
}

// Run starts the registry gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRegistrar, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}
