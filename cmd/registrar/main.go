// Package main starts the registry gRPC service process lifecycle.
package main

import (
	"log"
	"os"

	registrarcmd "github.com/louisbranch/registrar/internal/cmd/registrar"
	entrypoint "github.com/louisbranch/registrar/internal/platform/cmd"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := registrarcmd.ParseConfig(pflag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[REGISTRAR] ")
	ctx, stop := entrypoint.SignalContext()
	defer stop()

	if err := registrarcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
