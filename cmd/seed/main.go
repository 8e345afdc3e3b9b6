// Package main replays the bring-up fixture against a running registry.
package main

import (
	"log"
	"os"

	seedcmd "github.com/louisbranch/registrar/internal/cmd/seed"
	entrypoint "github.com/louisbranch/registrar/internal/platform/cmd"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := seedcmd.ParseConfig(pflag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SEED] ")
	ctx, stop := entrypoint.SignalContext()
	defer stop()

	if err := seedcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("seed: %v", err)
	}
}
