package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	curationcmd "github.com/louisbranch/curation/internal/cmd/curation"
)

func main() {
	cfg, err := curationcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CURATION] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := curationcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
