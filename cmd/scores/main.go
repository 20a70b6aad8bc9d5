// Package main runs the leaderboard maintenance command.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	scorescmd "github.com/louisbranch/minefield/internal/cmd/scores"
	"github.com/louisbranch/minefield/internal/platform/config"
)

func main() {
	cfg, err := scorescmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scorescmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
