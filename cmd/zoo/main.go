package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"zoo-admin/cmd/zoo/commands"
)

// Se setean con -ldflags al compilar.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx, Version, Commit); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
