package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"menugen/pkg/app"
)

// main is the installable entry point: go install menugen/cmd/menugen.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, os.Args[1:], nil); err != nil {
		fmt.Fprintf(os.Stderr, "menugen: %v\n", err)
		stop()
		os.Exit(1)
	}
}
