package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openscad-ofl/ofltools/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if msg := cli.Message(err); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	if code := cli.ExitCode(err); code != cli.ExitOK {
		os.Exit(code)
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.DefaultVerbosity)
	return c.RootCommand().ExecuteContext(ctx)
}
