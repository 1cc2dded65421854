package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/imagineer/internal/app"
	"github.com/specialistvlad/imagineer/internal/cli"
)

// main is the entrypoint for the imagineer application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, app.Streams{In: os.Stdin, Out: os.Stdout, Log: os.Stderr}, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, streams app.Streams, args []string) (err error) {
	// Usage goes to the log stream; stdout carries image data.
	appConfig, shouldExit, err := cli.Parse(args, usageWriter(streams))
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A panic anywhere in a run is reported as an ordinary failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application panicked: %v", r)
		}
	}()

	return app.NewApp(streams, appConfig).Run(ctx)
}

func usageWriter(streams app.Streams) io.Writer {
	if streams.Log != nil {
		return streams.Log
	}
	return io.Discard
}
