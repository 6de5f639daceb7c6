package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"k9console/internal/config"
	"k9console/internal/host"
	"k9console/internal/logger"
)

// runBatchFile executes the console lines of path on a fresh host.
func runBatchFile(ctx context.Context, path string, cfg *config.Config, keepGoing bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer func() { _ = file.Close() }()

	logger.Info("Starting batch mode", "script", path)
	return runBatch(ctx, file, cfg, os.Stdout, keepGoing)
}

// runBatch submits each line of r to a running host and waits for its result.
// A quit line ends the batch early.
func runBatch(ctx context.Context, r io.Reader, cfg *config.Config, out io.Writer, keepGoing bool) error {
	app, err := newApp(cfg, out, out)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	var failed int
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		err := app.Execute(ctx, line)
		if errors.Is(err, host.ErrStopped) {
			break
		}
		if err != nil {
			failed++
			logger.Error("Line failed", "line", lineNo, "command", line, "error", err)
			if !keepGoing {
				app.Stop()
				<-done
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}

	app.Stop()
	runErr := <-done
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if runErr != nil {
		return runErr
	}
	if failed > 0 {
		return fmt.Errorf("%d line(s) failed", failed)
	}
	return nil
}
