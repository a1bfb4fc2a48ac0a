package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// commandResult is the captured outcome of one process.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// runCommand runs name in dir and waits for it to exit. A non-zero exit is
// reported in the result; only a failure to run the process at all, or a
// cancelled context, is an error.
func runCommand(ctx context.Context, dir string, stdin io.Reader, mirrorOut, mirrorErr io.Writer, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if mirrorOut != nil {
		cmd.Stdout = io.MultiWriter(&stdout, mirrorOut)
	}
	if mirrorErr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, mirrorErr)
	}

	start := time.Now()
	err := cmd.Run()
	res := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("%s interrupted: %w", name, ctxErr)
		}
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return res, nil
}
