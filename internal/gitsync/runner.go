package gitsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Output holds what a command wrote to each stream.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Combined returns both streams, stdout first, for diagnostics.
func (o Output) Combined() string {
	stdout := strings.TrimSpace(string(o.Stdout))
	stderr := strings.TrimSpace(string(o.Stderr))
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	}
	return stdout + "\n" + stderr
}

// Runner executes a git command in dir.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (Output, error)
}

// ExecRunner runs the git binary as a subprocess.
type ExecRunner struct {
	Binary  string
	Timeout time.Duration
}

// Run executes the command, bounded by the runner's timeout.
func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) (Output, error) {
	binary := r.Binary
	if binary == "" {
		binary = "git"
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		desc := binary + " " + strings.Join(args, " ")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, fmt.Errorf("%s interrupted: %w", desc, ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, fmt.Errorf("%s exited with status %d: %w", desc, exitErr.ExitCode(), err)
		}
		return out, fmt.Errorf("%s failed: %w", desc, err)
	}
	return out, nil
}
