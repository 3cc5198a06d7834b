// SPDX-License-Identifier: MPL-2.0

// Package runner executes an ordered list of shell command templates.
// Templates are expanded against a parameter set, split into argv the way
// a POSIX shell would, and run one at a time. The first failure stops the
// sequence; each command's wall-clock duration is logged whether it
// succeeded or not.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
)

type (
	// Options configures how the command list runs.
	Options struct {
		// ExtraEnv is appended to the inherited process environment.
		ExtraEnv map[string]string

		// Stdout and Stderr receive the child's output. Nil means the
		// parent's streams.
		Stdout io.Writer
		Stderr io.Writer
	}

	// CommandError reports a command that exited non-zero or failed to
	// start. It carries the expanded command line for the log and the
	// child's exit code when one exists.
	CommandError struct {
		Line     string
		ExitCode int
		Err      error
	}
)

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %q failed: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("command %q exited with status %d", e.Line, e.ExitCode)
}

// Unwrap returns the underlying error, if any.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Run expands each template against params and executes the results in
// order. It returns on the first command that fails; remaining templates
// do not run.
func Run(ctx context.Context, templates []string, params map[string]string, opts Options) error {
	for _, template := range templates {
		line, err := Expand(template, params)
		if err != nil {
			return err
		}
		if err := runOne(ctx, line, opts); err != nil {
			return err
		}
	}
	return nil
}

// runOne executes a single expanded command line, timing it.
func runOne(ctx context.Context, line string, opts Options) error {
	argv, err := shell.Fields(line, nil)
	if err != nil {
		return &CommandError{Line: line, ExitCode: 1, Err: fmt.Errorf("failed to split command line: %w", err)}
	}
	if len(argv) == 0 {
		return &CommandError{Line: line, ExitCode: 1, Err: errors.New("empty command line")}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), envToSlice(opts.ExtraEnv)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	log.Info("executing", "command", line)
	start := time.Now()
	err = cmd.Run()
	// Duration is logged win or lose so failed runs can still be profiled.
	log.Info("duration", "command", argv[0], "seconds", fmt.Sprintf("%.2f", time.Since(start).Seconds()))

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Line: line, ExitCode: exitErr.ExitCode()}
		}
		return &CommandError{Line: line, ExitCode: 1, Err: err}
	}
	return nil
}

// envToSlice flattens an env map into KEY=VALUE form.
func envToSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
