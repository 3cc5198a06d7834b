// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// captureLog redirects the default logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestRun_SequentialSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	captureLog(t)

	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "first")
	second := filepath.Join(tmpDir, "second")

	templates := []string{
		"sh -c 'echo one > {first}'",
		"sh -c 'echo two > {second}'",
	}
	params := map[string]string{"first": first, "second": second}

	if err := Run(context.Background(), templates, params, Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, path := range []string{first, second} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("command output %s missing: %v", path, err)
		}
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	logs := captureLog(t)

	tmpDir := t.TempDir()
	after := filepath.Join(tmpDir, "after")

	templates := []string{
		"sh -c 'exit 0'",
		"sh -c 'exit 3'",
		"sh -c 'echo nope > {after}'",
	}
	params := map[string]string{"after": after}

	err := Run(context.Background(), templates, params, Options{})

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Run() error = %v, want *CommandError", err)
	}
	if cmdErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", cmdErr.ExitCode)
	}
	if _, statErr := os.Stat(after); !os.IsNotExist(statErr) {
		t.Errorf("command after the failure still ran")
	}

	// The failing command still gets a duration line.
	if got := strings.Count(logs.String(), "duration"); got != 2 {
		t.Errorf("duration logged %d times, want 2 (one per attempted command)\nlogs:\n%s", got, logs.String())
	}
}

func TestRun_ExtraEnvReachesChild(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	captureLog(t)

	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "out")

	templates := []string{`sh -c 'echo "$QT_API" > {out}'`}
	params := map[string]string{"out": out}

	err := Run(context.Background(), templates, params, Options{
		ExtraEnv: map[string]string{"QT_API": "pyside"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading command output: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "pyside" {
		t.Errorf("child saw QT_API = %q, want %q", got, "pyside")
	}
}

func TestRun_OptionsRedirectChildOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	captureLog(t)

	var stdout, stderr bytes.Buffer
	templates := []string{`sh -c 'echo to-stdout; echo to-stderr >&2'`}

	err := Run(context.Background(), templates, nil, Options{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := strings.TrimSpace(stdout.String()); got != "to-stdout" {
		t.Errorf("Stdout = %q, want %q", got, "to-stdout")
	}
	if got := strings.TrimSpace(stderr.String()); got != "to-stderr" {
		t.Errorf("Stderr = %q, want %q", got, "to-stderr")
	}
}

func TestRun_CommandNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	captureLog(t)

	err := Run(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, nil, Options{})

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Run() error = %v, want *CommandError", err)
	}
	if cmdErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1 for spawn failure", cmdErr.ExitCode)
	}
}

func TestRun_BadTemplateRunsNothing(t *testing.T) {
	logs := captureLog(t)

	err := Run(context.Background(), []string{"edm install {missing}"}, map[string]string{}, Options{})
	if err == nil {
		t.Fatal("Run() error = nil, want template error")
	}
	if strings.Contains(logs.String(), "executing") {
		t.Errorf("a command was executed despite the template error")
	}
}

func TestRun_QuotedFieldsSplitLikeShell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	captureLog(t)

	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "out")

	// The quoted argument must survive as a single field.
	templates := []string{`sh -c 'printf "%s" "$1" > {out}' arg0 "two words"`}
	if err := Run(context.Background(), templates, map[string]string{"out": out}, Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading command output: %v", err)
	}
	if string(data) != "two words" {
		t.Errorf("quoted field = %q, want %q", data, "two words")
	}
}

func TestCommandError_Error(t *testing.T) {
	e := &CommandError{Line: "edm install -y", ExitCode: 2}
	if !strings.Contains(e.Error(), "exited with status 2") {
		t.Errorf("Error() = %q", e.Error())
	}

	wrapped := &CommandError{Line: "x", ExitCode: 1, Err: errors.New("not found")}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Errorf("Unwrap() does not expose the cause")
	}
}
