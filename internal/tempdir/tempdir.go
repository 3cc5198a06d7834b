// SPDX-License-Identifier: MPL-2.0

// Package tempdir runs an action inside a throwaway working directory.
// The test suite runs in one so stray local packages can't shadow the
// installed ones, and so coverage output lands somewhere we control.
package tempdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options configures a scoped temp-directory run.
type Options struct {
	// Files are copied from the current directory into the temp directory
	// before the action runs.
	Files []string

	// CaptureGlobs are glob patterns, evaluated inside the temp directory
	// after the action succeeds; matches are copied back to the original
	// working directory.
	CaptureGlobs []string
}

// In creates a temporary directory, copies opts.Files into it, makes it the
// working directory, and runs fn. When fn succeeds, files matching
// opts.CaptureGlobs are copied back to the original directory. The original
// working directory is restored and the temp directory removed on every
// exit path, including when fn fails.
func In(opts Options, fn func() error) (err error) {
	origDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "etstool-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil && err == nil {
			err = fmt.Errorf("failed to remove temp directory: %w", rmErr)
		}
	}()

	for _, file := range opts.Files {
		log.Debug("copying file to tempdir", "file", file)
		if copyErr := copyInto(file, tmpDir); copyErr != nil {
			return copyErr
		}
	}

	if err = os.Chdir(tmpDir); err != nil {
		return fmt.Errorf("failed to enter temp directory: %w", err)
	}
	defer func() {
		if cdErr := os.Chdir(origDir); cdErr != nil && err == nil {
			err = fmt.Errorf("failed to restore working directory: %w", cdErr)
		}
	}()

	if err = fn(); err != nil {
		return err
	}

	// Retrieve any result files we want.
	for _, pattern := range opts.CaptureGlobs {
		matches, globErr := filepath.Glob(pattern)
		if globErr != nil {
			return fmt.Errorf("bad capture pattern %q: %w", pattern, globErr)
		}
		for _, match := range matches {
			log.Debug("copying file back", "file", match)
			if copyErr := copyInto(match, origDir); copyErr != nil {
				return copyErr
			}
		}
	}

	return nil
}

// copyInto copies src into dir, keeping its base name.
func copyInto(src, dir string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	defer in.Close() //nolint:errcheck // read-only handle

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}

	dst := filepath.Join(dir, filepath.Base(src))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
