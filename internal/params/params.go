// SPDX-License-Identifier: MPL-2.0

// Package params resolves the substitution parameters for the lifecycle
// commands: which packages edm installs, which ones pip installs, and the
// name of the environment they go into.
package params

import (
	"errors"
	"fmt"
	"strings"

	"etstool/internal/config"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// SourceEDM installs every dependency through edm.
	SourceEDM = "edm"
	// SourcePyPI installs the project dependencies from PyPI via pip.
	SourcePyPI = "pypi"
	// SourceGithub installs cutting-edge dependencies from git repositories.
	SourceGithub = "github"

	// VersionLatest selects the unpinned enaml package.
	VersionLatest = "latest"
)

// ErrUnknownSource is returned when the package source is none of
// edm, pypi, or github.
var ErrUnknownSource = errors.New("unknown package source")

type (
	// Options are the inputs to Resolve.
	Options struct {
		// Runtime is the python runtime version for the environment.
		Runtime string
		// Toolkit selects the GUI binding (pyside, pyqt4).
		Toolkit string
		// Environment overrides the derived environment name when non-empty.
		Environment string
		// Version pins the enaml package; VersionLatest leaves it unpinned.
		Version string
		// Source selects where dependencies come from.
		Source string
	}

	// Set is the flattened, immutable parameter set substituted into
	// command templates. Package fields are space-joined, sorted, and
	// contain each package exactly once.
	Set struct {
		Runtime      string
		TestPackages string
		EDMPackages  string
		PipPackages  string
		Environment  string
	}
)

// Resolve computes the parameter set for one invocation. Pure: it reads
// only opts and cfg and has no side effects.
func Resolve(opts Options, cfg *config.Config) (*Set, error) {
	edmPackages := newStringSet(cfg.TestDependencies...)
	edmPackages.add(cfg.Dependencies...)
	edmPackages.add(cfg.Toolkits[opts.Toolkit]...)

	pipPackages := newStringSet()

	switch opts.Source {
	case SourceEDM:
		if opts.Version == VersionLatest {
			edmPackages.add("enaml")
		} else {
			edmPackages.add(fmt.Sprintf("enaml^=%s", opts.Version))
		}
	case SourcePyPI:
		pipPackages.add(cfg.PypiDependencies...)
		if opts.Version == VersionLatest {
			pipPackages.add("enaml")
		} else {
			pipPackages.add(fmt.Sprintf("enaml==%s", opts.Version))
		}
	case SourceGithub:
		pipPackages.add(cfg.GithubDependencies...)
	default:
		return nil, fmt.Errorf("%w: %q (expected edm, pypi, or github)", ErrUnknownSource, opts.Source)
	}

	environment := opts.Environment
	if environment == "" {
		environment = DefaultEnvironment(opts.Runtime, opts.Toolkit)
	}

	return &Set{
		Runtime:      opts.Runtime,
		TestPackages: newStringSet(cfg.TestDependencies...).join(),
		EDMPackages:  edmPackages.join(),
		PipPackages:  pipPackages.join(),
		Environment:  environment,
	}, nil
}

// DefaultEnvironment derives the environment name used when no override
// is supplied.
func DefaultEnvironment(runtime, toolkit string) string {
	return fmt.Sprintf("traits-enaml-%s-%s", runtime, toolkit)
}

// Map exposes the set under its template placeholder names.
func (s *Set) Map() map[string]string {
	return map[string]string{
		"runtime":       s.Runtime,
		"test_packages": s.TestPackages,
		"edm_packages":  s.EDMPackages,
		"pip_packages":  s.PipPackages,
		"environment":   s.Environment,
	}
}

// stringSet deduplicates package names; join flattens it deterministically.
type stringSet map[string]struct{}

func newStringSet(items ...string) stringSet {
	s := make(stringSet, len(items))
	s.add(items...)
	return s
}

func (s stringSet) add(items ...string) {
	for _, item := range items {
		s[item] = struct{}{}
	}
}

func (s stringSet) join() string {
	keys := maps.Keys(s)
	slices.Sort(keys)
	return strings.Join(keys, " ")
}
