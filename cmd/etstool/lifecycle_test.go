// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"etstool/internal/config"
	"etstool/internal/params"
	"etstool/internal/testutil"

	"github.com/spf13/cobra"
)

func TestLifecycleOpts_Validate(t *testing.T) {
	tests := []struct {
		toolkit string
		wantErr bool
	}{
		{toolkit: "pyside", wantErr: false},
		{toolkit: "pyqt4", wantErr: false},
		{toolkit: "wx", wantErr: true},
		{toolkit: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("toolkit "+tt.toolkit, func(t *testing.T) {
			o := lifecycleOpts{runtime: "2.7", toolkit: tt.toolkit}
			err := o.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddLifecycleFlags_Defaults(t *testing.T) {
	var o lifecycleOpts
	cmd := &cobra.Command{Use: "probe"}
	addLifecycleFlags(cmd, &o)

	tests := []struct {
		flag string
		want string
	}{
		{flag: "runtime", want: "2.7"},
		{flag: "toolkit", want: "pyside"},
		{flag: "environment", want: ""},
	}
	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Fatalf("flag --%s not registered", tt.flag)
		}
		if f.DefValue != tt.want {
			t.Errorf("--%s default = %q, want %q", tt.flag, f.DefValue, tt.want)
		}
	}

	if o.version != params.VersionLatest {
		t.Errorf("version default = %q, want %q", o.version, params.VersionLatest)
	}
	if o.source != params.SourceEDM {
		t.Errorf("source default = %q, want %q", o.source, params.SourceEDM)
	}
}

func TestInstallCommand_Flags(t *testing.T) {
	for _, flag := range []string{"runtime", "toolkit", "environment", "enaml", "source"} {
		if installCmd.Flags().Lookup(flag) == nil {
			t.Errorf("install command missing --%s", flag)
		}
	}
	if got := installCmd.Flags().Lookup("source").DefValue; got != "edm" {
		t.Errorf("--source default = %q, want %q", got, "edm")
	}
	if got := installCmd.Flags().Lookup("enaml").DefValue; got != "latest" {
		t.Errorf("--enaml default = %q, want %q", got, "latest")
	}
}

func TestRunInstall_UnknownSource(t *testing.T) {
	o := lifecycleOpts{
		runtime: "2.7",
		toolkit: "pyside",
		version: params.VersionLatest,
		source:  "conda",
	}

	err := runInstall(context.Background(), config.DefaultConfig(), o)
	if !errors.Is(err, params.ErrUnknownSource) {
		t.Errorf("runInstall() error = %v, want ErrUnknownSource", err)
	}
	if !strings.Contains(formatErrorForDisplay(err, false), "Use one of: edm, pypi, github") {
		t.Errorf("error display missing source suggestion: %v", err)
	}
}

func TestRunTest_MissingCoverageRC(t *testing.T) {
	tmpDir := t.TempDir()
	restore := testutil.MustChdir(t, tmpDir)
	defer restore()

	o := lifecycleOpts{
		runtime: "2.7",
		toolkit: "pyside",
		version: params.VersionLatest,
		source:  params.SourceEDM,
	}

	err := runTest(context.Background(), config.DefaultConfig(), o)
	if err == nil {
		t.Fatal("runTest() error = nil, want missing .coveragerc failure")
	}
	if !strings.Contains(err.Error(), coverageRC) {
		t.Errorf("runTest() error = %v, want mention of %s", err, coverageRC)
	}
}
