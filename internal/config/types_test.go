// SPDX-License-Identifier: MPL-2.0

package config

import "testing"

func TestToolkitEnv(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("preserves variable case", func(t *testing.T) {
		env := cfg.ToolkitEnv("pyside")
		if env["ETS_TOOLKIT"] != "qt4" {
			t.Errorf("ETS_TOOLKIT = %q, want %q", env["ETS_TOOLKIT"], "qt4")
		}
		if env["QT_API"] != "pyside" {
			t.Errorf("QT_API = %q, want %q", env["QT_API"], "pyside")
		}
	})

	t.Run("unknown toolkit yields empty map", func(t *testing.T) {
		if env := cfg.ToolkitEnv("pyqt4"); len(env) != 0 {
			t.Errorf("ToolkitEnv(pyqt4) = %v, want empty", env)
		}
	})

	t.Run("malformed entries are skipped", func(t *testing.T) {
		c := &Config{EnvironmentVars: map[string][]string{
			"tk": {"GOOD=1", "novalue", "=nokey"},
		}}
		env := c.ToolkitEnv("tk")
		if len(env) != 1 || env["GOOD"] != "1" {
			t.Errorf("ToolkitEnv(tk) = %v, want only GOOD=1", env)
		}
	})

	t.Run("value may contain equals", func(t *testing.T) {
		c := &Config{EnvironmentVars: map[string][]string{
			"tk": {"OPTS=a=b"},
		}}
		if got := c.ToolkitEnv("tk")["OPTS"]; got != "a=b" {
			t.Errorf("OPTS = %q, want %q", got, "a=b")
		}
	})
}
