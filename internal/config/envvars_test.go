// ABOUTME: Tests for env and home expansion of config path fields
// ABOUTME: Covers defaults, unset vars, bare dollars and tilde handling

package config

import (
	"path/filepath"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("KGPVIEW_TEST_DIR", "/var/log")
	t.Setenv("KGPVIEW_TEST_EMPTY", "")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "set", in: "${KGPVIEW_TEST_DIR}", want: "/var/log"},
		{name: "unset", in: "${DEFINITELY_NOT_SET_12345}", want: ""},
		{name: "unset with default", in: "${DEFINITELY_NOT_SET_12345:-/tmp}/v.log", want: "/tmp/v.log"},
		{name: "empty uses default", in: "${KGPVIEW_TEST_EMPTY:-fallback}", want: "fallback"},
		{name: "set ignores default", in: "${KGPVIEW_TEST_DIR:-/tmp}", want: "/var/log"},
		{name: "mixed", in: "${KGPVIEW_TEST_DIR}/kgpview.log", want: "/var/log/kgpview.log"},
		{name: "bare dollar", in: "$KGPVIEW_TEST_DIR", want: "$KGPVIEW_TEST_DIR"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnv(tt.in); got != tt.want {
				t.Errorf("expandEnv(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KGPVIEW_TEST_SUB", "logs")

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: home},
		{in: "~/view.log", want: filepath.Join(home, "view.log")},
		{in: "~/${KGPVIEW_TEST_SUB}/view.log", want: filepath.Join(home, "logs", "view.log")},
		{in: "~other/view.log", want: "~other/view.log"},
		{in: "/abs/view.log", want: "/abs/view.log"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveEnvVars_LogFile(t *testing.T) {
	t.Setenv("KGPVIEW_TEST_STATE", "/tmp/state")

	s := &Settings{LogFile: "${KGPVIEW_TEST_STATE}/view.log"}
	ResolveEnvVars(s)

	if s.LogFile != "/tmp/state/view.log" {
		t.Errorf("LogFile = %q; want %q", s.LogFile, "/tmp/state/view.log")
	}
}
