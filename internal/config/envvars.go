// ABOUTME: Expansion of ${VAR}, ${VAR:-default} and a leading ~ in path settings
// ABOUTME: Bare $VAR is left alone so literal dollars in file names survive

package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)(?::-([^}]*))?\}`)

// ResolveEnvVars expands the path-like fields of s in place.
func ResolveEnvVars(s *Settings) {
	s.LogFile = expandPath(s.LogFile)
}

// expandPath expands env references, then a leading "~" or "~/" to $HOME.
func expandPath(p string) string {
	p = expandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// expandEnv replaces ${VAR} with its value and ${VAR:-def} with def when VAR
// is unset or empty. Unset vars without a default become "".
func expandEnv(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		if v := os.Getenv(m[1]); v != "" {
			return v
		}
		return m[2]
	})
}
