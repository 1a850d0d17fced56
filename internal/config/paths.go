// ABOUTME: Locations of the global (~/.kgpview) and project (.kgpview) config files
// ABOUTME: KGPVIEW_HOME overrides the global dir; FindProjectRoot walks up to the nearest .kgpview

package config

import (
	"os"
	"path/filepath"
)

const (
	homeEnvVar     = "KGPVIEW_HOME"
	dirName        = ".kgpview"
	configFileName = "config.yaml"
)

// GlobalDir returns $KGPVIEW_HOME when set, else ~/.kgpview. Without a home
// directory it falls back to ./.kgpview.
func GlobalDir() string {
	if dir := os.Getenv(homeEnvVar); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// ProjectDir returns the project-local config directory under projectRoot.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, dirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configFileName)
}

// ConfigFiles lists every file Load reads, in merge order.
func ConfigFiles(projectRoot string) []string {
	return []string{GlobalConfigFile(), ProjectConfigFile(projectRoot)}
}

// FindProjectRoot returns the closest directory at or above start holding a
// .kgpview directory, stopping below the global dir's parent so ~/.kgpview is
// never read twice. When nothing is found start is returned.
func FindProjectRoot(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	global := filepath.Clean(GlobalDir())
	for dir := abs; ; {
		candidate := ProjectDir(dir)
		if candidate != global {
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
