package config

import "path/filepath"

// File names inside the nvmd home directory.
const (
	SettingsFileName       = "setting.json"
	DefaultVersionFileName = "default"
	VersionsDirName        = "versions"
	FileName               = "shim.toml"
)

// ProjectVersionFileName is the per-project version file read from the working directory.
const ProjectVersionFileName = ".nvmdrc"

// Paths holds resolved paths for files under the nvmd home directory.
type Paths struct {
	Home               string
	SettingsPath       string
	DefaultVersionPath string
	VersionsDir        string
	ConfigPath         string
}

// DefaultPaths returns the well-known paths for an nvmd home directory.
// An empty home yields empty paths so callers never read relative to the cwd.
func DefaultPaths(home string) Paths {
	if home == "" {
		return Paths{}
	}
	return Paths{
		Home:               home,
		SettingsPath:       filepath.Join(home, SettingsFileName),
		DefaultVersionPath: filepath.Join(home, DefaultVersionFileName),
		VersionsDir:        filepath.Join(home, VersionsDirName),
		ConfigPath:         filepath.Join(home, FileName),
	}
}

// ProjectVersionPath returns the .nvmdrc path for a working directory.
func ProjectVersionPath(cwd string) string {
	if cwd == "" {
		return ""
	}
	return filepath.Join(cwd, ProjectVersionFileName)
}
