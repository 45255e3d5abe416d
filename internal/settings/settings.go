// Package settings reads setting.json, the advisory settings document written
// by the nvmd desktop app, and derives the installation root from it.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nvmd-desktop/nvmd-shim/internal/config"
	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
	"github.com/nvmd-desktop/nvmd-shim/internal/outcome"
)

// DirectoryKey is the only recognized field of setting.json.
const DirectoryKey = "directory"

// Reasons reported when the installation root falls back to the default.
const (
	ReasonNoHome             = "no-home"
	ReasonMissing            = "missing"
	ReasonUnreadable         = "unreadable"
	ReasonEmpty              = "empty"
	ReasonInvalidJSON        = "invalid-json"
	ReasonNotObject          = "not-object"
	ReasonMissingDirectory   = "missing-directory"
	ReasonDirectoryNotString = "directory-not-string"
	ReasonEmptyDirectory     = "empty-directory"
)

// Reader reads files.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// DefaultRoot returns <home>/versions, or "" when home is unknown.
func DefaultRoot(home string) string {
	return config.DefaultPaths(home).VersionsDir
}

// ResolveInstallationRoot returns the directory under which versions are installed.
// The directory field of setting.json wins when it is a non-empty string;
// every other situation falls back to DefaultRoot(home) with a reason.
func ResolveInstallationRoot(r Reader, home string) outcome.Result[string] {
	if home == "" {
		return outcome.Defaulted("", ReasonNoHome, nil)
	}
	paths := config.DefaultPaths(home)
	fallback := paths.VersionsDir

	data, err := r.ReadFile(paths.SettingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return outcome.Defaulted(fallback, ReasonMissing, nil)
		}
		return outcome.Defaulted(fallback, ReasonUnreadable, fmt.Errorf(messages.SettingsReadFailedFmt, paths.SettingsPath, err))
	}

	directory, reason, err := ParseDirectory(data)
	if reason != "" {
		return outcome.Defaulted(fallback, reason, err)
	}
	return outcome.Resolved(directory)
}

// ParseDirectory extracts the directory field from setting.json content.
// It returns the directory when usable, otherwise a reason (and for invalid
// JSON, the decode error). The document is never partially applied.
func ParseDirectory(data []byte) (string, string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ReasonEmpty, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", ReasonInvalidJSON, fmt.Errorf(messages.SettingsInvalidJSONFmt, err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return "", ReasonNotObject, nil
	}
	raw, ok := obj[DirectoryKey]
	if !ok || raw == nil {
		return "", ReasonMissingDirectory, nil
	}
	directory, ok := raw.(string)
	if !ok {
		return "", ReasonDirectoryNotString, nil
	}
	if strings.TrimSpace(directory) == "" {
		return "", ReasonEmptyDirectory, nil
	}
	return directory, "", nil
}
