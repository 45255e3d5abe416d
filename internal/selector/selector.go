// Package selector picks the active version: the project .nvmdrc wins,
// otherwise the global default file under the nvmd home.
package selector

import (
	"errors"
	"fmt"
	"os"

	"github.com/nvmd-desktop/nvmd-shim/internal/config"
	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
	"github.com/nvmd-desktop/nvmd-shim/internal/outcome"
)

// Source names where a version came from.
type Source string

// Version sources.
const (
	SourceProject Source = "project"
	SourceDefault Source = "default"
	SourceNone    Source = "none"
)

// Reasons reported when no version is selected.
const (
	ReasonNoVersionFile    = "no-version-file"
	ReasonDefaultFileEmpty = "default-file-empty"
)

// System is the filesystem access needed to select a version.
type System interface {
	Getwd() (string, error)
	ReadFile(name string) ([]byte, error)
}

// Selection is the selected version and the file it was read from.
// Version is the raw file content; it is never trimmed or validated here.
type Selection struct {
	Version string
	Source  Source
	Path    string
}

// ResolveVersion returns the selected version. The result is Resolved when a
// file supplied non-empty content and Defaulted (with an empty version) otherwise.
// Read errors, including an unknown working directory, count as "file absent";
// the first such error is kept on the result for diagnostics.
func ResolveVersion(sys System, home string) outcome.Result[Selection] {
	var cause error

	cwd, err := sys.Getwd()
	if err != nil {
		cause = fmt.Errorf(messages.SelectorGetwdFailedFmt, err)
		cwd = ""
	}
	if projectPath := config.ProjectVersionPath(cwd); projectPath != "" {
		content, readErr := readVersionFile(sys, projectPath)
		if readErr != nil && cause == nil {
			cause = readErr
		}
		if content != "" {
			return outcome.Resolved(Selection{Version: content, Source: SourceProject, Path: projectPath})
		}
	}

	defaultPath := config.DefaultPaths(home).DefaultVersionPath
	if defaultPath == "" {
		return outcome.Defaulted(Selection{Source: SourceNone}, ReasonNoVersionFile, cause)
	}
	data, err := sys.ReadFile(defaultPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) && cause == nil {
			cause = fmt.Errorf(messages.SelectorReadFailedFmt, defaultPath, err)
		}
		return outcome.Defaulted(Selection{Source: SourceNone}, ReasonNoVersionFile, cause)
	}
	if len(data) == 0 {
		return outcome.Defaulted(Selection{Source: SourceDefault, Path: defaultPath}, ReasonDefaultFileEmpty, cause)
	}
	result := outcome.Resolved(Selection{Version: string(data), Source: SourceDefault, Path: defaultPath})
	result.Err = cause
	return result
}

// readVersionFile returns the file content, or "" when it does not exist.
// Only unexpected read failures are returned as errors.
func readVersionFile(sys System, path string) (string, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf(messages.SelectorReadFailedFmt, path, err)
	}
	return string(data), nil
}
