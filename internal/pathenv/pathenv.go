// Package pathenv builds the augmented search path handed to the launched tool.
package pathenv

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nvmd-desktop/nvmd-shim/internal/layout"
	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
	"github.com/nvmd-desktop/nvmd-shim/internal/outcome"
)

// Key is the search path environment variable.
const Key = "PATH"

// Reasons reported when the augmented path is the empty sentinel.
const (
	ReasonNoVersion     = "no-version"
	ReasonNoBinDir      = "no-bin-dir"
	ReasonBinDirMissing = "bin-dir-missing"
	ReasonBinDirNotDir  = "bin-dir-not-dir"
	ReasonJoinFailed    = "join-failed"
)

// ErrInvalidEntry is returned by Join when an entry cannot be encoded.
var ErrInvalidEntry = errors.New("invalid search path entry")

// Statter reports file information.
type Statter interface {
	Stat(name string) (fs.FileInfo, error)
}

// ListSeparator returns the list separator for a platform family.
func ListSeparator(f layout.Family) rune {
	if f == layout.FamilyWindows {
		return ';'
	}
	return ':'
}

// Split splits a search path value into entries. Empty entries are kept so
// that re-joining reproduces the original value. On Windows, double quotes
// group an entry containing ';' and are removed from the result.
func Split(f layout.Family, value string) []string {
	if f != layout.FamilyWindows {
		return strings.Split(value, string(ListSeparator(f)))
	}
	var entries []string
	var current strings.Builder
	inQuote := false
	for _, r := range value {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ';' && !inQuote:
			entries = append(entries, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(entries, current.String())
}

// Join encodes entries as a search path value. On POSIX an entry may not
// contain ':'. On Windows an entry may not contain '"' and entries containing
// ';' are quoted.
func Join(f layout.Family, entries []string) (string, error) {
	sep := string(ListSeparator(f))
	encoded := make([]string, 0, len(entries))
	for _, entry := range entries {
		if f == layout.FamilyWindows {
			if strings.Contains(entry, `"`) {
				return "", fmt.Errorf("%w: %s", ErrInvalidEntry, fmt.Sprintf(messages.PathenvInvalidEntryFmt, entry, `"`))
			}
			if strings.Contains(entry, sep) {
				entry = `"` + entry + `"`
			}
		} else if strings.Contains(entry, sep) {
			return "", fmt.Errorf("%w: %s", ErrInvalidEntry, fmt.Sprintf(messages.PathenvInvalidEntryFmt, entry, sep))
		}
		encoded = append(encoded, entry)
	}
	return strings.Join(encoded, sep), nil
}

// Prepend returns inherited with dir added as the first entry. When the
// inherited value is absent or empty the result is dir alone.
func Prepend(f layout.Family, dir string, inherited string, present bool) (string, error) {
	entries := []string{dir}
	if present && inherited != "" {
		entries = append(entries, Split(f, inherited)...)
	}
	return Join(f, entries)
}

// Compose returns the augmented search path for binDir, or the empty sentinel
// (a Defaulted result with Value "") when the version is blank, binDir is
// unknown or not an existing directory, or the result cannot be encoded.
// An empty Value always means "leave PATH alone".
func Compose(st Statter, f layout.Family, version string, binDir string, inherited string, present bool) outcome.Result[string] {
	if strings.TrimSpace(version) == "" {
		return outcome.Defaulted("", ReasonNoVersion, nil)
	}
	if binDir == "" {
		return outcome.Defaulted("", ReasonNoBinDir, nil)
	}
	info, err := st.Stat(binDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return outcome.Defaulted("", ReasonBinDirMissing, fmt.Errorf(messages.PathenvBinDirMissingFmt, binDir))
		}
		return outcome.Defaulted("", ReasonBinDirMissing, fmt.Errorf(messages.PathenvBinDirStatFmt, binDir, err))
	}
	if !info.IsDir() {
		return outcome.Defaulted("", ReasonBinDirNotDir, fmt.Errorf(messages.PathenvBinDirNotDirFmt, binDir))
	}
	value, err := Prepend(f, binDir, inherited, present)
	if err != nil {
		return outcome.Defaulted("", ReasonJoinFailed, err)
	}
	return outcome.Resolved(value)
}
