// Package layout computes where a version keeps its executables.
package layout

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
)

// Family is the platform family that decides the on-disk layout.
type Family int

const (
	// FamilyPOSIX installs executables under <version>/bin.
	FamilyPOSIX Family = iota
	// FamilyWindows installs executables directly under <version>.
	FamilyWindows
)

// BinDirName is the executable subdirectory on POSIX systems.
const BinDirName = "bin"

// CurrentFamily returns the family of the running platform.
func CurrentFamily() Family {
	return FamilyFor(runtime.GOOS)
}

// FamilyFor maps a GOOS value onto a platform family.
func FamilyFor(goos string) Family {
	if goos == "windows" {
		return FamilyWindows
	}
	return FamilyPOSIX
}

// ParseFamily parses "posix" or "windows".
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "posix", "unix":
		return FamilyPOSIX, nil
	case "windows":
		return FamilyWindows, nil
	default:
		return FamilyPOSIX, fmt.Errorf(messages.LayoutUnknownFamilyFmt, name)
	}
}

func (f Family) String() string {
	if f == FamilyWindows {
		return "windows"
	}
	return "posix"
}

// BinDir returns the executable directory under base: base/bin on POSIX,
// base itself on Windows. An empty base yields "".
func BinDir(f Family, base string) string {
	if base == "" {
		return ""
	}
	if f == FamilyWindows {
		return filepath.Clean(base)
	}
	return filepath.Join(base, BinDirName)
}

// VersionBinDir returns the executable directory of version under root.
// version is trimmed of surrounding whitespace; an empty root or version yields "".
func VersionBinDir(f Family, root string, version string) string {
	version = strings.TrimSpace(version)
	if root == "" || version == "" {
		return ""
	}
	return BinDir(f, filepath.Join(root, version))
}
