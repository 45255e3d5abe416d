package prefix

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/execabs"

	"github.com/nvmd-desktop/nvmd-shim/internal/layout"
	"github.com/nvmd-desktop/nvmd-shim/internal/pathenv"
)

const defaultPathext = ".COM;.EXE;.BAT;.CMD"

var statFn = os.Stat

// LookPath finds name on pathValue, the child's PATH rather than the PATH of
// the current process, so the package manager of the selected version wins.
// Relative PATH entries are skipped. When hasPath is false the current
// process PATH is searched instead.
func LookPath(f layout.Family, name string, pathValue string, hasPath bool, pathext string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return execabs.LookPath(name)
	}
	if !hasPath {
		return execabs.LookPath(name)
	}
	for _, dir := range pathenv.Split(f, pathValue) {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		for _, candidate := range candidates(f, name, pathext) {
			path := filepath.Join(dir, candidate)
			if isExecutable(f, path) {
				return path, nil
			}
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// candidates expands name with PATHEXT on Windows.
func candidates(f layout.Family, name string, pathext string) []string {
	if f != layout.FamilyWindows {
		return []string{name}
	}
	if strings.TrimSpace(pathext) == "" {
		pathext = defaultPathext
	}
	var exts []string
	for _, ext := range strings.Split(strings.ToLower(pathext), ";") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	lowerName := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lowerName, ext) {
			return []string{name}
		}
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, name+ext)
	}
	return out
}

func isExecutable(f layout.Family, path string) bool {
	info, err := statFn(path)
	if err != nil || info.IsDir() {
		return false
	}
	if f == layout.FamilyWindows {
		return true
	}
	return info.Mode()&fs.FileMode(0o111) != 0
}
