// Package home locates the nvmd state directory.
package home

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
)

// EnvHome overrides the nvmd home directory.
const EnvHome = "NVMD_HOME"

// DirName is the nvmd directory created under the user's home.
const DirName = ".nvmd"

// ErrNoHome is returned when no home directory can be determined.
var ErrNoHome = errors.New(messages.HomeNotFound)

// System is the environment access needed to locate the home directory.
type System interface {
	Getenv(key string) string
	UserHomeDir() (string, error)
}

// UserHomeDir returns the current user's home directory via go-homedir,
// which also works when HOME is unset on POSIX systems.
func UserHomeDir() (string, error) {
	dir, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(dir) == "" {
		return "", ErrNoHome
	}
	return dir, nil
}

// Resolve returns the absolute nvmd home directory: $NVMD_HOME when set,
// otherwise <user home>/.nvmd.
func Resolve(sys System) (string, error) {
	if override := strings.TrimSpace(sys.Getenv(EnvHome)); override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf(messages.HomeResolveFailedFmt, err)
		}
		return abs, nil
	}
	userHome, err := sys.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf(messages.HomeResolveFailedFmt, errors.Join(ErrNoHome, err))
	}
	if strings.TrimSpace(userHome) == "" {
		return "", fmt.Errorf(messages.HomeResolveFailedFmt, ErrNoHome)
	}
	return filepath.Join(userHome, DirName), nil
}
