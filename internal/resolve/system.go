package resolve

import (
	"io/fs"
	"os"

	"github.com/nvmd-desktop/nvmd-shim/internal/home"
)

// System abstracts the OS operations needed by resolution so tests can run
// in parallel without touching process-wide state.
type System interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
	Environ() []string
	Getwd() (string, error)
	UserHomeDir() (string, error)
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// LookupEnv returns the value of key and whether it is set.
func (RealSystem) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// Getwd returns the current working directory.
func (RealSystem) Getwd() (string, error) {
	return os.Getwd()
}

// UserHomeDir returns the current user's home directory.
func (RealSystem) UserHomeDir() (string, error) {
	return home.UserHomeDir()
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Stat returns file information for name.
func (RealSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}
