// Package prefix discovers the package manager's configured global install
// prefix, which binary mode puts on PATH instead of a version directory.
package prefix

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
)

// DefaultArgs asks npm-compatible package managers for their global prefix.
var DefaultArgs = []string{"config", "get", "prefix"}

// ErrSpawn marks a package manager that could not be started at all.
// Errors wrapping it are fatal for binary-mode resolution.
var ErrSpawn = errors.New(messages.PrefixSpawnFailed)

// ErrTimeout marks a probe that was cut short by its timeout.
var ErrTimeout = errors.New(messages.PrefixTimedOut)

// ErrCancelled marks a probe whose context was cancelled by the caller.
var ErrCancelled = errors.New(messages.PrefixCancelled)

// Source reports the global install prefix. env is the environment the
// package manager should see; sources that do not spawn anything may still
// read configuration variables from it. An empty prefix with a nil error
// means the source had no answer.
type Source interface {
	GlobalPrefix(ctx context.Context, env []string) (string, error)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// LastDirLine reads r to the end and returns the last line that names an
// existing directory according to isDir. Banner or log lines printed before
// the real answer are therefore ignored. Line endings (\n or \r\n) are
// stripped; no other trimming is applied.
func LastDirLine(r io.Reader, isDir func(string) bool) (string, error) {
	if isDir == nil {
		isDir = IsDir
	}
	reader := bufio.NewReader(r)
	last := ""
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if line != "" && isDir(line) {
				last = line
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return last, nil
			}
			return last, err
		}
	}
}
