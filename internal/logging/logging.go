// Package logging configures zerolog for the shim. The shim is silent by
// default: only warnings and errors reach stderr unless a level is requested.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
)

// Environment overrides.
const (
	EnvLevel   = "NVMD_SHIM_LOG"
	EnvLogFile = "NVMD_SHIM_LOG_FILE"
)

// DefaultLevel keeps a healthy shim quiet.
const DefaultLevel = zerolog.WarnLevel

// Options configures Setup.
type Options struct {
	// Level is a zerolog level name; empty means DefaultLevel.
	Level string
	// Verbosity raises the level by one step per count (warn -> info -> debug -> trace).
	Verbosity int
	// File also appends JSON lines to LogFilePath().
	File bool
	// Out defaults to os.Stderr.
	Out     io.Writer
	NoColor bool
}

// ParseLevel converts a level name, falling back to DefaultLevel for unknown
// or empty names.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return DefaultLevel
	}
	return level
}

// EffectiveLevel applies verbosity on top of the named level.
func EffectiveLevel(name string, verbosity int) zerolog.Level {
	level := ParseLevel(name)
	if level == zerolog.Disabled {
		if verbosity <= 0 {
			return level
		}
		level = DefaultLevel
	}
	for i := 0; i < verbosity && level > zerolog.TraceLevel; i++ {
		level--
	}
	return level
}

// Setup installs the global logger. The returned close function releases the
// log file, if one was opened.
func Setup(opts Options) func() error {
	level := EffectiveLevel(opts.Level, opts.Verbosity)
	zerolog.SetGlobalLevel(level)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	closeFn := func() error { return nil }
	var fileErr error
	logFile := LogFilePath()
	if opts.File {
		file, err := openLogFile(logFile)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, file)
			closeFn = file.Close
		}
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		log.Logger = log.Logger.With().Caller().Logger()
	}
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg(messages.LoggingFileFallback)
	}
	log.Debug().Str("level", level.String()).Bool("file", opts.File).Msg("logger initialized")
	return closeFn
}

// Component returns a child of the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// FileRequested reports whether the environment asks for a log file.
func FileRequested(getenv func(string) string) bool {
	switch strings.ToLower(strings.TrimSpace(getenv(EnvLogFile))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// LogFilePath returns <XDG_STATE_HOME>/nvmd/shim.log.
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, "nvmd", "shim.log")
}

func openLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf(messages.LoggingCreateDirFmt, dir, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LoggingOpenFileFmt, path, err)
	}
	return file, nil
}
