package prefix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/execabs"

	"github.com/nvmd-desktop/nvmd-shim/internal/layout"
	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
	"github.com/nvmd-desktop/nvmd-shim/internal/shimerr"
)

// waitDelay bounds how long Wait keeps copying output after a timed-out child is killed.
var waitDelay = 2 * time.Second

// CommandSource asks the package manager itself by running `<Name> <Args...>`
// and keeping the last output line that is an existing directory.
type CommandSource struct {
	// Name is the package manager executable, looked up on the PATH of the
	// environment passed to GlobalPrefix.
	Name string
	// Args defaults to DefaultArgs.
	Args []string
	// Family selects the PATH encoding used for the lookup.
	Family layout.Family
	// Timeout of zero waits for the child indefinitely.
	Timeout time.Duration
	// IsDir defaults to the real filesystem check.
	IsDir  func(string) bool
	Logger zerolog.Logger
}

// GlobalPrefix runs the package manager and returns its reported prefix.
// Failure to find or start the executable returns a *shimerr.Error wrapping
// ErrSpawn. A non-zero exit is not an error: whatever valid line was printed
// still counts. A timeout returns the lines read so far with an error
// wrapping ErrTimeout.
func (s *CommandSource) GlobalPrefix(ctx context.Context, env []string) (string, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return "", shimerr.Message(messages.PrefixNameRequired, ErrSpawn)
	}
	pathValue, hasPath := lookupEnv(s.Family, env, "PATH")
	pathext, _ := lookupEnv(s.Family, env, "PATHEXT")
	bin, err := LookPath(s.Family, name, pathValue, hasPath, pathext)
	if err != nil {
		return "", spawnError(name, fmt.Errorf(messages.PrefixLookupFailedFmt, name, err))
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	args := s.Args
	if len(args) == 0 {
		args = DefaultArgs
	}
	cmd := execabs.CommandContext(ctx, bin, args...)
	cmd.Env = env
	cmd.WaitDelay = waitDelay
	pr, pw := io.Pipe()
	cmd.Stdout = pw

	s.Logger.Debug().Str("command", bin).Strs("args", args).Msg("probing global prefix")
	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		_ = pr.Close()
		if ctxErr := s.contextError(ctx, name); ctxErr != nil {
			return "", ctxErr
		}
		return "", spawnError(name, err)
	}

	type scanResult struct {
		prefix string
		err    error
	}
	done := make(chan scanResult, 1)
	go func() {
		found, scanErr := LastDirLine(pr, s.IsDir)
		_, _ = io.Copy(io.Discard, pr)
		done <- scanResult{prefix: found, err: scanErr}
	}()

	waitErr := cmd.Wait()
	_ = pw.Close()
	result := <-done

	if ctxErr := s.contextError(ctx, name); ctxErr != nil {
		return result.prefix, ctxErr
	}
	if result.err != nil {
		s.Logger.Debug().Err(fmt.Errorf(messages.PrefixReadOutputFmt, name, result.err)).Msg("ignoring unreadable package manager output")
	}
	if waitErr != nil {
		s.Logger.Debug().Err(waitErr).Int("exit_code", shimerr.ExitCode(shimerr.FromRun(waitErr))).Str("command", name).Msg("package manager exited with an error")
	}
	return result.prefix, nil
}

// contextError returns a non-fatal error when ctx ended the probe: ErrTimeout
// for an expired deadline, ErrCancelled otherwise. It returns nil while ctx is live.
func (s *CommandSource) contextError(ctx context.Context, name string) error {
	switch err := ctx.Err(); {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		s.Logger.Warn().Str("command", name).Dur("timeout", s.Timeout).Msg(messages.PrefixTimedOut)
		return fmt.Errorf("%w: %s", ErrTimeout, fmt.Sprintf(messages.PrefixTimedOutFmt, name, s.Timeout))
	default:
		s.Logger.Warn().Str("command", name).Msg(messages.PrefixCancelled)
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
}

func spawnError(name string, cause error) error {
	wrapped := fmt.Errorf(messages.PrefixSpawnFailedFmt, name, cause)
	return shimerr.Message(wrapped.Error(), fmt.Errorf("%w: %w", ErrSpawn, wrapped))
}

// lookupEnv finds key in env, ignoring case on Windows.
func lookupEnv(f layout.Family, env []string, key string) (string, bool) {
	value, found := "", false
	for _, entry := range env {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == key || (f == layout.FamilyWindows && strings.EqualFold(k, key)) {
			value, found = v, true
		}
	}
	return value, found
}
