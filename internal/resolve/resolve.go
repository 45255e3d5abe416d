// Package resolve runs the shim's resolution chain: nvmd home, installation
// root, selected version, version bin directory and the two augmented PATH
// values. A Context computes each value at most once and is safe for
// concurrent use; construct one per process and pass it to whoever needs it.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nvmd-desktop/nvmd-shim/internal/config"
	"github.com/nvmd-desktop/nvmd-shim/internal/envslice"
	"github.com/nvmd-desktop/nvmd-shim/internal/home"
	"github.com/nvmd-desktop/nvmd-shim/internal/layout"
	"github.com/nvmd-desktop/nvmd-shim/internal/logging"
	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
	"github.com/nvmd-desktop/nvmd-shim/internal/outcome"
	"github.com/nvmd-desktop/nvmd-shim/internal/pathenv"
	"github.com/nvmd-desktop/nvmd-shim/internal/prefix"
	"github.com/nvmd-desktop/nvmd-shim/internal/selector"
	"github.com/nvmd-desktop/nvmd-shim/internal/settings"
)

// Reasons reported by the context itself; component reasons pass through unchanged.
const (
	ReasonNoHome        = "no-home"
	ReasonNoPrefix      = "no-prefix"
	ReasonProbeDegraded = "probe-degraded"
	ReasonSpawnFailed   = "spawn-failed"
)

// Options tunes a Context. The zero value resolves for the POSIX family,
// loads shim.toml from the nvmd home and probes the configured package manager.
type Options struct {
	Family layout.Family
	// Config replaces shim.toml when set.
	Config *config.Config
	// PrefixSource replaces the source chosen by Config.Probe.Source.
	PrefixSource prefix.Source
	// Logger defaults to the global logger tagged component=resolve.
	Logger *zerolog.Logger
}

// DefaultOptions returns options for the running platform.
func DefaultOptions() Options {
	return Options{Family: layout.CurrentFamily()}
}

// Context memoizes every resolved value for the lifetime of a shim process.
type Context struct {
	sys    System
	opts   Options
	logger zerolog.Logger

	home      func() outcome.Result[string]
	config    func() config.Config
	root      func() outcome.Result[string]
	selection func() outcome.Result[selector.Selection]
	toolchain func() outcome.Result[string]

	binaryOnce sync.Once
	binary     binaryState
}

type binaryState struct {
	prefix outcome.Result[string]
	binDir string
	path   outcome.Result[string]
}

// New returns a Context backed by sys. Nothing is resolved until first use.
func New(sys System, opts Options) *Context {
	if sys == nil {
		sys = RealSystem{}
	}
	c := &Context{sys: sys, opts: opts}
	if opts.Logger != nil {
		c.logger = *opts.Logger
	} else {
		c.logger = logging.Component("resolve")
	}
	c.home = sync.OnceValue(c.resolveHome)
	c.config = sync.OnceValue(c.loadConfig)
	c.root = sync.OnceValue(c.resolveRoot)
	c.selection = sync.OnceValue(c.resolveSelection)
	c.toolchain = sync.OnceValue(c.resolveToolchainPath)
	return c
}

// Family returns the platform family used for layout and PATH encoding.
func (c *Context) Family() layout.Family {
	return c.opts.Family
}

// Home returns the nvmd home directory. It is Defaulted to "" when no home
// directory can be determined, in which case only .nvmdrc is consulted.
func (c *Context) Home() outcome.Result[string] {
	return c.home()
}

// Config returns the shim tunables.
func (c *Context) Config() config.Config {
	return c.config()
}

// InstallationRoot returns the directory holding per-version installs.
func (c *Context) InstallationRoot() outcome.Result[string] {
	return c.root()
}

// Selection returns the selected version and where it came from.
func (c *Context) Selection() outcome.Result[selector.Selection] {
	return c.selection()
}

// Version returns the selected version exactly as read, possibly empty.
func (c *Context) Version() string {
	return c.selection().Value.Version
}

// ToolchainBinDir returns the selected version's executable directory, or ""
// when no version is selected. The directory may not exist.
func (c *Context) ToolchainBinDir() string {
	return layout.VersionBinDir(c.opts.Family, c.root().Value, c.Version())
}

// ToolchainPath returns PATH with the version bin directory prepended, or the
// empty sentinel when PATH must not be changed.
func (c *Context) ToolchainPath() outcome.Result[string] {
	return c.toolchain()
}

// GlobalPrefix returns the package manager's global prefix. The first call
// runs the probe with ctx; later calls return the memoized result.
// The result is Failed only when the package manager could not be started;
// the error is then a *shimerr.Error wrapping prefix.ErrSpawn.
func (c *Context) GlobalPrefix(ctx context.Context) outcome.Result[string] {
	return c.resolveBinary(ctx).prefix
}

// BinaryBinDir returns the executable directory under the global prefix, or ""
// when the prefix is unknown.
func (c *Context) BinaryBinDir(ctx context.Context) string {
	return c.resolveBinary(ctx).binDir
}

// BinaryPath returns PATH with the global prefix bin directory prepended, or
// the empty sentinel. It fails only when GlobalPrefix fails.
func (c *Context) BinaryPath(ctx context.Context) outcome.Result[string] {
	return c.resolveBinary(ctx).path
}

func (c *Context) resolveHome() outcome.Result[string] {
	dir, err := home.Resolve(c.sys)
	if err != nil {
		c.logger.Warn().Err(err).Msg(messages.HomeNotFound)
		return outcome.Defaulted("", ReasonNoHome, err)
	}
	return outcome.Resolved(dir)
}

func (c *Context) loadConfig() config.Config {
	if c.opts.Config != nil {
		return *c.opts.Config
	}
	path := config.DefaultPaths(c.home().Value).ConfigPath
	cfg, err := config.Load(path, c.sys.ReadFile)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("ignoring shim config")
	}
	return cfg
}

func (c *Context) resolveRoot() outcome.Result[string] {
	result := settings.ResolveInstallationRoot(c.sys, c.home().Value)
	switch {
	case result.Status == outcome.StatusResolved:
		c.logger.Debug().Str("root", result.Value).Msg("installation root from settings")
	case result.Reason == settings.ReasonMissing || result.Reason == settings.ReasonNoHome:
		c.logger.Debug().Str("root", result.Value).Str("reason", result.Reason).Msg("using default installation root")
	default:
		settingsPath := config.DefaultPaths(c.home().Value).SettingsPath
		c.logger.Warn().Err(result.Err).Str("reason", result.Reason).
			Msg(fmt.Sprintf(messages.SettingsDegradedFmt, settingsPath, result.Reason, result.Value))
	}
	return result
}

func (c *Context) resolveSelection() outcome.Result[selector.Selection] {
	result := selector.ResolveVersion(c.sys, c.home().Value)
	var event *zerolog.Event
	if result.Err != nil {
		event = c.logger.Warn().Err(result.Err)
	} else {
		event = c.logger.Debug()
	}
	if result.Degraded() {
		event.Str("reason", result.Reason).Msg(messages.SelectorNoVersionSelected)
	} else {
		event.Str("version", strings.TrimSpace(result.Value.Version)).
			Str("source", string(result.Value.Source)).
			Str("path", result.Value.Path).
			Msg("version selected")
	}
	return result
}

func (c *Context) resolveToolchainPath() outcome.Result[string] {
	inherited, present := c.sys.LookupEnv(pathenv.Key)
	result := pathenv.Compose(c.sys, c.opts.Family, c.Version(), c.ToolchainBinDir(), inherited, present)
	c.logComposed("toolchain", result)
	return result
}

func (c *Context) resolveBinary(ctx context.Context) binaryState {
	c.binaryOnce.Do(func() {
		c.binary = c.computeBinary(ctx)
	})
	return c.binary
}

func (c *Context) computeBinary(ctx context.Context) binaryState {
	if strings.TrimSpace(c.Version()) == "" {
		return binaryState{
			prefix: outcome.Defaulted("", pathenv.ReasonNoVersion, nil),
			path:   outcome.Defaulted("", pathenv.ReasonNoVersion, nil),
		}
	}

	prefixResult := c.probePrefix(ctx)
	if prefixResult.Status == outcome.StatusFailed {
		return binaryState{
			prefix: prefixResult,
			path:   outcome.Failed[string](prefixResult.Reason, prefixResult.Err),
		}
	}

	binDir := layout.BinDir(c.opts.Family, prefixResult.Value)
	inherited, present := c.sys.LookupEnv(pathenv.Key)
	path := pathenv.Compose(c.sys, c.opts.Family, c.Version(), binDir, inherited, present)
	c.logComposed("binary", path)
	return binaryState{prefix: prefixResult, binDir: binDir, path: path}
}

func (c *Context) probePrefix(ctx context.Context) outcome.Result[string] {
	found, err := c.prefixSource().GlobalPrefix(ctx, c.childEnv())
	switch {
	case err != nil && errors.Is(err, prefix.ErrSpawn):
		c.logger.Error().Err(err).Msg(messages.PrefixSpawnFailed)
		return outcome.Failed[string](ReasonSpawnFailed, err)
	case err != nil:
		c.logger.Warn().Err(err).Str("prefix", found).Msg("global prefix probe degraded")
		return outcome.Defaulted(found, ReasonProbeDegraded, err)
	case found == "":
		c.logger.Debug().Msg("package manager reported no usable prefix")
		return outcome.Defaulted("", ReasonNoPrefix, nil)
	default:
		c.logger.Debug().Str("prefix", found).Msg("global prefix resolved")
		return outcome.Resolved(found)
	}
}

// childEnv is the inherited environment with PATH replaced by the toolchain
// path, so the selected version's package manager answers the probe.
func (c *Context) childEnv() []string {
	env := c.sys.Environ()
	augmented := c.ToolchainPath().Value
	if augmented == "" {
		return env
	}
	if c.opts.Family == layout.FamilyWindows {
		return envslice.SetFold(env, pathenv.Key, augmented)
	}
	return envslice.Set(env, pathenv.Key, augmented)
}

func (c *Context) prefixSource() prefix.Source {
	if c.opts.PrefixSource != nil {
		return c.opts.PrefixSource
	}
	cfg := c.Config()
	if cfg.Probe.Source == config.SourceNpmrc {
		userHome, _ := c.sys.UserHomeDir()
		return &prefix.NpmrcSource{UserHome: userHome, ReadFile: c.sys.ReadFile, IsDir: c.isDir}
	}
	return &prefix.CommandSource{
		Name:    cfg.Probe.PackageManager,
		Args:    prefix.DefaultArgs,
		Family:  c.opts.Family,
		Timeout: cfg.ProbeTimeout(),
		IsDir:   c.isDir,
		Logger:  c.logger,
	}
}

func (c *Context) isDir(path string) bool {
	info, err := c.sys.Stat(path)
	return err == nil && info.IsDir()
}

func (c *Context) logComposed(mode string, result outcome.Result[string]) {
	if result.Degraded() {
		c.logger.Debug().Err(result.Err).Str("mode", mode).Str("reason", result.Reason).Msg("PATH left unchanged")
		return
	}
	c.logger.Debug().Str("mode", mode).Msg("PATH augmented")
}
