package resolve

import (
	"context"

	"github.com/nvmd-desktop/nvmd-shim/internal/outcome"
	"github.com/nvmd-desktop/nvmd-shim/internal/selector"
)

// Snapshot is every resolved value with its status, for diagnostics.
type Snapshot struct {
	Home             outcome.Result[string]
	InstallationRoot outcome.Result[string]
	Selection        outcome.Result[selector.Selection]
	ToolchainBinDir  string
	ToolchainPath    outcome.Result[string]
	// Binary is nil unless binary mode was requested, since it spawns the package manager.
	Binary *BinarySnapshot
}

// BinarySnapshot holds the binary-mode values.
type BinarySnapshot struct {
	Prefix outcome.Result[string]
	BinDir string
	Path   outcome.Result[string]
}

// Snapshot resolves and returns all values. withBinary also runs the prefix probe.
func (c *Context) Snapshot(ctx context.Context, withBinary bool) Snapshot {
	snap := Snapshot{
		Home:             c.Home(),
		InstallationRoot: c.InstallationRoot(),
		Selection:        c.Selection(),
		ToolchainBinDir:  c.ToolchainBinDir(),
		ToolchainPath:    c.ToolchainPath(),
	}
	if withBinary {
		state := c.resolveBinary(ctx)
		snap.Binary = &BinarySnapshot{
			Prefix: state.prefix,
			BinDir: state.binDir,
			Path:   state.path,
		}
	}
	return snap
}
