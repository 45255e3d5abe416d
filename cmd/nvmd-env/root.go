package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvmd-desktop/nvmd-shim/internal/config"
	"github.com/nvmd-desktop/nvmd-shim/internal/home"
	"github.com/nvmd-desktop/nvmd-shim/internal/layout"
	"github.com/nvmd-desktop/nvmd-shim/internal/logging"
	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
	"github.com/nvmd-desktop/nvmd-shim/internal/resolve"
	"github.com/nvmd-desktop/nvmd-shim/internal/terminal"
)

// app holds state shared by all subcommands of one invocation.
type app struct {
	sys     resolve.System
	verbose int
	noColor bool
	family  string

	rc       *resolve.Context
	closeLog func() error
}

func newRootCmd(sys resolve.System) *cobra.Command {
	a := &app{sys: sys}
	var binary bool

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.start(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.stop()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := a.rc.Snapshot(cmd.Context(), binary)
			writeReport(cmd.OutOrStdout(), snap)
			if snap.Binary != nil {
				if _, err := snap.Binary.Path.Get(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", messages.RootFlagVerbose)
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, messages.RootFlagNoColor)
	cmd.PersistentFlags().StringVar(&a.family, "family", "", messages.RootFlagFamily)
	cmd.Flags().BoolVar(&binary, "binary", false, messages.RootFlagBinary)

	cmd.AddCommand(newVersionCmd(a), newPathCmd(a), newPrefixCmd(a))
	return cmd
}

// start configures logging from the environment and shim.toml, then builds
// the resolution context with the already-loaded config.
func (a *app) start(cmd *cobra.Command) error {
	opts := resolve.DefaultOptions()
	if a.family != "" {
		family, err := layout.ParseFamily(a.family)
		if err != nil {
			return err
		}
		opts.Family = family
	}

	stderr := cmd.ErrOrStderr()
	color.NoColor = a.noColor || !terminal.IsTerminal(cmd.OutOrStdout())

	homeDir, _ := home.Resolve(a.sys)
	cfg, cfgErr := config.Load(config.DefaultPaths(homeDir).ConfigPath, a.sys.ReadFile)

	level := a.sys.Getenv(logging.EnvLevel)
	if level == "" {
		level = cfg.Log.Level
	}
	a.closeLog = logging.Setup(logging.Options{
		Level:     level,
		Verbosity: a.verbose,
		File:      cfg.Log.File || logging.FileRequested(a.sys.Getenv),
		Out:       stderr,
		NoColor:   a.noColor || !terminal.IsTerminal(stderr),
	})
	if cfgErr != nil {
		logger := logging.Component("config")
		logger.Warn().Err(cfgErr).Msg("ignoring shim config")
	}

	opts.Config = &cfg
	a.rc = resolve.New(a.sys, opts)
	return nil
}

func (a *app) stop() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}
