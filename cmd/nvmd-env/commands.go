package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvmd-desktop/nvmd-shim/internal/layout"
	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
	"github.com/nvmd-desktop/nvmd-shim/internal/outcome"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version := strings.TrimSpace(a.rc.Version())
			if version == "" {
				return &SilentExitError{Code: 1}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}

func newPathCmd(a *app) *cobra.Command {
	var binary, shell bool
	cmd := &cobra.Command{
		Use:   messages.PathUse,
		Short: messages.PathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result outcome.Result[string]
			if binary {
				result = a.rc.BinaryPath(cmd.Context())
			} else {
				result = a.rc.ToolchainPath()
			}
			value, err := result.Get()
			if err != nil {
				return err
			}
			if value == "" {
				return nil
			}
			out := cmd.OutOrStdout()
			if !shell {
				_, err = fmt.Fprintln(out, value)
				return err
			}
			if a.rc.Family() == layout.FamilyWindows {
				_, err = fmt.Fprintf(out, messages.ShellSetWinFmt, value)
				return err
			}
			_, err = fmt.Fprintf(out, messages.ShellExportFmt, shellQuote(value))
			return err
		},
	}
	cmd.Flags().BoolVar(&binary, "binary", false, messages.PathFlagBinary)
	cmd.Flags().BoolVar(&shell, "shell", false, messages.PathFlagShell)
	return cmd
}

func newPrefixCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.PrefixUse,
		Short: messages.PrefixShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := a.rc.GlobalPrefix(cmd.Context()).Get()
			if err != nil {
				return err
			}
			if value == "" {
				return &SilentExitError{Code: 1}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

// shellQuote wraps value in single quotes for POSIX shells.
func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
