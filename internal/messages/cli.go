package messages

// CLI text for nvmd-env.
const (
	RootUse   = "nvmd-env"
	RootShort = "Show how the nvmd shim resolves versions and PATH"
	RootLong  = `nvmd-env runs the same resolution the nvmd shim performs before it
launches node, npm or npx, and prints the result.

Inputs are read from $NVMD_HOME (default ~/.nvmd): setting.json, default and
shim.toml, plus .nvmdrc in the current directory.`

	RootFlagVerbose = "Increase log verbosity (repeatable)"
	RootFlagNoColor = "Disable colored output"
	RootFlagBinary  = "Also resolve binary mode (runs the package manager)"
	RootFlagFamily  = "Platform family for layout and PATH encoding: posix or windows (default: this platform)"

	VersionUse   = "version"
	VersionShort = "Print the selected version"

	PathUse        = "path"
	PathShort      = "Print the augmented PATH (empty when PATH should not change)"
	PathFlagBinary = "Use binary mode (package manager global prefix)"
	PathFlagShell  = "Print a shell export statement instead of the bare value"

	PrefixUse   = "prefix"
	PrefixShort = "Print the package manager global prefix"

	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	ReportHomeLabel       = "home"
	ReportRootLabel       = "installation root"
	ReportVersionLabel    = "version"
	ReportToolchainLabel  = "toolchain bin"
	ReportPathLabel       = "toolchain PATH"
	ReportPrefixLabel     = "global prefix"
	ReportBinaryLabel     = "binary bin"
	ReportBinaryPathLabel = "binary PATH"
	ReportNoOverride      = "(no override)"
	ReportNone            = "(none)"
	ReportLineFmt         = "%-18s %s%s\n"
	ReportReasonFmt       = " [%s: %s]"
	ReportSelectionFmt    = "%s (%s)"

	ShellExportFmt = "export PATH=%s\n"
	ShellSetWinFmt = "set PATH=%s\n"
	ExitStatusFmt  = "exit %d"
)
