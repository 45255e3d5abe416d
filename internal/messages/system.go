package messages

// System messages for version resolution.
const (
	// HomeNotFound indicates the user home directory could not be determined.
	HomeNotFound         = "user home directory not found"
	HomeResolveFailedFmt = "resolve nvmd home: %w"

	SettingsReadFailedFmt     = "read settings %s: %w"
	SettingsDegradedFmt       = "settings %s ignored (%s); using %s"
	SettingsInvalidJSONFmt    = "parse settings JSON: %w"
	SelectorReadFailedFmt     = "read version file %s: %w"
	SelectorGetwdFailedFmt    = "determine working directory: %w"
	SelectorNoVersionSelected = "no version selected (no .nvmdrc in working directory and no default file)"

	// LayoutUnknownFamilyFmt formats unknown platform family names.
	LayoutUnknownFamilyFmt = "unknown platform family %q"

	PathenvInvalidEntryFmt  = "search path entry %q contains %q"
	PathenvBinDirMissingFmt = "bin directory %s does not exist"
	PathenvBinDirNotDirFmt  = "bin directory %s is not a directory"
	PathenvBinDirStatFmt    = "check bin directory %s: %w"

	PrefixSpawnFailed         = "package manager could not be started"
	PrefixSpawnFailedFmt      = "spawn %s: %w"
	PrefixLookupFailedFmt     = "find %s on PATH: %w"
	PrefixReadOutputFmt       = "read %s output: %w"
	PrefixTimedOut            = "package manager prefix probe timed out"
	PrefixTimedOutFmt         = "%s did not finish within %s"
	PrefixCancelled           = "package manager prefix probe cancelled"
	PrefixNameRequired        = "package manager name is required"
	PrefixNpmrcReadFailedFmt  = "read %s: %w"
	PrefixNpmrcParseFailedFmt = "parse %s: %w"

	ConfigInvalid            = "invalid shim config"
	ConfigReadFailedFmt      = "read shim config %s: %w"
	ConfigParseFailedFmt     = "parse shim config %s: %w"
	ConfigInvalidSourceFmt   = "probe.source %q must be one of %s"
	ConfigNegativeTimeoutFmt = "probe.timeout %s must not be negative"
	ConfigInvalidDurationFmt = "invalid duration %q: %w"
	ConfigInvalidLogLevelFmt = "log.level %q is not a known level"

	LoggingOpenFileFmt  = "open log file %s: %w"
	LoggingCreateDirFmt = "create log directory %s: %w"
	LoggingFileFallback = "log file unavailable, logging to stderr only"

	// ShimErrExitCodeFmt formats an exit-code error.
	ShimErrExitCodeFmt = "exit status %d"
)
