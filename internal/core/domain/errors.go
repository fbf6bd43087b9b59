package domain

import "go.trai.ch/zerr"

var (
	// ErrDumpStat is returned when a dump file cannot be stat'd for fingerprinting.
	ErrDumpStat = zerr.New("failed to stat dump file")

	// ErrUnknownOperation is returned when an operation name does not match any known plugin.
	ErrUnknownOperation = zerr.New("unknown operation")

	// ErrAnalysisFailed is returned when the underlying analyzer fails.
	ErrAnalysisFailed = zerr.New("analysis failed")

	// ErrNoOperations is returned when an analysis request names no operations.
	ErrNoOperations = zerr.New("no operations specified")

	// ErrAnalyzerExec is returned when the volatility process cannot be started or exits non-zero.
	ErrAnalyzerExec = zerr.New("failed to execute volatility")

	// ErrAnalyzerOutput is returned when analyzer output cannot be parsed.
	ErrAnalyzerOutput = zerr.New("failed to parse analyzer output")

	// ErrWatchFailed is returned when a path cannot be added to the file watcher.
	ErrWatchFailed = zerr.New("failed to watch file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)
