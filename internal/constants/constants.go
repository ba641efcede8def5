// Package constants provides shared constants for the navkit behavior
// execution system. Keeping enums and default timing values here avoids
// import cycles between the domain, supervisor, and harness packages.
package constants

import "time"

// Application constants.
const (
	// AppName is the application name used in help output and config paths.
	AppName = "navkit"

	// NavkitHome is the directory name for navkit's home directory (~/.navkit).
	NavkitHome = ".navkit"

	// LogsDir is the subdirectory for log files within navkit home.
	LogsDir = "logs"

	// CLILogFileName is the filename for the rotating CLI log.
	CLILogFileName = "navkit.log"
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size of a log file before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of rotated log files.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Default timing values for the execution protocol. All of these can be
// overridden through configuration; the defaults match the behavior of
// typical control loops (10 Hz cycle) and conservative client budgets.
const (
	// DefaultCyclePeriod is the fixed period between scheduler ticks
	// while a behavior instance is running.
	DefaultCyclePeriod = 100 * time.Millisecond

	// DefaultCancelGrace is the bounded grace period a behavior has to
	// reach a terminal state after cancellation is requested.
	DefaultCancelGrace = 2 * time.Second

	// DefaultServerWaitTimeout is how long a client waits for the action
	// server to become available before reporting ServerUnavailable.
	DefaultServerWaitTimeout = 4 * time.Second

	// DefaultResultTimeout bounds a single AwaitResult call.
	DefaultResultTimeout = 10 * time.Second

	// DefaultMotionDuration is the simulated motion time used by the
	// conformance test behavior before it reports success.
	DefaultMotionDuration = 5 * time.Second
)

// Default planning harness values.
const (
	// DefaultEndpointTolerance is the maximum allowed deviation between a
	// requested start/goal position and the corresponding path endpoint.
	// Zero means exact equality is required.
	DefaultEndpointTolerance = 0.0

	// DefaultRandomTrials is the number of trials in a randomized batch run.
	DefaultRandomTrials = 100

	// DefaultAcceptableFailRatio is the failure ratio above which a
	// randomized batch run is declared failed overall.
	DefaultAcceptableFailRatio = 0.1
)
