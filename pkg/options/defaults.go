package options

const (
	// DefaultDataDir is the base directory ignitedb stores segments and its
	// engine marker file under when no directory is specified.
	DefaultDataDir = "."

	// DefaultAddr is the listen/dial address used when none is configured.
	DefaultAddr = "127.0.0.1:4000"

	// DefaultEngineName selects the native log-structured engine.
	DefaultEngineName = "kvs"

	// DefaultPoolKind selects the shared-queue worker pool.
	DefaultPoolKind = "shared"

	// DefaultFilesizeLimit is the byte threshold at which the active segment
	// rolls over. Deliberately small; production deployments would raise it.
	DefaultFilesizeLimit int64 = 1024

	// DefaultCompactionThresh is the segment-id multiple at which a rollover
	// may start a compaction (every second rollover, as ids advance by two).
	DefaultCompactionThresh uint64 = 4

	// MinFilesizeLimit is the smallest accepted rollover threshold.
	MinFilesizeLimit int64 = 64

	// MaxSegmentID is the largest decimal integer a segment filename may encode.
	MaxSegmentID uint64 = 65535
)

// defaultOptions holds the configuration values NewDefaultOptions returns.
var defaultOptions = Options{
	DataDir:          DefaultDataDir,
	Addr:             DefaultAddr,
	EngineName:       DefaultEngineName,
	PoolKind:         DefaultPoolKind,
	Threads:          0,
	FilesizeLimit:    DefaultFilesizeLimit,
	CompactionThresh: DefaultCompactionThresh,
}

// NewDefaultOptions returns a copy of the default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
