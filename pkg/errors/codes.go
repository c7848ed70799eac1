package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary. This includes file system operations like reading or
	// writing segment files, network operations when communicating with remote
	// systems, and device I/O when accessing storage hardware.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints. This maps
	// to HTTP 400-series errors and indicates problems with the request itself
	// rather than system failures.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories. These are the equivalent of HTTP 500 errors and
	// indicate bugs, assertion failures, or other programming errors that
	// shouldn't occur during normal operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes extend the base error taxonomy to handle the
// unique failure modes that occur in persistent storage systems. These codes
// represent problems that are specific to the storage layer of your key-value
// store, particularly focusing on segment file management and data persistence.
const (
	// ErrorCodeSegmentCorrupted indicates that a segment record could not be
	// decoded during replay — the segment's data has been
	// damaged or is in an inconsistent state.
	ErrorCodeSegmentCorrupted ErrorCode = "SEGMENT_CORRUPTED"

	// ErrorCodePermissionDenied indicates insufficient permissions to access a resource.
	// This is distinct from generic IO errors because it has a specific resolution path:
	// the user needs to adjust file/directory permissions or run with elevated privileges.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates that the storage device has run out of space.
	// This requires specific handling like cleanup operations or alerting administrators.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates that the filesystem is mounted read-only.
	// This requires administrative intervention to remount the filesystem with write permissions.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"
)

// Network and protocol error codes cover the request/response boundary: malformed
// wire objects, bad listen/dial addresses, and errors the server reflects back to
// a client verbatim.
const (
	// ErrorCodeCodec indicates a record or wire object could not be encoded or decoded.
	ErrorCodeCodec ErrorCode = "CODEC_ERROR"

	// ErrorCodeParse indicates a malformed integer, such as a segment id parsed
	// from a filename or a port parsed from a listen address.
	ErrorCodeParse ErrorCode = "PARSE_ERROR"

	// ErrorCodeEncoding indicates a byte-to-text conversion failure. Reserved for
	// the alternate, out-of-scope engine; the native engine never returns it.
	ErrorCodeEncoding ErrorCode = "ENCODING_ERROR"

	// ErrorCodeAddress indicates a socket address failed to parse.
	ErrorCodeAddress ErrorCode = "ADDRESS_ERROR"

	// ErrorCodePoolInit indicates a worker pool failed to construct, e.g. an
	// invalid thread count or an underlying pool library rejecting its options.
	ErrorCodePoolInit ErrorCode = "POOL_INIT_ERROR"

	// ErrorCodeKeyNotFound is the logical, expected error returned by Remove
	// (and surfaced by Get as a clean miss rather than an error) when a key is
	// absent from the index.
	ErrorCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// ErrorCodeServer marks an error that originated on the server and was
	// relayed back to the client over the wire protocol.
	ErrorCodeServer ErrorCode = "SERVER_ERROR"

	// ErrorCodeCompactionFailed indicates the background compactor could not
	// complete a merge cycle; the engine remains consistent with whatever was
	// durably published before the failure.
	ErrorCodeCompactionFailed ErrorCode = "COMPACTION_FAILED"
)

// Index-specific error codes used by IndexError.
const (
	// ErrorCodeIndexKeyNotFound aliases ErrorCodeKeyNotFound for index-layer
	// lookups; kept distinct so a caller inspecting a raw IndexError doesn't
	// need to know the top-level alias exists.
	ErrorCodeIndexKeyNotFound = ErrorCodeKeyNotFound

	// ErrorCodeIndexInvalidSegmentID indicates an index entry points at a
	// segment id that no longer resolves to a file on disk.
	ErrorCodeIndexInvalidSegmentID ErrorCode = "INDEX_INVALID_SEGMENT_ID"

	// ErrorCodeIndexCorrupted indicates the in-memory index's invariants
	// (every key resolves to a live Set record) have been violated.
	ErrorCodeIndexCorrupted ErrorCode = "INDEX_CORRUPTED"
)
