package errors

// AddressError reports a socket address that failed to parse, whether supplied
// as a server listen address or a client dial address.
type AddressError struct {
	*baseError
	address string
}

// NewAddressError creates a new address-specific error.
func NewAddressError(err error, msg string) *AddressError {
	return &AddressError{baseError: NewBaseError(err, ErrorCodeAddress, msg)}
}

// WithAddress records the address string that failed to parse.
func (ae *AddressError) WithAddress(address string) *AddressError {
	ae.address = address
	return ae
}

// Address returns the address string that failed to parse.
func (ae *AddressError) Address() string {
	return ae.address
}

// PoolInitError reports a worker pool that failed to construct.
type PoolInitError struct {
	*baseError
	kind    string
	threads int
}

// NewPoolInitError creates a new pool-construction error.
func NewPoolInitError(err error, msg string) *PoolInitError {
	return &PoolInitError{baseError: NewBaseError(err, ErrorCodePoolInit, msg)}
}

// WithKind records which pool variant failed to construct.
func (pe *PoolInitError) WithKind(kind string) *PoolInitError {
	pe.kind = kind
	return pe
}

// WithThreads records the requested worker count.
func (pe *PoolInitError) WithThreads(threads int) *PoolInitError {
	pe.threads = threads
	return pe
}

// Kind returns which pool variant failed to construct.
func (pe *PoolInitError) Kind() string {
	return pe.kind
}

// Threads returns the requested worker count.
func (pe *PoolInitError) Threads() int {
	return pe.threads
}

// ServerError wraps a message the server sent back to a client over the wire
// protocol's error field. The client never reconstructs the server's original
// error type — only the message survives the wire — so ServerError carries a
// plain string rather than a wrapped cause.
type ServerError struct {
	*baseError
}

// NewServerError creates a new server-relayed error from a wire response's
// error field.
func NewServerError(message string) *ServerError {
	return &ServerError{baseError: NewBaseError(nil, ErrorCodeServer, message)}
}
