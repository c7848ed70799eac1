// Package server implements ignitedb's TCP front end: an accept loop that
// binds the configured address, a sticky engine-marker bootstrap that
// refuses to start against a store already committed to a different engine,
// and per-connection dispatch through a worker pool to one Set, Get, or
// Remove against the engine.
package server

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ignitedb/ignite/internal/enginekit"
	"github.com/ignitedb/ignite/internal/protocol"
	"github.com/ignitedb/ignite/internal/workerpool"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/filesys"
	"github.com/ignitedb/ignite/pkg/options"
)

const markerDir = "engine"

// Server binds a listener and dispatches accepted connections to a worker
// pool, each running one request/response exchange against engine.
type Server struct {
	listener net.Listener
	engine   enginekit.Engine
	pool     workerpool.Pool
	log      *zap.SugaredLogger
}

// Config holds the parameters needed to construct a Server.
type Config struct {
	Options *options.Options
	Engine  enginekit.Engine
	Pool    workerpool.Pool
	Logger  *zap.SugaredLogger
}

// New binds a TCP listener on config.Options.Addr and wraps config.Engine
// and config.Pool into a Server ready to Serve.
func New(config *Config) (*Server, error) {
	if config == nil || config.Options == nil || config.Engine == nil || config.Pool == nil || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "server configuration is required",
		).WithField("config").WithRule("required").WithProvided(config)
	}

	ln, err := net.Listen("tcp", config.Options.Addr)
	if err != nil {
		return nil, errors.NewAddressError(err, "failed to listen on configured address").
			WithAddress(config.Options.Addr)
	}

	return &Server{listener: ln, engine: config.Engine, pool: config.Pool, log: config.Logger}, nil
}

// EnsureStickyEngine enforces engine selection stickiness: if dir already
// carries a marker for a different engine name, it returns an error and the
// caller must refuse to start; otherwise it persists the current choice.
func EnsureStickyEngine(dir, name string) error {
	markerPath := filepath.Join(dir, markerDir, name)
	markerRoot := filepath.Join(dir, markerDir)

	rootExists, err := filesys.Exists(markerRoot)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat engine marker directory").
			WithPath(markerRoot)
	}
	if !rootExists {
		if err := filesys.CreateDir(markerRoot, 0755, true); err != nil {
			return errors.ClassifyDirectoryCreationError(err, markerRoot)
		}
		return writeMarker(markerPath)
	}

	existing, err := filesys.ReadDir(filepath.Join(markerRoot, "*"))
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read engine marker directory").
			WithPath(markerRoot)
	}

	for _, path := range existing {
		committed := filepath.Base(path)
		if committed == name {
			return nil // already committed to this engine
		}
		return errors.NewConfigurationValidationError(
			"engine", fmt.Sprintf("store directory is already committed to engine %q, refusing to start as %q", committed, name),
		)
	}

	return writeMarker(markerPath)
}

func writeMarker(path string) error {
	if err := filesys.WriteFile(path, 0644, []byte{}); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to persist engine marker").WithPath(path)
	}
	return nil
}

// Serve runs the accept loop until ctx is cancelled or the listener is
// closed. It never blocks on the worker pool itself: each accepted
// connection is handed to pool.Spawn, whose own contract governs whether
// that blocks.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		<-ctx.Done()
		return s.listener.Close()
	})

	s.log.Infow("server listening", "addr", s.listener.Addr().String())

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return group.Wait()
			}
			if strings.Contains(err.Error(), "use of closed network connection") {
				// Closed without ctx being cancelled: release the closer
				// goroutine, whose second Close error is expected here.
				cancel()
				_ = group.Wait()
				return nil
			}
			s.log.Errorw("accept failed", "error", err)
			continue
		}

		s.pool.Spawn(func() { s.handle(conn) })
	}
}

// handle decodes one request, dispatches it to the engine, encodes one
// response, and closes the connection. Decode and encode failures are
// logged; the connection is always closed.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	req, err := protocol.ReadRequest(conn)
	if err != nil {
		s.log.Errorw("failed to decode request", "error", err, "remote", conn.RemoteAddr())
		return
	}

	resp, err := s.dispatch(req)
	if err != nil {
		s.logDispatchError(req, err)
	}

	if err := protocol.WriteResponse(conn, resp); err != nil {
		s.log.Errorw("failed to encode response", "error", err, "remote", conn.RemoteAddr())
	}
}

// dispatch runs one request against the engine and builds its response. The
// returned error is the raw, unwrapped failure (nil on success), kept
// alongside the response so the caller can log it with its full structured
// context before it is flattened to a wire-safe string.
func (s *Server) dispatch(req protocol.Request) (protocol.Response, error) {
	ctx := context.Background()

	switch req.CommandType {
	case protocol.OpGet:
		value, ok, err := s.engine.Get(ctx, req.Key)
		if err != nil {
			return errorResponse(err), err
		}
		if !ok {
			return protocol.Response{Value: ""}, nil
		}
		return protocol.Response{Value: value}, nil

	case protocol.OpSet:
		if err := s.engine.Set(ctx, req.Key, req.Value); err != nil {
			return errorResponse(err), err
		}
		return protocol.Response{Value: protocol.OK}, nil

	case protocol.OpRemove:
		if err := s.engine.Remove(ctx, req.Key); err != nil {
			return errorResponse(err), err
		}
		return protocol.Response{Value: protocol.OK}, nil

	default:
		return protocol.Response{Error: fmt.Sprintf("unknown command_type %q", req.CommandType)}, nil
	}
}

func errorResponse(err error) protocol.Response {
	if errors.IsKeyNotFound(err) {
		return protocol.Response{Error: "Key not found"}
	}
	return protocol.Response{Error: err.Error()}
}

// logDispatchError records a dispatch failure with its structured error code
// and details. A missing key is an expected, routine outcome and logs at
// info level; everything else — storage, validation, or index failures —
// logs as an error so it surfaces in monitoring.
func (s *Server) logDispatchError(req protocol.Request, err error) {
	fields := []any{
		"command", req.CommandType, "key", req.Key,
		"errorCode", errors.GetErrorCode(err), "errorDetails", errors.GetErrorDetails(err),
	}

	switch {
	case errors.IsKeyNotFound(err):
		s.log.Infow("dispatch: key not found", fields...)
	case errors.IsStorageError(err):
		s.log.Errorw("dispatch: storage error", append(fields, "error", err)...)
	case errors.IsIndexError(err):
		s.log.Errorw("dispatch: index error", append(fields, "error", err)...)
	case errors.IsValidationError(err):
		s.log.Warnw("dispatch: validation error", append(fields, "error", err)...)
	default:
		s.log.Errorw("dispatch failed", append(fields, "error", err)...)
	}
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close closes the listener without waiting for in-flight connections.
func (s *Server) Close() error {
	return s.listener.Close()
}
