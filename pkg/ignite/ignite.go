// Package ignite provides a high-performance key/value data store designed
// for fast read and write operations, inspired by Bitcask. It combines an
// in-memory index with an append-only log structure on disk to achieve high
// throughput, and is the embeddable counterpart to running
// cmd/ignite-server: the same engine, without the TCP front end.
package ignite

import (
	"context"

	"github.com/ignitedb/ignite/internal/engine"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/ignitedb/ignite/pkg/options"
)

// Instance is the primary entry point for embedding ignitedb directly in a
// Go process, providing methods for setting, getting, and removing
// key-value pairs without going through the wire protocol.
type Instance struct {
	engine  *engine.Engine
	options *options.Options
}

// NewInstance opens (or creates) a store and returns an Instance bound to
// it.
func NewInstance(ctx context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	config := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&config)
	}

	eng, err := engine.Open(ctx, &engine.Config{Dir: config.DataDir, Options: &config, Logger: log})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &config}, nil
}

// Set stores a key-value pair in the database. If the key already exists,
// its value is overwritten. The write is durable by the time Set returns.
func (i *Instance) Set(ctx context.Context, key, value string) error {
	return i.engine.Set(ctx, key, value)
}

// Get retrieves the value associated with key. ok is false if the key is
// absent.
func (i *Instance) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	return i.engine.Get(ctx, key)
}

// Remove deletes key from the database. It returns an error satisfying
// errors.IsKeyNotFound if key was already absent.
func (i *Instance) Remove(ctx context.Context, key string) error {
	return i.engine.Remove(ctx, key)
}

// Close gracefully shuts down the instance, sealing the active segment and
// waiting for any in-flight compaction to finish.
func (i *Instance) Close() error {
	return i.engine.Close()
}
