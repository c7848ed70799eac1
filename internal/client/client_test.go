package client

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/ignite/internal/protocol"
	"github.com/ignitedb/ignite/pkg/errors"
)

// serveOnce accepts a single connection, decodes one request, and writes
// back resp, regardless of what the request carried.
func serveOnce(t *testing.T, resp protocol.Response) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		defer ln.Close()

		if _, err := protocol.ReadRequest(conn); err != nil {
			return
		}
		protocol.WriteResponse(conn, resp)
	}()

	return ln.Addr().String()
}

func TestClientGetTranslatesEmptyValueToMiss(t *testing.T) {
	addr := serveOnce(t, protocol.Response{Value: ""})
	c := New(addr)

	_, ok, err := c.Get("k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClientGetReturnsValue(t *testing.T) {
	addr := serveOnce(t, protocol.Response{Value: "hello"})
	c := New(addr)

	v, ok, err := c.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello", v)
}

func TestClientRemoveTranslatesKeyNotFound(t *testing.T) {
	addr := serveOnce(t, protocol.Response{Error: "Key not found"})
	c := New(addr)

	err := c.Remove("k")
	require.True(t, errors.IsKeyNotFound(err))
}

func TestClientTranslatesServerError(t *testing.T) {
	addr := serveOnce(t, protocol.Response{Error: "disk full"})
	c := New(addr)

	err := c.Set("k", "v")
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
}

func TestClientDialFailureIsAddressError(t *testing.T) {
	c := New("127.0.0.1:1") // reserved port, nothing listens
	err := c.Set("k", "v")
	require.Error(t, err)
}
