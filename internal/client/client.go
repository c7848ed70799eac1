// Package client is a stateless façade over the wire protocol: every call
// dials the server, sends one request, reads one response, and closes the
// connection. It never holds a persistent connection open between calls.
package client

import (
	"net"

	"github.com/ignitedb/ignite/internal/protocol"
	"github.com/ignitedb/ignite/pkg/errors"
)

// Client dials addr fresh for every call.
type Client struct {
	addr string
}

// New returns a Client that dials addr.
func New(addr string) *Client {
	return &Client{addr: addr}
}

// Get fetches key's value. ok is false if the key is absent.
func (c *Client) Get(key string) (value string, ok bool, err error) {
	resp, err := c.roundTrip(protocol.NewGet(key))
	if err != nil {
		return "", false, err
	}
	if resp.Value == "" {
		return "", false, nil
	}
	return resp.Value, true, nil
}

// Set stores value under key.
func (c *Client) Set(key, value string) error {
	_, err := c.roundTrip(protocol.NewSet(key, value))
	return err
}

// Remove deletes key. It returns an error satisfying errors.IsKeyNotFound
// if the server reports the key was absent.
func (c *Client) Remove(key string) error {
	_, err := c.roundTrip(protocol.NewRemove(key))
	return err
}

// roundTrip dials addr, sends req, reads the response, and translates a
// populated error field into a key-not-found *errors.IndexError for
// "Key not found", or a *errors.ServerError for any other message.
func (c *Client) roundTrip(req protocol.Request) (protocol.Response, error) {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return protocol.Response{}, errors.NewAddressError(err, "failed to connect to server").
			WithAddress(c.addr)
	}
	defer conn.Close()

	if err := protocol.WriteRequest(conn, req); err != nil {
		return protocol.Response{}, err
	}

	resp, err := protocol.ReadResponse(conn)
	if err != nil {
		return protocol.Response{}, err
	}

	if resp.Error != "" {
		if resp.Error == "Key not found" {
			return resp, errors.NewKeyNotFoundError(req.Key)
		}
		return resp, errors.NewServerError(resp.Error)
	}

	return resp, nil
}
