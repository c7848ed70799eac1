// Package protocol defines the wire objects exchanged between a client and
// the server: one Request followed by one Response per TCP connection, each
// a single self-delimiting object in the same encoding as on-disk log
// records. There is no framing header — the decoder stops as soon as a
// complete object has been read — so both sides rely on goccy/go-json's
// streaming decode to know where one object ends.
package protocol

import (
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/ignitedb/ignite/pkg/errors"
)

// Op names the three operations a Request can carry.
type Op string

const (
	OpGet    Op = "Get"
	OpSet    Op = "Set"
	OpRemove Op = "Rm"
)

// Request is the single object a client sends after dialing.
type Request struct {
	CommandType Op     `json:"command_type"`
	Key         string `json:"key"`
	Value       string `json:"value,omitempty"`
}

// Response is the single object the server sends back. Exactly one of Value
// and Error is semantically populated: on success Error is empty and Set/Rm
// report the sentinel OK in Value; on failure Error carries a human-readable
// message and Value is ignored.
type Response struct {
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// OK is the sentinel value a successful Set or Remove reports.
const OK = "OK"

// NewGet builds a Get request.
func NewGet(key string) Request {
	return Request{CommandType: OpGet, Key: key}
}

// NewSet builds a Set request.
func NewSet(key, value string) Request {
	return Request{CommandType: OpSet, Key: key, Value: value}
}

// NewRemove builds an Rm request.
func NewRemove(key string) Request {
	return Request{CommandType: OpRemove, Key: key}
}

// WriteRequest encodes req to w.
func WriteRequest(w io.Writer, req Request) error {
	b, err := gojson.Marshal(req)
	if err != nil {
		return errors.NewCodecError(err, errors.ErrorCodeCodec, "failed to encode request").WithSource("wire")
	}
	if _, err := w.Write(b); err != nil {
		return errors.NewCodecError(err, errors.ErrorCodeIO, "failed to write request").WithSource("wire")
	}
	return nil
}

// ReadRequest decodes exactly one Request from r, stopping as soon as the
// object is complete.
func ReadRequest(r io.Reader) (Request, error) {
	var req Request
	if err := gojson.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, errors.NewCodecError(err, errors.ErrorCodeCodec, "failed to decode request").WithSource("wire")
	}
	return req, nil
}

// WriteResponse encodes resp to w.
func WriteResponse(w io.Writer, resp Response) error {
	b, err := gojson.Marshal(resp)
	if err != nil {
		return errors.NewCodecError(err, errors.ErrorCodeCodec, "failed to encode response").WithSource("wire")
	}
	if _, err := w.Write(b); err != nil {
		return errors.NewCodecError(err, errors.ErrorCodeIO, "failed to write response").WithSource("wire")
	}
	return nil
}

// ReadResponse decodes exactly one Response from r.
func ReadResponse(r io.Reader) (Response, error) {
	var resp Response
	if err := gojson.NewDecoder(r).Decode(&resp); err != nil {
		return Response{}, errors.NewCodecError(err, errors.ErrorCodeCodec, "failed to decode response").WithSource("wire")
	}
	return resp, nil
}
