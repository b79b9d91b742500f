package pawn

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an action is requested for a
	// proposition id that is not in the local cache.
	ErrNotFound = errors.New("proposition not found")

	// ErrTransportClosed is returned by the watcher when the event
	// stream connection closes. It is fatal to the watcher.
	ErrTransportClosed = errors.New("event stream connection closed")
)

// UnknownTokenError is returned when a denom has no registered decimals.
type UnknownTokenError struct {
	Denom string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token denom: %s", e.Denom)
}

// MalformedEventError is returned when a wasm event is missing a
// required attribute.
type MalformedEventError struct {
	Missing string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed wasm event: missing attribute %q", e.Missing)
}

// BroadcastError wraps an error returned by the signing/broadcast
// collaborator. The underlying error is carried unchanged.
type BroadcastError struct {
	Err error
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast failed: %s", e.Err)
}

func (e *BroadcastError) Unwrap() error {
	return e.Err
}
