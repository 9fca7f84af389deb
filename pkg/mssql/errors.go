package mssql

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNotConnected is returned when an operation is attempted on a session
// whose status is not Connected.
var ErrNotConnected = errors.New("mssql: session is not connected")

// ConnectReason classifies a failed connection attempt.
type ConnectReason int

const (
	// ReasonUnreachable: the server did not answer within the connect bound
	// (network failure, refused connection, DNS, timeout).
	ReasonUnreachable ConnectReason = iota
	// ReasonRejected: the server or driver answered and refused the attempt
	// (bad login, malformed DSN, protocol failure).
	ReasonRejected
)

func (r ConnectReason) String() string {
	if r == ReasonUnreachable {
		return "unreachable"
	}
	return "rejected"
}

// ConnectError reports a failed Connect. It is terminal for the session: the
// caller is expected to surface it and not retry automatically, a bad server
// address or login is a setup problem rather than a transient fault.
type ConnectError struct {
	Reason ConnectReason
	Server string
	Err    error
}

func (e *ConnectError) Error() string {
	if e.Reason == ReasonUnreachable {
		return fmt.Sprintf("server %q unreachable: %v", e.Server, e.Err)
	}
	return fmt.Sprintf("connection to %q rejected: %v", e.Server, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// NoAccessError reports a failed database context switch (database missing or
// access denied). The previously selected database remains active.
type NoAccessError struct {
	Database string
	Err      error
}

func (e *NoAccessError) Error() string {
	return fmt.Sprintf("no access to database %q: %v", e.Database, e.Err)
}

func (e *NoAccessError) Unwrap() error { return e.Err }

// classifyConnectError decides Unreachable vs Rejected. Anything the network
// layer produced (timeouts included) means the server never answered; every
// other failure is something the server or driver said back.
func classifyConnectError(server string, err error) *ConnectError {
	reason := ReasonRejected
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		reason = ReasonUnreachable
	}
	return &ConnectError{Reason: reason, Server: server, Err: err}
}
