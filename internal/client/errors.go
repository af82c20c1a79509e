package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/mithrel/eventwizard/pkg/api"
)

// ErrUnavailable marks a request that never reached a server:
// connection refused, unresolvable host, unreachable network.
var ErrUnavailable = errors.New("planner service unavailable")

// StatusError is returned when the server answered with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	Result api.Result
}

func (e *StatusError) Error() string {
	if msg, ok := e.Result.ErrorText(); ok {
		return fmt.Sprintf("server returned %d: %s", e.Code, msg)
	}
	return fmt.Sprintf("server returned %d %s", e.Code, e.Status)
}

// Message returns the server's error text, falling back to the status text.
func (e *StatusError) Message() string {
	if msg, ok := e.Result.ErrorText(); ok {
		return msg
	}
	return e.Status
}

// DecodeError is returned when the response body is not the expected JSON.
type DecodeError struct {
	Code int
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v", e.Code, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// classifyTransport tags errors from http.Client.Do. Dial and DNS failures
// become ErrUnavailable; everything else (timeouts, cancellation, TLS, resets
// after connect) is returned unchanged.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
