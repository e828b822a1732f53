package model

import (
	"errors"
	"fmt"
)

// ErrSignatureInvalid rejects a webhook whose digest does not match. Fails closed.
var ErrSignatureInvalid = errors.New("webhook signature mismatch")

// ErrOwnerNotFound means the reconciliation scan found no owner holding the
// correlation key. Logged, never returned to the provider.
var ErrOwnerNotFound = errors.New("no owner found for correlation key")

// TransportError wraps a network-level failure talking to the gateway.
// The charge outcome is indeterminate: callers may re-verify by reference
// but must not blindly resubmit the charge.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedInputError is a caller-side validation failure, raised before any
// network call is made.
type RejectedInputError struct {
	Field  string
	Reason string
}

func (e *RejectedInputError) Error() string {
	return fmt.Sprintf("rejected input %q: %s", e.Field, e.Reason)
}

// MalformedPayloadError means a webhook body failed to parse after its
// signature already passed. Surfaced, not retried.
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed webhook payload: %v", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsRejectedInput(err error) bool {
	var re *RejectedInputError
	return errors.As(err, &re)
}
