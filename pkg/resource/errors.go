package resource

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNetworkNotFound is returned if the VPC to tear down does not exist.
	ErrNetworkNotFound = errors.New("VPC not found")
	// ErrUnauthorized is returned if the provider rejects the credentials before any stage ran.
	ErrUnauthorized = errors.New("not authorized to access VPC")
)

// ErrorKind classifies an error returned by the provider for a single resource.
type ErrorKind int

const (
	Unknown ErrorKind = iota + 1
	NotFound
	DependencyNotReady
	AlreadyInProgress
	Throttled
	PermissionDenied
	Unauthenticated
	Timeout
	Cancelled
)

var errorKindNames = map[ErrorKind]string{
	Unknown:            "Unknown",
	NotFound:           "NotFound",
	DependencyNotReady: "DependencyNotReady",
	AlreadyInProgress:  "AlreadyInProgress",
	Throttled:          "Throttled",
	PermissionDenied:   "PermissionDenied",
	Unauthenticated:    "Unauthenticated",
	Timeout:            "Timeout",
	Cancelled:          "Cancelled",
}

func (k ErrorKind) String() string {
	if k == 0 {
		return ""
	}
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is a classified provider error. Clients return it from List, Delete
// and DescribeState so that the teardown can decide how to continue.
type Error struct {
	Kind ErrorKind
	// Code is the provider's error code, if any (e.g. "DependencyViolation")
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err into an Error of the given kind.
func NewError(kind ErrorKind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

// KindOf classifies err. Errors not produced by a client are treated as Unknown,
// except for context errors. A nil error has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.Is(err, context.Canceled):
		return Cancelled
	}

	return Unknown
}
