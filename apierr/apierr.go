// Package apierr defines the error taxonomy shared by the completion and
// document extraction clients. Clients return typed errors; turning them into
// display strings is left to the presentation layer.
package apierr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a failure
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindConnection
	KindTimeout
	KindUnsupportedFormat
	KindPayloadTooLarge
	KindServer
	KindNoTextFound
	KindMissingCredential
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindServer:
		return "server"
	case KindNoTextFound:
		return "no_text_found"
	case KindMissingCredential:
		return "missing_credential"
	default:
		return "unknown"
	}
}

// Sentinel errors for conditions detected before any request is made
var (
	ErrMissingField       = errors.New("missing template field")
	ErrUnknownPerspective = errors.New("unknown perspective")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrMissingCredential  = errors.New("api key not configured")
)

// Error is a categorized client failure
type Error struct {
	Kind Kind

	// Status is the HTTP status code for KindServer (and any other kind that
	// came from an HTTP response)
	Status int

	// Keys lists the top-level response keys for KindNoTextFound
	Keys []string

	// Detail carries extra context such as the rejected extension
	Detail string

	// Err is the underlying cause, if any
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	switch e.Kind {
	case KindServer:
		fmt.Fprintf(&b, " (status %d)", e.Status)
	case KindNoTextFound:
		fmt.Fprintf(&b, " (keys: [%s])", strings.Join(e.Keys, ", "))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind wrapping cause
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Server creates a KindServer error for an unexpected HTTP status
func Server(status int, body string) *Error {
	return &Error{Kind: KindServer, Status: status, Detail: body}
}

// NoTextFound creates a KindNoTextFound error listing the keys that were present
func NoTextFound(keys []string) *Error {
	return &Error{Kind: KindNoTextFound, Keys: keys}
}

// UnsupportedFormat creates a KindUnsupportedFormat error for ext
func UnsupportedFormat(ext string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Detail: ext, Err: ErrUnsupportedFormat}
}

// MissingCredential creates a KindMissingCredential error naming the env var
func MissingCredential(envVar string) *Error {
	return &Error{Kind: KindMissingCredential, Detail: envVar, Err: ErrMissingCredential}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As returns the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
