// Package fault defines the error taxonomy shared by the backend client,
// the tool registry, and the dispatcher. Every failure an agent can see is
// one of these kinds, so callers can branch on Kind instead of parsing
// message strings.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// Kind identifies a failure class in the taxonomy.
type Kind string

const (
	KindConfiguration Kind = "configuration_error"
	KindUnknownTool   Kind = "unknown_tool"
	KindDuplicateTool Kind = "duplicate_tool"
	KindValidation    Kind = "validation_error"
	KindAuth          Kind = "auth_error"
	KindNotFound      Kind = "not_found"
	KindRateLimited   Kind = "rate_limited"
	KindUpstream      Kind = "upstream_error"
	KindUpstreamShape Kind = "upstream_shape_error"
	KindTransport     Kind = "transport_error"
)

// Error is a classified failure. Field and Reason are set for validation
// errors; RetryAfter is set for rate limiting when the upstream provided it.
type Error struct {
	Kind       Kind
	Message    string
	Field      string
	Reason     string
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Kind == KindValidation && e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Configuration reports missing or invalid credentials.
func Configuration(format string, args ...any) *Error {
	return newf(KindConfiguration, format, args...)
}

// UnknownTool reports a lookup of an unregistered tool name.
func UnknownTool(name string) *Error {
	return &Error{Kind: KindUnknownTool, Message: name}
}

// DuplicateTool reports a second registration of a tool name.
func DuplicateTool(name string) *Error {
	return &Error{Kind: KindDuplicateTool, Message: name}
}

// Validation reports the first offending argument field.
func Validation(field, reason string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("field %q: %s", field, reason),
		Field:   field,
		Reason:  reason,
	}
}

// Auth reports an upstream 401/403.
func Auth(format string, args ...any) *Error { return newf(KindAuth, format, args...) }

// NotFound reports an upstream 404.
func NotFound(format string, args ...any) *Error { return newf(KindNotFound, format, args...) }

// RateLimited reports an upstream 429. retryAfter is zero when the upstream
// sent no Retry-After header.
func RateLimited(retryAfter time.Duration, format string, args ...any) *Error {
	e := newf(KindRateLimited, format, args...)
	e.RetryAfter = retryAfter
	return e
}

// Upstream reports a backend failure that is not in a more specific class.
func Upstream(format string, args ...any) *Error { return newf(KindUpstream, format, args...) }

// UpstreamShape reports a backend response that did not match the expected shape.
func UpstreamShape(format string, args ...any) *Error {
	return newf(KindUpstreamShape, format, args...)
}

// Transport reports a network, timeout, or cancellation failure.
func Transport(format string, args ...any) *Error { return newf(KindTransport, format, args...) }

// From classifies an arbitrary error into the taxonomy. Already-classified
// errors pass through; context and network failures become transport errors;
// anything else is treated as an upstream failure.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Transport("%v", err)
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return Transport("%v", err)
	}
	return Upstream("%v", err)
}
