package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	resourceSession = "session"
	resourceNode    = "node"
)

// UpstreamUnreachableError is returned when no connection could be made to the grid.
type UpstreamUnreachableError struct {
	URL string
	err error
}

func NewUpstreamUnreachableError(url string, err error) *UpstreamUnreachableError {
	return &UpstreamUnreachableError{URL: url, err: err}
}

func (e *UpstreamUnreachableError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("cannot connect to selenium grid at %s", e.URL)
	}
	return fmt.Sprintf("cannot connect to selenium grid at %s: %v", e.URL, e.err)
}

func (e *UpstreamUnreachableError) Unwrap() error {
	return e.err
}

func IsUpstreamUnreachableError(err error) bool {
	var e *UpstreamUnreachableError
	return stderrors.As(err, &e)
}

// UpstreamError covers every other failed exchange with the grid: non-2xx answers,
// timeouts and payloads that cannot be decoded.
type UpstreamError struct {
	Message    string
	StatusCode int
	err        error
}

func NewUpstreamError(message string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{Message: message, StatusCode: statusCode, err: err}
}

func (e *UpstreamError) Error() string {
	if e.err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.err)
}

func (e *UpstreamError) Unwrap() error {
	return e.err
}

func IsUpstreamError(err error) bool {
	var e *UpstreamError
	return stderrors.As(err, &e)
}

type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func NewSessionNotFoundError(id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: resourceSession, ID: id}
}

func NewNodeNotFoundError(id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: resourceNode, ID: id}
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return stderrors.As(err, &e)
}

func IsSessionNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return stderrors.As(err, &e) && e.Resource == resourceSession
}

func IsNodeNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return stderrors.As(err, &e) && e.Resource == resourceNode
}

// InvalidTokenError is returned when a VNC access token does not verify.
type InvalidTokenError struct {
	err error
}

func NewInvalidTokenError(err error) *InvalidTokenError {
	return &InvalidTokenError{err: err}
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid vnc token: %v", e.err)
}

func (e *InvalidTokenError) Unwrap() error {
	return e.err
}

func IsInvalidTokenError(err error) bool {
	var e *InvalidTokenError
	return stderrors.As(err, &e)
}

// ProxyError is a failure envelope returned by the proxy to its consumers.
type ProxyError struct {
	StatusCode int
	Message    string
	Details    string
}

func NewProxyError(statusCode int, message, details string) *ProxyError {
	return &ProxyError{StatusCode: statusCode, Message: message, Details: details}
}

func (e *ProxyError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func IsProxyError(err error) bool {
	var e *ProxyError
	return stderrors.As(err, &e)
}
