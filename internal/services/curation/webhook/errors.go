package webhook

import (
	"errors"
	"fmt"
	"net/url"
)

// NetworkError reports that no HTTP response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	cause := e.Err
	var urlErr *url.Error
	if errors.As(cause, &urlErr) {
		cause = urlErr.Err
	}
	if cause == nil {
		return "network error"
	}
	return "network error: " + cause.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError reports a non-2xx response status.
type RemoteError struct {
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// EmptyResponseError reports a 2xx response with no body.
type EmptyResponseError struct{}

func (*EmptyResponseError) Error() string {
	return "Received an empty response from the webhook."
}

// MalformedResponseError reports a 2xx body that is not valid JSON.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return "malformed response from the webhook"
	}
	return "malformed response from the webhook: " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
