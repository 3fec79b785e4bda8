// Package errs defines the error taxonomy shared by the protocol client,
// the download orchestrator, and the save adapter.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the conversion server could not be reached.
	ErrUnavailable = errors.New("download server is unreachable")
	// ErrPreviewUnavailable indicates no preview exists for an audio selection.
	// This is recoverable: the job stays usable without a preview.
	ErrPreviewUnavailable = errors.New("preview unavailable")
	// ErrEmptyPayload indicates a retrieved file had zero length.
	ErrEmptyPayload = errors.New("retrieved file is empty")
	// ErrStallTimeout indicates the progress channel never advanced past its
	// initial value within the stall window.
	ErrStallTimeout = errors.New("download timed out waiting for progress")
	// ErrDownloadFailed indicates the server reported a failed conversion.
	ErrDownloadFailed = errors.New("download failed on the server")
)

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid video URL: " + e.Reason
}

// UpstreamError reports a non-success response from the conversion server.
// Message carries the server-provided detail when the body contained one.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned HTTP %d", e.Status)
}

// TransportError reports a channel-level or retrieval-level failure:
// a broken progress stream or a failed file fetch.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return "transport failure: " + e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("transport failure: HTTP %d", e.Status)
	}
	return "transport failure"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
