package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Input: "not-a-url", Reason: "no video identifier found"}
	expected := "invalid video URL: no video identifier found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
}

func TestUpstreamError_Error(t *testing.T) {
	withMessage := &UpstreamError{Status: 404, Message: "video not found"}
	if withMessage.Error() != "video not found" {
		t.Errorf("Expected server message, got %q", withMessage.Error())
	}

	withoutMessage := &UpstreamError{Status: 500}
	if withoutMessage.Error() != "server returned HTTP 500" {
		t.Errorf("Expected generic status message, got %q", withoutMessage.Error())
	}
}

func TestUpstreamError_As(t *testing.T) {
	var target *UpstreamError
	err := fmt.Errorf("fetch info: %w", &UpstreamError{Status: 502})
	if !errors.As(err, &target) {
		t.Fatal("Expected errors.As to find UpstreamError")
	}
	if target.Status != 502 {
		t.Errorf("Expected status 502, got %d", target.Status)
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TransportError{Err: cause}
	if !errors.Is(err, cause) {
		t.Error("Expected TransportError to unwrap its cause")
	}
	if err.Error() != "transport failure: connection reset" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	statusOnly := &TransportError{Status: 503}
	if statusOnly.Error() != "transport failure: HTTP 503" {
		t.Errorf("Unexpected message %q", statusOnly.Error())
	}
}
