package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harshal-rembhotkar/fetchyt/internal/errs"
	"github.com/harshal-rembhotkar/fetchyt/internal/model"
)

func sseHandler(t *testing.T, lines []string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("test server does not support flushing")
		}
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n\n", line)
			flusher.Flush()
		}
	}
}

func collectEvents(t *testing.T, stream Stream) []model.ProgressEvent {
	t.Helper()
	var events []model.ProgressEvent
	timeout := time.After(2 * time.Second)
	for {
		select {
		case event, ok := <-stream.Events():
			if !ok {
				return events
			}
			events = append(events, event)
		case <-timeout:
			t.Fatal("Timed out waiting for stream to end")
		}
	}
}

func TestOpenProgress_DeliversEvents(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, []string{
		`: keepalive`,
		`data: {"id":"abc12345678","progress":25,"status":"in-progress"}`,
		`data: {"id":"abc12345678","progress":100,"status":"complete","filePath":"/media/x.mp3"}`,
	}))
	defer server.Close()

	stream, err := newTestClient(server.URL).OpenProgress(context.Background(), "abc12345678")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer stream.Close()

	events := collectEvents(t, stream)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	if events[0].Progress != 25 || events[0].IsTerminal() {
		t.Errorf("Unexpected first event: %+v", events[0])
	}
	if events[1].Status != model.ProgressStatusComplete || events[1].FilePath != "/media/x.mp3" {
		t.Errorf("Unexpected terminal event: %+v", events[1])
	}
	if stream.Err() != nil {
		t.Errorf("Expected clean stream end, got %v", stream.Err())
	}
}

func TestOpenProgress_MalformedEvent(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, []string{
		`data: {"id":"abc12345678","progress":10}`,
		`data: {not json}`,
	}))
	defer server.Close()

	stream, err := newTestClient(server.URL).OpenProgress(context.Background(), "abc12345678")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer stream.Close()

	events := collectEvents(t, stream)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event before the malformed one, got %d", len(events))
	}

	var terr *errs.TransportError
	if !errors.As(stream.Err(), &terr) {
		t.Errorf("Expected TransportError for malformed event, got %v", stream.Err())
	}
}

func TestOpenProgress_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).OpenProgress(context.Background(), "abc12345678")

	var terr *errs.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if terr.Status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", terr.Status)
	}
}

func TestOpenProgress_CloseStopsDelivery(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "data: {\"id\":\"abc12345678\",\"progress\":5}\n\n")
		flusher.Flush()
		<-release
	}))
	defer server.Close()
	defer close(release)

	stream, err := newTestClient(server.URL).OpenProgress(context.Background(), "abc12345678")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	select {
	case <-stream.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for first event")
	}

	stream.Close()
	stream.Close() // idempotent

	select {
	case _, ok := <-stream.Events():
		if ok {
			t.Error("Expected no further events after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for channel close")
	}

	if stream.Err() != nil {
		t.Errorf("Local close is not a failure, got %v", stream.Err())
	}
}
