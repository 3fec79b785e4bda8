package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/harshal-rembhotkar/fetchyt/internal/errs"
	"github.com/harshal-rembhotkar/fetchyt/internal/model"
)

// progressBuffer bounds the event channel so a slow consumer suspends the
// reader instead of growing memory.
const progressBuffer = 16

// Stream is a live, one-directional sequence of progress events for a
// single job. Events() closes when the server ends the stream, the
// transport fails, or Close is called; Err() reports why when the cause
// was a failure.
type Stream interface {
	Events() <-chan model.ProgressEvent
	Err() error
	Close()
}

// OpenProgress opens the server-push progress channel for the given job
// identifier.
func (c *Client) OpenProgress(ctx context.Context, id string) (Stream, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/progress?id="+id, nil)
	if err != nil {
		cancel()
		return nil, &errs.TransportError{Err: err}
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		cancel()
		return nil, &errs.TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		cancel()
		return nil, &errs.TransportError{Status: resp.StatusCode}
	}

	ps := &progressStream{
		events: make(chan model.ProgressEvent, progressBuffer),
		done:   ctx.Done(),
		cancel: cancel,
	}
	go ps.listen(resp.Body)

	logrus.Debugf("progress stream opened for %s", id)
	return ps, nil
}

type progressStream struct {
	events chan model.ProgressEvent
	done   <-chan struct{}
	cancel context.CancelFunc

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

func (ps *progressStream) Events() <-chan model.ProgressEvent {
	return ps.events
}

// Err returns the transport or decoding failure that ended the stream, or
// nil when it ended cleanly.
func (ps *progressStream) Err() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.err
}

// Close tears down the stream. Safe to call more than once and safe to
// call concurrently with event delivery.
func (ps *progressStream) Close() {
	ps.closeOnce.Do(ps.cancel)
}

func (ps *progressStream) setErr(err error) {
	ps.mu.Lock()
	ps.err = err
	ps.mu.Unlock()
}

// listen consumes the SSE body line by line. Events arrive as
// "data: <json>" lines; comment lines (keepalives) and blank separators
// are skipped.
func (ps *progressStream) listen(body io.ReadCloser) {
	defer close(ps.events)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}

		var event model.ProgressEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			ps.setErr(&errs.TransportError{Err: err})
			return
		}

		select {
		case ps.events <- event:
		case <-ps.done:
			return
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case <-ps.done:
			// Closed locally; not a failure.
		default:
			ps.setErr(&errs.TransportError{Err: err})
		}
	}
}
