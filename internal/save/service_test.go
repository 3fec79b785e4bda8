package save

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harshal-rembhotkar/fetchyt/internal/errs"
)

type fakeFetcher struct {
	payload []byte
	err     error
	calls   int
}

func (f *fakeFetcher) FetchFile(ctx context.Context, location string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func TestSave_WritesSanitizedFile(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{payload: []byte("audio-bytes")}
	service := NewService(fetcher, func() string { return dir })

	path, err := service.Save(context.Background(), "http://localhost:8080/media/x.mp3", "My Song?!", "mp3")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := filepath.Join(dir, "My Song.mp3")
	if path != expected {
		t.Errorf("Expected path %s, got %s", expected, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected file to exist, got %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("Unexpected file contents %q", data)
	}
}

func TestSave_EmptyPayload(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{err: errs.ErrEmptyPayload}
	service := NewService(fetcher, func() string { return dir })

	_, err := service.Save(context.Background(), "http://localhost:8080/media/x.mp3", "title", "mp3")
	if !errors.Is(err, errs.ErrEmptyPayload) {
		t.Fatalf("Expected ErrEmptyPayload, got %v", err)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("ReadDir failed: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no file to be written, found %d entries", len(entries))
	}
}

func TestSave_TransportError(t *testing.T) {
	fetcher := &fakeFetcher{err: &errs.TransportError{Status: 404}}
	service := NewService(fetcher, func() string { return t.TempDir() })

	_, err := service.Save(context.Background(), "http://localhost:8080/media/x.mp3", "title", "mp3")

	var terr *errs.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if terr.Status != 404 {
		t.Errorf("Expected status 404, got %d", terr.Status)
	}
}

func TestSave_CreatesDownloadsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-yet-created")
	fetcher := &fakeFetcher{payload: []byte("x")}
	service := NewService(fetcher, func() string { return dir })

	if _, err := service.Save(context.Background(), "loc", "file", "mp4"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "file.mp4")); err != nil {
		t.Errorf("Expected file in created directory, got %v", err)
	}
}
