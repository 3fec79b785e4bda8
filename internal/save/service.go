// Package save streams a converted remote file into a local download,
// keeping its failure modes distinct from the orchestration errors.
package save

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/harshal-rembhotkar/fetchyt/internal/platform"
)

// Fetcher retrieves a remote file fully into memory
type Fetcher interface {
	FetchFile(ctx context.Context, location string) ([]byte, error)
}

// Service writes retrieved files into the configured downloads directory
type Service struct {
	fetcher Fetcher
	dir     func() string // read at call time, like the endpoint setting
}

// NewService creates a new save service
func NewService(fetcher Fetcher, dir func() string) *Service {
	return &Service{fetcher: fetcher, dir: dir}
}

// Save retrieves the remote location and writes it under a sanitized name.
// The title and extension are combined into the suggested filename; errors
// from retrieval (empty payload, transport) pass through unchanged.
func (s *Service) Save(ctx context.Context, location, title, ext string) (string, error) {
	payload, err := s.fetcher.FetchFile(ctx, location)
	if err != nil {
		return "", err
	}

	dir := s.dir()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("prepare downloads directory: %w", err)
	}

	path := filepath.Join(dir, platform.SafeFileName(title, ext))
	if err := os.WriteFile(path, payload, platform.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	logrus.Infof("saved %s (%s)", path, humanize.Bytes(uint64(len(payload))))
	return path, nil
}
