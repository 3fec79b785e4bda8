package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/harshal-rembhotkar/fetchyt/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyServerEndpoint      = "server_endpoint"
	KeyDownloadDir         = "download_directory"
	KeyProbeTimeoutSeconds = "probe_timeout_seconds"
)

// Default values
const (
	DefaultServerEndpoint      = "http://localhost:8080"
	DefaultProbeTimeoutSeconds = 5
	MinProbeTimeoutSeconds     = 1
	MaxProbeTimeoutSeconds     = 60
)

// Settings manages application configuration. The server endpoint is the
// single source of truth for request URLs: components read it through
// GetServerEndpoint at call time, never caching derived URLs.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServerEndpoint returns the configured conversion server address
func (s *Settings) GetServerEndpoint() string {
	endpoint := s.app.Preferences().String(KeyServerEndpoint)
	if endpoint == "" {
		s.SetServerEndpoint(DefaultServerEndpoint)
		return DefaultServerEndpoint
	}
	return endpoint
}

// SetServerEndpoint sets the conversion server address
func (s *Settings) SetServerEndpoint(endpoint string) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultServerEndpoint
	}
	s.app.Preferences().SetString(KeyServerEndpoint, endpoint)
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetProbeTimeout returns the connectivity probe deadline
func (s *Settings) GetProbeTimeout() time.Duration {
	seconds := s.app.Preferences().Int(KeyProbeTimeoutSeconds)
	if seconds <= 0 {
		s.SetProbeTimeoutSeconds(DefaultProbeTimeoutSeconds)
		return DefaultProbeTimeoutSeconds * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// SetProbeTimeoutSeconds sets the probe deadline, clamped to a sane range
func (s *Settings) SetProbeTimeoutSeconds(seconds int) {
	if seconds < MinProbeTimeoutSeconds {
		seconds = MinProbeTimeoutSeconds
	}
	if seconds > MaxProbeTimeoutSeconds {
		seconds = MaxProbeTimeoutSeconds
	}
	s.app.Preferences().SetInt(KeyProbeTimeoutSeconds, seconds)
}
