package config

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestServerEndpoint(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	endpoint := settings.GetServerEndpoint()
	if endpoint != DefaultServerEndpoint {
		t.Errorf("Expected default endpoint %s, got %s", DefaultServerEndpoint, endpoint)
	}

	// Test setting custom value
	settings.SetServerEndpoint("http://media-server.local:9000")
	if settings.GetServerEndpoint() != "http://media-server.local:9000" {
		t.Errorf("Expected custom endpoint, got %s", settings.GetServerEndpoint())
	}

	// Trailing slashes are normalized away
	settings.SetServerEndpoint("http://media-server.local:9000/")
	if settings.GetServerEndpoint() != "http://media-server.local:9000" {
		t.Errorf("Expected trimmed endpoint, got %s", settings.GetServerEndpoint())
	}

	// Blank input falls back to the default
	settings.SetServerEndpoint("   ")
	if settings.GetServerEndpoint() != DefaultServerEndpoint {
		t.Errorf("Expected default endpoint for blank input, got %s", settings.GetServerEndpoint())
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	if settings.GetDownloadDirectory() != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, settings.GetDownloadDirectory())
	}
}

func TestProbeTimeout(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if settings.GetProbeTimeout() != DefaultProbeTimeoutSeconds*time.Second {
		t.Errorf("Expected default probe timeout, got %v", settings.GetProbeTimeout())
	}

	// Test setting custom value
	settings.SetProbeTimeoutSeconds(10)
	if settings.GetProbeTimeout() != 10*time.Second {
		t.Errorf("Expected 10s probe timeout, got %v", settings.GetProbeTimeout())
	}

	// Test boundary values
	settings.SetProbeTimeoutSeconds(0) // Should be clamped to minimum
	if settings.GetProbeTimeout() != MinProbeTimeoutSeconds*time.Second {
		t.Errorf("Expected clamped minimum, got %v", settings.GetProbeTimeout())
	}

	settings.SetProbeTimeoutSeconds(600) // Should be clamped to maximum
	if settings.GetProbeTimeout() != MaxProbeTimeoutSeconds*time.Second {
		t.Errorf("Expected clamped maximum, got %v", settings.GetProbeTimeout())
	}
}
