package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Commands used to open the downloads folder
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// CreateDirectoryIfNotExists creates a directory if it doesn't exist
func CreateDirectoryIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the user's Downloads directory
func GetHomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// OpenFolder opens the given directory in the system file manager
func OpenFolder(dir string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case OSDarwin:
		cmd = exec.Command(OpenCommand, dir)
	case OSWindows:
		cmd = exec.Command(ExplorerCommand, dir)
	default:
		cmd = exec.Command(XDGOpenCommand, dir)
	}

	return cmd.Start()
}
