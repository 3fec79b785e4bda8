package platform

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// MaxFilenameLength is the maximum allowed length for the filename base.
	MaxFilenameLength = 120
	// DefaultFileName is the replacement name when the title is empty.
	DefaultFileName = "download"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9 _-]+`)

// SafeFileName builds a filesystem-safe filename from a suggested title and
// an extension (without the dot). Runs of non-alphanumeric characters are
// replaced with underscores and the base is length-capped.
func SafeFileName(title, ext string) string {
	name := strings.TrimSpace(title)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " _")
	if name == "" {
		name = DefaultFileName
	}
	if len(name) > MaxFilenameLength {
		name = name[:MaxFilenameLength]
	}

	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		return filepath.Clean(name)
	}
	return filepath.Clean(name + "." + ext)
}
