package platform

import (
	"strings"
	"testing"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		ext      string
		expected string
	}{
		{"plain title", "My Video", "mp4", "My Video.mp4"},
		{"special characters replaced", `a/b:c?!d\`, "mp3", "a_b_c_d.mp3"},
		{"empty title", "", "mp4", "download.mp4"},
		{"whitespace title", "   ", "mp3", "download.mp3"},
		{"dotted extension", "clip", ".MP4", "clip.mp4"},
		{"no extension", "notes", "", "notes"},
		{"unicode stripped", "日本語タイトル", "mp3", "download.mp3"},
	}

	for _, test := range tests {
		result := SafeFileName(test.title, test.ext)
		if result != test.expected {
			t.Errorf("%s: SafeFileName(%q, %q) = %q, expected %q",
				test.name, test.title, test.ext, result, test.expected)
		}
	}
}

func TestSafeFileName_LengthCap(t *testing.T) {
	long := strings.Repeat("a", 300)
	result := SafeFileName(long, "mp4")

	expected := strings.Repeat("a", MaxFilenameLength) + ".mp4"
	if result != expected {
		t.Errorf("Expected base capped at %d characters, got %d", MaxFilenameLength, len(result)-4)
	}
}
