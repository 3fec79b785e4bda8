package model

import (
	"net/url"

	"github.com/samber/lo"
)

// Format is the requested output container
type Format string

const (
	FormatMP4 Format = "mp4"
	FormatMP3 Format = "mp3"
)

// IsVideo returns true for the video container format
func (f Format) IsVideo() bool {
	return f == FormatMP4
}

// Valid returns true for a known format
func (f Format) Valid() bool {
	return f == FormatMP4 || f == FormatMP3
}

// Resolution is a video resolution tier
type Resolution string

const (
	Resolution360p  Resolution = "360p"
	Resolution480p  Resolution = "480p"
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
)

// DefaultResolution is used when no tier has been selected
const DefaultResolution = Resolution720p

// Resolutions returns all tiers in ascending order
func Resolutions() []Resolution {
	return []Resolution{Resolution360p, Resolution480p, Resolution720p, Resolution1080p}
}

// Valid returns true for a known resolution tier
func (r Resolution) Valid() bool {
	return lo.Contains(Resolutions(), r)
}

// FormatSelection pairs a format with its resolution tier.
// Resolution is meaningful only for video; it is empty for audio.
type FormatSelection struct {
	Format     Format
	Resolution Resolution
}

// NewFormatSelection builds a normalized selection: audio drops the
// resolution, video falls back to the default tier when the given one is
// absent or unknown.
func NewFormatSelection(f Format, r Resolution) FormatSelection {
	if !f.Valid() {
		f = FormatMP4
	}
	if !f.IsVideo() {
		return FormatSelection{Format: f}
	}
	if !r.Valid() {
		r = DefaultResolution
	}
	return FormatSelection{Format: f, Resolution: r}
}

// Query renders the selection as request parameters
func (fs FormatSelection) Query() url.Values {
	v := url.Values{}
	v.Set("format", string(fs.Format))
	if fs.Format.IsVideo() {
		v.Set("resolution", string(fs.Resolution))
	}
	return v
}
