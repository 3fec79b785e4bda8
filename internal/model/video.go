package model

import "fmt"

// VideoReference holds canonical metadata for one source video as returned
// by the conversion server. It is immutable once resolved.
type VideoReference struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Thumbnail string `json:"thumbnail"`
	Duration  int    `json:"duration"` // seconds
}

// DurationString returns the duration formatted as m:ss, or h:mm:ss for
// videos longer than an hour
func (v *VideoReference) DurationString() string {
	if v.Duration <= 0 {
		return "0:00"
	}

	hours := v.Duration / 3600
	minutes := (v.Duration % 3600) / 60
	seconds := v.Duration % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
