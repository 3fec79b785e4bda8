package model

import "time"

// DownloadJob represents one in-flight user request from URL submission to
// a saved file. It is created and mutated exclusively by the download
// orchestrator; the UI only sees value snapshots.
type DownloadJob struct {
	TaskID    string // unique per submission
	Video     VideoReference
	Selection FormatSelection

	State    DownloadState
	Progress int // 0 to 100, never decreases within one job

	PreviewURL  string
	PreviewNote string // set when the preview is degraded (audio only)

	FileLocation      string // resolved absolute URL of the converted file
	AlreadyDownloaded bool   // the server already holds this id+format

	LastError string

	StartedAt  time.Time
	FinishedAt time.Time
}
