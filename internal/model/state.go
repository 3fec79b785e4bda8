package model

// DownloadState represents the lifecycle state of a download job
type DownloadState string

const (
	// StateIdle means no job is in flight
	StateIdle DownloadState = "idle"

	// StateLoading means metadata and preview are being resolved
	StateLoading DownloadState = "loading"

	// StateReady means the video is resolved and can be downloaded
	StateReady DownloadState = "ready"

	// StateDownloading means a conversion job is running on the server
	StateDownloading DownloadState = "downloading"

	// StateComplete means the job finished and a file location is known
	StateComplete DownloadState = "complete"

	// StateError means the job failed with an error
	StateError DownloadState = "error"
)

// String returns the string representation of DownloadState
func (ds DownloadState) String() string {
	return string(ds)
}

// IsActive returns true if the state has a pending network operation
func (ds DownloadState) IsActive() bool {
	return ds == StateLoading || ds == StateDownloading
}

// IsFinished returns true if the state is terminal (complete or error)
func (ds DownloadState) IsFinished() bool {
	return ds == StateComplete || ds == StateError
}

// CanDownload returns true if a download may be initiated from this state
func (ds DownloadState) CanDownload() bool {
	return ds == StateReady
}
