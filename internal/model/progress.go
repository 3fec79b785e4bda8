package model

// Progress event statuses emitted by the server. Anything else means the
// job is still in progress.
const (
	ProgressStatusComplete = "complete"
	ProgressStatusError    = "error"
)

// ProgressEvent is one message from the server-push progress channel
type ProgressEvent struct {
	ID       string  `json:"id"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
	FilePath string  `json:"filePath,omitempty"`
}

// IsTerminal returns true if no further events follow this one
func (e ProgressEvent) IsTerminal() bool {
	return e.Status == ProgressStatusComplete || e.Status == ProgressStatusError
}
