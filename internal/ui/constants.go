package ui

// Widget labels
const (
	LabelURLPlaceholder  = "Paste a video URL (youtube.com / youtu.be)"
	LabelFetch           = "Fetch"
	LabelDownload        = "Download"
	LabelSaveFile        = "Save File"
	LabelOpenFolder      = "Open Folder"
	LabelReset           = "Start Over"
	LabelRetry           = "Try Again"
	LabelCheckConnection = "Check Connection"
	LabelFormatVideo     = "Video (MP4)"
	LabelFormatAudio     = "Audio (MP3)"
)

// Status messages
const (
	MsgEnterURL         = "Please enter a video URL"
	MsgLoading          = "Fetching video information..."
	MsgReady            = "Ready to download"
	MsgAlreadyAvailable = "This video has already been downloaded and is ready to save"
	MsgDownloading      = "Converting and downloading..."
	MsgComplete         = "Download complete"
	MsgServerOffline    = "Cannot reach the download server. Check the endpoint in Settings."
)

// Menu labels
const (
	MenuFile     = "File"
	MenuSettings = "Settings"
)
