package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/harshal-rembhotkar/fetchyt/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func() // invoked after a confirmed save

	// UI components
	endpointEntry     *widget.Entry
	downloadDirEntry  *widget.Entry
	probeTimeoutEntry *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Conversion server endpoint
	sd.endpointEntry = widget.NewEntry()
	sd.endpointEntry.SetPlaceHolder(config.DefaultServerEndpoint)

	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	// Connectivity probe timeout
	sd.probeTimeoutEntry = widget.NewEntry()
	sd.probeTimeoutEntry.SetPlaceHolder("1-60 seconds")

	form := container.NewVBox(
		widget.NewLabel("Server Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Server Endpoint:"),
		sd.endpointEntry,

		widget.NewLabel("Connection Check Timeout (seconds):"),
		sd.probeTimeoutEntry,

		widget.NewSeparator(),
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Download Directory:"),
		downloadDirRow,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 350))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.endpointEntry.SetText(sd.settings.GetServerEndpoint())
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	seconds := int(sd.settings.GetProbeTimeout().Seconds())
	sd.probeTimeoutEntry.SetText(strconv.Itoa(seconds))
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Save server endpoint; blank falls back to the default
	sd.settings.SetServerEndpoint(sd.endpointEntry.Text)

	// Validate and save download directory
	downloadDir := sd.downloadDirEntry.Text
	if downloadDir != "" {
		sd.settings.SetDownloadDirectory(downloadDir)
	}

	// Validate and save probe timeout
	if sd.probeTimeoutEntry.Text != "" {
		if seconds, err := strconv.Atoi(sd.probeTimeoutEntry.Text); err == nil {
			sd.settings.SetProbeTimeoutSeconds(seconds)
		}
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation("Settings", "Settings saved successfully!", sd.window)
}
