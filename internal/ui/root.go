package ui

import (
	"context"
	"path"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/harshal-rembhotkar/fetchyt/internal/api"
	"github.com/harshal-rembhotkar/fetchyt/internal/config"
	"github.com/harshal-rembhotkar/fetchyt/internal/download"
	"github.com/harshal-rembhotkar/fetchyt/internal/model"
	"github.com/harshal-rembhotkar/fetchyt/internal/platform"
	"github.com/harshal-rembhotkar/fetchyt/internal/save"
)

// RootUI represents the main UI structure
type RootUI struct {
	window      fyne.Window
	settings    *config.Settings
	apiClient   *api.Client
	downloadSvc download.Orchestrator
	saveSvc     *save.Service

	urlEntry *widget.Entry
	fetchBtn *widget.Button

	bannerLabel *widget.Label
	bannerCheck *widget.Button
	banner      *fyne.Container

	infoTitle    *widget.Label
	infoAuthor   *widget.Label
	infoDuration *widget.Label
	thumbnail    *canvas.Image
	thumbnailURL string
	infoCard     *fyne.Container

	formatRadio      *widget.RadioGroup
	resolutionSelect *widget.Select
	selectorBox      *fyne.Container

	previewLabel *widget.Label

	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	downloadBtn   *widget.Button
	saveBtn       *widget.Button
	openFolderBtn *widget.Button
	resetBtn      *widget.Button
	actionBox     *fyne.Container
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, apiClient *api.Client, downloadSvc download.Orchestrator, saveSvc *save.Service) *RootUI {
	ui := &RootUI{
		window:      window,
		settings:    config.NewSettings(app),
		apiClient:   apiClient,
		downloadSvc: downloadSvc,
		saveSvc:     saveSvc,
	}

	ui.downloadSvc.SetUpdateCallback(ui.onJobUpdate)

	ui.setupUI()
	ui.checkBackend()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(LabelURLPlaceholder)
	ui.urlEntry.OnSubmitted = func(string) { ui.onFetchClick() }

	ui.fetchBtn = widget.NewButton(LabelFetch, ui.onFetchClick)
	urlRow := container.NewBorder(nil, nil, nil, ui.fetchBtn, ui.urlEntry)

	// Connectivity banner, hidden while the server is reachable
	ui.bannerLabel = widget.NewLabel(MsgServerOffline)
	ui.bannerLabel.Wrapping = fyne.TextWrapWord
	ui.bannerCheck = widget.NewButton(LabelCheckConnection, ui.checkBackend)
	ui.banner = container.NewBorder(nil, nil, nil, ui.bannerCheck, ui.bannerLabel)
	ui.banner.Hide()

	ui.infoTitle = widget.NewLabel("")
	ui.infoTitle.TextStyle = fyne.TextStyle{Bold: true}
	ui.infoTitle.Wrapping = fyne.TextWrapWord
	ui.infoAuthor = widget.NewLabel("")
	ui.infoDuration = widget.NewLabel("")
	ui.thumbnail = canvas.NewImageFromResource(nil)
	ui.thumbnail.SetMinSize(fyne.NewSize(160, 90))
	ui.thumbnail.FillMode = canvas.ImageFillContain
	infoLabels := container.NewVBox(ui.infoTitle, ui.infoAuthor, ui.infoDuration)
	ui.infoCard = container.NewBorder(nil, nil, ui.thumbnail, nil, infoLabels)
	ui.infoCard.Hide()

	ui.formatRadio = widget.NewRadioGroup([]string{LabelFormatVideo, LabelFormatAudio}, ui.onFormatChanged)
	ui.formatRadio.SetSelected(LabelFormatVideo)
	ui.formatRadio.Horizontal = true

	resolutionOptions := lo.Map(model.Resolutions(), func(r model.Resolution, _ int) string {
		return string(r)
	})
	ui.resolutionSelect = widget.NewSelect(resolutionOptions, ui.onResolutionChanged)
	ui.resolutionSelect.SetSelected(string(model.DefaultResolution))
	ui.selectorBox = container.NewVBox(ui.formatRadio, ui.resolutionSelect)
	ui.selectorBox.Hide()

	ui.previewLabel = widget.NewLabel("")
	ui.previewLabel.Wrapping = fyne.TextWrapWord
	ui.previewLabel.Hide()

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Hide()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.downloadBtn = widget.NewButton(LabelDownload, ui.onDownloadClick)
	ui.saveBtn = widget.NewButton(LabelSaveFile, ui.onSaveClick)
	ui.openFolderBtn = widget.NewButton(LabelOpenFolder, ui.onOpenFolderClick)
	ui.resetBtn = widget.NewButton(LabelReset, ui.onResetClick)
	ui.actionBox = container.NewHBox(ui.downloadBtn, ui.saveBtn, ui.openFolderBtn, ui.resetBtn)
	ui.actionBox.Hide()

	content := container.NewVBox(
		ui.banner,
		urlRow,
		widget.NewSeparator(),
		ui.infoCard,
		ui.selectorBox,
		ui.previewLabel,
		ui.progressBar,
		ui.statusLabel,
		ui.actionBox,
	)

	ui.window.SetContent(container.NewPadded(content))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(MenuSettings, ui.onShowSettings)
	fileMenu := fyne.NewMenu(MenuFile, settingsItem)
	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// currentSelection reads the format/resolution widgets into a normalized selection
func (ui *RootUI) currentSelection() model.FormatSelection {
	format := model.FormatMP4
	if ui.formatRadio.Selected == LabelFormatAudio {
		format = model.FormatMP3
	}
	return model.NewFormatSelection(format, model.Resolution(ui.resolutionSelect.Selected))
}

// checkBackend probes the server and toggles the connectivity banner
func (ui *RootUI) checkBackend() {
	go func() {
		reachable := ui.apiClient.Probe(context.Background())
		fyne.Do(func() {
			if reachable {
				ui.banner.Hide()
			} else {
				ui.banner.Show()
			}
		})
	}()
}

// onFetchClick handles URL submission
func (ui *RootUI) onFetchClick() {
	urlText := ui.urlEntry.Text
	if urlText == "" {
		ui.statusLabel.SetText(MsgEnterURL)
		return
	}

	sel := ui.currentSelection()
	go func() {
		if _, err := ui.downloadSvc.Submit(context.Background(), urlText, sel); err != nil {
			// The job snapshot already carries the message; just log here.
			logrus.Debugf("submit failed: %v", err)
		}
	}()
}

// onFormatChanged re-negotiates the preview and artifact lookup
func (ui *RootUI) onFormatChanged(string) {
	if ui.resolutionSelect != nil {
		if ui.formatRadio.Selected == LabelFormatVideo {
			ui.resolutionSelect.Show()
		} else {
			ui.resolutionSelect.Hide()
		}
	}
	ui.refreshSelection()
}

func (ui *RootUI) onResolutionChanged(string) {
	ui.refreshSelection()
}

func (ui *RootUI) refreshSelection() {
	if _, ok := ui.downloadSvc.Snapshot(); !ok {
		return
	}
	sel := ui.currentSelection()
	go func() {
		if _, err := ui.downloadSvc.SetFormat(context.Background(), sel); err != nil {
			logrus.Debugf("format change ignored: %v", err)
		}
	}()
}

// onDownloadClick initiates the conversion job
func (ui *RootUI) onDownloadClick() {
	go func() {
		if err := ui.downloadSvc.StartDownload(context.Background()); err != nil {
			logrus.Debugf("download not started: %v", err)
		}
	}()
}

// onSaveClick streams the converted file into the downloads directory
func (ui *RootUI) onSaveClick() {
	job, ok := ui.downloadSvc.Snapshot()
	if !ok || job.FileLocation == "" {
		return
	}

	go func() {
		path, err := ui.saveSvc.Save(context.Background(), job.FileLocation, job.Video.Title, string(job.Selection.Format))
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, ui.window)
				return
			}
			ui.statusLabel.SetText("Saved to " + path)
		})
	}()
}

// onOpenFolderClick reveals the downloads directory
func (ui *RootUI) onOpenFolderClick() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.OpenFolder(dir); err != nil {
		logrus.Warnf("could not open %s: %v", dir, err)
	}
}

// onResetClick discards the current job
func (ui *RootUI) onResetClick() {
	ui.downloadSvc.Reset()
	ui.urlEntry.SetText("")
}

// onShowSettings opens the settings dialog. Saved settings that are not
// read per call, like the probe timeout, are re-applied on save.
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.window)
	sd.onSaved = func() {
		ui.apiClient.SetProbeTimeout(ui.settings.GetProbeTimeout())
	}
	sd.Show()
}

// onJobUpdate handles job snapshots from the orchestrator. It may be
// called from any goroutine, so rendering is funneled through fyne.Do.
func (ui *RootUI) onJobUpdate(job model.DownloadJob) {
	fyne.Do(func() { ui.render(job) })
}

// render maps one job snapshot onto the widgets
func (ui *RootUI) render(job model.DownloadJob) {
	switch job.State {
	case model.StateIdle:
		ui.thumbnailURL = ""
		ui.thumbnail.Resource = nil
		ui.infoCard.Hide()
		ui.selectorBox.Hide()
		ui.previewLabel.Hide()
		ui.progressBar.Hide()
		ui.actionBox.Hide()
		ui.statusLabel.SetText("")
		ui.fetchBtn.Enable()
		ui.urlEntry.Enable()

	case model.StateLoading:
		ui.statusLabel.SetText(MsgLoading)
		ui.fetchBtn.Disable()
		ui.progressBar.Hide()
		ui.actionBox.Hide()

	case model.StateReady:
		ui.renderInfo(job)
		ui.fetchBtn.Enable()
		ui.selectorBox.Show()
		ui.enableSelectors()
		ui.progressBar.Hide()
		ui.actionBox.Show()
		ui.downloadBtn.Enable()
		ui.resetBtn.Enable()
		if job.AlreadyDownloaded {
			ui.statusLabel.SetText(MsgAlreadyAvailable)
			ui.saveBtn.Enable()
		} else {
			ui.statusLabel.SetText(MsgReady)
			ui.saveBtn.Disable()
		}
		ui.openFolderBtn.Enable()
		ui.renderPreview(job)

	case model.StateDownloading:
		ui.statusLabel.SetText(MsgDownloading)
		ui.progressBar.Show()
		ui.progressBar.SetValue(float64(job.Progress) / 100.0)
		ui.disableSelectors()
		ui.downloadBtn.Disable()
		ui.saveBtn.Disable()
		ui.resetBtn.Disable()

	case model.StateComplete:
		ui.renderInfo(job)
		ui.progressBar.Show()
		ui.progressBar.SetValue(1.0)
		ui.statusLabel.SetText(MsgComplete)
		ui.actionBox.Show()
		ui.downloadBtn.Disable()
		ui.saveBtn.Enable()
		ui.openFolderBtn.Enable()
		ui.resetBtn.Enable()

	case model.StateError:
		ui.statusLabel.SetText(job.LastError)
		ui.progressBar.Hide()
		ui.fetchBtn.Enable()
		ui.actionBox.Show()
		ui.downloadBtn.Disable()
		ui.saveBtn.Disable()
		ui.resetBtn.Enable()
		ui.resetBtn.SetText(LabelRetry)
		return
	}

	ui.resetBtn.SetText(LabelReset)
}

func (ui *RootUI) renderInfo(job model.DownloadJob) {
	ui.infoTitle.SetText(job.Video.Title)
	ui.infoAuthor.SetText("By: " + job.Video.Author)
	ui.infoDuration.SetText("Duration: " + job.Video.DurationString())
	ui.renderThumbnail(job.Video.Thumbnail)
	ui.infoCard.Show()
}

// renderThumbnail fetches and shows the video thumbnail. The fetch runs off
// the UI goroutine and is keyed by URL so repeated snapshots of the same job
// do not refetch.
func (ui *RootUI) renderThumbnail(url string) {
	if url == "" || url == ui.thumbnailURL {
		return
	}
	ui.thumbnailURL = url

	go func() {
		res := ui.loadThumbnail(url)
		if res == nil {
			return
		}
		fyne.Do(func() {
			if ui.thumbnailURL != url {
				return
			}
			ui.thumbnail.Resource = res
			ui.thumbnail.Refresh()
		})
	}()
}

// loadThumbnail retrieves thumbnail bytes into a renderable resource. A
// missing or failed thumbnail returns nil and leaves the placeholder empty.
func (ui *RootUI) loadThumbnail(url string) fyne.Resource {
	payload, err := ui.apiClient.FetchFile(context.Background(), url)
	if err != nil {
		logrus.Debugf("thumbnail fetch failed: %v", err)
		return nil
	}

	name := path.Base(url)
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	return fyne.NewStaticResource(name, payload)
}

func (ui *RootUI) renderPreview(job model.DownloadJob) {
	switch {
	case job.PreviewNote != "":
		ui.previewLabel.SetText(job.PreviewNote)
		ui.previewLabel.Show()
	case job.PreviewURL != "":
		ui.previewLabel.SetText("Preview: " + job.PreviewURL)
		ui.previewLabel.Show()
	default:
		ui.previewLabel.Hide()
	}
}

func (ui *RootUI) enableSelectors() {
	ui.formatRadio.Enable()
	ui.resolutionSelect.Enable()
}

func (ui *RootUI) disableSelectors() {
	ui.formatRadio.Disable()
	ui.resolutionSelect.Disable()
}

