package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/harshal-rembhotkar/fetchyt/internal/api"
	"github.com/harshal-rembhotkar/fetchyt/internal/config"
	"github.com/harshal-rembhotkar/fetchyt/internal/download"
	"github.com/harshal-rembhotkar/fetchyt/internal/save"
	"github.com/harshal-rembhotkar/fetchyt/internal/ui"
)

const (
	appID   = "com.harshal-rembhotkar.fetchyt"
	appName = "FetchYT"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Infof("starting %s %s", appName, version)

	// Create new Fyne app
	myApp := app.NewWithID(appID)
	myWindow := myApp.NewWindow(appName)
	myWindow.Resize(fyne.NewSize(600, 500))

	settings := config.NewSettings(myApp)

	// The endpoint is read on every request so settings changes apply
	// without a restart.
	apiClient := api.NewClient(settings.GetServerEndpoint)
	apiClient.SetProbeTimeout(settings.GetProbeTimeout())

	downloadSvc := download.NewService(apiClient)
	saveSvc := save.NewService(apiClient, settings.GetDownloadDirectory)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, apiClient, downloadSvc, saveSvc)

	// Show and run
	myWindow.ShowAndRun()
}
