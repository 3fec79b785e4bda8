package ui

// Package ui implements the Fyne front-end: a single-job panel with URL
// submission, video info card, format/resolution selection, live download
// progress, and a settings dialog for the server endpoint.
