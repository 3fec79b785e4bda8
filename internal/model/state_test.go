package model

import "testing"

func TestDownloadState_IsActive(t *testing.T) {
	tests := []struct {
		state    DownloadState
		expected bool
	}{
		{StateIdle, false},
		{StateLoading, true},
		{StateReady, false},
		{StateDownloading, true},
		{StateComplete, false},
		{StateError, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("DownloadState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestDownloadState_IsFinished(t *testing.T) {
	tests := []struct {
		state    DownloadState
		expected bool
	}{
		{StateIdle, false},
		{StateLoading, false},
		{StateReady, false},
		{StateDownloading, false},
		{StateComplete, true},
		{StateError, true},
	}

	for _, test := range tests {
		result := test.state.IsFinished()
		if result != test.expected {
			t.Errorf("DownloadState(%s).IsFinished() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestDownloadState_CanDownload(t *testing.T) {
	tests := []struct {
		state    DownloadState
		expected bool
	}{
		{StateIdle, false},
		{StateLoading, false},
		{StateReady, true},
		{StateDownloading, false},
		{StateComplete, false},
		{StateError, false},
	}

	for _, test := range tests {
		result := test.state.CanDownload()
		if result != test.expected {
			t.Errorf("DownloadState(%s).CanDownload() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestDownloadState_String(t *testing.T) {
	state := StateDownloading
	expected := "downloading"
	result := state.String()

	if result != expected {
		t.Errorf("DownloadState.String() = %s, expected %s", result, expected)
	}
}
