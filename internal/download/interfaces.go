package download

import (
	"context"

	"github.com/harshal-rembhotkar/fetchyt/internal/api"
	"github.com/harshal-rembhotkar/fetchyt/internal/model"
)

// APIClient is the slice of the protocol client the orchestrator needs.
type APIClient interface {
	Probe(ctx context.Context) bool
	VideoInfo(ctx context.Context, rawURL string) (*model.VideoReference, error)
	PreviewURL(ctx context.Context, id string, sel model.FormatSelection) (string, error)
	StartDownload(ctx context.Context, id string, sel model.FormatSelection) error
	OpenProgress(ctx context.Context, id string) (api.Stream, error)
	ExistingFile(ctx context.Context, id string, format model.Format) (string, bool)
	ResolveLocation(location string) string
}

// Orchestrator defines the interface for the download service.
type Orchestrator interface {
	SetUpdateCallback(func(model.DownloadJob))
	Submit(ctx context.Context, rawURL string, sel model.FormatSelection) (model.DownloadJob, error)
	SetFormat(ctx context.Context, sel model.FormatSelection) (model.DownloadJob, error)
	StartDownload(ctx context.Context) error
	Reset()
	Snapshot() (model.DownloadJob, bool)
}
