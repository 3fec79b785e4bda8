package download

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/harshal-rembhotkar/fetchyt/internal/api"
	"github.com/harshal-rembhotkar/fetchyt/internal/errs"
	"github.com/harshal-rembhotkar/fetchyt/internal/model"
)

const (
	// InitialProgress is reported as soon as a download is initiated, before
	// the first server event arrives.
	InitialProgress = 5

	// DefaultStallTimeout bounds how long a job may sit at its initial
	// progress after the progress channel opens.
	DefaultStallTimeout = 30 * time.Second
)

var (
	// ErrNoActiveJob is returned when an operation requires a submitted job.
	ErrNoActiveJob = errors.New("no video has been submitted")
	// ErrNotReady is returned when the job is not in a downloadable state.
	ErrNotReady = errors.New("job is not ready for download")
	// ErrSuperseded is returned when a newer submission or a reset replaced
	// the request mid-flight.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// Service orchestrates one download job at a time
type Service struct {
	api      APIClient
	onUpdate func(model.DownloadJob) // callback for UI updates

	mu         sync.Mutex
	job        *model.DownloadJob
	generation uint64
	stream     api.Stream
	stallTimer *time.Timer

	stallTimeout time.Duration
}

// NewService creates a new download orchestrator
func NewService(client APIClient) *Service {
	return &Service{
		api:          client,
		stallTimeout: DefaultStallTimeout,
	}
}

// SetUpdateCallback sets the callback function for job snapshots
func (s *Service) SetUpdateCallback(callback func(model.DownloadJob)) {
	s.onUpdate = callback
}

// SetStallTimeout overrides the stall window
func (s *Service) SetStallTimeout(d time.Duration) {
	if d > 0 {
		s.stallTimeout = d
	}
}

// Snapshot returns a copy of the current job, if one exists
func (s *Service) Snapshot() (model.DownloadJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil {
		return model.DownloadJob{}, false
	}
	return *s.job, true
}

// Submit resolves a raw URL into a ready job: metadata, an opportunistic
// existing-artifact lookup, and a preview for the given selection. Any
// previous job is superseded.
func (s *Service) Submit(ctx context.Context, rawURL string, sel model.FormatSelection) (model.DownloadJob, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.stopStallLocked()
	s.closeStreamLocked()
	s.job = &model.DownloadJob{
		TaskID:    uuid.NewString(),
		Selection: sel,
		State:     model.StateLoading,
		StartedAt: time.Now(),
	}
	snapshot := *s.job
	s.mu.Unlock()
	s.notify(snapshot)

	logrus.Infof("resolving submitted URL (task %s)", snapshot.TaskID)

	info, err := s.api.VideoInfo(ctx, rawURL)
	if err != nil {
		return s.fail(gen, err)
	}

	s.mu.Lock()
	if gen != s.generation || s.job == nil {
		s.mu.Unlock()
		return model.DownloadJob{}, ErrSuperseded
	}
	s.job.Video = *info
	s.mu.Unlock()

	if location, ok := s.api.ExistingFile(ctx, info.ID, sel.Format); ok {
		s.mu.Lock()
		if gen == s.generation && s.job != nil {
			s.job.FileLocation = location
			s.job.AlreadyDownloaded = true
		}
		s.mu.Unlock()
	}

	preview, previewErr := s.api.PreviewURL(ctx, info.ID, sel)

	s.mu.Lock()
	if gen != s.generation || s.job == nil {
		s.mu.Unlock()
		return model.DownloadJob{}, ErrSuperseded
	}
	if previewErr != nil {
		if !errors.Is(previewErr, errs.ErrPreviewUnavailable) {
			s.mu.Unlock()
			return s.fail(gen, previewErr)
		}
		// Degraded but usable: the job can still be downloaded.
		s.job.PreviewNote = "Preview is unavailable right now. The download will still work."
	} else {
		s.job.PreviewURL = preview
	}
	s.job.State = model.StateReady
	snapshot = *s.job
	s.mu.Unlock()
	s.notify(snapshot)

	logrus.Infof("video %s ready (%s)", info.ID, info.Title)
	return snapshot, nil
}

// SetFormat changes the format/resolution of a ready job, re-running the
// existing-artifact lookup and preview negotiation. Last writer wins when
// it races with a resubmission or reset.
func (s *Service) SetFormat(ctx context.Context, sel model.FormatSelection) (model.DownloadJob, error) {
	s.mu.Lock()
	if s.job == nil {
		s.mu.Unlock()
		return model.DownloadJob{}, ErrNoActiveJob
	}
	if s.job.State != model.StateReady {
		s.mu.Unlock()
		return model.DownloadJob{}, ErrNotReady
	}
	gen := s.generation
	id := s.job.Video.ID
	s.job.Selection = sel
	s.job.FileLocation = ""
	s.job.AlreadyDownloaded = false
	s.job.PreviewNote = ""
	s.mu.Unlock()

	location, exists := s.api.ExistingFile(ctx, id, sel.Format)
	preview, previewErr := s.api.PreviewURL(ctx, id, sel)

	s.mu.Lock()
	if gen != s.generation || s.job == nil {
		s.mu.Unlock()
		return model.DownloadJob{}, ErrSuperseded
	}
	if exists {
		s.job.FileLocation = location
		s.job.AlreadyDownloaded = true
	}
	if previewErr != nil && errors.Is(previewErr, errs.ErrPreviewUnavailable) {
		s.job.PreviewURL = ""
		s.job.PreviewNote = "Preview is unavailable right now. The download will still work."
	} else if previewErr == nil {
		s.job.PreviewURL = preview
	}
	snapshot := *s.job
	s.mu.Unlock()
	s.notify(snapshot)
	return snapshot, nil
}

// StartDownload initiates the conversion job and opens its progress
// channel. Connectivity is re-probed first: the server may have gone away
// since the metadata was resolved.
func (s *Service) StartDownload(ctx context.Context) error {
	s.mu.Lock()
	if s.job == nil {
		s.mu.Unlock()
		return ErrNoActiveJob
	}
	if !s.job.State.CanDownload() {
		s.mu.Unlock()
		return ErrNotReady
	}
	gen := s.generation
	id := s.job.Video.ID
	sel := s.job.Selection
	s.mu.Unlock()

	if !s.api.Probe(ctx) {
		s.fail(gen, errs.ErrUnavailable)
		return errs.ErrUnavailable
	}

	s.mu.Lock()
	if gen != s.generation || s.job == nil || !s.job.State.CanDownload() {
		s.mu.Unlock()
		return ErrSuperseded
	}
	s.closeStreamLocked() // exactly one progress channel per job
	s.job.State = model.StateDownloading
	s.job.Progress = InitialProgress
	s.job.LastError = ""
	snapshot := *s.job
	s.mu.Unlock()
	s.notify(snapshot)

	logrus.Infof("starting %s download for %s", sel.Format, id)

	if err := s.api.StartDownload(ctx, id, sel); err != nil {
		s.fail(gen, err)
		return err
	}

	stream, err := s.api.OpenProgress(ctx, id)
	if err != nil {
		s.fail(gen, err)
		return err
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		stream.Close()
		return ErrSuperseded
	}
	s.stream = stream
	s.stallTimer = time.AfterFunc(s.stallTimeout, func() { s.onStall(gen) })
	s.mu.Unlock()

	go s.consume(gen, stream)
	return nil
}

// Reset discards the current job and invalidates all in-flight work for it
func (s *Service) Reset() {
	s.mu.Lock()
	s.generation++
	s.stopStallLocked()
	s.closeStreamLocked()
	s.job = nil
	s.mu.Unlock()
	s.notify(model.DownloadJob{State: model.StateIdle})
}

// consume drains the progress channel until it closes. A closed channel
// without a terminal transition means the transport died underneath us.
func (s *Service) consume(gen uint64, stream api.Stream) {
	for event := range stream.Events() {
		s.applyEvent(gen, event)
	}

	s.mu.Lock()
	if gen != s.generation || s.job == nil || s.job.State != model.StateDownloading {
		s.mu.Unlock()
		return
	}
	err := stream.Err()
	if err == nil {
		err = &errs.TransportError{Err: errors.New("progress stream ended unexpectedly")}
	}
	s.failLocked(err)
	snapshot := *s.job
	s.mu.Unlock()
	s.notify(snapshot)
}

// applyEvent folds one progress event into the job. Events for a stale
// generation, a foreign job id, or an already-finished job are dropped;
// progress moves by monotonic max, so duplicated or reordered deliveries
// are harmless.
func (s *Service) applyEvent(gen uint64, event model.ProgressEvent) {
	s.mu.Lock()
	if gen != s.generation || s.job == nil || s.job.State != model.StateDownloading {
		s.mu.Unlock()
		return
	}
	if event.ID != "" && event.ID != s.job.Video.ID {
		s.mu.Unlock()
		return
	}

	changed := false
	if p := int(math.Round(event.Progress)); p > s.job.Progress {
		s.job.Progress = p
		changed = true
	}

	needLookup := false
	switch event.Status {
	case model.ProgressStatusComplete:
		s.job.State = model.StateComplete
		s.job.Progress = 100
		if event.FilePath != "" {
			s.job.FileLocation = s.api.ResolveLocation(event.FilePath)
		} else if s.job.FileLocation == "" {
			needLookup = true
		}
		s.job.AlreadyDownloaded = true
		s.job.FinishedAt = time.Now()
		s.stopStallLocked()
		s.closeStreamLocked()
		changed = true
		logrus.Infof("download complete for %s", s.job.Video.ID)
	case model.ProgressStatusError:
		s.failLocked(errs.ErrDownloadFailed)
		changed = true
	}

	var snapshot model.DownloadJob
	var id string
	var format model.Format
	if changed {
		snapshot = *s.job
		id = s.job.Video.ID
		format = s.job.Selection.Format
	}
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
	if needLookup {
		go s.resolveMissingLocation(gen, id, format)
	}
}

// resolveMissingLocation recovers the file location when a terminal event
// arrived without one.
func (s *Service) resolveMissingLocation(gen uint64, id string, format model.Format) {
	location, ok := s.api.ExistingFile(context.Background(), id, format)
	if !ok {
		return
	}

	s.mu.Lock()
	if gen != s.generation || s.job == nil || s.job.State != model.StateComplete || s.job.FileLocation != "" {
		s.mu.Unlock()
		return
	}
	s.job.FileLocation = location
	snapshot := *s.job
	s.mu.Unlock()
	s.notify(snapshot)
}

// onStall fires once when the stall window elapses. The generation and
// state checks make it a no-op if the job completed, failed, or was reset
// before the timer fired.
func (s *Service) onStall(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || s.job == nil || s.job.State != model.StateDownloading || s.job.Progress > InitialProgress {
		s.mu.Unlock()
		return
	}
	logrus.Warnf("download for %s stalled at %d%%", s.job.Video.ID, s.job.Progress)
	s.failLocked(errs.ErrStallTimeout)
	snapshot := *s.job
	s.mu.Unlock()
	s.notify(snapshot)
}

// fail transitions the current job to error unless a newer generation owns
// it. Returns the resulting snapshot together with the original error.
func (s *Service) fail(gen uint64, err error) (model.DownloadJob, error) {
	s.mu.Lock()
	if gen != s.generation || s.job == nil || !s.failLocked(err) {
		s.mu.Unlock()
		return model.DownloadJob{}, err
	}
	snapshot := *s.job
	s.mu.Unlock()
	s.notify(snapshot)
	return snapshot, err
}

// failLocked performs the terminal error transition exactly once.
func (s *Service) failLocked(err error) bool {
	if s.job == nil || s.job.State.IsFinished() {
		return false
	}
	s.job.State = model.StateError
	s.job.LastError = err.Error()
	s.job.FinishedAt = time.Now()
	s.stopStallLocked()
	s.closeStreamLocked()
	logrus.Warnf("job %s failed: %v", s.job.TaskID, err)
	return true
}

func (s *Service) closeStreamLocked() {
	if s.stream != nil {
		s.stream.Close()
		s.stream = nil
	}
}

func (s *Service) stopStallLocked() {
	if s.stallTimer != nil {
		s.stallTimer.Stop()
		s.stallTimer = nil
	}
}

// notify calls the update callback if set
func (s *Service) notify(job model.DownloadJob) {
	if s.onUpdate != nil {
		s.onUpdate(job)
	}
}
