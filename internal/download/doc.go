package download

// Package download implements the client-side orchestration core: it
// resolves a submitted URL into video metadata, negotiates a preview for
// the selected format, initiates the server-side conversion job, consumes
// the live progress stream into a UI state machine, and resolves the final
// file location. One job is in flight at a time; a generation counter
// makes stale callbacks no-ops after a reset or resubmission.
