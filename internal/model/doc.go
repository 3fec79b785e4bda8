package model

// Package model defines domain data structures used across the app: the
// resolved video reference, format/resolution selection, the download job
// and its state enum, and progress events from the conversion server.
// Structures are designed for direct binding in the UI and explicit state
// transitions.
