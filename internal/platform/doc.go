package platform

// Package platform contains filesystem and OS integration helpers:
// directory management, safe filename construction, and opening the
// downloads folder in the system file manager.
