package api

// Package api implements the HTTP/SSE client for the conversion server:
// connectivity probing, metadata resolution, preview negotiation, job
// start, existing-artifact lookup, file retrieval, and the server-push
// progress stream. All request URLs are derived from the configured
// endpoint at call time.
