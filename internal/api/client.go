package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harshal-rembhotkar/fetchyt/internal/errs"
	"github.com/harshal-rembhotkar/fetchyt/internal/model"
)

// Timeouts
const (
	DefaultProbeTimeout   = 5 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// EmbedFallbackBase is the public embeddable player used when a video
// preview cannot be produced by the server. The fallback is keyed by
// identifier only; the requested resolution is deliberately discarded.
const EmbedFallbackBase = "https://www.youtube.com/embed/"

// videoIDPattern matches supported video links and captures the
// 11-character identifier token.
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// EndpointProvider returns the configured server endpoint. It is invoked
// on every request so an endpoint change takes effect immediately.
type EndpointProvider func() string

// ExtractVideoID validates a raw URL as a supported video link and returns
// the embedded identifier. It performs no network I/O.
func ExtractVideoID(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", &errs.ValidationError{Input: rawURL, Reason: "URL is empty"}
	}

	matches := videoIDPattern.FindStringSubmatch(trimmed)
	if len(matches) < 2 {
		return "", &errs.ValidationError{Input: rawURL, Reason: "no video identifier found"}
	}
	return matches[1], nil
}

// Client talks to the conversion server
type Client struct {
	endpoint     EndpointProvider
	httpClient   *http.Client // request/response calls
	streamClient *http.Client // progress stream; must not carry a global timeout
	probeTimeout time.Duration
}

// NewClient creates a client that derives every request URL from the given
// endpoint provider.
func NewClient(endpoint EndpointProvider) *Client {
	return &Client{
		endpoint:     endpoint,
		httpClient:   &http.Client{Timeout: DefaultRequestTimeout, Transport: newTransport()},
		streamClient: &http.Client{Transport: newTransport()},
		probeTimeout: DefaultProbeTimeout,
	}
}

// newTransport tunes connection pooling for repeated small requests
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	return t
}

// SetProbeTimeout overrides the connectivity probe deadline
func (c *Client) SetProbeTimeout(d time.Duration) {
	if d > 0 {
		c.probeTimeout = d
	}
}

// baseURL returns the API root derived from the current endpoint
func (c *Client) baseURL() string {
	return strings.TrimRight(c.endpoint(), "/") + "/api"
}

// origin returns scheme://host of the current endpoint
func (c *Client) origin() string {
	u, err := url.Parse(strings.TrimRight(c.endpoint(), "/"))
	if err != nil || u.Scheme == "" {
		return strings.TrimRight(c.endpoint(), "/")
	}
	return u.Scheme + "://" + u.Host
}

// ResolveLocation turns a server-reported file location into an absolute
// URL. Root-relative paths (e.g. /media/x.mp4) are resolved against the
// configured endpoint's origin.
func (c *Client) ResolveLocation(location string) string {
	if strings.HasPrefix(location, "/") {
		return c.origin() + location
	}
	return location
}

// Probe checks whether the server is reachable within the probe timeout.
// It never returns an error: any timeout, network failure, or non-success
// status reads as unreachable.
func (c *Client) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/info?url=test", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.Debugf("probe failed: %v", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// VideoInfo resolves a submitted URL into canonical video metadata.
// Validation happens before any network call, and the connectivity probe
// gates the metadata request so an unreachable server surfaces as
// errs.ErrUnavailable rather than a confusing request failure.
func (c *Client) VideoInfo(ctx context.Context, rawURL string) (*model.VideoReference, error) {
	if _, err := ExtractVideoID(rawURL); err != nil {
		return nil, err
	}

	if !c.Probe(ctx) {
		return nil, errs.ErrUnavailable
	}

	reqURL := c.baseURL() + "/info?url=" + url.QueryEscape(strings.TrimSpace(rawURL))
	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, &errs.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstreamError(resp)
	}

	var info model.VideoReference
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &errs.UpstreamError{Status: resp.StatusCode, Message: "malformed metadata response"}
	}
	if info.ID == "" {
		return nil, &errs.UpstreamError{Status: resp.StatusCode, Message: "metadata response missing video id"}
	}

	logrus.Debugf("resolved video %s (%q)", info.ID, info.Title)
	return &info, nil
}

// PreviewURL negotiates a playable preview for the given identifier and
// selection. Video failures fall back to the public embeddable player and
// never error; audio failures return errs.ErrPreviewUnavailable.
func (c *Client) PreviewURL(ctx context.Context, id string, sel model.FormatSelection) (string, error) {
	query := sel.Query()
	query.Set("id", id)

	preview, err := c.fetchPreview(ctx, query)
	if err == nil {
		return preview, nil
	}

	if sel.Format.IsVideo() {
		logrus.Debugf("preview for %s failed (%v), falling back to embed player", id, err)
		return EmbedFallbackBase + id, nil
	}
	return "", fmt.Errorf("audio preview for %s: %w", id, errs.ErrPreviewUnavailable)
}

func (c *Client) fetchPreview(ctx context.Context, query url.Values) (string, error) {
	resp, err := c.get(ctx, c.baseURL()+"/preview?"+query.Encode())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", upstreamError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	preview := strings.TrimSpace(string(body))
	if preview == "" {
		return "", fmt.Errorf("empty preview response")
	}
	return c.ResolveLocation(preview), nil
}

// StartDownload asks the server to begin an asynchronous conversion job.
// The job's progress is observed separately via OpenProgress.
func (c *Client) StartDownload(ctx context.Context, id string, sel model.FormatSelection) error {
	query := sel.Query()
	query.Set("id", id)

	resp, err := c.get(ctx, c.baseURL()+"/download?"+query.Encode())
	if err != nil {
		return &errs.TransportError{Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errs.UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("could not start download (HTTP %d)", resp.StatusCode)}
	}
	return nil
}

// ExistingFile checks whether the server already holds a converted file
// for this identifier and format. Any failure, including an unreachable
// server, reads as absent: this lookup is a convenience, never a gate.
func (c *Client) ExistingFile(ctx context.Context, id string, format model.Format) (string, bool) {
	query := url.Values{}
	query.Set("id", id)
	query.Set("format", string(format))

	resp, err := c.get(ctx, c.baseURL()+"/getFile?"+query.Encode())
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}

	var payload struct {
		FilePath string `json:"filePath"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.FilePath == "" {
		return "", false
	}
	return c.ResolveLocation(payload.FilePath), true
}

// FetchFile retrieves a resolved file location fully into memory. The
// response handle is released unconditionally.
func (c *Client) FetchFile(ctx context.Context, location string) ([]byte, error) {
	resp, err := c.get(ctx, c.ResolveLocation(location))
	if err != nil {
		return nil, &errs.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.TransportError{Status: resp.StatusCode}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.TransportError{Err: err}
	}
	if len(payload) == 0 {
		return nil, errs.ErrEmptyPayload
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// upstreamError builds an UpstreamError from a non-success response, using
// the body's JSON message when one is present.
func upstreamError(resp *http.Response) error {
	e := &errs.UpstreamError{Status: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		e.Message = payload.Message
	}
	return e
}
