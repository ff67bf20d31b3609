package cdx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pders01/wayback-context/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the Wayback Machine CDX search API
	DefaultEndpoint = "https://web.archive.org/cdx/search/cdx"
	// DefaultTimeout bounds the whole request, body included
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies the tool to the archive
	DefaultUserAgent = "wayback-context/1.0"
	// DefaultMaxBytes caps how much of a response body is read
	DefaultMaxBytes int64 = 32 << 20

	// maxErrorBody is how much of a failed response ends up in the log
	maxErrorBody = 512
)

// StatusError is returned when the index answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	Endpoint   string
	UserAgent  string
	Timeout    time.Duration
	MaxBytes   int64
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client queries the CDX index for recorded snapshots
type Client struct {
	endpoint  string
	userAgent string
	maxBytes  int64
	http      *http.Client
	log       *zap.Logger
}

// NewClient creates a new CDX client
func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	// Copy so the caller's client keeps its own timeout.
	bounded := *httpClient
	bounded.Timeout = opts.Timeout

	return &Client{
		endpoint:  opts.Endpoint,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		http:      &bounded,
		log:       opts.Logger,
	}
}

// Endpoint returns the CDX endpoint in use
func (c *Client) Endpoint() string {
	return c.endpoint
}

// QueryURL builds the CDX request URL for a target
func (c *Client) QueryURL(target string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid CDX endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("url", target)
	q.Set("output", "text")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Query fetches and parses all snapshots recorded for target.
// Any transport failure or non-2xx status is returned as an error.
func (c *Client) Query(ctx context.Context, target string) ([]models.Snapshot, error) {
	queryURL, err := c.QueryURL(target)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		body = truncateToLastLine(body[:c.maxBytes])
		c.log.Warn("CDX response exceeded size limit, trailing row dropped",
			zap.String("url", queryURL),
			zap.Int64("max_bytes", c.maxBytes))
	}

	return ParseSnapshots(string(body)), nil
}

// truncateToLastLine drops everything after the last newline in body
func truncateToLastLine(body []byte) []byte {
	i := bytes.LastIndexByte(body, '\n')
	if i < 0 {
		return body[:0]
	}
	return body[:i+1]
}

// FetchSnapshots returns the snapshots for target, or an empty list when
// the index cannot be reached. Failures are logged, never returned.
func (c *Client) FetchSnapshots(ctx context.Context, target string) []models.Snapshot {
	snapshots, err := c.Query(ctx, target)
	if err == nil {
		return snapshots
	}

	queryURL, _ := c.QueryURL(target)

	var statusErr *StatusError
	switch {
	case IsTimeout(err):
		c.log.Warn("CDX request timed out", zap.String("url", queryURL))
	case errors.As(err, &statusErr):
		c.log.Warn("CDX request failed",
			zap.String("url", queryURL),
			zap.Int("status", statusErr.StatusCode),
			zap.String("response", statusErr.Body))
	default:
		c.log.Warn("CDX request failed", zap.String("url", queryURL), zap.Error(err))
	}

	return []models.Snapshot{}
}

// IsTimeout reports whether err comes from an exceeded deadline
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
