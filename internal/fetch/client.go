package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/branding"
	"github.com/ojet-labs/ojet/internal/logger"
)

const (
	DefaultAttempts uint = 3
	DefaultDelay         = 200 * time.Millisecond
)

// StatusError is returned for a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d", e.URL, e.StatusCode)
}

// Temporary reports whether the request may succeed if repeated.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Client performs GET requests, retrying transient failures.
type Client struct {
	httpClient *http.Client
	logger     *zerolog.Logger
	attempts   uint
	delay      time.Duration
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *zerolog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// WithAttempts sets the total number of tries per request.
func WithAttempts(n uint) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.attempts = n
		}
	}
}

// WithDelay sets the base delay between tries.
func WithDelay(d time.Duration) Option {
	return func(cl *Client) {
		cl.delay = d
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		attempts:   DefaultAttempts,
		delay:      DefaultDelay,
		userAgent:  branding.CLIName() + "-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logger.OrNop(c.logger)
	return c
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Download writes the body at url to destPath. The file only appears once
// the whole body has been received.
func (c *Client) Download(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}
	tmp := destPath + ".part"

	err := c.get(ctx, url, func(body io.Reader) error {
		f, err := os.Create(tmp)
		if err != nil {
			return retry.Unrecoverable(fmt.Errorf("creating download file: %w", err))
		}
		if _, err := io.Copy(f, body); err != nil {
			f.Close()
			return fmt.Errorf("reading download stream: %w", err)
		}
		if err := f.Close(); err != nil {
			return retry.Unrecoverable(fmt.Errorf("writing download: %w", err))
		}
		return nil
	})
	if err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, destPath); err != nil {
		return fmt.Errorf("moving download into place: %w", err)
	}
	return nil
}

// GetJSON decodes the JSON document at url into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	return c.get(ctx, url, func(body io.Reader) error {
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if err := json.Unmarshal(data, v); err != nil {
			return retry.Unrecoverable(fmt.Errorf("parsing response from %s: %w", url, err))
		}
		return nil
	}, func(req *http.Request) {
		req.Header.Set("Accept", "application/json")
	})
}

func (c *Client) get(ctx context.Context, url string, consume func(io.Reader) error, decorate ...func(*http.Request)) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
			}
			req.Header.Set("User-Agent", c.userAgent)
			for _, d := range decorate {
				d(req)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("requesting %s: %w", url, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				io.Copy(io.Discard, resp.Body)
				return &StatusError{URL: url, StatusCode: resp.StatusCode}
			}
			return consume(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug().Err(err).Uint("attempt", n+1).Str("url", url).Msg("retrying request")
		}),
	)
}

func isTransient(err error) bool {
	if !retry.IsRecoverable(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}
