package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DefaultBaseURL is the public REST Countries API.
const DefaultBaseURL = "https://restcountries.com"

const (
	listPath     = "/v3.1/all"
	maxBodyBytes = 4 << 20
)

// RESTSource fetches common country names from a REST Countries compatible
// API and sorts them by locale collation.
type RESTSource struct {
	baseURL    string
	client     *http.Client
	timeout    time.Duration
	maxRetries int
	backoff    BackoffStrategy
	tag        language.Tag
	logger     *slog.Logger
}

// RESTOption configures a RESTSource.
type RESTOption func(*RESTSource)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) RESTOption {
	return func(s *RESTSource) {
		if u != "" {
			s.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client. Nil is ignored.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(s *RESTSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds each request attempt.
func WithTimeout(d time.Duration) RESTOption {
	return func(s *RESTSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n int) RESTOption {
	return func(s *RESTSource) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithBackoff sets the delay strategy between retries.
func WithBackoff(b BackoffStrategy) RESTOption {
	return func(s *RESTSource) {
		if b != nil {
			s.backoff = b
		}
	}
}

// WithLanguage sets the collation used to sort names.
func WithLanguage(tag language.Tag) RESTOption {
	return func(s *RESTSource) { s.tag = tag }
}

// WithRESTLogger sets the logger for retry diagnostics.
func WithRESTLogger(l *slog.Logger) RESTOption {
	return func(s *RESTSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewRESTSource returns a source with a 10s per-attempt timeout and two
// retries on transient failures.
func NewRESTSource(opts ...RESTOption) *RESTSource {
	s := &RESTSource{
		baseURL:    DefaultBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		timeout:    10 * time.Second,
		maxRetries: 2,
		backoff:    DefaultBackoffStrategy(),
		tag:        language.English,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type countryDTO struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
}

// Countries fetches the list, retrying network errors, 429 and 5xx responses.
func (s *RESTSource) Countries(ctx context.Context) ([]string, error) {
	endpoint, err := s.endpoint()
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.backoff.NextInterval(attempt)
			s.logger.DebugContext(ctx, "retrying country list fetch",
				slog.Int("attempt", attempt+1),
				slog.Duration("delay", delay),
				slog.Any("error", lastErr),
			)
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrFetchFailed, ctx.Err())
			case <-time.After(delay):
			}
		}

		names, retry, err := s.fetch(ctx, endpoint)
		if err == nil {
			return names, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}

	return nil, errors.Join(ErrFetchFailed, lastErr)
}

func (s *RESTSource) endpoint() (string, error) {
	u, err := url.Parse(s.baseURL + listPath)
	if err != nil {
		return "", errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	u.RawQuery = url.Values{"fields": {"name"}}.Encode()
	return u.String(), nil
}

// fetch performs one attempt and reports whether a failure is worth retrying.
func (s *RESTSource) fetch(ctx context.Context, endpoint string) ([]string, bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "formguard-countries/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var dtos []countryDTO
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&dtos); err != nil {
		return nil, false, errors.Join(ErrDecode, err)
	}

	names := make([]string, 0, len(dtos))
	for _, d := range dtos {
		names = append(names, strings.TrimSpace(d.Name.Common))
	}
	names = SortNames(names, s.tag)
	if len(names) == 0 {
		return nil, false, ErrEmptyList
	}
	return names, false, nil
}
