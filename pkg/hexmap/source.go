package hexmap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// Source fetches the raw bytes of a dataset.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads a dataset from the local filesystem.
type FileSource struct {
	Path string
}

// Fetch reads the file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return data, nil
}

func (s FileSource) String() string {
	return "file:" + s.Path
}

// HTTPSource fetches a dataset with GET, retrying transport errors and
// 5xx/429 responses with exponential backoff.
type HTTPSource struct {
	URL        string
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// NewHTTPSource creates an HTTPSource with 3 retries starting at 250ms.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:        url,
		Client:     &http.Client{Timeout: 30 * time.Second},
		MaxRetries: 3,
		BaseDelay:  250 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

func (s *HTTPSource) String() string {
	return s.URL
}

// Fetch downloads the dataset.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	return failsafe.With[[]byte](s.retryPolicy()).
		WithContext(ctx).
		Get(func() ([]byte, error) {
			return s.get(ctx)
		})
}

func (s *HTTPSource) retryPolicy() retrypolicy.RetryPolicy[[]byte] {
	retries := max(s.MaxRetries, 0)
	base := s.BaseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	maxDelay := s.MaxDelay
	if maxDelay <= base {
		maxDelay = base * 20
	}

	return retrypolicy.NewBuilder[[]byte]().
		WithBackoff(base, maxDelay).
		WithMaxRetries(retries).
		WithJitterFactor(0.1).
		HandleIf(func(_ []byte, err error) bool {
			return retryable(err)
		}).
		Build()
}

func (s *HTTPSource) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: s.URL, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
