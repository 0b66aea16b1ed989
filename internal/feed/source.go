package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"costasight-comparables/pkg/logger"
)

// Source supplies the raw listing feed. The provider depends only on this
// seam, not on where the feed lives or its transport.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads the feed from a local path.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %v", err)
	}
	return f, nil
}

// HTTPSource fetches the feed from a configured URL with bounded retries.
type HTTPSource struct {
	URL        string
	MaxRetries int
	Client     *http.Client
}

func NewHTTPSource(url string, maxRetries int) *HTTPSource {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &HTTPSource{
		URL:        url,
		MaxRetries: maxRetries,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	var lastErr error
	for attempt := 1; attempt <= s.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create feed request: %v", err)
		}

		resp, err := s.Client.Do(req)
		if err != nil {
			lastErr = err
			logger.GlobalLogger.Errorf("Feed fetch failed (attempt %d/%d): url=%s, error=%v", attempt, s.MaxRetries, s.URL, err)
		} else if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("feed fetch returned %s", resp.Status)
			logger.GlobalLogger.Errorf("Feed fetch failed (attempt %d/%d): url=%s, status=%s", attempt, s.MaxRetries, s.URL, resp.Status)
		} else {
			return resp.Body, nil
		}

		if attempt < s.MaxRetries {
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("feed fetch failed after %d attempts: %v", s.MaxRetries, lastErr)
}
