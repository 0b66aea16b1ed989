package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/logger"
	"costasight-comparables/pkg/metrics"
)

// Client calls the external geocoding service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	httpClient *http.Client
}

// NewClient creates a new geocoding client. The timeout bounds a single
// request; the caller's context deadline bounds the whole call.
func NewClient(baseURL, apiKey string, timeout time.Duration, maxRetries int) *Client {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxRetries: maxRetries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Lat        float64 `json:"lat"`
		Lng        float64 `json:"lng"`
		Confidence float64 `json:"confidence"`
		Landmarks  []struct {
			Name string  `json:"name"`
			Lat  float64 `json:"lat"`
			Lng  float64 `json:"lng"`
		} `json:"landmarks"`
	} `json:"results"`
}

// Geocode resolves free text into coordinates, landmarks and a confidence.
func (c *Client) Geocode(ctx context.Context, text string) (*Result, error) {
	params := url.Values{}
	params.Set("q", text)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	reqURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		start := time.Now()
		result, retryable, err := c.doGeocode(ctx, reqURL)
		metrics.GeocodeCallDuration.Observe(time.Since(start).Seconds())
		if err == nil {
			metrics.GeocodeCallsTotal.WithLabelValues("ok").Inc()
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			metrics.GeocodeCallsTotal.WithLabelValues("timeout").Inc()
			return nil, ctx.Err()
		}
		if !retryable {
			break
		}
		logger.GlobalLogger.Errorf("Geocode request failed (attempt %d/%d): url=%s, error=%v", attempt, c.maxRetries, c.baseURL, err)
		if attempt < c.maxRetries {
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				metrics.GeocodeCallsTotal.WithLabelValues("timeout").Inc()
				return nil, ctx.Err()
			}
		}
	}

	metrics.GeocodeCallsTotal.WithLabelValues("error").Inc()
	return nil, fmt.Errorf("geocoding failed: %v", lastErr)
}

func (c *Client) doGeocode(ctx context.Context, reqURL string) (*Result, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create geocode request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to send geocode request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read geocode response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= http.StatusInternalServerError
		return nil, retryable, fmt.Errorf("geocode request returned %s: %s", resp.Status, string(body))
	}

	var payload geocodeResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode geocode response: %v", err)
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		metrics.GeocodeCallsTotal.WithLabelValues("empty").Inc()
		return nil, false, fmt.Errorf("geocoding returned no results")
	}

	first := payload.Results[0]
	result := &Result{
		Coordinates: models.Coordinates{Latitude: first.Lat, Longitude: first.Lng},
		Confidence:  first.Confidence,
	}
	for _, lm := range first.Landmarks {
		result.Landmarks = append(result.Landmarks, Landmark{
			Name:        lm.Name,
			Coordinates: models.Coordinates{Latitude: lm.Lat, Longitude: lm.Lng},
		})
	}
	return result, false, nil
}
