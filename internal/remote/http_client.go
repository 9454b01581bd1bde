package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

const maxErrorBody = 512

type httpClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPClient creates a client for baseURL. Each request is bounded by
// timeout on top of whatever deadline the caller's context carries.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// New picks the HTTP client when baseURL is set and the disabled one otherwise
func New(baseURL, apiKey string, timeout time.Duration) Client {
	if strings.TrimSpace(baseURL) == "" {
		return NewDisabled()
	}
	return NewHTTPClient(baseURL, apiKey, timeout)
}

func (c *httpClient) Enabled() bool { return true }

func (c *httpClient) FetchAnalytics(ctx context.Context, farmerID uint) (*models.AnalyticsResult, error) {
	url := fmt.Sprintf("%s/farmers/%d/analytics", c.baseURL, farmerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build remote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote analytics request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	// The provider answers either with the bare result or wrapped as
	// {"analytics": {...}}.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote analytics: %w", err)
	}
	var envelope struct {
		Analytics *models.AnalyticsResult `json:"analytics"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	res := envelope.Analytics
	if res == nil {
		res = &models.AnalyticsResult{}
		if err := json.Unmarshal(raw, res); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	if err := validate(res); err != nil {
		return nil, err
	}
	return res, nil
}
