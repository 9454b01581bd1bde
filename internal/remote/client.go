// Package remote talks to the optional server-side analytics provider. The
// service asks it first and falls back to the local engine on any error.
package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

// ErrDisabled is returned by the client used when no endpoint is configured
var ErrDisabled = errors.New("remote analytics disabled")

// ErrInvalidPayload marks a response that decoded but is not a usable result
var ErrInvalidPayload = errors.New("invalid remote analytics payload")

// StatusError is a non-2xx answer from the remote endpoint
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote analytics returned status %d: %s", e.StatusCode, e.Body)
}

// Client fetches a server-computed analytics result for a farmer
type Client interface {
	FetchAnalytics(ctx context.Context, farmerID uint) (*models.AnalyticsResult, error)
	Enabled() bool
}

type disabled struct{}

// NewDisabled returns a client that always fails with ErrDisabled
func NewDisabled() Client {
	return disabled{}
}

func (disabled) FetchAnalytics(context.Context, uint) (*models.AnalyticsResult, error) {
	return nil, ErrDisabled
}

func (disabled) Enabled() bool { return false }

// validate rejects results the local engine would never produce
func validate(res *models.AnalyticsResult) error {
	if res == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}
	if res.DataQuality.Level == "" {
		return fmt.Errorf("%w: missing dataQuality.level", ErrInvalidPayload)
	}
	return nil
}
