package remote

import (
	"context"
	"sync"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

// Mock is a scripted Client for tests and local development
type Mock struct {
	mu     sync.Mutex
	Result *models.AnalyticsResult
	Err    error
	Calls  []uint
}

// NewMock returns a Mock answering with res, or err when err is set
func NewMock(res *models.AnalyticsResult, err error) *Mock {
	return &Mock{Result: res, Err: err}
}

func (m *Mock) FetchAnalytics(_ context.Context, farmerID uint) (*models.AnalyticsResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, farmerID)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func (m *Mock) Enabled() bool { return true }

// CallCount returns how many fetches were made
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
