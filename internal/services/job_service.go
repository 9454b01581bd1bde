package services

import (
	"context"
	"fmt"

	"github.com/kisanmitra/farm-analytics-api/internal/jobs"
	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
)

// WorkerStatsSource reports pool statistics. *jobs.Worker satisfies it.
type WorkerStatsSource interface {
	GetStats() jobs.WorkerStats
}

// JobStatus is the worker pool state plus the number of export jobs in each
// lifecycle status. Saturated means new exports would be rejected.
type JobStatus struct {
	jobs.WorkerStats
	Saturated bool             `json:"saturated"`
	Exports   map[string]int64 `json:"exports"`
}

type JobService struct {
	worker  WorkerStatsSource
	exports repository.ExportJobRepository
}

func NewJobService(worker WorkerStatsSource, exports repository.ExportJobRepository) *JobService {
	return &JobService{
		worker:  worker,
		exports: exports,
	}
}

var exportStatuses = []string{
	models.ExportStatusQueued,
	models.ExportStatusRunning,
	models.ExportStatusCompleted,
	models.ExportStatusFailed,
}

func (s *JobService) GetStatus(ctx context.Context) (*JobStatus, error) {
	stats := s.worker.GetStats()
	status := &JobStatus{
		WorkerStats: stats,
		Saturated:   stats.QueueCapacity > 0 && stats.QueueLength >= stats.QueueCapacity,
		Exports:     make(map[string]int64, len(exportStatuses)),
	}
	for _, st := range exportStatuses {
		query := repository.NewListQuery()
		query.PerPage = 1
		query.Filters["status"] = st
		_, total, err := s.exports.List(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s exports: %w", st, err)
		}
		status.Exports[st] = total
	}
	return status, nil
}
