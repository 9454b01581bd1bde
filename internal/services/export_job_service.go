package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/kisanmitra/farm-analytics-api/internal/jobs"
	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
	"github.com/kisanmitra/farm-analytics-api/internal/statemachine"
	"github.com/kisanmitra/farm-analytics-api/pkg/logger"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	exportSubDir    = "exports"
	exportBatchSize = 100
)

// JobQueue accepts background work. *jobs.Worker satisfies it.
type JobQueue interface {
	Enqueue(name string, job jobs.Job) error
}

// FileStore keeps generated export files. *storage.LocalStorage satisfies it.
type FileStore interface {
	UploadFromBytes(data []byte, filename string, subDir string) (string, error)
	GetFullPath(relativePath string) (string, error)
	Exists(relativePath string) bool
	Delete(relativePath string) error
}

// ExportJobService runs batch summary exports across every stored profile.
// Jobs are persisted, executed on the worker pool and moved through their
// lifecycle by ExportJobFSM.
type ExportJobService struct {
	jobs        repository.ExportJobRepository
	profiles    repository.ProfileRepository
	analytics   *AnalyticsService
	exporter    *ExportService
	store       FileStore
	queue       JobQueue
	audit       *AuditService
	concurrency int
}

func NewExportJobService(
	jobRepo repository.ExportJobRepository,
	profiles repository.ProfileRepository,
	analyticsSvc *AnalyticsService,
	exporter *ExportService,
	store FileStore,
	queue JobQueue,
	audit *AuditService,
	concurrency int,
) *ExportJobService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ExportJobService{
		jobs:        jobRepo,
		profiles:    profiles,
		analytics:   analyticsSvc,
		exporter:    exporter,
		store:       store,
		queue:       queue,
		audit:       audit,
		concurrency: concurrency,
	}
}

// Queue records a new export job and hands it to the worker pool
func (s *ExportJobService) Queue(ctx context.Context, format string, requestedBy uint) (*models.ExportJob, error) {
	if !isExportFormat(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	job := &models.ExportJob{
		ID:          uuid.NewString(),
		Format:      format,
		Status:      models.ExportStatusQueued,
		RequestedBy: requestedBy,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create export job: %w", err)
	}
	s.audit.Record(ctx, requestedBy, models.AuditActionQueueExport, "ExportJob", job.ID, "format="+format)

	if err := s.enqueue(ctx, job); err != nil {
		return job, err
	}
	logger.Info("[ExportJobService] Export queued", "job_id", job.ID, "format", format)
	return job, nil
}

// Retry puts a failed job back on the queue
func (s *ExportJobService) Retry(ctx context.Context, id string) (*models.ExportJob, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	machine := statemachine.NewExportJobFSM(job)
	if err := machine.Retry(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update export job: %w", err)
	}
	if err := s.enqueue(ctx, job); err != nil {
		return job, err
	}
	logger.Info("[ExportJobService] Export requeued", "job_id", job.ID, "attempts", job.Attempts)
	return job, nil
}

func (s *ExportJobService) Get(ctx context.Context, id string) (*models.ExportJob, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load export job: %w", err)
	}
	return job, nil
}

func (s *ExportJobService) List(ctx context.Context, query *repository.ListQuery) ([]models.ExportJob, int64, error) {
	return s.jobs.List(ctx, query)
}

// File returns the on-disk path and download name of a completed export
func (s *ExportJobService) File(ctx context.Context, id string) (string, string, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	if job.Status != models.ExportStatusCompleted || job.FilePath == nil {
		return "", "", fmt.Errorf("%w: export is %s", ErrInvalidState, job.Status)
	}
	if !s.store.Exists(*job.FilePath) {
		return "", "", ErrNotFound
	}
	full, err := s.store.GetFullPath(*job.FilePath)
	if err != nil {
		return "", "", err
	}
	name := fmt.Sprintf("farm_analytics_summary_%s.%s", job.ID[:8], job.Format)
	if job.CompletedAt != nil {
		name = fmt.Sprintf("farm_analytics_summary_%s.%s", job.CompletedAt.Format("2006-01-02"), job.Format)
	}
	return full, name, nil
}

// Run executes a queued job. Failures are recorded on the job; the returned
// error only tells the worker the run did not succeed.
func (s *ExportJobService) Run(ctx context.Context, id string) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	machine := statemachine.NewExportJobFSM(job)
	if err := machine.Start(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return fmt.Errorf("failed to mark export running: %w", err)
	}

	rows, failed, err := s.collect(ctx)
	if err != nil {
		return s.fail(ctx, machine, job, fmt.Errorf("failed to read profiles: %w", err))
	}
	data, filename, err := s.exporter.ExportSummary(ctx, job.Format, rows)
	if err != nil {
		return s.fail(ctx, machine, job, fmt.Errorf("failed to render export: %w", err))
	}
	stored, err := s.store.UploadFromBytes(data, filename, exportSubDir)
	if err != nil {
		return s.fail(ctx, machine, job, fmt.Errorf("failed to store export: %w", err))
	}

	job.ProfileCount = len(rows)
	job.FailedCount = failed
	if err := machine.Complete(ctx, stored); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		// Nothing points at the file; a retry writes a new one.
		if derr := s.store.Delete(stored); derr != nil {
			logger.Warn("[ExportJobService] Failed to remove orphaned export", "path", stored, "error", derr)
		}
		return fmt.Errorf("failed to mark export completed: %w", err)
	}
	logger.Info("[ExportJobService] Export completed",
		"job_id", job.ID, "profiles", job.ProfileCount, "failed", job.FailedCount, "path", stored)
	return nil
}

// Recover settles jobs left behind by a previous process. Running jobs were
// interrupted and are marked failed so they can be retried; queued jobs are
// handed to the pool again.
func (s *ExportJobService) Recover(ctx context.Context) error {
	running, err := s.jobs.FindByStatus(ctx, models.ExportStatusRunning)
	if err != nil {
		return fmt.Errorf("failed to load running exports: %w", err)
	}
	for i := range running {
		job := &running[i]
		if err := statemachine.NewExportJobFSM(job).Fail(ctx, "interrupted by restart"); err != nil {
			continue
		}
		if err := s.jobs.Update(ctx, job); err != nil {
			return fmt.Errorf("failed to mark export %s failed: %w", job.ID, err)
		}
	}

	queued, err := s.jobs.FindByStatus(ctx, models.ExportStatusQueued)
	if err != nil {
		return fmt.Errorf("failed to load queued exports: %w", err)
	}
	for i := range queued {
		if err := s.enqueue(ctx, &queued[i]); err != nil {
			return err
		}
	}
	if len(running)+len(queued) > 0 {
		logger.Info("[ExportJobService] Recovered exports", "interrupted", len(running), "requeued", len(queued))
	}
	return nil
}

// RunScheduled queues a summary export as the system user. Used by the
// periodic scheduler.
func (s *ExportJobService) RunScheduled(ctx context.Context, format string) error {
	_, err := s.Queue(ctx, format, 0)
	return err
}

func (s *ExportJobService) enqueue(ctx context.Context, job *models.ExportJob) error {
	id := job.ID
	err := s.queue.Enqueue("export:"+id, func(ctx context.Context) error {
		return s.Run(ctx, id)
	})
	if err == nil {
		return nil
	}
	logger.Error("[ExportJobService] Failed to enqueue export", "job_id", id, "error", err)
	machine := statemachine.NewExportJobFSM(job)
	if ferr := machine.Fail(ctx, "enqueue: "+err.Error()); ferr == nil {
		if uerr := s.jobs.Update(ctx, job); uerr != nil {
			logger.Error("[ExportJobService] Failed to record enqueue failure", "job_id", id, "error", uerr)
		}
	}
	return fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
}

func (s *ExportJobService) fail(ctx context.Context, machine *statemachine.ExportJobFSM, job *models.ExportJob, cause error) error {
	logger.Error("[ExportJobService] Export failed", "job_id", job.ID, "error", cause)
	if err := machine.Fail(ctx, cause.Error()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	// The job row must reflect the failure even when the run was cancelled.
	if err := s.jobs.Update(context.WithoutCancel(ctx), job); err != nil {
		logger.Error("[ExportJobService] Failed to record export failure", "job_id", job.ID, "error", err)
	}
	return cause
}

// collect computes every stored profile with the local engine, at most
// s.concurrency at a time. Profiles that fail to decode become error rows
// and are counted in failed.
func (s *ExportJobService) collect(ctx context.Context) ([]SummaryRow, int, error) {
	var (
		mu     sync.Mutex
		rows   []SummaryRow
		failed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	eachErr := s.profiles.Each(ctx, exportBatchSize, func(batch []models.FarmerProfile) error {
		for _, p := range batch {
			if err := gctx.Err(); err != nil {
				return err
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				row := s.summarize(p)
				mu.Lock()
				rows = append(rows, row)
				if row.Err != "" {
					failed++
				}
				mu.Unlock()
				return nil
			})
		}
		return nil
	})
	waitErr := g.Wait()
	if eachErr != nil {
		return nil, 0, eachErr
	}
	if waitErr != nil {
		return nil, 0, waitErr
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].FarmerID < rows[j].FarmerID })
	return rows, failed, nil
}

func (s *ExportJobService) summarize(p models.FarmerProfile) SummaryRow {
	profile, err := p.Decode()
	if err != nil {
		return SummaryRow{FarmerID: p.FarmerID, Err: "invalid profile document: " + err.Error()}
	}
	report := s.analytics.ComputeLocal(profile, p.CompletionPercentage)
	return SummaryRow{FarmerID: p.FarmerID, Source: report.Source, Analytics: report.Analytics}
}
