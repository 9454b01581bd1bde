package services

import (
	"github.com/kisanmitra/farm-analytics-api/internal/analytics"
	"github.com/kisanmitra/farm-analytics-api/internal/config"
	"github.com/kisanmitra/farm-analytics-api/internal/jobs"
	"github.com/kisanmitra/farm-analytics-api/internal/remote"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
	"github.com/kisanmitra/farm-analytics-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Analytics *AnalyticsService
	Export    *ExportService
	ExportJob *ExportJobService
	Audit     *AuditService
	Job       *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, storage *storage.LocalStorage, remoteClient remote.Client, engine *analytics.Engine, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit)
	analyticsSvc := NewAnalyticsService(repos.Profile, remoteClient, engine)
	exportSvc := NewExportService(analyticsSvc)

	return &Services{
		Analytics: analyticsSvc,
		Export:    exportSvc,
		ExportJob: NewExportJobService(repos.ExportJob, repos.Profile, analyticsSvc, exportSvc, storage, worker, auditSvc, cfg.ExportConcurrency),
		Audit:     auditSvc,
		Job:       NewJobService(worker, repos.ExportJob),
	}
}
