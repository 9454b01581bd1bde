package handlers

import (
	"github.com/kisanmitra/farm-analytics-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Analytics *AnalyticsHandler
	ExportJob *ExportJobHandler
	Audit     *AuditHandler
	Job       *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Analytics: NewAnalyticsHandler(svcs.Analytics, svcs.Export, svcs.Audit),
		ExportJob: NewExportJobHandler(svcs.ExportJob),
		Audit:     NewAuditHandler(svcs.Audit),
		Job:       NewJobHandler(svcs.Job),
	}
}
