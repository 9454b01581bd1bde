package models

import (
	"time"
)

// ExportJob tracks a batch summary export across all stored profiles
type ExportJob struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Format       string     `gorm:"size:10;not null" json:"format"`
	Status       string     `gorm:"size:20;default:queued;index" json:"status"`
	RequestedBy  uint       `gorm:"index" json:"requested_by"`
	FilePath     *string    `json:"file_path"`
	ProfileCount int        `gorm:"default:0" json:"profile_count"`
	FailedCount  int        `gorm:"default:0" json:"failed_count"`
	ErrorMessage *string    `gorm:"type:text" json:"error_message"`
	Attempts     int        `gorm:"default:0" json:"attempts"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for ExportJob
func (ExportJob) TableName() string {
	return "export_jobs"
}

// Export job status constants
const (
	ExportStatusQueued    = "queued"
	ExportStatusRunning   = "running"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// Export format constants
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

// MayStart returns true if the job can begin running
func (j *ExportJob) MayStart() bool {
	return j.Status == ExportStatusQueued
}

// MayComplete returns true if the job can be marked completed
func (j *ExportJob) MayComplete() bool {
	return j.Status == ExportStatusRunning
}

// MayFail returns true if the job can be marked failed
func (j *ExportJob) MayFail() bool {
	return j.Status == ExportStatusQueued || j.Status == ExportStatusRunning
}

// MayRetry returns true if a failed job can be queued again
func (j *ExportJob) MayRetry() bool {
	return j.Status == ExportStatusFailed
}
