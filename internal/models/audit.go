package models

import (
	"time"
)

// AuditLog records who triggered an analytics read or export
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"`
	Action    string    `gorm:"size:50;not null" json:"action"` // VIEW_ANALYTICS, EXPORT, QUEUE_EXPORT
	Entity    string    `gorm:"size:50;not null" json:"entity"` // FarmerProfile, ExportJob
	EntityID  string    `gorm:"size:64" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionViewAnalytics = "VIEW_ANALYTICS"
	AuditActionExport        = "EXPORT"
	AuditActionQueueExport   = "QUEUE_EXPORT"
)
