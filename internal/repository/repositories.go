package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Profile   ProfileRepository
	ExportJob ExportJobRepository
	Audit     AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Profile:   NewProfileRepository(db),
		ExportJob: NewExportJobRepository(db),
		Audit:     NewAuditRepository(db),
	}
}
