package repository

import (
	"context"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"gorm.io/gorm"
)

// AuditRepository stores the analytics access trail
type AuditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	ListByEntity(ctx context.Context, entity, entityID string) ([]models.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditRepository) ListByEntity(ctx context.Context, entity, entityID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	return logs, err
}
