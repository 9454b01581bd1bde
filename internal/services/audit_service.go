package services

import (
	"context"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
	"github.com/kisanmitra/farm-analytics-api/pkg/logger"
)

type requestMetaKey struct{}

// RequestMeta is the caller information attached to audit entries
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// WithRequestMeta attaches caller information for audit entries written
// further down the call chain
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

type AuditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, actorID uint, action, entity, entityID, details string) error {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	entry := &models.AuditLog{
		ActorID:   actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	return s.repo.Create(ctx, entry)
}

// Record is Log for callers that must not fail because auditing did. A nil
// service records nothing.
func (s *AuditService) Record(ctx context.Context, actorID uint, action, entity, entityID, details string) {
	if s == nil {
		return
	}
	if err := s.Log(ctx, actorID, action, entity, entityID, details); err != nil {
		logger.Warn("[AuditService] Failed to write audit entry", "action", action, "entity", entity, "error", err)
	}
}

// ListByEntity returns the audit trail of one entity, newest first
func (s *AuditService) ListByEntity(ctx context.Context, entity, entityID string) ([]models.AuditLog, error) {
	return s.repo.ListByEntity(ctx, entity, entityID)
}
