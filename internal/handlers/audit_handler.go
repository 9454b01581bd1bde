package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisanmitra/farm-analytics-api/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get the audit trail of one entity, newest first
// @Tags Audit
// @Produce json
// @Param entity query string true "Entity (FarmerProfile, ExportJob)"
// @Param entity_id query string true "Entity ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	entity := c.Query("entity")
	entityID := c.Query("entity_id")
	if entity == "" || entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity and entity_id are required"})
		return
	}

	logs, err := h.auditService.ListByEntity(c.Request.Context(), entity, entityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audits": logs})
}
