package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kisanmitra/farm-analytics-api/internal/middleware"
	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
	"github.com/kisanmitra/farm-analytics-api/internal/services"
)

type ExportJobHandler struct {
	exportJobSvc *services.ExportJobService
}

func NewExportJobHandler(exportJobSvc *services.ExportJobService) *ExportJobHandler {
	return &ExportJobHandler{exportJobSvc: exportJobSvc}
}

type CreateExportJobRequest struct {
	Format string `json:"format" example:"csv"`
}

// @Summary Queue Summary Export
// @Description Queues a batch export summarising every stored farmer profile
// @Tags Exports
// @Accept json
// @Produce json
// @Param body body CreateExportJobRequest true "Export format"
// @Success 202 {object} models.ExportJob
// @Security BearerAuth
// @Router /exports [post]
func (h *ExportJobHandler) Create(c *gin.Context) {
	var req CreateExportJobRequest
	if err := BindNestedOrFlat(c, "export", &req); err != nil && !errors.Is(err, ErrEmptyBody) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Format == "" {
		req.Format = models.ExportFormatCSV
	}

	job, err := h.exportJobSvc.Queue(requestContext(c), req.Format, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"export": job})
}

// @Summary List Export Jobs
// @Tags Exports
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param format query string false "Filter by format"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /exports [get]
func (h *ExportJobHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if query.PerPage < 1 {
		query.PerPage = 20
	}
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}
	if format := c.Query("format"); format != "" {
		query.Filters["format"] = format
	}

	exports, total, err := h.exportJobSvc.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exports": exports,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Export Job
// @Tags Exports
// @Produce json
// @Param job_id path string true "Export job ID"
// @Success 200 {object} models.ExportJob
// @Security BearerAuth
// @Router /exports/{job_id} [get]
func (h *ExportJobHandler) Show(c *gin.Context) {
	job, err := h.exportJobSvc.Get(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"export": job})
}

// @Summary Retry Export Job
// @Description Requeues a failed export
// @Tags Exports
// @Produce json
// @Param job_id path string true "Export job ID"
// @Success 202 {object} models.ExportJob
// @Security BearerAuth
// @Router /exports/{job_id}/retry [post]
func (h *ExportJobHandler) Retry(c *gin.Context) {
	job, err := h.exportJobSvc.Retry(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"export": job})
}

// @Summary Download Export
// @Description Downloads the file of a completed export
// @Tags Exports
// @Produce application/octet-stream
// @Param job_id path string true "Export job ID"
// @Security BearerAuth
// @Router /exports/{job_id}/download [get]
func (h *ExportJobHandler) Download(c *gin.Context) {
	fullPath, filename, err := h.exportJobSvc.File(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(fullPath, filename)
}
