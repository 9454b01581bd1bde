package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kisanmitra/farm-analytics-api/internal/middleware"
	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
	"github.com/kisanmitra/farm-analytics-api/internal/services"
	"github.com/kisanmitra/farm-analytics-api/internal/storage"
)

type AnalyticsHandler struct {
	analyticsSvc *services.AnalyticsService
	exportSvc    *services.ExportService
	auditSvc     *services.AuditService
}

func NewAnalyticsHandler(analyticsSvc *services.AnalyticsService, exportSvc *services.ExportService, auditSvc *services.AuditService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
		exportSvc:    exportSvc,
		auditSvc:     auditSvc,
	}
}

// completionBody picks completionPercentage out of a compute or profile body
type completionBody struct {
	CompletionPercentage *float64 `json:"completionPercentage"`
}

// @Summary Get Farmer Analytics
// @Description Returns the farmer's analytics from the remote provider when configured, otherwise computed from the stored profile
// @Tags Analytics
// @Produce json
// @Param farmer_id path int true "Farmer ID"
// @Success 200 {object} services.AnalyticsReport
// @Security BearerAuth
// @Router /farmers/{farmer_id}/analytics [get]
func (h *AnalyticsHandler) Show(c *gin.Context) {
	farmerID, ok := farmerIDParam(c)
	if !ok {
		return
	}
	ctx := requestContext(c)

	report, err := h.analyticsSvc.GetFarmerAnalytics(ctx, farmerID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.auditSvc.Record(ctx, middleware.GetUserID(c), models.AuditActionViewAnalytics,
		"FarmerProfile", strconv.FormatUint(uint64(farmerID), 10), "source="+report.Source)

	c.JSON(http.StatusOK, report)
}

// @Summary Compute Analytics
// @Description Computes analytics for a profile document without storing it. The document may be sent flat or under "profile"; missing fields never cause an error.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param body body models.FarmProfile true "Farm profile document"
// @Success 200 {object} services.AnalyticsReport
// @Security BearerAuth
// @Router /analytics/compute [post]
func (h *AnalyticsHandler) Compute(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	profile := &models.FarmProfile{}
	var completion completionBody
	switch err := BindNestedOrFlat(c, "profile", profile); {
	case errors.Is(err, ErrEmptyBody):
		profile = nil
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile document: " + err.Error()})
		return
	default:
		_ = json.Unmarshal(body, &completion)
	}

	pct := 0.0
	if completion.CompletionPercentage != nil {
		pct = *completion.CompletionPercentage
	}
	c.JSON(http.StatusOK, h.analyticsSvc.ComputeLocal(profile, pct))
}

// @Summary Get Farmer Profile
// @Description Returns the stored profile document
// @Tags Profiles
// @Produce json
// @Param farmer_id path int true "Farmer ID"
// @Success 200 {object} models.FarmerProfile
// @Security BearerAuth
// @Router /farmers/{farmer_id}/profile [get]
func (h *AnalyticsHandler) ShowProfile(c *gin.Context) {
	farmerID, ok := farmerIDParam(c)
	if !ok {
		return
	}
	row, err := h.analyticsSvc.GetProfile(c.Request.Context(), farmerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": row})
}

// @Summary Save Farmer Profile
// @Description Stores the farmer's profile document, flat or nested under "profile", with an optional completionPercentage
// @Tags Profiles
// @Accept json
// @Produce json
// @Param farmer_id path int true "Farmer ID"
// @Param body body models.FarmProfile true "Farm profile document"
// @Success 200 {object} models.FarmerProfile
// @Security BearerAuth
// @Router /farmers/{farmer_id}/profile [put]
func (h *AnalyticsHandler) SaveProfile(c *gin.Context) {
	farmerID, ok := farmerIDParam(c)
	if !ok {
		return
	}
	body, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var document json.RawMessage
	if err := BindNestedOrFlat(c, "profile", &document); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile document: " + err.Error()})
		return
	}
	var completion completionBody
	_ = json.Unmarshal(body, &completion)
	pct := 0.0
	if completion.CompletionPercentage != nil {
		pct = *completion.CompletionPercentage
	}

	row, err := h.analyticsSvc.SaveProfile(c.Request.Context(), farmerID, document, pct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": row})
}

// @Summary Export Farmer Analytics
// @Description Generates and downloads the farmer's analytics report
// @Tags Analytics
// @Produce application/octet-stream
// @Param farmer_id path int true "Farmer ID"
// @Param format query string true "Report format (csv, xlsx, pdf)"
// @Security BearerAuth
// @Router /farmers/{farmer_id}/analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	farmerID, ok := farmerIDParam(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", models.ExportFormatCSV)
	ctx := requestContext(c)

	data, filename, err := h.exportSvc.ExportFarmer(ctx, farmerID, format)
	if err != nil {
		respondError(c, err)
		return
	}
	h.auditSvc.Record(ctx, middleware.GetUserID(c), models.AuditActionExport,
		"FarmerProfile", strconv.FormatUint(uint64(farmerID), 10), "format="+format)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, storage.ContentType(filename), data)
}

// readBody reads the request body and puts it back for later binding
func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// @Summary List Farmer Profiles
// @Description Stored profile documents with their completion percentage
// @Tags Profiles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param sort_by query string false "farmer_id, completion_percentage, updated_at or created_at"
// @Param sort_dir query string false "asc or desc"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /profiles [get]
func (h *AnalyticsHandler) ListProfiles(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if query.PerPage < 1 {
		query.PerPage = 20
	}
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")

	profiles, total, err := h.analyticsSvc.ListProfiles(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}
