package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisanmitra/farm-analytics-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// @Summary Export Worker Status
// @Description Worker pool load and export job counts per status (queued, running, completed, failed)
// @Tags Jobs
// @Produce json
// @Success 200 {object} services.JobStatus
// @Security BearerAuth
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	status, err := h.jobService.GetStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
