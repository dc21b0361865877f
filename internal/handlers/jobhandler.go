package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/services"
)

// JobHandler serves read and close operations on postings. Jobs are created
// and edited through the wizard endpoints.
type JobHandler struct {
	jobs   *services.JobService
	apps   *services.ApplicationService
	logger *zap.Logger
}

func NewJobHandler(jobs *services.JobService, apps *services.ApplicationService, logger *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, apps: apps, logger: logger}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.GET("/:id", h.Get)
		jobs.POST("/:id/close", h.Close)
		jobs.GET("/:id/applications", h.Applications)
	}
}

// List is GET /jobs?status=OPEN|CLOSED.
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context(), tenantFrom(c), c.Query("status"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	job, err := h.jobs.GetJob(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Close(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	job, err := h.jobs.CloseJob(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Applications(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	apps, err := h.apps.List(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}
