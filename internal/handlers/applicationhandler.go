package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

// ApplicationHandler serves the recruiter's review of received applications.
type ApplicationHandler struct {
	apps   *services.ApplicationService
	logger *zap.Logger
}

func NewApplicationHandler(apps *services.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, logger: logger}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	apps := rg.Group("/applications")
	{
		apps.GET("/:id", h.Get)
		apps.GET("/:id/events", h.Events)
		apps.GET("/:id/resume", h.Resume)
		apps.GET("/:id/notes", h.Notes)
		apps.POST("/:id/notes", h.AddNote)
		apps.POST("/:id/stage", h.MoveToStage)
		apps.GET("/:id/evaluations", h.Evaluations)
		apps.POST("/:id/evaluations", h.AddEvaluation)
	}
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	app, err := h.apps.Get(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Events(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	events, err := h.apps.Events(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Resume returns a short-lived download link for the uploaded resume.
func (h *ApplicationHandler) Resume(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	url, err := h.apps.ResumeURL(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *ApplicationHandler) Notes(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	notes, err := h.apps.Notes(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *ApplicationHandler) AddNote(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dtos.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	note, err := h.apps.AddNote(c.Request.Context(), tenantFrom(c), id, actorFrom(c), req.Body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *ApplicationHandler) MoveToStage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dtos.StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.apps.MoveToStage(c.Request.Context(), tenantFrom(c), id, actorFrom(c), req.Stage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Evaluations(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	evals, err := h.apps.Evaluations(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, evals)
}

func (h *ApplicationHandler) AddEvaluation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dtos.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	eval, err := h.apps.AddEvaluation(c.Request.Context(), tenantFrom(c), id, services.EvaluationInput{
		Reviewer:       actorFrom(c),
		Score:          req.Score,
		Recommendation: req.Recommendation,
		Comments:       req.Comments,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, eval)
}
