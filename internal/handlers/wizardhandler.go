package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/wizard"
)

// multipartOverhead is the slack allowed on top of the resume itself for
// the multipart framing.
const multipartOverhead = 1 << 20

type WizardHandler struct {
	wizards        *services.WizardService
	maxResumeBytes int64
	logger         *zap.Logger
}

func NewWizardHandler(wizards *services.WizardService, maxResumeBytes int64, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{wizards: wizards, maxResumeBytes: maxResumeBytes, logger: logger}
}

func (h *WizardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	w := rg.Group("/wizards")
	{
		w.POST("/jobs", h.StartJobCreate)
		w.POST("/jobs/import", h.StartJobImport)
		w.POST("/jobs/:jobId/edit", h.StartJobEdit)
		w.POST("/applications/:jobId", h.StartApplication)
		w.GET("/:id", h.Get)
		w.DELETE("/:id", h.Discard)
		w.POST("/:id/steps/:step", h.SubmitStep)
		w.POST("/:id/goto/:step", h.GoTo)
		w.POST("/:id/back", h.Back)
		w.POST("/:id/save", h.Save)
	}
}

// sessionView is the response body for every wizard endpoint.
type sessionView struct {
	ID    uuid.UUID   `json:"id"`
	Kind  wizard.Kind `json:"kind"`
	Moved *bool       `json:"moved,omitempty"`
	wizard.State
}

func viewOf(sess *wizard.Session, st wizard.State) sessionView {
	return sessionView{ID: sess.ID, Kind: sess.Kind, State: st}
}

func (h *WizardHandler) StartJobCreate(c *gin.Context) {
	sess, err := h.wizards.StartJobCreate(c.Request.Context(), tenantFrom(c), actorFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(sess, sess.Controller.State()))
}

// StartJobImport is the POST /wizards/jobs/import endpoint. The posting is
// read by the LLM and the new wizard starts pre-filled.
func (h *WizardHandler) StartJobImport(c *gin.Context) {
	var req dtos.JobImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	sess, err := h.wizards.StartJobImport(c.Request.Context(), tenantFrom(c), actorFrom(c), req.RawHTML)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(sess, sess.Controller.State()))
}

func (h *WizardHandler) StartJobEdit(c *gin.Context) {
	jobID, ok := idParam(c, "jobId")
	if !ok {
		return
	}
	sess, err := h.wizards.StartJobEdit(c.Request.Context(), tenantFrom(c), actorFrom(c), jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(sess, sess.Controller.State()))
}

// StartApplication opens the member flow when X-User-ID is present and the
// guest flow otherwise.
func (h *WizardHandler) StartApplication(c *gin.Context) {
	jobID, ok := idParam(c, "jobId")
	if !ok {
		return
	}
	userID, ok := memberFrom(c)
	if !ok {
		return
	}
	sess, err := h.wizards.StartApplication(c.Request.Context(), tenantFrom(c), jobID, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(sess, sess.Controller.State()))
}

func (h *WizardHandler) Get(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewOf(sess, sess.Controller.State()))
}

func (h *WizardHandler) Discard(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.wizards.Discard(tenantFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitStep is POST /wizards/:id/steps/:step. The body is the step's JSON,
// except for the application resume step which takes a multipart upload.
func (h *WizardHandler) SubmitStep(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step"})
		return
	}
	partial, ok := h.partial(c, sess.Kind, step)
	if !ok {
		return
	}
	st, err := h.wizards.SubmitStep(c.Request.Context(), sess.TenantID, sess.ID, step, partial)
	if err != nil {
		respondWizardError(c, h.logger, viewOf(sess, st), err)
		return
	}
	c.JSON(http.StatusOK, viewOf(sess, st))
}

// Save is POST /wizards/:id/save[?step=n]. It commits the body on the
// current step, or on step n when given, and submits the whole draft.
func (h *WizardHandler) Save(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	step := sess.Controller.State().CurrentStep
	if raw := c.Query("step"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step"})
			return
		}
		step = n
	}
	partial, ok := h.partial(c, sess.Kind, step)
	if !ok {
		return
	}
	st, err := h.wizards.Save(c.Request.Context(), sess.TenantID, sess.ID, step, partial)
	if err != nil {
		respondWizardError(c, h.logger, viewOf(sess, st), err)
		return
	}
	c.JSON(http.StatusOK, viewOf(sess, st))
}

func (h *WizardHandler) GoTo(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step"})
		return
	}
	st, moved, err := h.wizards.GoTo(sess.TenantID, sess.ID, step)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	view := viewOf(sess, st)
	view.Moved = &moved
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) Back(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	st, moved, err := h.wizards.Back(sess.TenantID, sess.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	view := viewOf(sess, st)
	view.Moved = &moved
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) session(c *gin.Context) (*wizard.Session, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}
	sess, err := h.wizards.Get(tenantFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return sess, true
}

// partial decodes the request body for step of a kind wizard. A step number
// the wizard does not have yields an empty partial; the controller then
// reports it as stale.
func (h *WizardHandler) partial(c *gin.Context, kind wizard.Kind, step int) (wizard.Draft, bool) {
	if isApplication(kind) && step == dtos.ResumeStep {
		return h.resume(c)
	}
	body, ok := dtos.StepBody(kind, step)
	if !ok {
		return wizard.Draft{}, true
	}
	if err := c.ShouldBindJSON(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return nil, false
	}
	return body.ToDraft(), true
}

// resume reads the "resume" form file. A missing file is left for the step
// validator to report.
func (h *WizardHandler) resume(c *gin.Context) (wizard.Draft, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxResumeBytes+multipartOverhead)
	header, err := c.FormFile("resume")
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		h.resumeTooLarge(c)
		return nil, false
	case errors.Is(err, http.ErrMissingFile):
		return wizard.Draft{}, true
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume upload must be multipart/form-data"})
		return nil, false
	}
	if header.Size > h.maxResumeBytes {
		h.resumeTooLarge(c)
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxResumeBytes+1))
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	if int64(len(data)) > h.maxResumeBytes {
		h.resumeTooLarge(c)
		return nil, false
	}
	return dtos.ResumeDraft(models.ResumeFile{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}), true
}

func (h *WizardHandler) resumeTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": fmt.Sprintf("Resume must be at most %d MB", h.maxResumeBytes>>20),
	})
}

func isApplication(kind wizard.Kind) bool {
	return kind == wizard.KindApplicationGuest || kind == wizard.KindApplicationMember
}
