package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/wizard"
)

const internalMessage = "Something went wrong. Please try again."

// respondError writes err as {"error": message}. Application errors carry
// their own status and message; anything else is logged and reported as 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.StatusOf(err)
	msg, ok := apperr.MessageOf(err)
	if !ok {
		msg = internalMessage
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}

// respondWizardError reports a rejected wizard operation together with the
// wizard's state after it.
func respondWizardError(c *gin.Context, logger *zap.Logger, view sessionView, err error) {
	var (
		verr  *wizard.ValidationError
		stale *wizard.StaleStepError
		serr  *wizard.SubmissionError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "Please fix the highlighted fields",
			"step":        verr.Step,
			"fieldErrors": verr.Result.FieldErrors,
			"wizard":      view,
		})
	case errors.As(err, &stale):
		c.JSON(http.StatusConflict, gin.H{"error": "This step is out of date. Please reload the form.", "wizard": view})
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Submission already in progress", "wizard": view})
	case errors.Is(err, wizard.ErrCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "This form has already been submitted", "wizard": view})
	case errors.Is(err, wizard.ErrEarlySaveDisabled):
		c.JSON(http.StatusConflict, gin.H{"error": "This form must be completed step by step", "wizard": view})
	case errors.As(err, &serr):
		if serr.Err != nil && apperr.StatusOf(serr.Err) >= http.StatusInternalServerError {
			logger.Error("Wizard submission failed", zap.String("session_id", view.ID.String()), zap.Error(err))
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": serr.Message, "wizard": view})
	default:
		respondError(c, logger, err)
	}
}
