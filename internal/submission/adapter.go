// Package submission shapes completed wizard drafts into service payloads
// and turns submission failures into messages fit for display.
package submission

import (
	"context"

	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/wizard"
)

const (
	CreateJobFallback   = "Failed to create job. Please try again."
	UpdateJobFallback   = "Failed to update job. Please try again."
	ApplicationFallback = "Failed to submit application. Please try again."
)

// Adapter is a wizard.Submitter that shapes the draft into P and hands it to
// Send. Errors come back as *wizard.SubmissionError.
type Adapter[P any] struct {
	Name     string
	Shape    func(wizard.Draft) (P, error)
	Send     func(ctx context.Context, payload P) (wizard.Completion, error)
	Fallback string
	Logger   *zap.Logger
}

func (a *Adapter[P]) Submit(ctx context.Context, d wizard.Draft) (wizard.Completion, error) {
	payload, err := a.Shape(d)
	if err != nil {
		return wizard.Completion{}, a.fail(err)
	}
	done, err := a.Send(ctx, payload)
	if err != nil {
		return wizard.Completion{}, a.fail(err)
	}
	a.logger().Info("Wizard submitted", zap.String("wizard", a.Name), zap.String("resource_id", done.ResourceID))
	return done, nil
}

func (a *Adapter[P]) fail(err error) *wizard.SubmissionError {
	msg := DisplayMessage(err, a.Fallback)
	a.logger().Warn("Wizard submission failed",
		zap.String("wizard", a.Name),
		zap.String("display_message", msg),
		zap.Error(err))
	return &wizard.SubmissionError{Message: msg, Err: err}
}

func (a *Adapter[P]) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// DisplayMessage returns the message the backend attached to err, or fallback.
func DisplayMessage(err error, fallback string) string {
	if msg, ok := apperr.MessageOf(err); ok {
		return msg
	}
	return fallback
}
