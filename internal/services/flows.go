package services

import (
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/validation"
	"github.com/justsurfingit/job-board/internal/wizard"
)

func jobSteps() []wizard.Step {
	return []wizard.Step{
		{
			Label:       "Job details",
			Description: "Title, description, location and compensation",
			Validate:    validation.JobDetails,
		},
		{
			Label:       "Screening questions",
			Description: "Questions candidates answer when they apply",
			Validate:    validation.Screening,
			Commit:      validation.CommitScreening,
		},
		{
			Label:       "Hiring workflow",
			Description: "Pipeline stages and hiring team",
			Validate:    validation.Workflow,
		},
	}
}

var (
	JobCreateModel = wizard.MustModel(string(wizard.KindJobCreate), jobSteps())
	JobEditModel   = wizard.MustModel(string(wizard.KindJobEdit), jobSteps(), wizard.WithEarlySave())
)

// ApplicationModel builds the application wizard for a job; the screening
// step checks answers against that job's questions.
func ApplicationModel(kind wizard.Kind, questions []models.ScreeningQuestion) *wizard.Model {
	contact := validation.GuestContact
	if kind == wizard.KindApplicationMember {
		contact = validation.MemberContact
	}
	return wizard.MustModel(string(kind), []wizard.Step{
		{
			Label:       "Your details",
			Description: "How we can reach you",
			Validate:    contact,
		},
		{
			Label:       "Resume",
			Description: "PDF, Word or plain text",
			Validate:    validation.Resume,
		},
		{
			Label:       "Screening questions",
			Description: "A few questions from the hiring team",
			Validate:    validation.ScreeningAnswers(questions),
		},
		{
			Label:       "Review",
			Description: "Check your application and submit",
			Validate:    validation.Review,
		},
	})
}
