package dtos

import (
	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/wizard"
)

// StepRequest is the JSON body of one wizard step.
type StepRequest interface {
	ToDraft() wizard.Draft
}

// StepBody returns an empty body for step of a wizard of the given kind.
// The resume step has no JSON body and reports false.
func StepBody(kind wizard.Kind, step int) (StepRequest, bool) {
	switch kind {
	case wizard.KindJobCreate, wizard.KindJobEdit:
		switch step {
		case 1:
			return &JobDetailsStep{}, true
		case 2:
			return &ScreeningStep{}, true
		case 3:
			return &WorkflowStep{}, true
		}
	case wizard.KindApplicationGuest, wizard.KindApplicationMember:
		switch step {
		case 1:
			return &ContactStep{}, true
		case 3:
			return &ScreeningAnswersStep{}, true
		case 4:
			return &ReviewStep{}, true
		}
	}
	return nil, false
}

// ResumeStep is the application step that takes a multipart upload.
const ResumeStep = 2

// JobDetailsStep carries the first job wizard step. The list fields accept
// either a JSON array or comma-separated text.
type JobDetailsStep struct {
	Title                   string                    `json:"title"`
	Department              string                    `json:"department"`
	Description             string                    `json:"description"`
	EmploymentType          string                    `json:"employmentType"`
	JobType                 string                    `json:"jobType"`
	ExperienceLevel         string                    `json:"experienceLevel"`
	ExperienceRequiredYears int                       `json:"experienceRequiredYears"`
	WorkplaceTypes          []models.WorkplaceType    `json:"workplaceTypes"`
	Location                models.Location           `json:"location"`
	WorkplaceLocations      models.WorkplaceLocations `json:"workplaceLocations"`
	SalaryRange             *models.SalaryRange       `json:"salaryRange"`
	SalaryBudget            *models.SalaryBudget      `json:"salaryBudget"`
	ExpiryDate              string                    `json:"expiryDate"`
	ApplicationDeadline     string                    `json:"applicationDeadline"`
	Positions               int                       `json:"positions"`
	Skills                  any                       `json:"skills"`
	ToolsTechnologies       any                       `json:"toolsTechnologies"`
	EducationCertifications any                       `json:"educationCertifications"`
	JobFunctions            []string                  `json:"jobFunctions"`
}

func (r *JobDetailsStep) ToDraft() wizard.Draft {
	d := wizard.Draft{
		drafts.Title:                   r.Title,
		drafts.Department:              r.Department,
		drafts.Description:             r.Description,
		drafts.EmploymentType:          r.EmploymentType,
		drafts.JobType:                 r.JobType,
		drafts.ExperienceLevel:         r.ExperienceLevel,
		drafts.ExperienceRequiredYears: r.ExperienceRequiredYears,
		drafts.WorkplaceTypes:          r.WorkplaceTypes,
		drafts.Location:                r.Location,
		drafts.WorkplaceLocations:      r.WorkplaceLocations,
		drafts.SalaryRange:             r.SalaryRange,
		drafts.SalaryBudget:            r.SalaryBudget,
		drafts.ExpiryDate:              r.ExpiryDate,
		drafts.ApplicationDeadline:     r.ApplicationDeadline,
		drafts.Positions:               r.Positions,
		drafts.JobFunctions:            r.JobFunctions,
	}
	for key, v := range map[string]any{
		drafts.Skills:                  r.Skills,
		drafts.ToolsTechnologies:       r.ToolsTechnologies,
		drafts.EducationCertifications: r.EducationCertifications,
	} {
		if v != nil {
			d[key] = v
		}
	}
	return d
}

type ScreeningStep struct {
	Questions []models.ScreeningQuestion `json:"questions"`
}

func (r *ScreeningStep) ToDraft() wizard.Draft {
	q := r.Questions
	if q == nil {
		q = []models.ScreeningQuestion{}
	}
	return wizard.Draft{drafts.Questions: q}
}

type WorkflowStep struct {
	Workflow             []string                  `json:"workflow"`
	HiringTeam           []models.HiringTeamMember `json:"hiringTeam"`
	EvaluationTemplateID string                    `json:"evaluationTemplateId"`
}

func (r *WorkflowStep) ToDraft() wizard.Draft {
	team := r.HiringTeam
	if team == nil {
		team = []models.HiringTeamMember{}
	}
	return wizard.Draft{
		drafts.Workflow:             r.Workflow,
		drafts.HiringTeam:           team,
		drafts.EvaluationTemplateID: r.EvaluationTemplateID,
	}
}

type ContactStep struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LinkedInURL string `json:"linkedinUrl"`
}

func (r *ContactStep) ToDraft() wizard.Draft {
	return wizard.Draft{
		drafts.FirstName:   r.FirstName,
		drafts.LastName:    r.LastName,
		drafts.Email:       r.Email,
		drafts.Phone:       r.Phone,
		drafts.LinkedInURL: r.LinkedInURL,
	}
}

type ScreeningAnswersStep struct {
	Answers []models.ScreeningAnswer `json:"screeningAnswers"`
}

func (r *ScreeningAnswersStep) ToDraft() wizard.Draft {
	a := r.Answers
	if a == nil {
		a = []models.ScreeningAnswer{}
	}
	return wizard.Draft{drafts.ScreeningAnswers: a}
}

type ReviewStep struct {
	Source      string `json:"source"`
	CoverLetter string `json:"coverLetter"`
	Consent     bool   `json:"consent"`
}

func (r *ReviewStep) ToDraft() wizard.Draft {
	return wizard.Draft{
		drafts.Source:      r.Source,
		drafts.CoverLetter: r.CoverLetter,
		drafts.Consent:     r.Consent,
	}
}

// ResumeDraft wraps an uploaded file as the resume step's partial.
func ResumeDraft(f models.ResumeFile) wizard.Draft {
	return wizard.Draft{drafts.Resume: f}
}

type JobImportRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}
