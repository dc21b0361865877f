package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/wizard"
)

const jobExtractionPrompt = `You extract job postings into JSON for a job board.

Analyze the raw HTML or text of the posting below. Ignore navigation menus,
footers, "similar jobs" lists and advertisements.

Return valid JSON only, without markdown fences, using this schema:
{
  "title": "Job title, e.g. Senior Backend Engineer",
  "department": "Team or department, e.g. Engineering",
  "description": "The full job description as plain text or simple HTML. Keep responsibilities and requirements.",
  "employmentType": "One of Full-time, Part-time, Contract, Internship",
  "experienceLevel": "One of Entry, Mid, Senior, Lead",
  "experienceRequiredYears": 0,
  "workplaceTypes": ["Any of On-site, Hybrid, Remote"],
  "location": {"city": "City", "country": "Country"},
  "salaryRange": {"min": 0, "max": 0, "currency": "USD", "period": "year"},
  "skills": ["Skills mentioned"],
  "toolsTechnologies": ["Tools and technologies, e.g. Go, React, AWS"],
  "educationCertifications": ["Degrees or certifications"]
}

If a piece of information is missing, use null. Do not guess.

RAW CONTENT:
%s
`

type extractedJob struct {
	Title                   string          `json:"title"`
	Department              string          `json:"department"`
	Description             string          `json:"description"`
	EmploymentType          string          `json:"employmentType"`
	ExperienceLevel         string          `json:"experienceLevel"`
	ExperienceRequiredYears *int            `json:"experienceRequiredYears"`
	WorkplaceTypes          []string        `json:"workplaceTypes"`
	Location                *models.Place   `json:"location"`
	SalaryRange             *extractedRange `json:"salaryRange"`
	Skills                  []string        `json:"skills"`
	ToolsTechnologies       []string        `json:"toolsTechnologies"`
	EducationCertifications []string        `json:"educationCertifications"`
}

type extractedRange struct {
	Min      *int   `json:"min"`
	Max      *int   `json:"max"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

// ImportService pre-fills job wizards from existing postings.
type ImportService struct {
	llm    Completer
	logger *zap.Logger
}

// NewImportService accepts a nil llm; extraction then reports Unavailable.
func NewImportService(llm Completer, logger *zap.Logger) *ImportService {
	return &ImportService{llm: llm, logger: logger}
}

// ExtractJobDraft returns the job-details keys the model recognised in rawHTML.
// Keys it could not fill are left out so the form shows them empty.
func (s *ImportService) ExtractJobDraft(ctx context.Context, rawHTML string) (wizard.Draft, error) {
	if s.llm == nil {
		return nil, apperr.Unavailable("Posting import is not configured")
	}
	if strings.TrimSpace(rawHTML) == "" {
		return nil, apperr.Invalid("Posting content is empty")
	}

	resp, err := s.llm.Complete(ctx, fmt.Sprintf(jobExtractionPrompt, truncate(rawHTML, maxPromptInput)))
	if err != nil {
		return nil, apperr.Internal("Failed to read the posting. Please try again.", err)
	}
	var job extractedJob
	if err := json.Unmarshal([]byte(stripFences(resp)), &job); err != nil {
		s.logger.Warn("Unparseable extraction", zap.Error(err), zap.String("raw", truncate(resp, 500)))
		return nil, apperr.Internal("Failed to read the posting. Please try again.", err)
	}
	d := job.draft()
	s.logger.Info("Posting imported", zap.Int("fields", len(d)), zap.String("title", job.Title))
	return d, nil
}

func (e extractedJob) draft() wizard.Draft {
	d := wizard.Draft{}
	setString := func(key, v string) {
		if v = strings.TrimSpace(v); v != "" {
			d[key] = v
		}
	}
	setList := func(key string, v []string) {
		var out []string
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			d[key] = out
		}
	}

	setString(drafts.Title, e.Title)
	setString(drafts.Department, e.Department)
	setString(drafts.Description, e.Description)
	setString(drafts.EmploymentType, e.EmploymentType)
	setString(drafts.ExperienceLevel, e.ExperienceLevel)
	if e.ExperienceRequiredYears != nil && *e.ExperienceRequiredYears >= 0 {
		d[drafts.ExperienceRequiredYears] = *e.ExperienceRequiredYears
	}

	var types []models.WorkplaceType
	for _, t := range e.WorkplaceTypes {
		if wt := models.WorkplaceType(strings.TrimSpace(t)); wt.Valid() {
			types = append(types, wt)
		}
	}
	if len(types) > 0 {
		d[drafts.WorkplaceTypes] = types
	}
	if e.Location != nil && (e.Location.City != "" || e.Location.Country != "") {
		d[drafts.Location] = models.Location{City: e.Location.City, Country: e.Location.Country}
	}
	if r := e.SalaryRange; r != nil && r.Min != nil && r.Max != nil {
		d[drafts.SalaryRange] = &models.SalaryRange{
			Min:      *r.Min,
			Max:      *r.Max,
			Currency: r.Currency,
			Period:   r.Period,
		}
	}

	setList(drafts.Skills, e.Skills)
	setList(drafts.ToolsTechnologies, e.ToolsTechnologies)
	setList(drafts.EducationCertifications, e.EducationCertifications)
	return d
}
