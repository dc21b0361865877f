package models

// WorkplaceType is one of the arrangements a job can be offered under.
type WorkplaceType string

const (
	WorkplaceOnSite WorkplaceType = "On-site"
	WorkplaceHybrid WorkplaceType = "Hybrid"
	WorkplaceRemote WorkplaceType = "Remote"
)

// Valid reports whether w is a known workplace type.
func (w WorkplaceType) Valid() bool {
	switch w {
	case WorkplaceOnSite, WorkplaceHybrid, WorkplaceRemote:
		return true
	}
	return false
}

type Place struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Location is the job's location as stored and served.
type Location struct {
	City               string  `json:"city"`
	Country            string  `json:"country"`
	Remote             bool    `json:"remote"`
	AlternateLocations []Place `json:"alternateLocations"`
}

// RemoteCity may leave Country empty to inherit the remote section's country.
type RemoteCity struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

type RemoteForm struct {
	Country string       `json:"country"`
	Cities  []RemoteCity `json:"cities"`
}

// WorkplaceLocations holds one location sub-form per selected workplace type.
type WorkplaceLocations struct {
	OnSite *Place      `json:"onSite,omitempty"`
	Hybrid *Place      `json:"hybrid,omitempty"`
	Remote *RemoteForm `json:"remote,omitempty"`
}

type SalaryRange struct {
	Min                int    `json:"min"`
	Max                int    `json:"max"`
	Currency           string `json:"currency"`
	Type               string `json:"type"`
	Period             string `json:"period"`
	HideFromCandidates bool   `json:"hideFromCandidates"`
}

type SalaryBudget struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

type HiringTeamMember struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// JobInput is the shape a completed job wizard hands to the job service.
type JobInput struct {
	Title                   string              `json:"title"`
	Department              string              `json:"department"`
	Description             string              `json:"description"`
	Location                Location            `json:"location"`
	EmploymentType          string              `json:"employmentType"`
	JobType                 string              `json:"jobType"`
	WorkplaceTypes          []WorkplaceType     `json:"workplaceTypes"`
	ExperienceLevel         string              `json:"experienceLevel"`
	ExperienceRequiredYears int                 `json:"experienceRequiredYears"`
	SalaryRange             *SalaryRange        `json:"salaryRange,omitempty"`
	SalaryBudget            *SalaryBudget       `json:"salaryBudget,omitempty"`
	ExpiryDate              string              `json:"expiryDate,omitempty"`
	ApplicationDeadline     string              `json:"applicationDeadline,omitempty"`
	Positions               int                 `json:"positions,omitempty"`
	Skills                  []string            `json:"skills"`
	ToolsTechnologies       []string            `json:"toolsTechnologies"`
	EducationCertifications []string            `json:"educationCertifications"`
	JobFunctions            []string            `json:"jobFunctions"`
	ScreeningQuestions      []ScreeningQuestion `json:"screeningQuestions"`
	HiringTeam              []HiringTeamMember  `json:"hiringTeam"`
	Workflow                []string            `json:"workflow"`
	EvaluationTemplateID    string              `json:"evaluationTemplateId,omitempty"`
}
