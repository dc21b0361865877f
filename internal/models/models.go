package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tenant is an isolated company context. Every job, user and application
// row carries its TenantID.
type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	JobQuota int    `gorm:"not null;default:10" json:"job_quota"`
}

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenantID  uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      string    `gorm:"default:'candidate'" json:"role"`
}

const (
	JobStatusOpen   = "OPEN"
	JobStatusClosed = "CLOSED"
)

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	Status   string    `gorm:"default:'OPEN'" json:"status"`

	Title                   string `gorm:"not null" json:"title"`
	Department              string `json:"department"`
	Description             string `gorm:"type:text" json:"description"`
	EmploymentType          string `json:"employment_type"`
	JobType                 string `json:"job_type"`
	ExperienceLevel         string `json:"experience_level"`
	ExperienceRequiredYears int    `json:"experience_required_years"`
	Positions               int    `json:"positions"`
	ExpiryDate              string `json:"expiry_date,omitempty"`
	ApplicationDeadline     string `json:"application_deadline,omitempty"`
	EvaluationTemplateID    string `json:"evaluation_template_id,omitempty"`

	Location                datatypes.JSONType[Location]           `json:"location"`
	WorkplaceTypes          datatypes.JSONSlice[WorkplaceType]     `json:"workplace_types"`
	SalaryRange             datatypes.JSONType[*SalaryRange]       `json:"salary_range"`
	SalaryBudget            datatypes.JSONType[*SalaryBudget]      `json:"salary_budget"`
	Skills                  datatypes.JSONSlice[string]            `json:"skills"`
	ToolsTechnologies       datatypes.JSONSlice[string]            `json:"tools_technologies"`
	EducationCertifications datatypes.JSONSlice[string]            `json:"education_certifications"`
	JobFunctions            datatypes.JSONSlice[string]            `json:"job_functions"`
	ScreeningQuestions      datatypes.JSONSlice[ScreeningQuestion] `json:"screening_questions"`
	HiringTeam              datatypes.JSONSlice[HiringTeamMember]  `json:"hiring_team"`
	Workflow                datatypes.JSONSlice[string]            `json:"workflow"`
}

// Apply copies a wizard payload onto the job.
func (j *Job) Apply(in JobInput) {
	j.Title = in.Title
	j.Department = in.Department
	j.Description = in.Description
	j.EmploymentType = in.EmploymentType
	j.JobType = in.JobType
	j.ExperienceLevel = in.ExperienceLevel
	j.ExperienceRequiredYears = in.ExperienceRequiredYears
	j.Positions = in.Positions
	j.ExpiryDate = in.ExpiryDate
	j.ApplicationDeadline = in.ApplicationDeadline
	j.EvaluationTemplateID = in.EvaluationTemplateID
	j.Location = datatypes.NewJSONType(in.Location)
	j.WorkplaceTypes = in.WorkplaceTypes
	j.SalaryRange = datatypes.NewJSONType(in.SalaryRange)
	j.SalaryBudget = datatypes.NewJSONType(in.SalaryBudget)
	j.Skills = in.Skills
	j.ToolsTechnologies = in.ToolsTechnologies
	j.EducationCertifications = in.EducationCertifications
	j.JobFunctions = in.JobFunctions
	j.ScreeningQuestions = in.ScreeningQuestions
	j.HiringTeam = in.HiringTeam
	j.Workflow = in.Workflow
}

// Input is the inverse of Apply, used to seed an edit wizard.
func (j *Job) Input() JobInput {
	return JobInput{
		Title:                   j.Title,
		Department:              j.Department,
		Description:             j.Description,
		Location:                j.Location.Data(),
		EmploymentType:          j.EmploymentType,
		JobType:                 j.JobType,
		WorkplaceTypes:          j.WorkplaceTypes,
		ExperienceLevel:         j.ExperienceLevel,
		ExperienceRequiredYears: j.ExperienceRequiredYears,
		SalaryRange:             j.SalaryRange.Data(),
		SalaryBudget:            j.SalaryBudget.Data(),
		ExpiryDate:              j.ExpiryDate,
		ApplicationDeadline:     j.ApplicationDeadline,
		Positions:               j.Positions,
		Skills:                  j.Skills,
		ToolsTechnologies:       j.ToolsTechnologies,
		EducationCertifications: j.EducationCertifications,
		JobFunctions:            j.JobFunctions,
		ScreeningQuestions:      j.ScreeningQuestions,
		HiringTeam:              j.HiringTeam,
		Workflow:                j.Workflow,
		EvaluationTemplateID:    j.EvaluationTemplateID,
	}
}

type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	JobID    uint      `gorm:"index;not null" json:"job_id"`
	Job      Job       `json:"job,omitempty"`
	UserID   *uint     `json:"user_id,omitempty"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `gorm:"index;not null" json:"email"`
	Phone       string `json:"phone"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	CoverLetter string `gorm:"type:text" json:"cover_letter,omitempty"`
	Source      string `json:"source"`
	Stage       string `json:"stage"`

	ScreeningAnswers datatypes.JSONSlice[ScreeningAnswer] `json:"screening_answers"`

	ResumeKey         string `json:"-"`
	ResumeFileName    string `json:"resume_file_name"`
	ResumeContentType string `json:"resume_content_type"`
}

const (
	EventSubmitted     = "SUBMITTED"
	EventStageChanged  = "STAGE_CHANGED"
	EventNoteAdded     = "NOTE_ADDED"
	EventEvaluated     = "EVALUATED"
	EventEmailReceived = "EMAIL_RECEIVED"
)

type ApplicationEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID uint      `gorm:"index" json:"application_id"`
	EventType     string    `json:"event_type"`
	Actor         string    `json:"actor,omitempty"`
	Details       string    `gorm:"type:text" json:"details"`
}

type ApplicationNote struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID uint      `gorm:"index" json:"application_id"`
	Author        string    `json:"author"`
	Body          string    `gorm:"type:text" json:"body"`
}

type Evaluation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	ApplicationID  uint      `gorm:"index" json:"application_id"`
	Reviewer       string    `json:"reviewer"`
	Score          int       `json:"score"`
	Recommendation string    `json:"recommendation"`
	Comments       string    `gorm:"type:text" json:"comments"`
}

type ProcessedEmail struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
}

// MailboxCursor is the Gmail history bookmark for one mailbox.
type MailboxCursor struct {
	ID            uint   `gorm:"primaryKey"`
	Mailbox       string `gorm:"uniqueIndex;not null"`
	LastHistoryID uint64
	UpdatedAt     time.Time
}
