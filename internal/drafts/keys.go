// Package drafts names the keys of the job and application wizard drafts and
// reads typed values back out of them.
package drafts

// Job wizard, step 1.
const (
	Title                   = "title"
	Department              = "department"
	Description             = "description"
	EmploymentType          = "employmentType"
	JobType                 = "jobType"
	ExperienceLevel         = "experienceLevel"
	ExperienceRequiredYears = "experienceRequiredYears"
	WorkplaceTypes          = "workplaceTypes"
	Location                = "location"
	WorkplaceLocations      = "workplaceLocations"
	SalaryRange             = "salaryRange"
	SalaryBudget            = "salaryBudget"
	ExpiryDate              = "expiryDate"
	ApplicationDeadline     = "applicationDeadline"
	Positions               = "positions"
	Skills                  = "skills"
	ToolsTechnologies       = "toolsTechnologies"
	EducationCertifications = "educationCertifications"
	JobFunctions            = "jobFunctions"
)

// Job wizard, steps 2 and 3. Questions is the screening step's local list;
// it is committed to the draft as ScreeningQuestions.
const (
	Questions            = "questions"
	ScreeningQuestions   = "screeningQuestions"
	Workflow             = "workflow"
	HiringTeam           = "hiringTeam"
	EvaluationTemplateID = "evaluationTemplateId"
)

// Application wizard.
const (
	FirstName        = "firstName"
	LastName         = "lastName"
	Email            = "email"
	Phone            = "phone"
	LinkedInURL      = "linkedinUrl"
	Resume           = "resume"
	CoverLetter      = "coverLetter"
	ScreeningAnswers = "screeningAnswers"
	Source           = "source"
	Consent          = "consent"
)
