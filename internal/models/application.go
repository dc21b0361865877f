package models

type CandidateInfo struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	LinkedInURL string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
}

// ResumeFile is an uploaded resume held in memory until submission.
type ResumeFile struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// ApplicationSubmission is the payload of a completed application wizard.
// CandidateInfo is nil for signed-in applicants.
type ApplicationSubmission struct {
	JobID            uint              `json:"jobId"`
	UserID           *uint             `json:"userId,omitempty"`
	CandidateInfo    *CandidateInfo    `json:"candidateInfo,omitempty"`
	ScreeningAnswers []ScreeningAnswer `json:"screeningAnswers"`
	Source           string            `json:"source"`
	CoverLetter      string            `json:"coverLetter,omitempty"`
	Resume           ResumeFile        `json:"resume"`
}
