package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/wizard"
)

// CandidateInfoOf reads the contact fields of an application draft.
func CandidateInfoOf(d wizard.Draft) models.CandidateInfo {
	return models.CandidateInfo{
		FirstName:   strings.TrimSpace(d.String(drafts.FirstName)),
		LastName:    strings.TrimSpace(d.String(drafts.LastName)),
		Email:       strings.TrimSpace(d.String(drafts.Email)),
		Phone:       strings.TrimSpace(d.String(drafts.Phone)),
		LinkedInURL: strings.TrimSpace(d.String(drafts.LinkedInURL)),
	}
}

// GuestContact requires the contact details a guest applicant must give.
func GuestContact(d wizard.Draft) wizard.Result {
	res := wizard.Pass()
	structInto(&res, "", CandidateInfoOf(d))
	return res
}

// MemberContact checks the optional overrides a signed-in applicant may send.
func MemberContact(d wizard.Draft) wizard.Result {
	res := wizard.Pass()
	if email := d.String(drafts.Email); email != "" && !IsEmail(email) {
		res.Fail(drafts.Email, "Please enter a valid email address")
	}
	if u := d.String(drafts.LinkedInURL); u != "" && validate.Var(u, "url") != nil {
		res.Fail(drafts.LinkedInURL, "linkedinUrl must be a valid URL")
	}
	return res
}

// Resume requires an uploaded pdf, doc, docx or txt file.
func Resume(d wizard.Draft) wizard.Result {
	res := wizard.Pass()
	f, ok := drafts.ResumeOf(d)
	if !ok || (len(f.Data) == 0 && f.Size == 0) {
		res.Fail(drafts.Resume, "Please upload your resume")
		return res
	}
	if !ResumeTypeAllowed(f) {
		res.Fail(drafts.Resume, "Resume must be a PDF, DOC, DOCX or TXT file")
	}
	return res
}

// ScreeningAnswers returns the validator for answers to the given questions.
func ScreeningAnswers(questions []models.ScreeningQuestion) func(wizard.Draft) wizard.Result {
	return func(d wizard.Draft) wizard.Result {
		res := wizard.Pass()
		answers := make(map[string]string)
		for _, a := range drafts.AnswersOf(d) {
			answers[a.Question] = strings.TrimSpace(a.Answer)
		}
		for i, q := range questions {
			field := fmt.Sprintf("%s[%d]", drafts.ScreeningAnswers, i)
			ans, given := answers[q.Text]
			if !given || ans == "" {
				if q.Required {
					res.Fail(field, "This question requires an answer")
				}
				continue
			}
			switch q.Type {
			case models.QuestionMultipleChoice:
				if !q.HasOption(ans) {
					res.Fail(field, "Choose one of the listed options")
				}
			case models.QuestionYesNo:
				if l := strings.ToLower(ans); l != "yes" && l != "no" {
					res.Fail(field, "Answer yes or no")
				}
			case models.QuestionRating:
				if n, err := strconv.Atoi(ans); err != nil || n < 1 || n > 5 {
					res.Fail(field, "Rate from 1 to 5")
				}
			}
		}
		return res
	}
}

// Review requires the applicant's consent before submission.
func Review(d wizard.Draft) wizard.Result {
	res := wizard.Pass()
	if !drafts.Bool(d, drafts.Consent) {
		res.Fail(drafts.Consent, "Please confirm the information is accurate")
	}
	return res
}
