package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/wizard"
)

func validDetails() wizard.Draft {
	return wizard.Draft{
		drafts.Title:          "Engineer",
		drafts.Department:     "Eng",
		drafts.Description:    strings.Repeat("a", MinDescriptionLength),
		drafts.WorkplaceTypes: []models.WorkplaceType{models.WorkplaceRemote},
		drafts.Location:       models.Location{Country: "US"},
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<p>Do you have <b>Go</b> experience?</p>", "Do you have Go experience?"},
		{"<p></p>", ""},
		{"<br/>", ""},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<p>one</p><p>two</p>", "one two"},
		{"<p>Can you <em>relocate</em>?</p>", "Can you relocate?"},
		{"see <a href=\"/faq\">the FAQ</a>, then apply", "see the FAQ, then apply"},
		{"<ul><li>Go</li><li>SQL</li></ul>", "Go SQL"},
		{"line<br>break", "line break"},
		{"  spaced\n\tout  ", "spaced out"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestJobDetailsHappyPath(t *testing.T) {
	res := JobDetails(validDetails())
	assert.True(t, res.OK, "%v", res.FieldErrors)
	assert.Empty(t, res.FieldErrors)
}

func TestJobDetailsFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(wizard.Draft)
		field  string
	}{
		{"short title", func(d wizard.Draft) { d[drafts.Title] = "QA" }, drafts.Title},
		{"blank department", func(d wizard.Draft) { d[drafts.Department] = "  " }, drafts.Department},
		{"short description", func(d wizard.Draft) { d[drafts.Description] = strings.Repeat("a", 1999) }, drafts.Description},
		{"no workplace type", func(d wizard.Draft) { delete(d, drafts.WorkplaceTypes) }, drafts.WorkplaceTypes},
		{"remote without country", func(d wizard.Draft) { d[drafts.Location] = models.Location{} }, "workplaceLocations.remote.country"},
		{"on-site without city", func(d wizard.Draft) {
			d[drafts.WorkplaceTypes] = []models.WorkplaceType{models.WorkplaceOnSite}
			d[drafts.WorkplaceLocations] = models.WorkplaceLocations{OnSite: &models.Place{Country: "US"}}
		}, "workplaceLocations.onSite.city"},
		{"hybrid missing entirely", func(d wizard.Draft) {
			d[drafts.WorkplaceTypes] = []string{"Hybrid"}
		}, "workplaceLocations.hybrid.country"},
		{"inverted salary", func(d wizard.Draft) {
			d[drafts.SalaryRange] = &models.SalaryRange{Min: 200, Max: 100}
		}, "salaryRange.max"},
		{"bad expiry date", func(d wizard.Draft) { d[drafts.ExpiryDate] = "31/12/2026" }, drafts.ExpiryDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(d)
			res := JobDetails(d)
			assert.False(t, res.OK)
			assert.Contains(t, res.FieldErrors, tt.field)
		})
	}
}

func TestJobDetailsCountsRawDescriptionLength(t *testing.T) {
	d := validDetails()
	// 1000 visible characters wrapped in enough markup to pass the raw count
	d[drafts.Description] = "<p>" + strings.Repeat("a", 1000) + "</p>" + strings.Repeat("<br>", 250)
	assert.True(t, JobDetails(d).OK)
}

func TestJobDetailsRemoteCountryFromRemoteSection(t *testing.T) {
	d := validDetails()
	d[drafts.Location] = models.Location{}
	d[drafts.WorkplaceLocations] = models.WorkplaceLocations{Remote: &models.RemoteForm{Country: "DE"}}
	assert.True(t, JobDetails(d).OK)
}

func TestScreeningAllowsEmpty(t *testing.T) {
	assert.True(t, Screening(wizard.Draft{}).OK)
	assert.True(t, Screening(wizard.Draft{drafts.ScreeningQuestions: []models.ScreeningQuestion{}}).OK)
}

func TestScreeningMultipleChoiceNeedsOptions(t *testing.T) {
	d := wizard.Draft{drafts.ScreeningQuestions: []models.ScreeningQuestion{
		{Text: "Preferred stack?", Type: models.QuestionMultipleChoice, Options: []string{}},
	}}
	res := Screening(d)
	assert.False(t, res.OK)
	assert.Contains(t, res.FieldErrors, "screeningQuestions[0].options")
}

func TestScreeningRules(t *testing.T) {
	d := wizard.Draft{drafts.ScreeningQuestions: []models.ScreeningQuestion{
		{Text: "<p> </p>", Type: models.QuestionText},
		{Text: "Pick one", Type: models.QuestionMultipleChoice, Options: []string{"Go", "Rust"}, CorrectAnswer: "Java"},
		{Text: "Mystery", Type: "essay"},
		{Text: "Years?", Type: models.QuestionShortText, Required: true},
	}}
	res := Screening(d)
	assert.False(t, res.OK)
	assert.Contains(t, res.FieldErrors, "screeningQuestions[0].text")
	assert.Contains(t, res.FieldErrors, "screeningQuestions[1].correctAnswer")
	assert.Contains(t, res.FieldErrors, "screeningQuestions[2].type")
	assert.NotContains(t, res.FieldErrors, "screeningQuestions[3].text")
}

func TestCommitScreening(t *testing.T) {
	committed := CommitScreening(wizard.Draft{drafts.Questions: []models.ScreeningQuestion{
		{Text: "<p>Can you <em>relocate</em>?</p>", Type: models.QuestionYesNo, Options: []string{"stray"}},
		{Text: "Level", Type: models.QuestionMultipleChoice, Options: []string{"Junior", "Senior"}, CorrectAnswer: "Senior"},
	}})
	qs := drafts.QuestionsOf(committed, drafts.ScreeningQuestions)
	require.Len(t, qs, 2)
	assert.Equal(t, "Can you relocate?", qs[0].Text)
	assert.Nil(t, qs[0].Options)
	assert.Equal(t, []string{"Junior", "Senior"}, qs[1].Options)
	assert.False(t, committed.Has(drafts.Questions))

	empty := CommitScreening(wizard.Draft{drafts.Questions: []models.ScreeningQuestion{}})
	assert.Equal(t, []models.ScreeningQuestion{}, empty[drafts.ScreeningQuestions])
}

func TestWorkflow(t *testing.T) {
	ok := Workflow(wizard.Draft{
		drafts.Workflow:   []string{"New", "Hired"},
		drafts.HiringTeam: []models.HiringTeamMember{},
	})
	assert.True(t, ok.OK)

	res := Workflow(wizard.Draft{drafts.Workflow: []string{}})
	assert.Contains(t, res.FieldErrors, drafts.Workflow)

	res = Workflow(wizard.Draft{
		drafts.Workflow: []string{"New", "New"},
		drafts.HiringTeam: []models.HiringTeamMember{
			{Name: "Ada", Email: "not-an-email", Role: "Interviewer"},
			{Email: "grace@example.com"},
		},
	})
	assert.False(t, res.OK)
	assert.Contains(t, res.FieldErrors, "workflow[1]")
	assert.Contains(t, res.FieldErrors, "hiringTeam[0].email")
	assert.Contains(t, res.FieldErrors, "hiringTeam[1].name")
	assert.Contains(t, res.FieldErrors, "hiringTeam[1].role")
}

func TestGuestContact(t *testing.T) {
	res := GuestContact(wizard.Draft{
		drafts.FirstName: "Ada",
		drafts.LastName:  "Lovelace",
		drafts.Email:     "ada@example.com",
		drafts.Phone:     "+44 20 7946 0000",
	})
	assert.True(t, res.OK, "%v", res.FieldErrors)

	res = GuestContact(wizard.Draft{drafts.Email: "ada"})
	assert.False(t, res.OK)
	for _, f := range []string{"firstName", "lastName", "email", "phone"} {
		assert.Contains(t, res.FieldErrors, f)
	}
}

func TestMemberContact(t *testing.T) {
	assert.True(t, MemberContact(wizard.Draft{}).OK)
	assert.False(t, MemberContact(wizard.Draft{drafts.Email: "nope"}).OK)
}

func TestResume(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
	tests := []struct {
		name string
		file *models.ResumeFile
		ok   bool
	}{
		{"missing", nil, false},
		{"declared pdf", &models.ResumeFile{FileName: "cv", ContentType: "application/pdf", Data: []byte("x")}, true},
		{"sniffed pdf", &models.ResumeFile{FileName: "cv", ContentType: "application/octet-stream", Data: pdf}, true},
		{"extension fallback", &models.ResumeFile{FileName: "CV.DOCX", ContentType: "application/octet-stream", Data: []byte{0x01, 0x02}}, true},
		{"txt with charset", &models.ResumeFile{FileName: "cv", ContentType: "text/plain; charset=utf-8", Data: []byte("hello")}, true},
		{"image", &models.ResumeFile{FileName: "cv.png", ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n")}, false},
		{"png posing as octet-stream", &models.ResumeFile{FileName: "cv", ContentType: "application/octet-stream", Data: []byte("\x89PNG\r\n\x1a\n")}, false},
		{"empty", &models.ResumeFile{FileName: "cv.pdf", ContentType: "application/pdf"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := wizard.Draft{}
			if tt.file != nil {
				d[drafts.Resume] = *tt.file
			}
			assert.Equal(t, tt.ok, Resume(d).OK)
		})
	}
}

func TestScreeningAnswers(t *testing.T) {
	questions := []models.ScreeningQuestion{
		{Text: "Authorized to work?", Type: models.QuestionYesNo, Required: true},
		{Text: "Seniority", Type: models.QuestionMultipleChoice, Options: []string{"Junior", "Senior"}},
		{Text: "Rate your Go", Type: models.QuestionRating},
		{Text: "Anything else?", Type: models.QuestionLongText},
	}
	check := ScreeningAnswers(questions)

	res := check(wizard.Draft{drafts.ScreeningAnswers: []models.ScreeningAnswer{
		{Question: "Authorized to work?", Answer: "Yes"},
		{Question: "Seniority", Answer: "Senior"},
		{Question: "Rate your Go", Answer: "4"},
	}})
	assert.True(t, res.OK, "%v", res.FieldErrors)

	res = check(wizard.Draft{drafts.ScreeningAnswers: []models.ScreeningAnswer{
		{Question: "Seniority", Answer: "Principal"},
		{Question: "Rate your Go", Answer: "11"},
	}})
	assert.Contains(t, res.FieldErrors, "screeningAnswers[0]")
	assert.Contains(t, res.FieldErrors, "screeningAnswers[1]")
	assert.Contains(t, res.FieldErrors, "screeningAnswers[2]")
	assert.NotContains(t, res.FieldErrors, "screeningAnswers[3]")
}

func TestReview(t *testing.T) {
	assert.False(t, Review(wizard.Draft{}).OK)
	assert.True(t, Review(wizard.Draft{drafts.Consent: true}).OK)
}
