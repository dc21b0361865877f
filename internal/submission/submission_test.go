package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/validation"
	"github.com/justsurfingit/job-board/internal/wizard"
)

func TestSynthesizeLocation(t *testing.T) {
	loc := SynthesizeLocation(
		[]models.WorkplaceType{models.WorkplaceOnSite, models.WorkplaceRemote},
		models.Location{City: "Boston", Country: "US"},
		models.WorkplaceLocations{
			OnSite: &models.Place{City: "NYC", Country: "US"},
			Remote: &models.RemoteForm{Country: "US", Cities: []models.RemoteCity{{City: "Austin"}}},
		},
	)
	assert.True(t, loc.Remote)
	assert.Equal(t, "Boston", loc.City)
	assert.Equal(t, []models.Place{{City: "NYC", Country: "US"}, {City: "Austin", Country: "US"}}, loc.AlternateLocations)
}

func TestSynthesizeLocationIgnoresUnselectedForms(t *testing.T) {
	loc := SynthesizeLocation(
		[]models.WorkplaceType{models.WorkplaceHybrid},
		models.Location{City: "Berlin", Country: "DE"},
		models.WorkplaceLocations{
			OnSite: &models.Place{City: "NYC", Country: "US"},
			Hybrid: &models.Place{City: "Munich", Country: "DE"},
			Remote: &models.RemoteForm{Country: "US", Cities: []models.RemoteCity{{City: "Austin"}}},
		},
	)
	assert.False(t, loc.Remote)
	assert.Equal(t, []models.Place{{City: "Munich", Country: "DE"}}, loc.AlternateLocations)
}

func TestSynthesizeLocationRemoteCountryFallsBackToPrimary(t *testing.T) {
	loc := SynthesizeLocation(
		[]models.WorkplaceType{models.WorkplaceRemote},
		models.Location{Country: "CA"},
		models.WorkplaceLocations{Remote: &models.RemoteForm{Cities: []models.RemoteCity{
			{City: "Toronto"},
			{City: "Seattle", Country: "US"},
		}}},
	)
	assert.Equal(t, []models.Place{{City: "Toronto", Country: "CA"}, {City: "Seattle", Country: "US"}}, loc.AlternateLocations)
}

func TestWorkplaceFormsRoundTrip(t *testing.T) {
	types := []models.WorkplaceType{models.WorkplaceOnSite, models.WorkplaceRemote}
	forms := models.WorkplaceLocations{
		OnSite: &models.Place{City: "NYC", Country: "US"},
		Remote: &models.RemoteForm{Country: "US", Cities: []models.RemoteCity{{City: "Austin"}, {City: "Toronto", Country: "CA"}}},
	}
	loc := SynthesizeLocation(types, models.Location{Country: "US"}, forms)
	assert.Equal(t, forms, WorkplaceForms(types, loc))
}

func TestRemoteCountrySurvivesEditReload(t *testing.T) {
	d := jobDraft()
	d[drafts.Description] = strings.Repeat("a", validation.MinDescriptionLength)
	d[drafts.WorkplaceTypes] = []models.WorkplaceType{models.WorkplaceRemote}
	d[drafts.Location] = models.Location{}
	d[drafts.WorkplaceLocations] = models.WorkplaceLocations{Remote: &models.RemoteForm{Country: "DE"}}
	require.True(t, validation.JobDetails(d).OK)

	in, err := JobInputFrom(d)
	require.NoError(t, err)
	assert.Equal(t, "DE", in.Location.Country)
	assert.Empty(t, in.Location.AlternateLocations)

	var job models.Job
	job.Apply(in)
	reloaded := DraftFromJob(job.Input())
	res := validation.JobDetails(reloaded)
	assert.True(t, res.OK, "%v", res.FieldErrors)
	forms := drafts.WorkplaceLocationsOf(reloaded)
	require.NotNil(t, forms.Remote)
	assert.Equal(t, "DE", forms.Remote.Country)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, SplitList(" Go, SQL,,Kubernetes , "))
	assert.Equal(t, []string{}, SplitList(""))

	already := []string{"Go", "SQL"}
	assert.Equal(t, already, SplitList(already))
	assert.Equal(t, SplitList("a,b"), SplitList(SplitList("a,b")))
}

func TestSplitListsOnlyTouchesListFields(t *testing.T) {
	d := wizard.Draft{
		drafts.Skills:            "Go, SQL",
		drafts.ToolsTechnologies: []string{"Docker"},
		drafts.Department:        "Platform, Infra",
	}
	out := SplitLists(d)
	assert.Equal(t, []string{"Go", "SQL"}, out[drafts.Skills])
	assert.Equal(t, []string{"Docker"}, out[drafts.ToolsTechnologies])
	assert.Equal(t, "Platform, Infra", out[drafts.Department])
	assert.False(t, out.Has(drafts.EducationCertifications))
	assert.Equal(t, "Go, SQL", d[drafts.Skills], "input draft is not modified")
}

func TestDateOnly(t *testing.T) {
	tests := map[string]string{
		"2025-03-01T00:00:00Z":          "2025-03-01",
		"2025-03-01T23:59:59.000+05:30": "2025-03-01",
		"2025-03-01":                    "2025-03-01",
		"2025-03-01 10:30:00":           "2025-03-01",
		"":                              "",
		"soon":                          "soon",
	}
	for in, want := range tests {
		assert.Equal(t, want, DateOnly(in), in)
	}
}

func jobDraft() wizard.Draft {
	return wizard.Draft{
		drafts.Title:          "  Backend Engineer ",
		drafts.Department:     "Engineering",
		drafts.Description:    "desc",
		drafts.WorkplaceTypes: []models.WorkplaceType{models.WorkplaceOnSite, models.WorkplaceRemote},
		drafts.Location:       models.Location{City: "Boston", Country: "US"},
		drafts.WorkplaceLocations: models.WorkplaceLocations{
			OnSite: &models.Place{City: "NYC", Country: "US"},
			Remote: &models.RemoteForm{Country: "US", Cities: []models.RemoteCity{{City: "Austin"}}},
		},
		drafts.Skills:             "Go, Postgres",
		drafts.Positions:          2,
		drafts.ExpiryDate:         "2026-12-31",
		drafts.ScreeningQuestions: []models.ScreeningQuestion{{Text: "Why us?", Type: models.QuestionLongText}},
		drafts.Workflow:           []string{"New", "Hired"},
		drafts.SalaryRange:        &models.SalaryRange{Min: 100, Max: 150, Currency: "USD"},
	}
}

func TestJobInputFrom(t *testing.T) {
	in, err := JobInputFrom(jobDraft())
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", in.Title)
	assert.Equal(t, []string{"Go", "Postgres"}, in.Skills)
	assert.Equal(t, []string{}, in.ToolsTechnologies)
	assert.Equal(t, 2, in.Positions)
	assert.True(t, in.Location.Remote)
	assert.Len(t, in.Location.AlternateLocations, 2)
	assert.Len(t, in.ScreeningQuestions, 1)
	assert.Equal(t, []models.HiringTeamMember{}, in.HiringTeam)
	require.NotNil(t, in.SalaryRange)
	assert.Equal(t, 150, in.SalaryRange.Max)
}

func TestDraftFromJobTruncatesDates(t *testing.T) {
	in, err := JobInputFrom(jobDraft())
	require.NoError(t, err)
	in.ExpiryDate = "2026-12-31T00:00:00Z"
	in.ApplicationDeadline = "2026-11-30T12:00:00Z"

	d := DraftFromJob(in)
	assert.Equal(t, "2026-12-31", d[drafts.ExpiryDate])
	assert.Equal(t, "2026-11-30", d[drafts.ApplicationDeadline])
	assert.Empty(t, drafts.LocationOf(d).AlternateLocations)

	again, err := JobInputFrom(d)
	require.NoError(t, err)
	assert.Equal(t, in.Location, again.Location)
	assert.Equal(t, in.Skills, again.Skills)
}

func TestApplicationFrom(t *testing.T) {
	d := wizard.Draft{
		drafts.FirstName: "Ada",
		drafts.LastName:  "Lovelace",
		drafts.Email:     "ada@example.com",
		drafts.Phone:     "123",
		drafts.Resume:    models.ResumeFile{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("x")},
	}
	guest, err := ApplicationFrom(d, 7, nil)
	require.NoError(t, err)
	require.NotNil(t, guest.CandidateInfo)
	assert.Equal(t, "ada@example.com", guest.CandidateInfo.Email)
	assert.Equal(t, DefaultSource, guest.Source)
	assert.Equal(t, "cv.pdf", guest.Resume.FileName)
	assert.Equal(t, []models.ScreeningAnswer{}, guest.ScreeningAnswers)

	uid := uint(3)
	member, err := ApplicationFrom(wizard.Draft{drafts.Resume: d[drafts.Resume]}, 7, &uid)
	require.NoError(t, err)
	assert.Nil(t, member.CandidateInfo)
	assert.Equal(t, &uid, member.UserID)

	override, err := ApplicationFrom(wizard.Draft{drafts.Phone: "555"}, 7, &uid)
	require.NoError(t, err)
	require.NotNil(t, override.CandidateInfo)
	assert.Equal(t, "555", override.CandidateInfo.Phone)
}

func TestAdapterSubmits(t *testing.T) {
	var sent models.JobInput
	a := &Adapter[models.JobInput]{
		Name:  "job-create",
		Shape: JobInputFrom,
		Send: func(_ context.Context, in models.JobInput) (wizard.Completion, error) {
			sent = in
			return wizard.Completion{ResourceID: "11"}, nil
		},
		Fallback: CreateJobFallback,
	}
	done, err := a.Submit(context.Background(), jobDraft())
	require.NoError(t, err)
	assert.Equal(t, "11", done.ResourceID)
	assert.Equal(t, "Backend Engineer", sent.Title)
}

func TestAdapterMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend message", apperr.Conflict("Duplicate title"), "Duplicate title"},
		{"wrapped backend message", fmt.Errorf("create: %w", apperr.QuotaExceeded("Job quota reached")), "Job quota reached"},
		{"no message", errors.New("dial tcp: connection refused"), CreateJobFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Adapter[models.JobInput]{
				Shape: JobInputFrom,
				Send: func(context.Context, models.JobInput) (wizard.Completion, error) {
					return wizard.Completion{}, tt.err
				},
				Fallback: CreateJobFallback,
			}
			_, err := a.Submit(context.Background(), jobDraft())
			var se *wizard.SubmissionError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.want, se.Message)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAdapterShapeFailure(t *testing.T) {
	called := false
	a := &Adapter[int]{
		Shape: func(wizard.Draft) (int, error) { return 0, errors.New("bad draft") },
		Send: func(context.Context, int) (wizard.Completion, error) {
			called = true
			return wizard.Completion{}, nil
		},
		Fallback: ApplicationFallback,
	}
	_, err := a.Submit(context.Background(), wizard.Draft{})
	var se *wizard.SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ApplicationFallback, se.Message)
	assert.False(t, called)
}
