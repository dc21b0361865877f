package dtos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/wizard"
)

func TestStepBody(t *testing.T) {
	tests := []struct {
		kind wizard.Kind
		step int
		want StepRequest
	}{
		{wizard.KindJobCreate, 1, &JobDetailsStep{}},
		{wizard.KindJobEdit, 2, &ScreeningStep{}},
		{wizard.KindJobCreate, 3, &WorkflowStep{}},
		{wizard.KindApplicationGuest, 1, &ContactStep{}},
		{wizard.KindApplicationMember, 3, &ScreeningAnswersStep{}},
		{wizard.KindApplicationGuest, 4, &ReviewStep{}},
	}
	for _, tt := range tests {
		got, ok := StepBody(tt.kind, tt.step)
		require.True(t, ok, "%s step %d", tt.kind, tt.step)
		assert.IsType(t, tt.want, got)
	}

	_, ok := StepBody(wizard.KindApplicationGuest, ResumeStep)
	assert.False(t, ok)
	_, ok = StepBody(wizard.KindJobCreate, 4)
	assert.False(t, ok)
}

func TestJobDetailsStepToDraft(t *testing.T) {
	var body JobDetailsStep
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Backend Engineer",
		"workplaceTypes": ["Hybrid"],
		"workplaceLocations": {"hybrid": {"city": "Berlin", "country": "DE"}},
		"skills": "Go, SQL",
		"toolsTechnologies": ["Docker"]
	}`), &body))

	d := body.ToDraft()
	assert.Equal(t, "Backend Engineer", d.String(drafts.Title))
	assert.Equal(t, []models.WorkplaceType{models.WorkplaceHybrid}, drafts.WorkplaceTypesOf(d))
	assert.Equal(t, &models.Place{City: "Berlin", Country: "DE"}, drafts.WorkplaceLocationsOf(d).Hybrid)
	assert.Equal(t, "Go, SQL", d[drafts.Skills])
	assert.Equal(t, []string{"Docker"}, drafts.Strings(d, drafts.ToolsTechnologies))
	assert.False(t, d.Has(drafts.EducationCertifications), "omitted lists keep the draft's value")
}

func TestEmptyListsStayEmpty(t *testing.T) {
	assert.Equal(t, []models.ScreeningQuestion{}, (&ScreeningStep{}).ToDraft()[drafts.Questions])
	assert.Equal(t, []models.ScreeningAnswer{}, (&ScreeningAnswersStep{}).ToDraft()[drafts.ScreeningAnswers])
	assert.Equal(t, []models.HiringTeamMember{}, (&WorkflowStep{}).ToDraft()[drafts.HiringTeam])
}
