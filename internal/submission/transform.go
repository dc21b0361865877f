package submission

import (
	"slices"
	"strings"
	"time"

	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/validation"
	"github.com/justsurfingit/job-board/internal/wizard"
)

// ListFields are edited as comma-separated text and sent as lists.
var ListFields = []string{drafts.Skills, drafts.ToolsTechnologies, drafts.EducationCertifications}

// SplitList splits a comma-separated string into trimmed, non-empty entries.
// Any other value, including an already split list, is returned unchanged.
func SplitList(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitLists applies SplitList to every ListFields key present in d.
func SplitLists(d wizard.Draft) wizard.Draft {
	out := d.Clone()
	for _, key := range ListFields {
		if v, ok := out[key]; ok {
			out[key] = SplitList(v)
		}
	}
	return out
}

// SynthesizeLocation fills AlternateLocations from the workplace sub-forms:
// one entry each for On-site and Hybrid, then one per remote city with the
// remote section's country as the default. Remote is set iff Remote is
// selected. A remote-only country also becomes the primary country.
func SynthesizeLocation(types []models.WorkplaceType, primary models.Location, forms models.WorkplaceLocations) models.Location {
	loc := models.Location{
		City:               primary.City,
		Country:            primary.Country,
		Remote:             slices.Contains(types, models.WorkplaceRemote),
		AlternateLocations: []models.Place{},
	}
	if slices.Contains(types, models.WorkplaceOnSite) && forms.OnSite != nil {
		loc.AlternateLocations = append(loc.AlternateLocations, *forms.OnSite)
	}
	if slices.Contains(types, models.WorkplaceHybrid) && forms.Hybrid != nil {
		loc.AlternateLocations = append(loc.AlternateLocations, *forms.Hybrid)
	}
	if loc.Remote && forms.Remote != nil {
		country := validation.RemoteCountry(forms.Remote, primary)
		if loc.Country == "" {
			// WorkplaceForms reads it back when there are no remote cities
			loc.Country = country
		}
		for _, c := range forms.Remote.Cities {
			p := models.Place{City: c.City, Country: c.Country}
			if p.Country == "" {
				p.Country = country
			}
			loc.AlternateLocations = append(loc.AlternateLocations, p)
		}
	}
	return loc
}

// WorkplaceForms is the inverse of SynthesizeLocation, used to rebuild the
// sub-forms of a stored job for editing.
func WorkplaceForms(types []models.WorkplaceType, loc models.Location) models.WorkplaceLocations {
	var forms models.WorkplaceLocations
	rest := loc.AlternateLocations
	take := func() *models.Place {
		if len(rest) == 0 {
			return &models.Place{}
		}
		p := rest[0]
		rest = rest[1:]
		return &p
	}
	if slices.Contains(types, models.WorkplaceOnSite) {
		forms.OnSite = take()
	}
	if slices.Contains(types, models.WorkplaceHybrid) {
		forms.Hybrid = take()
	}
	if slices.Contains(types, models.WorkplaceRemote) {
		remote := &models.RemoteForm{Country: loc.Country, Cities: []models.RemoteCity{}}
		if len(rest) > 0 {
			remote.Country = rest[0].Country
		}
		for _, p := range rest {
			c := models.RemoteCity{City: p.City}
			if p.Country != remote.Country {
				c.Country = p.Country
			}
			remote.Cities = append(remote.Cities, c)
		}
		forms.Remote = remote
	}
	return forms
}

// DateOnly reduces a timestamp to YYYY-MM-DD. ISO timestamps are cut at
// the T separator; other parseable forms are reformatted; anything else is
// returned as is.
func DateOnly(s string) string {
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, 'T'); i > 0 {
		if _, err := time.Parse(time.DateOnly, s[:i]); err == nil {
			return s[:i]
		}
	}
	for _, layout := range []string{time.DateOnly, time.RFC1123, time.RFC1123Z, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return s
}

// JobInputFrom shapes a job wizard draft into the payload the job service takes.
func JobInputFrom(d wizard.Draft) (models.JobInput, error) {
	d = SplitLists(d)
	types := drafts.WorkplaceTypesOf(d)
	in := models.JobInput{
		Title:                   strings.TrimSpace(d.String(drafts.Title)),
		Department:              strings.TrimSpace(d.String(drafts.Department)),
		Description:             d.String(drafts.Description),
		Location:                SynthesizeLocation(types, drafts.LocationOf(d), drafts.WorkplaceLocationsOf(d)),
		EmploymentType:          d.String(drafts.EmploymentType),
		JobType:                 d.String(drafts.JobType),
		WorkplaceTypes:          types,
		ExperienceLevel:         d.String(drafts.ExperienceLevel),
		ExperienceRequiredYears: drafts.Int(d, drafts.ExperienceRequiredYears),
		SalaryRange:             drafts.SalaryRangeOf(d),
		SalaryBudget:            drafts.SalaryBudgetOf(d),
		ExpiryDate:              d.String(drafts.ExpiryDate),
		ApplicationDeadline:     d.String(drafts.ApplicationDeadline),
		Positions:               drafts.Int(d, drafts.Positions),
		Skills:                  nonNil(drafts.Strings(d, drafts.Skills)),
		ToolsTechnologies:       nonNil(drafts.Strings(d, drafts.ToolsTechnologies)),
		EducationCertifications: nonNil(drafts.Strings(d, drafts.EducationCertifications)),
		JobFunctions:            nonNil(drafts.Strings(d, drafts.JobFunctions)),
		ScreeningQuestions:      drafts.QuestionsOf(d, drafts.ScreeningQuestions),
		HiringTeam:              drafts.HiringTeamOf(d),
		Workflow:                nonNil(drafts.Strings(d, drafts.Workflow)),
		EvaluationTemplateID:    d.String(drafts.EvaluationTemplateID),
	}
	if in.ScreeningQuestions == nil {
		in.ScreeningQuestions = []models.ScreeningQuestion{}
	}
	if in.HiringTeam == nil {
		in.HiringTeam = []models.HiringTeamMember{}
	}
	return in, nil
}

// DraftFromJob seeds an edit wizard from a stored job.
func DraftFromJob(in models.JobInput) wizard.Draft {
	primary := in.Location
	primary.AlternateLocations = nil
	d := wizard.Draft{
		drafts.Title:                   in.Title,
		drafts.Department:              in.Department,
		drafts.Description:             in.Description,
		drafts.EmploymentType:          in.EmploymentType,
		drafts.JobType:                 in.JobType,
		drafts.ExperienceLevel:         in.ExperienceLevel,
		drafts.ExperienceRequiredYears: in.ExperienceRequiredYears,
		drafts.WorkplaceTypes:          slices.Clone(in.WorkplaceTypes),
		drafts.Location:                primary,
		drafts.WorkplaceLocations:      WorkplaceForms(in.WorkplaceTypes, in.Location),
		drafts.ExpiryDate:              DateOnly(in.ExpiryDate),
		drafts.ApplicationDeadline:     DateOnly(in.ApplicationDeadline),
		drafts.Positions:               in.Positions,
		drafts.Skills:                  slices.Clone(in.Skills),
		drafts.ToolsTechnologies:       slices.Clone(in.ToolsTechnologies),
		drafts.EducationCertifications: slices.Clone(in.EducationCertifications),
		drafts.JobFunctions:            slices.Clone(in.JobFunctions),
		drafts.ScreeningQuestions:      slices.Clone(in.ScreeningQuestions),
		drafts.HiringTeam:              slices.Clone(in.HiringTeam),
		drafts.Workflow:                slices.Clone(in.Workflow),
		drafts.EvaluationTemplateID:    in.EvaluationTemplateID,
	}
	if in.SalaryRange != nil {
		sr := *in.SalaryRange
		d[drafts.SalaryRange] = &sr
	}
	if in.SalaryBudget != nil {
		sb := *in.SalaryBudget
		d[drafts.SalaryBudget] = &sb
	}
	return d
}

// ApplicationFrom shapes an application wizard draft. Signed-in applicants
// (userID set) send candidate info only when they override their profile.
func ApplicationFrom(d wizard.Draft, jobID uint, userID *uint) (models.ApplicationSubmission, error) {
	resume, _ := drafts.ResumeOf(d)
	sub := models.ApplicationSubmission{
		JobID:            jobID,
		UserID:           userID,
		ScreeningAnswers: drafts.AnswersOf(d),
		Source:           d.String(drafts.Source),
		CoverLetter:      strings.TrimSpace(d.String(drafts.CoverLetter)),
		Resume:           resume,
	}
	if info := validation.CandidateInfoOf(d); userID == nil || info != (models.CandidateInfo{}) {
		sub.CandidateInfo = &info
	}
	if sub.Source == "" {
		sub.Source = DefaultSource
	}
	if sub.ScreeningAnswers == nil {
		sub.ScreeningAnswers = []models.ScreeningAnswer{}
	}
	return sub, nil
}

const DefaultSource = "careers-page"

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
