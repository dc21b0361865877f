package drafts

import (
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/wizard"
)

// Strings reads a list of strings. Values of any other type, including a
// comma-separated string, yield nil.
func Strings(d wizard.Draft, key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func Int(d wizard.Draft, key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func Bool(d wizard.Draft, key string) bool {
	b, _ := d[key].(bool)
	return b
}

func WorkplaceTypesOf(d wizard.Draft) []models.WorkplaceType {
	switch v := d[WorkplaceTypes].(type) {
	case []models.WorkplaceType:
		return v
	case []string:
		out := make([]models.WorkplaceType, len(v))
		for i, s := range v {
			out[i] = models.WorkplaceType(s)
		}
		return out
	}
	return nil
}

func LocationOf(d wizard.Draft) models.Location {
	switch v := d[Location].(type) {
	case models.Location:
		return v
	case *models.Location:
		if v != nil {
			return *v
		}
	case models.Place:
		return models.Location{City: v.City, Country: v.Country}
	}
	return models.Location{}
}

func WorkplaceLocationsOf(d wizard.Draft) models.WorkplaceLocations {
	switch v := d[WorkplaceLocations].(type) {
	case models.WorkplaceLocations:
		return v
	case *models.WorkplaceLocations:
		if v != nil {
			return *v
		}
	}
	return models.WorkplaceLocations{}
}

func QuestionsOf(d wizard.Draft, key string) []models.ScreeningQuestion {
	q, _ := d[key].([]models.ScreeningQuestion)
	return q
}

func HiringTeamOf(d wizard.Draft) []models.HiringTeamMember {
	t, _ := d[HiringTeam].([]models.HiringTeamMember)
	return t
}

func AnswersOf(d wizard.Draft) []models.ScreeningAnswer {
	a, _ := d[ScreeningAnswers].([]models.ScreeningAnswer)
	return a
}

func ResumeOf(d wizard.Draft) (models.ResumeFile, bool) {
	switch v := d[Resume].(type) {
	case models.ResumeFile:
		return v, true
	case *models.ResumeFile:
		if v != nil {
			return *v, true
		}
	}
	return models.ResumeFile{}, false
}

func SalaryRangeOf(d wizard.Draft) *models.SalaryRange {
	switch v := d[SalaryRange].(type) {
	case *models.SalaryRange:
		return v
	case models.SalaryRange:
		return &v
	}
	return nil
}

func SalaryBudgetOf(d wizard.Draft) *models.SalaryBudget {
	switch v := d[SalaryBudget].(type) {
	case *models.SalaryBudget:
		return v
	case models.SalaryBudget:
		return &v
	}
	return nil
}
