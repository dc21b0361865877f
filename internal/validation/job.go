package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/wizard"
)

const (
	MinTitleLength       = 3
	MinDescriptionLength = 2000
)

// JobDetails checks the first step of the job wizard. The description
// minimum counts the raw, markup-included text.
func JobDetails(d wizard.Draft) wizard.Result {
	res := wizard.Pass()

	if utf8.RuneCountInString(strings.TrimSpace(d.String(drafts.Title))) < MinTitleLength {
		res.Fail(drafts.Title, fmt.Sprintf("Job title must be at least %d characters", MinTitleLength))
	}
	if blank(d.String(drafts.Department)) {
		res.Fail(drafts.Department, "Department is required")
	}
	if utf8.RuneCountInString(d.String(drafts.Description)) < MinDescriptionLength {
		res.Fail(drafts.Description, fmt.Sprintf("Job description must be at least %d characters", MinDescriptionLength))
	}

	types := drafts.WorkplaceTypesOf(d)
	if len(types) == 0 {
		res.Fail(drafts.WorkplaceTypes, "Select at least one workplace type")
	}
	primary := drafts.LocationOf(d)
	forms := drafts.WorkplaceLocationsOf(d)
	for _, wt := range types {
		switch wt {
		case models.WorkplaceOnSite:
			placeRequired(&res, "workplaceLocations.onSite", forms.OnSite)
		case models.WorkplaceHybrid:
			placeRequired(&res, "workplaceLocations.hybrid", forms.Hybrid)
		case models.WorkplaceRemote:
			if blank(RemoteCountry(forms.Remote, primary)) {
				res.Fail("workplaceLocations.remote.country", "Country is required for remote positions")
			}
		default:
			res.Fail(drafts.WorkplaceTypes, fmt.Sprintf("Unknown workplace type %q", wt))
		}
	}

	if sr := drafts.SalaryRangeOf(d); sr != nil {
		if sr.Min < 0 || sr.Max < 0 {
			res.Fail("salaryRange", "Salary cannot be negative")
		} else if sr.Max > 0 && sr.Min > sr.Max {
			res.Fail("salaryRange.max", "Maximum salary must not be below the minimum")
		}
	}
	if sb := drafts.SalaryBudgetOf(d); sb != nil && sb.Max > 0 && sb.Min > sb.Max {
		res.Fail("salaryBudget.max", "Maximum budget must not be below the minimum")
	}
	if drafts.Int(d, drafts.ExperienceRequiredYears) < 0 {
		res.Fail(drafts.ExperienceRequiredYears, "Experience cannot be negative")
	}
	if drafts.Int(d, drafts.Positions) < 0 {
		res.Fail(drafts.Positions, "Positions cannot be negative")
	}
	for _, key := range []string{drafts.ExpiryDate, drafts.ApplicationDeadline} {
		if v := d.String(key); v != "" {
			if _, err := time.Parse(time.DateOnly, v); err != nil {
				res.Fail(key, "Use the YYYY-MM-DD format")
			}
		}
	}
	return res
}

// RemoteCountry is the remote section's country, falling back to the
// primary location's.
func RemoteCountry(remote *models.RemoteForm, primary models.Location) string {
	if remote != nil && !blank(remote.Country) {
		return remote.Country
	}
	return primary.Country
}

func placeRequired(res *wizard.Result, prefix string, p *models.Place) {
	if p == nil || blank(p.City) {
		res.Fail(prefix+".city", "City is required")
	}
	if p == nil || blank(p.Country) {
		res.Fail(prefix+".country", "Country is required")
	}
}
