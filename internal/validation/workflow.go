package validation

import (
	"fmt"

	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/wizard"
)

// Workflow checks the hiring workflow step: at least one stage and a
// complete entry for every hiring team member.
func Workflow(d wizard.Draft) wizard.Result {
	res := wizard.Pass()

	stages := drafts.Strings(d, drafts.Workflow)
	if len(stages) == 0 {
		res.Fail(drafts.Workflow, "Add at least one workflow stage")
	}
	seen := make(map[string]bool, len(stages))
	for i, s := range stages {
		field := fmt.Sprintf("%s[%d]", drafts.Workflow, i)
		if blank(s) {
			res.Fail(field, "Stage name cannot be empty")
			continue
		}
		if seen[s] {
			res.Fail(field, fmt.Sprintf("Stage %q appears twice", s))
		}
		seen[s] = true
	}

	for i, m := range drafts.HiringTeamOf(d) {
		structInto(&res, fmt.Sprintf("%s[%d].", drafts.HiringTeam, i), m)
	}
	return res
}
