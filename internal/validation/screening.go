package validation

import (
	"fmt"

	"github.com/justsurfingit/job-board/internal/drafts"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/wizard"
)

// Screening checks the committed screening questions. An empty list passes.
func Screening(d wizard.Draft) wizard.Result {
	res := wizard.Pass()
	for i, q := range drafts.QuestionsOf(d, drafts.ScreeningQuestions) {
		field := fmt.Sprintf("%s[%d]", drafts.ScreeningQuestions, i)
		if blank(StripHTML(q.Text)) {
			res.Fail(field+".text", "Question text is required")
		}
		if !q.Type.Valid() {
			res.Fail(field+".type", fmt.Sprintf("Unknown question type %q", q.Type))
			continue
		}
		if q.Type != models.QuestionMultipleChoice {
			continue
		}
		if len(q.Options) == 0 {
			res.Fail(field+".options", "Multiple choice questions need at least one option")
		}
		for j, opt := range q.Options {
			if blank(opt) {
				res.Fail(fmt.Sprintf("%s.options[%d]", field, j), "Options cannot be empty")
			}
		}
		if q.CorrectAnswer != "" && !q.HasOption(q.CorrectAnswer) {
			res.Fail(field+".correctAnswer", "The correct answer must be one of the options")
		}
	}
	return res
}

// CommitScreening turns the step's local question list into the committed
// draft key, stripping markup from question text.
func CommitScreening(partial wizard.Draft) wizard.Draft {
	local := drafts.QuestionsOf(partial, drafts.Questions)
	if local == nil {
		local = drafts.QuestionsOf(partial, drafts.ScreeningQuestions)
	}
	committed := make([]models.ScreeningQuestion, 0, len(local))
	for _, q := range local {
		q = q.Normalized()
		q.Text = StripHTML(q.Text)
		committed = append(committed, q)
	}
	return wizard.Draft{drafts.ScreeningQuestions: committed}
}
