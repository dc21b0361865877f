package models

import "slices"

// QuestionType discriminates the ScreeningQuestion variants.
type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionShortText      QuestionType = "short-text"
	QuestionLongText       QuestionType = "long-text"
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionYesNo          QuestionType = "yes-no"
	QuestionRating         QuestionType = "rating"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionShortText, QuestionLongText,
		QuestionMultipleChoice, QuestionYesNo, QuestionRating:
		return true
	}
	return false
}

// ScreeningQuestion is tagged by Type. Options and CorrectAnswer belong to
// the multiple-choice variant only and are cleared by Normalized for others.
type ScreeningQuestion struct {
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Required      bool         `json:"required"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
}

// Normalized returns q with variant-foreign fields dropped.
func (q ScreeningQuestion) Normalized() ScreeningQuestion {
	if q.Type != QuestionMultipleChoice {
		q.Options = nil
		q.CorrectAnswer = ""
		return q
	}
	q.Options = slices.Clone(q.Options)
	return q
}

// HasOption reports whether v is one of the question's options.
func (q ScreeningQuestion) HasOption(v string) bool {
	return slices.Contains(q.Options, v)
}

type ScreeningAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
