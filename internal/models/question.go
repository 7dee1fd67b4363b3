package models

// QuestionType is the input kind of a questionnaire step
type QuestionType string

const (
	QuestionBoolean QuestionType = "boolean"
	QuestionRadio   QuestionType = "radio"
	QuestionNumber  QuestionType = "number"
	QuestionText    QuestionType = "text"
)

// Question is one immutable step of the questionnaire
type Question struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options,omitempty"`
	Required    bool         `json:"required"`
}
