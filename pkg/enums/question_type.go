package enums

import "fmt"

// QuestionType describes the input widget an intake question expects.
type QuestionType string

const (
	QuestionTypeSelect      QuestionType = "select"
	QuestionTypeMultiSelect QuestionType = "multiselect"
	QuestionTypeSubjects    QuestionType = "subjects"
)

var validQuestionTypes = []QuestionType{
	QuestionTypeSelect,
	QuestionTypeMultiSelect,
	QuestionTypeSubjects,
}

// String implements fmt.Stringer.
func (q QuestionType) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuestionType.
func (q QuestionType) IsValid() bool {
	for _, candidate := range validQuestionTypes {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuestionType converts raw input into a QuestionType.
func ParseQuestionType(value string) (QuestionType, error) {
	for _, candidate := range validQuestionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid question type %q", value)
}
