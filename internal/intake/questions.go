package intake

import (
	"encoding/json"

	"github.com/orienta-za/orienta-backend/internal/profiles"
	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// Question is one entry in the fixed intake catalog. The same table backs the
// public listing endpoint, answer validation, and the profile field copy.
type Question struct {
	ID       string
	Text     string
	Type     enums.QuestionType
	Options  []string
	Subjects []string
}

// QuestionCount is the fixed length of the intake walk.
const QuestionCount = 7

var questionCatalog = [QuestionCount]Question{
	{
		ID:      "grade",
		Text:    "What grade are you currently in?",
		Type:    enums.QuestionTypeSelect,
		Options: []string{"Grade 11", "Grade 12", "Post-Matric"},
	},
	{
		ID:      "province",
		Text:    "Which province are you in?",
		Type:    enums.QuestionTypeSelect,
		Options: []string{"Gauteng", "Western Cape", "KwaZulu-Natal", "Eastern Cape", "Free State", "Limpopo", "Mpumalanga", "Northern Cape", "North West"},
	},
	{
		ID:       "subjects",
		Text:     "What are your subject marks (estimated for Grade 11)?",
		Type:     enums.QuestionTypeSubjects,
		Subjects: []string{"Mathematics", "English", "Afrikaans", "Physical Sciences", "Life Sciences", "Accounting", "Business Studies", "Geography", "History", "Life Orientation"},
	},
	{
		ID:      "interests",
		Text:    "What are your career interests?",
		Type:    enums.QuestionTypeMultiSelect,
		Options: []string{"Medicine & Health", "Engineering", "Business & Finance", "Law", "Education", "Arts & Design", "Technology", "Social Work", "Agriculture", "Sports & Recreation"},
	},
	{
		ID:      "budget",
		Text:    "What is your estimated budget for studies per year?",
		Type:    enums.QuestionTypeSelect,
		Options: []string{"R0 - R20,000", "R20,000 - R50,000", "R50,000 - R100,000", "R100,000+"},
	},
	{
		ID:      "location",
		Text:    "How far are you willing to travel for studies?",
		Type:    enums.QuestionTypeSelect,
		Options: []string{"Same city", "Same province", "Anywhere in South Africa", "International"},
	},
	{
		ID:      "fields",
		Text:    "Which fields of study interest you most?",
		Type:    enums.QuestionTypeMultiSelect,
		Options: []string{"Science & Technology", "Commerce & Management", "Health Sciences", "Engineering", "Humanities", "Arts & Design", "Education", "Law", "Agriculture"},
	},
}

// Questions returns the ordered catalog.
func Questions() []Question {
	out := make([]Question, QuestionCount)
	copy(out, questionCatalog[:])
	return out
}

// QuestionByID returns the catalog entry for the given id.
func QuestionByID(id string) (Question, bool) {
	for _, q := range questionCatalog {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionAt returns the catalog entry at the given step, or false when the
// step is past the end of the walk.
func QuestionAt(step int) (Question, bool) {
	if step < 0 || step >= QuestionCount {
		return Question{}, false
	}
	return questionCatalog[step], true
}

// applyAnswer maps one answered question onto the profile update. Answers are
// copied verbatim; budget and location nest under the constraints map.
func applyAnswer(update *profiles.IntakeUpdate, questionID string, answer json.RawMessage) {
	switch questionID {
	case "grade":
		update.GradeLevel = append(update.GradeLevel[:0], answer...)
	case "province":
		update.Province = append(update.Province[:0], answer...)
	case "subjects":
		update.Subjects = append(update.Subjects[:0], answer...)
	case "interests":
		update.InterestTags = append(update.InterestTags[:0], answer...)
	case "budget":
		if update.Constraints == nil {
			update.Constraints = map[string]any{}
		}
		update.Constraints["fees_band"] = decodeAnswer(answer)
	case "location":
		if update.Constraints == nil {
			update.Constraints = map[string]any{}
		}
		update.Constraints["distance_km"] = decodeAnswer(answer)
	case "fields":
		update.TargetFields = append(update.TargetFields[:0], answer...)
	}
}

func decodeAnswer(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
