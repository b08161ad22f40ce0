package models

import "encoding/json"

// Question is a single multiple-choice record as persisted in the question file.
type Question struct {
	ID            int    `json:"id"`
	Subject       string `json:"subject"`
	Difficulty    string `json:"difficulty"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"` // "A".."D", not validated
	Explanation   string `json:"explanation"`

	Extra Extra `json:"-"`
}

var questionKeys = []string{
	"id", "subject", "difficulty", "question",
	"option_a", "option_b", "option_c", "option_d",
	"correct_answer", "explanation",
}

// questionFields has Question's layout without its methods.
type questionFields Question

func (q Question) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(questionFields(q), q.Extra)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var fields questionFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, questionKeys)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*q = Question(fields)
	return nil
}

// QuestionSet is the top-level document of the question file.
type QuestionSet struct {
	Questions []Question `json:"questions"`

	Extra Extra `json:"-"`
}

type questionSetFields QuestionSet

func (s QuestionSet) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(questionSetFields(s), s.Extra)
}

func (s *QuestionSet) UnmarshalJSON(data []byte) error {
	var fields questionSetFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, []string{"questions"})
	if err != nil {
		return err
	}
	fields.Extra = extra
	*s = QuestionSet(fields)
	return nil
}

// Credentials is the single admin login record.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SampleQuestion seeds an empty question file on first boot.
func SampleQuestion() Question {
	return Question{
		ID:            1,
		Subject:       "Quantitative Aptitude",
		Difficulty:    "Easy",
		Question:      "What is 15% of 200?",
		OptionA:       "20",
		OptionB:       "30",
		OptionC:       "40",
		OptionD:       "50",
		CorrectAnswer: "B",
		Explanation:   "15% of 200 = (15/100) × 200 = 30",
	}
}
