package models

// UnansweredPosition is the sentinel rank for a sequence item the user has
// not placed yet.
const UnansweredPosition = 0

// UserAnswer is the per-question response of one quiz-taking session. It is
// never persisted; the session discards it on completion.
type UserAnswer struct {
	QuestionID        string            `json:"question_id"`
	SelectedOptionIDs []string          `json:"selected_option_ids,omitempty"`
	BlankAnswers      map[string]string `json:"blank_answers,omitempty"`      // blank id -> typed value
	SequencePositions map[string]int    `json:"sequence_positions,omitempty"` // item id -> chosen rank
}

func NewUserAnswer(questionID string) UserAnswer {
	return UserAnswer{
		QuestionID:        questionID,
		BlankAnswers:      map[string]string{},
		SequencePositions: map[string]int{},
	}
}

func (a UserAnswer) Clone() UserAnswer {
	out := a
	out.SelectedOptionIDs = append([]string(nil), a.SelectedOptionIDs...)
	out.BlankAnswers = make(map[string]string, len(a.BlankAnswers))
	for k, v := range a.BlankAnswers {
		out.BlankAnswers[k] = v
	}
	out.SequencePositions = make(map[string]int, len(a.SequencePositions))
	for k, v := range a.SequencePositions {
		out.SequencePositions[k] = v
	}
	return out
}

// HasSelected reports whether the option is part of the current selection.
func (a UserAnswer) HasSelected(optionID string) bool {
	for _, id := range a.SelectedOptionIDs {
		if id == optionID {
			return true
		}
	}
	return false
}
