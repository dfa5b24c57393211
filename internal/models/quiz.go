package models

import "github.com/google/uuid"

type QuestionType string

const (
	MultipleChoice      QuestionType = "multiple-choice"
	FillInBlanks        QuestionType = "fill-in-blanks"
	SequenceArrangement QuestionType = "sequence-arrangement"
)

func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, FillInBlanks, SequenceArrangement:
		return true
	}
	return false
}

type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type BlankItem struct {
	ID     string `json:"id"`
	Answer string `json:"answer"` // ground truth, compared trimmed and lower-cased
}

// SequenceItem holds a 1-based rank. Ranks must be unique within a question;
// this is checked by draft validation, not by the type.
type SequenceItem struct {
	ID              string `json:"id"`
	Text            string `json:"text"`
	CorrectPosition int    `json:"correct_position"`
}

type QuestionImage struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Path string `json:"path,omitempty"` // blob store key; empty for inline data URLs
}

type MultipleChoiceBody struct {
	Options          []Option `json:"options"`
	IsMultipleAnswer bool     `json:"is_multiple_answer"`
}

type FillBlanksBody struct {
	Blanks []BlankItem `json:"blanks"`
}

type SequenceBody struct {
	Items []SequenceItem `json:"items"`
	// Ranks revealed to the test-taker; items at these ranks always score correct.
	PreFilledPositions []int `json:"pre_filled_positions"`
}

// Question is a tagged variant: exactly one body pointer is non-nil and it
// matches Type. SetType maintains that invariant when the author switches kind.
type Question struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Type        QuestionType   `json:"type" validate:"question_type"`
	CodeSnippet string         `json:"code_snippet,omitempty"`
	Image       *QuestionImage `json:"image,omitempty"`

	MultipleChoice *MultipleChoiceBody `json:"multiple_choice,omitempty"`
	FillBlanks     *FillBlanksBody     `json:"fill_blanks,omitempty"`
	Sequence       *SequenceBody       `json:"sequence,omitempty"`
}

// NewQuestion returns an empty question with the body slot for t initialized.
func NewQuestion(t QuestionType) Question {
	q := Question{ID: uuid.NewString(), Type: t}
	q.initBody()
	return q
}

// SetType switches the variant and clears the fields owned by other variants.
func (q *Question) SetType(t QuestionType) {
	if q.Type == t {
		return
	}
	q.Type = t
	q.MultipleChoice = nil
	q.FillBlanks = nil
	q.Sequence = nil
	q.initBody()
}

func (q *Question) initBody() {
	switch q.Type {
	case MultipleChoice:
		q.MultipleChoice = &MultipleChoiceBody{Options: []Option{}}
	case FillInBlanks:
		q.FillBlanks = &FillBlanksBody{Blanks: []BlankItem{}}
	case SequenceArrangement:
		q.Sequence = &SequenceBody{Items: []SequenceItem{}, PreFilledPositions: []int{}}
	}
}

// CorrectOptionIDs returns the ids of options marked correct, or nil for
// non-choice questions.
func (q *Question) CorrectOptionIDs() map[string]struct{} {
	if q.MultipleChoice == nil {
		return nil
	}
	ids := make(map[string]struct{})
	for _, o := range q.MultipleChoice.Options {
		if o.IsCorrect {
			ids[o.ID] = struct{}{}
		}
	}
	return ids
}

func (q Question) Clone() Question {
	out := q
	if q.Image != nil {
		img := *q.Image
		out.Image = &img
	}
	if q.MultipleChoice != nil {
		body := MultipleChoiceBody{
			Options:          append([]Option(nil), q.MultipleChoice.Options...),
			IsMultipleAnswer: q.MultipleChoice.IsMultipleAnswer,
		}
		out.MultipleChoice = &body
	}
	if q.FillBlanks != nil {
		body := FillBlanksBody{Blanks: append([]BlankItem(nil), q.FillBlanks.Blanks...)}
		out.FillBlanks = &body
	}
	if q.Sequence != nil {
		body := SequenceBody{
			Items:              append([]SequenceItem(nil), q.Sequence.Items...),
			PreFilledPositions: append([]int(nil), q.Sequence.PreFilledPositions...),
		}
		out.Sequence = &body
	}
	return out
}

// Quiz owns its questions exclusively; every hand-off across a module
// boundary goes through Clone so no two holders share mutable state.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Password  string     `json:"password,omitempty"`
	Questions []Question `json:"questions" validate:"dive"`
}

func (z Quiz) Clone() Quiz {
	out := z
	out.Questions = make([]Question, len(z.Questions))
	for i, q := range z.Questions {
		out.Questions[i] = q.Clone()
	}
	return out
}

// Question looks up a question by id within the quiz.
func (z *Quiz) Question(id string) (*Question, bool) {
	for i := range z.Questions {
		if z.Questions[i].ID == id {
			return &z.Questions[i], true
		}
	}
	return nil, false
}
