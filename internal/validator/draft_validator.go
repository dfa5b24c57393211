package validator

import (
	"fmt"
	"strings"

	"github.com/quizforge/quiz-service/internal/models"
)

// DraftValidator checks a draft quiz before it may be saved. It returns
// human-readable messages, one per violated rule; an empty result means the
// draft is save-able.
type DraftValidator struct{}

func NewDraftValidator() *DraftValidator {
	return &DraftValidator{}
}

// Validate is pure: it never mutates the draft and has no side effects.
func (v *DraftValidator) Validate(quiz models.Quiz) []string {
	var errs []string

	if strings.TrimSpace(quiz.Title) == "" {
		errs = append(errs, "Quiz title is required")
	}
	if len(quiz.Questions) == 0 {
		errs = append(errs, "At least one question is required")
	}

	for i, question := range quiz.Questions {
		num := i + 1

		if strings.TrimSpace(question.Text) == "" {
			errs = append(errs, fmt.Sprintf("Question %d text is required", num))
		}

		switch question.Type {
		case models.MultipleChoice:
			errs = append(errs, v.checkMultipleChoice(num, question.MultipleChoice)...)
		case models.FillInBlanks:
			errs = append(errs, v.checkFillBlanks(num, question.FillBlanks)...)
		case models.SequenceArrangement:
			errs = append(errs, v.checkSequence(num, question.Sequence)...)
		default:
			errs = append(errs, fmt.Sprintf("Question %d has an unknown type %q", num, question.Type))
		}
	}

	return errs
}

func (v *DraftValidator) checkMultipleChoice(num int, body *models.MultipleChoiceBody) []string {
	var errs []string
	if body == nil || len(body.Options) < 2 {
		errs = append(errs, fmt.Sprintf("Question %d must have at least 2 options", num))
	}
	if body != nil {
		hasCorrect := false
		for _, option := range body.Options {
			if option.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			errs = append(errs, fmt.Sprintf("Question %d must have at least one correct answer", num))
		}
	}
	return errs
}

func (v *DraftValidator) checkFillBlanks(num int, body *models.FillBlanksBody) []string {
	if body == nil || len(body.Blanks) == 0 {
		return []string{fmt.Sprintf("Question %d must have at least one blank to fill", num)}
	}
	for _, blank := range body.Blanks {
		if strings.TrimSpace(blank.Answer) == "" {
			return []string{fmt.Sprintf("Question %d has empty answers for blanks", num)}
		}
	}
	return nil
}

func (v *DraftValidator) checkSequence(num int, body *models.SequenceBody) []string {
	if body == nil || len(body.Items) < 2 {
		return []string{fmt.Sprintf("Question %d must have at least 2 sequence items", num)}
	}

	var errs []string
	for _, item := range body.Items {
		if strings.TrimSpace(item.Text) == "" {
			errs = append(errs, fmt.Sprintf("Question %d has empty sequence items", num))
			break
		}
	}

	seen := make(map[int]bool, len(body.Items))
	for _, item := range body.Items {
		if seen[item.CorrectPosition] {
			errs = append(errs, fmt.Sprintf("Question %d has duplicate positions in the sequence", num))
			break
		}
		seen[item.CorrectPosition] = true
	}
	return errs
}
