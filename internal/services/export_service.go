package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService writes a quiz with its answer key to an xlsx workbook, for
// authors who want an offline copy of what they built.
type ExportService struct {
	logger utils.Logger
}

func NewExportService(logger utils.Logger) *ExportService {
	return &ExportService{logger: logger.With("component", "export_service")}
}

var exportHeader = []string{"#", "Type", "Question", "Answer Key", "Details"}

// ExportQuiz renders one worksheet named after the quiz, one row per question.
func (s *ExportService) ExportQuiz(quiz models.Quiz) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(quiz.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name export sheet: %w", err)
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for i, question := range quiz.Questions {
		row := []interface{}{
			i + 1,
			string(question.Type),
			question.Text,
			answerKey(question),
			details(question),
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write question %d: %w", i+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render export workbook: %w", err)
	}

	s.logger.Info("quiz exported", "quiz_id", quiz.ID, "questions", len(quiz.Questions))
	return buf.Bytes(), nil
}

func answerKey(question models.Question) string {
	switch question.Type {
	case models.MultipleChoice:
		var correct []string
		for _, o := range question.MultipleChoice.Options {
			if o.IsCorrect {
				correct = append(correct, o.Text)
			}
		}
		return strings.Join(correct, "; ")
	case models.FillInBlanks:
		answers := make([]string, len(question.FillBlanks.Blanks))
		for i, b := range question.FillBlanks.Blanks {
			answers[i] = b.Answer
		}
		return strings.Join(answers, "; ")
	case models.SequenceArrangement:
		items := append([]models.SequenceItem(nil), question.Sequence.Items...)
		sort.Slice(items, func(i, j int) bool {
			return items[i].CorrectPosition < items[j].CorrectPosition
		})
		texts := make([]string, len(items))
		for i, item := range items {
			texts[i] = item.Text
		}
		return strings.Join(texts, " -> ")
	}
	return ""
}

func details(question models.Question) string {
	switch question.Type {
	case models.MultipleChoice:
		if question.MultipleChoice.IsMultipleAnswer {
			return fmt.Sprintf("%d options, multiple answers", len(question.MultipleChoice.Options))
		}
		return fmt.Sprintf("%d options, single answer", len(question.MultipleChoice.Options))
	case models.FillInBlanks:
		return fmt.Sprintf("%d blanks", len(question.FillBlanks.Blanks))
	case models.SequenceArrangement:
		if len(question.Sequence.PreFilledPositions) > 0 {
			return fmt.Sprintf("%d items, %d pre-filled", len(question.Sequence.Items), len(question.Sequence.PreFilledPositions))
		}
		return fmt.Sprintf("%d items", len(question.Sequence.Items))
	}
	return ""
}

// sheetName keeps titles within excelize's 31-character sheet limit and
// strips the characters Excel rejects.
func sheetName(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, title)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = "Quiz"
	}
	if len(cleaned) > 31 {
		cleaned = cleaned[:31]
	}
	return cleaned
}
