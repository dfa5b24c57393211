package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Verdict(t *testing.T) {
	tests := []struct {
		name     string
		score    Score
		expected Verdict
	}{
		{"all correct", Score{Correct: 5, Total: 5}, VerdictPerfect},
		{"four of five", Score{Correct: 4, Total: 5}, VerdictGreat},
		{"three of five", Score{Correct: 3, Total: 5}, VerdictGood},
		{"two of five", Score{Correct: 2, Total: 5}, VerdictNeedsPractice},
		{"none correct", Score{Correct: 0, Total: 5}, VerdictNeedsPractice},
		{"exactly eighty", Score{Correct: 4, Total: 5}, VerdictGreat},
		{"exactly sixty", Score{Correct: 3, Total: 5}, VerdictGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.score.Verdict())
		})
	}
}

func TestScore_Percent(t *testing.T) {
	assert.Equal(t, 0.0, Score{}.Percent())
	assert.Equal(t, 50.0, Score{Correct: 1, Total: 2}.Percent())
	assert.Equal(t, 100.0, Score{Correct: 3, Total: 3}.Percent())
}
