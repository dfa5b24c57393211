package models

type Verdict string

const (
	VerdictPerfect       Verdict = "perfect"
	VerdictGreat         Verdict = "great"
	VerdictGood          Verdict = "good"
	VerdictNeedsPractice Verdict = "needs practice"
)

type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

func (s Score) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

// Verdict maps a score to its qualitative band. Thresholds are inclusive
// lower bounds evaluated in descending order.
func (s Score) Verdict() Verdict {
	p := s.Percent()
	switch {
	case p >= 100:
		return VerdictPerfect
	case p >= 80:
		return VerdictGreat
	case p >= 60:
		return VerdictGood
	default:
		return VerdictNeedsPractice
	}
}
