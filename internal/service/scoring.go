package service

import (
	"github.com/sbasnet/pscprep/internal/model"
)

// ScoreSummary is the outcome of scoring one attempt's answer set.
type ScoreSummary struct {
	ScoreObtained float64
	TotalScore    float64
	// AnsweredScore is the combined weight of non-skipped responses. It is the
	// denominator for Percentage, so skipping never depresses accuracy.
	AnsweredScore float64
	Percentage    float64
}

// ComputeScore scores an attempt from its recorded answers.
//
// For test mode, marks holds the per-question allocation and fixedTotal the
// upfront sum over the whole test. For practice mode (testMode=false) the
// total grows with each answered question instead. A question missing from
// the allocation map falls back to the default weight; allocation gaps are a
// data anomaly, not a caller error.
func ComputeScore(marks map[uint]float64, fixedTotal float64, testMode bool, answers []model.AttemptAnswer) ScoreSummary {
	summary := ScoreSummary{}
	if testMode {
		summary.TotalScore = fixedTotal
	}

	for _, ans := range answers {
		weight, ok := marks[ans.QuestionID]
		if !ok {
			weight = model.DefaultQuestionMarks
		}

		if !testMode {
			summary.TotalScore += weight
		}
		if !ans.IsSkipped {
			summary.AnsweredScore += weight
		}
		if ans.IsCorrect {
			summary.ScoreObtained += weight
		}
	}

	if summary.AnsweredScore > 0 {
		summary.Percentage = summary.ScoreObtained / summary.AnsweredScore * 100
	}
	return summary
}
