package service

import (
	"math"
	"testing"

	"github.com/sbasnet/pscprep/internal/model"
)

func answer(questionID uint, correct, skipped bool) model.AttemptAnswer {
	return model.AttemptAnswer{QuestionID: questionID, IsCorrect: correct, IsSkipped: skipped}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeScoreTestMode(t *testing.T) {
	tests := []struct {
		name       string
		marks      map[uint]float64
		fixedTotal float64
		answers    []model.AttemptAnswer
		want       ScoreSummary
	}{
		{
			name:       "weighted with one wrong and one skipped",
			marks:      map[uint]float64{1: 2, 2: 2, 3: 1},
			fixedTotal: 5,
			answers: []model.AttemptAnswer{
				answer(1, true, false),
				answer(2, false, false),
				answer(3, false, true),
			},
			want: ScoreSummary{ScoreObtained: 2, TotalScore: 5, AnsweredScore: 4, Percentage: 50},
		},
		{
			name:       "all skipped yields zero percentage not NaN",
			marks:      map[uint]float64{1: 2, 2: 3},
			fixedTotal: 5,
			answers: []model.AttemptAnswer{
				answer(1, false, true),
				answer(2, false, true),
			},
			want: ScoreSummary{ScoreObtained: 0, TotalScore: 5, AnsweredScore: 0, Percentage: 0},
		},
		{
			name:       "no answers at all",
			marks:      map[uint]float64{1: 2},
			fixedTotal: 2,
			answers:    nil,
			want:       ScoreSummary{TotalScore: 2},
		},
		{
			name:       "missing allocation falls back to default weight",
			marks:      map[uint]float64{1: 3},
			fixedTotal: 4,
			answers: []model.AttemptAnswer{
				answer(1, true, false),
				answer(99, true, false),
			},
			want: ScoreSummary{ScoreObtained: 4, TotalScore: 4, AnsweredScore: 4, Percentage: 100},
		},
		{
			name:       "total stays fixed even when fewer questions answered",
			marks:      map[uint]float64{1: 1, 2: 1, 3: 1, 4: 1},
			fixedTotal: 4,
			answers: []model.AttemptAnswer{
				answer(1, true, false),
			},
			want: ScoreSummary{ScoreObtained: 1, TotalScore: 4, AnsweredScore: 1, Percentage: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.marks, tt.fixedTotal, true, tt.answers)
			if !almostEqual(got.ScoreObtained, tt.want.ScoreObtained) ||
				!almostEqual(got.TotalScore, tt.want.TotalScore) ||
				!almostEqual(got.AnsweredScore, tt.want.AnsweredScore) ||
				!almostEqual(got.Percentage, tt.want.Percentage) {
				t.Errorf("ComputeScore() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeScorePracticeMode(t *testing.T) {
	// Practice has no upfront allocation; every answer contributes the default
	// weight and the total accumulates as answers arrive.
	answers := []model.AttemptAnswer{
		answer(1, true, false),
		answer(2, false, false),
		answer(3, true, false),
		answer(4, false, true),
	}

	got := ComputeScore(nil, 0, false, answers)

	if !almostEqual(got.TotalScore, 4) {
		t.Errorf("TotalScore = %v, want 4", got.TotalScore)
	}
	if !almostEqual(got.ScoreObtained, 2) {
		t.Errorf("ScoreObtained = %v, want 2", got.ScoreObtained)
	}
	if !almostEqual(got.AnsweredScore, 3) {
		t.Errorf("AnsweredScore = %v, want 3", got.AnsweredScore)
	}
	// 2 correct out of 3 answered
	if !almostEqual(got.Percentage, 200.0/3.0) {
		t.Errorf("Percentage = %v, want %v", got.Percentage, 200.0/3.0)
	}
}

func TestComputeScoreSkipDoesNotDepressAccuracy(t *testing.T) {
	marks := map[uint]float64{1: 1, 2: 1, 3: 1}
	answers := []model.AttemptAnswer{
		answer(1, true, false),
		answer(2, true, false),
		answer(3, false, true),
	}

	got := ComputeScore(marks, 3, true, answers)

	if !almostEqual(got.Percentage, 100) {
		t.Errorf("Percentage = %v, want 100 (skipped question must not count against accuracy)", got.Percentage)
	}
}
