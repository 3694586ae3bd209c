package dto

import "time"

// OptionDTO deliberately omits correctness; results expose it separately once
// the attempt is completed.
type OptionDTO struct {
	ID           uint   `json:"id"`
	TextEN       string `json:"text_en"`
	TextNP       string `json:"text_np"`
	DisplayOrder int    `json:"display_order"`
}

type QuestionDTO struct {
	ID         uint        `json:"id"`
	TextEN     string      `json:"text_en"`
	TextNP     string      `json:"text_np"`
	CategoryID uint        `json:"category_id"`
	Difficulty *string     `json:"difficulty,omitempty"`
	Status     string      `json:"status,omitempty"`
	Options    []OptionDTO `json:"options,omitempty"`
}

// TestQuestionDTO carries the question plus its slot in the test.
type TestQuestionDTO struct {
	QuestionOrder  int         `json:"question_order"`
	MarksAllocated float64     `json:"marks_allocated"`
	Question       QuestionDTO `json:"question"`
}

type TestSummaryDTO struct {
	ID              uint      `json:"id"`
	TitleEN         string    `json:"title_en"`
	TitleNP         string    `json:"title_np"`
	Slug            string    `json:"slug"`
	BranchID        uint      `json:"branch_id"`
	SubBranchID     *uint     `json:"sub_branch_id,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	PassPercentage  float64   `json:"pass_percentage"`
	QuestionCount   int       `json:"question_count"`
	AttemptCount    int       `json:"attempt_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type TestDetailDTO struct {
	TestSummaryDTO
	DescriptionEN *string           `json:"description_en,omitempty"`
	TestQuestions []TestQuestionDTO `json:"test_questions,omitempty"`
}
