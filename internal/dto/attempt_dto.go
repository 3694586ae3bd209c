package dto

import "time"

// StartAttemptRequest opens a new session. MockTestID is omitted for practice
// mode.
type StartAttemptRequest struct {
	MockTestID *uint  `json:"mock_test_id"`
	Mode       string `json:"mode" binding:"required,oneof=MOCK_TEST PRACTICE"`
}

// SubmitAnswerRequest records one question response. A nil SelectedOptionID
// marks the question as skipped.
type SubmitAnswerRequest struct {
	QuestionID       uint  `json:"question_id" binding:"required"`
	SelectedOptionID *uint `json:"selected_option_id"`
	TimeTakenSeconds *int  `json:"time_taken_seconds"`
	MarkedForReview  bool  `json:"marked_for_review"`
}

// BulkSubmitRequest upserts a batch of answers for one attempt.
type BulkSubmitRequest struct {
	Answers []SubmitAnswerRequest `json:"answers" binding:"required,min=1,dive"`
}

type AnswerResponse struct {
	ID               uint  `json:"id"`
	QuestionID       uint  `json:"question_id"`
	SelectedOptionID *uint `json:"selected_option_id,omitempty"`
	IsCorrect        bool  `json:"is_correct"`
	IsSkipped        bool  `json:"is_skipped"`
	MarkedForReview  bool  `json:"marked_for_review"`
	TimeTakenSeconds *int  `json:"time_taken_seconds,omitempty"`
}

type AttemptResponse struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	MockTestID     *uint      `json:"mock_test_id,omitempty"`
	Mode           string     `json:"mode"`
	Status         string     `json:"status"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	ScoreObtained  float64    `json:"score_obtained"`
	TotalScore     float64    `json:"total_score"`
	Percentage     *float64   `json:"percentage,omitempty"`
	TotalTimeTaken *int       `json:"total_time_taken,omitempty"`
	TimeRemaining  *int       `json:"time_remaining,omitempty"`
}

// AttemptResultDTO is the completed-attempt view, answers included.
type AttemptResultDTO struct {
	AttemptResponse
	Answers []AnswerResponse `json:"answers,omitempty"`
}
