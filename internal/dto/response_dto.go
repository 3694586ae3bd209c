package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// BranchDTO is used for the branch listing.
type BranchDTO struct {
	ID             uint           `json:"id"`
	NameEN         string         `json:"name_en"`
	NameNP         string         `json:"name_np"`
	Slug           string         `json:"slug"`
	HasSubBranches bool           `json:"has_sub_branches"`
	SubBranches    []SubBranchDTO `json:"sub_branches,omitempty"`
}

type SubBranchDTO struct {
	ID     uint   `json:"id"`
	NameEN string `json:"name_en"`
	NameNP string `json:"name_np"`
	Slug   string `json:"slug"`
}

// PlatformStatsDTO is the public dashboard aggregate.
type PlatformStatsDTO struct {
	TotalQuestionsPublic  int       `json:"total_questions_public"`
	TotalQuestionsPending int       `json:"total_questions_pending"`
	TotalAttemptsStarted  int       `json:"total_attempts_started"`
	TotalAttemptsDone     int       `json:"total_attempts_completed"`
	TotalAnswersSubmitted int       `json:"total_answers_submitted"`
	QuestionsAddedToday   int       `json:"questions_added_today"`
	UpdatedAt             time.Time `json:"updated_at"`
}
