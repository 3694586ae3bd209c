package dto

import "time"

// LeaderboardQuery selects one scope. Branch is mandatory for writes but the
// read endpoint accepts it the same way.
type LeaderboardQuery struct {
	TimePeriod  string `form:"period" binding:"required,oneof=WEEKLY MONTHLY ALL_TIME"`
	BranchID    uint   `form:"branch_id" binding:"required"`
	SubBranchID *uint  `form:"sub_branch_id"`
	Limit       int    `form:"limit"`
}

type LeaderboardEntryDTO struct {
	UserID             uint      `json:"user_id"`
	Rank               int       `json:"rank"`
	PreviousRank       *int      `json:"previous_rank,omitempty"`
	RankChange         int       `json:"rank_change"`
	TotalScore         float64   `json:"total_score"`
	TestsCompleted     int       `json:"tests_completed"`
	AccuracyPercentage float64   `json:"accuracy_percentage"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RecalculateRequest triggers a manual recalculation for one branch, or all
// active branches when BranchID is omitted.
type RecalculateRequest struct {
	TimePeriod string `json:"period" binding:"omitempty,oneof=WEEKLY MONTHLY ALL_TIME"`
	BranchID   *uint  `json:"branch_id"`
}
