package model

import (
	"time"
)

type TimePeriod string

const (
	PeriodWeekly  TimePeriod = "WEEKLY"
	PeriodMonthly TimePeriod = "MONTHLY"
	PeriodAllTime TimePeriod = "ALL_TIME"
)

// AllPeriods lists every leaderboard window, in recalculation order.
var AllPeriods = []TimePeriod{PeriodWeekly, PeriodMonthly, PeriodAllTime}

// WindowStart resolves the rolling lookback for a period relative to now.
// Weekly and monthly are sliding 7/30 day windows, not calendar boundaries.
// ALL_TIME has no start and returns nil.
func (p TimePeriod) WindowStart(now time.Time) *time.Time {
	switch p {
	case PeriodWeekly:
		start := now.AddDate(0, 0, -7)
		return &start
	case PeriodMonthly:
		start := now.AddDate(0, 0, -30)
		return &start
	}
	return nil
}

// LeaderboardEntry is one user's standing within a (time_period, branch,
// sub_branch) scope. The set for a scope is deleted and rebuilt atomically on
// each recalculation; only the ALL_TIME running-total fast path mutates
// entries in place.
type LeaderboardEntry struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	UserID             uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_lb_scope_user"`
	TimePeriod         TimePeriod `json:"time_period" gorm:"not null;uniqueIndex:idx_lb_scope_user;index:idx_lb_rank"`
	BranchID           uint       `json:"branch_id" gorm:"not null;uniqueIndex:idx_lb_scope_user;index:idx_lb_rank"`
	SubBranchID        *uint      `json:"sub_branch_id,omitempty" gorm:"uniqueIndex:idx_lb_scope_user"`
	Rank               int        `json:"rank" gorm:"not null;index:idx_lb_rank"`
	PreviousRank       *int       `json:"previous_rank,omitempty"` // snapshot from the prior recalculation
	TotalScore         float64    `json:"total_score" gorm:"not null"`
	TestsCompleted     int        `json:"tests_completed" gorm:"default:0"`
	AccuracyPercentage float64    `json:"accuracy_percentage" gorm:"not null"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// RankChange is previous_rank - rank: positive means the user moved up.
// New entrants (no previous rank) report 0.
func (e *LeaderboardEntry) RankChange() int {
	if e.PreviousRank == nil {
		return 0
	}
	return *e.PreviousRank - e.Rank
}
