package repository

import (
	"time"

	"github.com/sbasnet/pscprep/internal/model"
	"gorm.io/gorm"
)

// UserAggregate is one user's grouped totals over qualifying completed
// attempts, the raw material for rank assignment.
type UserAggregate struct {
	UserID         uint
	TotalScore     float64
	TestsCompleted int
	AvgAccuracy    float64
}

type LeaderboardRepository interface {
	FindScope(period model.TimePeriod, branchID uint, subBranchID *uint) ([]model.LeaderboardEntry, error)
	ReplaceScope(period model.TimePeriod, branchID uint, subBranchID *uint, entries []model.LeaderboardEntry) error
	AggregateQualifying(since *time.Time, branchID uint, subBranchID *uint) ([]UserAggregate, error)
	IncrementAllTime(userID, branchID uint, scoreDelta float64) error
	TopOfScope(period model.TimePeriod, branchID uint, subBranchID *uint, limit int) ([]model.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func scopeQuery(db *gorm.DB, period model.TimePeriod, branchID uint, subBranchID *uint) *gorm.DB {
	query := db.Where("time_period = ? AND branch_id = ?", period, branchID)
	if subBranchID != nil {
		return query.Where("sub_branch_id = ?", *subBranchID)
	}
	return query.Where("sub_branch_id IS NULL")
}

func (r *leaderboardRepository) FindScope(period model.TimePeriod, branchID uint, subBranchID *uint) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := scopeQuery(r.db.Model(&model.LeaderboardEntry{}), period, branchID, subBranchID).
		Order("rank ASC").
		Find(&entries).Error
	return entries, err
}

// ReplaceScope swaps the full entry set for one scope: delete then bulk insert
// inside a single transaction, so readers never observe an emptied scope.
func (r *leaderboardRepository) ReplaceScope(period model.TimePeriod, branchID uint, subBranchID *uint, entries []model.LeaderboardEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := scopeQuery(tx, period, branchID, subBranchID).
			Delete(&model.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// AggregateQualifying groups completed attempts by user within the window and
// branch scope. Attempts with zero non-skipped answers are excluded via the
// EXISTS subquery, and ties are broken deterministically by user id.
func (r *leaderboardRepository) AggregateQualifying(since *time.Time, branchID uint, subBranchID *uint) ([]UserAggregate, error) {
	var results []UserAggregate
	query := r.db.Model(&model.Attempt{}).
		Select("attempts.user_id AS user_id, "+
			"SUM(attempts.score_obtained) AS total_score, "+
			"COUNT(attempts.id) AS tests_completed, "+
			"AVG(attempts.percentage) AS avg_accuracy").
		Joins("JOIN mock_tests ON mock_tests.id = attempts.mock_test_id").
		Where("attempts.status = ?", model.AttemptStatusCompleted).
		Where("attempts.deleted_at IS NULL").
		Where("mock_tests.branch_id = ?", branchID).
		Where("EXISTS (SELECT 1 FROM attempt_answers "+
			"WHERE attempt_answers.attempt_id = attempts.id "+
			"AND attempt_answers.is_skipped = false "+
			"AND attempt_answers.deleted_at IS NULL)")
	if subBranchID != nil {
		query = query.Where("mock_tests.sub_branch_id = ?", *subBranchID)
	}
	if since != nil {
		query = query.Where("attempts.start_time >= ?", *since)
	}
	err := query.Group("attempts.user_id").
		Order("total_score DESC, avg_accuracy DESC, user_id ASC").
		Scan(&results).Error
	return results, err
}

// IncrementAllTime is the running-total fast path for the ALL_TIME bucket:
// create the entry if missing, then add to score and completion count. Rank is
// never touched here; the next full recalculation corrects it.
func (r *leaderboardRepository) IncrementAllTime(userID, branchID uint, scoreDelta float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var entry model.LeaderboardEntry
		err := tx.Where("user_id = ? AND time_period = ? AND branch_id = ? AND sub_branch_id IS NULL",
			userID, model.PeriodAllTime, branchID).
			First(&entry).Error
		if err == gorm.ErrRecordNotFound {
			entry = model.LeaderboardEntry{
				UserID:     userID,
				TimePeriod: model.PeriodAllTime,
				BranchID:   branchID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		return tx.Model(&model.LeaderboardEntry{}).
			Where("id = ?", entry.ID).
			Updates(map[string]interface{}{
				"total_score":     gorm.Expr("total_score + ?", scoreDelta),
				"tests_completed": gorm.Expr("tests_completed + 1"),
			}).Error
	})
}

func (r *leaderboardRepository) TopOfScope(period model.TimePeriod, branchID uint, subBranchID *uint, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := scopeQuery(r.db.Model(&model.LeaderboardEntry{}), period, branchID, subBranchID).
		Order("rank ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
