package repository

import (
	"time"

	"github.com/sbasnet/pscprep/internal/model"
	"gorm.io/gorm"
)

type StatsRepository interface {
	GetOrInit() (*model.PlatformStats, error)
	Save(stats *model.PlatformStats) error
	CountQuestionsByStatus(status string) (int64, error)
	CountQuestionsSince(since time.Time) (int64, error)
	CountAttempts() (int64, error)
	CountAttemptsByStatus(status string) (int64, error)
	CountAnswers() (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// GetOrInit loads the singleton stats row, creating it under its well-known
// key on first use.
func (r *statsRepository) GetOrInit() (*model.PlatformStats, error) {
	var stats model.PlatformStats
	err := r.db.First(&stats, model.PlatformStatsKey).Error
	if err == gorm.ErrRecordNotFound {
		stats = model.PlatformStats{ID: model.PlatformStatsKey}
		if err := r.db.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) Save(stats *model.PlatformStats) error {
	return r.db.Save(stats).Error
}

func (r *statsRepository) CountQuestionsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountQuestionsSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountAttempts() (int64, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountAttemptsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountAnswers() (int64, error) {
	var count int64
	err := r.db.Model(&model.AttemptAnswer{}).Count(&count).Error
	return count, err
}
