package service

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/model"
	"github.com/sbasnet/pscprep/internal/repository"
)

// StatsService maintains the platform-wide counter aggregate. Refresh is a
// full idempotent recompute of the singleton row; nothing increments it ad
// hoc, so a missed run is corrected by the next one.
type StatsService interface {
	Refresh() error
	Get() (*dto.PlatformStatsDTO, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Refresh() error {
	stats, err := s.statsRepo.GetOrInit()
	if err != nil {
		return err
	}

	counts := []struct {
		target *int
		load   func() (int64, error)
	}{
		{&stats.TotalQuestionsPublic, func() (int64, error) {
			return s.statsRepo.CountQuestionsByStatus(model.QuestionStatusPublic)
		}},
		{&stats.TotalQuestionsPending, func() (int64, error) {
			return s.statsRepo.CountQuestionsByStatus(model.QuestionStatusPendingReview)
		}},
		{&stats.TotalAttemptsStarted, s.statsRepo.CountAttempts},
		{&stats.TotalAttemptsDone, func() (int64, error) {
			return s.statsRepo.CountAttemptsByStatus(model.AttemptStatusCompleted)
		}},
		{&stats.TotalAnswersSubmitted, s.statsRepo.CountAnswers},
		{&stats.QuestionsAddedToday, func() (int64, error) {
			return s.statsRepo.CountQuestionsSince(time.Now().Add(-24 * time.Hour))
		}},
	}
	for _, c := range counts {
		value, err := c.load()
		if err != nil {
			return err
		}
		*c.target = int(value)
	}

	if err := s.statsRepo.Save(stats); err != nil {
		return err
	}
	log.Info().Int("public_questions", stats.TotalQuestionsPublic).Msg("Platform stats refreshed")
	return nil
}

func (s *statsService) Get() (*dto.PlatformStatsDTO, error) {
	stats, err := s.statsRepo.GetOrInit()
	if err != nil {
		return nil, err
	}
	var resp dto.PlatformStatsDTO
	copier.Copy(&resp, stats)
	return &resp, nil
}
