package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/model"
	"github.com/sbasnet/pscprep/internal/repository"
)

// AttemptService owns the attempt lifecycle: start, answer upserts, the
// scoring pass on completion, and the orchestration that follows it.
type AttemptService interface {
	Start(userID uint, req dto.StartAttemptRequest) (*dto.AttemptResponse, error)
	SubmitAnswer(userID, attemptID uint, req dto.SubmitAnswerRequest) (*dto.AnswerResponse, error)
	SubmitAnswers(userID, attemptID uint, req dto.BulkSubmitRequest) ([]dto.AnswerResponse, error)
	Complete(userID, attemptID uint) (*dto.AttemptResponse, error)
	Abandon(userID, attemptID uint) error
	GetResult(userID, attemptID uint) (*dto.AttemptResultDTO, error)
}

type attemptService struct {
	attemptRepo      repository.AttemptRepository
	answerRepo       repository.AnswerRepository
	questionRepo     repository.QuestionRepository
	mockTestRepo     repository.MockTestRepository
	notificationRepo repository.NotificationRepository
	leaderboardSvc   LeaderboardService
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	mockTestRepo repository.MockTestRepository,
	notificationRepo repository.NotificationRepository,
	leaderboardSvc LeaderboardService,
) AttemptService {
	return &attemptService{
		attemptRepo:      attemptRepo,
		answerRepo:       answerRepo,
		questionRepo:     questionRepo,
		mockTestRepo:     mockTestRepo,
		notificationRepo: notificationRepo,
		leaderboardSvc:   leaderboardSvc,
	}
}

func (s *attemptService) Start(userID uint, req dto.StartAttemptRequest) (*dto.AttemptResponse, error) {
	attempt := model.Attempt{
		UserID:    userID,
		StartTime: time.Now(),
		Status:    model.AttemptStatusInProgress,
		Mode:      req.Mode,
	}

	if req.MockTestID != nil {
		test, err := s.mockTestRepo.FindByID(*req.MockTestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTestNotFound
			}
			return nil, fmt.Errorf("loading mock test %d: %w", *req.MockTestID, err)
		}
		attempt.MockTestID = &test.ID
		attempt.Mode = model.AttemptModeMockTest
	} else {
		attempt.Mode = model.AttemptModePractice
	}

	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create attempt")
		return nil, err
	}

	if attempt.MockTestID != nil {
		if err := s.mockTestRepo.IncrementAttemptCount(*attempt.MockTestID); err != nil {
			log.Warn().Err(err).Uint("testID", *attempt.MockTestID).Msg("Failed to bump test attempt count")
		}
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("userID", userID).Str("mode", attempt.Mode).Msg("Attempt started")
	var resp dto.AttemptResponse
	copier.Copy(&resp, &attempt)
	return &resp, nil
}

// loadInProgress fetches the attempt and enforces ownership plus the
// IN_PROGRESS precondition shared by every answer-mutating operation.
func (s *attemptService) loadInProgress(userID, attemptID uint) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptForbidden
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return nil, ErrAttemptNotInProgress
	}
	return attempt, nil
}

func (s *attemptService) SubmitAnswer(userID, attemptID uint, req dto.SubmitAnswerRequest) (*dto.AnswerResponse, error) {
	attempt, err := s.loadInProgress(userID, attemptID)
	if err != nil {
		return nil, err
	}

	answer, err := s.buildAnswer(attempt.ID, req)
	if err != nil {
		return nil, err
	}

	if err := s.answerRepo.Upsert(answer); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Uint("questionID", req.QuestionID).Msg("Failed to upsert answer")
		return nil, err
	}

	if err := s.questionRepo.RefreshAttemptStats(req.QuestionID); err != nil {
		log.Warn().Err(err).Uint("questionID", req.QuestionID).Msg("Failed to refresh question stats")
	}

	var resp dto.AnswerResponse
	copier.Copy(&resp, answer)
	return &resp, nil
}

func (s *attemptService) SubmitAnswers(userID, attemptID uint, req dto.BulkSubmitRequest) ([]dto.AnswerResponse, error) {
	attempt, err := s.loadInProgress(userID, attemptID)
	if err != nil {
		return nil, err
	}

	// Referential integrity for the whole batch is checked up front; nothing
	// is written when any id is dangling.
	questionIDs := make([]uint, 0, len(req.Answers))
	optionIDs := make([]uint, 0, len(req.Answers))
	seen := make(map[uint]bool)
	for _, item := range req.Answers {
		if !seen[item.QuestionID] {
			seen[item.QuestionID] = true
			questionIDs = append(questionIDs, item.QuestionID)
		}
		if item.SelectedOptionID != nil {
			optionIDs = append(optionIDs, *item.SelectedOptionID)
		}
	}

	existing, err := s.questionRepo.FindExistingIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	if len(existing) != len(questionIDs) {
		return nil, ErrQuestionNotFound
	}

	optionsByID := make(map[uint]model.Option)
	if len(optionIDs) > 0 {
		options, err := s.questionRepo.FindOptionsByIDs(optionIDs)
		if err != nil {
			return nil, err
		}
		for _, opt := range options {
			optionsByID[opt.ID] = opt
		}
	}

	answers := make([]model.AttemptAnswer, 0, len(req.Answers))
	for _, item := range req.Answers {
		answer := model.AttemptAnswer{
			AttemptID:        attempt.ID,
			QuestionID:       item.QuestionID,
			TimeTakenSeconds: item.TimeTakenSeconds,
			MarkedForReview:  item.MarkedForReview,
			IsSkipped:        true,
		}
		if item.SelectedOptionID != nil {
			option, ok := optionsByID[*item.SelectedOptionID]
			if !ok {
				return nil, ErrOptionNotFound
			}
			if option.QuestionID != item.QuestionID {
				return nil, ErrOptionMismatch
			}
			answer.SelectedOptionID = item.SelectedOptionID
			answer.IsCorrect = option.IsCorrect
			answer.IsSkipped = false
		}
		answers = append(answers, answer)
	}

	saved, err := s.answerRepo.UpsertBatch(answers)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Int("count", len(answers)).Msg("Bulk answer upsert failed")
		return nil, err
	}

	for _, qid := range questionIDs {
		if err := s.questionRepo.RefreshAttemptStats(qid); err != nil {
			log.Warn().Err(err).Uint("questionID", qid).Msg("Failed to refresh question stats")
		}
	}

	resp := make([]dto.AnswerResponse, len(saved))
	for i := range saved {
		copier.Copy(&resp[i], &saved[i])
	}
	return resp, nil
}

// buildAnswer validates the referenced question and option, then derives the
// correctness and skipped flags. Correctness always comes from the option row.
func (s *attemptService) buildAnswer(attemptID uint, req dto.SubmitAnswerRequest) (*model.AttemptAnswer, error) {
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	answer := &model.AttemptAnswer{
		AttemptID:        attemptID,
		QuestionID:       question.ID,
		TimeTakenSeconds: req.TimeTakenSeconds,
		MarkedForReview:  req.MarkedForReview,
		IsSkipped:        true,
	}
	if req.SelectedOptionID == nil {
		return answer, nil
	}

	for _, option := range question.Options {
		if option.ID == *req.SelectedOptionID {
			answer.SelectedOptionID = req.SelectedOptionID
			answer.IsCorrect = option.IsCorrect
			answer.IsSkipped = false
			return answer, nil
		}
	}
	return nil, ErrOptionMismatch
}

// Complete runs the scoring pass and flips the attempt to its terminal
// COMPLETED state. A second call is rejected, never silently recomputed.
func (s *attemptService) Complete(userID, attemptID uint) (*dto.AttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithTest(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptForbidden
	}
	switch attempt.Status {
	case model.AttemptStatusCompleted:
		return nil, ErrAttemptAlreadyCompleted
	case model.AttemptStatusAbandoned:
		return nil, ErrAttemptNotInProgress
	}

	if attempt.EndTime == nil {
		now := time.Now()
		attempt.EndTime = &now
	}

	// One snapshot read of the full answer set; scoring never mixes reads
	// with the upsert path.
	answers, err := s.attemptRepo.FindAnswers(attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("loading answers for attempt %d: %w", attempt.ID, err)
	}

	var marks map[uint]float64
	var fixedTotal float64
	testMode := attempt.MockTest != nil
	if testMode {
		marks, fixedTotal = attempt.MockTest.MarkAllocation()
	}

	summary := ComputeScore(marks, fixedTotal, testMode, answers)
	attempt.ScoreObtained = summary.ScoreObtained
	attempt.TotalScore = summary.TotalScore
	attempt.Percentage = &summary.Percentage
	if attempt.EndTime != nil {
		elapsed := int(attempt.EndTime.Sub(attempt.StartTime).Seconds())
		attempt.TotalTimeTaken = &elapsed
	}

	if err := s.attemptRepo.SaveCompletion(attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to persist attempt completion")
		return nil, err
	}
	attempt.Status = model.AttemptStatusCompleted
	log.Info().
		Uint("attemptID", attempt.ID).
		Float64("score", summary.ScoreObtained).
		Float64("percentage", summary.Percentage).
		Msg("Attempt completed")

	s.afterCompletion(attempt, answers)

	var resp dto.AttemptResponse
	copier.Copy(&resp, attempt)
	return &resp, nil
}

// afterCompletion is the explicit post-completion chain: all-time leaderboard
// fast path, then the completion notification. Failures here are logged and
// never unwind the already-persisted completion.
func (s *attemptService) afterCompletion(attempt *model.Attempt, answers []model.AttemptAnswer) {
	answered := 0
	for _, ans := range answers {
		if !ans.IsSkipped {
			answered++
		}
	}
	// Zero-engagement sessions stay off the leaderboard entirely.
	if answered > 0 && attempt.MockTest != nil {
		err := s.leaderboardSvc.UpdateScore(attempt.UserID, attempt.MockTest.BranchID, attempt.ScoreObtained)
		if err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("All-time leaderboard update failed")
		}
	}

	notification := &model.Notification{
		UserID:    attempt.UserID,
		Type:      model.NotificationAttemptCompleted,
		TitleEN:   "Attempt completed",
		TitleNP:   "प्रयास पूरा भयो",
		MessageEN: fmt.Sprintf("You scored %.2f out of %.2f.", attempt.ScoreObtained, attempt.TotalScore),
		MessageNP: fmt.Sprintf("तपाईंले %.2f मध्ये %.2f अंक प्राप्त गर्नुभयो।", attempt.TotalScore, attempt.ScoreObtained),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		log.Warn().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to create completion notification")
	}
}

func (s *attemptService) Abandon(userID, attemptID uint) error {
	attempt, err := s.loadInProgress(userID, attemptID)
	if err != nil {
		return err
	}
	if err := s.attemptRepo.MarkAbandoned(attempt.ID, time.Now()); err != nil {
		return err
	}
	log.Info().Uint("attemptID", attempt.ID).Msg("Attempt abandoned")
	return nil
}

func (s *attemptService) GetResult(userID, attemptID uint) (*dto.AttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptForbidden
	}
	if attempt.Status != model.AttemptStatusCompleted {
		return nil, ErrAttemptNotCompleted
	}

	var resp dto.AttemptResultDTO
	copier.Copy(&resp.AttemptResponse, attempt)
	resp.Answers = make([]dto.AnswerResponse, len(attempt.Answers))
	for i := range attempt.Answers {
		copier.Copy(&resp.Answers[i], &attempt.Answers[i])
	}
	return &resp, nil
}
