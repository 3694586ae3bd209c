package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/model"
	"github.com/sbasnet/pscprep/internal/repository"
)

// AdminTestService covers test and question administration: assembling tests
// from bank questions, random generation per category, and adding bank
// questions.
type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestDetailDTO, error)
	GenerateQuestions(testID uint, req dto.GenerateTestDTO) (int, error)
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionDTO, error)
}

type adminTestService struct {
	mockTestRepo repository.MockTestRepository
	questionRepo repository.QuestionRepository
	testService  TestService
}

func NewAdminTestService(
	mockTestRepo repository.MockTestRepository,
	questionRepo repository.QuestionRepository,
	testService TestService,
) AdminTestService {
	return &adminTestService{
		mockTestRepo: mockTestRepo,
		questionRepo: questionRepo,
		testService:  testService,
	}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestDetailDTO, error) {
	questionIDs := make([]uint, len(req.Questions))
	for i, q := range req.Questions {
		questionIDs[i] = q.QuestionID
	}
	existing, err := s.questionRepo.FindExistingIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	if len(existing) != len(questionIDs) {
		return nil, ErrQuestionNotFound
	}

	test := model.MockTest{
		TitleEN:         req.TitleEN,
		TitleNP:         req.TitleNP,
		Slug:            req.Slug,
		DescriptionEN:   req.DescriptionEN,
		BranchID:        req.BranchID,
		SubBranchID:     req.SubBranchID,
		DurationMinutes: req.DurationMinutes,
		PassPercentage:  req.PassPercentage,
		IsPublic:        true,
		IsActive:        true,
	}
	if test.PassPercentage == 0 {
		test.PassPercentage = 40
	}
	for _, q := range req.Questions {
		marks := q.MarksAllocated
		if marks == 0 {
			marks = model.DefaultQuestionMarks
		}
		test.TestQuestions = append(test.TestQuestions, model.MockTestQuestion{
			QuestionID:     q.QuestionID,
			QuestionOrder:  q.QuestionOrder,
			MarksAllocated: marks,
		})
	}

	if err := s.mockTestRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("slug", req.Slug).Msg("Failed to create mock test")
		return nil, err
	}
	log.Info().Uint("testID", test.ID).Int("questions", len(test.TestQuestions)).Msg("Mock test created")

	return s.testService.GetTestDetails(test.ID)
}

// GenerateQuestions fills a test with random public questions drawn per
// category, appended after the existing ones with the default mark weight.
func (s *adminTestService) GenerateQuestions(testID uint, req dto.GenerateTestDTO) (int, error) {
	test, err := s.mockTestRepo.FindByIDWithQuestions(testID)
	if err != nil {
		return 0, ErrTestNotFound
	}

	order := len(test.TestQuestions) + 1
	var batch []model.MockTestQuestion
	for categoryID, count := range req.CategoryDistribution {
		questions, err := s.questionRepo.FindRandomPublicByCategory(categoryID, count)
		if err != nil {
			return 0, fmt.Errorf("drawing questions for category %d: %w", categoryID, err)
		}
		for _, q := range questions {
			batch = append(batch, model.MockTestQuestion{
				QuestionID:     q.ID,
				QuestionOrder:  order,
				MarksAllocated: model.DefaultQuestionMarks,
			})
			order++
		}
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err := s.mockTestRepo.AddQuestions(test.ID, batch); err != nil {
		return 0, err
	}
	log.Info().Uint("testID", test.ID).Int("added", len(batch)).Msg("Generated test questions")
	return len(batch), nil
}

func (s *adminTestService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionDTO, error) {
	correct := 0
	for _, opt := range req.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, ErrInvalidQuestion
	}

	question := model.Question{
		TextEN:        req.TextEN,
		TextNP:        req.TextNP,
		CategoryID:    req.CategoryID,
		ExplanationEN: req.ExplanationEN,
		ExplanationNP: req.ExplanationNP,
		Difficulty:    req.Difficulty,
		Status:        model.QuestionStatusPendingReview,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.Option{
			TextEN:       opt.TextEN,
			TextNP:       opt.TextNP,
			IsCorrect:    opt.IsCorrect,
			DisplayOrder: opt.DisplayOrder,
		})
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("Failed to create question")
		return nil, err
	}

	var resp dto.QuestionDTO
	copier.Copy(&resp, &question)
	return &resp, nil
}
