package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/repository"
)

// TestService is the read side for users: branch listing, available tests,
// and test details for starting an attempt. Option correctness never leaves
// this layer; the DTOs simply do not carry it.
type TestService interface {
	GetBranches() ([]dto.BranchDTO, error)
	GetTests(branchID *uint) ([]dto.TestSummaryDTO, error)
	GetTestDetails(testID uint) (*dto.TestDetailDTO, error)
}

type testService struct {
	mockTestRepo repository.MockTestRepository
	branchRepo   repository.BranchRepository
}

func NewTestService(mockTestRepo repository.MockTestRepository, branchRepo repository.BranchRepository) TestService {
	return &testService{mockTestRepo: mockTestRepo, branchRepo: branchRepo}
}

func (s *testService) GetBranches() ([]dto.BranchDTO, error) {
	branches, err := s.branchRepo.FindActiveWithSubBranches()
	if err != nil {
		return nil, err
	}
	result := make([]dto.BranchDTO, len(branches))
	copier.Copy(&result, &branches)
	return result, nil
}

func (s *testService) GetTests(branchID *uint) ([]dto.TestSummaryDTO, error) {
	tests, err := s.mockTestRepo.FindPublicSummaries(branchID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TestSummaryDTO, len(tests))
	for i, t := range tests {
		copier.Copy(&result[i], &t.MockTest)
		result[i].QuestionCount = t.QuestionCount
	}
	return result, nil
}

func (s *testService) GetTestDetails(testID uint) (*dto.TestDetailDTO, error) {
	test, err := s.mockTestRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}

	var detail dto.TestDetailDTO
	copier.Copy(&detail.TestSummaryDTO, test)
	detail.DescriptionEN = test.DescriptionEN
	detail.QuestionCount = len(test.TestQuestions)
	detail.TestQuestions = make([]dto.TestQuestionDTO, len(test.TestQuestions))
	for i, tq := range test.TestQuestions {
		detail.TestQuestions[i].QuestionOrder = tq.QuestionOrder
		detail.TestQuestions[i].MarksAllocated = tq.MarksAllocated
		copier.Copy(&detail.TestQuestions[i].Question, &tq.Question)
	}
	return &detail, nil
}
