package service

import (
	"errors"
	"testing"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/model"
)

type fakeTestService struct{}

func (f *fakeTestService) GetBranches() ([]dto.BranchDTO, error)        { return nil, nil }
func (f *fakeTestService) GetTests(*uint) ([]dto.TestSummaryDTO, error) { return nil, nil }
func (f *fakeTestService) GetTestDetails(testID uint) (*dto.TestDetailDTO, error) {
	return &dto.TestDetailDTO{}, nil
}

func newAdminFixture() (AdminTestService, *fakeQuestionRepo, *fakeMockTestRepo) {
	questions := &fakeQuestionRepo{questions: make(map[uint]*model.Question)}
	tests := &fakeMockTestRepo{tests: make(map[uint]*model.MockTest)}
	return NewAdminTestService(tests, questions, &fakeTestService{}), questions, tests
}

func TestCreateQuestionRequiresExactlyOneCorrectOption(t *testing.T) {
	svc, _, _ := newAdminFixture()

	base := func(correct ...bool) dto.QuestionCreateDTO {
		req := dto.QuestionCreateDTO{TextEN: "Capital of Nepal?", TextNP: "नेपालको राजधानी?", CategoryID: 1}
		for i, c := range correct {
			req.Options = append(req.Options, dto.OptionCreateDTO{
				TextEN: "option", TextNP: "विकल्प", IsCorrect: c, DisplayOrder: i + 1,
			})
		}
		return req
	}

	if _, err := svc.CreateQuestion(base(true, false, false, false)); err != nil {
		t.Errorf("single correct option rejected: %v", err)
	}
	if _, err := svc.CreateQuestion(base(false, false)); !errors.Is(err, ErrInvalidQuestion) {
		t.Errorf("no correct option err = %v, want ErrInvalidQuestion", err)
	}
	if _, err := svc.CreateQuestion(base(true, true)); !errors.Is(err, ErrInvalidQuestion) {
		t.Errorf("two correct options err = %v, want ErrInvalidQuestion", err)
	}
}

func TestCreateQuestionStartsInReview(t *testing.T) {
	svc, _, _ := newAdminFixture()

	resp, err := svc.CreateQuestion(dto.QuestionCreateDTO{
		TextEN:     "2 + 2?",
		TextNP:     "२ + २?",
		CategoryID: 1,
		Options: []dto.OptionCreateDTO{
			{TextEN: "4", TextNP: "४", IsCorrect: true, DisplayOrder: 1},
			{TextEN: "5", TextNP: "५", DisplayOrder: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if resp.Status != model.QuestionStatusPendingReview {
		t.Errorf("status = %s, want PENDING_REVIEW", resp.Status)
	}
}

func TestCreateTestRejectsDanglingQuestions(t *testing.T) {
	svc, questions, _ := newAdminFixture()
	questions.questions[1] = &model.Question{ID: 1}

	_, err := svc.CreateTest(dto.TestCreateDTO{
		TitleEN:  "Sample",
		TitleNP:  "नमूना",
		Slug:     "sample",
		BranchID: 1,
		Questions: []dto.TestQuestionRef{
			{QuestionID: 1, QuestionOrder: 1},
			{QuestionID: 2, QuestionOrder: 2},
		},
	})
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("err = %v, want ErrQuestionNotFound", err)
	}
}
