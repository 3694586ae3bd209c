package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/model"
	"github.com/sbasnet/pscprep/internal/repository"
)

// Hand-written fakes; each test seeds only what its path touches.

type fakeAttemptRepo struct {
	attempts    map[uint]*model.Attempt
	answers     map[uint][]model.AttemptAnswer
	nextID      uint
	completions []uint
	abandoned   []uint
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{
		attempts: make(map[uint]*model.Attempt),
		answers:  make(map[uint][]model.AttemptAnswer),
		nextID:   1,
	}
}

func (f *fakeAttemptRepo) Create(attempt *model.Attempt) error {
	attempt.ID = f.nextID
	f.nextID++
	stored := *attempt
	f.attempts[attempt.ID] = &stored
	return nil
}

func (f *fakeAttemptRepo) FindByID(id uint) (*model.Attempt, error) {
	attempt, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *attempt
	return &cp, nil
}

func (f *fakeAttemptRepo) FindByIDWithTest(id uint) (*model.Attempt, error) {
	return f.FindByID(id)
}

func (f *fakeAttemptRepo) FindByIDWithAnswers(id uint) (*model.Attempt, error) {
	attempt, err := f.FindByID(id)
	if err != nil {
		return nil, err
	}
	attempt.Answers = f.answers[id]
	return attempt, nil
}

func (f *fakeAttemptRepo) FindAnswers(attemptID uint) ([]model.AttemptAnswer, error) {
	return f.answers[attemptID], nil
}

func (f *fakeAttemptRepo) CountAnswered(attemptID uint) (int64, error) {
	var n int64
	for _, ans := range f.answers[attemptID] {
		if !ans.IsSkipped {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttemptRepo) MarkAbandoned(attemptID uint, endTime time.Time) error {
	attempt, ok := f.attempts[attemptID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if attempt.Status == model.AttemptStatusInProgress {
		attempt.Status = model.AttemptStatusAbandoned
		attempt.EndTime = &endTime
		f.abandoned = append(f.abandoned, attemptID)
	}
	return nil
}

func (f *fakeAttemptRepo) SaveCompletion(attempt *model.Attempt) error {
	stored, ok := f.attempts[attempt.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status == model.AttemptStatusCompleted {
		return nil
	}
	stored.Status = model.AttemptStatusCompleted
	stored.EndTime = attempt.EndTime
	stored.ScoreObtained = attempt.ScoreObtained
	stored.TotalScore = attempt.TotalScore
	stored.Percentage = attempt.Percentage
	stored.TotalTimeTaken = attempt.TotalTimeTaken
	f.completions = append(f.completions, attempt.ID)
	return nil
}

type fakeAnswerRepo struct {
	saved []model.AttemptAnswer
}

func (f *fakeAnswerRepo) Upsert(answer *model.AttemptAnswer) error {
	for i, existing := range f.saved {
		if existing.AttemptID == answer.AttemptID && existing.QuestionID == answer.QuestionID {
			answer.ID = existing.ID
			f.saved[i] = *answer
			return nil
		}
	}
	answer.ID = uint(len(f.saved) + 1)
	f.saved = append(f.saved, *answer)
	return nil
}

func (f *fakeAnswerRepo) UpsertBatch(answers []model.AttemptAnswer) ([]model.AttemptAnswer, error) {
	for i := range answers {
		if err := f.Upsert(&answers[i]); err != nil {
			return nil, err
		}
	}
	return answers, nil
}

type fakeQuestionRepo struct {
	questions map[uint]*model.Question
}

func (f *fakeQuestionRepo) Create(question *model.Question) error { return nil }

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	question, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return question, nil
}

func (f *fakeQuestionRepo) FindExistingIDs(ids []uint) ([]uint, error) {
	var found []uint
	for _, id := range ids {
		if _, ok := f.questions[id]; ok {
			found = append(found, id)
		}
	}
	return found, nil
}

func (f *fakeQuestionRepo) FindOptionsByIDs(ids []uint) ([]model.Option, error) {
	var options []model.Option
	for _, question := range f.questions {
		for _, option := range question.Options {
			for _, id := range ids {
				if option.ID == id {
					options = append(options, option)
				}
			}
		}
	}
	return options, nil
}

func (f *fakeQuestionRepo) FindRandomPublicByCategory(categoryID uint, limit int) ([]model.Question, error) {
	return nil, nil
}

func (f *fakeQuestionRepo) RefreshAttemptStats(questionID uint) error { return nil }

type fakeMockTestRepo struct {
	tests map[uint]*model.MockTest
}

func (f *fakeMockTestRepo) Create(test *model.MockTest) error { return nil }

func (f *fakeMockTestRepo) FindByID(id uint) (*model.MockTest, error) {
	test, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return test, nil
}

func (f *fakeMockTestRepo) FindByIDWithQuestions(id uint) (*model.MockTest, error) {
	return f.FindByID(id)
}

func (f *fakeMockTestRepo) FindPublicSummaries(branchID *uint) ([]repository.TestWithQuestionCount, error) {
	return nil, nil
}

func (f *fakeMockTestRepo) AddQuestions(testID uint, questions []model.MockTestQuestion) error {
	return nil
}

func (f *fakeMockTestRepo) IncrementAttemptCount(testID uint) error { return nil }

type fakeNotificationRepo struct {
	created []model.Notification
}

func (f *fakeNotificationRepo) Create(notification *model.Notification) error {
	f.created = append(f.created, *notification)
	return nil
}

func (f *fakeNotificationRepo) FindByUser(userID uint, unreadOnly bool) ([]model.Notification, error) {
	return f.created, nil
}

func (f *fakeNotificationRepo) MarkRead(id, userID uint) error { return nil }

type fakeLeaderboardService struct {
	updates []scoreUpdate
}

type scoreUpdate struct {
	userID   uint
	branchID uint
	delta    float64
}

func (f *fakeLeaderboardService) Recalculate(period model.TimePeriod, branchID uint, subBranchID *uint) error {
	return nil
}
func (f *fakeLeaderboardService) RecalculateAll() error { return nil }
func (f *fakeLeaderboardService) UpdateScore(userID, branchID uint, delta float64) error {
	f.updates = append(f.updates, scoreUpdate{userID, branchID, delta})
	return nil
}
func (f *fakeLeaderboardService) Top(query dto.LeaderboardQuery) ([]dto.LeaderboardEntryDTO, error) {
	return nil, nil
}

type attemptFixture struct {
	svc          AttemptService
	attempts     *fakeAttemptRepo
	answers      *fakeAnswerRepo
	questions    *fakeQuestionRepo
	tests        *fakeMockTestRepo
	notes        *fakeNotificationRepo
	leaderboards *fakeLeaderboardService
}

func newAttemptFixture() *attemptFixture {
	f := &attemptFixture{
		attempts:     newFakeAttemptRepo(),
		answers:      &fakeAnswerRepo{},
		questions:    &fakeQuestionRepo{questions: make(map[uint]*model.Question)},
		tests:        &fakeMockTestRepo{tests: make(map[uint]*model.MockTest)},
		notes:        &fakeNotificationRepo{},
		leaderboards: &fakeLeaderboardService{},
	}
	f.svc = NewAttemptService(f.attempts, f.answers, f.questions, f.tests, f.notes, f.leaderboards)
	return f
}

func (f *attemptFixture) seedQuestion(id uint, correctOption, wrongOption uint) {
	f.questions.questions[id] = &model.Question{
		ID: id,
		Options: []model.Option{
			{ID: correctOption, QuestionID: id, IsCorrect: true},
			{ID: wrongOption, QuestionID: id, IsCorrect: false},
		},
	}
}

func (f *attemptFixture) seedTestAttempt(userID uint) *model.Attempt {
	test := &model.MockTest{
		ID:       10,
		BranchID: 3,
		TestQuestions: []model.MockTestQuestion{
			{QuestionID: 1, MarksAllocated: 2},
			{QuestionID: 2, MarksAllocated: 2},
			{QuestionID: 3, MarksAllocated: 1},
		},
	}
	f.tests.tests[test.ID] = test

	testID := test.ID
	attempt := &model.Attempt{
		UserID:     userID,
		MockTestID: &testID,
		MockTest:   test,
		StartTime:  time.Now().Add(-10 * time.Minute),
		Status:     model.AttemptStatusInProgress,
		Mode:       model.AttemptModeMockTest,
	}
	f.attempts.Create(attempt)
	f.attempts.attempts[attempt.ID].MockTest = test
	return attempt
}

func TestSubmitAnswerDerivesCorrectness(t *testing.T) {
	f := newAttemptFixture()
	f.seedQuestion(1, 11, 12)
	attempt := f.seedTestAttempt(7)

	correct := uint(11)
	resp, err := f.svc.SubmitAnswer(7, attempt.ID, dto.SubmitAnswerRequest{QuestionID: 1, SelectedOptionID: &correct})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !resp.IsCorrect || resp.IsSkipped {
		t.Errorf("correct option: IsCorrect=%v IsSkipped=%v, want true/false", resp.IsCorrect, resp.IsSkipped)
	}

	wrong := uint(12)
	resp, err = f.svc.SubmitAnswer(7, attempt.ID, dto.SubmitAnswerRequest{QuestionID: 1, SelectedOptionID: &wrong})
	if err != nil {
		t.Fatalf("SubmitAnswer resubmit: %v", err)
	}
	if resp.IsCorrect {
		t.Error("wrong option graded as correct")
	}
	// Resubmission overwrites, never duplicates.
	if len(f.answers.saved) != 1 {
		t.Errorf("answer rows = %d, want 1", len(f.answers.saved))
	}
}

func TestSubmitAnswerSkip(t *testing.T) {
	f := newAttemptFixture()
	f.seedQuestion(1, 11, 12)
	attempt := f.seedTestAttempt(7)

	resp, err := f.svc.SubmitAnswer(7, attempt.ID, dto.SubmitAnswerRequest{QuestionID: 1})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !resp.IsSkipped || resp.IsCorrect {
		t.Errorf("skip: IsSkipped=%v IsCorrect=%v, want true/false", resp.IsSkipped, resp.IsCorrect)
	}
}

func TestSubmitAnswerRejectsForeignOption(t *testing.T) {
	f := newAttemptFixture()
	f.seedQuestion(1, 11, 12)
	f.seedQuestion(2, 21, 22)
	attempt := f.seedTestAttempt(7)

	foreign := uint(21) // belongs to question 2
	_, err := f.svc.SubmitAnswer(7, attempt.ID, dto.SubmitAnswerRequest{QuestionID: 1, SelectedOptionID: &foreign})
	if !errors.Is(err, ErrOptionMismatch) {
		t.Errorf("err = %v, want ErrOptionMismatch", err)
	}
}

func TestSubmitAnswerOwnershipAndState(t *testing.T) {
	f := newAttemptFixture()
	f.seedQuestion(1, 11, 12)
	attempt := f.seedTestAttempt(7)

	if _, err := f.svc.SubmitAnswer(99, attempt.ID, dto.SubmitAnswerRequest{QuestionID: 1}); !errors.Is(err, ErrAttemptForbidden) {
		t.Errorf("foreign user err = %v, want ErrAttemptForbidden", err)
	}

	f.attempts.attempts[attempt.ID].Status = model.AttemptStatusAbandoned
	if _, err := f.svc.SubmitAnswer(7, attempt.ID, dto.SubmitAnswerRequest{QuestionID: 1}); !errors.Is(err, ErrAttemptNotInProgress) {
		t.Errorf("abandoned attempt err = %v, want ErrAttemptNotInProgress", err)
	}
}

func TestSubmitAnswersBulkValidatesBeforeWriting(t *testing.T) {
	f := newAttemptFixture()
	f.seedQuestion(1, 11, 12)
	attempt := f.seedTestAttempt(7)

	opt := uint(11)
	req := dto.BulkSubmitRequest{Answers: []dto.SubmitAnswerRequest{
		{QuestionID: 1, SelectedOptionID: &opt},
		{QuestionID: 999},
	}}

	_, err := f.svc.SubmitAnswers(7, attempt.ID, req)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
	if len(f.answers.saved) != 0 {
		t.Errorf("dangling batch wrote %d rows, want 0", len(f.answers.saved))
	}
}

func TestCompleteScoresWeightedTest(t *testing.T) {
	f := newAttemptFixture()
	attempt := f.seedTestAttempt(7)
	opt2, opt3 := uint(12), uint(13)
	f.attempts.answers[attempt.ID] = []model.AttemptAnswer{
		{AttemptID: attempt.ID, QuestionID: 1, SelectedOptionID: &opt2, IsCorrect: true},
		{AttemptID: attempt.ID, QuestionID: 2, SelectedOptionID: &opt3, IsCorrect: false},
		{AttemptID: attempt.ID, QuestionID: 3, IsSkipped: true},
	}

	resp, err := f.svc.Complete(7, attempt.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if resp.ScoreObtained != 2 || resp.TotalScore != 5 {
		t.Errorf("score = %v/%v, want 2/5", resp.ScoreObtained, resp.TotalScore)
	}
	if resp.Percentage == nil || *resp.Percentage != 50 {
		t.Errorf("percentage = %v, want 50", resp.Percentage)
	}
	if resp.Status != model.AttemptStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", resp.Status)
	}
	if resp.TotalTimeTaken == nil || *resp.TotalTimeTaken <= 0 {
		t.Errorf("total time taken = %v, want positive", resp.TotalTimeTaken)
	}

	// Engaged test attempt feeds the all-time leaderboard for the test's branch.
	if len(f.leaderboards.updates) != 1 {
		t.Fatalf("leaderboard updates = %d, want 1", len(f.leaderboards.updates))
	}
	update := f.leaderboards.updates[0]
	if update.userID != 7 || update.branchID != 3 || update.delta != 2 {
		t.Errorf("leaderboard update = %+v, want user 7 branch 3 delta 2", update)
	}

	if len(f.notes.created) != 1 || f.notes.created[0].Type != model.NotificationAttemptCompleted {
		t.Errorf("completion notification not created: %+v", f.notes.created)
	}
}

func TestCompleteIsRejectedOnTerminalStates(t *testing.T) {
	f := newAttemptFixture()
	attempt := f.seedTestAttempt(7)
	f.attempts.attempts[attempt.ID].Status = model.AttemptStatusCompleted

	if _, err := f.svc.Complete(7, attempt.ID); !errors.Is(err, ErrAttemptAlreadyCompleted) {
		t.Errorf("completed attempt err = %v, want ErrAttemptAlreadyCompleted", err)
	}

	f.attempts.attempts[attempt.ID].Status = model.AttemptStatusAbandoned
	if _, err := f.svc.Complete(7, attempt.ID); !errors.Is(err, ErrAttemptNotInProgress) {
		t.Errorf("abandoned attempt err = %v, want ErrAttemptNotInProgress", err)
	}
}

func TestCompleteZeroEngagementStaysOffLeaderboard(t *testing.T) {
	f := newAttemptFixture()
	attempt := f.seedTestAttempt(7)
	f.attempts.answers[attempt.ID] = []model.AttemptAnswer{
		{AttemptID: attempt.ID, QuestionID: 1, IsSkipped: true},
		{AttemptID: attempt.ID, QuestionID: 2, IsSkipped: true},
	}

	if _, err := f.svc.Complete(7, attempt.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(f.leaderboards.updates) != 0 {
		t.Errorf("all-skipped attempt produced %d leaderboard updates, want 0", len(f.leaderboards.updates))
	}
}

func TestCompletePracticeModeAccumulatesTotal(t *testing.T) {
	f := newAttemptFixture()
	attempt := &model.Attempt{
		UserID:    7,
		StartTime: time.Now().Add(-time.Minute),
		Status:    model.AttemptStatusInProgress,
		Mode:      model.AttemptModePractice,
	}
	f.attempts.Create(attempt)
	opt := uint(11)
	f.attempts.answers[attempt.ID] = []model.AttemptAnswer{
		{AttemptID: attempt.ID, QuestionID: 1, SelectedOptionID: &opt, IsCorrect: true},
		{AttemptID: attempt.ID, QuestionID: 2, IsSkipped: true},
	}

	resp, err := f.svc.Complete(7, attempt.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.TotalScore != 2 || resp.ScoreObtained != 1 {
		t.Errorf("practice score = %v/%v, want 1/2", resp.ScoreObtained, resp.TotalScore)
	}
	// Practice has no test, hence no branch and no leaderboard write.
	if len(f.leaderboards.updates) != 0 {
		t.Errorf("practice attempt produced %d leaderboard updates, want 0", len(f.leaderboards.updates))
	}
}

func TestStartAttemptUnknownTest(t *testing.T) {
	f := newAttemptFixture()
	missing := uint(404)
	_, err := f.svc.Start(7, dto.StartAttemptRequest{MockTestID: &missing, Mode: model.AttemptModeMockTest})
	if !errors.Is(err, ErrTestNotFound) {
		t.Errorf("err = %v, want ErrTestNotFound", err)
	}
}

func TestAbandonGuardsState(t *testing.T) {
	f := newAttemptFixture()
	attempt := f.seedTestAttempt(7)

	if err := f.svc.Abandon(7, attempt.ID); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if f.attempts.attempts[attempt.ID].Status != model.AttemptStatusAbandoned {
		t.Error("attempt not marked abandoned")
	}
	if err := f.svc.Abandon(7, attempt.ID); !errors.Is(err, ErrAttemptNotInProgress) {
		t.Errorf("second abandon err = %v, want ErrAttemptNotInProgress", err)
	}
}

func TestGetResultRequiresCompletion(t *testing.T) {
	f := newAttemptFixture()
	attempt := f.seedTestAttempt(7)

	if _, err := f.svc.GetResult(7, attempt.ID); !errors.Is(err, ErrAttemptNotCompleted) {
		t.Errorf("in-progress result err = %v, want ErrAttemptNotCompleted", err)
	}
}
