package dto

// OptionCreateDTO is one answer choice within a new question.
type OptionCreateDTO struct {
	TextEN       string `json:"text_en" binding:"required"`
	TextNP       string `json:"text_np" binding:"required"`
	IsCorrect    bool   `json:"is_correct"`
	DisplayOrder int    `json:"display_order"`
}

// QuestionCreateDTO is for admins adding bank questions directly.
type QuestionCreateDTO struct {
	TextEN        string            `json:"text_en" binding:"required"`
	TextNP        string            `json:"text_np" binding:"required"`
	CategoryID    uint              `json:"category_id" binding:"required"`
	ExplanationEN string            `json:"explanation_en"`
	ExplanationNP string            `json:"explanation_np"`
	Difficulty    *string           `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	Options       []OptionCreateDTO `json:"options" binding:"required,min=2,dive"`
}

// TestQuestionRef places an existing bank question into a new test.
type TestQuestionRef struct {
	QuestionID     uint    `json:"question_id" binding:"required"`
	QuestionOrder  int     `json:"question_order" binding:"required,min=1"`
	MarksAllocated float64 `json:"marks_allocated" binding:"omitempty,gt=0"`
}

// TestCreateDTO is for admin test creation from existing questions.
type TestCreateDTO struct {
	TitleEN         string            `json:"title_en" binding:"required"`
	TitleNP         string            `json:"title_np" binding:"required"`
	Slug            string            `json:"slug" binding:"required"`
	DescriptionEN   *string           `json:"description_en"`
	BranchID        uint              `json:"branch_id" binding:"required"`
	SubBranchID     *uint             `json:"sub_branch_id"`
	DurationMinutes *int              `json:"duration_minutes" binding:"omitempty,gt=0"`
	PassPercentage  float64           `json:"pass_percentage" binding:"omitempty,gte=0,lte=100"`
	Questions       []TestQuestionRef `json:"questions" binding:"required,min=1,dive"`
}

// GenerateTestDTO fills a test with random public questions per category.
type GenerateTestDTO struct {
	// CategoryDistribution maps category id → number of questions to draw.
	CategoryDistribution map[uint]int `json:"category_distribution" binding:"required"`
}
