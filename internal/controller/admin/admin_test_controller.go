package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/model"
	"github.com/sbasnet/pscprep/internal/service"
)

type AdminTestController struct {
	adminTestService   service.AdminTestService
	leaderboardService service.LeaderboardService
}

func NewAdminTestController(
	adminTestService service.AdminTestService,
	leaderboardService service.LeaderboardService,
) *AdminTestController {
	return &AdminTestController{
		adminTestService:   adminTestService,
		leaderboardService: leaderboardService,
	}
}

// CreateTest godoc
// @Summary (Admin) Create a mock test from bank questions
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "A referenced question does not exist"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	detail, err := c.adminTestService.CreateTest(req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("Admin CreateTest failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, detail)
}

// GenerateTestQuestions godoc
// @Summary (Admin) Fill a test with random public questions per category
// @Tags Admin
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param request body dto.GenerateTestDTO true "Category distribution"
// @Success 200 {object} map[string]int
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id}/generate-questions [post]
func (c *AdminTestController) GenerateTestQuestions(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID format"})
		return
	}
	var req dto.GenerateTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	added, err := c.adminTestService.GenerateQuestions(uint(testID), req)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"questions_added": added})
}

// CreateQuestion godoc
// @Summary (Admin) Add a bank question with its options
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.QuestionCreateDTO true "Question definition"
// @Success 201 {object} dto.QuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Not exactly one correct option"
// @Router /admin/questions [post]
func (c *AdminTestController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.adminTestService.CreateQuestion(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestion) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create question", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// RecalculateLeaderboards godoc
// @Summary (Admin) Trigger leaderboard recalculation
// @Description Recalculates one branch when branch_id is set, otherwise every active branch. Runs all periods unless one is named.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.RecalculateRequest false "Optional period and branch"
// @Success 202 "Recalculation performed"
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/leaderboard/recalculate [post]
func (c *AdminTestController) RecalculateLeaderboards(ctx *gin.Context) {
	var req dto.RecalculateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if req.BranchID == nil {
		if err := c.leaderboardService.RecalculateAll(); err != nil {
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Recalculation failed", Details: []string{err.Error()}})
			return
		}
		ctx.Status(http.StatusAccepted)
		return
	}

	periods := model.AllPeriods
	if req.TimePeriod != "" {
		periods = []model.TimePeriod{model.TimePeriod(req.TimePeriod)}
	}
	for _, period := range periods {
		if err := c.leaderboardService.Recalculate(period, *req.BranchID, nil); err != nil {
			log.Error().Err(err).Str("period", string(period)).Uint("branchID", *req.BranchID).Msg("Manual recalculation failed")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Recalculation failed", Details: []string{err.Error()}})
			return
		}
	}
	ctx.Status(http.StatusAccepted)
}
