package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/middleware"
	"github.com/sbasnet/pscprep/internal/service"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

func attemptIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("attempt_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID format"})
		return 0, false
	}
	return uint(id), true
}

// StartAttempt godoc
// @Summary Start a new attempt
// @Description Opens an IN_PROGRESS session against a mock test, or in practice mode when mock_test_id is omitted.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param request body dto.StartAttemptRequest true "Attempt mode and optional test"
// @Success 201 {object} dto.AttemptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Mock test not found"
// @Router /attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.Start(middleware.CurrentUserID(ctx), req)
	if err != nil {
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitAnswer godoc
// @Summary Submit or change one answer
// @Description Upserts the response for (attempt, question). A nil selected_option_id records a skip.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Attempt not in progress, or option mismatch"
// @Failure 404 {object} dto.ErrorResponse "Question or option not found"
// @Router /attempts/{attempt_id}/answers [post]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	attemptID, ok := attemptIDParam(ctx)
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.SubmitAnswer(middleware.CurrentUserID(ctx), attemptID, req)
	if err != nil {
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswersBulk godoc
// @Summary Submit a batch of answers
// @Description Validates every referenced question and option before any row is written.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.BulkSubmitRequest true "Answer batch"
// @Success 200 {array} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/answers/bulk [post]
func (c *AttemptController) SubmitAnswersBulk(ctx *gin.Context) {
	attemptID, ok := attemptIDParam(ctx)
	if !ok {
		return
	}
	var req dto.BulkSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.SubmitAnswers(middleware.CurrentUserID(ctx), attemptID, req)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("Bulk answer submission rejected")
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CompleteAttempt godoc
// @Summary Complete an attempt
// @Description Scores the attempt and moves it to its terminal COMPLETED state. Repeated calls are rejected.
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Already completed or abandoned"
// @Failure 403 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/complete [post]
func (c *AttemptController) CompleteAttempt(ctx *gin.Context) {
	attemptID, ok := attemptIDParam(ctx)
	if !ok {
		return
	}

	resp, err := c.attemptService.Complete(middleware.CurrentUserID(ctx), attemptID)
	if err != nil {
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AbandonAttempt godoc
// @Summary Abandon an attempt
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 204 "Abandoned"
// @Failure 400 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/abandon [post]
func (c *AttemptController) AbandonAttempt(ctx *gin.Context) {
	attemptID, ok := attemptIDParam(ctx)
	if !ok {
		return
	}

	if err := c.attemptService.Abandon(middleware.CurrentUserID(ctx), attemptID); err != nil {
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetResults godoc
// @Summary Get completed attempt results
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Attempt not completed yet"
// @Router /attempts/{attempt_id}/results [get]
func (c *AttemptController) GetResults(ctx *gin.Context) {
	attemptID, ok := attemptIDParam(ctx)
	if !ok {
		return
	}

	resp, err := c.attemptService.GetResult(middleware.CurrentUserID(ctx), attemptID)
	if err != nil {
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
