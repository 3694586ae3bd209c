package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/service"
)

type TestController struct {
	testService  service.TestService
	statsService service.StatsService
}

func NewTestController(testService service.TestService, statsService service.StatsService) *TestController {
	return &TestController{testService: testService, statsService: statsService}
}

// GetBranches godoc
// @Summary List active branches with their sub-branches
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.BranchDTO
// @Router /branches [get]
func (c *TestController) GetBranches(ctx *gin.Context) {
	branches, err := c.testService.GetBranches()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load branches", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, branches)
}

// GetTests godoc
// @Summary List public mock tests
// @Tags Catalog
// @Produce json
// @Param branch_id query int false "Filter by branch"
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *TestController) GetTests(ctx *gin.Context) {
	var branchID *uint
	if raw := ctx.Query("branch_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid branch ID format"})
			return
		}
		id := uint(val)
		branchID = &id
	}

	tests, err := c.testService.GetTests(branchID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load tests", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Full test details for starting an attempt
// @Description Questions include their options; option correctness is never exposed here.
// @Tags Catalog
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id} [get]
func (c *TestController) GetTestDetails(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID format"})
		return
	}

	detail, err := c.testService.GetTestDetails(uint(testID))
	if err != nil {
		ctx.JSON(statusFor(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GetPlatformStats godoc
// @Summary Public platform statistics
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.PlatformStatsDTO
// @Router /stats [get]
func (c *TestController) GetPlatformStats(ctx *gin.Context) {
	stats, err := c.statsService.Get()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load stats", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
