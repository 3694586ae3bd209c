package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/service"
)

type LeaderboardController struct {
	leaderboardService service.LeaderboardService
}

func NewLeaderboardController(leaderboardService service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary Ranked standings for one scope
// @Description Returns the current entries for (period, branch[, sub-branch]) ordered by rank, with rank deltas.
// @Tags Leaderboard
// @Produce json
// @Param period query string true "WEEKLY, MONTHLY or ALL_TIME"
// @Param branch_id query int true "Branch ID"
// @Param sub_branch_id query int false "Sub-branch ID"
// @Param limit query int false "Max entries (default 10)"
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	var query dto.LeaderboardQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid query", Details: []string{err.Error()}})
		return
	}

	entries, err := c.leaderboardService.Top(query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load leaderboard", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}
