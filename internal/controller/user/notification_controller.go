package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/middleware"
	"github.com/sbasnet/pscprep/internal/repository"
)

type NotificationController struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationController(notificationRepo repository.NotificationRepository) *NotificationController {
	return &NotificationController{notificationRepo: notificationRepo}
}

// GetNotifications godoc
// @Summary List the caller's notifications
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Success 200 {array} model.Notification
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	unreadOnly := ctx.Query("unread") == "true"
	notifications, err := c.notificationRepo.FindByUser(middleware.CurrentUserID(ctx), unreadOnly)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load notifications", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead godoc
// @Summary Mark one notification as read
// @Tags Notifications
// @Param notification_id path int true "Notification ID"
// @Success 204 "Marked"
// @Failure 400 {object} dto.ErrorResponse
// @Router /notifications/{notification_id}/read [patch]
func (c *NotificationController) MarkNotificationRead(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("notification_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid notification ID format"})
		return
	}
	if err := c.notificationRepo.MarkRead(uint(id), middleware.CurrentUserID(ctx)); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to mark as read", Details: []string{err.Error()}})
		return
	}
	ctx.Status(http.StatusNoContent)
}
