package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	NotificationAttemptCompleted = "ATTEMPT_COMPLETED"
	NotificationRankChanged      = "RANK_CHANGED"
)

// Notification is a user-facing alert row produced by the completion and
// recalculation flows. Delivery (push, email) is handled by an external
// dispatcher that polls unread rows; this service only creates them.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index:idx_notif_user_read"`
	Type      string         `json:"type" gorm:"not null"`
	TitleEN   string         `json:"title_en" gorm:"not null"`
	TitleNP   string         `json:"title_np" gorm:"not null"`
	MessageEN string         `json:"message_en" gorm:"type:text"`
	MessageNP string         `json:"message_np" gorm:"type:text"`
	IsRead    bool           `json:"is_read" gorm:"default:false;index:idx_notif_user_read"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
