package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionStatusDraft         = "DRAFT"
	QuestionStatusPendingReview = "PENDING_REVIEW"
	QuestionStatusPublic        = "PUBLIC"
	QuestionStatusPrivate       = "PRIVATE"
)

// Question is a bilingual multiple-choice question in the shared bank.
type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	TextEN         string         `json:"text_en" gorm:"type:text;not null"`
	TextNP         string         `json:"text_np" gorm:"type:text;not null"`
	CategoryID     uint           `json:"category_id" gorm:"not null;index"`
	Category       Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ExplanationEN  string         `json:"explanation_en" gorm:"type:text"`
	ExplanationNP  string         `json:"explanation_np" gorm:"type:text"`
	Difficulty     *string        `json:"difficulty,omitempty"` // "EASY", "MEDIUM", "HARD"
	Status         string         `json:"status" gorm:"default:'DRAFT';index"`
	CreatedByID    *uint          `json:"created_by_id,omitempty" gorm:"index"`
	TimesAttempted int            `json:"times_attempted" gorm:"default:0"`
	TimesCorrect   int            `json:"times_correct" gorm:"default:0"`
	Options        []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// AccuracyRate is the historical fraction of correct responses, in percent.
func (q *Question) AccuracyRate() float64 {
	if q.TimesAttempted == 0 {
		return 0
	}
	return float64(q.TimesCorrect) / float64(q.TimesAttempted) * 100
}

// Option is one answer choice for a question. Exactly one option per question
// should carry IsCorrect=true.
type Option struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	QuestionID   uint           `json:"question_id" gorm:"not null;index"`
	TextEN       string         `json:"text_en" gorm:"type:text;not null"`
	TextNP       string         `json:"text_np" gorm:"type:text;not null"`
	IsCorrect    bool           `json:"is_correct" gorm:"default:false"`
	DisplayOrder int            `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
