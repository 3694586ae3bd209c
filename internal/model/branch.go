package model

import (
	"time"

	"gorm.io/gorm"
)

// Branch is a main examination branch (e.g. Nasu, Kharidar, Engineering).
// Leaderboards and mock tests are always scoped to a branch.
type Branch struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	NameEN         string         `json:"name_en" gorm:"not null;uniqueIndex"`
	NameNP         string         `json:"name_np" gorm:"not null"`
	Slug           string         `json:"slug" gorm:"not null;uniqueIndex"`
	DescriptionEN  *string        `json:"description_en,omitempty"`
	DescriptionNP  *string        `json:"description_np,omitempty"`
	HasSubBranches bool           `json:"has_sub_branches" gorm:"default:false"`
	DisplayOrder   int            `json:"display_order" gorm:"default:0"`
	IsActive       bool           `json:"is_active" gorm:"default:true;index"`
	SubBranches    []SubBranch    `json:"sub_branches,omitempty" gorm:"foreignKey:BranchID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// SubBranch is a specialization within a branch (e.g. Civil Engineering).
type SubBranch struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	BranchID     uint           `json:"branch_id" gorm:"not null;index"`
	Branch       Branch         `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	NameEN       string         `json:"name_en" gorm:"not null"`
	NameNP       string         `json:"name_np" gorm:"not null"`
	Slug         string         `json:"slug" gorm:"not null;index"`
	DisplayOrder int            `json:"display_order" gorm:"default:0"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
