package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type ScopeType string

const (
	ScopeUniversal ScopeType = "UNIVERSAL"
	ScopeBranch    ScopeType = "BRANCH"
	ScopeSubBranch ScopeType = "SUBBRANCH"
)

var ErrInvalidScope = errors.New("invalid category scope")

// Scope captures where a category applies. Each variant carries exactly the
// referenced ids it requires, so an invalid combination cannot be constructed.
type Scope struct {
	Type        ScopeType
	BranchID    *uint
	SubBranchID *uint
}

// UniversalScope applies to all branches.
func UniversalScope() Scope {
	return Scope{Type: ScopeUniversal}
}

// BranchScope applies to a single branch, all of its sub-branches included.
func BranchScope(branchID uint) Scope {
	return Scope{Type: ScopeBranch, BranchID: &branchID}
}

// SubBranchScope applies to one specialization within a branch.
func SubBranchScope(branchID, subBranchID uint) Scope {
	return Scope{Type: ScopeSubBranch, BranchID: &branchID, SubBranchID: &subBranchID}
}

// ParseScope rebuilds a Scope from stored columns, rejecting combinations the
// constructors would never produce.
func ParseScope(scopeType ScopeType, branchID, subBranchID *uint) (Scope, error) {
	switch scopeType {
	case ScopeUniversal:
		if branchID != nil || subBranchID != nil {
			return Scope{}, ErrInvalidScope
		}
		return UniversalScope(), nil
	case ScopeBranch:
		if branchID == nil || subBranchID != nil {
			return Scope{}, ErrInvalidScope
		}
		return BranchScope(*branchID), nil
	case ScopeSubBranch:
		if branchID == nil || subBranchID == nil {
			return Scope{}, ErrInvalidScope
		}
		return SubBranchScope(*branchID, *subBranchID), nil
	}
	return Scope{}, ErrInvalidScope
}

// Category groups questions, scoped universally, per branch, or per sub-branch.
type Category struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	NameEN            string         `json:"name_en" gorm:"not null"`
	NameNP            string         `json:"name_np" gorm:"not null"`
	Slug              string         `json:"slug" gorm:"not null;uniqueIndex"`
	ScopeType         ScopeType      `json:"scope_type" gorm:"not null;index"`
	TargetBranchID    *uint          `json:"target_branch_id,omitempty" gorm:"index"`
	TargetSubBranchID *uint          `json:"target_sub_branch_id,omitempty"`
	IsPublic          bool           `json:"is_public" gorm:"default:true"`
	DisplayOrder      int            `json:"display_order" gorm:"default:0"`
	IsActive          bool           `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewCategory is the only intended way to build a Category; the scope variant
// decides the target columns.
func NewCategory(nameEN, nameNP, slug string, scope Scope) Category {
	return Category{
		NameEN:            nameEN,
		NameNP:            nameNP,
		Slug:              slug,
		ScopeType:         scope.Type,
		TargetBranchID:    scope.BranchID,
		TargetSubBranchID: scope.SubBranchID,
		IsPublic:          true,
		IsActive:          true,
	}
}

// Scope reconstructs the validated scope variant from the stored columns.
func (c *Category) Scope() (Scope, error) {
	return ParseScope(c.ScopeType, c.TargetBranchID, c.TargetSubBranchID)
}
