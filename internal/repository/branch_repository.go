package repository

import (
	"github.com/sbasnet/pscprep/internal/model"
	"gorm.io/gorm"
)

type BranchRepository interface {
	FindByID(id uint) (*model.Branch, error)
	FindActive() ([]model.Branch, error)
	FindActiveWithSubBranches() ([]model.Branch, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) FindByID(id uint) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindActive() ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.Where("is_active = ?", true).
		Order("display_order ASC, name_en ASC").
		Find(&branches).Error
	return branches, err
}

func (r *branchRepository) FindActiveWithSubBranches() ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.Where("is_active = ?", true).
		Preload("SubBranches", "is_active = ?", true).
		Order("display_order ASC, name_en ASC").
		Find(&branches).Error
	return branches, err
}
