package repository

import (
	"github.com/RespawnSociety/MesinKasir/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll(activeOnly bool) ([]model.ProductCategory, error)
	FindByID(id uint) (*model.ProductCategory, error)
	// NameTaken reports whether another category (id != excludeID) uses name.
	NameTaken(name string, excludeID uint) (bool, error)
	Create(category *model.ProductCategory) error
	Update(category *model.ProductCategory) error
	Delete(id uint) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindAll(activeOnly bool) ([]model.ProductCategory, error) {
	var categories []model.ProductCategory
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uint) (*model.ProductCategory, error) {
	var category model.ProductCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) NameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.ProductCategory{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepo) Create(category *model.ProductCategory) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) Update(category *model.ProductCategory) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) Delete(id uint) error {
	res := r.db.Delete(&model.ProductCategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
