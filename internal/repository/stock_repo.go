package repository

import (
	"github.com/RespawnSociety/MesinKasir/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	FindAll() ([]model.Stock, error)
	FindByID(id uint) (*model.Stock, error)
	NameTaken(name string, excludeID uint) (bool, error)
	Create(stock *model.Stock) error
	Update(stock *model.Stock) error
	Delete(id uint) error
	CountPivots(stockID uint) (int64, error)

	ListPivots(productID uint) ([]model.ProductStock, error)
	FindPivot(productID, stockID uint) (*model.ProductStock, error)
	// UpsertPivot inserts the pair or overwrites qty/active of the existing row.
	UpsertPivot(pivot *model.ProductStock) error
	UpdatePivot(pivot *model.ProductStock) error
	DeletePivot(productID, stockID uint) error
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) FindAll() ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.Order("name ASC").Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) FindByID(id uint) (*model.Stock, error) {
	var stock model.Stock
	if err := r.db.First(&stock, id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepo) NameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.Stock{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *stockRepo) Create(stock *model.Stock) error {
	return r.db.Create(stock).Error
}

func (r *stockRepo) Update(stock *model.Stock) error {
	return r.db.Save(stock).Error
}

func (r *stockRepo) Delete(id uint) error {
	res := r.db.Delete(&model.Stock{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *stockRepo) CountPivots(stockID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProductStock{}).Where("stock_id = ?", stockID).Count(&count).Error
	return count, err
}

func (r *stockRepo) ListPivots(productID uint) ([]model.ProductStock, error) {
	var pivots []model.ProductStock
	err := r.db.
		Joins("Stock").
		Where("product_stock.product_id = ?", productID).
		Order(`"Stock"."name" ASC`).
		Find(&pivots).Error
	return pivots, err
}

func (r *stockRepo) FindPivot(productID, stockID uint) (*model.ProductStock, error) {
	var pivot model.ProductStock
	err := r.db.
		Preload("Stock").
		Where("product_id = ? AND stock_id = ?", productID, stockID).
		First(&pivot).Error
	if err != nil {
		return nil, err
	}
	return &pivot, nil
}

func (r *stockRepo) UpsertPivot(pivot *model.ProductStock) error {
	return r.db.Omit("Product", "Stock").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "stock_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"qty", "active", "updated_at"}),
	}).Create(pivot).Error
}

func (r *stockRepo) UpdatePivot(pivot *model.ProductStock) error {
	return r.db.Model(pivot).Select("qty", "active", "updated_at").Updates(pivot).Error
}

func (r *stockRepo) DeletePivot(productID, stockID uint) error {
	res := r.db.Where("product_id = ? AND stock_id = ?", productID, stockID).Delete(&model.ProductStock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
