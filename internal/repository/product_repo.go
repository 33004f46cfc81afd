package repository

import (
	"strings"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/pkg/pagination"

	"gorm.io/gorm"
)

// ProductFilter narrows product listings. Nil pointers mean "no filter".
type ProductFilter struct {
	Search     string
	CategoryID *uint
	Active     *bool
	// OrderByName sorts alphabetically (POS screen) instead of newest first.
	OrderByName bool
	// WithRelations preloads the category and attached stocks.
	WithRelations bool
}

type ProductRepository interface {
	Create(product *model.Product) error
	List(filter ProductFilter, page pagination.Params) ([]model.Product, int64, error)
	Count(filter ProductFilter) (int64, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) filtered(filter ProductFilter) *gorm.DB {
	q := r.db.Model(&model.Product{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("name ILIKE ?", "%"+escapeLike(s)+"%")
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	return q
}

func (r *productRepo) List(filter ProductFilter, page pagination.Params) ([]model.Product, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.filtered(filter)
	if filter.OrderByName {
		q = q.Order("name ASC").Order("id ASC")
	} else {
		q = q.Order("created_at DESC").Order("id DESC")
	}
	if filter.WithRelations {
		q = q.Preload("Category").Preload("Stocks.Stock")
	}

	var products []model.Product
	err := q.Offset(page.Offset()).Limit(page.PerPage).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Count(filter ProductFilter) (int64, error) {
	var total int64
	err := r.filtered(filter).Count(&total).Error
	return total, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Stocks.Stock").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Omit("Category", "Stocks").Save(product).Error
}

// Delete removes the product and its pivot rows together.
func (r *productRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductStock{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
