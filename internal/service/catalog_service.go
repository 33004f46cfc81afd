package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/repository"
	"github.com/RespawnSociety/MesinKasir/internal/ws"
	"github.com/RespawnSociety/MesinKasir/pkg/pagination"

	"gorm.io/gorm"
)

const (
	adminProductsPerPage    = 15
	adminProductsPerPageMax = 100
	posProductsPerPage      = 100
	posProductsPerPageMax   = 200
)

// CatalogService manages categories and products, and serves the
// read-only projections the POS screen uses.
type CatalogService interface {
	ListCategories(p *Principal, activeOnly bool) ([]model.ProductCategory, error)
	CreateCategory(p *Principal, req CategoryRequest) (*model.ProductCategory, error)
	RenameCategory(p *Principal, id uint, req CategoryRequest) (*model.ProductCategory, error)
	SetCategoryActive(p *Principal, id uint, req SetActiveRequest) (*model.ProductCategory, error)
	DeleteCategory(p *Principal, id uint) error

	PosCategories(p *Principal) ([]model.ProductCategory, error)
	PosProducts(p *Principal, q ProductQuery) (*pagination.Page[model.Product], error)
	PosProductCount(p *Principal, q ProductQuery) (int64, error)

	ListProducts(p *Principal, q ProductQuery) (*pagination.Page[model.Product], error)
	GetProduct(p *Principal, id uint) (*model.Product, error)
	CreateProduct(p *Principal, req CreateProductRequest) (*model.Product, error)
	UpdateProduct(p *Principal, id uint, req UpdateProductRequest) (*model.Product, error)
	DeleteProduct(p *Principal, id uint) error
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

// ProductQuery carries the raw listing filters from the query string.
type ProductQuery struct {
	Search     string
	CategoryID *uint
	Active     *bool
	Page       int
	PerPage    int
}

type CreateProductRequest struct {
	CategoryID uint   `json:"category_id" validate:"required"`
	Name       string `json:"name" validate:"required,max=120"`
	Price      *int64 `json:"price" validate:"required,min=0"`
	Qty        *int64 `json:"qty" validate:"omitempty,min=0"`
	Active     *bool  `json:"active"`
}

// UpdateProductRequest is a partial update; absent fields are preserved
// and an explicit null qty resets it to zero.
type UpdateProductRequest struct {
	CategoryID *uint        `json:"category_id" validate:"omitempty,min=1"`
	Name       *string      `json:"name" validate:"omitempty,min=1,max=120"`
	Price      *int64       `json:"price" validate:"omitempty,min=0"`
	Qty        Patch[int64] `json:"qty"`
	Active     *bool        `json:"active"`
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	events       EventPublisher
}

func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, events EventPublisher) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		events:       publisherOrNop(events),
	}
}

func (s *catalogService) publish(entity, action string, id uint) {
	s.events.Publish(ws.EventCatalogUpdate, map[string]interface{}{
		"entity": entity,
		"action": action,
		"id":     id,
	})
}

// --- categories ---

func (s *catalogService) ListCategories(p *Principal, activeOnly bool) ([]model.ProductCategory, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindAll(activeOnly)
}

func (s *catalogService) checkCategoryName(name string, excludeID uint) error {
	taken, err := s.categoryRepo.NameTaken(name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: category name already exists", ErrConflict)
	}
	return nil
}

func (s *catalogService) CreateCategory(p *Principal, req CategoryRequest) (*model.ProductCategory, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(&req); err != nil {
		return nil, err
	}
	if err := s.checkCategoryName(req.Name, 0); err != nil {
		return nil, err
	}

	category := &model.ProductCategory{Name: req.Name, Active: true}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, dbError(err, "category")
	}
	s.publish("category", "created", category.ID)
	return category, nil
}

func (s *catalogService) RenameCategory(p *Principal, id uint, req CategoryRequest) (*model.ProductCategory, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(&req); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, dbError(err, "category")
	}
	if err := s.checkCategoryName(req.Name, category.ID); err != nil {
		return nil, err
	}

	category.Name = req.Name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, dbError(err, "category")
	}
	s.publish("category", "updated", category.ID)
	return category, nil
}

func (s *catalogService) SetCategoryActive(p *Principal, id uint, req SetActiveRequest) (*model.ProductCategory, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, dbError(err, "category")
	}

	category.Active = *req.Active
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, dbError(err, "category")
	}
	s.publish("category", "updated", category.ID)
	return category, nil
}

func (s *catalogService) DeleteCategory(p *Principal, id uint) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: category still has products", ErrConflict)
		}
		return dbError(err, "category")
	}
	s.publish("category", "deleted", id)
	return nil
}

// --- POS projections ---

func (s *catalogService) PosCategories(p *Principal) ([]model.ProductCategory, error) {
	if err := RequireStaff(p); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindAll(true)
}

func posFilter(q ProductQuery) repository.ProductFilter {
	active := true
	return repository.ProductFilter{
		Search:      q.Search,
		CategoryID:  q.CategoryID,
		Active:      &active,
		OrderByName: true,
	}
}

func (s *catalogService) PosProducts(p *Principal, q ProductQuery) (*pagination.Page[model.Product], error) {
	if err := RequireStaff(p); err != nil {
		return nil, err
	}
	params := pagination.NewParams(q.Page, q.PerPage, posProductsPerPage, posProductsPerPageMax)
	filter := posFilter(q)
	filter.WithRelations = true

	products, total, err := s.productRepo.List(filter, params)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(products, params, total)
	return &page, nil
}

func (s *catalogService) PosProductCount(p *Principal, q ProductQuery) (int64, error) {
	if err := RequireStaff(p); err != nil {
		return 0, err
	}
	return s.productRepo.Count(posFilter(q))
}

// --- products ---

func (s *catalogService) ListProducts(p *Principal, q ProductQuery) (*pagination.Page[model.Product], error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	params := pagination.NewParams(q.Page, q.PerPage, adminProductsPerPage, adminProductsPerPageMax)
	filter := repository.ProductFilter{
		Search:        q.Search,
		CategoryID:    q.CategoryID,
		Active:        q.Active,
		WithRelations: true,
	}

	products, total, err := s.productRepo.List(filter, params)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(products, params, total)
	return &page, nil
}

func (s *catalogService) GetProduct(p *Principal, id uint) (*model.Product, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, dbError(err, "product")
	}
	return product, nil
}

func (s *catalogService) requireCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d does not exist", ErrInvalidReference, id)
		}
		return err
	}
	return nil
}

func productWriteError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: category does not exist", ErrInvalidReference)
	}
	return dbError(err, "product")
}

func (s *catalogService) CreateProduct(p *Principal, req CreateProductRequest) (*model.Product, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(&req); err != nil {
		return nil, err
	}
	if err := s.requireCategory(req.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      *req.Price,
		Active:     true,
	}
	if req.Qty != nil {
		product.Qty = *req.Qty
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, productWriteError(err)
	}

	s.publish("product", "created", product.ID)
	return s.reload(product)
}

func (s *catalogService) reload(product *model.Product) (*model.Product, error) {
	fresh, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		return product, nil
	}
	return fresh, nil
}

func (s *catalogService) UpdateProduct(p *Principal, id uint, req UpdateProductRequest) (*model.Product, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	if req.Qty.Value != nil && *req.Qty.Value < 0 {
		return nil, fieldError("qty", "min", "0")
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, dbError(err, "product")
	}

	if req.CategoryID != nil {
		if err := s.requireCategory(*req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
		product.Category = nil
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Qty.Set {
		product.Qty = 0
		if req.Qty.Value != nil {
			product.Qty = *req.Qty.Value
		}
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, productWriteError(err)
	}
	s.publish("product", "updated", product.ID)
	return s.reload(product)
}

func (s *catalogService) DeleteProduct(p *Principal, id uint) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return dbError(err, "product")
	}
	s.publish("product", "deleted", id)
	return nil
}
