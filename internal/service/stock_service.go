package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/repository"
	"github.com/RespawnSociety/MesinKasir/internal/ws"

	"gorm.io/gorm"
)

// StockService manages the stock master list and its links to products.
type StockService interface {
	List(p *Principal) ([]model.Stock, error)
	Create(p *Principal, req StockRequest) (*model.Stock, error)
	Update(p *Principal, id uint, req UpdateStockRequest) (*model.Stock, error)
	Delete(p *Principal, id uint) error

	ProductStocks(p *Principal, productID uint) ([]model.ProductStock, error)
	Attach(p *Principal, productID uint, req AttachStockRequest) (*model.ProductStock, error)
	UpdateLink(p *Principal, productID, stockID uint, req UpdateLinkRequest) (*model.ProductStock, error)
	Detach(p *Principal, productID, stockID uint) error
}

type StockRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Qty      *int64 `json:"qty" validate:"omitempty,min=0"`
	BuyPrice *int64 `json:"buy_price" validate:"omitempty,min=0"`
	Active   *bool  `json:"active"`
}

type UpdateStockRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=80"`
	Qty      *int64  `json:"qty" validate:"omitempty,min=0"`
	BuyPrice *int64  `json:"buy_price" validate:"omitempty,min=0"`
	Active   *bool   `json:"active"`
}

type AttachStockRequest struct {
	StockID uint   `json:"stock_id" validate:"required"`
	Qty     *int64 `json:"qty" validate:"required,min=0"`
	Active  *bool  `json:"active"`
}

type UpdateLinkRequest struct {
	Qty    *int64 `json:"qty" validate:"omitempty,min=0"`
	Active *bool  `json:"active"`
}

type stockService struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	events      EventPublisher
}

func NewStockService(stockRepo repository.StockRepository, productRepo repository.ProductRepository, events EventPublisher) StockService {
	return &stockService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
		events:      publisherOrNop(events),
	}
}

func (s *stockService) publish(entity, action string, id uint) {
	s.events.Publish(ws.EventCatalogUpdate, map[string]interface{}{
		"entity": entity,
		"action": action,
		"id":     id,
	})
}

func (s *stockService) List(p *Principal) ([]model.Stock, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	return s.stockRepo.FindAll()
}

func (s *stockService) checkName(name string, excludeID uint) error {
	taken, err := s.stockRepo.NameTaken(name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: stock name already exists", ErrConflict)
	}
	return nil
}

func (s *stockService) Create(p *Principal, req StockRequest) (*model.Stock, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(&req); err != nil {
		return nil, err
	}
	if err := s.checkName(req.Name, 0); err != nil {
		return nil, err
	}

	stock := &model.Stock{Name: req.Name, Active: true}
	if req.Qty != nil {
		stock.Qty = *req.Qty
	}
	if req.BuyPrice != nil {
		stock.BuyPrice = *req.BuyPrice
	}
	if req.Active != nil {
		stock.Active = *req.Active
	}
	if err := s.stockRepo.Create(stock); err != nil {
		return nil, dbError(err, "stock")
	}
	s.publish("stock", "created", stock.ID)
	return stock, nil
}

func (s *stockService) Update(p *Principal, id uint, req UpdateStockRequest) (*model.Stock, error) {
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
	stock, err := s.stockRepo.FindByID(id)
	if err != nil {
		return nil, dbError(err, "stock")
	}

	if req.Name != nil {
		if err := s.checkName(*req.Name, stock.ID); err != nil {
			return nil, err
		}
		stock.Name = *req.Name
	}
	if req.Qty != nil {
		stock.Qty = *req.Qty
	}
	if req.BuyPrice != nil {
		stock.BuyPrice = *req.BuyPrice
	}
	if req.Active != nil {
		stock.Active = *req.Active
	}
	if err := s.stockRepo.Update(stock); err != nil {
		return nil, dbError(err, "stock")
	}
	s.publish("stock", "updated", stock.ID)
	return stock, nil
}

func (s *stockService) Delete(p *Principal, id uint) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	links, err := s.stockRepo.CountPivots(id)
	if err != nil {
		return err
	}
	if links > 0 {
		return fmt.Errorf("%w: stock is attached to %d product(s)", ErrConflict, links)
	}
	if err := s.stockRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: stock is attached to a product", ErrConflict)
		}
		return dbError(err, "stock")
	}
	s.publish("stock", "deleted", id)
	return nil
}

func (s *stockService) requireProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return dbError(err, "product")
	}
	return nil
}

func (s *stockService) ProductStocks(p *Principal, productID uint) ([]model.ProductStock, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	return s.stockRepo.ListPivots(productID)
}

func (s *stockService) Attach(p *Principal, productID uint, req AttachStockRequest) (*model.ProductStock, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	if _, err := s.stockRepo.FindByID(req.StockID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: stock %d does not exist", ErrInvalidReference, req.StockID)
		}
		return nil, err
	}

	pivot := &model.ProductStock{
		ProductID: productID,
		StockID:   req.StockID,
		Qty:       *req.Qty,
		Active:    true,
	}
	if req.Active != nil {
		pivot.Active = *req.Active
	}
	if err := s.stockRepo.UpsertPivot(pivot); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("%w: product or stock no longer exists", ErrInvalidReference)
		}
		return nil, err
	}
	s.publish("product_stock", "attached", productID)
	return s.stockRepo.FindPivot(productID, req.StockID)
}

func (s *stockService) UpdateLink(p *Principal, productID, stockID uint, req UpdateLinkRequest) (*model.ProductStock, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	pivot, err := s.stockRepo.FindPivot(productID, stockID)
	if err != nil {
		return nil, dbError(err, "product stock link")
	}

	if req.Qty != nil {
		pivot.Qty = *req.Qty
	}
	if req.Active != nil {
		pivot.Active = *req.Active
	}
	if err := s.stockRepo.UpdatePivot(pivot); err != nil {
		return nil, dbError(err, "product stock link")
	}
	s.publish("product_stock", "updated", productID)
	return pivot, nil
}

func (s *stockService) Detach(p *Principal, productID, stockID uint) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	if err := s.stockRepo.DeletePivot(productID, stockID); err != nil {
		return dbError(err, "product stock link")
	}
	s.publish("product_stock", "detached", productID)
	return nil
}
