package service

import (
	"strings"
	"unicode/utf8"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/repository"
)

// SettingService reads and writes the single store settings row.
type SettingService interface {
	Show(p *Principal) (*model.StoreSetting, error)
	Update(p *Principal, req StoreSettingRequest) (*model.StoreSetting, error)
}

type StoreSettingRequest struct {
	StoreName    string        `json:"store_name" validate:"required,min=2,max=255"`
	StoreAddress Patch[string] `json:"store_address"`
	TaxPercent   *float64      `json:"tax_percent" validate:"required,min=0,max=100"`
}

type settingService struct {
	repo repository.SettingRepository
}

func NewSettingService(repo repository.SettingRepository) SettingService {
	return &settingService{repo: repo}
}

func (s *settingService) Show(p *Principal) (*model.StoreSetting, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	return s.repo.GetOrCreate(model.DefaultStoreSetting())
}

func (s *settingService) Update(p *Principal, req StoreSettingRequest) (*model.StoreSetting, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	req.StoreName = strings.TrimSpace(req.StoreName)
	if err := validate(&req); err != nil {
		return nil, err
	}

	// An absent store_address keeps the stored one; null or blank clears it.
	var address *string
	if req.StoreAddress.Value != nil {
		trimmed := strings.TrimSpace(*req.StoreAddress.Value)
		if utf8.RuneCountInString(trimmed) > 2000 {
			return nil, fieldError("store_address", "max", "2000")
		}
		if trimmed != "" {
			address = &trimmed
		}
	}

	setting := &model.StoreSetting{
		StoreName:    req.StoreName,
		StoreAddress: address,
		TaxPercent:   *req.TaxPercent,
	}
	if err := s.repo.Save(setting, req.StoreAddress.Set); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(model.DefaultStoreSetting())
}
