package repository

import (
	"github.com/RespawnSociety/MesinKasir/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	// GetOrCreate returns the singleton row, inserting defaults when absent.
	GetOrCreate(defaults model.StoreSetting) (*model.StoreSetting, error)
	// Save upserts the row; store_address is only written when withAddress is set.
	Save(setting *model.StoreSetting, withAddress bool) error
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) GetOrCreate(defaults model.StoreSetting) (*model.StoreSetting, error) {
	defaults.ID = model.StoreSettingID
	// Two concurrent first reads both insert; the loser is a no-op.
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error
	if err != nil {
		return nil, err
	}

	var setting model.StoreSetting
	if err := r.db.First(&setting, model.StoreSettingID).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) Save(setting *model.StoreSetting, withAddress bool) error {
	setting.ID = model.StoreSettingID
	columns := []string{"store_name", "tax_percent", "updated_at"}
	if withAddress {
		columns = append(columns, "store_address")
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(setting).Error
}
