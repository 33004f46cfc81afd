package model

// StoreSettingID is the primary key of the only store_settings row.
const StoreSettingID uint = 1

// StoreSetting holds the receipt header and tax rate.
type StoreSetting struct {
	BaseModel
	StoreName    string  `gorm:"type:varchar(255);not null" json:"store_name"`
	StoreAddress *string `gorm:"type:text" json:"store_address"`
	TaxPercent   float64 `gorm:"type:decimal(5,2);not null;default:0" json:"tax_percent"`
}

// DefaultStoreSetting is what a fresh install reports before anyone edits it.
func DefaultStoreSetting() StoreSetting {
	return StoreSetting{
		BaseModel:  BaseModel{ID: StoreSettingID},
		StoreName:  "Toko",
		TaxPercent: 0,
	}
}
