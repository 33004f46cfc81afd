package model

// ProductCategory groups products on the POS screen.
type ProductCategory struct {
	BaseModel
	Name   string `gorm:"type:varchar(60);uniqueIndex;not null" json:"name"`
	Active bool   `gorm:"not null" json:"active"`
}

// Product is a sellable item. Price and Qty are in the smallest currency unit.
type Product struct {
	BaseModel
	CategoryID uint             `gorm:"not null;index:idx_products_category_active" json:"category_id"`
	Category   *ProductCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Name       string           `gorm:"type:varchar(120);not null" json:"name"`
	Price      int64            `gorm:"not null;check:price >= 0" json:"price"`
	Qty        int64            `gorm:"not null;default:0;check:qty >= 0" json:"qty"`
	Active     bool             `gorm:"not null;index:idx_products_category_active" json:"active"`

	Stocks []ProductStock `gorm:"foreignKey:ProductID" json:"stocks,omitempty"`
}
