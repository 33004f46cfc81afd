package model

// Stock is an inventory unit in the admin-managed master list.
type Stock struct {
	BaseModel
	Name     string `gorm:"type:varchar(80);uniqueIndex;not null" json:"name"`
	Qty      int64  `gorm:"not null;default:0;check:qty >= 0" json:"qty"`
	BuyPrice int64  `gorm:"not null;default:0;check:buy_price >= 0" json:"buy_price"`
	Active   bool   `gorm:"not null;index" json:"active"`
}

// ProductStock is the pivot between a product and a stock unit.
// Deleting the product cascades; deleting a referenced stock is refused.
type ProductStock struct {
	BaseModel
	ProductID uint     `gorm:"not null;uniqueIndex:idx_product_stock_pair" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	StockID   uint     `gorm:"not null;uniqueIndex:idx_product_stock_pair;index" json:"stock_id"`
	Stock     *Stock   `gorm:"foreignKey:StockID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"stock,omitempty"`
	Qty       int64    `gorm:"not null;default:0;check:qty >= 0" json:"qty"`
	Active    bool     `gorm:"not null" json:"active"`
}

func (ProductStock) TableName() string {
	return "product_stock"
}
