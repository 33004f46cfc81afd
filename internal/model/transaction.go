package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PayMethod is the payment channel of a sale.
type PayMethod uint8

const (
	PayCash     PayMethod = 1
	PayQRIS     PayMethod = 2
	PayTransfer PayMethod = 3
)

func (m PayMethod) Valid() bool {
	switch m {
	case PayCash, PayQRIS, PayTransfer:
		return true
	default:
		return false
	}
}

func (m PayMethod) String() string {
	switch m {
	case PayCash:
		return "cash"
	case PayQRIS:
		return "qris"
	case PayTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// SaleItem is one cart line as stored in the items JSON column.
type SaleItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Qty       int64  `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// Transaction is one completed sale, owned by the cashier who recorded it.
type Transaction struct {
	BaseModel
	GroupID      string                        `gorm:"type:varchar(36);uniqueIndex;not null" json:"group_id"`
	CashierID    uint                          `gorm:"not null;index:idx_transactions_cashier_paid" json:"cashier_id"`
	Cashier      *User                         `gorm:"foreignKey:CashierID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Items        datatypes.JSONSlice[SaleItem] `gorm:"type:jsonb;not null" json:"items"`
	PayMethod    PayMethod                     `gorm:"type:smallint;not null;default:1" json:"pay_method"`
	TotalAmount  int64                         `gorm:"not null" json:"total_amount"`
	PaidAmount   int64                         `gorm:"not null" json:"paid_amount"`
	ChangeAmount int64                         `gorm:"not null" json:"change_amount"`
	PaidAt       time.Time                     `gorm:"not null;index:idx_transactions_cashier_paid" json:"paid_at"`
}

// BeforeCreate fills the correlation token when the caller did not set one.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.GroupID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		t.GroupID = id.String()
	}
	return nil
}

// TransactionHistory is the append-only archival copy of a Transaction.
type TransactionHistory struct {
	BaseModel
	GroupID             string                        `gorm:"type:varchar(36);index;not null" json:"group_id"`
	SourceTransactionID *uint                         `gorm:"index" json:"source_transaction_id"`
	SourceTransaction   *Transaction                  `gorm:"foreignKey:SourceTransactionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CashierID           uint                          `gorm:"not null;index:idx_histories_cashier_paid" json:"cashier_id"`
	Cashier             *User                         `gorm:"foreignKey:CashierID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Items               datatypes.JSONSlice[SaleItem] `gorm:"type:jsonb;not null" json:"items"`
	PayMethod           PayMethod                     `gorm:"type:smallint;not null;default:1" json:"pay_method"`
	TotalAmount         int64                         `gorm:"not null" json:"total_amount"`
	PaidAmount          int64                         `gorm:"not null" json:"paid_amount"`
	ChangeAmount        int64                         `gorm:"not null" json:"change_amount"`
	PaidAt              time.Time                     `gorm:"not null;index:idx_histories_cashier_paid" json:"paid_at"`
}

// HistoryOf builds the archival twin of a persisted transaction.
func HistoryOf(t *Transaction) *TransactionHistory {
	sourceID := t.ID
	items := make(datatypes.JSONSlice[SaleItem], len(t.Items))
	copy(items, t.Items)
	return &TransactionHistory{
		GroupID:             t.GroupID,
		SourceTransactionID: &sourceID,
		CashierID:           t.CashierID,
		Items:               items,
		PayMethod:           t.PayMethod,
		TotalAmount:         t.TotalAmount,
		PaidAmount:          t.PaidAmount,
		ChangeAmount:        t.ChangeAmount,
		PaidAt:              t.PaidAt,
	}
}
