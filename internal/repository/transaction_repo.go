package repository

import (
	"time"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/pkg/pagination"

	"gorm.io/gorm"
)

// TransactionFilter scopes sale listings. A nil CashierID lists every cashier.
type TransactionFilter struct {
	CashierID *uint
	From      *time.Time
	To        *time.Time
}

type TransactionRepository interface {
	// CreateWithHistory inserts the sale and its archival twin atomically.
	CreateWithHistory(trx *model.Transaction) (*model.TransactionHistory, error)
	List(filter TransactionFilter, page pagination.Params) ([]model.Transaction, int64, error)
	FindByID(id uint, cashierID *uint) (*model.Transaction, error)
	ListHistory(filter TransactionFilter, page pagination.Params) ([]model.TransactionHistory, int64, error)
	FindHistoryByID(id uint, cashierID *uint) (*model.TransactionHistory, error)

	GetSalesMovement(start, end time.Time, timezone string) ([]SalesMovementData, error)
	GetDashboardStats(lowStockThreshold int64, dayStart, dayEnd time.Time) (*DashboardStats, error)
}

// SalesMovementData untuk chart data
type SalesMovementData struct {
	Date   string `json:"date"`
	Count  int64  `json:"count"`
	Amount int64  `json:"amount"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts    int64 `json:"total_products"`
	ActiveProducts   int64 `json:"active_products"`
	LowStockCount    int64 `json:"low_stock_count"`
	TodaySalesCount  int64 `json:"today_sales_count"`
	TodaySalesAmount int64 `json:"today_sales_amount"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) CreateWithHistory(trx *model.Transaction) (*model.TransactionHistory, error) {
	var history *model.TransactionHistory
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Cashier").Create(trx).Error; err != nil {
			return err
		}
		history = model.HistoryOf(trx)
		return tx.Omit("Cashier", "SourceTransaction").Create(history).Error
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func scoped(q *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.CashierID != nil {
		q = q.Where("cashier_id = ?", *filter.CashierID)
	}
	if filter.From != nil {
		q = q.Where("paid_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("paid_at <= ?", *filter.To)
	}
	return q
}

func (r *transactionRepo) List(filter TransactionFilter, page pagination.Params) ([]model.Transaction, int64, error) {
	var total int64
	if err := scoped(r.db.Model(&model.Transaction{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []model.Transaction
	err := scoped(r.db, filter).
		Order("paid_at DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.PerPage).
		Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepo) FindByID(id uint, cashierID *uint) (*model.Transaction, error) {
	var transaction model.Transaction
	err := scoped(r.db, TransactionFilter{CashierID: cashierID}).First(&transaction, id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) ListHistory(filter TransactionFilter, page pagination.Params) ([]model.TransactionHistory, int64, error) {
	var total int64
	if err := scoped(r.db.Model(&model.TransactionHistory{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var histories []model.TransactionHistory
	err := scoped(r.db, filter).
		Order("paid_at DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.PerPage).
		Find(&histories).Error
	return histories, total, err
}

func (r *transactionRepo) FindHistoryByID(id uint, cashierID *uint) (*model.TransactionHistory, error) {
	var history model.TransactionHistory
	err := scoped(r.db, TransactionFilter{CashierID: cashierID}).First(&history, id).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// GetSalesMovement aggregates sales per calendar day in the given timezone.
func (r *transactionRepo) GetSalesMovement(start, end time.Time, timezone string) ([]SalesMovementData, error) {
	var results []SalesMovementData

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			to_char(paid_at AT TIME ZONE ?, 'YYYY-MM-DD') as date,
			COUNT(*) as count,
			COALESCE(SUM(total_amount), 0) as amount
		`, timezone).
		Where("paid_at BETWEEN ? AND ?", start, end).
		Group("date").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesMovementData
		if err := rows.Scan(&data.Date, &data.Count, &data.Amount); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *transactionRepo) GetDashboardStats(lowStockThreshold int64, dayStart, dayEnd time.Time) (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("active = ?", true).Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("qty < ?", lowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	today := r.db.Model(&model.Transaction{}).Where("paid_at BETWEEN ? AND ?", dayStart, dayEnd)
	if err := today.Count(&stats.TodaySalesCount).Error; err != nil {
		return nil, err
	}
	err := r.db.Model(&model.Transaction{}).
		Where("paid_at BETWEEN ? AND ?", dayStart, dayEnd).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TodaySalesAmount).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
