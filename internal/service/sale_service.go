package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/repository"
	"github.com/RespawnSociety/MesinKasir/internal/ws"
	"github.com/RespawnSociety/MesinKasir/pkg/pagination"
)

// Transaction listings use a fixed page size.
const transactionsPerPage = 20

// SaleService records sales and serves them back to their cashier.
type SaleService interface {
	Record(p *Principal, req SaleRequest) (*model.Transaction, error)
	List(p *Principal, q TransactionQuery) (*pagination.Page[model.Transaction], error)
	Show(p *Principal, id uint) (*model.Transaction, error)
	History(p *Principal, q TransactionQuery) (*pagination.Page[model.TransactionHistory], error)
	HistoryShow(p *Principal, id uint) (*model.TransactionHistory, error)
	// AdminList lists every cashier's sales, optionally narrowed to one.
	AdminList(p *Principal, q TransactionQuery) (*pagination.Page[model.Transaction], error)
}

type SaleRequest struct {
	PayMethod  model.PayMethod   `json:"pay_method" validate:"required,oneof=1 2 3"`
	PaidAmount *int64            `json:"paid_amount" validate:"required,min=0"`
	Items      []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type SaleItemRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Qty       int64  `json:"qty" validate:"required,min=1"`
	UnitPrice *int64 `json:"unit_price" validate:"required,min=0"`
	LineTotal *int64 `json:"line_total" validate:"required,min=0"`
}

// TransactionQuery carries raw listing filters from the query string.
type TransactionQuery struct {
	From      string
	To        string
	Page      int
	CashierID *uint
}

// SaleTotals is the server-side settlement of a cart.
type SaleTotals struct {
	Items  []model.SaleItem
	Total  int64
	Paid   int64
	Change int64
}

// ComputeSale recomputes every line total from qty and unit price, sums
// them in input order and settles the payment. Cash must cover the total;
// QRIS and transfer are always settled at exactly the total.
func ComputeSale(method model.PayMethod, paid int64, lines []SaleItemRequest) (*SaleTotals, error) {
	out := &SaleTotals{Items: make([]model.SaleItem, 0, len(lines))}
	for i, line := range lines {
		unit := *line.UnitPrice
		if unit != 0 && line.Qty > math.MaxInt64/unit {
			return nil, fieldError(fmt.Sprintf("items[%d].qty", i), "overflow", "")
		}
		lineTotal := line.Qty * unit
		if out.Total > math.MaxInt64-lineTotal {
			return nil, fieldError("items", "overflow", "")
		}
		out.Total += lineTotal
		out.Items = append(out.Items, model.SaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Qty:       line.Qty,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
	}

	switch method {
	case model.PayCash:
		if paid < out.Total {
			return nil, fmt.Errorf("%w: cash paid %d is less than total %d", ErrInsufficientPayment, paid, out.Total)
		}
		out.Paid = paid
		out.Change = paid - out.Total
	case model.PayQRIS, model.PayTransfer:
		out.Paid = out.Total
		out.Change = 0
	default:
		return nil, fieldError("pay_method", "oneof", "1 2 3")
	}
	return out, nil
}

type saleService struct {
	txRepo    repository.TransactionRepository
	events    EventPublisher
	telemetry Telemetry
	loc       *time.Location
	now       func() time.Time
}

func NewSaleService(txRepo repository.TransactionRepository, events EventPublisher, telemetry Telemetry, loc *time.Location) SaleService {
	if loc == nil {
		loc = time.UTC
	}
	return &saleService{
		txRepo:    txRepo,
		events:    publisherOrNop(events),
		telemetry: telemetryOrNop(telemetry),
		loc:       loc,
		now:       time.Now,
	}
}

func (s *saleService) Record(p *Principal, req SaleRequest) (*model.Transaction, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	totals, err := ComputeSale(req.PayMethod, *req.PaidAmount, req.Items)
	if err != nil {
		return nil, err
	}

	trx := &model.Transaction{
		CashierID:    p.UserID,
		Items:        totals.Items,
		PayMethod:    req.PayMethod,
		TotalAmount:  totals.Total,
		PaidAmount:   totals.Paid,
		ChangeAmount: totals.Change,
		PaidAt:       s.now(),
	}
	if _, err := s.txRepo.CreateWithHistory(trx); err != nil {
		return nil, dbError(err, "transaction")
	}

	s.telemetry.SaleRecorded(trx.PayMethod, trx.TotalAmount)
	s.events.Publish(ws.EventSaleRecorded, map[string]interface{}{
		"id":           trx.ID,
		"group_id":     trx.GroupID,
		"cashier_id":   trx.CashierID,
		"pay_method":   trx.PayMethod.String(),
		"total_amount": trx.TotalAmount,
		"paid_at":      trx.PaidAt,
	})
	return trx, nil
}

// ParseDateRange reads inclusive from/to bounds. Each accepts YYYY-MM-DD
// (interpreted in loc) or RFC3339. The upper bound is moved to the end of
// its calendar day in loc.
func ParseDateRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if v := strings.TrimSpace(from); v != "" {
		t, err := parseDate(v, loc)
		if err != nil {
			return nil, nil, fieldError("from", "date", "")
		}
		start = &t
	}
	if v := strings.TrimSpace(to); v != "" {
		t, err := parseDate(v, loc)
		if err != nil {
			return nil, nil, fieldError("to", "date", "")
		}
		t = endOfDay(t, loc)
		end = &t
	}
	return start, end, nil
}

func parseDate(v string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, v, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	return startOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func (s *saleService) filter(q TransactionQuery, cashierID *uint) (repository.TransactionFilter, pagination.Params, error) {
	from, to, err := ParseDateRange(q.From, q.To, s.loc)
	if err != nil {
		return repository.TransactionFilter{}, pagination.Params{}, err
	}
	params := pagination.NewParams(q.Page, transactionsPerPage, transactionsPerPage, transactionsPerPage)
	return repository.TransactionFilter{CashierID: cashierID, From: from, To: to}, params, nil
}

func (s *saleService) List(p *Principal, q TransactionQuery) (*pagination.Page[model.Transaction], error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	owner := p.UserID
	filter, params, err := s.filter(q, &owner)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.txRepo.List(filter, params)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(rows, params, total)
	return &page, nil
}

func (s *saleService) Show(p *Principal, id uint) (*model.Transaction, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	owner := p.UserID
	trx, err := s.txRepo.FindByID(id, &owner)
	if err != nil {
		return nil, dbError(err, "transaction")
	}
	return trx, nil
}

func (s *saleService) History(p *Principal, q TransactionQuery) (*pagination.Page[model.TransactionHistory], error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	owner := p.UserID
	filter, params, err := s.filter(q, &owner)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.txRepo.ListHistory(filter, params)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(rows, params, total)
	return &page, nil
}

func (s *saleService) HistoryShow(p *Principal, id uint) (*model.TransactionHistory, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	owner := p.UserID
	history, err := s.txRepo.FindHistoryByID(id, &owner)
	if err != nil {
		return nil, dbError(err, "transaction history")
	}
	return history, nil
}

func (s *saleService) AdminList(p *Principal, q TransactionQuery) (*pagination.Page[model.Transaction], error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	filter, params, err := s.filter(q, q.CashierID)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.txRepo.List(filter, params)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(rows, params, total)
	return &page, nil
}
