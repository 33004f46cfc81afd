package service

import (
	"time"

	"github.com/RespawnSociety/MesinKasir/internal/repository"
)

const maxMovementDays = 90

type DashboardService interface {
	GetSalesMovement(p *Principal, days int) ([]repository.SalesMovementData, error)
	GetDashboardStats(p *Principal) (*repository.DashboardStats, error)
}

type dashboardService struct {
	txRepo            repository.TransactionRepository
	lowStockThreshold int64
	loc               *time.Location
	now               func() time.Time
}

func NewDashboardService(txRepo repository.TransactionRepository, lowStockThreshold int64, loc *time.Location) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{
		txRepo:            txRepo,
		lowStockThreshold: lowStockThreshold,
		loc:               loc,
		now:               time.Now,
	}
}

// GetSalesMovement returns one entry per calendar day for the last days
// days (today included), with zero entries for days without sales.
func (s *dashboardService) GetSalesMovement(p *Principal, days int) ([]repository.SalesMovementData, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 7
	}
	if days > maxMovementDays {
		days = maxMovementDays
	}

	now := s.now()
	endDate := endOfDay(now, s.loc)
	startDate := startOfDay(now, s.loc).AddDate(0, 0, -(days - 1))

	rows, err := s.txRepo.GetSalesMovement(startDate, endDate, s.loc.String())
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]repository.SalesMovementData, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	out := make([]repository.SalesMovementData, 0, days)
	for d := startDate; d.Before(endDate); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		if r, ok := byDate[key]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, repository.SalesMovementData{Date: key})
	}
	return out, nil
}

func (s *dashboardService) GetDashboardStats(p *Principal) (*repository.DashboardStats, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	now := s.now()
	return s.txRepo.GetDashboardStats(s.lowStockThreshold, startOfDay(now, s.loc), endOfDay(now, s.loc))
}
