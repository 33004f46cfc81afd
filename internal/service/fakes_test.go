package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/repository"
	"github.com/RespawnSociety/MesinKasir/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories. They mimic the translated gorm errors the real
// repositories surface.

type memoryUsers struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{rows: map[uint]model.User{}}
}

func (m *memoryUsers) find(match func(u model.User) bool) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if match(u) {
			cp := u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) FindByEmail(email string) (*model.User, error) {
	return m.find(func(u model.User) bool { return u.Email == email })
}

func (m *memoryUsers) FindByID(id uint) (*model.User, error) {
	return m.find(func(u model.User) bool { return u.ID == id })
}

func (m *memoryUsers) FindByUsername(username string) (*model.User, error) {
	return m.find(func(u model.User) bool { return u.Username != nil && *u.Username == username })
}

func (m *memoryUsers) FindKasirByUsername(username string) (*model.User, error) {
	return m.find(func(u model.User) bool {
		return u.Role == model.RoleKasir && u.Username != nil && *u.Username == username
	})
}

func (m *memoryUsers) EmailExists(email string) (bool, error) {
	_, err := m.FindByEmail(email)
	return err == nil, nil
}

func (m *memoryUsers) ListKasirs() ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.User
	for _, u := range m.rows {
		if u.Role == model.RoleKasir {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].Username < *out[j].Username })
	return out, nil
}

func (m *memoryUsers) Create(user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.rows[user.ID] = *user
	return nil
}

func (m *memoryUsers) Update(user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[user.ID] = *user
	return nil
}

func (m *memoryUsers) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

var _ repository.UserRepository = (*memoryUsers)(nil)

type memoryTokens struct {
	mu   sync.Mutex
	rows map[uuid.UUID]model.AccessToken
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{rows: map[uuid.UUID]model.AccessToken{}}
}

func (m *memoryTokens) Create(token *model.AccessToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[token.ID] = *token
	return nil
}

func (m *memoryTokens) FindByID(id uuid.UUID) (*model.AccessToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (m *memoryTokens) Touch(id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.rows[id]; ok {
		t.LastUsedAt = &at
		m.rows[id] = t
	}
	return nil
}

func (m *memoryTokens) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memoryTokens) DeleteByUser(userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.rows {
		if t.UserID == userID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *memoryTokens) countFor(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.rows {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

type memoryCatalog struct {
	mu         sync.Mutex
	nextID     uint
	categories map[uint]model.ProductCategory
	products   map[uint]model.Product
	stocks     map[uint]model.Stock
	pivots     map[[2]uint]model.ProductStock

	updatePivotErr error
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		categories: map[uint]model.ProductCategory{},
		products:   map[uint]model.Product{},
		stocks:     map[uint]model.Stock{},
		pivots:     map[[2]uint]model.ProductStock{},
	}
}

func (m *memoryCatalog) id() uint {
	m.nextID++
	return m.nextID
}

// categories

type memoryCategories struct{ *memoryCatalog }

func (m memoryCategories) FindAll(activeOnly bool) ([]model.ProductCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ProductCategory
	for _, c := range m.categories {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memoryCategories) FindByID(id uint) (*model.ProductCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (m memoryCategories) NameTaken(name string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m memoryCategories) Create(c *model.ProductCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	m.categories[c.ID] = *c
	return nil
}

func (m memoryCategories) Update(c *model.ProductCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = *c
	return nil
}

func (m memoryCategories) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, p := range m.products {
		if p.CategoryID == id {
			return gorm.ErrForeignKeyViolated
		}
	}
	delete(m.categories, id)
	return nil
}

// products

type memoryProducts struct{ *memoryCatalog }

func (m memoryProducts) Create(p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[p.CategoryID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	p.ID = m.id()
	p.CreatedAt = time.Now()
	m.products[p.ID] = *p
	return nil
}

func (m memoryProducts) match(f repository.ProductFilter, p model.Product) bool {
	if s := strings.TrimSpace(f.Search); s != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(s)) {
		return false
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.Active != nil && p.Active != *f.Active {
		return false
	}
	return true
}

func (m memoryProducts) List(f repository.ProductFilter, page pagination.Params) ([]model.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Product
	for _, p := range m.products {
		if m.match(f, p) {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if f.OrderByName {
			return all[i].Name < all[j].Name
		}
		return all[i].ID > all[j].ID
	})
	total := int64(len(all))
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m memoryProducts) Count(f repository.ProductFilter) (int64, error) {
	_, total, err := m.List(f, pagination.Params{Page: 1, PerPage: 1})
	return total, err
}

func (m memoryProducts) FindByID(id uint) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if c, ok := m.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	return &p, nil
}

func (m memoryProducts) Update(p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.Category = nil
	m.products[p.ID] = cp
	return nil
}

func (m memoryProducts) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for key := range m.pivots {
		if key[0] == id {
			delete(m.pivots, key)
		}
	}
	delete(m.products, id)
	return nil
}

// stocks

type memoryStocks struct{ *memoryCatalog }

func (m memoryStocks) FindAll() ([]model.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Stock
	for _, s := range m.stocks {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memoryStocks) FindByID(id uint) (*model.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stocks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m memoryStocks) NameTaken(name string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.stocks {
		if s.Name == name && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m memoryStocks) Create(s *model.Stock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	m.stocks[s.ID] = *s
	return nil
}

func (m memoryStocks) Update(s *model.Stock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stocks[s.ID] = *s
	return nil
}

func (m memoryStocks) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stocks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.stocks, id)
	return nil
}

func (m memoryStocks) CountPivots(stockID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.pivots {
		if key[1] == stockID {
			n++
		}
	}
	return n, nil
}

func (m memoryStocks) ListPivots(productID uint) ([]model.ProductStock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ProductStock
	for key, p := range m.pivots {
		if key[0] == productID {
			s := m.stocks[key[1]]
			p.Stock = &s
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock.Name < out[j].Stock.Name })
	return out, nil
}

func (m memoryStocks) FindPivot(productID, stockID uint) (*model.ProductStock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pivots[[2]uint{productID, stockID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (m memoryStocks) UpsertPivot(p *model.ProductStock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{p.ProductID, p.StockID}
	if existing, ok := m.pivots[key]; ok {
		existing.Qty = p.Qty
		existing.Active = p.Active
		m.pivots[key] = existing
		return nil
	}
	p.ID = m.id()
	m.pivots[key] = *p
	return nil
}

func (m memoryStocks) UpdatePivot(p *model.ProductStock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updatePivotErr != nil {
		return m.updatePivotErr
	}
	m.pivots[[2]uint{p.ProductID, p.StockID}] = *p
	return nil
}

func (m memoryStocks) DeletePivot(productID, stockID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{productID, stockID}
	if _, ok := m.pivots[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.pivots, key)
	return nil
}

// transactions

type memoryTransactions struct {
	mu        sync.Mutex
	nextID    uint
	sales     []model.Transaction
	histories []model.TransactionHistory
	failWith  error
}

func (m *memoryTransactions) CreateWithHistory(trx *model.Transaction) (*model.TransactionHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if err := trx.BeforeCreate(nil); err != nil {
		return nil, err
	}
	m.nextID++
	trx.ID = m.nextID
	h := model.HistoryOf(trx)
	h.ID = m.nextID
	m.sales = append(m.sales, *trx)
	m.histories = append(m.histories, *h)
	return h, nil
}

func inRange(f repository.TransactionFilter, cashierID uint, paidAt time.Time) bool {
	if f.CashierID != nil && cashierID != *f.CashierID {
		return false
	}
	if f.From != nil && paidAt.Before(*f.From) {
		return false
	}
	if f.To != nil && paidAt.After(*f.To) {
		return false
	}
	return true
}

func (m *memoryTransactions) List(f repository.TransactionFilter, page pagination.Params) ([]model.Transaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Transaction
	for i := len(m.sales) - 1; i >= 0; i-- {
		t := m.sales[i]
		if inRange(f, t.CashierID, t.PaidAt) {
			out = append(out, t)
		}
	}
	total := int64(len(out))
	if len(out) > page.PerPage {
		out = out[:page.PerPage]
	}
	return out, total, nil
}

func (m *memoryTransactions) FindByID(id uint, cashierID *uint) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.sales {
		if t.ID == id && (cashierID == nil || t.CashierID == *cashierID) {
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryTransactions) ListHistory(f repository.TransactionFilter, page pagination.Params) ([]model.TransactionHistory, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TransactionHistory
	for i := len(m.histories) - 1; i >= 0; i-- {
		h := m.histories[i]
		if inRange(f, h.CashierID, h.PaidAt) {
			out = append(out, h)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryTransactions) FindHistoryByID(id uint, cashierID *uint) (*model.TransactionHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.histories {
		if h.ID == id && (cashierID == nil || h.CashierID == *cashierID) {
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryTransactions) GetSalesMovement(start, end time.Time, timezone string) ([]repository.SalesMovementData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	byDay := map[string]*repository.SalesMovementData{}
	var order []string
	for _, t := range m.sales {
		if t.PaidAt.Before(start) || t.PaidAt.After(end) {
			continue
		}
		key := t.PaidAt.In(loc).Format(time.DateOnly)
		if _, ok := byDay[key]; !ok {
			byDay[key] = &repository.SalesMovementData{Date: key}
			order = append(order, key)
		}
		byDay[key].Count++
		byDay[key].Amount += t.TotalAmount
	}
	sort.Strings(order)
	out := make([]repository.SalesMovementData, 0, len(order))
	for _, k := range order {
		out = append(out, *byDay[k])
	}
	return out, nil
}

func (m *memoryTransactions) GetDashboardStats(lowStockThreshold int64, dayStart, dayEnd time.Time) (*repository.DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &repository.DashboardStats{}
	for _, t := range m.sales {
		if !t.PaidAt.Before(dayStart) && !t.PaidAt.After(dayEnd) {
			stats.TodaySalesCount++
			stats.TodaySalesAmount += t.TotalAmount
		}
	}
	return stats, nil
}

// settings

type memorySettings struct {
	mu  sync.Mutex
	row *model.StoreSetting
}

func (m *memorySettings) GetOrCreate(defaults model.StoreSetting) (*model.StoreSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row == nil {
		defaults.ID = model.StoreSettingID
		m.row = &defaults
	}
	cp := *m.row
	return &cp, nil
}

func (m *memorySettings) Save(s *model.StoreSetting, withAddress bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = model.StoreSettingID
	cp := *s
	if !withAddress && m.row != nil {
		cp.StoreAddress = m.row.StoreAddress
	}
	m.row = &cp
	return nil
}

// events and telemetry

type recordedEvent struct {
	name string
	data interface{}
}

type capturePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (c *capturePublisher) Publish(event string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, recordedEvent{event, data})
}

func (c *capturePublisher) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.name)
	}
	return out
}

type captureTelemetry struct {
	sales  int
	amount int64
	logins map[bool]int
}

func (c *captureTelemetry) SaleRecorded(_ model.PayMethod, total int64) {
	c.sales++
	c.amount += total
}

func (c *captureTelemetry) LoginAttempt(success bool) {
	if c.logins == nil {
		c.logins = map[bool]int{}
	}
	c.logins[success]++
}

func ptr[T any](v T) *T {
	return &v
}

var (
	testAdmin = &Principal{UserID: 1, Email: "owner@toko1.com", Role: model.RoleAdmin}
	testKasir = &Principal{UserID: 2, Email: "budi@toko1.com", Role: model.RoleKasir}
)
