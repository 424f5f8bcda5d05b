package command

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tair/stock-reservation/internal/config"
	"github.com/tair/stock-reservation/internal/inventory/domain"
)

// memStore backs the in-memory unit of work used across the command tests.
// WithinTx runs the closure against a deep copy and swaps it in on success,
// so rollback semantics match the real database.
type memStore struct {
	products     map[uint]*domain.Product
	reservations map[string]*domain.Reservation
	nextID       uint
}

func newMemStore() *memStore {
	return &memStore{
		products:     make(map[uint]*domain.Product),
		reservations: make(map[string]*domain.Reservation),
		nextID:       1,
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = s.nextID
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, r := range s.reservations {
		cr := *r
		c.reservations[id] = &cr
	}
	return c
}

func (s *memStore) addProduct(p domain.Product) *domain.Product {
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	}
	s.products[p.ID] = &p
	return &p
}

type memUnitOfWork struct {
	mu    sync.Mutex
	store *memStore
}

func newMemUnitOfWork(store *memStore) *memUnitOfWork {
	return &memUnitOfWork{store: store}
}

func (u *memUnitOfWork) WithinTx(ctx context.Context, fn func(repos domain.RepoSet) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	work := u.store.clone()
	if err := fn(&memRepoSet{store: work}); err != nil {
		return err
	}
	u.store.products = work.products
	u.store.reservations = work.reservations
	u.store.nextID = work.nextID
	return nil
}

type memRepoSet struct {
	store *memStore
}

func (s *memRepoSet) Ledger() domain.LedgerRepository {
	return &memLedgerRepo{store: s.store}
}

func (s *memRepoSet) Reservations() domain.ReservationRepository {
	return &memReservationRepo{store: s.store}
}

type memLedgerRepo struct {
	store *memStore
}

func (r *memLedgerRepo) Create(ctx context.Context, product *domain.Product) error {
	created := r.store.addProduct(*product)
	product.ID = created.ID
	return nil
}

func (r *memLedgerRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memLedgerRepo) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLedgerRepo) LockByID(ctx context.Context, id uint) (*domain.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *memLedgerRepo) Save(ctx context.Context, product *domain.Product) error {
	cp := *product
	r.store.products[cp.ID] = &cp
	return nil
}

type memReservationRepo struct {
	store *memStore
}

func (r *memReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	cp := *reservation
	cp.CreatedAt = time.Now()
	r.store.reservations[cp.ID] = &cp
	return nil
}

func (r *memReservationRepo) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *memReservationRepo) FindByOrderID(ctx context.Context, orderID string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range r.store.reservations {
		if res.OrderID == orderID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *memReservationRepo) FindAll(ctx context.Context, limit, offset int) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range r.store.reservations {
		out = append(out, *res)
	}
	return out, nil
}

func (r *memReservationRepo) FindExpired(ctx context.Context, now time.Time, limit int) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range r.store.reservations {
		if res.Expired(now) {
			out = append(out, *res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memReservationRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	if _, ok := r.store.reservations[id]; !ok {
		return 0, nil
	}
	delete(r.store.reservations, id)
	return 1, nil
}

// fakeAlerter records low stock notifications
type fakeAlerter struct {
	mu    sync.Mutex
	calls []fakeAlert
}

type fakeAlert struct {
	ProductID uint
	Available int
	Threshold int
}

func (a *fakeAlerter) LowStock(ctx context.Context, product domain.Product, threshold int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, fakeAlert{
		ProductID: product.ID,
		Available: product.Available,
		Threshold: threshold,
	})
}

func (a *fakeAlerter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

func testConfig() *config.Config {
	return &config.Config{
		LowStockThreshold:       3,
		ReservationTTL:          1800 * time.Second,
		MaxPurchaseQuantity:     10,
		SweepBatchSize:          100,
		AbandonCutoff:           24 * time.Hour,
		AbandonedPaymentMethods: []string{"chapa"},
	}
}
