package command

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	invcommand "github.com/tair/stock-reservation/internal/inventory/usecase/command"
	"github.com/tair/stock-reservation/internal/order/domain"
)

// orderStore backs the in-memory unit of work used in the sweep tests.
// WithinTx runs the closure against a deep copy and swaps it in on success,
// so rollback semantics match the real database.
type orderStore struct {
	orders   map[string]*domain.Order
	payments map[string]*domain.Payment
	saveErr  map[string]error
}

func newOrderStore() *orderStore {
	return &orderStore{
		orders:   make(map[string]*domain.Order),
		payments: make(map[string]*domain.Payment),
		saveErr:  make(map[string]error),
	}
}

func (s *orderStore) clone() *orderStore {
	c := newOrderStore()
	c.saveErr = s.saveErr
	for id, o := range s.orders {
		co := *o
		co.Timeline = append(domain.Timeline{}, o.Timeline...)
		c.orders[id] = &co
	}
	for id, p := range s.payments {
		cp := *p
		c.payments[id] = &cp
	}
	return c
}

func (s *orderStore) add(order domain.Order, payment domain.Payment) {
	payment.OrderID = order.ID
	s.orders[order.ID] = &order
	s.payments[order.ID] = &payment
}

type memOrderRepo struct {
	store *orderStore
}

func (r *memOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	cp := *order
	r.store.orders[cp.ID] = &cp
	return nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	cp.Timeline = append(domain.Timeline{}, o.Timeline...)
	return &cp, nil
}

func (r *memOrderRepo) FindAbandoned(ctx context.Context, cutoff time.Time, methods []string, limit int) ([]domain.Order, error) {
	allowed := make(map[string]bool, len(methods))
	for _, m := range methods {
		allowed[m] = true
	}

	var out []domain.Order
	for id, o := range r.store.orders {
		p, ok := r.store.payments[id]
		if !ok {
			continue
		}
		if o.Status != domain.OrderStatusPending || !o.CreatedAt.Before(cutoff) {
			continue
		}
		if p.Status != domain.PaymentStatusInitiated || !allowed[p.Method] {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memOrderRepo) Save(ctx context.Context, order *domain.Order) error {
	if err := r.store.saveErr[order.ID]; err != nil {
		return err
	}
	cp := *order
	cp.Timeline = append(domain.Timeline{}, order.Timeline...)
	r.store.orders[cp.ID] = &cp
	return nil
}

type memPaymentRepo struct {
	store *orderStore
}

func (r *memPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	cp := *payment
	r.store.payments[cp.OrderID] = &cp
	return nil
}

func (r *memPaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	p, ok := r.store.payments[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) Save(ctx context.Context, payment *domain.Payment) error {
	cp := *payment
	r.store.payments[cp.OrderID] = &cp
	return nil
}

type memOrderRepoSet struct {
	store *orderStore
}

func (s *memOrderRepoSet) Orders() domain.OrderRepository     { return &memOrderRepo{store: s.store} }
func (s *memOrderRepoSet) Payments() domain.PaymentRepository { return &memPaymentRepo{store: s.store} }

type memOrderUnitOfWork struct {
	mu    sync.Mutex
	store *orderStore
}

func newMemOrderUnitOfWork(store *orderStore) *memOrderUnitOfWork {
	return &memOrderUnitOfWork{store: store}
}

func (u *memOrderUnitOfWork) WithinTx(ctx context.Context, fn func(repos domain.RepoSet) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	work := u.store.clone()
	if err := fn(&memOrderRepoSet{store: work}); err != nil {
		return err
	}
	u.store.orders = work.orders
	u.store.payments = work.payments
	return nil
}

// staleBatchRepo serves a pre-captured abandoned batch once, simulating state
// that changed between the batch select and the per-order transaction
type staleBatchRepo struct {
	*memOrderRepo
	batch  []domain.Order
	served bool
}

func (r *staleBatchRepo) FindAbandoned(ctx context.Context, cutoff time.Time, methods []string, limit int) ([]domain.Order, error) {
	if r.served {
		return nil, nil
	}
	r.served = true
	return r.batch, nil
}

// fakeHoldReleaser records which orders had their holds released
type fakeHoldReleaser struct {
	released  []string
	perOrder  int
	returnErr error
}

func (f *fakeHoldReleaser) Handle(ctx context.Context, cmd invcommand.ReleaseOrderHoldsCommand) (int, error) {
	f.released = append(f.released, cmd.OrderID)
	if f.returnErr != nil {
		return 0, f.returnErr
	}
	return f.perOrder, nil
}
