package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
)

// state is the whole dataset. Rows are stored by value so that snapshots
// taken by clone are independent of later writes.
type state struct {
	products  []entities.Product
	stock     []entities.Stock
	sessions  []entities.CashSession
	movements []entities.CashMovement
	sales     []entities.Sale
	saleItems []entities.SaleItem
	user      *entities.UserConfig

	lastProductID  int64
	lastStockID    int64
	lastSessionID  int64
	lastMovementID int64
	lastSaleID     int64
	lastSaleItemID int64
}

func (s *state) clone() *state {
	c := *s
	c.products = append([]entities.Product(nil), s.products...)
	c.stock = append([]entities.Stock(nil), s.stock...)
	c.sessions = append([]entities.CashSession(nil), s.sessions...)
	c.movements = append([]entities.CashMovement(nil), s.movements...)
	c.sales = append([]entities.Sale(nil), s.sales...)
	c.saleItems = append([]entities.SaleItem(nil), s.saleItems...)
	if s.user != nil {
		u := *s.user
		c.user = &u
	}
	return &c
}

// Store is an in-process implementation of repositories.Store. It backs the
// application when no database is configured and is used by service tests.
type Store struct {
	mu   *sync.Mutex
	data *state
	inTx bool
	now  func() time.Time
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		mu:   &sync.Mutex{},
		data: &state{},
		now:  time.Now,
	}
}

// Verify interface compliance
var _ repositories.Store = (*Store)(nil)

// lock serializes access; inside a transaction the lock is already held
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTx runs fn with exclusive access and restores the previous state when fn fails
func (s *Store) WithinTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &Store{mu: s.mu, data: s.data, inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

func (s *Store) Products() repositories.ProductRepository           { return &ProductRepository{store: s} }
func (s *Store) Stock() repositories.StockRepository                 { return &StockRepository{store: s} }
func (s *Store) CashSessions() repositories.CashSessionRepository   { return &CashSessionRepository{store: s} }
func (s *Store) CashMovements() repositories.CashMovementRepository { return &CashMovementRepository{store: s} }
func (s *Store) Sales() repositories.SaleRepository                  { return &SaleRepository{store: s} }
func (s *Store) SaleItems() repositories.SaleItemRepository          { return &SaleItemRepository{store: s} }
func (s *Store) Users() repositories.UserConfigRepository            { return &UserConfigRepository{store: s} }

func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}
