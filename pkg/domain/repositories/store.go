package repositories

import "context"

// Store groups the repositories of one backend
type Store interface {
	Products() ProductRepository
	Stock() StockRepository
	CashSessions() CashSessionRepository
	CashMovements() CashMovementRepository
	Sales() SaleRepository
	SaleItems() SaleItemRepository
	Users() UserConfigRepository

	// WithinTx runs fn against a transactional view of the store. Changes are
	// kept only when fn returns nil. Calling WithinTx on the view reuses the
	// running transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	Close() error
}
