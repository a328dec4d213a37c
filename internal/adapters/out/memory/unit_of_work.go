package memory

import (
	"context"
	"errors"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

var (
	ErrTransactionAlreadyStarted = errors.New("transaction already started")
	ErrNoActiveTransaction       = errors.New("no active transaction")
)

var _ ports.UnitOfWork = &UnitOfWork{}

// UnitOfWork is bound to one Store. Repositories obtained from it join the transaction
// while one is active and otherwise lock the store per call.
type UnitOfWork struct {
	store    *Store
	active   bool
	snapshot tables

	orderRepo   *OrderRepository
	itemRepo    *OrderItemRepository
	historyRepo *HistoryRepository
	productRepo *ProductRepository
	outboxRepo  *OutboxRepository
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	uow := &UnitOfWork{store: store}
	uow.orderRepo = &OrderRepository{uow: uow}
	uow.itemRepo = &OrderItemRepository{uow: uow}
	uow.historyRepo = &HistoryRepository{uow: uow}
	uow.productRepo = &ProductRepository{uow: uow}
	uow.outboxRepo = &OutboxRepository{uow: uow}
	return uow
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return ErrTransactionAlreadyStarted
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	u.snapshot = u.store.data.clone()
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.finish()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.store.data = u.snapshot
	u.finish()
	return nil
}

func (u *UnitOfWork) finish() {
	u.snapshot = tables{}
	u.active = false
	u.store.mu.Unlock()
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	return u.itemRepo
}

func (u *UnitOfWork) HistoryRepository() ports.HistoryRepository {
	return u.historyRepo
}

func (u *UnitOfWork) ProductRepository() ports.ProductRepository {
	return u.productRepo
}

func (u *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return u.outboxRepo
}

func (u *UnitOfWork) read(ctx context.Context, operation string, fn func(s *Store) error) error {
	if err := ctx.Err(); err != nil {
		return errs.NewPersistenceError(operation, err)
	}
	if !u.active {
		u.store.mu.RLock()
		defer u.store.mu.RUnlock()
	}
	return fn(u.store)
}

func (u *UnitOfWork) write(ctx context.Context, operation string, fn func(s *Store) error) error {
	if err := ctx.Err(); err != nil {
		return errs.NewPersistenceError(operation, err)
	}
	if !u.active {
		u.store.mu.Lock()
		defer u.store.mu.Unlock()
	}
	return fn(u.store)
}

// UnitOfWorkFactory creates units of work over one shared Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewUnitOfWork(f.store)
}
