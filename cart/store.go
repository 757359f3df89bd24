package cart

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when the session has no persisted cart yet.
var ErrNotFound = errors.New("cart not found")

// Store persists one cart per session key. Implementations must make each
// Save/Delete atomic for a key; nothing coordinates across keys.
type Store interface {
	Load(ctx context.Context, session string) (Cart, error)
	Save(ctx context.Context, session string, c Cart) error
	Delete(ctx context.Context, session string) error
}

// Manager binds the pure cart operations to a Store: every successful
// mutation is followed by a full save of the new state, mirroring how the
// storefront persists the cart to durable storage after each reducer run.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager { return &Manager{store: store} }

// Get rehydrates the session's cart, starting empty when none is persisted.
func (m *Manager) Get(ctx context.Context, session string) (Cart, error) {
	c, err := m.store.Load(ctx, session)
	if errors.Is(err, ErrNotFound) {
		return Cart{}, nil
	}
	return c, err
}

func (m *Manager) Add(ctx context.Context, session string, item Item) (Cart, error) {
	return m.apply(ctx, session, func(c Cart) (Cart, error) { return Add(c, item) })
}

func (m *Manager) UpdateQuantity(ctx context.Context, session string, productID uint, qty int) (Cart, error) {
	return m.apply(ctx, session, func(c Cart) (Cart, error) { return UpdateQuantity(c, productID, qty) })
}

func (m *Manager) Remove(ctx context.Context, session string, productID uint) (Cart, error) {
	return m.apply(ctx, session, func(c Cart) (Cart, error) { return Remove(c, productID), nil })
}

// Clear empties the cart and removes the storage entry entirely.
func (m *Manager) Clear(ctx context.Context, session string) error {
	return m.store.Delete(ctx, session)
}

func (m *Manager) apply(ctx context.Context, session string, op func(Cart) (Cart, error)) (Cart, error) {
	current, err := m.Get(ctx, session)
	if err != nil {
		return Cart{}, err
	}
	next, err := op(current)
	if err != nil {
		return Cart{}, err
	}
	if err := m.store.Save(ctx, session, next); err != nil {
		return Cart{}, err
	}
	return next, nil
}

// MemoryStore keeps carts in-process. Used by tests and single-node setups
// without Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]Cart)}
}

func (s *MemoryStore) Load(_ context.Context, session string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[session]
	if !ok {
		return Cart{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) Save(_ context.Context, session string, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[session] = c
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
	return nil
}
