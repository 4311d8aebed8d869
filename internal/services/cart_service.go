// internal/services/cart_service.go
package services

import (
	"context"
	"sync"

	"github.com/javajoker/vinyl-storefront/internal/models"
)

type CartService struct {
	storage CartStorage
	items   ItemFinder
	prefix  string

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// CartView is the read model returned to callers after every operation.
type CartView struct {
	Lines     []models.CartLineItem `json:"itens"`
	Total     float64               `json:"total"`
	ItemCount int                   `json:"quantidade_total"`
}

func NewCartService(storage CartStorage, items ItemFinder, keyPrefix string) *CartService {
	if keyPrefix == "" {
		keyPrefix = "carrinho"
	}
	return &CartService{
		storage: storage,
		items:   items,
		prefix:  keyPrefix,
		locks:   make(map[string]*keyLock),
	}
}

// Key is the storage key of a session's cart.
func (s *CartService) Key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

func (s *CartService) Storage() CartStorage {
	return s.storage
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	return OpenCart(ctx, s.storage, s.Key(sessionID), s.items)
}

// GetCartByKey opens a cart from its full storage key.
func (s *CartService) GetCartByKey(ctx context.Context, key string) (*Cart, error) {
	return OpenCart(ctx, s.storage, key, s.items)
}

// AddItem reports false when the item or its format price does not exist.
func (s *CartService) AddItem(ctx context.Context, sessionID string, itemID int, format models.Format) (*Cart, bool, error) {
	var added bool
	cart, err := s.mutate(ctx, sessionID, func(c *Cart) error {
		var err error
		added, err = c.Add(ctx, itemID, format)
		return err
	})
	return cart, added, err
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, index, quantity int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.SetQuantity(ctx, index, quantity)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, index int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.Remove(ctx, index)
	})
}

func (s *CartService) EmptyCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.Empty(ctx)
	})
}

// mutate runs one load-modify-save cycle while holding the session's lock.
func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*Cart) error) (*Cart, error) {
	key := s.Key(sessionID)
	unlock := s.lock(key)
	defer unlock()

	cart, err := OpenCart(ctx, s.storage, key, s.items)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

func NewCartView(c *Cart) CartView {
	return CartView{
		Lines:     c.Lines(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
