package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/javajoker/vinyl-storefront/internal/config"
	"github.com/javajoker/vinyl-storefront/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	storage *MemoryCartStorage
	service *CartService
	ctx     context.Context
}

func (s *CartServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = NewMemoryCartStorage()
	s.service = NewCartService(s.storage, newTestCatalog(), "carrinho")
}

func (s *CartServiceTestSuite) TestKeyIsPrefixedBySession() {
	s.Equal("carrinho:abc", s.service.Key("abc"))
	s.Equal("carrinho:abc", NewCartService(s.storage, nil, "").Key("abc"))
}

func (s *CartServiceTestSuite) TestSessionsAreIsolated() {
	_, added, err := s.service.AddItem(s.ctx, "alice", 1, models.FormatVinyl)
	s.Require().NoError(err)
	s.True(added)

	bob, err := s.service.GetCart(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(0, bob.Len())

	alice, err := s.service.GetCart(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, alice.Len())
}

func (s *CartServiceTestSuite) TestAddItemRejected() {
	cart, added, err := s.service.AddItem(s.ctx, "alice", 999, models.FormatVinyl)
	s.Require().NoError(err)
	s.False(added)
	s.Equal(0, cart.Len())
}

func (s *CartServiceTestSuite) TestUpdateRemoveAndEmpty() {
	_, _, _ = s.service.AddItem(s.ctx, "alice", 1, models.FormatVinyl)
	_, _, _ = s.service.AddItem(s.ctx, "alice", 2, models.FormatCD)

	cart, err := s.service.UpdateQuantity(s.ctx, "alice", 1, 3)
	s.Require().NoError(err)
	s.Equal(50.0, cart.Total())

	cart, err = s.service.RemoveItem(s.ctx, "alice", 0)
	s.Require().NoError(err)
	s.Equal(30.0, cart.Total())

	cart, err = s.service.EmptyCart(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(0, cart.Len())

	view := NewCartView(cart)
	s.NotNil(view.Lines)
	s.Equal(0.0, view.Total)
}

func (s *CartServiceTestSuite) TestConcurrentAddsAreNotLost() {
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.service.AddItem(s.ctx, "alice", 1, models.FormatCD)
			s.NoError(err)
		}()
	}
	wg.Wait()

	cart, err := s.service.GetCart(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Equal(1, cart.Len())
	s.Equal(workers, cart.Lines()[0].Quantity)
	s.Empty(s.service.locks)
}

func (s *CartServiceTestSuite) TestGetCartByKey() {
	_, _, _ = s.service.AddItem(s.ctx, "alice", 2, models.FormatCD)

	cart, err := s.service.GetCartByKey(s.ctx, s.service.Key("alice"))
	s.Require().NoError(err)
	s.Equal(10.0, cart.Total())
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func TestNewCartStorage(t *testing.T) {
	cfg := &config.Config{}

	cfg.Cart.Backend = config.CartBackendMemory
	storage, err := NewCartStorage(cfg, nil, nil)
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if _, ok := storage.(*MemoryCartStorage); !ok {
		t.Fatalf("expected *MemoryCartStorage, got %T", storage)
	}

	for _, backend := range []string{config.CartBackendRedis, config.CartBackendPostgres, "etcd"} {
		cfg.Cart.Backend = backend
		if _, err := NewCartStorage(cfg, nil, nil); err == nil {
			t.Errorf("backend %q without a client should fail", backend)
		}
	}
}

func TestMemoryCartStorageCopiesData(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCartStorage()

	data := []byte(`[]`)
	if err := m.Save(ctx, "k", data); err != nil {
		t.Fatal(err)
	}
	data[0] = 'x'

	got, err := m.Load(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Errorf("stored value was aliased: %q", got)
	}

	missing, err := m.Load(ctx, "missing")
	if err != nil || missing != nil {
		t.Errorf("missing key: got %q, %v", missing, err)
	}
}
