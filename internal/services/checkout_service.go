// internal/services/checkout_service.go
package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/vinyl-storefront/internal/config"
	"github.com/javajoker/vinyl-storefront/internal/models"
	"github.com/javajoker/vinyl-storefront/internal/utils"
)

// CheckoutService hands the persisted cart over to the external checkout
// page. The only parameter passed along is a signed reference to the cart's
// storage key.
type CheckoutService struct {
	carts       *CartService
	checkoutURL string
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
}

type Handoff struct {
	RedirectURL string    `json:"redirect_url"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Cart        CartView  `json:"carrinho"`
}

func NewCheckoutService(carts *CartService, cfg config.CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		checkoutURL: cfg.URL,
		secret:      []byte(cfg.TokenSecret),
		ttl:         cfg.TTL(),
		now:         time.Now,
	}
}

// Handoff prepares the redirect for the session's current cart.
func (s *CheckoutService) Handoff(ctx context.Context, sessionID string) (*Handoff, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.handoff(cart)
}

// BuyNow adds one unit to the cart and hands off immediately.
func (s *CheckoutService) BuyNow(ctx context.Context, sessionID string, itemID int, format models.Format) (*Handoff, error) {
	cart, added, err := s.carts.AddItem(ctx, sessionID, itemID, format)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAddToCartFailed
	}
	return s.handoff(cart)
}

// Resolve returns the cart referenced by a hand-off token.
func (s *CheckoutService) Resolve(ctx context.Context, token string) (*Cart, error) {
	claims, err := utils.ValidateHandoffToken(s.secret, token)
	if err != nil {
		logrus.WithError(err).Debug("Rejected checkout token")
		return nil, ErrInvalidHandoffToken
	}
	return s.carts.GetCartByKey(ctx, claims.CartKey)
}

func (s *CheckoutService) handoff(cart *Cart) (*Handoff, error) {
	if cart.Len() == 0 {
		return nil, ErrCartEmpty
	}

	now := s.now()
	token, err := utils.GenerateHandoffToken(s.secret, cart.Key(), now, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign checkout token: %w", err)
	}

	redirect, err := url.Parse(s.checkoutURL)
	if err != nil {
		return nil, fmt.Errorf("invalid checkout url: %w", err)
	}
	q := redirect.Query()
	q.Set("token", token)
	redirect.RawQuery = q.Encode()

	return &Handoff{
		RedirectURL: redirect.String(),
		Token:       token,
		ExpiresAt:   now.Add(s.ttl),
		Cart:        NewCartView(cart),
	}, nil
}
