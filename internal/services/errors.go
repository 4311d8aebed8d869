// internal/services/errors.go
package services

import "errors"

var (
	ErrItemNotFound        = errors.New("catalog item not found")
	ErrPriceUnavailable    = errors.New("no price for requested format")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrCatalogNotLoaded    = errors.New("catalog not loaded")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrAddToCartFailed     = errors.New("could not add item to cart")
	ErrInvalidHandoffToken = errors.New("invalid checkout token")
)
