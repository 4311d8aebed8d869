// internal/services/cart.go
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/vinyl-storefront/internal/models"
)

// ItemFinder looks up catalog items by id.
type ItemFinder interface {
	Find(id int) (models.CatalogItem, bool)
}

// Cart is the ordered list of line items stored under one key. Every
// mutation rewrites the whole list to storage.
type Cart struct {
	key     string
	lines   []models.CartLineItem
	items   ItemFinder
	storage CartStorage
}

// OpenCart restores the cart stored under key. Missing or unreadable data
// yields an empty cart.
func OpenCart(ctx context.Context, storage CartStorage, key string, items ItemFinder) (*Cart, error) {
	cart := &Cart{key: key, items: items, storage: storage, lines: []models.CartLineItem{}}

	data, err := storage.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(data) == 0 {
		return cart, nil
	}

	var lines []models.CartLineItem
	if err := json.Unmarshal(data, &lines); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Discarding unreadable cart")
		return cart, nil
	}
	for _, line := range lines {
		if line.Quantity > 0 {
			cart.lines = append(cart.lines, line)
		}
	}
	return cart, nil
}

func (c *Cart) Key() string {
	return c.key
}

// Lines returns a copy of the line items in cart order.
func (c *Cart) Lines() []models.CartLineItem {
	out := make([]models.CartLineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Add puts one unit of (itemID, format) in the cart. It returns false
// without touching the cart when the item or its format price is missing;
// the error is reserved for storage failures.
func (c *Cart) Add(ctx context.Context, itemID int, format models.Format) (bool, error) {
	if err := c.add(itemID, format); err != nil {
		logrus.WithFields(logrus.Fields{
			"item_id": itemID,
			"format":  format,
			"reason":  err.Error(),
		}).Debug("Add to cart rejected")
		return false, nil
	}
	if err := c.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (c *Cart) add(itemID int, format models.Format) error {
	if !format.Valid() {
		return ErrInvalidFormat
	}
	if c.items == nil {
		return ErrItemNotFound
	}
	item, ok := c.items.Find(itemID)
	if !ok {
		return ErrItemNotFound
	}
	price, ok := item.PriceFor(format)
	if !ok {
		return ErrPriceUnavailable
	}

	for i := range c.lines {
		if c.lines[i].ItemID == itemID && c.lines[i].Format == format {
			c.lines[i].Quantity++
			return nil
		}
	}

	c.lines = append(c.lines, models.CartLineItem{
		ItemID:   item.ID,
		Name:     item.Name,
		Artist:   item.Artist,
		Image:    item.Image,
		Format:   format,
		Price:    price,
		Quantity: 1,
	})
	return nil
}

// Remove deletes the line at index. Out-of-range indices are a no-op.
func (c *Cart) Remove(ctx context.Context, index int) error {
	if index < 0 || index >= len(c.lines) {
		return nil
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return c.persist(ctx)
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(ctx context.Context, index, quantity int) error {
	if quantity <= 0 {
		return c.Remove(ctx, index)
	}
	if index < 0 || index >= len(c.lines) {
		return nil
	}
	c.lines[index].Quantity = quantity
	return c.persist(ctx)
}

// Empty removes every line.
func (c *Cart) Empty(ctx context.Context) error {
	c.lines = []models.CartLineItem{}
	return c.persist(ctx)
}

// Total is the sum of price × quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities, shown on the cart badge.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) persist(ctx context.Context) error {
	data, err := json.Marshal(c.lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := c.storage.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
