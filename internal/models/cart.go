// internal/models/cart.go
package models

// CartLineItem is one (item, format) pairing in the cart. Display fields and
// price are captured when the line is created.
type CartLineItem struct {
	ItemID   int     `json:"id"`
	Name     string  `json:"nome"`
	Artist   string  `json:"artista"`
	Image    string  `json:"imagem"`
	Format   Format  `json:"formato"`
	Price    float64 `json:"preco"`
	Quantity int     `json:"quantidade"`
}

func (l CartLineItem) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// StorageEntry backs the durable cart store in postgres: one row per
// storage key holding the serialized cart.
type StorageEntry struct {
	BaseModel
	Key   string `json:"key" gorm:"primaryKey;size:255"`
	Value string `json:"value" gorm:"type:text;not null"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
