// internal/models/common.go
package models

import "time"

// Base model with common fields
type BaseModel struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type Format string

const (
	FormatVinyl Format = "vinil"
	FormatCD    Format = "cd"
)

func (f Format) Valid() bool {
	return f == FormatVinyl || f == FormatCD
}

// LabelKey is the translation key of the format's display name.
func (f Format) LabelKey() string {
	return "format." + string(f)
}

type SortMode string

const (
	SortNone      SortMode = ""
	SortNameAsc   SortMode = "nome-asc"
	SortPriceAsc  SortMode = "preco-asc"
	SortPriceDesc SortMode = "preco-desc"
)

// ParseSortMode maps unknown values to SortNone.
func ParseSortMode(s string) SortMode {
	switch mode := SortMode(s); mode {
	case SortNameAsc, SortPriceAsc, SortPriceDesc:
		return mode
	default:
		return SortNone
	}
}
