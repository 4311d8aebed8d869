// internal/models/catalog.go
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CatalogItem is one record of the catalog document. Items are read-only
// after load apart from BasePrice, which is attached once by the catalog.
type CatalogItem struct {
	ID          int      `json:"id"`
	Name        string   `json:"nome"`
	Artist      string   `json:"artista"`
	Genre       string   `json:"genero"`
	Year        Year     `json:"ano"`
	Description string   `json:"descricao"`
	Image       string   `json:"imagem"`
	Spotify     string   `json:"spotify,omitempty"`
	Stock       int      `json:"stock"`
	VinylPrice  *float64 `json:"precoVinil,omitempty"`
	CDPrice     *float64 `json:"precoCD,omitempty"`
	BasePrice   *float64 `json:"precoBase,omitempty"`
}

// CatalogDocument is the shape of the catalog data file.
type CatalogDocument struct {
	Catalog []CatalogItem `json:"catalogo"`
}

// ComputeBasePrice returns the lowest of the defined format prices, or nil
// when the item has neither.
func (i *CatalogItem) ComputeBasePrice() *float64 {
	var base *float64
	for _, p := range []*float64{i.VinylPrice, i.CDPrice} {
		if p == nil || math.IsNaN(*p) {
			continue
		}
		if base == nil || *p < *base {
			v := *p
			base = &v
		}
	}
	return base
}

// PriceFor returns the catalog price of the given format. A missing or
// zero price means the format cannot be sold.
func (i *CatalogItem) PriceFor(format Format) (float64, bool) {
	var p *float64
	switch format {
	case FormatVinyl:
		p = i.VinylPrice
	case FormatCD:
		p = i.CDPrice
	}
	if p == nil || *p == 0 || math.IsNaN(*p) {
		return 0, false
	}
	return *p, true
}

// Year is a release year that may arrive as a JSON number or a numeric
// string. Non-numeric values decode to an unknown year.
type Year struct {
	Value int
	Known bool
}

func NewYear(v int) Year {
	return Year{Value: v, Known: true}
}

func (y *Year) UnmarshalJSON(data []byte) error {
	*y = Year{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*y = Year{Value: int(f), Known: true}
	return nil
}

func (y Year) MarshalJSON() ([]byte, error) {
	if !y.Known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(y.Value)), nil
}

func (y Year) String() string {
	if !y.Known {
		return ""
	}
	return strconv.Itoa(y.Value)
}
