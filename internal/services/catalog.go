// internal/services/catalog.go
package services

import (
	"math"

	"golang.org/x/text/language"

	"github.com/javajoker/vinyl-storefront/internal/models"
)

// Slider defaults used when the catalog has no usable prices or years.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 50
	DefaultYearMin  = 1960
	DefaultYearMax  = 2025
)

// Bounds are the natural limits of the catalog. Filter bounds equal to
// these are treated as unset.
type Bounds struct {
	PriceMin float64 `json:"preco_min"`
	PriceMax float64 `json:"preco_max"`
	YearMin  float64 `json:"ano_min"`
	YearMax  float64 `json:"ano_max"`
}

// Catalog holds the loaded items. It is immutable after NewCatalog.
type Catalog struct {
	items  []models.CatalogItem
	index  map[int]int
	bounds Bounds
	genres []string
	locale language.Tag
}

func NewCatalog(items []models.CatalogItem, locale string) *Catalog {
	c := &Catalog{
		items:  make([]models.CatalogItem, len(items)),
		index:  make(map[int]int, len(items)),
		locale: parseLocale(locale),
	}

	seenGenre := make(map[string]bool)
	for i, item := range items {
		item.BasePrice = item.ComputeBasePrice()
		c.items[i] = item

		// first occurrence wins on duplicate ids
		if _, exists := c.index[item.ID]; !exists {
			c.index[item.ID] = i
		}

		if item.Genre != "" && !seenGenre[item.Genre] {
			seenGenre[item.Genre] = true
			c.genres = append(c.genres, item.Genre)
		}
	}

	c.bounds = computeBounds(c.items)
	return c
}

// Items returns the full catalog in document order.
func (c *Catalog) Items() []models.CatalogItem {
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) Find(id int) (models.CatalogItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.CatalogItem{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Bounds() Bounds {
	return c.bounds
}

// Genres lists distinct genres in first-seen order.
func (c *Catalog) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}

func (c *Catalog) Locale() language.Tag {
	return c.locale
}

// Filter runs the filter/sort engine over the full catalog.
func (c *Catalog) Filter(criteria Criteria) []models.CatalogItem {
	return ApplyFilters(c.items, criteria.Resolve(c.bounds), c.locale)
}

func computeBounds(items []models.CatalogItem) Bounds {
	b := Bounds{
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		YearMin:  DefaultYearMin,
		YearMax:  DefaultYearMax,
	}

	minP, maxP := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, item := range items {
		if item.BasePrice != nil {
			minP = math.Min(minP, *item.BasePrice)
			maxP = math.Max(maxP, *item.BasePrice)
		}
		if item.Year.Known {
			y := float64(item.Year.Value)
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}

	if !math.IsInf(minP, 1) {
		lo, hi := math.Floor(minP), math.Ceil(maxP)
		b.PriceMin = math.Min(lo, hi)
		b.PriceMax = math.Max(hi, b.PriceMin+1)
	}
	if !math.IsInf(minY, 1) {
		b.YearMin, b.YearMax = minY, maxY
	}
	return b
}

func parseLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Portuguese
	}
	return tag
}
