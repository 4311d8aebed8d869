// internal/services/filter.go
package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/javajoker/vinyl-storefront/internal/models"
)

// Criteria is the filter state of one catalog view. Nil bounds are unset.
type Criteria struct {
	Search   string          `json:"search,omitempty"`
	Genres   []string        `json:"generos,omitempty"`
	PriceMin *float64        `json:"preco_min,omitempty"`
	PriceMax *float64        `json:"preco_max,omitempty"`
	YearMin  *float64        `json:"ano_min,omitempty"`
	YearMax  *float64        `json:"ano_max,omitempty"`
	Sort     models.SortMode `json:"sort,omitempty"`
}

// ParseBound reads a numeric bound from user input. Empty or malformed
// input is unset, never an error.
func ParseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Resolve swaps inverted ranges and drops bounds that sit on the catalog's
// natural limits.
func (c Criteria) Resolve(b Bounds) Criteria {
	out := c
	out.PriceMin, out.PriceMax = orderedRange(c.PriceMin, c.PriceMax)
	out.YearMin, out.YearMax = orderedRange(c.YearMin, c.YearMax)

	if out.PriceMin != nil && *out.PriceMin == b.PriceMin {
		out.PriceMin = nil
	}
	if out.PriceMax != nil && *out.PriceMax == b.PriceMax {
		out.PriceMax = nil
	}
	if out.YearMin != nil && *out.YearMin == b.YearMin {
		out.YearMin = nil
	}
	if out.YearMax != nil && *out.YearMax == b.YearMax {
		out.YearMax = nil
	}
	return out
}

// Active reports whether any filter (not sort) is set.
func (c Criteria) Active() bool {
	return normalizeSearch(c.Search) != "" ||
		len(normalizeGenres(c.Genres)) > 0 ||
		c.PriceMin != nil || c.PriceMax != nil ||
		c.YearMin != nil || c.YearMax != nil
}

// ApplyFilters returns the items matching every active criterion, sorted
// by c.Sort. The input slice is not modified.
func ApplyFilters(items []models.CatalogItem, c Criteria, locale language.Tag) []models.CatalogItem {
	result := make([]models.CatalogItem, 0, len(items))

	if !c.Active() {
		result = append(result, items...)
	} else {
		search := normalizeSearch(c.Search)
		genres := normalizeGenres(c.Genres)
		for _, item := range items {
			if matches(item, c, search, genres) {
				result = append(result, item)
			}
		}
	}

	sortItems(result, c.Sort, locale)
	return result
}

func matches(item models.CatalogItem, c Criteria, search string, genres []string) bool {
	if search != "" {
		if !strings.Contains(Normalize(item.Name), search) && !strings.Contains(Normalize(item.Artist), search) {
			return false
		}
	}

	if len(genres) > 0 && !genreMatches(Normalize(item.Genre), genres) {
		return false
	}

	if c.PriceMin != nil || c.PriceMax != nil {
		price := comparablePrice(item)
		if c.PriceMin != nil && price < *c.PriceMin {
			return false
		}
		if c.PriceMax != nil && price > *c.PriceMax {
			return false
		}
	}

	if c.YearMin != nil || c.YearMax != nil {
		if !item.Year.Known {
			return false
		}
		year := float64(item.Year.Value)
		if c.YearMin != nil && year < *c.YearMin {
			return false
		}
		if c.YearMax != nil && year > *c.YearMax {
			return false
		}
	}

	return true
}

// genreMatches is deliberately loose: equality or containment either way.
func genreMatches(itemGenre string, selected []string) bool {
	for _, g := range selected {
		if g == itemGenre || strings.Contains(itemGenre, g) || strings.Contains(g, itemGenre) {
			return true
		}
	}
	return false
}

func sortItems(items []models.CatalogItem, mode models.SortMode, locale language.Tag) {
	switch mode {
	case models.SortNameAsc:
		col := collate.New(locale)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) < 0
		})
	case models.SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return comparablePrice(items[i]) < comparablePrice(items[j])
		})
	case models.SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return comparablePrice(items[i]) > comparablePrice(items[j])
		})
	}
}

// comparablePrice is the base price used by the price filters and sorts.
// It is recomputed from the format prices, and an unpriced item compares
// as 0: it passes an upper bound, fails any positive lower bound and sorts
// first ascending.
func comparablePrice(item models.CatalogItem) float64 {
	if base := item.ComputeBasePrice(); base != nil {
		return *base
	}
	return 0
}

func orderedRange(lo, hi *float64) (*float64, *float64) {
	if lo != nil && hi != nil && *lo > *hi {
		return hi, lo
	}
	return lo, hi
}

func normalizeSearch(s string) string {
	return Normalize(strings.TrimSpace(s))
}

// normalizeGenres drops blank selections so they never act as a wildcard.
func normalizeGenres(genres []string) []string {
	var out []string
	for _, g := range genres {
		if n := Normalize(strings.TrimSpace(g)); n != "" {
			out = append(out, n)
		}
	}
	return out
}
