// internal/services/storefront.go
package services

import "github.com/javajoker/vinyl-storefront/internal/models"

// Storefront is the browsing state of one catalog view: the catalog, the
// active criteria, the filtered list and the current page.
type Storefront struct {
	catalog  *Catalog
	criteria Criteria
	filtered []models.CatalogItem
	pager    *Paginator
}

func NewStorefront(catalog *Catalog) *Storefront {
	items := catalog.Items()
	return &Storefront{
		catalog:  catalog,
		filtered: items,
		pager:    NewPaginator(len(items)),
	}
}

// ApplyFilters recomputes the filtered list and returns to page 1.
func (s *Storefront) ApplyFilters(criteria Criteria) {
	s.criteria = criteria.Resolve(s.catalog.Bounds())
	s.filtered = ApplyFilters(s.catalog.items, s.criteria, s.catalog.locale)
	s.pager.Reset(len(s.filtered))
}

func (s *Storefront) Bounds() Bounds {
	return s.catalog.Bounds()
}

func (s *Storefront) Criteria() Criteria {
	return s.criteria
}

func (s *Storefront) Filtered() []models.CatalogItem {
	return s.filtered
}

func (s *Storefront) Paginator() *Paginator {
	return s.pager
}

// CurrentPage returns the slice of the filtered list shown on the current page.
func (s *Storefront) CurrentPage() []models.CatalogItem {
	return PageSlice(s.filtered, s.pager.Page(), s.pager.PageSize())
}
