// internal/handlers/catalog.go
package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/vinyl-storefront/internal/i18n"
	"github.com/javajoker/vinyl-storefront/internal/models"
	"github.com/javajoker/vinyl-storefront/internal/services"
	"github.com/javajoker/vinyl-storefront/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ItemView is a catalog item with its formatted prices.
type ItemView struct {
	models.CatalogItem
	Prices  utils.PriceDisplay `json:"precos"`
	SoldOut bool               `json:"esgotado"`
	Formats []models.Format    `json:"formatos"`
}

func newItemView(item models.CatalogItem, lang string) ItemView {
	view := ItemView{
		CatalogItem: item,
		Prices:      utils.NewPriceDisplay(item.VinylPrice, item.CDPrice, lang),
		SoldOut:     item.Stock <= 0,
		Formats:     []models.Format{},
	}
	for _, f := range []models.Format{models.FormatVinyl, models.FormatCD} {
		if _, ok := item.PriceFor(f); ok {
			view.Formats = append(view.Formats, f)
		}
	}
	return view
}

// GET /catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)
	criteria := parseCriteria(c)

	view, err := h.catalogService.Browse(criteria, params.Page)
	if err != nil {
		h.handleError(c, err)
		return
	}

	page := view.CurrentPage()
	items := make([]ItemView, 0, len(page))
	for _, item := range page {
		items = append(items, newItemView(item, lang))
	}

	total := len(view.Filtered())
	message := i18n.T(lang, i18n.KeyCatalogResultsFound, total)
	if total == 0 {
		message = i18n.T(lang, i18n.KeyCatalogNoResults)
	}

	result := utils.NewPaginationResult(items, view.Paginator())
	utils.PaginatedResponse(c, result, gin.H{
		"criteria": view.Criteria(),
		"bounds":   view.Bounds(),
		"message":  message,
	})
}

// GET /catalog/bounds
func (h *CatalogHandler) GetBounds(c *gin.Context) {
	catalog, err := h.catalogService.Catalog()
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, catalog.Bounds())
}

// GET /catalog/genres
func (h *CatalogHandler) GetGenres(c *gin.Context) {
	catalog, err := h.catalogService.Catalog()
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"generos": catalog.Genres(),
	})
}

// GET /catalog/:id
func (h *CatalogHandler) GetItem(c *gin.Context) {
	if !h.catalogService.Loaded() {
		h.handleError(c, services.ErrCatalogNotLoaded)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "product")
		return
	}

	item, err := h.catalogService.GetItem(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, newItemView(*item, utils.GetLangFromContext(c)))
}

func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogNotLoaded):
		utils.ServiceUnavailableResponse(c, i18n.KeyCatalogNotLoaded)
	case errors.Is(err, services.ErrItemNotFound):
		utils.NotFoundResponse(c, "product")
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// parseCriteria reads the catalog filters from the query string. Malformed
// numbers are treated as unset.
func parseCriteria(c *gin.Context) services.Criteria {
	criteria := services.Criteria{
		Search:   c.Query("search"),
		PriceMin: services.ParseBound(c.Query("preco_min")),
		PriceMax: services.ParseBound(c.Query("preco_max")),
		YearMin:  services.ParseBound(c.Query("ano_min")),
		YearMax:  services.ParseBound(c.Query("ano_max")),
		Sort:     models.ParseSortMode(c.Query("sort")),
	}

	// genero may be repeated or comma separated
	for _, raw := range c.QueryArray("genero") {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				criteria.Genres = append(criteria.Genres, g)
			}
		}
	}

	return criteria
}
