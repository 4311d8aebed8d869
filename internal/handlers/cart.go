// internal/handlers/cart.go
package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/vinyl-storefront/internal/i18n"
	"github.com/javajoker/vinyl-storefront/internal/models"
	"github.com/javajoker/vinyl-storefront/internal/services"
	"github.com/javajoker/vinyl-storefront/internal/utils"
)

type CartHandler struct {
	cartService    *services.CartService
	catalogService *services.CatalogService
}

func NewCartHandler(cartService *services.CartService, catalogService *services.CatalogService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

// CartLineView is a cart line with its localised format name and price.
type CartLineView struct {
	models.CartLineItem
	FormatLabel  string `json:"formato_label"`
	PriceDisplay string `json:"preco_formatado"`
}

// CartResponse is the cart view plus display strings.
type CartResponse struct {
	Lines        []CartLineView `json:"itens"`
	Total        float64        `json:"total"`
	ItemCount    int            `json:"quantidade_total"`
	TotalDisplay string         `json:"total_formatado"`
}

func newCartResponse(cart *services.Cart, lang string) CartResponse {
	view := services.NewCartView(cart)
	lines := make([]CartLineView, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, CartLineView{
			CartLineItem: line,
			FormatLabel:  i18n.T(lang, line.Format.LabelKey()),
			PriceDisplay: utils.FormatEuro(line.Price),
		})
	}

	return CartResponse{
		Lines:        lines,
		Total:        view.Total,
		ItemCount:    view.ItemCount,
		TotalDisplay: utils.FormatEuro(view.Total),
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, newCartResponse(cart, utils.GetLangFromContext(c)))
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "")
		return
	}

	req, ok := bindAddCartItem(c)
	if !ok {
		return
	}

	if !h.catalogService.Loaded() {
		utils.ServiceUnavailableResponse(c, i18n.KeyCatalogNotLoaded)
		return
	}

	cart, added, err := h.cartService.AddItem(c.Request.Context(), sessionID, req.ID, models.Format(req.Format))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !added {
		h.rejectAdd(c, req)
		return
	}

	item, _ := h.catalogService.Find(req.ID)
	utils.SuccessResponseWithMessage(c, newCartResponse(cart, utils.GetLangFromContext(c)), i18n.KeyCartAdded, item.Name)
}

// PUT /cart/items/:index
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "index"), nil)
		return
	}

	var req utils.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, index, *req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	key := i18n.KeyCartUpdated
	if *req.Quantity <= 0 {
		key = i18n.KeyCartRemoved
	}
	utils.SuccessResponseWithMessage(c, newCartResponse(cart, utils.GetLangFromContext(c)), key)
}

// DELETE /cart/items/:index
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "index"), nil)
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, index)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, newCartResponse(cart, utils.GetLangFromContext(c)), i18n.KeyCartRemoved)
}

// DELETE /cart
func (h *CartHandler) EmptyCart(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "")
		return
	}

	cart, err := h.cartService.EmptyCart(c.Request.Context(), sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, newCartResponse(cart, utils.GetLangFromContext(c)), i18n.KeyCartEmptied)
}

// rejectAdd answers a failed add with the most specific reason available.
func (h *CartHandler) rejectAdd(c *gin.Context, req *utils.AddCartItemRequest) {
	item, found := h.catalogService.Find(req.ID)
	if !found {
		utils.NotFoundResponse(c, "product")
		return
	}
	if _, ok := item.PriceFor(models.Format(req.Format)); !ok {
		utils.UnprocessableResponse(c, i18n.KeyFormatUnavailable, gin.H{"id": req.ID, "formato": req.Format})
		return
	}
	utils.UnprocessableResponse(c, i18n.KeyCartAddFailed, nil)
}

func (h *CartHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogNotLoaded):
		utils.ServiceUnavailableResponse(c, i18n.KeyCatalogNotLoaded)
	default:
		logrus.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Cart operation failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindAddCartItem parses and validates an {id, formato} body. A missing
// format gets its own message, as the page asks the visitor to pick one.
func bindAddCartItem(c *gin.Context) (*utils.AddCartItemRequest, bool) {
	lang := utils.GetLangFromContext(c)

	var req utils.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return nil, false
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		if utils.HasTag(validationErrors, "format", "required") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFormatRequired), validationErrors)
			return nil, false
		}
		utils.ValidationErrorResponse(c, validationErrors)
		return nil, false
	}

	req.Format = strings.ToLower(req.Format)
	return &req, true
}
