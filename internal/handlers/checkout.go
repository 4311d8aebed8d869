// internal/handlers/checkout.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/vinyl-storefront/internal/i18n"
	"github.com/javajoker/vinyl-storefront/internal/models"
	"github.com/javajoker/vinyl-storefront/internal/services"
	"github.com/javajoker/vinyl-storefront/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	catalogService  *services.CatalogService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, catalogService *services.CatalogService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		catalogService:  catalogService,
	}
}

// POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "")
		return
	}

	handoff, err := h.checkoutService.Handoff(c.Request.Context(), sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, handoff, i18n.KeyCheckoutReady)
}

// POST /checkout/buy-now
func (h *CheckoutHandler) BuyNow(c *gin.Context) {
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

	handoff, err := h.checkoutService.BuyNow(c.Request.Context(), sessionID, req.ID, models.Format(req.Format))
	if err != nil {
		if errors.Is(err, services.ErrAddToCartFailed) {
			if _, found := h.catalogService.Find(req.ID); !found {
				utils.NotFoundResponse(c, "product")
				return
			}
			utils.UnprocessableResponse(c, i18n.KeyFormatUnavailable, gin.H{"id": req.ID, "formato": req.Format})
			return
		}
		h.handleError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, handoff, i18n.KeyCheckoutReady)
}

// GET /checkout/cart?token=
func (h *CheckoutHandler) GetHandoffCart(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.UnauthorizedResponse(c, i18n.KeyCheckoutInvalidToken)
		return
	}

	cart, err := h.checkoutService.Resolve(c.Request.Context(), token)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, newCartResponse(cart, utils.GetLangFromContext(c)))
}

func (h *CheckoutHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartEmpty):
		utils.UnprocessableResponse(c, i18n.KeyCartEmpty, nil)
	case errors.Is(err, services.ErrInvalidHandoffToken):
		utils.UnauthorizedResponse(c, i18n.KeyCheckoutInvalidToken)
	case errors.Is(err, services.ErrCatalogNotLoaded):
		utils.ServiceUnavailableResponse(c, i18n.KeyCatalogNotLoaded)
	default:
		logrus.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Checkout failed")
		utils.InternalErrorResponse(c, "")
	}
}
