// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyInternalError = "error.internal"

	// Catalog
	KeyCatalogNotLoaded    = "catalog.not_loaded"
	KeyCatalogResultsFound = "catalog.results_found"
	KeyCatalogNoResults    = "catalog.no_results"
	KeyProductNotFound     = "product.not_found"
	KeyProductOutOfStock   = "product.out_of_stock"
	KeyPriceUnavailable    = "product.price_unavailable"
	KeyFormatUnavailable   = "product.format_unavailable"

	// Format labels, keyed by models.Format.LabelKey
	KeyFormatVinyl = "format.vinil"
	KeyFormatCD    = "format.cd"

	// Cart
	KeyCartAdded     = "cart.added"
	KeyCartAddFailed = "cart.add_failed"
	KeyCartUpdated   = "cart.updated"
	KeyCartRemoved   = "cart.removed"
	KeyCartEmptied   = "cart.emptied"
	KeyCartEmpty     = "cart.empty"

	// Checkout
	KeyCheckoutReady        = "checkout.ready"
	KeyCheckoutInvalidToken = "checkout.invalid_token"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyFormatRequired     = "format.required"
	KeyLineNotFound       = "cart_line.not_found"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"
)
