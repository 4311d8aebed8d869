package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/javajoker/vinyl-storefront/internal/i18n"
	"github.com/javajoker/vinyl-storefront/internal/models"
)

// FormatPrice formats an amount with two decimals and a comma separator,
// e.g. 12.5 becomes "12,50". Nil or NaN amounts return "".
func FormatPrice(amount *float64) string {
	if amount == nil || math.IsNaN(*amount) || math.IsInf(*amount, 0) {
		return ""
	}
	s := strconv.FormatFloat(*amount, 'f', 2, 64)
	return strings.Replace(s, ".", ",", 1)
}

// FormatEuro prefixes a formatted price with the euro sign.
func FormatEuro(amount float64) string {
	return "€" + FormatPrice(&amount)
}

// PriceDisplay is the per-format price text shown for one catalog item.
type PriceDisplay struct {
	Vinyl string `json:"vinil,omitempty"`
	CD    string `json:"cd,omitempty"`
	Label string `json:"label"`
}

// NewPriceDisplay builds the display strings with labels in lang. When
// neither format has a price the label says the price is unavailable.
func NewPriceDisplay(vinyl, cd *float64, lang string) PriceDisplay {
	d := PriceDisplay{}
	if p := FormatPrice(positive(vinyl)); p != "" {
		d.Vinyl = "€" + p
	}
	if p := FormatPrice(positive(cd)); p != "" {
		d.CD = "€" + p
	}

	vinylLabel := i18n.T(lang, models.FormatVinyl.LabelKey()) + ": " + d.Vinyl
	cdLabel := i18n.T(lang, models.FormatCD.LabelKey()) + ": " + d.CD

	switch {
	case d.Vinyl != "" && d.CD != "":
		d.Label = vinylLabel + " · " + cdLabel
	case d.Vinyl != "":
		d.Label = vinylLabel
	case d.CD != "":
		d.Label = cdLabel
	default:
		d.Label = i18n.T(lang, i18n.KeyPriceUnavailable)
	}
	return d
}

// positive drops zero prices, which the catalog uses for "not sold".
func positive(p *float64) *float64 {
	if p == nil || *p == 0 {
		return nil
	}
	return p
}
