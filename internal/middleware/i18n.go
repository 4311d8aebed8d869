// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/vinyl-storefront/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", parseLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// parseLanguage takes the first entry of an Accept-Language header such as
// "pt-PT,pt;q=0.9,en;q=0.8".
func parseLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLanguage()
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	switch {
	case strings.HasPrefix(strings.ToLower(first), "pt"):
		return "pt"
	case strings.HasPrefix(strings.ToLower(first), "en"):
		return "en"
	default:
		return i18n.DefaultLanguage()
	}
}
