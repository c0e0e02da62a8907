// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sellerops/margin-backend/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", ResolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// ResolveLanguage maps an Accept-Language header to a supported locale.
func ResolveLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLanguage()
	}

	// Handle cases like "pt-BR,pt;q=0.9,en;q=0.8"
	langs := strings.Split(header, ",")
	firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])
	switch strings.ToLower(strings.ReplaceAll(firstLang, "_", "-")) {
	case "pt", "pt-br", "pt-pt":
		return i18n.LangPortuguese
	case "en", "en-us", "en-gb":
		return i18n.LangEnglish
	default:
		return i18n.DefaultLanguage()
	}
}
