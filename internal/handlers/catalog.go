// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sellerops/margin-backend/internal/i18n"
	"github.com/sellerops/margin-backend/internal/services"
	"github.com/sellerops/margin-backend/internal/utils"
)

// CatalogHandler serves the fee reference data.
type CatalogHandler struct {
	calculatorService *services.CalculatorService
}

func NewCatalogHandler(calculatorService *services.CalculatorService) *CatalogHandler {
	return &CatalogHandler{
		calculatorService: calculatorService,
	}
}

// GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	categories := h.calculatorService.Categories()

	items := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		items = append(items, gin.H{
			"id":                category.ID,
			"name":              category.Name,
			"referral_fee_rate": utils.FormatRate(category.ReferralFeeRate, lang),
		})
	}

	utils.SuccessResponse(c, gin.H{
		"categories": items,
	})
}

// GET /fee-schedule
func (h *CatalogHandler) GetFeeSchedule(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"schedule": h.calculatorService.Schedule(),
		"defaults": h.calculatorService.Defaults(),
	})
}

// GET /fee-schedule/logistics?weight_g=
func (h *CatalogHandler) QuoteLogistics(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	quote, err := h.calculatorService.QuoteLogistics(c.Query("weight_g"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidWeight), gin.H{
			"weight_g": c.Query("weight_g"),
		})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"quote":   quote,
		"display": utils.FormatMoney(quote.Fee, quote.Currency, lang).Display,
	})
}
