// internal/handlers/calculator.go
package handlers

import (
	"errors"
	"math"

	"github.com/gin-gonic/gin"

	"github.com/sellerops/margin-backend/internal/calculator"
	"github.com/sellerops/margin-backend/internal/i18n"
	"github.com/sellerops/margin-backend/internal/models"
	"github.com/sellerops/margin-backend/internal/services"
	"github.com/sellerops/margin-backend/internal/utils"
)

type CalculatorHandler struct {
	calculatorService *services.CalculatorService
}

func NewCalculatorHandler(calculatorService *services.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{
		calculatorService: calculatorService,
	}
}

// StrategyView is one strategy column of the results screen.
type StrategyView struct {
	Strategy      models.Strategy `json:"strategy"`
	SellPrice     utils.Amount    `json:"sell_price"`
	ReferralFee   utils.Amount    `json:"referral_fee"`
	StorageFee    utils.Amount    `json:"storage_fee"`
	LogisticsFee  utils.Amount    `json:"logistics_fee"`
	ShippingCost  utils.Amount    `json:"shipping_cost"`
	StrategyFees  utils.Amount    `json:"strategy_fees"`
	TotalCost     utils.Amount    `json:"total_cost"`
	NetProfit     utils.Amount    `json:"net_profit"`
	MarginPercent utils.Amount    `json:"margin_percent"`
	RoiPercent    utils.Amount    `json:"roi_percent"`
}

type RecommendationView struct {
	Strategy    models.Strategy `json:"strategy"`
	ProfitDelta utils.Amount    `json:"profit_delta"`
	Message     string          `json:"message"`
}

// CalculationView is a CalculationResult rounded for display. Non-finite
// values carry a null value and a placeholder text.
type CalculationView struct {
	ScheduleVersion string                    `json:"schedule_version"`
	Currency        string                    `json:"currency"`
	Category        string                    `json:"category,omitempty"`
	CategoryKnown   bool                      `json:"category_known"`
	ReferralFeeRate utils.Amount              `json:"referral_fee_rate"`
	Cost            utils.Amount              `json:"cost"`
	OtherCosts      utils.Amount              `json:"other_costs"`
	Platform        StrategyView              `json:"platform"`
	Merchant        StrategyView              `json:"merchant"`
	Recommendation  RecommendationView        `json:"recommendation"`
	Fees            models.FeeBreakdown       `json:"fees"`
	Dimensions      *models.ProductDimensions `json:"product_dimensions,omitempty"`
}

// POST /calculator/calculate
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.ProductInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.calculatorService.Calculate(req)
	if err != nil {
		var missing *calculator.MissingFieldError
		if errors.As(err, &missing) {
			utils.UnprocessableResponse(c, "INSUFFICIENT_DATA", i18n.T(lang, i18n.KeyCalculationInsufficient), gin.H{
				"fields": missing.Fields,
			})
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCalculationDone),
		"result":  NewCalculationView(result, lang),
	})
}

func NewCalculationView(r *models.CalculationResult, lang string) CalculationView {
	money := func(v float64) utils.Amount {
		return utils.FormatMoney(v, r.Currency, lang)
	}

	view := CalculationView{
		ScheduleVersion: r.ScheduleVersion,
		Currency:        r.Currency,
		Category:        r.Category,
		CategoryKnown:   r.CategoryKnown,
		ReferralFeeRate: utils.FormatRate(r.ReferralFeeRate, lang),
		Cost:            money(r.Cost),
		OtherCosts:      money(r.OtherCosts),
		Platform:        newStrategyView(r.Platform, money, lang),
		Merchant:        newStrategyView(r.Merchant, money, lang),
		Recommendation: RecommendationView{
			Strategy:    r.Recommendation.Strategy,
			ProfitDelta: money(r.Recommendation.ProfitDelta),
			Message:     recommendationMessage(r, money, lang),
		},
		Fees: r.Fees,
	}
	if r.Dimensions != nil && finiteDimensions(*r.Dimensions) {
		dims := *r.Dimensions
		view.Dimensions = &dims
	}
	return view
}

func newStrategyView(s models.StrategyResult, money func(float64) utils.Amount, lang string) StrategyView {
	return StrategyView{
		Strategy:      s.Strategy,
		SellPrice:     money(s.SellPrice),
		ReferralFee:   money(s.ReferralFee),
		StorageFee:    money(s.StorageFee),
		LogisticsFee:  money(s.LogisticsFee),
		ShippingCost:  money(s.ShippingCost),
		StrategyFees:  money(s.StrategyFees),
		TotalCost:     money(s.TotalCost),
		NetProfit:     money(s.NetProfit),
		MarginPercent: utils.FormatPercent(s.MarginPercent, lang),
		RoiPercent:    utils.FormatPercent(s.RoiPercent, lang),
	}
}

func recommendationMessage(r *models.CalculationResult, money func(float64) utils.Amount, lang string) string {
	if r.Recommendation.ProfitDelta == 0 {
		return i18n.T(lang, i18n.KeyRecommendTie)
	}
	delta := money(r.Recommendation.ProfitDelta).Display
	if r.Recommendation.Strategy == models.StrategyPlatform {
		return i18n.T(lang, i18n.KeyRecommendPlatform, delta)
	}
	return i18n.T(lang, i18n.KeyRecommendMerchant, delta)
}

func finiteDimensions(d models.ProductDimensions) bool {
	for _, v := range []float64{d.LengthCm, d.WidthCm, d.HeightCm, d.WeightKg, d.VolumeCubicMeters} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
