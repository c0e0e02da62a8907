// internal/calculator/engine.go
package calculator

import (
	"errors"
	"strings"

	"github.com/sellerops/margin-backend/internal/models"
)

var ErrMissingMandatoryField = errors.New("missing mandatory field")

// MissingFieldError lists the mandatory fields left blank.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return ErrMissingMandatoryField.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingMandatoryField
}

// Engine compares platform and merchant fulfillment for a product. It holds
// only read-only reference data and is safe for concurrent use.
type Engine struct {
	schedule Schedule
	defaults Defaults
	resolver *Resolver
}

func NewEngine(schedule Schedule, defaults Defaults) *Engine {
	schedule = schedule.Clone()
	return &Engine{
		schedule: schedule,
		defaults: defaults,
		resolver: NewResolver(schedule, defaults),
	}
}

// Schedule returns a copy of the reference data in use.
func (e *Engine) Schedule() Schedule {
	return e.schedule.Clone()
}

func (e *Engine) Defaults() Defaults {
	return e.defaults
}

func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Calculate runs both strategies over the same product. Blank sell price or
// cost is rejected with a *MissingFieldError; every other gap falls back to
// a default.
func (e *Engine) Calculate(info models.ProductInfo) (*models.CalculationResult, error) {
	var missing []string
	if info.SellPrice.IsBlank() {
		missing = append(missing, "sell_price")
	}
	if info.Cost.IsBlank() {
		missing = append(missing, "cost")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldError{Fields: missing}
	}

	sellPrice := Normalize(KindMonetary, info.SellPrice)
	cost := Normalize(KindMonetary, info.Cost)
	otherCosts := Normalize(KindMonetary, info.OtherCosts)
	dims := Dimensions(info)

	req := FeeRequest{
		Category:          strings.TrimSpace(info.Category),
		WeightKg:          dims.WeightKg,
		VolumeCubicMeters: dims.VolumeCubicMeters,
	}
	if v, ok := override(info.PlatformStorageFee); ok {
		req.StorageOverride = &v
	}
	if v, ok := override(info.MerchantShippingCost); ok {
		req.ShippingOverride = &v
	}
	fees := e.resolver.Resolve(req)

	platform := strategyResult(models.StrategyPlatform, sellPrice,
		Compute(sellPrice, cost, otherCosts, fees.ReferralFeeRate, fees.PlatformFees()), fees)
	merchant := strategyResult(models.StrategyMerchant, sellPrice,
		Compute(sellPrice, cost, otherCosts, fees.ReferralFeeRate, fees.MerchantFees()), fees)

	result := &models.CalculationResult{
		ScheduleVersion: e.schedule.Version,
		Currency:        e.schedule.Currency,
		Category:        req.Category,
		CategoryKnown:   fees.Category != nil,
		ReferralFeeRate: fees.ReferralFeeRate,
		SellPrice:       sellPrice,
		Cost:            cost,
		OtherCosts:      otherCosts,
		Platform:        platform,
		Merchant:        merchant,
		Recommendation:  Recommend(platform, merchant),
		Fees:            fees.Breakdown,
	}
	if hasDimensions(info) {
		result.Dimensions = &dims
	}
	return result, nil
}

func hasDimensions(info models.ProductInfo) bool {
	return !info.Weight.IsBlank() || !info.Length.IsBlank() || !info.Width.IsBlank() || !info.Height.IsBlank()
}
