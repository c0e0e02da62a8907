// internal/calculator/comparison.go
package calculator

import "github.com/sellerops/margin-backend/internal/models"

// Recommend picks the strategy with the strictly greater net profit. On an
// exact tie merchant fulfillment is recommended with a zero delta.
func Recommend(platform, merchant models.StrategyResult) models.Recommendation {
	if platform.NetProfit > merchant.NetProfit {
		return models.Recommendation{
			Strategy:    models.StrategyPlatform,
			ProfitDelta: platform.NetProfit - merchant.NetProfit,
		}
	}
	return models.Recommendation{
		Strategy:    models.StrategyMerchant,
		ProfitDelta: merchant.NetProfit - platform.NetProfit,
	}
}

func strategyResult(s models.Strategy, sellPrice float64, p Profitability, fees ResolvedFees) models.StrategyResult {
	r := models.StrategyResult{
		Strategy:      s,
		SellPrice:     sellPrice,
		ReferralFee:   p.ReferralFee,
		TotalCost:     p.TotalCost,
		NetProfit:     p.NetProfit,
		MarginPercent: p.MarginPercent,
		RoiPercent:    p.RoiPercent,
	}
	if s == models.StrategyPlatform {
		r.StorageFee = fees.StorageFee
		r.LogisticsFee = fees.LogisticsFee
		r.StrategyFees = fees.PlatformFees()
	} else {
		r.ShippingCost = fees.ShippingCost
		r.StrategyFees = fees.MerchantFees()
	}
	return r
}
