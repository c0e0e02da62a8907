// internal/calculator/profitability.go
package calculator

// Profitability is the outcome of one strategy at full precision.
type Profitability struct {
	ReferralFee   float64
	TotalCost     float64
	NetProfit     float64
	MarginPercent float64
	RoiPercent    float64
}

// Compute applies the marketplace profit formulas. A zero sellPrice or cost
// gives IEEE infinities or NaN for margin and ROI; formatting them is up to
// the renderer.
func Compute(sellPrice, cost, otherCosts, referralFeeRate, strategyFees float64) Profitability {
	referralFee := sellPrice * referralFeeRate
	totalCost := cost + otherCosts + referralFee + strategyFees
	netProfit := sellPrice - totalCost

	return Profitability{
		ReferralFee:   referralFee,
		TotalCost:     totalCost,
		NetProfit:     netProfit,
		MarginPercent: netProfit / sellPrice * 100,
		RoiPercent:    netProfit / cost * 100,
	}
}
