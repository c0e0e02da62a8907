// internal/models/calculation.go
package models

// ProductInfo is the calculator input as the form supplies it. Identifier
// fields play no part in the arithmetic. Weight is in grams, dimensions in
// centimeters, money in the schedule currency.
type ProductInfo struct {
	Name                 string       `json:"name,omitempty" validate:"omitempty,max=255"`
	ASIN                 string       `json:"asin,omitempty" validate:"omitempty,max=20"`
	Category             string       `json:"category,omitempty" validate:"omitempty,max=64"`
	SellPrice            NumericInput `json:"sell_price"`
	Cost                 NumericInput `json:"cost"`
	OtherCosts           NumericInput `json:"other_costs"`
	Weight               NumericInput `json:"weight"`
	Length               NumericInput `json:"length"`
	Width                NumericInput `json:"width"`
	Height               NumericInput `json:"height"`
	PlatformStorageFee   NumericInput `json:"platform_storage_fee"`
	MerchantShippingCost NumericInput `json:"merchant_shipping_cost"`
}

type FeeSource string

const (
	FeeSourceCatalog     FeeSource = "catalog"
	FeeSourceDefault     FeeSource = "default"
	FeeSourceOverride    FeeSource = "override"
	FeeSourceVolumetric  FeeSource = "volumetric"
	FeeSourceWeightTable FeeSource = "weight_table"
	FeeSourceNone        FeeSource = "none"
)

// ProductDimensions holds the normalized physical attributes.
type ProductDimensions struct {
	LengthCm          float64 `json:"length_cm"`
	WidthCm           float64 `json:"width_cm"`
	HeightCm          float64 `json:"height_cm"`
	WeightKg          float64 `json:"weight_kg"`
	VolumeCubicMeters float64 `json:"volume_cubic_meters"`
}

// StrategyResult is the profitability of one fulfillment strategy. Values are
// kept at full precision; margin and ROI may be infinite or NaN when the sell
// price or the cost is zero.
type StrategyResult struct {
	Strategy      Strategy `json:"strategy"`
	SellPrice     float64  `json:"sell_price"`
	ReferralFee   float64  `json:"referral_fee"`
	StorageFee    float64  `json:"storage_fee,omitempty"`
	LogisticsFee  float64  `json:"logistics_fee,omitempty"`
	ShippingCost  float64  `json:"shipping_cost,omitempty"`
	StrategyFees  float64  `json:"strategy_fees"`
	TotalCost     float64  `json:"total_cost"`
	NetProfit     float64  `json:"net_profit"`
	MarginPercent float64  `json:"margin_percent"`
	RoiPercent    float64  `json:"roi_percent"`
}

type Recommendation struct {
	Strategy    Strategy `json:"strategy"`
	ProfitDelta float64  `json:"profit_delta"`
}

type FeeBreakdown struct {
	ReferralSource  FeeSource `json:"referral_source"`
	StorageSource   FeeSource `json:"storage_source"`
	LogisticsSource FeeSource `json:"logistics_source"`
	ShippingSource  FeeSource `json:"shipping_source"`
}

// CalculationResult is derived from a ProductInfo and replaced wholesale on
// every calculation.
type CalculationResult struct {
	ScheduleVersion string             `json:"schedule_version"`
	Currency        string             `json:"currency"`
	Category        string             `json:"category,omitempty"`
	CategoryKnown   bool               `json:"category_known"`
	ReferralFeeRate float64            `json:"referral_fee_rate"`
	SellPrice       float64            `json:"sell_price"`
	Cost            float64            `json:"cost"`
	OtherCosts      float64            `json:"other_costs"`
	Platform        StrategyResult     `json:"platform"`
	Merchant        StrategyResult     `json:"merchant"`
	Recommendation  Recommendation     `json:"recommendation"`
	Fees            FeeBreakdown       `json:"fees"`
	Dimensions      *ProductDimensions `json:"product_dimensions,omitempty"`
}
