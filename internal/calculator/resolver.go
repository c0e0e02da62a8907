// internal/calculator/resolver.go
package calculator

import "github.com/sellerops/margin-backend/internal/models"

// Mode selects how platform storage and logistics fees are resolved.
type Mode string

const (
	// ModeVolumetric estimates storage from volume and logistics from weight.
	ModeVolumetric Mode = "volumetric"
	// ModeFlat charges a flat storage fee and no logistics fee.
	ModeFlat Mode = "flat"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeVolumetric, ModeFlat:
		return Mode(s), true
	}
	return ModeVolumetric, false
}

// Defaults are the values used whenever the user leaves a fee blank.
type Defaults struct {
	ReferralRate         float64 `json:"referral_rate"`
	PlatformStorageFee   float64 `json:"platform_storage_fee"`
	MerchantShippingCost float64 `json:"merchant_shipping_cost"`
	Mode                 Mode    `json:"mode"`
}

// StandardDefaults mirrors the current seller dashboard.
func StandardDefaults() Defaults {
	return Defaults{
		ReferralRate:         0.15,
		PlatformStorageFee:   5.00,
		MerchantShippingCost: 12.00,
		Mode:                 ModeVolumetric,
	}
}

// FeeRequest carries the normalized inputs of a fee lookup. Nil overrides
// mean "not supplied".
type FeeRequest struct {
	Category          string
	WeightKg          float64
	VolumeCubicMeters float64
	StorageOverride   *float64
	ShippingOverride  *float64
}

type ResolvedFees struct {
	Category        *Category
	ReferralFeeRate float64
	StorageFee      float64
	LogisticsFee    float64
	ShippingCost    float64
	Breakdown       models.FeeBreakdown
}

// PlatformFees is the strategy specific fee total for platform fulfillment.
func (f ResolvedFees) PlatformFees() float64 {
	return f.StorageFee + f.LogisticsFee
}

// MerchantFees is the strategy specific fee total for merchant fulfillment.
func (f ResolvedFees) MerchantFees() float64 {
	return f.ShippingCost
}

type Resolver struct {
	schedule Schedule
	defaults Defaults
}

func NewResolver(schedule Schedule, defaults Defaults) *Resolver {
	return &Resolver{schedule: schedule, defaults: defaults}
}

// Resolve never fails: anything missing falls back to the defaults.
func (r *Resolver) Resolve(req FeeRequest) ResolvedFees {
	var fees ResolvedFees

	if c, ok := r.schedule.Category(req.Category); ok {
		fees.Category = &c
		fees.ReferralFeeRate = c.ReferralFeeRate
		fees.Breakdown.ReferralSource = models.FeeSourceCatalog
	} else {
		fees.ReferralFeeRate = r.defaults.ReferralRate
		fees.Breakdown.ReferralSource = models.FeeSourceDefault
	}

	switch {
	case req.StorageOverride != nil:
		fees.StorageFee = *req.StorageOverride
		fees.Breakdown.StorageSource = models.FeeSourceOverride
	case r.defaults.Mode == ModeFlat:
		fees.StorageFee = r.defaults.PlatformStorageFee
		fees.Breakdown.StorageSource = models.FeeSourceDefault
	default:
		fees.StorageFee = req.VolumeCubicMeters * r.schedule.StorageRatePerCubicMeter
		fees.Breakdown.StorageSource = models.FeeSourceVolumetric
	}

	if r.defaults.Mode == ModeFlat {
		fees.Breakdown.LogisticsSource = models.FeeSourceNone
	} else {
		fees.LogisticsFee = r.schedule.LogisticsFee(req.WeightKg)
		fees.Breakdown.LogisticsSource = models.FeeSourceWeightTable
	}

	if req.ShippingOverride != nil {
		fees.ShippingCost = *req.ShippingOverride
		fees.Breakdown.ShippingSource = models.FeeSourceOverride
	} else {
		fees.ShippingCost = r.defaults.MerchantShippingCost
		fees.Breakdown.ShippingSource = models.FeeSourceDefault
	}

	return fees
}
