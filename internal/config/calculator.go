// internal/config/calculator.go
package config

import (
	"fmt"

	"github.com/sellerops/margin-backend/internal/calculator"
)

// Defaults converts the fee settings into calculator defaults.
func (f *FeeConfig) Defaults() calculator.Defaults {
	mode, _ := calculator.ParseMode(f.Mode)
	return calculator.Defaults{
		ReferralRate:         f.DefaultReferralRate,
		PlatformStorageFee:   f.PlatformStorageFee,
		MerchantShippingCost: f.MerchantShippingCost,
		Mode:                 mode,
	}
}

// Schedule returns the fee schedule file when one is configured, otherwise
// the built-in schedule.
func (f *FeeConfig) Schedule() (calculator.Schedule, error) {
	if f.SchedulePath == "" {
		return calculator.DefaultSchedule(), nil
	}
	s, err := calculator.LoadSchedule(f.SchedulePath)
	if err != nil {
		return calculator.Schedule{}, fmt.Errorf("failed to load fee schedule: %w", err)
	}
	return s, nil
}
