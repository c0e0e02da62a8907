// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base fields shared by the in-memory registries
type BaseModel struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type Strategy string

const (
	// StrategyPlatform is fulfilled by the marketplace (FBA).
	StrategyPlatform Strategy = "platform"
	// StrategyMerchant is fulfilled by the seller (FBM).
	StrategyMerchant Strategy = "merchant"
)

func (s Strategy) Valid() bool {
	return s == StrategyPlatform || s == StrategyMerchant
}

type ProductStatus string

const (
	ProductStatusSimulated ProductStatus = "simulated"
	ProductStatusQuoting   ProductStatus = "quoting"
	ProductStatusPurchased ProductStatus = "purchased"
	ProductStatusInStock   ProductStatus = "in_stock"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusSimulated, ProductStatusQuoting, ProductStatusPurchased, ProductStatusInStock:
		return true
	}
	return false
}

type PartnerType string

const (
	PartnerTypeSupplier   PartnerType = "supplier"
	PartnerTypePrepCenter PartnerType = "prep_center"
)

type VariationType string

const (
	VariationColor         VariationType = "color"
	VariationColorSize     VariationType = "color-size"
	VariationSizeName      VariationType = "size-name"
	VariationSizeColorName VariationType = "size-color-name"
)
