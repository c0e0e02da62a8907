// internal/models/product.go
package models

import "time"

type PhysicalDimensions struct {
	Width  string `json:"width,omitempty" validate:"omitempty,decimal_text"`
	Height string `json:"height,omitempty" validate:"omitempty,decimal_text"`
	Length string `json:"length,omitempty" validate:"omitempty,decimal_text"`
}

type Variations struct {
	Type         VariationType `json:"type,omitempty"`
	ColorOptions string        `json:"color_options,omitempty"`
	SizeOptions  string        `json:"size_options,omitempty"`
}

// Product is a sourcing candidate registered for simulation. Weight and
// dimensions are stored as the seller typed them.
type Product struct {
	BaseModel
	Name            string             `json:"name"`
	Manufacturer    string             `json:"manufacturer,omitempty"`
	Brand           string             `json:"brand,omitempty"`
	Model           string             `json:"model,omitempty"`
	UPCCode         string             `json:"upc_code,omitempty"`
	Dimensions      PhysicalDimensions `json:"dimensions"`
	Weight          string             `json:"weight,omitempty"`
	Characteristics string             `json:"characteristics,omitempty"`
	Variations      Variations         `json:"variations"`
	Price           string             `json:"price,omitempty"`
	SKU             string             `json:"sku,omitempty"`
	ASIN            string             `json:"asin,omitempty"`
	Supplier        string             `json:"supplier"`
	Category        string             `json:"category"`
	Status          ProductStatus      `json:"status,omitempty"`
	Saved           bool               `json:"saved"`
	SavedAt         *time.Time         `json:"saved_at,omitempty"`
	Simulation      *SimulationInput   `json:"simulation,omitempty"`
	Result          *SimulationResult  `json:"result,omitempty"`
}

// SimulationInput is the landed cost breakdown of a product. Product cost and
// international shipping are in dollars, everything else in local currency.
type SimulationInput struct {
	ProductCost           float64  `json:"product_cost"`
	InternationalShipping float64  `json:"international_shipping"`
	ImportTax             float64  `json:"import_tax"`
	DollarRate            float64  `json:"dollar_rate"`
	FBALogisticsCost      float64  `json:"fba_logistics_cost"`
	FBMLogisticsCost      float64  `json:"fbm_logistics_cost"`
	PrepCenterCost        float64  `json:"prep_center_cost"`
	SellPrice             float64  `json:"sell_price"`
	Strategy              Strategy `json:"strategy"`
}

// LogisticsCost returns the logistics cost of the given strategy.
func (s SimulationInput) LogisticsCost(strategy Strategy) float64 {
	if strategy == StrategyPlatform {
		return s.FBALogisticsCost
	}
	return s.FBMLogisticsCost
}

type SimulationOutcome struct {
	Strategy      Strategy `json:"strategy"`
	LogisticsCost float64  `json:"logistics_cost"`
	TotalUnitCost float64  `json:"total_unit_cost"`
	NetProfit     float64  `json:"net_profit"`
	MarginPercent float64  `json:"margin_percent"`
	RoiPercent    float64  `json:"roi_percent"`
}

// SimulationResult holds both strategies; the summary fields repeat the
// outcome of the selected one.
type SimulationResult struct {
	ProductCostLocal  float64           `json:"product_cost_local"`
	ShippingCostLocal float64           `json:"shipping_cost_local"`
	Selected          SimulationOutcome `json:"selected"`
	Platform          SimulationOutcome `json:"platform"`
	Merchant          SimulationOutcome `json:"merchant"`
	Recommendation    Recommendation    `json:"recommendation"`
	SimulatedAt       time.Time         `json:"simulated_at"`
}

// Clone copies the product so callers cannot reach shared state.
func (p *Product) Clone() *Product {
	out := *p
	if p.Simulation != nil {
		s := *p.Simulation
		out.Simulation = &s
	}
	if p.Result != nil {
		r := *p.Result
		out.Result = &r
	}
	if p.SavedAt != nil {
		t := *p.SavedAt
		out.SavedAt = &t
	}
	return &out
}
