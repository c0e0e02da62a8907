// internal/services/product_service.go
package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sellerops/margin-backend/internal/calculator"
	"github.com/sellerops/margin-backend/internal/models"
	"github.com/sellerops/margin-backend/internal/utils"
)

// ProductService keeps registered products for the lifetime of the process.
// Products stay drafts until saved; only saved products are listed.
type ProductService struct {
	mu                sync.RWMutex
	products          map[uuid.UUID]*models.Product
	defaultDollarRate float64
	logger            *logrus.Logger
	now               func() time.Time
}

type RegisterProductRequest struct {
	Name            string                    `json:"name" validate:"required,min=3,max=255"`
	Manufacturer    string                    `json:"manufacturer,omitempty" validate:"omitempty,max=255"`
	Brand           string                    `json:"brand,omitempty" validate:"omitempty,max=255"`
	Model           string                    `json:"model,omitempty" validate:"omitempty,max=255"`
	UPCCode         string                    `json:"upc_code,omitempty" validate:"omitempty,max=32"`
	Dimensions      models.PhysicalDimensions `json:"dimensions"`
	Weight          string                    `json:"weight,omitempty" validate:"omitempty,decimal_text"`
	Characteristics string                    `json:"characteristics,omitempty"`
	Variations      models.Variations         `json:"variations"`
	Price           string                    `json:"price,omitempty" validate:"omitempty,decimal_text"`
	SKU             string                    `json:"sku,omitempty" validate:"omitempty,max=64"`
	ASIN            string                    `json:"asin,omitempty" validate:"omitempty,max=20"`
	Supplier        string                    `json:"supplier" validate:"required,min=2,max=255"`
	Category        string                    `json:"category" validate:"required,category_id"`
}

// SimulateProductRequest is the landed cost breakdown. A zero DollarRate
// takes the configured default.
type SimulateProductRequest struct {
	ProductCost           float64         `json:"product_cost" validate:"gt=0"`
	InternationalShipping float64         `json:"international_shipping" validate:"min=0"`
	ImportTax             float64         `json:"import_tax" validate:"min=0"`
	DollarRate            float64         `json:"dollar_rate" validate:"min=0"`
	FBALogisticsCost      float64         `json:"fba_logistics_cost" validate:"min=0"`
	FBMLogisticsCost      float64         `json:"fbm_logistics_cost" validate:"min=0"`
	PrepCenterCost        float64         `json:"prep_center_cost" validate:"min=0"`
	SellPrice             float64         `json:"sell_price" validate:"gt=0"`
	Strategy              models.Strategy `json:"strategy" validate:"required,oneof=platform merchant"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Status *models.ProductStatus `json:"status,omitempty"`
}

var productSortFields = []string{"created_at", "net_profit", "margin", "roi"}

func NewProductService(defaultDollarRate float64, logger *logrus.Logger) *ProductService {
	return &ProductService{
		products:          make(map[uuid.UUID]*models.Product),
		defaultDollarRate: defaultDollarRate,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *ProductService) RegisterProduct(req *RegisterProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := s.now()
	product := &models.Product{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            strings.TrimSpace(req.Name),
		Manufacturer:    req.Manufacturer,
		Brand:           req.Brand,
		Model:           req.Model,
		UPCCode:         req.UPCCode,
		Dimensions:      req.Dimensions,
		Weight:          req.Weight,
		Characteristics: req.Characteristics,
		Variations:      req.Variations,
		Price:           req.Price,
		SKU:             strings.TrimSpace(req.SKU),
		ASIN:            strings.TrimSpace(req.ASIN),
		Supplier:        strings.TrimSpace(req.Supplier),
		Category:        strings.TrimSpace(req.Category),
	}

	s.mu.Lock()
	s.products[product.ID] = product
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"sku":        product.SKU,
		"asin":       product.ASIN,
	}).Info("product registered")

	return product.Clone(), nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return product.Clone(), nil
}

func (s *ProductService) SimulateProduct(id uuid.UUID, req *SimulateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	input := models.SimulationInput{
		ProductCost:           req.ProductCost,
		InternationalShipping: req.InternationalShipping,
		ImportTax:             req.ImportTax,
		DollarRate:            req.DollarRate,
		FBALogisticsCost:      req.FBALogisticsCost,
		FBMLogisticsCost:      req.FBMLogisticsCost,
		PrepCenterCost:        req.PrepCenterCost,
		SellPrice:             req.SellPrice,
		Strategy:              req.Strategy,
	}
	if input.DollarRate == 0 {
		input.DollarRate = s.defaultDollarRate
	}

	return s.applySimulation(id, func(*models.SimulationInput) (models.SimulationInput, error) {
		return input, nil
	})
}

// PatchSimulation edits simulation fields from form text. Blank text clears a
// field and malformed text keeps its previous value.
func (s *ProductService) PatchSimulation(id uuid.UUID, fields map[string]string) (*models.Product, error) {
	return s.applySimulation(id, func(prev *models.SimulationInput) (models.SimulationInput, error) {
		if prev == nil {
			return models.SimulationInput{}, ErrNotSimulated
		}
		next := *prev
		for name, raw := range fields {
			if name == "strategy" {
				strategy := models.Strategy(strings.TrimSpace(raw))
				if strategy.Valid() {
					next.Strategy = strategy
				}
				continue
			}
			target := simulationField(&next, name)
			if target == nil {
				return models.SimulationInput{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
			}
			*target = calculator.Retain(*target, raw)
		}
		return next, nil
	})
}

func simulationField(in *models.SimulationInput, name string) *float64 {
	switch name {
	case "product_cost":
		return &in.ProductCost
	case "international_shipping":
		return &in.InternationalShipping
	case "import_tax":
		return &in.ImportTax
	case "dollar_rate":
		return &in.DollarRate
	case "fba_logistics_cost":
		return &in.FBALogisticsCost
	case "fbm_logistics_cost":
		return &in.FBMLogisticsCost
	case "prep_center_cost":
		return &in.PrepCenterCost
	case "sell_price":
		return &in.SellPrice
	}
	return nil
}

func (s *ProductService) applySimulation(id uuid.UUID, build func(prev *models.SimulationInput) (models.SimulationInput, error)) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	input, err := build(product.Simulation)
	if err != nil {
		return nil, err
	}
	if input.SellPrice <= 0 || input.ProductCost <= 0 || input.DollarRate <= 0 {
		return nil, ErrInvalidSimulation
	}

	result := Simulate(input)
	if !finiteResult(result) {
		return nil, ErrInvalidSimulation
	}

	now := s.now()
	result.SimulatedAt = now
	product.Simulation = &input
	product.Result = &result
	product.UpdatedAt = now

	s.logger.WithFields(logrus.Fields{
		"product_id":     product.ID,
		"strategy":       input.Strategy,
		"net_profit":     result.Selected.NetProfit,
		"recommendation": result.Recommendation.Strategy,
	}).Info("product simulated")

	return product.Clone(), nil
}

// Simulate prices an imported product under both strategies. Dollar amounts
// are converted at DollarRate and no marketplace referral fee is charged.
func Simulate(in models.SimulationInput) models.SimulationResult {
	costLocal := in.ProductCost * in.DollarRate
	shippingLocal := in.InternationalShipping * in.DollarRate
	otherCosts := shippingLocal + in.ImportTax + in.PrepCenterCost

	outcome := func(strategy models.Strategy) models.SimulationOutcome {
		logistics := in.LogisticsCost(strategy)
		p := calculator.Compute(in.SellPrice, costLocal, otherCosts, 0, logistics)
		return models.SimulationOutcome{
			Strategy:      strategy,
			LogisticsCost: logistics,
			TotalUnitCost: p.TotalCost,
			NetProfit:     p.NetProfit,
			MarginPercent: p.MarginPercent,
			RoiPercent:    p.RoiPercent,
		}
	}

	platform := outcome(models.StrategyPlatform)
	merchant := outcome(models.StrategyMerchant)
	selected := merchant
	if in.Strategy == models.StrategyPlatform {
		selected = platform
	}

	return models.SimulationResult{
		ProductCostLocal:  costLocal,
		ShippingCostLocal: shippingLocal,
		Selected:          selected,
		Platform:          platform,
		Merchant:          merchant,
		Recommendation: calculator.Recommend(
			models.StrategyResult{Strategy: models.StrategyPlatform, NetProfit: platform.NetProfit},
			models.StrategyResult{Strategy: models.StrategyMerchant, NetProfit: merchant.NetProfit},
		),
	}
}

// finiteResult reports whether every figure of a simulation can be stored
// and rendered. Huge inputs overflow to infinities.
func finiteResult(r models.SimulationResult) bool {
	values := []float64{r.ProductCostLocal, r.ShippingCostLocal, r.Recommendation.ProfitDelta}
	for _, o := range []models.SimulationOutcome{r.Platform, r.Merchant} {
		values = append(values, o.TotalUnitCost, o.NetProfit, o.MarginPercent, o.RoiPercent)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SaveProduct adds a simulated product to the list. An already listed
// product with the same id, ASIN or SKU is replaced in place and keeps its
// id, creation time and status.
func (s *ProductService) SaveProduct(id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if draft.Result == nil {
		return nil, ErrNotSimulated
	}

	now := s.now()
	target := draft
	if !draft.Saved {
		if existing := s.findSavedLocked(draft); existing != nil {
			replacement := draft.Clone()
			replacement.BaseModel = existing.BaseModel
			replacement.Status = existing.Status
			replacement.Saved = true
			delete(s.products, draft.ID)
			s.products[existing.ID] = replacement
			target = replacement
		}
	}

	if !target.Saved {
		target.Saved = true
		target.Status = models.ProductStatusSimulated
		target.CreatedAt = now
	}
	target.SavedAt = &now
	target.UpdatedAt = now

	s.logger.WithFields(logrus.Fields{
		"product_id": target.ID,
		"replaced":   target.ID != id,
	}).Info("product saved")

	return target.Clone(), nil
}

func (s *ProductService) findSavedLocked(draft *models.Product) *models.Product {
	if draft.ASIN != "" {
		for _, p := range s.products {
			if p.Saved && p.ID != draft.ID && strings.EqualFold(p.ASIN, draft.ASIN) {
				return p
			}
		}
	}
	if draft.SKU != "" {
		for _, p := range s.products {
			if p.Saved && p.ID != draft.ID && strings.EqualFold(p.SKU, draft.SKU) {
				return p
			}
		}
	}
	return nil
}

func (s *ProductService) UpdateStatus(id uuid.UUID, status models.ProductStatus) (*models.Product, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok || !product.Saved {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	product.Status = status
	product.UpdatedAt = s.now()

	return product.Clone(), nil
}

// SearchProducts lists saved products. Search matches name, SKU, ASIN and
// supplier without regard to case.
func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64) {
	search := strings.ToLower(strings.TrimSpace(params.Search))

	s.mu.RLock()
	matched := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.Saved {
			continue
		}
		if params.Status != nil && p.Status != *params.Status {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		matched = append(matched, *p.Clone())
	}
	s.mu.RUnlock()

	key := productSortKey(utils.SortField(params.PaginationParams, productSortFields))
	desc := params.Order != "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := key(&matched[i]), key(&matched[j])
		if a == b {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		if desc {
			return a > b
		}
		return a < b
	})

	return utils.Paginate(matched, params.PaginationParams), int64(len(matched))
}

func matchesSearch(p *models.Product, search string) bool {
	for _, field := range []string{p.Name, p.SKU, p.ASIN, p.Supplier} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func productSortKey(field string) func(*models.Product) float64 {
	outcome := func(p *models.Product) *models.SimulationOutcome {
		if p.Result == nil {
			return nil
		}
		return &p.Result.Selected
	}

	switch field {
	case "net_profit":
		return func(p *models.Product) float64 {
			if o := outcome(p); o != nil {
				return o.NetProfit
			}
			return 0
		}
	case "margin":
		return func(p *models.Product) float64 {
			if o := outcome(p); o != nil {
				return o.MarginPercent
			}
			return 0
		}
	case "roi":
		return func(p *models.Product) float64 {
			if o := outcome(p); o != nil {
				return o.RoiPercent
			}
			return 0
		}
	default:
		return func(p *models.Product) float64 {
			return float64(p.CreatedAt.UnixNano())
		}
	}
}
