package calculator

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sellerops/margin-backend/internal/models"
)

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.engine = NewEngine(DefaultSchedule(), StandardDefaults())
}

func (s *EngineTestSuite) calculate(info models.ProductInfo) *models.CalculationResult {
	result, err := s.engine.Calculate(info)
	s.Require().NoError(err)
	s.Require().NotNil(result)
	return result
}

func (s *EngineTestSuite) TestBasicCalculationWithDefaults() {
	result := s.calculate(models.ProductInfo{
		SellPrice: models.Text("99,90"),
		Cost:      models.Text("45,00"),
	})

	referral := 99.9 * 0.15
	s.Equal(0.15, result.ReferralFeeRate)
	s.False(result.CategoryKnown)
	s.Equal(models.FeeSourceDefault, result.Fees.ReferralSource)

	p := result.Platform
	s.InDelta(referral, p.ReferralFee, 1e-9)
	s.Zero(p.StorageFee, "volume 0 gives no storage")
	s.Equal(4.14, p.LogisticsFee, "weight 0 uses the smallest bucket")
	s.InDelta(45+referral+4.14, p.TotalCost, 1e-9)
	s.InDelta(99.9-(45+referral+4.14), p.NetProfit, 1e-9)
	s.InDelta(p.NetProfit/99.9*100, p.MarginPercent, 1e-9)
	s.InDelta(p.NetProfit/45*100, p.RoiPercent, 1e-9)

	m := result.Merchant
	s.InDelta(referral, m.ReferralFee, 1e-9)
	s.Equal(12.0, m.ShippingCost)
	s.InDelta(45+referral+12, m.TotalCost, 1e-9)

	s.Equal(models.StrategyPlatform, result.Recommendation.Strategy)
	s.InDelta(12-4.14, result.Recommendation.ProfitDelta, 1e-9)
	s.Nil(result.Dimensions)
}

func (s *EngineTestSuite) TestAcceptsNumbersAndText() {
	fromText := s.calculate(models.ProductInfo{SellPrice: models.Text("120,5"), Cost: models.Text("60")})
	fromNumbers := s.calculate(models.ProductInfo{SellPrice: models.Number(120.5), Cost: models.Number(60)})
	s.Equal(fromText, fromNumbers)
}

func (s *EngineTestSuite) TestMissingMandatoryFields() {
	_, err := s.engine.Calculate(models.ProductInfo{Cost: models.Number(10)})
	s.Require().Error(err)
	s.True(errors.Is(err, ErrMissingMandatoryField))

	var mfe *MissingFieldError
	s.Require().True(errors.As(err, &mfe))
	s.Equal([]string{"sell_price"}, mfe.Fields)

	_, err = s.engine.Calculate(models.ProductInfo{SellPrice: models.Text(" "), Cost: models.Text("")})
	s.Require().True(errors.As(err, &mfe))
	s.Equal([]string{"sell_price", "cost"}, mfe.Fields)
}

func (s *EngineTestSuite) TestUnparseableOptionalFieldIsIgnored() {
	clean := s.calculate(models.ProductInfo{SellPrice: models.Number(100), Cost: models.Number(40)})
	dirty := s.calculate(models.ProductInfo{
		SellPrice:  models.Number(100),
		Cost:       models.Number(40),
		OtherCosts: models.Text("dez reais"),
	})
	s.Equal(clean.Platform, dirty.Platform)
	s.Equal(clean.Merchant, dirty.Merchant)
}

func (s *EngineTestSuite) TestLogisticsAtTopThreshold() {
	result := s.calculate(models.ProductInfo{
		SellPrice: models.Number(500),
		Cost:      models.Number(100),
		Weight:    models.Text("30000"),
	})
	s.Equal(73.99, result.Platform.LogisticsFee)
	s.Require().NotNil(result.Dimensions)
	s.Equal(30.0, result.Dimensions.WeightKg)
}

func (s *EngineTestSuite) TestLogisticsJustOverTopThreshold() {
	result := s.calculate(models.ProductInfo{
		SellPrice: models.Number(500),
		Cost:      models.Number(100),
		Weight:    models.Text("30001"),
	})
	s.InDelta(73.99+25, result.Platform.LogisticsFee, 1e-9)
}

func (s *EngineTestSuite) TestZeroSellPriceDoesNotPanic() {
	result := s.calculate(models.ProductInfo{SellPrice: models.Text("0"), Cost: models.Text("50")})

	s.InDelta(-(50 + 4.14), result.Platform.NetProfit, 1e-9)
	s.True(math.IsInf(result.Platform.MarginPercent, -1))
	s.True(math.IsInf(result.Merchant.MarginPercent, -1))
	s.False(math.IsInf(result.Platform.RoiPercent, 0))
}

func (s *EngineTestSuite) TestZeroSellPriceAndCostGivesNaN() {
	engine := NewEngine(DefaultSchedule(), Defaults{Mode: ModeFlat})
	result, err := engine.Calculate(models.ProductInfo{
		SellPrice:            models.Number(0),
		Cost:                 models.Number(0),
		PlatformStorageFee:   models.Text("0"),
		MerchantShippingCost: models.Text("0"),
	})
	s.Require().NoError(err)
	s.True(math.IsNaN(result.Platform.MarginPercent))
	s.True(math.IsNaN(result.Platform.RoiPercent))
	s.True(math.IsNaN(result.Merchant.RoiPercent))
}

func (s *EngineTestSuite) TestUnknownCategoryFallsBackToDefault() {
	none := s.calculate(models.ProductInfo{SellPrice: models.Number(80), Cost: models.Number(30)})
	unknown := s.calculate(models.ProductInfo{SellPrice: models.Number(80), Cost: models.Number(30), Category: "unknown_id"})

	s.Equal(none.ReferralFeeRate, unknown.ReferralFeeRate)
	s.Equal(none.Platform, unknown.Platform)
	s.Equal(none.Merchant, unknown.Merchant)
	s.False(unknown.CategoryKnown)
}

func (s *EngineTestSuite) TestOmittedCategoryMatchesCategoryWithDefaultRate() {
	none := s.calculate(models.ProductInfo{SellPrice: models.Number(80), Cost: models.Number(30)})
	home := s.calculate(models.ProductInfo{SellPrice: models.Number(80), Cost: models.Number(30), Category: "home"})

	s.True(home.CategoryKnown)
	s.Equal(models.FeeSourceCatalog, home.Fees.ReferralSource)
	s.Equal(none.Platform, home.Platform)
	s.Equal(none.Merchant, home.Merchant)
}

func (s *EngineTestSuite) TestKnownCategoryRate() {
	result := s.calculate(models.ProductInfo{SellPrice: models.Number(100), Cost: models.Number(30), Category: "computers"})
	s.Equal(0.08, result.ReferralFeeRate)
	s.InDelta(8, result.Platform.ReferralFee, 1e-9)
}

func (s *EngineTestSuite) TestStorageOverrideWins() {
	result := s.calculate(models.ProductInfo{
		SellPrice:          models.Number(150),
		Cost:               models.Number(50),
		Length:             models.Text("20"),
		Width:              models.Text("10"),
		Height:             models.Text("15"),
		PlatformStorageFee: models.Text("10.00"),
	})
	s.Equal(10.0, result.Platform.StorageFee)
	s.Equal(models.FeeSourceOverride, result.Fees.StorageSource)
	s.Require().NotNil(result.Dimensions)
	s.Equal(0.003, result.Dimensions.VolumeCubicMeters)
}

func (s *EngineTestSuite) TestVolumetricStorage() {
	result := s.calculate(models.ProductInfo{
		SellPrice: models.Number(150),
		Cost:      models.Number(50),
		Length:    models.Text("20"),
		Width:     models.Text("10"),
		Height:    models.Text("15"),
	})
	s.InDelta(0.003*28.63, result.Platform.StorageFee, 1e-12)
	s.Equal(models.FeeSourceVolumetric, result.Fees.StorageSource)
}

func (s *EngineTestSuite) TestShippingOverride() {
	result := s.calculate(models.ProductInfo{
		SellPrice:            models.Number(150),
		Cost:                 models.Number(50),
		MerchantShippingCost: models.Text("8,50"),
	})
	s.Equal(8.5, result.Merchant.ShippingCost)
	s.Equal(8.5, result.Merchant.StrategyFees)
	s.Equal(models.FeeSourceOverride, result.Fees.ShippingSource)
}

func (s *EngineTestSuite) TestFlatMode() {
	engine := NewEngine(DefaultSchedule(), Defaults{
		ReferralRate:         0.13,
		PlatformStorageFee:   5,
		MerchantShippingCost: 12,
		Mode:                 ModeFlat,
	})
	result, err := engine.Calculate(models.ProductInfo{
		SellPrice: models.Number(100),
		Cost:      models.Number(40),
		Weight:    models.Number(50000),
	})
	s.Require().NoError(err)

	s.Equal(5.0, result.Platform.StorageFee)
	s.Zero(result.Platform.LogisticsFee)
	s.Equal(models.FeeSourceNone, result.Fees.LogisticsSource)
	s.InDelta(40+13+5, result.Platform.TotalCost, 1e-9)
}

func (s *EngineTestSuite) TestIdempotent() {
	info := models.ProductInfo{
		Category:  "toys",
		SellPrice: models.Text("79,90"),
		Cost:      models.Text("22"),
		Weight:    models.Text("850"),
		Length:    models.Text("30"),
		Width:     models.Text("20"),
		Height:    models.Text("10"),
	}
	s.Equal(s.calculate(info), s.calculate(info))
}

func (s *EngineTestSuite) TestNetProfitIncreasesWithSellPrice() {
	prev := math.Inf(-1)
	for price := 1.0; price <= 500; price += 7.5 {
		result := s.calculate(models.ProductInfo{
			Category:  "amazon_devices",
			SellPrice: models.Number(price),
			Cost:      models.Number(40),
			Weight:    models.Number(1200),
		})
		s.Greater(result.Platform.NetProfit, prev)
		prev = result.Platform.NetProfit
	}
}

func (s *EngineTestSuite) TestConcurrentCalculations() {
	info := models.ProductInfo{SellPrice: models.Number(99.9), Cost: models.Number(45), Weight: models.Number(420)}
	want := s.calculate(info)

	var wg sync.WaitGroup
	results := make([]*models.CalculationResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.engine.Calculate(info)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		s.Equal(want, r)
	}
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func TestRecommend(t *testing.T) {
	platform := models.StrategyResult{Strategy: models.StrategyPlatform, NetProfit: 30}
	merchant := models.StrategyResult{Strategy: models.StrategyMerchant, NetProfit: 20}

	rec := Recommend(platform, merchant)
	assert.Equal(t, models.StrategyPlatform, rec.Strategy)
	assert.Equal(t, 10.0, rec.ProfitDelta)

	merchant.NetProfit = 45
	rec = Recommend(platform, merchant)
	assert.Equal(t, models.StrategyMerchant, rec.Strategy)
	assert.Equal(t, 15.0, rec.ProfitDelta)
}

func TestRecommend_TieFavorsMerchant(t *testing.T) {
	rec := Recommend(
		models.StrategyResult{NetProfit: 17.25},
		models.StrategyResult{NetProfit: 17.25},
	)
	assert.Equal(t, models.StrategyMerchant, rec.Strategy)
	assert.Zero(t, rec.ProfitDelta)
}

func TestCalculate_TieFavorsMerchant(t *testing.T) {
	engine := NewEngine(DefaultSchedule(), Defaults{ReferralRate: 0.15, MerchantShippingCost: 12, Mode: ModeFlat})
	result, err := engine.Calculate(models.ProductInfo{
		SellPrice:          models.Number(100),
		Cost:               models.Number(40),
		PlatformStorageFee: models.Number(12),
	})
	require.NoError(t, err)

	assert.Equal(t, result.Platform.NetProfit, result.Merchant.NetProfit)
	assert.Equal(t, models.StrategyMerchant, result.Recommendation.Strategy)
}

func TestCompute(t *testing.T) {
	p := Compute(200, 80, 10, 0.1, 15)
	assert.InDelta(t, 20, p.ReferralFee, 1e-9)
	assert.InDelta(t, 125, p.TotalCost, 1e-9)
	assert.InDelta(t, 75, p.NetProfit, 1e-9)
	assert.InDelta(t, 37.5, p.MarginPercent, 1e-9)
	assert.InDelta(t, 93.75, p.RoiPercent, 1e-9)

	zero := Compute(100, 0, 0, 0, 0)
	assert.True(t, math.IsInf(zero.RoiPercent, 1))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("flat")
	assert.True(t, ok)
	assert.Equal(t, ModeFlat, m)

	m, ok = ParseMode("bogus")
	assert.False(t, ok)
	assert.Equal(t, ModeVolumetric, m)
}
