// internal/services/calculator_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sellerops/margin-backend/internal/calculator"
	"github.com/sellerops/margin-backend/internal/models"
)

type CalculatorService struct {
	engine *calculator.Engine
	logger *logrus.Logger
}

// LogisticsQuote is the platform logistics fee for one parcel weight.
type LogisticsQuote struct {
	WeightGrams float64 `json:"weight_g"`
	WeightKg    float64 `json:"weight_kg"`
	Fee         float64 `json:"fee"`
	Currency    string  `json:"currency"`
	Version     string  `json:"schedule_version"`
}

func NewCalculatorService(engine *calculator.Engine, logger *logrus.Logger) *CalculatorService {
	return &CalculatorService{
		engine: engine,
		logger: logger,
	}
}

func (s *CalculatorService) Calculate(info models.ProductInfo) (*models.CalculationResult, error) {
	result, err := s.engine.Calculate(info)
	if err != nil {
		var missing *calculator.MissingFieldError
		if errors.As(err, &missing) {
			s.logger.WithField("fields", missing.Fields).Debug("calculation rejected")
		}
		return nil, fmt.Errorf("calculate: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"category":       result.Category,
		"category_known": result.CategoryKnown,
		"recommendation": result.Recommendation.Strategy,
		"profit_delta":   result.Recommendation.ProfitDelta,
	}).Info("calculation completed")

	return result, nil
}

func (s *CalculatorService) Categories() []calculator.Category {
	return s.engine.Schedule().Categories
}

func (s *CalculatorService) Schedule() calculator.Schedule {
	return s.engine.Schedule()
}

func (s *CalculatorService) Defaults() calculator.Defaults {
	return s.engine.Defaults()
}

// QuoteLogistics accepts the weight in grams as typed, with either decimal
// separator.
func (s *CalculatorService) QuoteLogistics(weightText string) (*LogisticsQuote, error) {
	grams, ok := calculator.ParseDecimal(weightText)
	if !ok || grams < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeight, weightText)
	}

	kg := calculator.Normalize(calculator.KindWeight, models.Number(grams))
	schedule := s.engine.Schedule()
	return &LogisticsQuote{
		WeightGrams: grams,
		WeightKg:    kg,
		Fee:         schedule.LogisticsFee(kg),
		Currency:    schedule.Currency,
		Version:     schedule.Version,
	}, nil
}
