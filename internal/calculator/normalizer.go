// internal/calculator/normalizer.go
package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/sellerops/margin-backend/internal/models"
)

// FieldKind tells the normalizer how a form field is interpreted.
type FieldKind int

const (
	KindText FieldKind = iota
	KindMonetary
	KindWeight // grams in, kilograms out
	KindLength // centimeters
)

func (k FieldKind) String() string {
	switch k {
	case KindMonetary:
		return "monetary"
	case KindWeight:
		return "weight"
	case KindLength:
		return "length"
	default:
		return "text"
	}
}

const (
	gramsPerKilogram          = 1000.0
	cubicCentimetersPerMeter3 = 1_000_000.0
)

// ParseDecimal parses locale formatted text. The first comma is read as the
// decimal separator. Blank, malformed and non-finite input is rejected.
func ParseDecimal(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Normalize converts a form value to the canonical unit of its kind. Missing
// and unparseable values are treated as not provided and yield 0.
func Normalize(kind FieldKind, in models.NumericInput) float64 {
	if kind == KindText || in.IsBlank() {
		return 0
	}
	v, ok := ParseDecimal(in.Raw)
	if !ok {
		return 0
	}
	if kind == KindWeight {
		return v / gramsPerKilogram
	}
	return v
}

// Retain applies an edit to a previously accepted value: blank text clears
// the field, malformed text is ignored and prev is kept. prev and the result
// are in the raw form unit (grams for weights).
func Retain(prev float64, raw string) float64 {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	if v, ok := ParseDecimal(raw); ok {
		return v
	}
	return prev
}

// override returns the parsed value when the user supplied a usable one.
func override(in models.NumericInput) (float64, bool) {
	if in.IsBlank() {
		return 0, false
	}
	return ParseDecimal(in.Raw)
}

// Dimensions normalizes the physical attributes of a product.
func Dimensions(info models.ProductInfo) models.ProductDimensions {
	d := models.ProductDimensions{
		LengthCm: Normalize(KindLength, info.Length),
		WidthCm:  Normalize(KindLength, info.Width),
		HeightCm: Normalize(KindLength, info.Height),
		WeightKg: Normalize(KindWeight, info.Weight),
	}
	d.VolumeCubicMeters = d.LengthCm * d.WidthCm * d.HeightCm / cubicCentimetersPerMeter3
	return d
}
