// internal/utils/format.go
package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sellerops/margin-backend/internal/i18n"
)

// Placeholder shown for infinite or undefined ratios.
const NotAvailable = "—"

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "US$",
	"EUR": "€",
}

// Amount is a value as the results view shows it: the full precision number
// (null when not finite) and its rounded display text.
type Amount struct {
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

// FormatMoney rounds to two decimals for display only.
func FormatMoney(v float64, currency, lang string) Amount {
	if !isFinite(v) {
		return Amount{Display: NotAvailable}
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	text := fixed2(v, lang)
	if symbol != "" {
		text = symbol + " " + text
	}
	return Amount{Value: &v, Display: text}
}

func FormatPercent(v float64, lang string) Amount {
	if !isFinite(v) {
		return Amount{Display: NotAvailable}
	}
	return Amount{Value: &v, Display: fixed2(v, lang) + "%"}
}

// FormatRate shows a 0-1 fraction as a percentage.
func FormatRate(rate float64, lang string) Amount {
	a := FormatPercent(rate*100, lang)
	if a.Value != nil {
		a.Value = &rate
	}
	return a
}

func fixed2(v float64, lang string) string {
	s := decimal.NewFromFloat(v).Round(2).StringFixed(2)
	if s == "-0.00" {
		s = "0.00"
	}
	if lang == i18n.LangPortuguese {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
