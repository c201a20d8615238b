package conversion

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// RateSource is satisfied by *CurrencyConverter.
type RateSource interface {
	Rate(ctx context.Context, target string) float64
}

// Service bundles unit and currency conversion so callers depend on one value.
type Service struct {
	units    UnitConverter
	currency RateSource
}

func NewService(currency RateSource) *Service {
	if currency == nil {
		currency = NewStaticCurrencyConverter()
	}
	return &Service{currency: currency}
}

// ConvertCurrency converts a BaseCurrency amount into target. No rounding happens here.
func (s *Service) ConvertCurrency(ctx context.Context, amount decimal.Decimal, target string) decimal.Decimal {
	rate := s.currency.Rate(ctx, target)
	return amount.Mul(decimal.NewFromFloat(rate))
}

func (s *Service) ConvertUnit(unit string, quantity float64) float64 {
	return s.units.Convert(unit, quantity)
}

// Units exposes the underlying converter for class and factor lookups.
func (s *Service) Units() UnitConverter { return s.units }

// FormatAmount renders an amount the way the list views show it, e.g. "12.34 €".
func FormatAmount(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}
