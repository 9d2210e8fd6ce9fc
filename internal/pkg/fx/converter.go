// Package fx converts fiat minor-unit amounts into settlement asset minor units.
//
// Fiat amounts never pass through floating point. The rate is scaled to an
// integer with RateScale precision and the division rounds up, so the
// platform never collects less than the fiat amount owed.
package fx

import (
	"errors"
	"math"
	"math/big"

	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/shopspring/decimal"
)

const (
	// RateScale is the fixed-point precision of a scaled rate (6 decimals)
	RateScale = 1_000_000
	// ScaleDiff bridges 2-decimal fiat minor units to 6-decimal stablecoin minor units
	ScaleDiff = 10_000

	asOfLayout = "2006-01-02"
)

// ErrInvalidRate is returned for zero, negative or non-finite rates
var ErrInvalidRate = errors.New("fx: invalid exchange rate")

var rateScale = big.NewInt(RateScale)

// Converter converts between one fiat precision and one asset precision
type Converter struct {
	// numerator and denominator scale factors; one of them is always 1
	up   *big.Int
	down *big.Int
}

// NewConverter builds a converter for fiat and asset minor-unit precisions
func NewConverter(fiatDecimals, assetDecimals int) *Converter {
	up, down := ScaleDiffFor(fiatDecimals, assetDecimals)
	return &Converter{up: up, down: down}
}

// ScaleDiffFor returns the factors that move an amount from fiatDecimals to
// assetDecimals: multiply by up, divide by down
func ScaleDiffFor(fiatDecimals, assetDecimals int) (up, down *big.Int) {
	diff := assetDecimals - fiatDecimals
	if diff >= 0 {
		return pow10(diff), big.NewInt(1)
	}
	return big.NewInt(1), pow10(-diff)
}

var defaultConverter = NewConverter(2, 6)

// Convert uses the default 2 to 6 decimal converter
func Convert(amountMinor *big.Int, rate models.FXRate) (models.Conversion, error) {
	return defaultConverter.Convert(amountMinor, rate)
}

// Convert returns ceil(amount × scaledRate × up / (RateScale × down)).
// A nil or non-positive amount converts to zero.
func (c *Converter) Convert(amountMinor *big.Int, rate models.FXRate) (models.Conversion, error) {
	scaled, err := ScaleRate(rate.Rate)
	if err != nil {
		return models.Conversion{}, err
	}

	conversion := models.Conversion{
		AmountMinor: new(big.Int),
		Rate:        rate.Rate,
	}
	if !rate.AsOf.IsZero() {
		conversion.AsOf = rate.AsOf.UTC().Format(asOfLayout)
	}

	if amountMinor == nil || amountMinor.Sign() <= 0 {
		return conversion, nil
	}

	numerator := new(big.Int).Mul(amountMinor, scaled)
	numerator.Mul(numerator, c.up)
	denominator := new(big.Int).Mul(rateScale, c.down)

	conversion.AmountMinor = ceilDiv(numerator, denominator)
	return conversion, nil
}

// ScaleRate returns round(rate × RateScale) as an integer
func ScaleRate(rate float64) (*big.Int, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return nil, ErrInvalidRate
	}

	scaled := decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(RateScale)).Round(0).BigInt()
	if scaled.Sign() <= 0 {
		return nil, ErrInvalidRate
	}
	return scaled, nil
}

// ceilDiv assumes a non-negative numerator and a positive denominator
func ceilDiv(numerator, denominator *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(numerator, denominator, new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
