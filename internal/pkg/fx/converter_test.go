package fx

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateOf(r float64) models.FXRate {
	return models.FXRate{
		Base:  "GBP",
		Quote: "USD",
		Rate:  r,
		AsOf:  time.Date(2024, 5, 17, 15, 0, 0, 0, time.UTC),
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		amount *big.Int
		rate   float64
		want   string
	}{
		{name: "375 pence at 1.27", amount: big.NewInt(375), rate: 1.27, want: "4762500"},
		{name: "zero amount", amount: big.NewInt(0), rate: 1.27, want: "0"},
		{name: "nil amount", amount: nil, rate: 1.27, want: "0"},
		{name: "negative amount", amount: big.NewInt(-500), rate: 1.27, want: "0"},
		{name: "one penny at parity", amount: big.NewInt(1), rate: 1, want: "10000"},
		{name: "one penny rounds up", amount: big.NewInt(1), rate: 1.2345678, want: "12346"},
		{name: "rate rounded to six decimals", amount: big.NewInt(100), rate: 0.0000004, want: "0"},
		{name: "large amount", amount: new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil), rate: 1.5, want: "1500000000000000000000000"},
		{name: "1000.00 at 0.79", amount: big.NewInt(100000), rate: 0.79, want: "790000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.amount, rateOf(tt.rate))
			if tt.rate < 0.0000005 {
				assert.ErrorIs(t, err, ErrInvalidRate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AmountMinor.String())
			assert.Equal(t, tt.rate, got.Rate)
			assert.Equal(t, "2024-05-17", got.AsOf)
		})
	}
}

func TestConvert_CeilingNeverUnderCollects(t *testing.T) {
	rates := []float64{0.5, 0.79, 1, 1.1, 1.27, 1.333333, 3.14159}

	for _, r := range rates {
		scaled, err := ScaleRate(r)
		require.NoError(t, err)

		for a := int64(0); a <= 2_000; a += 7 {
			amount := big.NewInt(a)
			got, err := Convert(amount, rateOf(r))
			require.NoError(t, err)

			// result × RateScale ≥ amount × scaledRate × ScaleDiff
			lhs := new(big.Int).Mul(got.AmountMinor, big.NewInt(RateScale))
			rhs := new(big.Int).Mul(amount, scaled)
			rhs.Mul(rhs, big.NewInt(ScaleDiff))
			assert.True(t, lhs.Cmp(rhs) >= 0, "under-collected for amount=%d rate=%v", a, r)

			// and never over by a full minor unit
			lhs.Sub(lhs, big.NewInt(RateScale))
			assert.True(t, lhs.Cmp(rhs) < 0, "over-collected for amount=%d rate=%v", a, r)
		}
	}
}

func TestConvert_InvalidRate(t *testing.T) {
	for _, r := range []float64{0, -1.2, math.NaN(), math.Inf(1)} {
		_, err := Convert(big.NewInt(100), rateOf(r))
		assert.ErrorIs(t, err, ErrInvalidRate)
	}
}

func TestConverter_OtherPrecisions(t *testing.T) {
	// 2-decimal fiat to an 18-decimal token
	c18 := NewConverter(2, 18)
	got, err := c18.Convert(big.NewInt(375), rateOf(1.27))
	require.NoError(t, err)
	assert.Equal(t, "4762500000000000000", got.AmountMinor.String())

	// 3-decimal fiat to a 2-decimal asset divides and rounds up
	c2 := NewConverter(3, 2)
	got, err = c2.Convert(big.NewInt(1001), rateOf(1))
	require.NoError(t, err)
	assert.Equal(t, "101", got.AmountMinor.String())
}

func TestScaleDiffFor(t *testing.T) {
	up, down := ScaleDiffFor(2, 6)
	assert.Equal(t, int64(ScaleDiff), up.Int64())
	assert.Equal(t, int64(1), down.Int64())

	up, down = ScaleDiffFor(6, 2)
	assert.Equal(t, int64(1), up.Int64())
	assert.Equal(t, int64(10_000), down.Int64())
}
