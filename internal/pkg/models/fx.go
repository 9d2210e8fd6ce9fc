package models

import (
	"math/big"
	"time"
)

// FXRate is a point-in-time exchange rate from Base to Quote
type FXRate struct {
	Base  string    `json:"base"`
	Quote string    `json:"quote"`
	Rate  float64   `json:"rate"`
	AsOf  time.Time `json:"as_of"`
}

// Conversion records a fiat to settlement asset conversion and the rate used
type Conversion struct {
	AmountMinor *big.Int `json:"amountMinor"`
	Rate        float64  `json:"rate"`
	AsOf        string   `json:"asOf"`
}
