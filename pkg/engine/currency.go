package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
)

// Currency is an ISO 4217 code known to the converter.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
	CHF Currency = "CHF"
	CNY Currency = "CNY"
)

// Currencies lists the supported codes in a stable order.
var Currencies = []Currency{USD, EUR, GBP, JPY, CAD, AUD, CHF, CNY}

// rates are units per USD. They are fixed mock values, not market data.
var rates = map[Currency]float64{
	USD: 1.0,
	EUR: 0.85,
	GBP: 0.73,
	JPY: 110.0,
	CAD: 1.25,
	AUD: 1.35,
	CHF: 0.92,
	CNY: 6.45,
}

// ParseCurrency accepts a currency code in any case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := rates[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}

// Rate returns the units of c per USD.
func Rate(c Currency) (float64, bool) {
	r, ok := rates[c]
	return r, ok
}

// Convert converts amount from one currency to another through USD and
// rounds the result to cents.
func Convert(amount float64, from, to Currency) (float64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	fromRate, ok := rates[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, from)
	}
	toRate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, to)
	}

	if from == to {
		return round2(amount), nil
	}
	return round2(amount / fromRate * toRate), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
