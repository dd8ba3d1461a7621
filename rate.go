package bitcore

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// fiatPrecision is the number of decimal digits fiat amounts are
// rounded to.
const fiatPrecision = 2

// ErrInvalidRate is returned when an exchange rate is not positive or is
// not finite.
var ErrInvalidRate = errors.New("invalid exchange rate")

// Rate type represents a fiat exchange rate, expressed in fiat currency
// units per one whole coin.
// A Rate only ever appears as an argument: a constructed Unit stores
// atoms, never fiat.
//
// Rate is one of the two [Term] implementations accepted by [New] and
// [Unit.To]; the other is [Code].
type Rate float64

// term marks Rate as a [Term].
func (Rate) term() {}

// IsValid returns true if the rate is positive and finite.
func (r Rate) IsValid() bool {
	return r.validate() == nil
}

// validate rejects rates that cannot be exchanged at.
func (r Rate) validate() error {
	if math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) || r <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, float64(r))
	}
	return nil
}

// decimal returns the rate as a decimal.
// Only called on validated rates; NewFromFloat rejects non-finite input.
func (r Rate) decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(r))
}

// FromFiat returns the Unit worth the given fiat amount at the given
// exchange rate. The fiat amount is divided by the rate and ingested as
// whole coins.
// FromFiat returns [ErrInvalidRate] if the rate is not positive.
func FromFiat(fiat float64, rate Rate) (Unit, error) {
	return New(fiat, rate)
}

// AtRate returns the fiat value of the Unit at the given exchange rate,
// rounded to two decimal digits. It is equivalent to calling [Unit.To]
// with a [Rate].
func (u Unit) AtRate(rate Rate) (float64, error) {
	return u.To(rate)
}

// fiat derives the fiat value of the Unit at the given rate: the base-unit
// projection multiplied by the rate, rounded to the fiat display
// precision.
func (u Unit) fiat(r Rate) float64 {
	base := u.project(denominations[HC])
	return base.Mul(r.decimal()).Round(fiatPrecision).InexactFloat64()
}
