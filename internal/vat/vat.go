// Package vat implements the monetary VAT decomposition used everywhere
// amounts are stored or displayed. All arithmetic is done on decimals at
// full precision; rounding to two decimals happens only at the edges
// (serialization, persistence), never inside these functions.
package vat

import "github.com/shopspring/decimal"

// Rate is a VAT percentage under Dutch tax law.
type Rate int

const (
	RateZero     Rate = 0
	RateReduced  Rate = 9
	RateStandard Rate = 21
)

// Valid reports whether r is one of the recognized Dutch rates.
func (r Rate) Valid() bool {
	switch r {
	case RateZero, RateReduced, RateStandard:
		return true
	}
	return false
}

// Treatment describes how VAT applies to a stored amount.
type Treatment string

const (
	// TreatmentDomestic means the stored amount is VAT-inclusive and must
	// be decomposed.
	TreatmentDomestic Treatment = "domestic"
	// TreatmentReverseCharge means the recipient accounts for VAT; the
	// stored amount is already net and the VAT amount is zero.
	TreatmentReverseCharge Treatment = "foreign_service_reverse_charge"
)

// Breakdown is the result of splitting a VAT-inclusive amount.
type Breakdown struct {
	Excl decimal.Decimal
	VAT  decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// divisor returns 1 + rate/100 at full precision.
func divisor(rate Rate) decimal.Decimal {
	return decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(rate)).Div(hundred))
}

// ExclVAT returns the VAT-exclusive portion of incl. Reverse-charge amounts
// are already net, so they pass through unchanged regardless of the rate,
// as do zero-rated amounts.
func ExclVAT(incl decimal.Decimal, rate Rate, treatment Treatment) decimal.Decimal {
	if treatment == TreatmentReverseCharge || rate == RateZero {
		return incl
	}
	return incl.Div(divisor(rate))
}

// Decompose splits a VAT-inclusive amount into its exclusive portion and
// the VAT portion. It is treatment-unaware: callers needing reverse-charge
// semantics must use Split instead, which short-circuits before dividing.
func Decompose(incl decimal.Decimal, rate Rate) Breakdown {
	if rate == RateZero {
		return Breakdown{Excl: incl, VAT: decimal.Zero}
	}
	excl := incl.Div(divisor(rate))
	return Breakdown{Excl: excl, VAT: incl.Sub(excl)}
}

// Split is the single entry point combining rate and treatment. Under
// reverse charge the amount is net already and VAT is zero for any rate;
// otherwise it decomposes the inclusive amount.
func Split(amount decimal.Decimal, rate Rate, treatment Treatment) Breakdown {
	if treatment == TreatmentReverseCharge {
		return Breakdown{Excl: amount, VAT: decimal.Zero}
	}
	return Decompose(amount, rate)
}
