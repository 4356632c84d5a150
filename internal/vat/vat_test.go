package vat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name     string
		incl     string
		rate     Rate
		wantExcl string
		wantVAT  string
	}{
		{"standard rate", "121.00", RateStandard, "100", "21"},
		{"reduced rate", "109.00", RateReduced, "100", "9"},
		{"zero amount", "0", RateStandard, "0", "0"},
		{"zero rate passthrough", "50.00", RateZero, "50.00", "0"},
		{"zero rate keeps amount", "123.45", RateZero, "123.45", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(dec(tt.incl), tt.rate)
			assert.True(t, got.Excl.Round(2).Equal(dec(tt.wantExcl).Round(2)),
				"excl: got %s want %s", got.Excl, tt.wantExcl)
			assert.True(t, got.VAT.Round(2).Equal(dec(tt.wantVAT).Round(2)),
				"vat: got %s want %s", got.VAT, tt.wantVAT)
		})
	}
}

// The exclusive and VAT parts must always recompose to the inclusive amount
// before any rounding is applied.
func TestDecomposeSumInvariant(t *testing.T) {
	amounts := []string{"0", "0.01", "1", "33.33", "121.00", "999999.99", "1234.5678"}
	rates := []Rate{RateReduced, RateStandard}
	tolerance := dec("0.000000001")

	for _, a := range amounts {
		for _, r := range rates {
			incl := dec(a)
			b := Decompose(incl, r)
			diff := b.Excl.Add(b.VAT).Sub(incl).Abs()
			require.True(t, diff.LessThanOrEqual(tolerance),
				"decompose(%s, %d): excl+vat differs from incl by %s", a, r, diff)
		}
	}
}

func TestExclVATReverseCharge(t *testing.T) {
	for _, r := range []Rate{RateZero, RateReduced, RateStandard} {
		x := dec("250.00")
		got := ExclVAT(x, r, TreatmentReverseCharge)
		assert.True(t, got.Equal(x), "rate %d: reverse charge must pass through", r)
	}
}

func TestExclVATDomestic(t *testing.T) {
	got := ExclVAT(dec("121.00"), RateStandard, TreatmentDomestic)
	assert.True(t, got.Round(2).Equal(dec("100.00")), "got %s", got)

	// Zero rate never divides.
	got = ExclVAT(dec("121.00"), RateZero, TreatmentDomestic)
	assert.True(t, got.Equal(dec("121.00")))
}

func TestSplit(t *testing.T) {
	// Domestic split agrees with Decompose.
	b := Split(dec("121.00"), RateStandard, TreatmentDomestic)
	assert.True(t, b.Excl.Round(2).Equal(dec("100.00")))
	assert.True(t, b.VAT.Round(2).Equal(dec("21.00")))

	// Reverse charge yields {amount, 0} even at the standard rate.
	b = Split(dec("121.00"), RateStandard, TreatmentReverseCharge)
	assert.True(t, b.Excl.Equal(dec("121.00")))
	assert.True(t, b.VAT.IsZero())
}

func TestRateValid(t *testing.T) {
	assert.True(t, RateZero.Valid())
	assert.True(t, RateReduced.Valid())
	assert.True(t, RateStandard.Valid())
	assert.False(t, Rate(19).Valid())
	assert.False(t, Rate(-1).Valid())
}

// Fixed inputs must produce bit-identical output across calls.
func TestDecomposeDeterministic(t *testing.T) {
	a := Decompose(dec("33.33"), RateStandard)
	b := Decompose(dec("33.33"), RateStandard)
	assert.Equal(t, a.Excl.String(), b.Excl.String())
	assert.Equal(t, a.VAT.String(), b.VAT.String())
}
