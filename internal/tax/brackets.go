// Package tax implements the Lexanova tax computations: progressive income
// tax, familial shares, capital-gains abatements, donation duties,
// bare-ownership valuation and the CEHR surtax.
//
// Every function is a pure mapping from primitive inputs to numeric outputs,
// parameterized by the year-versioned bracket tables below. No I/O, no
// mutable state; safe to call concurrently. Out-of-range numeric input
// (negative income, negative years) yields a defined clamped result rather
// than an error. The one guarded failure is a zero share count, which would
// otherwise divide by zero.
package tax

import (
	"errors"
	"math"
)

// ErrZeroShares is returned by computations that divide income by the
// household share count when shares is zero or negative.
var ErrZeroShares = errors.New("tax: shares must be greater than zero")

// Unbounded marks the open upper bound of the top bracket.
var Unbounded = math.Inf(1)

// Bracket is one band of a progressive scale. Bands are contiguous,
// non-overlapping and sorted ascending; the last has Upper == Unbounded.
type Bracket struct {
	Lower float64
	Upper float64
	Rate  float64
}

// incomeTaxBrackets2024 is the per-share IR scale (barème 2024 on 2023 income).
var incomeTaxBrackets2024 = []Bracket{
	{0, 11294, 0},
	{11294, 28797, 0.11},
	{28797, 82341, 0.30},
	{82341, 177106, 0.41},
	{177106, Unbounded, 0.45},
}

// applyBrackets runs the marginal-rate algorithm shared by IR, donation
// duties and any other progressive scale: tax accrues on the portion of
// base inside each band, stopping once the base no longer reaches a band.
func applyBrackets(base float64, brackets []Bracket) float64 {
	if base <= 0 {
		return 0
	}
	var total float64
	for _, b := range brackets {
		if base <= b.Lower {
			break
		}
		taxable := math.Min(base, b.Upper) - b.Lower
		total += taxable * b.Rate
	}
	return total
}
