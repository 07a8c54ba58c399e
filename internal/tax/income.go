package tax

// FamilialShares computes the quotient familial for a household.
// Base is 2 for a married couple, 1 otherwise. The first child adds 0.5,
// the second another 0.5, and each child beyond the second adds a full
// share. A disability in the household adds 0.5. Negative child counts
// are clamped to zero.
func FamilialShares(married bool, children int, disability bool) float64 {
	shares := 1.0
	if married {
		shares = 2.0
	}
	if children < 0 {
		children = 0
	}
	switch {
	case children == 1:
		shares += 0.5
	case children >= 2:
		shares += 1.0 + float64(children-2)
	}
	if disability {
		shares += 0.5
	}
	return shares
}

// ProgressiveIncomeTax computes the IR owed on taxableIncome for a
// household with the given share count: income is split per share, the
// marginal scale is applied to the per-share amount, and the per-share tax
// is scaled back up. Zero or negative income yields 0.
func ProgressiveIncomeTax(taxableIncome, shares float64) (float64, error) {
	if shares <= 0 {
		return 0, ErrZeroShares
	}
	if taxableIncome <= 0 {
		return 0, nil
	}
	perShare := taxableIncome / shares
	return applyBrackets(perShare, incomeTaxBrackets2024) * shares, nil
}

// CEHR thresholds, per filing tier. The couple tier doubles the single
// filer thresholds.
const (
	cehrSingleLow  = 250000.0
	cehrSingleHigh = 500000.0
	cehrCoupleLow  = 500000.0
	cehrCoupleHigh = 1000000.0

	cehrMidRate  = 0.03
	cehrHighRate = 0.04
)

// CEHR computes the contribution exceptionnelle sur les hauts revenus on a
// reference income. The threshold pair depends on the share tier: exactly
// one share uses the single-filer pair, anything else up to and beyond two
// shares uses the couple pair. A household with e.g. 1.5 shares therefore
// lands in the couple tier; that mirror of the production rule is kept
// deliberately. The rate is chosen from the per-share reference income and
// applied to the full reference income.
func CEHR(referenceIncome, shares float64) (float64, error) {
	if shares <= 0 {
		return 0, ErrZeroShares
	}
	if referenceIncome <= 0 {
		return 0, nil
	}
	return referenceIncome * CEHRRate(referenceIncome, shares), nil
}

// CEHRRate returns the applicable CEHR rate (0, 3% or 4%).
// Callers must ensure shares > 0.
func CEHRRate(referenceIncome, shares float64) float64 {
	low, high := cehrCoupleLow, cehrCoupleHigh
	if shares == 1 {
		low, high = cehrSingleLow, cehrSingleHigh
	}
	perShare := referenceIncome / shares
	switch {
	case perShare <= low:
		return 0
	case perShare <= high:
		return cehrMidRate
	default:
		return cehrHighRate
	}
}
