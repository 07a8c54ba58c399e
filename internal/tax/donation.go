package tax

import (
	"fmt"
	"strings"
)

// Relationship identifies the donor/donee relationship, which fixes both
// the allowance and the duty scale.
type Relationship string

const (
	Child      Relationship = "child"
	Spouse     Relationship = "spouse"
	Grandchild Relationship = "grandchild"
	Nephew     Relationship = "nephew"
	Other      Relationship = "other"
)

// ParseRelationship normalizes a user-supplied relationship string.
func ParseRelationship(s string) (Relationship, error) {
	switch Relationship(strings.ToLower(strings.TrimSpace(s))) {
	case Child:
		return Child, nil
	case Spouse:
		return Spouse, nil
	case Grandchild:
		return Grandchild, nil
	case Nephew:
		return Nephew, nil
	case Other:
		return Other, nil
	}
	return "", fmt.Errorf("tax: unknown relationship %q", s)
}

// directLineBrackets is the donation duty scale for direct-line donees
// (children and grandchildren), applied after the allowance.
var directLineBrackets = []Bracket{
	{0, 8072, 0.05},
	{8072, 12109, 0.10},
	{12109, 15932, 0.15},
	{15932, 552324, 0.20},
	{552324, 902838, 0.30},
	{902838, 1805677, 0.40},
	{1805677, Unbounded, 0.45},
}

// donationScale binds a relationship to its allowance and duty brackets.
// Immutable reference data. Donations between spouses are fully exempt,
// hence the single zero-rate bracket.
var donationScales = map[Relationship]struct {
	Allowance float64
	Brackets  []Bracket
}{
	Child:      {100000, directLineBrackets},
	Grandchild: {31865, directLineBrackets},
	Spouse:     {80724, []Bracket{{0, Unbounded, 0}}},
	Nephew:     {7967, []Bracket{{0, Unbounded, 0.55}}},
	Other:      {1594, []Bracket{{0, Unbounded, 0.60}}},
}

// DonationResult is the outcome of a donation duty computation.
type DonationResult struct {
	TaxableAmount float64
	Tax           float64
	AbatementUsed float64
}

// DonationDuties computes the duties owed on a donation of amount to a
// donee in the given relationship. previousAbatementUsed is the portion of
// the 15-year rolling allowance already consumed by earlier donations; the
// remainder shelters this donation before the progressive scale applies.
// Negative amounts yield a zero result.
func DonationDuties(amount float64, relationship Relationship, previousAbatementUsed float64) DonationResult {
	if amount <= 0 {
		return DonationResult{}
	}

	scale, ok := donationScales[relationship]
	if !ok {
		scale = donationScales[Other]
	}

	remaining := scale.Allowance - previousAbatementUsed
	if remaining < 0 {
		remaining = 0
	}
	used := amount
	if remaining < used {
		used = remaining
	}

	taxable := amount - used
	if taxable < 0 {
		taxable = 0
	}

	return DonationResult{
		TaxableAmount: taxable,
		Tax:           applyBrackets(taxable, scale.Brackets),
		AbatementUsed: used,
	}
}
