package tax

// RealEstateAbatements returns the IR and social-levy abatement
// percentages earned on a real-estate capital gain after detentionYears of
// holding. Both schedules are piecewise linear and saturate at 100%:
//
//	IR:     0% through year 5, +6%/year through year 21, 100% from year 22.
//	Social: 0% through year 5, +1.65%/year through year 21,
//	        26.4% + 9%/year from year 22, 100% from year 30.
//
// Boundary years are exact: year 22 yields 100 IR and 26.4 social.
func RealEstateAbatements(detentionYears int) (irAbatement, socialAbatement float64) {
	if detentionYears <= 5 {
		return 0, 0
	}

	switch {
	case detentionYears >= 22:
		irAbatement = 100
	default:
		irAbatement = float64(detentionYears-5) * 6
	}

	switch {
	case detentionYears >= 30:
		socialAbatement = 100
	case detentionYears >= 22:
		socialAbatement = 26.4 + float64(detentionYears-22)*9
	default:
		socialAbatement = float64(detentionYears-5) * 1.65
	}

	return clampPercent(irAbatement), clampPercent(socialAbatement)
}

// SecuritiesAbatement returns the abatement percentage on a securities
// capital gain: nothing before two full years, 12.5% per year of holding
// up to the 100% cap reached at eight years. The scale is continuous at
// the cap (8 × 12.5 = 100).
func SecuritiesAbatement(detentionYears int) float64 {
	switch {
	case detentionYears < 2:
		return 0
	case detentionYears >= 8:
		return 100
	default:
		return clampPercent(float64(detentionYears) * 12.5)
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
