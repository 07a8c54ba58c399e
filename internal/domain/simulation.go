package domain

// ============================================================
// Tax simulator payloads (front-end simulators)
// ============================================================

// IncomeTaxRequest feeds the progressive income tax simulator.
type IncomeTaxRequest struct {
	TaxableIncome float64 `json:"taxable_income"`
	Married       bool    `json:"married"`
	Children      int     `json:"children"`
	Disability    bool    `json:"disability"`
}

// IncomeTaxResult is the simulator output.
type IncomeTaxResult struct {
	Shares        float64 `json:"shares"`
	Tax           float64 `json:"tax"`
	EffectiveRate float64 `json:"effective_rate"`
}

// DonationRequest feeds the donation duties simulator.
type DonationRequest struct {
	Amount                float64 `json:"amount"`
	Relationship          string  `json:"relationship"`
	PreviousAbatementUsed float64 `json:"previous_abatement_used,omitempty"`
}

// DonationResult is the simulator output.
type DonationResult struct {
	TaxableAmount float64 `json:"taxable_amount"`
	Tax           float64 `json:"tax"`
	AbatementUsed float64 `json:"abatement_used"`
}

// RealEstateGainsRequest feeds the real-estate capital gains simulator.
type RealEstateGainsRequest struct {
	DetentionYears int `json:"detention_years"`
}

// RealEstateGainsResult carries the two abatement percentages.
type RealEstateGainsResult struct {
	IRAbatement     float64 `json:"ir_abatement"`
	SocialAbatement float64 `json:"social_abatement"`
}

// SecuritiesGainsRequest feeds the securities capital gains simulator.
type SecuritiesGainsRequest struct {
	DetentionYears int `json:"detention_years"`
}

// SecuritiesGainsResult carries the abatement percentage.
type SecuritiesGainsResult struct {
	Abatement float64 `json:"abatement"`
}

// BareOwnershipRequest feeds the split-ownership valuation simulator.
type BareOwnershipRequest struct {
	FullValue       float64 `json:"full_value"`
	UsufructuaryAge int     `json:"usufructuary_age"`
}

// BareOwnershipResult apportions value between usufruct and bare ownership.
type BareOwnershipResult struct {
	UsufructRate       float64 `json:"usufruct_rate"`
	UsufructValue      float64 `json:"usufruct_value"`
	BareOwnershipValue float64 `json:"bare_ownership_value"`
}

// CEHRRequest feeds the high-income surtax simulator.
type CEHRRequest struct {
	ReferenceIncome float64 `json:"reference_income"`
	Shares          float64 `json:"shares"`
}

// CEHRResult is the simulator output.
type CEHRResult struct {
	Rate float64 `json:"rate"`
	Tax  float64 `json:"tax"`
}
