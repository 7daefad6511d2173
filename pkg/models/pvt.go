package models

// Method names a published correlation. The set is closed: every method
// the engine knows is listed here, and CorrelationSelection only accepts
// members of this set for the property families that offer a choice.
type Method string

const (
	// MethodAuto selects the solution-GOR correlation by API gravity:
	// above 35° Vasquez-Beggs, 25–35° Standing, below 25° Katz.
	MethodAuto         Method = "AUTO"
	MethodStanding     Method = "STANDING"
	MethodVasquezBeggs Method = "VASQUEZ_BEGGS"
	MethodKatz         Method = "KATZ"

	// Fixed-family methods, present so every PVT value carries the name
	// of the correlation that produced it.
	MethodStandingKatz  Method = "STANDING_KATZ"  // z-factor (Papay fit, Wichert-Aziz sour correction)
	MethodBeggsRobinson Method = "BEGGS_ROBINSON" // oil viscosity
	MethodLeeGonzalez   Method = "LEE_GONZALEZ"   // gas viscosity
	MethodMcCain        Method = "MCCAIN"         // water viscosity
	MethodASTM1250      Method = "ASTM_1250"      // API gravity / volume temperature correction
	MethodEmpirical     Method = "EMPIRICAL"      // field-calibrated shrinkage adjustment
	MethodMeasured      Method = "MEASURED"       // lab-measured input, no correlation
)

// Property identifies a derived PVT property.
type Property string

const (
	PropertyOilAPI60F      Property = "oil_api_60f"
	PropertyBubblePoint    Property = "bubble_point"
	PropertySolutionGOR    Property = "solution_gor"
	PropertySeparatorGOR   Property = "separator_gor"
	PropertyBo             Property = "bo"
	PropertyZFactor        Property = "z_factor"
	PropertyBg             Property = "bg"
	PropertyOilViscosity   Property = "oil_viscosity"
	PropertyGasViscosity   Property = "gas_viscosity"
	PropertyWaterViscosity Property = "water_viscosity"
	PropertyVCF            Property = "vcf"
	PropertyShrinkage      Property = "shrinkage"
)

// CorrelationSelection chooses one correlation method per PVT property.
// Zero-value fields resolve to the engine's configured defaults before
// evaluation, so exactly one method is active per property at run time.
type CorrelationSelection struct {
	SolutionGOR Method `json:"solution_gor,omitempty"` // AUTO, STANDING, VASQUEZ_BEGGS, KATZ
	BubblePoint Method `json:"bubble_point,omitempty"` // STANDING, VASQUEZ_BEGGS
	Bo          Method `json:"bo,omitempty"`           // STANDING, VASQUEZ_BEGGS
}

// PVTValue is one derived property: the computed value, the method that
// produced it, and whether the inputs fell inside the method's published
// applicability range. Out-of-range values are usable — engineers
// extrapolate correlations deliberately — but carry InRange=false.
type PVTValue struct {
	Value   float64 `json:"value"`
	Method  Method  `json:"method"`
	InRange bool    `json:"in_range"`
}

// Computed reports whether the value was produced by the PVT chain.
func (v PVTValue) Computed() bool { return v.Method != "" }

// RangeWarning records an out-of-applicability-range evaluation. Warnings
// are data attached to results, never errors.
type RangeWarning struct {
	Property Property `json:"property"`
	Method   Method   `json:"method"`
	Reason   string   `json:"reason"`
}

// PVTResult holds the intermediate properties derived from one validated
// reading under one correlation selection. Every field is tagged with the
// method used so reports can disclose the correlation chain.
type PVTResult struct {
	OilAPI60F      PVTValue `json:"oil_api_60f"`     // °API corrected to 60 °F
	BubblePoint    PVTValue `json:"bubble_point"`    // psia
	SolutionGOR    PVTValue `json:"solution_gor"`    // Rs at reservoir P/T, scf/STB
	SeparatorGOR   PVTValue `json:"separator_gor"`   // solution gas at separator conditions, scf/STB
	Bo             PVTValue `json:"bo"`              // rb/STB
	ZFactor        PVTValue `json:"z_factor"`        // at separator conditions
	Bg             PVTValue `json:"bg"`              // cf/scf
	OilViscosity   PVTValue `json:"oil_viscosity"`   // cp, live oil
	GasViscosity   PVTValue `json:"gas_viscosity"`   // cp
	WaterViscosity PVTValue `json:"water_viscosity"` // cp
	VCF            PVTValue `json:"vcf"`             // separator volume correction factor
	Shrinkage      PVTValue `json:"shrinkage"`       // separator-to-stock-tank shrinkage

	Warnings []RangeWarning `json:"warnings,omitempty"`
}
