package models

// RateStep is one computed row of a test's time series: the rates derived
// from the meter increments between this entry and the previous one.
type RateStep struct {
	Time string `json:"time"`

	Qoil        float64 `json:"q_oil"`        // bbl/d
	Qwater      float64 `json:"q_water"`      // bbl/d
	Qgas        float64 `json:"q_gas"`        // Mscf/d
	TotalLiquid float64 `json:"total_liquid"` // bbl/d

	GOR1     float64 `json:"gor1"`      // produced gas-oil ratio, scf/STB
	GOR2     float64 `json:"gor2"`      // solution gas at separator, scf/STB
	TotalGOR float64 `json:"total_gor"` // scf/STB

	// Gas-lift fields, populated only for gas-lift wells.
	GasInjRate        float64 `json:"gas_inj_rate,omitempty"`        // Mscf/d
	FormationGas      float64 `json:"formation_gas,omitempty"`       // Mscf/d
	GOR1Formation     float64 `json:"gor1_formation,omitempty"`      // scf/STB
	TotalGORFormation float64 `json:"total_gor_formation,omitempty"` // scf/STB
}

// GasLiftResult carries the lift-gas accounting for a gas-lift well.
type GasLiftResult struct {
	InjectionRate     float64 `json:"injection_rate"`      // Mscf/d
	FormationGas      float64 `json:"formation_gas"`       // Mscf/d, total gas less injection
	GOR1Formation     float64 `json:"gor1_formation"`      // scf/STB
	TotalGORFormation float64 `json:"total_gor_formation"` // scf/STB
}

// RateResult is the final output of one calculation: the three phase rates
// plus the reading and PVT chain that produced them. It is immutable once
// assembled — recalculation builds a new RateResult.
type RateResult struct {
	Qoil   LiquidRate `json:"q_oil"`
	Qwater LiquidRate `json:"q_water"`
	Qgas   GasRate    `json:"q_gas"`

	GOR1     float64 `json:"gor1"`      // scf/STB
	GOR2     float64 `json:"gor2"`      // scf/STB
	TotalGOR float64 `json:"total_gor"` // scf/STB

	GasLift *GasLiftResult `json:"gas_lift,omitempty"`

	// Reading is a copy of the raw input and PVT the derived chain;
	// the result owns both so downstream consumers never share state.
	Reading TestReading `json:"reading"`
	PVT     PVTResult   `json:"pvt"`

	// Series holds per-step rates when the reading carried a metered
	// time series; external plotting consumes it directly.
	Series []RateStep `json:"series,omitempty"`

	Warnings []RangeWarning `json:"warnings,omitempty"`
}
