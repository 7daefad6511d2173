// Package models defines the core data structures shared across the
// well-test calculation engine: raw and validated readings, correlation
// selections, PVT results, rate results, and the error taxonomy.
package models

import "github.com/ramware/welltest/pkg/units"

// SeparationType identifies how the test separator meters liquids.
type SeparationType string

const (
	SeparationTwoPhase   SeparationType = "TWO_PHASE"   // single liquid meter + BSW
	SeparationThreePhase SeparationType = "THREE_PHASE" // separate oil and water meters
)

// ProductionType identifies the lift mechanism of the tested well.
type ProductionType string

const (
	ProductionNatural ProductionType = "NATURAL"
	ProductionGasLift ProductionType = "GAS_LIFT"
)

// RateBasis identifies the basis of the measured gross liquid rate.
type RateBasis string

const (
	// BasisSeparator means the gross rate was metered at separator
	// conditions; shrinkage and VCF bring it to stock-tank basis.
	BasisSeparator RateBasis = "SEPARATOR"
	// BasisReservoir means the gross rate is a reservoir-condition
	// volume; Bo brings it to stock-tank basis.
	BasisReservoir RateBasis = "RESERVOIR"
)

// Pressure is a pressure value tagged with its unit.
// A zero Unit marks the field as not provided.
type Pressure struct {
	Value float64            `json:"value"`
	Unit  units.PressureUnit `json:"unit"`
}

// Set reports whether the field was provided.
func (p Pressure) Set() bool { return p.Unit != "" }

// Temperature is a temperature value tagged with its unit.
type Temperature struct {
	Value float64               `json:"value"`
	Unit  units.TemperatureUnit `json:"unit"`
}

// Set reports whether the field was provided.
func (t Temperature) Set() bool { return t.Unit != "" }

// LiquidRate is a liquid volumetric rate tagged with its unit.
type LiquidRate struct {
	Value float64              `json:"value"`
	Unit  units.LiquidRateUnit `json:"unit"`
}

// Set reports whether the field was provided.
func (r LiquidRate) Set() bool { return r.Unit != "" }

// GasRate is a gas volumetric rate tagged with its unit.
type GasRate struct {
	Value float64           `json:"value"`
	Unit  units.GasRateUnit `json:"unit"`
}

// Set reports whether the field was provided.
func (r GasRate) Set() bool { return r.Unit != "" }

// TestReading is one well test's raw inputs as entered by the operator or
// loaded from project data. Dimensionless required fields are pointers so
// an absent field is distinguishable from a zero value.
type TestReading struct {
	FieldName string `json:"field_name,omitempty"`
	WellName  string `json:"well_name,omitempty"`
	TestDate  string `json:"test_date,omitempty"` // e.g., "2026-03-14"

	Separation SeparationType `json:"separation,omitempty"` // default TWO_PHASE
	Production ProductionType `json:"production,omitempty"` // default NATURAL
	Basis      RateBasis      `json:"basis,omitempty"`      // default SEPARATOR

	ReservoirPressure Pressure    `json:"reservoir_pressure"`
	BottomholeTemp    Temperature `json:"bottomhole_temp"`
	WellheadTemp      Temperature `json:"wellhead_temp"`
	SeparatorPressure Pressure    `json:"separator_pressure"`
	SeparatorTemp     Temperature `json:"separator_temp"`

	OilAPI      *float64    `json:"oil_api"`            // °API, measured at OilAPITemp
	OilAPITemp  Temperature `json:"oil_api_temp"`       // temperature of the API measurement
	GasSG       *float64    `json:"gas_sg"`             // specific gravity (air = 1)
	WaterCut    *float64    `json:"water_cut"`          // fraction 0..1
	H2S         float64     `json:"h2s,omitempty"`      // ppm
	CO2         float64     `json:"co2,omitempty"`      // ppm
	ChokeSize   float64     `json:"choke_size,omitempty"` // 1/64 in, descriptive only
	MeterFactor float64     `json:"meter_factor,omitempty"` // default 1.0

	GrossLiquidRate LiquidRate `json:"gross_liquid_rate"`

	// Orifice gas metering. Zero diameters mean no orifice meter was run
	// and the gas rate falls back to the solution-gas path.
	OrificeDiameter float64 `json:"orifice_diameter,omitempty"` // in
	LineBore        float64 `json:"line_bore,omitempty"`        // in
	GasDP           float64 `json:"gas_dp,omitempty"`           // inH2O differential

	// Gas lift injection rate, used only when Production is GAS_LIFT.
	GasLiftInjRate GasRate `json:"gas_lift_inj_rate,omitempty"`

	// Measured bubble-point pressure from a lab study, if available.
	// When set it overrides the correlation value in the PVT chain.
	MeasuredBubblePoint Pressure `json:"measured_bubble_point,omitempty"`

	// Steps holds the metered time series of a multi-hour test.
	// When present, rates are computed per step and averaged.
	Steps []StepEntry `json:"steps,omitempty"`
}

// StepEntry is one timed row of a test's data-entry table: cumulative meter
// readings plus the separator conditions observed at that time.
type StepEntry struct {
	Time string `json:"time"` // "HH:MM"

	// Three-phase metering: cumulative oil and water meter readings.
	MeterOil   float64 `json:"meter_oil,omitempty"`   // bbl, cumulative
	MeterWater float64 `json:"meter_water,omitempty"` // bbl, cumulative
	WIOPercent float64 `json:"wio_percent,omitempty"` // water-in-oil, %

	// Two-phase metering: cumulative liquid meter reading.
	MeterLiquid float64 `json:"meter_liquid,omitempty"` // bbl, cumulative
	BSWPercent  float64 `json:"bsw_percent,omitempty"`  // basic sediment & water, %

	SeparatorPressure Pressure    `json:"separator_pressure"`
	OilTemp           Temperature `json:"oil_temp"`
	GasTemp           Temperature `json:"gas_temp"`
	GasDP             float64     `json:"gas_dp"` // inH2O

	GasInjRate GasRate `json:"gas_inj_rate,omitempty"` // gas-lift injection
}

// ValidatedReading is a TestReading normalized to internal field units:
// psia, °F, fractions, bbl/d, Mscf/d. Only the validator constructs it.
type ValidatedReading struct {
	Source TestReading // the raw reading that produced this record

	Separation SeparationType
	Production ProductionType
	Basis      RateBasis

	ReservoirPressure float64 // psia
	BottomholeTemp    float64 // °F
	WellheadTemp      float64 // °F
	SeparatorPressure float64 // psia
	SeparatorTemp     float64 // °F

	OilAPI     float64 // °API at measurement temperature
	OilAPITemp float64 // °F
	GasSG      float64
	WaterCut   float64 // fraction
	H2S        float64 // ppm
	CO2        float64 // ppm

	MeterFactor     float64
	GrossLiquidRate float64 // bbl/d
	ChokeSize64ths  float64 // 1/64 in, descriptive only

	OrificeDiameter float64 // in
	LineBore        float64 // in
	GasDP           float64 // inH2O

	GasLiftInjRate float64 // Mscf/d

	MeasuredBubblePoint float64 // psia
	HasMeasuredPb       bool

	Steps []ValidatedStep
}

// ValidatedStep is a StepEntry normalized to internal units.
type ValidatedStep struct {
	Time string

	MeterOil    float64
	MeterWater  float64
	MeterLiquid float64
	WIO         float64 // fraction
	BSW         float64 // fraction

	SeparatorPressure float64 // psia
	OilTemp           float64 // °F
	GasTemp           float64 // °F
	GasDP             float64 // inH2O

	GasInjRate float64 // Mscf/d
}
