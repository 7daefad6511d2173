// Package units defines measurement units for well-test readings and
// conversions to and from the engine's internal field-unit system
// (psia, °F, bbl/d, Mscf/d, scf/bbl).
//
// Conversions are exact inverses of each other: converting a value to
// internal units and back reproduces the original to within floating-point
// rounding (1e-9 relative), which downstream callers rely on when echoing
// readings back in their original units.
package units

import "fmt"

// PressureUnit identifies a pressure unit.
type PressureUnit string

const (
	PSIA PressureUnit = "psia" // absolute, the internal unit
	PSIG PressureUnit = "psig" // gauge
	KPA  PressureUnit = "kPa"  // absolute
	Bar  PressureUnit = "bar"  // absolute
)

// TemperatureUnit identifies a temperature unit.
type TemperatureUnit string

const (
	Fahrenheit TemperatureUnit = "F" // the internal unit
	Celsius    TemperatureUnit = "C"
	Rankine    TemperatureUnit = "R"
	Kelvin     TemperatureUnit = "K"
)

// LiquidRateUnit identifies a liquid volumetric rate unit.
type LiquidRateUnit string

const (
	BarrelsPerDay     LiquidRateUnit = "bbl/d" // the internal unit
	CubicMetresPerDay LiquidRateUnit = "m3/d"
)

// GasRateUnit identifies a gas volumetric rate unit.
type GasRateUnit string

const (
	MscfPerDay GasRateUnit = "Mscf/d" // thousand standard cubic feet per day, internal
	E3m3PerDay GasRateUnit = "e3m3/d" // thousand standard cubic metres per day
)

// GORUnit identifies a gas-oil ratio unit.
type GORUnit string

const (
	ScfPerBbl GORUnit = "scf/bbl" // the internal unit
	M3PerM3   GORUnit = "m3/m3"
)

// Conversion constants.
const (
	atmPsi      = 14.7       // standard atmosphere used by field gauges
	psiPerKPa   = 0.145037738
	psiPerBar   = 14.5037738
	rankineZero = 459.67     // °R at 0 °F
	bblPerM3    = 6.28981077
	scfPerM3    = 35.3146667
)

// PressureToPsia converts a pressure to psia.
func PressureToPsia(v float64, u PressureUnit) (float64, error) {
	switch u {
	case PSIA:
		return v, nil
	case PSIG:
		return v + atmPsi, nil
	case KPA:
		return v * psiPerKPa, nil
	case Bar:
		return v * psiPerBar, nil
	default:
		return 0, fmt.Errorf("unknown pressure unit %q", u)
	}
}

// PressureFromPsia converts a psia pressure into the given unit.
func PressureFromPsia(v float64, u PressureUnit) (float64, error) {
	switch u {
	case PSIA:
		return v, nil
	case PSIG:
		return v - atmPsi, nil
	case KPA:
		return v / psiPerKPa, nil
	case Bar:
		return v / psiPerBar, nil
	default:
		return 0, fmt.Errorf("unknown pressure unit %q", u)
	}
}

// TemperatureToF converts a temperature to °F.
func TemperatureToF(v float64, u TemperatureUnit) (float64, error) {
	switch u {
	case Fahrenheit:
		return v, nil
	case Celsius:
		return v*9/5 + 32, nil
	case Rankine:
		return v - rankineZero, nil
	case Kelvin:
		return (v-273.15)*9/5 + 32, nil
	default:
		return 0, fmt.Errorf("unknown temperature unit %q", u)
	}
}

// TemperatureFromF converts a °F temperature into the given unit.
func TemperatureFromF(v float64, u TemperatureUnit) (float64, error) {
	switch u {
	case Fahrenheit:
		return v, nil
	case Celsius:
		return (v - 32) * 5 / 9, nil
	case Rankine:
		return v + rankineZero, nil
	case Kelvin:
		return (v-32)*5/9 + 273.15, nil
	default:
		return 0, fmt.Errorf("unknown temperature unit %q", u)
	}
}

// LiquidRateToBbl converts a liquid rate to bbl/d.
func LiquidRateToBbl(v float64, u LiquidRateUnit) (float64, error) {
	switch u {
	case BarrelsPerDay:
		return v, nil
	case CubicMetresPerDay:
		return v * bblPerM3, nil
	default:
		return 0, fmt.Errorf("unknown liquid rate unit %q", u)
	}
}

// LiquidRateFromBbl converts a bbl/d rate into the given unit.
func LiquidRateFromBbl(v float64, u LiquidRateUnit) (float64, error) {
	switch u {
	case BarrelsPerDay:
		return v, nil
	case CubicMetresPerDay:
		return v / bblPerM3, nil
	default:
		return 0, fmt.Errorf("unknown liquid rate unit %q", u)
	}
}

// GasRateToMscf converts a gas rate to Mscf/d.
func GasRateToMscf(v float64, u GasRateUnit) (float64, error) {
	switch u {
	case MscfPerDay:
		return v, nil
	case E3m3PerDay:
		return v * scfPerM3, nil
	default:
		return 0, fmt.Errorf("unknown gas rate unit %q", u)
	}
}

// GasRateFromMscf converts a Mscf/d rate into the given unit.
func GasRateFromMscf(v float64, u GasRateUnit) (float64, error) {
	switch u {
	case MscfPerDay:
		return v, nil
	case E3m3PerDay:
		return v / scfPerM3, nil
	default:
		return 0, fmt.Errorf("unknown gas rate unit %q", u)
	}
}

// GORToScfPerBbl converts a gas-oil ratio to scf/bbl.
func GORToScfPerBbl(v float64, u GORUnit) (float64, error) {
	switch u {
	case ScfPerBbl:
		return v, nil
	case M3PerM3:
		return v * scfPerM3 / bblPerM3, nil
	default:
		return 0, fmt.Errorf("unknown GOR unit %q", u)
	}
}

// GORFromScfPerBbl converts a scf/bbl ratio into the given unit.
func GORFromScfPerBbl(v float64, u GORUnit) (float64, error) {
	switch u {
	case ScfPerBbl:
		return v, nil
	case M3PerM3:
		return v * bblPerM3 / scfPerM3, nil
	default:
		return 0, fmt.Errorf("unknown GOR unit %q", u)
	}
}

// FahrenheitToRankine returns the absolute temperature in °R.
func FahrenheitToRankine(f float64) float64 {
	return f + rankineZero
}
