// Package validate normalizes raw test readings to the engine's internal
// field units and rejects physically invalid records.
//
// Validation is a pure function: it produces a ValidatedReading or a
// ValidationError listing every violation found, and has no other effects.
// Physical bounds here are deliberately wider than any single correlation's
// applicability range — a lean gas at SG 0.40 is a real fluid even though
// it sits outside the Katz charts, so the correlation layer flags it as a
// warning instead of the validator rejecting it.
package validate

import (
	"fmt"

	"github.com/ramware/welltest/pkg/models"
	"github.com/ramware/welltest/pkg/units"
)

// Physical bounds for validated fields, in internal units.
const (
	MinReservoirPressure = 0.0     // psia
	MaxReservoirPressure = 25000.0 // psia
	MinTemperature       = 32.0    // °F
	MaxTemperature       = 450.0   // °F
	MinOilAPI            = 0.0
	MaxOilAPI            = 100.0
	MinGasSG             = 0.2
	MaxGasSG             = 2.0
	MinWaterCut          = 0.0
	MaxWaterCut          = 1.0
	MinSeparatorPressure = 0.0    // psia
	MaxSeparatorPressure = 5000.0 // psia
	MaxGrossLiquidRate   = 100000.0 // bbl/d
	MinMeterFactor       = 0.5
	MaxMeterFactor       = 1.5
	MaxSourGasPPM        = 1e6 // ppm, a mole fraction of 1
)

// Validate converts every field of the reading to internal units and
// checks it against its physical range. All violations are collected and
// returned in a single ValidationError so the caller can present a
// complete report in one pass.
func Validate(r models.TestReading) (models.ValidatedReading, error) {
	var v checker
	out := models.ValidatedReading{Source: r}

	out.Separation = r.Separation
	if out.Separation == "" {
		out.Separation = models.SeparationTwoPhase
	}
	out.Production = r.Production
	if out.Production == "" {
		out.Production = models.ProductionNatural
	}
	out.Basis = r.Basis
	if out.Basis == "" {
		out.Basis = models.BasisSeparator
	}

	out.ReservoirPressure = v.pressure("reservoir_pressure", r.ReservoirPressure, true, MinReservoirPressure, MaxReservoirPressure)
	out.BottomholeTemp = v.temperature("bottomhole_temp", r.BottomholeTemp, true)
	out.WellheadTemp = v.temperature("wellhead_temp", r.WellheadTemp, false)
	out.SeparatorPressure = v.pressure("separator_pressure", r.SeparatorPressure, true, MinSeparatorPressure, MaxSeparatorPressure)
	out.SeparatorTemp = v.temperature("separator_temp", r.SeparatorTemp, true)

	out.OilAPI = v.scalar("oil_api", r.OilAPI, MinOilAPI, MaxOilAPI)
	out.GasSG = v.scalar("gas_sg", r.GasSG, MinGasSG, MaxGasSG)
	out.WaterCut = v.scalar("water_cut", r.WaterCut, MinWaterCut, MaxWaterCut)

	if r.OilAPITemp.Set() {
		out.OilAPITemp = v.temperature("oil_api_temp", r.OilAPITemp, false)
	} else {
		out.OilAPITemp = 60 // API gravity quoted at standard temperature
	}

	out.H2S = v.inRange("h2s", r.H2S, 0, MaxSourGasPPM)
	out.CO2 = v.inRange("co2", r.CO2, 0, MaxSourGasPPM)

	// Choke size is descriptive metadata; it participates in no
	// calculation but still has to be physically sensible.
	if r.ChokeSize < 0 {
		v.fail("choke_size", fmt.Sprintf("%g is negative", r.ChokeSize))
	}
	out.ChokeSize64ths = r.ChokeSize

	out.MeterFactor = r.MeterFactor
	if out.MeterFactor == 0 {
		out.MeterFactor = 1.0
	} else {
		out.MeterFactor = v.inRange("meter_factor", out.MeterFactor, MinMeterFactor, MaxMeterFactor)
	}

	if r.GrossLiquidRate.Set() {
		rate, err := units.LiquidRateToBbl(r.GrossLiquidRate.Value, r.GrossLiquidRate.Unit)
		if err != nil {
			v.fail("gross_liquid_rate", err.Error())
		} else {
			out.GrossLiquidRate = v.inRange("gross_liquid_rate", rate, 0, MaxGrossLiquidRate)
		}
	} else if len(r.Steps) == 0 {
		v.fail("gross_liquid_rate", "required field is missing")
	}

	validateOrifice(&v, r, &out)

	if out.Production == models.ProductionGasLift {
		if !r.GasLiftInjRate.Set() {
			v.fail("gas_lift_inj_rate", "required for gas-lift wells")
		} else {
			inj, err := units.GasRateToMscf(r.GasLiftInjRate.Value, r.GasLiftInjRate.Unit)
			if err != nil {
				v.fail("gas_lift_inj_rate", err.Error())
			} else if inj < 0 {
				v.fail("gas_lift_inj_rate", fmt.Sprintf("%g is negative", inj))
			} else {
				out.GasLiftInjRate = inj
			}
		}
	}

	if r.MeasuredBubblePoint.Set() {
		pb, err := units.PressureToPsia(r.MeasuredBubblePoint.Value, r.MeasuredBubblePoint.Unit)
		if err != nil {
			v.fail("measured_bubble_point", err.Error())
		} else {
			out.MeasuredBubblePoint = v.inRange("measured_bubble_point", pb, 0, MaxReservoirPressure)
			out.HasMeasuredPb = true
		}
	}

	out.Steps = validateSteps(&v, r, out.Separation)

	if len(v.violations) > 0 {
		return models.ValidatedReading{}, &models.ValidationError{Violations: v.violations}
	}
	return out, nil
}

func validateOrifice(v *checker, r models.TestReading, out *models.ValidatedReading) {
	hasMeter := r.OrificeDiameter != 0 || r.LineBore != 0 || r.GasDP != 0
	if !hasMeter {
		return
	}
	if r.OrificeDiameter <= 0 {
		v.fail("orifice_diameter", "must be positive when orifice metering is used")
	}
	if r.LineBore <= 0 {
		v.fail("line_bore", "must be positive when orifice metering is used")
	}
	if r.OrificeDiameter > 0 && r.LineBore > 0 && r.OrificeDiameter >= r.LineBore {
		v.fail("orifice_diameter", fmt.Sprintf("%g must be smaller than line bore %g", r.OrificeDiameter, r.LineBore))
	}
	if r.GasDP < 0 {
		v.fail("gas_dp", fmt.Sprintf("%g is negative", r.GasDP))
	}
	out.OrificeDiameter = r.OrificeDiameter
	out.LineBore = r.LineBore
	out.GasDP = r.GasDP
}

func validateSteps(v *checker, r models.TestReading, sep models.SeparationType) []models.ValidatedStep {
	if len(r.Steps) == 0 {
		return nil
	}
	steps := make([]models.ValidatedStep, 0, len(r.Steps))
	for i, s := range r.Steps {
		field := func(name string) string { return fmt.Sprintf("steps[%d].%s", i, name) }
		vs := models.ValidatedStep{Time: s.Time, GasDP: s.GasDP}

		if s.Time == "" {
			v.fail(field("time"), "required field is missing")
		}
		if s.GasDP < 0 {
			v.fail(field("gas_dp"), fmt.Sprintf("%g is negative", s.GasDP))
		}

		vs.SeparatorPressure = v.pressure(field("separator_pressure"), s.SeparatorPressure, true, MinSeparatorPressure, MaxSeparatorPressure)
		vs.OilTemp = v.temperature(field("oil_temp"), s.OilTemp, true)
		vs.GasTemp = v.temperature(field("gas_temp"), s.GasTemp, true)

		switch sep {
		case models.SeparationThreePhase:
			vs.MeterOil = v.inRange(field("meter_oil"), s.MeterOil, 0, 1e9)
			vs.MeterWater = v.inRange(field("meter_water"), s.MeterWater, 0, 1e9)
			vs.WIO = v.inRange(field("wio_percent"), s.WIOPercent, 0, 100) / 100
		default:
			vs.MeterLiquid = v.inRange(field("meter_liquid"), s.MeterLiquid, 0, 1e9)
			vs.BSW = v.inRange(field("bsw_percent"), s.BSWPercent, 0, 100) / 100
		}

		if s.GasInjRate.Set() {
			inj, err := units.GasRateToMscf(s.GasInjRate.Value, s.GasInjRate.Unit)
			if err != nil {
				v.fail(field("gas_inj_rate"), err.Error())
			} else {
				vs.GasInjRate = v.inRange(field("gas_inj_rate"), inj, 0, 1e6)
			}
		}

		steps = append(steps, vs)
	}
	return steps
}

// checker accumulates violations while conversions proceed, so a single
// pass reports every problem in the reading.
type checker struct {
	violations []models.FieldViolation
}

func (c *checker) fail(field, reason string) {
	c.violations = append(c.violations, models.FieldViolation{Field: field, Reason: reason})
}

func (c *checker) inRange(field string, val, min, max float64) float64 {
	if val < min || val > max {
		c.fail(field, fmt.Sprintf("%g outside [%g, %g]", val, min, max))
	}
	return val
}

func (c *checker) pressure(field string, p models.Pressure, required bool, min, max float64) float64 {
	if !p.Set() {
		if required {
			c.fail(field, "required field is missing")
		}
		return 0
	}
	psia, err := units.PressureToPsia(p.Value, p.Unit)
	if err != nil {
		c.fail(field, err.Error())
		return 0
	}
	return c.inRange(field, psia, min, max)
}

func (c *checker) temperature(field string, t models.Temperature, required bool) float64 {
	if !t.Set() {
		if required {
			c.fail(field, "required field is missing")
		}
		return 0
	}
	f, err := units.TemperatureToF(t.Value, t.Unit)
	if err != nil {
		c.fail(field, err.Error())
		return 0
	}
	return c.inRange(field, f, MinTemperature, MaxTemperature)
}

func (c *checker) scalar(field string, p *float64, min, max float64) float64 {
	if p == nil {
		c.fail(field, "required field is missing")
		return 0
	}
	return c.inRange(field, *p, min, max)
}
