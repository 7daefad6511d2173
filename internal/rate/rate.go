// Package rate derives surface production rates from a validated reading
// and its PVT chain: the gross-liquid split into oil and water, the
// orifice-plate gas rate, and gas-lift formation-gas accounting.
//
// Every function is pure. A missing PVT dependency is a
// RateComputationError, never a silent default.
package rate

import (
	"math"

	"github.com/ramware/welltest/internal/pvt"
	"github.com/ramware/welltest/pkg/models"
	"github.com/ramware/welltest/pkg/units"
)

// halfHoursPerDay scales a 30-minute metered volume increment to a
// daily rate.
const halfHoursPerDay = 48

// SplitLiquid splits a gross liquid rate (bbl/d at separator conditions)
// into stock-tank oil and water rates. Shrinkage and VCF apply to the oil
// phase only; water does not shrink.
func SplitLiquid(gross, waterCut, meterFactor, shrinkage, vcf float64) (qOil, qWater float64) {
	qOil = gross * (1 - waterCut) * meterFactor * shrinkage * vcf
	qWater = gross * waterCut * meterFactor
	return qOil, qWater
}

// ThreePhaseFlow computes daily oil and water rates from 30-minute volume
// increments of separate oil and water meters. wio is the water fraction
// still entrained in the oil leg.
func ThreePhaseFlow(vsOil, vsWater, wio, meterFactor, shrinkage, vcf float64) (qOil, qWater float64) {
	qOil = vsOil * (1 - wio) * meterFactor * shrinkage * vcf * halfHoursPerDay
	qWater = (vsWater*meterFactor + vsOil*wio) * halfHoursPerDay
	return qOil, qWater
}

// TwoPhaseFlow computes daily oil and water rates from 30-minute volume
// increments of a single liquid meter with a BSW cut.
func TwoPhaseFlow(vsLiquid, bsw, meterFactor, shrinkage, vcf float64) (qOil, qWater float64) {
	qOil = vsLiquid * (1 - bsw) * meterFactor * shrinkage * vcf * halfHoursPerDay
	qWater = vsLiquid * meterFactor * bsw * halfHoursPerDay
	return qOil, qWater
}

// OrificeGasFlow computes the gas rate in Mscf/d through an orifice plate
// from the differential hw (inH2O), the flowing pressure (psia) and
// temperature (°F), and the supercompressibility factor fpv.
func OrificeGasFlow(hw, flowingPsia, gasTempF, gasSG, orificeD, lineBore, fpv float64) float64 {
	if hw <= 0 || orificeD <= 0 || lineBore <= 0 || gasSG <= 0 {
		return 0
	}

	beta := orificeD / lineBore
	cd := 0.5959 + 0.0312*math.Pow(beta, 2.1) - 0.1840*math.Pow(beta, 8)
	fb := 338.17 * orificeD * orificeD * cd / math.Sqrt(1-math.Pow(beta, 4))

	fg := 1 / math.Sqrt(gasSG)

	// Expansion factor from the upstream pressure.
	deltaPsi := hw * 0.03613
	p1 := flowingPsia + deltaPsi
	y2 := 1 - ((0.41+0.35*math.Pow(beta, 4))*deltaPsi)/(1.28*p1)

	ftf := math.Sqrt(520 / (gasTempF + 460))

	return 24 * fb * fg * y2 * ftf * fpv * math.Sqrt(hw*flowingPsia) / 1000
}

// GasLiftMetrics separates formation gas from injected lift gas. The
// formation share floors at zero: metering scatter can show less total
// gas than was injected.
func GasLiftMetrics(qGas, qGasInj, qOil, sepGOR float64) (formationGas, gor1Formation, totalGORFormation float64) {
	formationGas = math.Max(qGas-qGasInj, 0)
	if qOil > 0 {
		gor1Formation = formationGas * 1000 / qOil
	}
	totalGORFormation = gor1Formation + sepGOR
	return formationGas, gor1Formation, totalGORFormation
}

// Compute derives the final rates for a single-reading test (no time
// series) from the validated reading and its PVT chain.
//
// Policy, in order:
//   - water cut 1.0 produces zero oil and is not an error;
//   - a zero gross rate produces all-zero rates (shut-in test);
//   - a PVT dependency that was never computed aborts with a
//     RateComputationError naming the property.
func Compute(vr models.ValidatedReading, res models.PVTResult) (models.RateResult, error) {
	if !res.Shrinkage.Computed() {
		return models.RateResult{}, &models.RateComputationError{MissingProperty: models.PropertyShrinkage}
	}
	if !res.VCF.Computed() {
		return models.RateResult{}, &models.RateComputationError{MissingProperty: models.PropertyVCF}
	}
	if !res.SeparatorGOR.Computed() {
		return models.RateResult{}, &models.RateComputationError{MissingProperty: models.PropertySeparatorGOR}
	}
	if vr.Basis == models.BasisReservoir && !res.Bo.Computed() {
		return models.RateResult{}, &models.RateComputationError{MissingProperty: models.PropertyBo}
	}

	var qOil, qWater float64
	switch vr.Basis {
	case models.BasisReservoir:
		// The gross rate is a reservoir-condition volume; Bo brings
		// it to stock-tank basis.
		if res.Bo.Value <= 0 {
			return models.RateResult{}, &models.RateComputationError{MissingProperty: models.PropertyBo}
		}
		stockTank := vr.GrossLiquidRate / res.Bo.Value
		qOil = stockTank * (1 - vr.WaterCut) * vr.MeterFactor
		qWater = stockTank * vr.WaterCut * vr.MeterFactor
	default:
		qOil, qWater = SplitLiquid(vr.GrossLiquidRate, vr.WaterCut, vr.MeterFactor, res.Shrinkage.Value, res.VCF.Value)
	}

	// Gas: the orifice meter wins when it was run; otherwise the gas
	// rate is solution gas evolved from the computed oil rate.
	var qGas float64
	if vr.OrificeDiameter > 0 && vr.LineBore > 0 && vr.GasDP > 0 {
		fpv, _ := pvt.Supercompressibility(vr.GasSG, vr.SeparatorPressure+vr.GasDP*0.03613, vr.SeparatorTemp, vr.H2S, vr.CO2)
		if math.IsNaN(fpv) {
			return models.RateResult{}, &models.RateComputationError{MissingProperty: models.PropertyZFactor}
		}
		qGas = OrificeGasFlow(vr.GasDP, vr.SeparatorPressure, vr.SeparatorTemp, vr.GasSG, vr.OrificeDiameter, vr.LineBore, fpv)
	} else {
		qGas = res.SeparatorGOR.Value * qOil / 1000
	}

	out := models.RateResult{
		Qoil:   models.LiquidRate{Value: qOil, Unit: units.BarrelsPerDay},
		Qwater: models.LiquidRate{Value: qWater, Unit: units.BarrelsPerDay},
		Qgas:   models.GasRate{Value: qGas, Unit: units.MscfPerDay},
		GOR2:   res.SeparatorGOR.Value,
	}
	if qOil > 0 {
		out.GOR1 = qGas * 1000 / qOil
	}
	out.TotalGOR = out.GOR1 + out.GOR2

	if vr.Production == models.ProductionGasLift {
		formation, gor1F, totalF := GasLiftMetrics(qGas, vr.GasLiftInjRate, qOil, res.SeparatorGOR.Value)
		out.GasLift = &models.GasLiftResult{
			InjectionRate:     vr.GasLiftInjRate,
			FormationGas:      formation,
			GOR1Formation:     gor1F,
			TotalGORFormation: totalF,
		}
	}

	return out, nil
}
