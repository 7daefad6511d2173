package engine

import (
	"math"

	"github.com/ramware/welltest/internal/pvt"
	"github.com/ramware/welltest/internal/rate"
	"github.com/ramware/welltest/pkg/models"
	"github.com/ramware/welltest/pkg/units"
)

// computeSeries derives one RateStep per metered time entry and averages
// the steps into the headline rates. Meter readings are cumulative, so
// each step's produced volume is the increment over the previous entry;
// a meter rollback is treated as no flow rather than negative flow.
func computeSeries(vr models.ValidatedReading, pvtRes models.PVTResult, sel models.CorrelationSelection) (models.RateResult, error) {
	if !pvtRes.OilAPI60F.Computed() {
		return models.RateResult{}, &models.RateComputationError{MissingProperty: models.PropertyOilAPI60F}
	}
	api60 := pvtRes.OilAPI60F.Value

	var (
		prevOil, prevWater, prevLiquid float64
		steps                          []models.RateStep
		outOfRange, shrinkageFloored   bool
		gorMethod                      models.Method
	)

	for _, s := range vr.Steps {
		// Per-step separator conditions drive the per-step GOR,
		// shrinkage, and VCF: an afternoon separator runs hotter
		// than the same separator at dawn.
		gor2, m, ok := pvt.SolutionGOR(sel.SolutionGOR, vr.GasSG, s.SeparatorPressure, api60, s.OilTemp)
		if math.IsNaN(gor2) || math.IsInf(gor2, 0) {
			return models.RateResult{}, &models.CorrelationDomainError{Property: models.PropertySeparatorGOR, Method: m}
		}
		gorMethod = m
		if !ok {
			outOfRange = true
		}

		vcf := pvt.SeparatorVCF(s.OilTemp, api60)
		sf, sfOK := pvt.ShrinkageFactor(gor2, s.SeparatorPressure, api60)
		if !sfOK {
			shrinkageFloored = true
		}

		var qOil, qWater float64
		switch vr.Separation {
		case models.SeparationThreePhase:
			vsOil := math.Max(s.MeterOil-prevOil, 0)
			vsWater := math.Max(s.MeterWater-prevWater, 0)
			prevOil, prevWater = s.MeterOil, s.MeterWater
			qOil, qWater = rate.ThreePhaseFlow(vsOil, vsWater, s.WIO, vr.MeterFactor, sf, vcf)
		default:
			vsLiquid := math.Max(s.MeterLiquid-prevLiquid, 0)
			prevLiquid = s.MeterLiquid
			qOil, qWater = rate.TwoPhaseFlow(vsLiquid, s.BSW, vr.MeterFactor, sf, vcf)
		}

		var qGas float64
		if vr.OrificeDiameter > 0 && vr.LineBore > 0 && s.GasDP > 0 {
			fpv, fpvOK := pvt.Supercompressibility(vr.GasSG, s.SeparatorPressure+s.GasDP*0.03613, s.GasTemp, vr.H2S, vr.CO2)
			if math.IsNaN(fpv) {
				return models.RateResult{}, &models.CorrelationDomainError{Property: models.PropertyZFactor, Method: models.MethodStandingKatz}
			}
			if !fpvOK {
				outOfRange = true
			}
			qGas = rate.OrificeGasFlow(s.GasDP, s.SeparatorPressure, s.GasTemp, vr.GasSG, vr.OrificeDiameter, vr.LineBore, fpv)
		} else {
			qGas = gor2 * qOil / 1000
		}

		step := models.RateStep{
			Time:        s.Time,
			Qoil:        qOil,
			Qwater:      qWater,
			Qgas:        qGas,
			TotalLiquid: qOil + qWater,
			GOR2:        gor2,
		}
		if qOil > 0 {
			step.GOR1 = qGas * 1000 / qOil
		}
		step.TotalGOR = step.GOR1 + step.GOR2

		if vr.Production == models.ProductionGasLift {
			inj := s.GasInjRate
			if inj == 0 {
				inj = vr.GasLiftInjRate
			}
			formation, gor1F, totalF := rate.GasLiftMetrics(qGas, inj, qOil, gor2)
			step.GasInjRate = inj
			step.FormationGas = formation
			step.GOR1Formation = gor1F
			step.TotalGORFormation = totalF
		}

		steps = append(steps, step)
	}

	result := averageSteps(steps, vr.Production == models.ProductionGasLift)
	result.Series = steps
	if outOfRange {
		result.Warnings = append(result.Warnings, models.RangeWarning{
			Property: models.PropertySeparatorGOR,
			Method:   gorMethod,
			Reason:   "one or more steps evaluated outside the published correlation range",
		})
	}
	if shrinkageFloored {
		result.Warnings = append(result.Warnings, models.RangeWarning{
			Property: models.PropertyShrinkage,
			Method:   models.MethodEmpirical,
			Reason:   "one or more steps exceeded the empirical shrinkage form's validity; shrinkage floored at zero",
		})
	}
	return result, nil
}

// averageSteps folds the per-step series into the headline rates.
func averageSteps(steps []models.RateStep, gasLift bool) models.RateResult {
	var result models.RateResult
	if len(steps) == 0 {
		return result
	}

	var qOil, qWater, qGas, gor1, gor2 float64
	var inj, formation, gor1F, totalF float64
	for _, s := range steps {
		qOil += s.Qoil
		qWater += s.Qwater
		qGas += s.Qgas
		gor1 += s.GOR1
		gor2 += s.GOR2
		inj += s.GasInjRate
		formation += s.FormationGas
		gor1F += s.GOR1Formation
		totalF += s.TotalGORFormation
	}
	n := float64(len(steps))

	result.Qoil = models.LiquidRate{Value: qOil / n, Unit: units.BarrelsPerDay}
	result.Qwater = models.LiquidRate{Value: qWater / n, Unit: units.BarrelsPerDay}
	result.Qgas = models.GasRate{Value: qGas / n, Unit: units.MscfPerDay}
	result.GOR1 = gor1 / n
	result.GOR2 = gor2 / n
	result.TotalGOR = result.GOR1 + result.GOR2

	if gasLift {
		result.GasLift = &models.GasLiftResult{
			InjectionRate:     inj / n,
			FormationGas:      formation / n,
			GOR1Formation:     gor1F / n,
			TotalGORFormation: totalF / n,
		}
	}
	return result
}
