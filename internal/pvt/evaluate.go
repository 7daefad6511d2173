package pvt

import (
	"math"

	"github.com/ramware/welltest/pkg/models"
)

// Evaluate runs the full PVT chain for one validated reading under a
// resolved correlation selection and returns every derived property,
// each tagged with the method that produced it.
//
// The chain enforces its ordering by passing prior results explicitly:
// bubble-point pressure is computed before the reservoir solution GOR and
// Bo because both depend on it, and each value is computed exactly once
// per invocation so everything downstream sees a consistent set.
//
// Out-of-applicability-range inputs produce warnings on the result; only
// a non-representable value (NaN or Inf) aborts with a
// CorrelationDomainError.
func Evaluate(vr models.ValidatedReading, sel models.CorrelationSelection) (models.PVTResult, error) {
	var res models.PVTResult

	warn := func(p models.Property, m models.Method, reason string) {
		res.Warnings = append(res.Warnings, models.RangeWarning{Property: p, Method: m, Reason: reason})
	}
	finite := func(p models.Property, m models.Method, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &models.CorrelationDomainError{Property: p, Method: m}
		}
		return nil
	}

	// 1. Oil gravity corrected to 60 °F. Inputs were range-checked by
	// the validator, so this step cannot leave the correction's domain.
	api60 := OilAPIAt60F(vr.OilAPI, vr.OilAPITemp)
	res.OilAPI60F = models.PVTValue{Value: api60, Method: models.MethodASTM1250, InRange: true}

	// 2. Solution GOR at separator conditions. This is the gas that
	// evolves between separator and stock tank, and it doubles as the
	// solution-gas estimate for the bubble-point correlation when no
	// lab measurement is available.
	sepGOR, sepMethod, sepOK := SolutionGOR(sel.SolutionGOR, vr.GasSG, vr.SeparatorPressure, api60, vr.SeparatorTemp)
	if err := finite(models.PropertySeparatorGOR, sepMethod, sepGOR); err != nil {
		return models.PVTResult{}, err
	}
	if !sepOK {
		warn(models.PropertySeparatorGOR, sepMethod, "separator conditions outside published correlation range")
	}
	res.SeparatorGOR = models.PVTValue{Value: sepGOR, Method: sepMethod, InRange: sepOK}

	// 3. Bubble-point pressure. A measured value wins; otherwise the
	// selected correlation estimates it from the separator GOR.
	var pb float64
	if vr.HasMeasuredPb {
		pb = vr.MeasuredBubblePoint
		res.BubblePoint = models.PVTValue{Value: pb, Method: models.MethodMeasured, InRange: true}
	} else {
		v, ok := BubblePoint(sel.BubblePoint, vr.GasSG, sepGOR, vr.BottomholeTemp, api60)
		if err := finite(models.PropertyBubblePoint, sel.BubblePoint, v); err != nil {
			return models.PVTResult{}, err
		}
		if !ok {
			warn(models.PropertyBubblePoint, sel.BubblePoint, "inputs outside published correlation range")
		}
		pb = v
		res.BubblePoint = models.PVTValue{Value: v, Method: sel.BubblePoint, InRange: ok}
	}

	// 4. Reservoir solution GOR at min(reservoir P, Pb): above the
	// bubble point no further gas dissolves, so Rs holds at Rs(Pb).
	rsPressure := math.Min(vr.ReservoirPressure, pb)
	rs, rsMethod, rsOK := SolutionGOR(sel.SolutionGOR, vr.GasSG, rsPressure, api60, vr.BottomholeTemp)
	if err := finite(models.PropertySolutionGOR, rsMethod, rs); err != nil {
		return models.PVTResult{}, err
	}
	if !rsOK {
		warn(models.PropertySolutionGOR, rsMethod, "reservoir conditions outside published correlation range")
	}
	res.SolutionGOR = models.PVTValue{Value: rs, Method: rsMethod, InRange: rsOK}

	// 5. Oil formation volume factor from the reservoir Rs.
	bo, boOK := Bo(sel.Bo, rs, vr.GasSG, api60, vr.BottomholeTemp)
	if err := finite(models.PropertyBo, sel.Bo, bo); err != nil {
		return models.PVTResult{}, err
	}
	if !boOK {
		warn(models.PropertyBo, sel.Bo, "inputs outside published correlation range")
	}
	res.Bo = models.PVTValue{Value: bo, Method: sel.Bo, InRange: boOK}

	// 6. Gas compressibility and formation volume factor at reservoir
	// conditions.
	z, zOK := ZFactor(vr.GasSG, vr.ReservoirPressure, vr.BottomholeTemp, vr.H2S, vr.CO2)
	if err := finite(models.PropertyZFactor, models.MethodStandingKatz, z); err != nil {
		return models.PVTResult{}, err
	}
	if !zOK {
		warn(models.PropertyZFactor, models.MethodStandingKatz, "gas gravity or reduced conditions outside chart range")
	}
	res.ZFactor = models.PVTValue{Value: z, Method: models.MethodStandingKatz, InRange: zOK}

	bg := GasFVF(z, vr.BottomholeTemp, vr.ReservoirPressure)
	if err := finite(models.PropertyBg, models.MethodStandingKatz, bg); err != nil {
		return models.PVTResult{}, err
	}
	res.Bg = models.PVTValue{Value: bg, Method: models.MethodStandingKatz, InRange: zOK}

	// 7. Viscosities.
	dead, deadOK := DeadOilViscosityBeggsRobinson(api60, vr.BottomholeTemp)
	if err := finite(models.PropertyOilViscosity, models.MethodBeggsRobinson, dead); err != nil {
		return models.PVTResult{}, err
	}
	live, liveOK := LiveOilViscosityBeggsRobinson(dead, rs)
	if err := finite(models.PropertyOilViscosity, models.MethodBeggsRobinson, live); err != nil {
		return models.PVTResult{}, err
	}
	oilViscOK := deadOK && liveOK
	if !oilViscOK {
		warn(models.PropertyOilViscosity, models.MethodBeggsRobinson, "inputs outside published correlation range")
	}
	res.OilViscosity = models.PVTValue{Value: live, Method: models.MethodBeggsRobinson, InRange: oilViscOK}

	gasVisc, gasViscOK := GasViscosityLee(vr.GasSG, vr.ReservoirPressure, vr.BottomholeTemp, z)
	if err := finite(models.PropertyGasViscosity, models.MethodLeeGonzalez, gasVisc); err != nil {
		return models.PVTResult{}, err
	}
	if !gasViscOK {
		warn(models.PropertyGasViscosity, models.MethodLeeGonzalez, "inputs outside published correlation range")
	}
	res.GasViscosity = models.PVTValue{Value: gasVisc, Method: models.MethodLeeGonzalez, InRange: gasViscOK}

	waterVisc, waterViscOK := WaterViscosityMcCain(vr.BottomholeTemp)
	if err := finite(models.PropertyWaterViscosity, models.MethodMcCain, waterVisc); err != nil {
		return models.PVTResult{}, err
	}
	if !waterViscOK {
		warn(models.PropertyWaterViscosity, models.MethodMcCain, "temperature outside published correlation range")
	}
	res.WaterViscosity = models.PVTValue{Value: waterVisc, Method: models.MethodMcCain, InRange: waterViscOK}

	// 8. Surface corrections used by the rate split.
	vcf := SeparatorVCF(vr.SeparatorTemp, api60)
	if err := finite(models.PropertyVCF, models.MethodASTM1250, vcf); err != nil {
		return models.PVTResult{}, err
	}
	res.VCF = models.PVTValue{Value: vcf, Method: models.MethodASTM1250, InRange: true}

	sf, sfOK := ShrinkageFactor(sepGOR, vr.SeparatorPressure, api60)
	if err := finite(models.PropertyShrinkage, models.MethodEmpirical, sf); err != nil {
		return models.PVTResult{}, err
	}
	if !sfOK {
		warn(models.PropertyShrinkage, models.MethodEmpirical, "separator GOR and pressure exceed the empirical form's validity; shrinkage floored at zero")
	}
	res.Shrinkage = models.PVTValue{Value: sf, Method: models.MethodEmpirical, InRange: sfOK}

	return res, nil
}
