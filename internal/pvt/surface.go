// Package pvt implements the PVT correlation library: interchangeable
// correlations for solution gas-oil ratio, bubble-point pressure, oil and
// gas formation volume factors, gas compressibility, and fluid
// viscosities, keyed by published method name.
//
// Every correlation is a pure function of validated reading fields plus
// previously computed PVT values. Each returns the computed value together
// with a flag reporting whether the inputs fall inside the correlation's
// published applicability range; out-of-range inputs are never an error,
// because engineers extrapolate correlations deliberately. A correlation
// that would produce NaN or an infinity returns it as such and the
// evaluation chain converts it into a CorrelationDomainError.
//
// All pressures are psia, all temperatures °F, unless noted otherwise.
package pvt

import "math"

// OilAPIAt60F corrects a measured API gravity to the standard 60 °F
// reference temperature. Measurements at or below 60 °F need no
// correction.
func OilAPIAt60F(api, measuredTempF float64) float64 {
	if measuredTempF <= 60 {
		return api
	}
	dt := measuredTempF - 60
	return api - 0.00035*dt*(api-10)
}

// SeparatorVCF is the volume correction factor bringing separator-metered
// oil volume to 60 °F, using the ASTM alpha-beta exponential form.
func SeparatorVCF(sepTempF, api60 float64) float64 {
	dt := sepTempF - 60
	alpha := 0.00034878 - 0.00000091*api60
	beta := 0.0000000025
	return math.Exp(-(alpha*dt + beta*dt*dt))
}

// ShrinkageFactor estimates the separator-to-stock-tank shrinkage from the
// separator solution GOR and separator gauge pressure. The base
// coefficient depends on oil gravity, with reductions for low-GOR or
// low-pressure separation where little gas remains to evolve.
//
// The linear form loses physical meaning once c·GOR·Psig reaches 1, which
// happens at high separator pressure combined with a rich gas. There the
// factor is floored at zero and reported as out of range.
func ShrinkageFactor(sepGOR, sepPressurePsia, api60 float64) (float64, bool) {
	sepPsig := sepPressurePsia - 14.7
	if sepPsig < 0 {
		sepPsig = 0
	}

	var c float64
	switch {
	case api60 > 35:
		c = 0.00000025
	case api60 >= 25:
		c = 0.0000003
	default:
		c = 0.00000035
	}

	switch {
	case sepGOR < 100 && sepPsig < 50:
		c = 0.00000005
	case sepGOR < 100:
		c = 0.0000001
	case sepPsig < 50:
		c = 0.0000002
	}

	sf := 1 - c*sepGOR*sepPsig
	if sf < 0 {
		return 0, false
	}
	return sf, true
}

// OilSG converts API gravity to specific gravity (water = 1).
func OilSG(api float64) float64 {
	return 141.5 / (131.5 + api)
}
