package pvt

import "math"

// PseudoCriticals returns the pseudo-critical temperature (°R) and
// pressure (psia) of a natural gas from its specific gravity, using the
// Standing-Katz gravity fits.
func PseudoCriticals(gasSG float64) (tpc, ppc float64) {
	tpc = 168 + 325*gasSG - 12.5*gasSG*gasSG
	ppc = 677 + 15*gasSG - 37.5*gasSG*gasSG
	return tpc, ppc
}

// WichertAziz corrects pseudo-critical properties for H2S and CO2
// content. yH2S and yCO2 are mole fractions.
func WichertAziz(tpc, ppc, yH2S, yCO2 float64) (tpcCorr, ppcCorr float64) {
	a := yH2S + yCO2
	epsilon := 120*(math.Pow(a, 0.9)-math.Pow(a, 1.6)) + 15*(math.Pow(yH2S, 0.5)-math.Pow(yH2S, 4))
	tpcCorr = tpc - epsilon
	ppcCorr = ppc * tpcCorr / (tpc + yH2S*(1-yH2S)*epsilon)
	return tpcCorr, ppcCorr
}

// ZFactorPapay is the Papay fit to the Standing-Katz compressibility
// chart, in pseudo-reduced coordinates.
func ZFactorPapay(ppr, tpr float64) float64 {
	return 1 - 3.52*ppr/math.Pow(10, 0.9813*tpr) + 0.274*ppr*ppr/math.Pow(10, 0.8157*tpr)
}

// ZFactor computes the gas compressibility factor at the given conditions
// via Standing-Katz pseudo-criticals, the Wichert-Aziz sour correction,
// and the Papay chart fit. h2sPPM and co2PPM are ppm by mole.
//
// The applicability flag covers both the gravity fit (SG 0.55–1.2) and the
// chart's pseudo-reduced window (Tpr 1.05–3.0, Ppr 0.2–15).
func ZFactor(gasSG, pPsia, tempF, h2sPPM, co2PPM float64) (float64, bool) {
	yH2S := h2sPPM / 1e6
	yCO2 := co2PPM / 1e6

	tpc, ppc := PseudoCriticals(gasSG)
	tpc, ppc = WichertAziz(tpc, ppc, yH2S, yCO2)
	if tpc <= 0 || ppc <= 0 {
		return math.NaN(), false
	}

	tpr := (tempF + 460) / tpc
	ppr := pPsia / ppc

	z := ZFactorPapay(ppr, tpr)
	inRange := gasSG >= 0.55 && gasSG <= 1.2 &&
		tpr >= 1.05 && tpr <= 3.0 &&
		ppr >= 0.2 && ppr <= 15
	return z, inRange
}

// GasFVF is the gas formation volume factor Bg in cf/scf at the given
// conditions.
func GasFVF(z, tempF, pPsia float64) float64 {
	if pPsia <= 0 {
		return math.NaN()
	}
	return 0.02827 * z * (tempF + 460) / pPsia
}

// Supercompressibility is the orifice-metering factor Fpv = 1/sqrt(z) at
// the meter's upstream conditions.
func Supercompressibility(gasSG, pPsia, tempF, h2sPPM, co2PPM float64) (float64, bool) {
	z, inRange := ZFactor(gasSG, pPsia, tempF, h2sPPM, co2PPM)
	if z <= 0 {
		return math.NaN(), false
	}
	return 1 / math.Sqrt(z), inRange
}
