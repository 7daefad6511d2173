package pvt

import (
	"math"

	"github.com/ramware/welltest/pkg/models"
)

// Vasquez-Beggs coefficient sets, split at 30 °API.
const (
	vbC1Heavy = 0.0362
	vbC2Heavy = 1.0937
	vbC3Heavy = 25.724

	vbC1Light = 0.0178
	vbC2Light = 1.1870
	vbC3Light = 23.931
)

// applicability describes a correlation's published input range.
type applicability struct {
	pMin, pMax     float64 // psia
	tMin, tMax     float64 // °F
	apiMin, apiMax float64
	sgMin, sgMax   float64
}

var (
	standingRange = applicability{pMin: 14.7, pMax: 7000, tMin: 100, tMax: 258, apiMin: 16.5, apiMax: 63.8, sgMin: 0.59, sgMax: 0.95}
	vbRange       = applicability{pMin: 14.7, pMax: 6055, tMin: 75, tMax: 294, apiMin: 15.3, apiMax: 59.3, sgMin: 0.51, sgMax: 1.35}
	katzRange     = applicability{pMin: 14.7, pMax: 3000, tMin: 100, tMax: 258, apiMin: 15, apiMax: 45, sgMin: 0.55, sgMax: 1.2}
)

func (a applicability) contains(p, t, api, sg float64) bool {
	return p >= a.pMin && p <= a.pMax &&
		t >= a.tMin && t <= a.tMax &&
		api >= a.apiMin && api <= a.apiMax &&
		sg >= a.sgMin && sg <= a.sgMax
}

// SolutionGORStanding evaluates Standing's solution gas-oil ratio at the
// given pressure and temperature. Returns scf/STB.
func SolutionGORStanding(gasSG, pPsia, api60, tempF float64) (float64, bool) {
	exponent := 0.0125*api60 - 0.00091*tempF
	rs := gasSG * math.Pow(pPsia*math.Pow(10, exponent)/18.2, 1.204)
	return rs, standingRange.contains(pPsia, tempF, api60, gasSG)
}

// SolutionGORVasquezBeggs evaluates the Vasquez-Beggs solution gas-oil
// ratio, selecting the coefficient set by oil gravity. Returns scf/STB.
func SolutionGORVasquezBeggs(gasSG, pPsia, api60, tempF float64) (float64, bool) {
	c1, c2, c3 := vbC1Light, vbC2Light, vbC3Light
	if api60 <= 30 {
		c1, c2, c3 = vbC1Heavy, vbC2Heavy, vbC3Heavy
	}
	rs := gasSG * c1 * math.Pow(pPsia, c2) * math.Exp(c3*api60/(tempF+460))
	return rs, vbRange.contains(pPsia, tempF, api60, gasSG)
}

// SolutionGORKatz evaluates the Katz solution gas-oil ratio.
// Returns scf/STB.
func SolutionGORKatz(gasSG, pPsia, api60, tempF float64) (float64, bool) {
	exponent := 0.01245*api60 - 0.00091*tempF
	rs := 0.224 * gasSG * math.Pow(pPsia, 1.182) * math.Pow(10, exponent)
	return rs, katzRange.contains(pPsia, tempF, api60, gasSG)
}

// SolutionGOR dispatches to the named correlation. MethodAuto picks the
// correlation by oil gravity: Vasquez-Beggs above 35 °API, Standing from
// 25 to 35, Katz below 25. The second return is the resolved method, the
// third the applicability flag.
func SolutionGOR(method models.Method, gasSG, pPsia, api60, tempF float64) (float64, models.Method, bool) {
	m := method
	if m == models.MethodAuto {
		switch {
		case api60 > 35:
			m = models.MethodVasquezBeggs
		case api60 >= 25:
			m = models.MethodStanding
		default:
			m = models.MethodKatz
		}
	}

	switch m {
	case models.MethodStanding:
		v, ok := SolutionGORStanding(gasSG, pPsia, api60, tempF)
		return v, m, ok
	case models.MethodVasquezBeggs:
		v, ok := SolutionGORVasquezBeggs(gasSG, pPsia, api60, tempF)
		return v, m, ok
	case models.MethodKatz:
		v, ok := SolutionGORKatz(gasSG, pPsia, api60, tempF)
		return v, m, ok
	default:
		return math.NaN(), m, false
	}
}
