package pvt

import (
	"math"

	"github.com/ramware/welltest/pkg/models"
)

// BoStanding evaluates Standing's saturated oil formation volume factor.
// rs is the solution GOR in scf/STB. Returns rb/STB.
func BoStanding(rs, gasSG, api60, tempF float64) (float64, bool) {
	oilSG := OilSG(api60)
	if oilSG <= 0 || gasSG <= 0 || rs < 0 {
		return math.NaN(), false
	}
	f := rs*math.Sqrt(gasSG/oilSG) + 1.25*tempF
	bo := 0.9759 + 0.00012*math.Pow(f, 1.2)
	inRange := rs >= 20 && rs <= 1425 &&
		tempF >= 100 && tempF <= 258 &&
		gasSG >= 0.59 && gasSG <= 0.95
	return bo, inRange
}

// BoVasquezBeggs evaluates the Vasquez-Beggs saturated oil formation
// volume factor, with the coefficient set split at 30 °API.
// Returns rb/STB.
func BoVasquezBeggs(rs, gasSG, api60, tempF float64) (float64, bool) {
	if gasSG <= 0 || rs < 0 {
		return math.NaN(), false
	}
	var c1, c2, c3 float64
	if api60 <= 30 {
		c1, c2, c3 = 4.677e-4, 1.751e-5, -1.811e-8
	} else {
		c1, c2, c3 = 4.670e-4, 1.100e-5, 1.337e-9
	}
	bo := 1 + c1*rs + (tempF-60)*(api60/gasSG)*(c2+c3*rs)
	inRange := rs <= 2199 &&
		tempF >= 75 && tempF <= 294 &&
		api60 >= 15.3 && api60 <= 59.3 &&
		gasSG >= 0.51 && gasSG <= 1.35
	return bo, inRange
}

// Bo dispatches to the named oil formation volume factor correlation.
func Bo(method models.Method, rs, gasSG, api60, tempF float64) (float64, bool) {
	switch method {
	case models.MethodStanding:
		return BoStanding(rs, gasSG, api60, tempF)
	case models.MethodVasquezBeggs:
		return BoVasquezBeggs(rs, gasSG, api60, tempF)
	default:
		return math.NaN(), false
	}
}
