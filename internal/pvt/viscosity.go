package pvt

import "math"

// DeadOilViscosityBeggsRobinson evaluates the Beggs-Robinson dead-oil
// viscosity in cp.
func DeadOilViscosityBeggsRobinson(api60, tempF float64) (float64, bool) {
	if tempF <= 0 {
		return math.NaN(), false
	}
	x := math.Pow(10, 3.0324-0.02023*api60) * math.Pow(tempF, -1.163)
	mu := math.Pow(10, x) - 1
	inRange := api60 >= 16 && api60 <= 58 && tempF >= 70 && tempF <= 295
	return mu, inRange
}

// LiveOilViscosityBeggsRobinson corrects a dead-oil viscosity for
// dissolved gas. rs is the solution GOR in scf/STB. Returns cp.
func LiveOilViscosityBeggsRobinson(deadCp, rs float64) (float64, bool) {
	if deadCp < 0 || rs < 0 {
		return math.NaN(), false
	}
	a := 10.715 * math.Pow(rs+100, -0.515)
	b := 5.44 * math.Pow(rs+150, -0.338)
	mu := a * math.Pow(deadCp, b)
	return mu, rs <= 2070
}

// GasViscosityLee evaluates the Lee-Gonzalez-Eakin gas viscosity in cp.
// z is the compressibility factor at the same conditions.
func GasViscosityLee(gasSG, pPsia, tempF, z float64) (float64, bool) {
	if z <= 0 || pPsia <= 0 {
		return math.NaN(), false
	}
	m := 28.9625 * gasSG // molecular weight, lbm/lbmol
	tr := tempF + 460    // °R

	// Gas density in g/cc from the real-gas law.
	rho := pPsia * m / (z * 10.732 * tr) / 62.428

	k := (9.4 + 0.02*m) * math.Pow(tr, 1.5) / (209 + 19*m + tr)
	x := 3.5 + 986/tr + 0.01*m
	y := 2.4 - 0.2*x
	mu := k * math.Exp(x*math.Pow(rho, y)) * 1e-4

	inRange := tempF >= 100 && tempF <= 340 && pPsia <= 8000
	return mu, inRange
}

// WaterViscosityMcCain evaluates McCain's pure-water viscosity at
// atmospheric pressure in cp.
func WaterViscosityMcCain(tempF float64) (float64, bool) {
	if tempF <= 0 {
		return math.NaN(), false
	}
	mu := 109.574 * math.Pow(tempF, -1.12166)
	return mu, tempF >= 100 && tempF <= 400
}
