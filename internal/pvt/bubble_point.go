package pvt

import (
	"math"

	"github.com/ramware/welltest/pkg/models"
)

// BubblePointStanding estimates bubble-point pressure from the solution
// GOR at bubble point. Returns psia. The correlation floor is one
// atmosphere: very lean oils drive the raw expression negative, which is
// physically meaningless, so the result clamps to 14.7 psia and is
// reported out of range.
func BubblePointStanding(gasSG, rsAtPb, tempF, api60 float64) (float64, bool) {
	if gasSG <= 0 || rsAtPb < 0 {
		return math.NaN(), false
	}
	pb := 18.2 * (math.Pow(rsAtPb/gasSG, 0.83)*math.Pow(10, 0.00091*tempF-0.0125*api60) - 1.4)
	inRange := pb >= 130 && pb <= 7000 &&
		standingRange.contains(math.Max(pb, 14.7), tempF, api60, gasSG)
	if pb < 14.7 {
		return 14.7, false
	}
	return pb, inRange
}

// BubblePointVasquezBeggs inverts the Vasquez-Beggs solution-GOR
// correlation to recover the pressure at which the given GOR is fully
// dissolved. Returns psia.
func BubblePointVasquezBeggs(gasSG, rsAtPb, tempF, api60 float64) (float64, bool) {
	if gasSG <= 0 || rsAtPb <= 0 {
		return math.NaN(), false
	}
	c1, c2, c3 := vbC1Light, vbC2Light, vbC3Light
	if api60 <= 30 {
		c1, c2, c3 = vbC1Heavy, vbC2Heavy, vbC3Heavy
	}
	pb := math.Pow(rsAtPb/(gasSG*c1*math.Exp(c3*api60/(tempF+460))), 1/c2)
	inRange := vbRange.contains(pb, tempF, api60, gasSG)
	if pb < 14.7 {
		return 14.7, false
	}
	return pb, inRange
}

// BubblePoint dispatches to the named bubble-point correlation.
func BubblePoint(method models.Method, gasSG, rsAtPb, tempF, api60 float64) (float64, bool) {
	switch method {
	case models.MethodStanding:
		return BubblePointStanding(gasSG, rsAtPb, tempF, api60)
	case models.MethodVasquezBeggs:
		return BubblePointVasquezBeggs(gasSG, rsAtPb, tempF, api60)
	default:
		return math.NaN(), false
	}
}
