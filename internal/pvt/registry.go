package pvt

import (
	"fmt"
	"sort"

	"github.com/ramware/welltest/pkg/models"
)

// MethodInfo describes one registered correlation method for a property.
type MethodInfo struct {
	Property    models.Property `json:"property"`
	Method      models.Method   `json:"method"`
	Description string          `json:"description"`
	Default     bool            `json:"default"`
}

// The method registry is a closed, static set: correlations are compiled
// in, never plugged in at run time, so selection stays exhaustively
// testable. The registry exists so the CLI and API can list what is
// available and so selections can be checked before evaluation.
var registry = []MethodInfo{
	{models.PropertySolutionGOR, models.MethodAuto, "select by oil gravity: Vasquez-Beggs >35°, Standing 25–35°, Katz <25°", true},
	{models.PropertySolutionGOR, models.MethodStanding, "Standing solution gas-oil ratio", false},
	{models.PropertySolutionGOR, models.MethodVasquezBeggs, "Vasquez-Beggs solution gas-oil ratio, coefficients split at 30 °API", false},
	{models.PropertySolutionGOR, models.MethodKatz, "Katz solution gas-oil ratio", false},

	{models.PropertyBubblePoint, models.MethodStanding, "Standing bubble-point pressure", true},
	{models.PropertyBubblePoint, models.MethodVasquezBeggs, "Vasquez-Beggs bubble-point pressure (inverted GOR form)", false},

	{models.PropertyBo, models.MethodStanding, "Standing saturated oil formation volume factor", true},
	{models.PropertyBo, models.MethodVasquezBeggs, "Vasquez-Beggs saturated oil formation volume factor", false},

	{models.PropertyZFactor, models.MethodStandingKatz, "Standing-Katz pseudo-criticals, Wichert-Aziz sour correction, Papay fit", true},
	{models.PropertyOilViscosity, models.MethodBeggsRobinson, "Beggs-Robinson dead and live oil viscosity", true},
	{models.PropertyGasViscosity, models.MethodLeeGonzalez, "Lee-Gonzalez-Eakin gas viscosity", true},
	{models.PropertyWaterViscosity, models.MethodMcCain, "McCain atmospheric water viscosity", true},
}

// Methods returns every registered method, ordered by property then name.
func Methods() []MethodInfo {
	out := make([]MethodInfo, len(registry))
	copy(out, registry)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Property != out[j].Property {
			return out[i].Property < out[j].Property
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// MethodsFor returns the methods registered for a property.
func MethodsFor(p models.Property) []models.Method {
	var out []models.Method
	for _, info := range registry {
		if info.Property == p {
			out = append(out, info.Method)
		}
	}
	return out
}

// DefaultFor returns the default method for a property.
func DefaultFor(p models.Property) models.Method {
	for _, info := range registry {
		if info.Property == p && info.Default {
			return info.Method
		}
	}
	return ""
}

// Supports reports whether the method is registered for the property.
func Supports(p models.Property, m models.Method) bool {
	for _, info := range registry {
		if info.Property == p && info.Method == m {
			return true
		}
	}
	return false
}

// ResolveSelection fills zero-valued selection fields with registry
// defaults and rejects methods not registered for their property, so
// exactly one valid method is active per property at evaluation time.
func ResolveSelection(sel models.CorrelationSelection) (models.CorrelationSelection, error) {
	if sel.SolutionGOR == "" {
		sel.SolutionGOR = DefaultFor(models.PropertySolutionGOR)
	}
	if sel.BubblePoint == "" {
		sel.BubblePoint = DefaultFor(models.PropertyBubblePoint)
	}
	if sel.Bo == "" {
		sel.Bo = DefaultFor(models.PropertyBo)
	}

	if !Supports(models.PropertySolutionGOR, sel.SolutionGOR) {
		return sel, fmt.Errorf("method %q is not registered for %s", sel.SolutionGOR, models.PropertySolutionGOR)
	}
	if !Supports(models.PropertyBubblePoint, sel.BubblePoint) {
		return sel, fmt.Errorf("method %q is not registered for %s", sel.BubblePoint, models.PropertyBubblePoint)
	}
	if !Supports(models.PropertyBo, sel.Bo) {
		return sel, fmt.Errorf("method %q is not registered for %s", sel.Bo, models.PropertyBo)
	}
	return sel, nil
}
