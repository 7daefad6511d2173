package pvt

import (
	"errors"
	"math"
	"testing"

	"github.com/ramware/welltest/pkg/models"
)

// validated builds a ValidatedReading with sensible mid-range inputs.
func validated() models.ValidatedReading {
	return models.ValidatedReading{
		ReservoirPressure: 3200,
		BottomholeTemp:    180,
		SeparatorPressure: 114.7,
		SeparatorTemp:     90,
		OilAPI:            35,
		OilAPITemp:        60,
		GasSG:             0.75,
		WaterCut:          0.2,
		MeterFactor:       1.0,
		GrossLiquidRate:   500,
	}
}

func defaultSelection(t *testing.T) models.CorrelationSelection {
	t.Helper()
	sel, err := ResolveSelection(models.CorrelationSelection{})
	if err != nil {
		t.Fatalf("ResolveSelection: %v", err)
	}
	return sel
}

// ── Surface corrections ──

func TestOilAPIAt60F(t *testing.T) {
	if got := OilAPIAt60F(35, 60); got != 35 {
		t.Errorf("no correction at 60 °F, got %v", got)
	}
	if got := OilAPIAt60F(35, 50); got != 35 {
		t.Errorf("no correction below 60 °F, got %v", got)
	}
	got := OilAPIAt60F(35, 160)
	want := 35 - 0.00035*100*25
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("OilAPIAt60F(35, 160) = %v, want %v", got, want)
	}
}

func TestSeparatorVCF(t *testing.T) {
	if got := SeparatorVCF(60, 35); got != 1 {
		t.Errorf("VCF at 60 °F should be exactly 1, got %v", got)
	}
	if got := SeparatorVCF(120, 35); got >= 1 || got < 0.9 {
		t.Errorf("hot separator VCF should shrink the volume slightly, got %v", got)
	}
}

func TestShrinkageFactorBranches(t *testing.T) {
	tests := []struct {
		name    string
		gor     float64
		pPsia   float64 // absolute; the gauge value drives the branch
		api     float64
		wantC   float64
	}{
		{"light oil", 400, 214.7, 40, 0.00000025},
		{"medium oil", 400, 214.7, 30, 0.0000003},
		{"heavy oil", 400, 214.7, 20, 0.00000035},
		{"low gor low pressure", 50, 44.7, 40, 0.00000005},
		{"low gor", 50, 214.7, 40, 0.0000001},
		{"low pressure", 400, 44.7, 40, 0.0000002},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			psig := tt.pPsia - 14.7
			want := 1 - tt.wantC*tt.gor*psig
			got, ok := ShrinkageFactor(tt.gor, tt.pPsia, tt.api)
			if math.Abs(got-want) > 1e-12 {
				t.Errorf("ShrinkageFactor = %v, want %v", got, want)
			}
			if !ok {
				t.Errorf("ShrinkageFactor in-range = false, want true")
			}
		})
	}
}

func TestShrinkageFactorFloorsAtZero(t *testing.T) {
	// Rich gas against a near-5000 psia separator pushes the linear
	// form below zero; the factor must floor there, not go negative.
	got, ok := ShrinkageFactor(2000, 4814.7, 30)
	if got != 0 {
		t.Errorf("ShrinkageFactor = %v, want 0", got)
	}
	if ok {
		t.Error("ShrinkageFactor in-range = true, want false past the floor")
	}
}

// ── Solution GOR ──

func TestSolutionGORAutoDispatch(t *testing.T) {
	tests := []struct {
		api  float64
		want models.Method
	}{
		{40, models.MethodVasquezBeggs},
		{30, models.MethodStanding},
		{25, models.MethodStanding},
		{20, models.MethodKatz},
	}
	for _, tt := range tests {
		_, m, _ := SolutionGOR(models.MethodAuto, 0.75, 114.7, tt.api, 90)
		if m != tt.want {
			t.Errorf("auto dispatch at %v °API resolved %s, want %s", tt.api, m, tt.want)
		}
	}
}

func TestSolutionGORIncreasesWithPressure(t *testing.T) {
	for _, m := range []models.Method{models.MethodStanding, models.MethodVasquezBeggs, models.MethodKatz} {
		low, _, _ := SolutionGOR(m, 0.75, 100, 35, 150)
		high, _, _ := SolutionGOR(m, 0.75, 1000, 35, 150)
		if high <= low {
			t.Errorf("%s: Rs should increase with pressure, got %v at 100 psia and %v at 1000 psia", m, low, high)
		}
		if low < 0 {
			t.Errorf("%s: Rs must be non-negative, got %v", m, low)
		}
	}
}

func TestKatzFlagsLeanGas(t *testing.T) {
	// Gas SG 0.40 is below the Katz charts: the value still comes back,
	// only the applicability flag drops.
	v, _, inRange := SolutionGOR(models.MethodKatz, 0.40, 500, 30, 150)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("lean gas must still evaluate, got %v", v)
	}
	if v <= 0 {
		t.Errorf("expected a positive GOR, got %v", v)
	}
	if inRange {
		t.Error("SG 0.40 should be flagged outside the Katz range")
	}
}

func TestInRangeInputsAreInRange(t *testing.T) {
	// Mid-range inputs must not trip the applicability flag.
	if _, _, ok := SolutionGOR(models.MethodStanding, 0.75, 500, 35, 150); !ok {
		t.Error("Standing: mid-range inputs flagged out of range")
	}
	if _, _, ok := SolutionGOR(models.MethodVasquezBeggs, 0.75, 500, 35, 150); !ok {
		t.Error("Vasquez-Beggs: mid-range inputs flagged out of range")
	}
	if _, _, ok := SolutionGOR(models.MethodKatz, 0.75, 500, 30, 150); !ok {
		t.Error("Katz: mid-range inputs flagged out of range")
	}
}

// ── Bubble point ──

func TestBubblePointRoundTripsGOR(t *testing.T) {
	// Pb(Rs) then Rs(Pb) should come back close to the original GOR for
	// the self-consistent Vasquez-Beggs pair.
	const rs = 400.0
	pb, _ := BubblePointVasquezBeggs(0.75, rs, 180, 35)
	back, _ := SolutionGORVasquezBeggs(0.75, pb, 35, 180)
	if math.Abs(back-rs)/rs > 1e-9 {
		t.Errorf("VB round trip: Rs %v -> Pb %v -> Rs %v", rs, pb, back)
	}
}

func TestBubblePointStandingTypicalValue(t *testing.T) {
	pb, inRange := BubblePointStanding(0.75, 400, 180, 35)
	if pb < 500 || pb > 4000 {
		t.Errorf("Standing Pb for a typical black oil should land near 2000 psia, got %v", pb)
	}
	if !inRange {
		t.Error("typical black-oil inputs should be in range")
	}
}

func TestBubblePointFloorsAtAtmosphere(t *testing.T) {
	pb, inRange := BubblePointStanding(0.75, 0.5, 180, 35)
	if pb != 14.7 {
		t.Errorf("near-dead oil should clamp to atmospheric, got %v", pb)
	}
	if inRange {
		t.Error("clamped bubble point must be flagged out of range")
	}
}

// ── Formation volume factors ──

func TestBoExceedsUnity(t *testing.T) {
	for _, m := range []models.Method{models.MethodStanding, models.MethodVasquezBeggs} {
		bo, _ := Bo(m, 400, 0.75, 35, 180)
		if bo <= 1 || bo > 2 {
			t.Errorf("%s: Bo for a saturated black oil should sit between 1 and 2, got %v", m, bo)
		}
	}
}

func TestBoGrowsWithGOR(t *testing.T) {
	lean, _ := BoStanding(100, 0.75, 35, 180)
	rich, _ := BoStanding(800, 0.75, 35, 180)
	if rich <= lean {
		t.Errorf("Bo should grow with solution gas: %v vs %v", lean, rich)
	}
}

// ── Gas properties ──

func TestZFactorNearUnityAtLowPressure(t *testing.T) {
	z, _ := ZFactor(0.75, 114.7, 90, 0, 0)
	if z < 0.95 || z > 1.0 {
		t.Errorf("z at separator conditions should be just below 1, got %v", z)
	}
}

func TestZFactorFlagsLeanGas(t *testing.T) {
	z, inRange := ZFactor(0.40, 500, 150, 0, 0)
	if math.IsNaN(z) {
		t.Fatal("lean gas must still evaluate")
	}
	if inRange {
		t.Error("SG 0.40 should be flagged outside the chart range")
	}
}

func TestSourGasLowersPseudoCriticalTemp(t *testing.T) {
	tpc, ppc := PseudoCriticals(0.75)
	tpcCorr, _ := WichertAziz(tpc, ppc, 0.05, 0.03)
	if tpcCorr >= tpc {
		t.Errorf("Wichert-Aziz should lower Tpc: %v -> %v", tpc, tpcCorr)
	}
}

func TestSupercompressibilityAboveUnity(t *testing.T) {
	fpv, _ := Supercompressibility(0.75, 130, 90, 0, 0)
	if fpv <= 1 || fpv > 1.2 {
		t.Errorf("Fpv at metering conditions should sit just above 1, got %v", fpv)
	}
}

func TestGasFVFDecreasesWithPressure(t *testing.T) {
	low := GasFVF(0.95, 180, 500)
	high := GasFVF(0.85, 180, 3000)
	if high >= low {
		t.Errorf("Bg should shrink with pressure: %v vs %v", low, high)
	}
}

// ── Viscosities ──

func TestOilViscosityDropsWithDissolvedGas(t *testing.T) {
	dead, _ := DeadOilViscosityBeggsRobinson(35, 180)
	live, _ := LiveOilViscosityBeggsRobinson(dead, 400)
	if live >= dead {
		t.Errorf("dissolved gas should thin the oil: dead %v, live %v", dead, live)
	}
	if live <= 0 {
		t.Errorf("live viscosity must be positive, got %v", live)
	}
}

func TestGasViscosityMagnitude(t *testing.T) {
	mu, _ := GasViscosityLee(0.75, 3200, 180, 0.85)
	if mu < 0.005 || mu > 0.1 {
		t.Errorf("gas viscosity should be of order 0.01–0.03 cp, got %v", mu)
	}
}

func TestWaterViscosityMagnitude(t *testing.T) {
	mu, inRange := WaterViscosityMcCain(180)
	if mu < 0.2 || mu > 1.0 {
		t.Errorf("water at 180 °F should be around 0.3–0.4 cp, got %v", mu)
	}
	if !inRange {
		t.Error("180 °F is inside the published range")
	}
}

// ── Registry ──

func TestRegistryDefaults(t *testing.T) {
	if DefaultFor(models.PropertySolutionGOR) != models.MethodAuto {
		t.Error("solution GOR should default to AUTO")
	}
	if DefaultFor(models.PropertyBubblePoint) != models.MethodStanding {
		t.Error("bubble point should default to STANDING")
	}
	if !Supports(models.PropertySolutionGOR, models.MethodKatz) {
		t.Error("Katz should be registered for solution GOR")
	}
	if Supports(models.PropertyBubblePoint, models.MethodKatz) {
		t.Error("Katz is not a bubble-point method")
	}
}

func TestResolveSelectionFillsDefaults(t *testing.T) {
	sel, err := ResolveSelection(models.CorrelationSelection{})
	if err != nil {
		t.Fatalf("ResolveSelection: %v", err)
	}
	if sel.SolutionGOR == "" || sel.BubblePoint == "" || sel.Bo == "" {
		t.Errorf("resolved selection should have no empty fields: %+v", sel)
	}
}

func TestResolveSelectionRejectsUnknownMethod(t *testing.T) {
	_, err := ResolveSelection(models.CorrelationSelection{SolutionGOR: "GLASO"})
	if err == nil {
		t.Error("unregistered method should be rejected")
	}
}

// ── Evaluation chain ──

func TestEvaluateProducesFullChain(t *testing.T) {
	res, err := Evaluate(validated(), defaultSelection(t))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	values := map[models.Property]models.PVTValue{
		models.PropertyOilAPI60F:      res.OilAPI60F,
		models.PropertyBubblePoint:    res.BubblePoint,
		models.PropertySolutionGOR:    res.SolutionGOR,
		models.PropertySeparatorGOR:   res.SeparatorGOR,
		models.PropertyBo:             res.Bo,
		models.PropertyZFactor:        res.ZFactor,
		models.PropertyBg:             res.Bg,
		models.PropertyOilViscosity:   res.OilViscosity,
		models.PropertyGasViscosity:   res.GasViscosity,
		models.PropertyWaterViscosity: res.WaterViscosity,
		models.PropertyVCF:            res.VCF,
		models.PropertyShrinkage:      res.Shrinkage,
	}
	for prop, v := range values {
		if !v.Computed() {
			t.Errorf("%s was not computed", prop)
		}
		if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			t.Errorf("%s is non-representable: %v", prop, v.Value)
		}
	}
}

func TestEvaluateUsesMeasuredBubblePoint(t *testing.T) {
	vr := validated()
	vr.MeasuredBubblePoint = 2000
	vr.HasMeasuredPb = true

	res, err := Evaluate(vr, defaultSelection(t))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.BubblePoint.Value != 2000 || res.BubblePoint.Method != models.MethodMeasured {
		t.Errorf("measured Pb should pass through: %+v", res.BubblePoint)
	}
}

func TestEvaluateWarnsOnLeanGas(t *testing.T) {
	vr := validated()
	vr.GasSG = 0.40

	res, err := Evaluate(vr, defaultSelection(t))
	if err != nil {
		t.Fatalf("lean gas must evaluate, got %v", err)
	}
	if len(res.Warnings) == 0 {
		t.Error("lean gas should accumulate range warnings")
	}
	if res.ZFactor.InRange {
		t.Error("z-factor should be flagged out of range at SG 0.40")
	}
}

func TestEvaluateDomainError(t *testing.T) {
	vr := validated()
	vr.SeparatorPressure = 0 // no separator gas at all

	sel := defaultSelection(t)
	sel.BubblePoint = models.MethodVasquezBeggs // inverted form cannot take Rs = 0

	_, err := Evaluate(vr, sel)
	var derr *models.CorrelationDomainError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *CorrelationDomainError, got %v", err)
	}
	if derr.Property != models.PropertyBubblePoint {
		t.Errorf("error should name the failing property, got %s", derr.Property)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	vr := validated()
	sel := defaultSelection(t)

	a, err := Evaluate(vr, sel)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	b, err := Evaluate(vr, sel)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if a.Bo.Value != b.Bo.Value || a.BubblePoint.Value != b.BubblePoint.Value ||
		a.SolutionGOR.Value != b.SolutionGOR.Value {
		t.Error("repeated evaluation must be bit-identical")
	}
}
