package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ramware/welltest/pkg/units"
)

func TestValidationErrorListsAllViolations(t *testing.T) {
	err := &ValidationError{Violations: []FieldViolation{
		{Field: "bottomhole_temp", Reason: "required field is missing"},
		{Field: "water_cut", Reason: "1.4 outside [0, 1]"},
	}}

	msg := err.Error()
	if !strings.Contains(msg, "bottomhole_temp") || !strings.Contains(msg, "water_cut") {
		t.Errorf("Error() should mention every violated field, got %q", msg)
	}
}

func TestCorrelationDomainErrorMessage(t *testing.T) {
	err := &CorrelationDomainError{Property: PropertyBubblePoint, Method: MethodStanding}
	if !strings.Contains(err.Error(), "STANDING") || !strings.Contains(err.Error(), "bubble_point") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRateComputationErrorMessage(t *testing.T) {
	err := &RateComputationError{MissingProperty: PropertyBo}
	if !strings.Contains(err.Error(), "bo") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestQuantitySetDetection(t *testing.T) {
	var p Pressure
	if p.Set() {
		t.Error("zero Pressure should not report Set()")
	}
	p = Pressure{Value: 2000, Unit: units.PSIG}
	if !p.Set() {
		t.Error("tagged Pressure should report Set()")
	}

	var tr TestReading
	if err := json.Unmarshal([]byte(`{"oil_api": 35.0}`), &tr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tr.OilAPI == nil || *tr.OilAPI != 35.0 {
		t.Error("oil_api should decode into the pointer field")
	}
	if tr.GasSG != nil {
		t.Error("absent gas_sg should stay nil")
	}
}

func TestPVTValueComputed(t *testing.T) {
	var v PVTValue
	if v.Computed() {
		t.Error("zero PVTValue should not report Computed()")
	}
	v = PVTValue{Value: 1.2, Method: MethodStanding, InRange: true}
	if !v.Computed() {
		t.Error("tagged PVTValue should report Computed()")
	}
}
