package clinical

import (
	"errors"
	"testing"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
)

// ---------------------------------------------------------------------------
// Condition
// ---------------------------------------------------------------------------

func TestNewCondition_FractionalAge(t *testing.T) {
	c, err := NewCondition("TCGA-2J-AAB1", "pat-1", "C25.0", "63.5", "cond-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.OnsetAge.Value != 63.5 {
		t.Errorf("onset age = %v, want 63.5", c.OnsetAge.Value)
	}
	if c.OnsetAge.Unit != "years" {
		t.Errorf("onset unit = %q, want years", c.OnsetAge.Unit)
	}
	if c.OnsetAge.Code != "a" || c.OnsetAge.System != "http://unitsofmeasure.org" {
		t.Errorf("onset age UCUM coding = %q/%q", c.OnsetAge.System, c.OnsetAge.Code)
	}
	if c.Code.Display != "Bösartige Neubildung: Pankreaskopf" {
		t.Errorf("display = %q", c.Code.Display)
	}
	if c.Code.System != "http://fhir.de/CodeSystem/bfarm/icd-10-gm" {
		t.Errorf("system = %q", c.Code.System)
	}
}

func TestNewCondition_UnknownCode(t *testing.T) {
	c, err := NewCondition("TCGA-2J-AAB1", "pat-1", "Z99.9", "70", "cond-1")
	if err != nil {
		t.Fatalf("unknown code must not be rejected: %v", err)
	}
	if c.Code.Code != "Z99.9" {
		t.Errorf("code = %q, want Z99.9", c.Code.Code)
	}
	if c.Code.Display != "" {
		t.Errorf("display = %q, want empty", c.Code.Display)
	}
}

func TestNewCondition_InvalidAge(t *testing.T) {
	tests := []string{"", "NA", "[Not Available]", "63,5", "NaN", "+Inf"}
	for _, age := range tests {
		_, err := NewCondition("TCGA-2J-AAB1", "pat-1", "C25.0", age, "cond-1")
		if !errors.Is(err, ErrInvalidOnsetAge) {
			t.Errorf("NewCondition(age=%q) error = %v, want ErrInvalidOnsetAge", age, err)
		}
	}
}

func TestConditionToFHIR(t *testing.T) {
	c, err := NewCondition("TCGA-2J-AAB1", "pat-1", "C25.1", "58", "cond-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result := c.ToFHIR()

	if result["resourceType"] != "Condition" {
		t.Errorf("resourceType = %v, want Condition", result["resourceType"])
	}
	if ref := result["subject"].(fhir.Reference); ref.Reference != "Patient/pat-1" {
		t.Errorf("subject = %q, want Patient/pat-1", ref.Reference)
	}
	status := result["clinicalStatus"].(fhir.CodeableConcept)
	want := fhir.Coding{System: "http://terminology.hl7.org/CodeSystem/condition-clinical", Code: "active", Display: "Active"}
	if len(status.Coding) != 1 || status.Coding[0] != want {
		t.Errorf("clinicalStatus = %+v, want %+v", status.Coding, want)
	}
	if age := result["onsetAge"].(fhir.Age); age.Value != 58 {
		t.Errorf("onsetAge = %v, want 58", age.Value)
	}
}

// ---------------------------------------------------------------------------
// Procedure
// ---------------------------------------------------------------------------

func TestProcedureToFHIR(t *testing.T) {
	p := NewProcedure("TCGA-2J-AAB1", "pat-1", "proc-1")
	result := p.ToFHIR()

	if result["resourceType"] != "Procedure" {
		t.Errorf("resourceType = %v, want Procedure", result["resourceType"])
	}
	if result["status"] != "completed" {
		t.Errorf("status = %v, want completed", result["status"])
	}
	code := result["code"].(fhir.CodeableConcept)
	want := fhir.Coding{System: "http://snomed.info/sct", Code: "1287742003", Display: "Radiotherapy (procedure)"}
	if len(code.Coding) != 1 || code.Coding[0] != want {
		t.Errorf("code = %+v, want %+v", code.Coding, want)
	}
	if ref := result["subject"].(fhir.Reference); ref.Reference != "Patient/pat-1" {
		t.Errorf("subject = %q, want Patient/pat-1", ref.Reference)
	}
}
