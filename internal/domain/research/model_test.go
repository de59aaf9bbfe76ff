package research

import (
	"testing"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
)

// ---------------------------------------------------------------------------
// ResearchStudy.ToFHIR
// ---------------------------------------------------------------------------

func TestResearchStudyToFHIR_RequiredFields(t *testing.T) {
	s := NewStudy(StudyNaturalKey, "study-1")

	result := s.ToFHIR()

	if rt := result["resourceType"]; rt != "ResearchStudy" {
		t.Errorf("resourceType = %v, want ResearchStudy", rt)
	}
	if id := result["id"]; id != "study-1" {
		t.Errorf("id = %v, want study-1", id)
	}
	if st := result["status"]; st != "active" {
		t.Errorf("status = %v, want active", st)
	}
	if title := result["title"]; title != "Pancreatic Adenocarcinoma (TCGA, PanCancer Atlas)" {
		t.Errorf("title = %v", title)
	}
	if name := result["name"]; name != "tcga_pancreatic_adenocarcinoma" {
		t.Errorf("name = %v", name)
	}
	if v := result["version"]; v != "1.0.0" {
		t.Errorf("version = %v, want 1.0.0", v)
	}

	ids, ok := result["identifier"].([]fhir.Identifier)
	if !ok || len(ids) != 1 {
		t.Fatalf("expected one identifier, got %v", result["identifier"])
	}
	if ids[0].System != "https://www.cbioportal.org/study" || ids[0].Value != "paad_tcga_pan_can_atlas_2018" {
		t.Errorf("identifier = %+v", ids[0])
	}
}

func TestResearchStudyToFHIR_ProgressStatus(t *testing.T) {
	result := NewStudy(StudyNaturalKey, "study-1").ToFHIR()

	progress, ok := result["progressStatus"].([]map[string]interface{})
	if !ok || len(progress) != 1 {
		t.Fatalf("expected exactly one progressStatus block, got %v", result["progressStatus"])
	}
	state, ok := progress[0]["state"].(fhir.CodeableConcept)
	if !ok || len(state.Coding) != 1 {
		t.Fatalf("expected one state coding, got %v", progress[0]["state"])
	}
	want := fhir.Coding{System: "http://hl7.org/fhir/research-study-status", Code: "completed", Display: "Completed"}
	if state.Coding[0] != want {
		t.Errorf("state coding = %+v, want %+v", state.Coding[0], want)
	}
}

func TestResearchStudy_IfNoneExist(t *testing.T) {
	s := NewStudy(StudyNaturalKey, "study-1")
	want := "identifier=https://www.cbioportal.org/study|paad_tcga_pan_can_atlas_2018"
	if got := s.IfNoneExist(); got != want {
		t.Errorf("IfNoneExist() = %q, want %q", got, want)
	}
}
