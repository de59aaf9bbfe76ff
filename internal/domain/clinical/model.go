package clinical

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/domain/terminology"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/pkg/fhirmodels"
)

// ErrInvalidOnsetAge is returned when the onset age column is not a number.
var ErrInvalidOnsetAge = errors.New("invalid onset age")

// Radiotherapy is the SNOMED CT coding of the only procedure recorded.
var Radiotherapy = fhir.Coding{
	System:  fhirmodels.SystemSNOMED,
	Code:    "1287742003",
	Display: "Radiotherapy (procedure)",
}

// Condition is the primary diagnosis of a subject.
type Condition struct {
	FHIRID         string
	SubjectKey     string
	PatientID      string
	ClinicalStatus string
	Code           fhir.Coding
	OnsetAge       fhir.Age
}

// NewCondition builds a Condition coded in ICD-10-GM. onsetAge is parsed as
// a decimal number of years; codes without a known label get an empty display.
func NewCondition(subjectKey, patientID, icdCode, onsetAge, id string) (*Condition, error) {
	years, err := strconv.ParseFloat(strings.TrimSpace(onsetAge), 64)
	if err != nil {
		return nil, fmt.Errorf("%w %q for subject %s: %v", ErrInvalidOnsetAge, onsetAge, subjectKey, err)
	}
	if math.IsNaN(years) || math.IsInf(years, 0) {
		return nil, fmt.Errorf("%w %q for subject %s", ErrInvalidOnsetAge, onsetAge, subjectKey)
	}

	label, _ := terminology.ICD10GMLabel(icdCode)

	return &Condition{
		FHIRID:         id,
		SubjectKey:     subjectKey,
		PatientID:      patientID,
		ClinicalStatus: fhirmodels.ConditionActive,
		Code: fhir.Coding{
			System:  fhirmodels.SystemICD10GM,
			Code:    icdCode,
			Display: label,
		},
		OnsetAge: fhir.Age{
			Value:  years,
			Unit:   "years",
			System: fhirmodels.SystemUCUM,
			Code:   "a",
		},
	}, nil
}

func (c *Condition) ResourceType() string { return fhirmodels.ResourceCondition }
func (c *Condition) ResourceID() string   { return c.FHIRID }

func (c *Condition) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": fhirmodels.ResourceCondition,
		"id":           c.FHIRID,
		"clinicalStatus": fhir.CodeableConceptOf(
			fhirmodels.SystemConditionClinical, c.ClinicalStatus, "Active",
		),
		"code":     fhir.CodeableConcept{Coding: []fhir.Coding{c.Code}},
		"subject":  fhir.NewReference(fhirmodels.ResourcePatient, c.PatientID),
		"onsetAge": c.OnsetAge,
	}
}

// Procedure records a radiotherapy treatment of the subject.
type Procedure struct {
	FHIRID     string
	SubjectKey string
	PatientID  string
	Status     string
	Code       fhir.Coding
}

func NewProcedure(subjectKey, patientID, id string) *Procedure {
	return &Procedure{
		FHIRID:     id,
		SubjectKey: subjectKey,
		PatientID:  patientID,
		Status:     fhirmodels.ProcedureCompleted,
		Code:       Radiotherapy,
	}
}

func (p *Procedure) ResourceType() string { return fhirmodels.ResourceProcedure }
func (p *Procedure) ResourceID() string   { return p.FHIRID }

func (p *Procedure) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": fhirmodels.ResourceProcedure,
		"id":           p.FHIRID,
		"status":       p.Status,
		"code":         fhir.CodeableConcept{Coding: []fhir.Coding{p.Code}},
		"subject":      fhir.NewReference(fhirmodels.ResourcePatient, p.PatientID),
	}
}
