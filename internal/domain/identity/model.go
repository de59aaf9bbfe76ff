package identity

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/pkg/fhirmodels"
)

// Patient is the FHIR Patient built for one study subject.
type Patient struct {
	FHIRID      string
	SubjectKey  string
	SecondaryID string
	Gender      string
	Living      bool
}

// NewPatient builds a Patient. secondaryID and gender are lower-cased; the
// secondary id is the natural key of the conditional create.
func NewPatient(subjectKey, secondaryID, gender string, living bool, id string) *Patient {
	return &Patient{
		FHIRID:      id,
		SubjectKey:  subjectKey,
		SecondaryID: Normalize(secondaryID),
		Gender:      Normalize(gender),
		Living:      living,
	}
}

// Normalize lower-cases s with Unicode case rules.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(s)
}

func (p *Patient) ResourceType() string { return fhirmodels.ResourcePatient }
func (p *Patient) ResourceID() string   { return p.FHIRID }

// IfNoneExist returns the conditional-create criteria on the person identifier.
func (p *Patient) IfNoneExist() string {
	return fhir.IdentifierGuard(fhirmodels.PatientIDSystem, p.SecondaryID)
}

// ToFHIR renders the Patient. deceasedBoolean is the negation of Living, so
// a "0:LIVING" subject is written with deceasedBoolean false. This breaks
// compatibility with bundles from the previous converter script, which put
// the living flag itself into that element; those differ on every Patient.
func (p *Patient) ToFHIR() map[string]interface{} {
	result := map[string]interface{}{
		"resourceType": fhirmodels.ResourcePatient,
		"id":           p.FHIRID,
		"identifier": []fhir.Identifier{{
			System: fhirmodels.PatientIDSystem,
			Value:  p.SecondaryID,
		}},
		"deceasedBoolean": !p.Living,
	}
	if p.Gender != "" {
		result["gender"] = p.Gender
	}
	return result
}
