package researchsubject

import (
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/pkg/fhirmodels"
)

// ResearchSubject enrols one Patient in the study.
type ResearchSubject struct {
	FHIRID     string
	SubjectKey string
	Status     string
	PatientID  string
	StudyID    string
}

// NewResearchSubject links patientID to studyID. The subject key is kept
// as-is and used as the identifier value.
func NewResearchSubject(subjectKey, patientID, studyID, id string) *ResearchSubject {
	return &ResearchSubject{
		FHIRID:     id,
		SubjectKey: subjectKey,
		Status:     fhirmodels.SubjectStatusActive,
		PatientID:  patientID,
		StudyID:    studyID,
	}
}

func (r *ResearchSubject) ResourceType() string { return fhirmodels.ResourceResearchSubject }
func (r *ResearchSubject) ResourceID() string   { return r.FHIRID }

// IfNoneExist returns the conditional-create criteria on the study-subject identifier.
func (r *ResearchSubject) IfNoneExist() string {
	return fhir.IdentifierGuard(fhirmodels.StudyPatientIDSystem, r.SubjectKey)
}

// StudyReference is the reference string of the enrolling study.
func (r *ResearchSubject) StudyReference() string {
	return fhir.FormatReference(fhirmodels.ResourceResearchStudy, r.StudyID)
}

func (r *ResearchSubject) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": fhirmodels.ResourceResearchSubject,
		"id":           r.FHIRID,
		"status":       r.Status,
		"identifier": []fhir.Identifier{{
			System: fhirmodels.StudyPatientIDSystem,
			Value:  r.SubjectKey,
		}},
		"subject": fhir.NewReference(fhirmodels.ResourcePatient, r.PatientID),
		"study":   fhir.NewReference(fhirmodels.ResourceResearchStudy, r.StudyID),
	}
}
