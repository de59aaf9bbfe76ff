package research

import (
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/pkg/fhirmodels"
)

// Fixed metadata of the TCGA pancreatic adenocarcinoma study.
const (
	StudyNaturalKey = "paad_tcga_pan_can_atlas_2018"
	StudyName       = "tcga_pancreatic_adenocarcinoma"
	StudyTitle      = "Pancreatic Adenocarcinoma (TCGA, PanCancer Atlas)"
	StudyVersion    = "1.0.0"
)

// ResearchStudy is the FHIR ResearchStudy that every ResearchSubject of a
// run points at.
type ResearchStudy struct {
	FHIRID        string
	NaturalKey    string
	Name          string
	Title         string
	Version       string
	Status        string
	ProgressState fhir.Coding
}

// NewStudy builds the study record for naturalKey with surrogate id.
func NewStudy(naturalKey, id string) *ResearchStudy {
	return &ResearchStudy{
		FHIRID:     id,
		NaturalKey: naturalKey,
		Name:       StudyName,
		Title:      StudyTitle,
		Version:    StudyVersion,
		Status:     fhirmodels.StudyStatusActive,
		ProgressState: fhir.Coding{
			System:  fhirmodels.SystemResearchStudyState,
			Code:    fhirmodels.StudyStatusCompleted,
			Display: "Completed",
		},
	}
}

func (s *ResearchStudy) ResourceType() string { return fhirmodels.ResourceResearchStudy }
func (s *ResearchStudy) ResourceID() string   { return s.FHIRID }

// IfNoneExist returns the conditional-create criteria on the study identifier.
func (s *ResearchStudy) IfNoneExist() string {
	return fhir.IdentifierGuard(fhirmodels.StudyIDSystem, s.NaturalKey)
}

func (s *ResearchStudy) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": fhirmodels.ResourceResearchStudy,
		"id":           s.FHIRID,
		"identifier": []fhir.Identifier{{
			System: fhirmodels.StudyIDSystem,
			Value:  s.NaturalKey,
		}},
		"name":    s.Name,
		"title":   s.Title,
		"version": s.Version,
		"status":  s.Status,
		"progressStatus": []map[string]interface{}{{
			"state": fhir.CodeableConcept{Coding: []fhir.Coding{s.ProgressState}},
		}},
	}
}
