package convert

import (
	"fmt"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/domain/clinical"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/domain/identity"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/domain/research"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/domain/researchsubject"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
)

// Assembler turns input rows into transaction bundles that enrol each
// subject in one study.
type Assembler struct {
	registry *Registry
	studyID  string
	studyKey string
}

// NewAssembler creates an Assembler whose ResearchSubjects reference the
// ResearchStudy with surrogate id studyID.
func NewAssembler(registry *Registry, studyID string) *Assembler {
	return &Assembler{
		registry: registry,
		studyID:  studyID,
		studyKey: research.StudyNaturalKey,
	}
}

// StudyID is the surrogate id of the referenced ResearchStudy.
func (a *Assembler) StudyID() string { return a.studyID }

// Assemble converts one row into a bundle of Patient, ResearchSubject,
// Condition and, for irradiated subjects, Procedure. The subject key is
// returned for naming the output.
func (a *Assembler) Assemble(fields []string) (*fhir.Bundle, string, error) {
	row, err := ParseRow(fields)
	if err != nil {
		return nil, "", err
	}

	bundle, err := a.assembleRow(row)
	if err != nil {
		return nil, row.SubjectKey, err
	}
	return bundle, row.SubjectKey, nil
}

func (a *Assembler) assembleRow(row Row) (*fhir.Bundle, error) {
	scope := a.registry.Row()

	// Dependency order: every later resource references the Patient id.
	patientID := scope.Assign(KindPatient, row.SubjectKey)
	patient := identity.NewPatient(row.SubjectKey, row.SecondaryID, row.Gender, row.Living, patientID)

	subject := researchsubject.NewResearchSubject(
		row.SubjectKey,
		patientID,
		a.studyID,
		scope.Assign(KindResearchSubject, row.SubjectKey),
	)

	condition, err := clinical.NewCondition(
		row.SubjectKey,
		patientID,
		row.ICD10Code,
		row.OnsetAge,
		scope.Assign(KindCondition, row.SubjectKey),
	)
	if err != nil {
		return nil, err
	}

	patientEntry, err := fhir.NewCreateEntry(patient, patient.IfNoneExist())
	if err != nil {
		return nil, err
	}
	subjectEntry, err := fhir.NewCreateEntry(subject, subject.IfNoneExist())
	if err != nil {
		return nil, err
	}
	conditionEntry, err := fhir.NewCreateEntry(condition, "")
	if err != nil {
		return nil, err
	}

	bundle := fhir.NewTransactionBundle(patientEntry, subjectEntry, conditionEntry)

	if row.Radiotherapy {
		procedure := clinical.NewProcedure(row.SubjectKey, patientID, scope.Assign(KindProcedure, row.SubjectKey))
		procedureEntry, err := fhir.NewCreateEntry(procedure, "")
		if err != nil {
			return nil, err
		}
		bundle.Entry = append(bundle.Entry, procedureEntry)
	}

	if err := fhir.CheckReferences(bundle, subject.StudyReference()); err != nil {
		return nil, fmt.Errorf("subject %s: %w", row.SubjectKey, err)
	}
	return bundle, nil
}

// StudyBundle wraps the ResearchStudy in a single conditional-create entry.
func (a *Assembler) StudyBundle() (*fhir.Bundle, error) {
	study := research.NewStudy(a.studyKey, a.studyID)
	entry, err := fhir.NewCreateEntry(study, study.IfNoneExist())
	if err != nil {
		return nil, err
	}
	return fhir.NewTransactionBundle(entry), nil
}
