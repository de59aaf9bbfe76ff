package fhirmodels

// Common FHIR value set constants used across the converter.

// Resource types emitted in transaction bundles.
const (
	ResourcePatient         = "Patient"
	ResourceResearchStudy   = "ResearchStudy"
	ResourceResearchSubject = "ResearchSubject"
	ResourceCondition       = "Condition"
	ResourceProcedure       = "Procedure"
	ResourceBundle          = "Bundle"
)

// Identifier systems. These strings are matched by the target server's
// conditional creates and must not change between runs.
const (
	PatientIDSystem      = "https://www.gmds.de/pk-nachwuchs/patient"
	StudyPatientIDSystem = "https://www.cbioportal.org/patient"
	StudyIDSystem        = "https://www.cbioportal.org/study"
)

// Code systems.
const (
	SystemICD10GM            = "http://fhir.de/CodeSystem/bfarm/icd-10-gm"
	SystemSNOMED             = "http://snomed.info/sct"
	SystemUCUM               = "http://unitsofmeasure.org"
	SystemConditionClinical  = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	SystemResearchStudyState = "http://hl7.org/fhir/research-study-status"
)

// ConditionClinicalStatus codes.
const (
	ConditionActive = "active"
)

// ResearchStudy status and progress state codes.
const (
	StudyStatusActive    = "active"
	StudyStatusCompleted = "completed"
)

// ResearchSubject status codes.
const (
	SubjectStatusActive = "active"
)

// Procedure status codes.
const (
	ProcedureCompleted = "completed"
)

// Bundle types.
const (
	BundleTransaction = "transaction"
)
