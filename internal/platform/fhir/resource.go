package fhir

// Resource is implemented by every domain record that can be placed in a
// bundle entry.
type Resource interface {
	ResourceType() string
	ResourceID() string
	ToFHIR() map[string]interface{}
}

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

type Identifier struct {
	Use    string           `json:"use,omitempty"`
	Type   *CodeableConcept `json:"type,omitempty"`
	System string           `json:"system,omitempty"`
	Value  string           `json:"value,omitempty"`
}

// Age is a FHIR Quantity constrained to a duration in UCUM units.
type Age struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	System string  `json:"system,omitempty"`
	Code   string  `json:"code,omitempty"`
}

// NewReference creates a Reference pointing at resourceType/id.
func NewReference(resourceType, id string) Reference {
	return Reference{Reference: FormatReference(resourceType, id)}
}

// CodeableConceptOf wraps a single coding.
func CodeableConceptOf(system, code, display string) CodeableConcept {
	return CodeableConcept{
		Coding: []Coding{{System: system, Code: code, Display: display}},
	}
}
