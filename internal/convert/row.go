package convert

import (
	"errors"
	"fmt"
)

// Column positions in the cBioPortal clinical patient export.
const (
	ColSubjectKey   = 1
	ColOnsetAge     = 3
	ColICD10Code    = 24
	ColLivingStatus = 35
	ColSecondaryID  = 36
	ColRadiotherapy = 46
	ColGender       = 50

	minFieldsPerRow = ColGender + 1
)

// Sentinel values of the living-status and radiotherapy columns.
const (
	LivingSentinel  = "0:LIVING"
	TreatedSentinel = "Yes"
)

// ErrMalformedRow is returned for rows too short to hold every mapped column.
var ErrMalformedRow = errors.New("malformed row")

// Row holds the fields of one input line that the mapping uses.
type Row struct {
	SubjectKey   string
	OnsetAge     string
	ICD10Code    string
	SecondaryID  string
	Gender       string
	Living       bool
	Radiotherapy bool
}

// ParseRow extracts the mapped columns. Sentinels are compared exactly;
// anything else, including different case, maps to false.
func ParseRow(fields []string) (Row, error) {
	if len(fields) < minFieldsPerRow {
		return Row{}, fmt.Errorf("%w: got %d fields, need at least %d", ErrMalformedRow, len(fields), minFieldsPerRow)
	}
	return Row{
		SubjectKey:   fields[ColSubjectKey],
		OnsetAge:     fields[ColOnsetAge],
		ICD10Code:    fields[ColICD10Code],
		SecondaryID:  fields[ColSecondaryID],
		Gender:       fields[ColGender],
		Living:       fields[ColLivingStatus] == LivingSentinel,
		Radiotherapy: fields[ColRadiotherapy] == TreatedSentinel,
	}, nil
}
